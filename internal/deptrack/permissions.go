package deptrack

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Permissions is the fixed set of team permissions the server knows about.
var Permissions = []string{
	"ACCESS_MANAGEMENT",
	"BOM_UPLOAD",
	"POLICY_MANAGEMENT",
	"POLICY_VIOLATION_ANALYSIS",
	"PORTFOLIO_MANAGEMENT",
	"PROJECT_CREATION_UPLOAD",
	"SYSTEM_CONFIGURATION",
	"VIEW_PORTFOLIO",
	"VIEW_VULNERABILITY",
	"VULNERABILITY_MANAGEMENT",
}

// ValidPermission reports whether name is one of the fixed permissions.
func ValidPermission(name string) bool {
	for _, p := range Permissions {
		if p == name {
			return true
		}
	}
	return false
}

// GrantPermission grants a named permission to a team. 200 OK means the grant
// was applied; granting an already-held permission is a no-op.
func (c *Client) GrantPermission(ctx context.Context, permission string, team uuid.UUID) (bool, error) {
	return c.write(ctx, http.MethodPost,
		"/permission/"+permission+"/team/"+team.String(), nil, http.StatusOK)
}
