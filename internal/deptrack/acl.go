package deptrack

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CreateACLMapping grants a team visibility of a project.
func (c *Client) CreateACLMapping(ctx context.Context, team, project uuid.UUID) (bool, error) {
	body := map[string]string{
		"team":    team.String(),
		"project": project.String(),
	}
	return c.write(ctx, http.MethodPut, "/acl/mapping", body, http.StatusOK)
}

// DeleteACLMapping revokes a team's visibility of a project.
func (c *Client) DeleteACLMapping(ctx context.Context, team, project uuid.UUID) (bool, error) {
	path := "/acl/mapping/team/" + team.String() + "/project/" + project.String()
	return c.write(ctx, http.MethodDelete, path, nil, http.StatusOK)
}

// configProperty is an entry for the aggregate config-property endpoint.
type configProperty struct {
	GroupName     string `json:"groupName"`
	PropertyName  string `json:"propertyName"`
	PropertyValue string `json:"propertyValue"`
}

// EnablePortfolioACL turns on portfolio access control server-wide. The call
// is idempotent and always attempted; it is never gated on the current value.
func (c *Client) EnablePortfolioACL(ctx context.Context) (bool, error) {
	body := []configProperty{{
		GroupName:     "access-management",
		PropertyName:  "acl.enabled",
		PropertyValue: "true",
	}}
	return c.write(ctx, http.MethodPost, "/configProperty/aggregate", body, http.StatusOK)
}
