package deptrack

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CreateGroupMapping maps an OIDC group onto a team. Mapping an already-mapped
// pair is a no-op.
func (c *Client) CreateGroupMapping(ctx context.Context, group, team uuid.UUID) (bool, error) {
	body := map[string]string{
		"group": group.String(),
		"team":  team.String(),
	}
	return c.write(ctx, http.MethodPut, "/oidc/mapping", body, http.StatusOK)
}

// DeleteGroupMapping removes the mapping for an OIDC group. Deleting an
// absent mapping is a no-op.
func (c *Client) DeleteGroupMapping(ctx context.Context, group uuid.UUID) (bool, error) {
	return c.write(ctx, http.MethodDelete, "/oidc/mapping/"+group.String(), nil, http.StatusOK)
}
