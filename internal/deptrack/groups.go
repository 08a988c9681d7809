package deptrack

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// OIDCGroup is a named OIDC group on the server.
type OIDCGroup struct {
	UUID uuid.UUID `json:"uuid"`
	Name string    `json:"name"`
}

// ListOIDCGroups returns all OIDC groups as a name to UUID map.
func (c *Client) ListOIDCGroups(ctx context.Context) (map[string]uuid.UUID, error) {
	var groups []OIDCGroup
	if err := c.get(ctx, "/oidc/group", nil, &groups); err != nil {
		return nil, err
	}
	byName := make(map[string]uuid.UUID, len(groups))
	for _, g := range groups {
		byName[g.Name] = g.UUID
	}
	return byName, nil
}

// CreateOIDCGroup creates an OIDC group. The server answers 201 Created with
// the new group when the name was absent; any other status is a no-op.
func (c *Client) CreateOIDCGroup(ctx context.Context, name string) (uuid.UUID, bool, error) {
	var created OIDCGroup
	changed, err := c.writeDecode(ctx, http.MethodPut, "/oidc/group",
		map[string]string{"name": name}, &created, http.StatusCreated)
	if err != nil || !changed {
		return uuid.Nil, false, err
	}
	return created.UUID, true, nil
}

// DeleteOIDCGroup deletes an OIDC group by UUID. 200 OK means the group was
// removed; anything else is a no-op.
func (c *Client) DeleteOIDCGroup(ctx context.Context, id uuid.UUID) (bool, error) {
	return c.write(ctx, http.MethodDelete, "/oidc/group/"+id.String(), nil, http.StatusOK)
}
