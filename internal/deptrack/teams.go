package deptrack

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Team is a team record as returned by the server, including any API keys the
// server has issued for it.
type Team struct {
	UUID    uuid.UUID `json:"uuid"`
	Name    string    `json:"name"`
	APIKeys []APIKey  `json:"apiKeys"`
}

// APIKey is a server-issued team API key. Keys are read-only output; the
// reconciler never creates or revokes them.
type APIKey struct {
	Key string `json:"key"`
}

// ListTeams returns all teams on the server.
func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	var teams []Team
	if err := c.get(ctx, "/team", nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// CreateTeam creates a team by name. 201 Created carries the new team record.
func (c *Client) CreateTeam(ctx context.Context, name string) (uuid.UUID, bool, error) {
	var created Team
	changed, err := c.writeDecode(ctx, http.MethodPut, "/team",
		map[string]string{"name": name}, &created, http.StatusCreated)
	if err != nil || !changed {
		return uuid.Nil, false, err
	}
	return created.UUID, true, nil
}

// DeleteTeam deletes a team. The server takes the UUID in the request body.
func (c *Client) DeleteTeam(ctx context.Context, id uuid.UUID) (bool, error) {
	return c.write(ctx, http.MethodDelete, "/team",
		map[string]string{"uuid": id.String()}, http.StatusOK)
}
