package reconcile

import (
	"context"

	"github.com/google/uuid"

	"deptrack-sync/internal/declarative"
)

// ensureTeams creates every desired team not in the observed set. The observed
// set is read once at the start of the pass; the skip-if-present guard is a
// point-in-time check and does not protect against a concurrent reconciler
// run against the same server.
func (r *Reconciler) ensureTeams(ctx context.Context, desired []declarative.TeamSpec, observed map[string]uuid.UUID) bool {
	changed := false
	for _, team := range desired {
		if _, ok := observed[team.Name]; ok {
			continue
		}
		id, created, err := r.dir.CreateTeam(ctx, team.Name)
		if !r.writeOutcome(created, err, "create team", "team", team.Name) {
			continue
		}
		observed[team.Name] = id
		changed = true
	}
	return changed
}

// removeTeams deletes every desired team found remotely. A team not present
// remotely produces no delete call.
func (r *Reconciler) removeTeams(ctx context.Context, desired []declarative.TeamSpec, observed map[string]uuid.UUID) bool {
	changed := false
	for _, team := range desired {
		id, ok := observed[team.Name]
		if !ok {
			continue
		}
		deleted, err := r.dir.DeleteTeam(ctx, id)
		if r.writeOutcome(deleted, err, "delete team", "team", team.Name) {
			changed = true
		}
	}
	return changed
}
