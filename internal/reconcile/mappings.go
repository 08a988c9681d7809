package reconcile

import (
	"context"

	"github.com/google/uuid"
)

// reconcileGroupMappings walks every observed OIDC group and converges the
// team's mappings: groups in the desired set are mapped, all others are
// unmapped. Both operations are idempotent, so re-asserting an existing
// mapping or removing an absent one is a server-side no-op.
func (r *Reconciler) reconcileGroupMappings(ctx context.Context, team uuid.UUID, desired []string, observed map[string]uuid.UUID) bool {
	want := make(map[string]bool, len(desired))
	for _, name := range desired {
		want[name] = true
	}

	changed := false
	for name, groupID := range observed {
		if want[name] {
			mapped, err := r.dir.CreateGroupMapping(ctx, groupID, team)
			if r.writeOutcome(mapped, err, "map oidc group", "group", name) {
				changed = true
			}
			continue
		}
		unmapped, err := r.dir.DeleteGroupMapping(ctx, groupID)
		if r.writeOutcome(unmapped, err, "unmap oidc group", "group", name) {
			changed = true
		}
	}
	return changed
}
