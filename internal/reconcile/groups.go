package reconcile

import (
	"context"

	"github.com/google/uuid"
)

// ensureOIDCGroups creates every desired group missing from the observed set.
// Newly minted IDs are recorded into observed so later steps in the same pass
// (group-mapping reconciliation in particular) see them immediately.
func (r *Reconciler) ensureOIDCGroups(ctx context.Context, desired []string, observed map[string]uuid.UUID) bool {
	changed := false
	for _, name := range desired {
		if _, ok := observed[name]; ok {
			continue
		}
		id, created, err := r.dir.CreateOIDCGroup(ctx, name)
		if !r.writeOutcome(created, err, "create oidc group", "group", name) {
			continue
		}
		observed[name] = id
		changed = true
	}
	return changed
}

// removeOIDCGroups deletes every desired group found in the observed set.
// Groups absent remotely produce no calls.
func (r *Reconciler) removeOIDCGroups(ctx context.Context, desired []string, observed map[string]uuid.UUID) bool {
	changed := false
	for _, name := range desired {
		id, ok := observed[name]
		if !ok {
			continue
		}
		deleted, err := r.dir.DeleteOIDCGroup(ctx, id)
		if r.writeOutcome(deleted, err, "delete oidc group", "group", name) {
			changed = true
		}
	}
	return changed
}
