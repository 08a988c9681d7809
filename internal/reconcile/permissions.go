package reconcile

import (
	"context"

	"github.com/google/uuid"

	"deptrack-sync/internal/deptrack"
)

// reconcilePermissions grants the desired subset of the fixed permission set
// to the team. Permissions the team holds but the manifest omits are left
// untouched: this reconciliation is additive only.
func (r *Reconciler) reconcilePermissions(ctx context.Context, team uuid.UUID, desired []string) bool {
	want := make(map[string]bool, len(desired))
	for _, name := range desired {
		want[name] = true
	}

	changed := false
	for _, permission := range deptrack.Permissions {
		if !want[permission] {
			continue
		}
		granted, err := r.dir.GrantPermission(ctx, permission, team)
		if r.writeOutcome(granted, err, "grant permission", "permission", permission) {
			changed = true
		}
	}
	return changed
}
