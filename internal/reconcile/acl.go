package reconcile

import (
	"context"

	"github.com/google/uuid"

	"deptrack-sync/internal/declarative"
)

// reconcileProjectACL converges a team's project ACL entries against the
// entire forest, not just the desired set: at every identified node the team
// is either granted or revoked, and the walk recurses regardless of the
// current node's decision because access is evaluated per node, never
// inherited. The full-tree walk is what makes a shrinking desired set revoke
// access instead of merely not granting it.
func (r *Reconciler) reconcileProjectACL(ctx context.Context, forest Forest, team uuid.UUID, policy declarative.PortfolioACL) bool {
	allowed := make(map[string]bool, len(policy.Projects))
	if policy.Verify.Enabled {
		allowed = ResolveScope(forest, policy.Verify.RootProject, policy.Projects)
	} else {
		for _, name := range policy.Projects {
			allowed[name] = true
		}
	}

	changed := false
	var walk func(node *ProjectNode)
	walk = func(node *ProjectNode) {
		if node.ID != uuid.Nil {
			if allowed[node.Name] {
				granted, err := r.dir.CreateACLMapping(ctx, team, node.ID)
				if r.writeOutcome(granted, err, "grant project acl", "project", node.Name) {
					changed = true
				}
			} else {
				revoked, err := r.dir.DeleteACLMapping(ctx, team, node.ID)
				if r.writeOutcome(revoked, err, "revoke project acl", "project", node.Name) {
					changed = true
				}
			}
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	for _, root := range forest {
		walk(root)
	}
	return changed
}
