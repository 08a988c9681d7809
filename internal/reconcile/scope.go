package reconcile

// ResolveScope computes the subset of requested project names a team may be
// granted ACL entries for under a "must descend from rootProject" policy.
//
// A requested name is allowed iff it equals rootProject or appears anywhere in
// the subtree rooted at the node named rootProject. When rootProject does not
// exist in the forest at all, nothing is allowed: the policy fails closed.
//
// Pure function: no I/O, total on any well-formed forest.
func ResolveScope(forest Forest, rootProject string, requested []string) map[string]bool {
	allowed := make(map[string]bool, len(requested))

	root := forest.Find(rootProject)
	if root == nil {
		return allowed
	}

	reachable := make(map[string]bool)
	var walk func(node *ProjectNode)
	walk = func(node *ProjectNode) {
		reachable[node.Name] = true
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(root)

	for _, name := range requested {
		if reachable[name] {
			allowed[name] = true
		}
	}
	return allowed
}
