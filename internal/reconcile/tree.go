package reconcile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"deptrack-sync/internal/deptrack"
)

// ProjectNode is a single project in the reconstructed hierarchy. A node may
// temporarily lack a remote ID when it was seen only as a child reference;
// such placeholders are skipped during expansion, never treated as errors.
type ProjectNode struct {
	Name     string
	ID       uuid.UUID
	Children map[string]*ProjectNode
}

func newProjectNode(name string, id uuid.UUID) *ProjectNode {
	return &ProjectNode{
		Name:     name,
		ID:       id,
		Children: make(map[string]*ProjectNode),
	}
}

// Forest is the set of root projects and their full descendant hierarchies,
// keyed by root project name. Project names are unique across the whole
// forest, not just among siblings.
type Forest map[string]*ProjectNode

// ForestBuilder materializes the complete project forest from the remote
// server: one root listing, then one fetch per identified project to collect
// its children.
type ForestBuilder struct {
	Dir Directory

	// Concurrency bounds how many root subtrees are expanded in parallel.
	// Values below 2 select the sequential path. Within a subtree descent is
	// sequential; subtrees are disjoint, so no merge synchronization is
	// needed beyond the per-root split.
	Concurrency int
}

// Build reconstructs the full forest. Expansion is depth-first and bounded by
// the finite depth of the actual hierarchy: every identified node is fetched
// exactly once.
func (b *ForestBuilder) Build(ctx context.Context) (Forest, error) {
	roots, err := b.Dir.ListRootProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list root projects: %w", err)
	}

	forest := make(Forest, len(roots))
	for _, root := range roots {
		node := newProjectNode(root.Name, root.UUID)
		// The root listing may already embed first-level children.
		seedChildren(node, root.Children)
		forest[root.Name] = node
	}

	if b.Concurrency > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(b.Concurrency)
		for _, node := range forest {
			node := node
			g.Go(func() error {
				return b.expand(gctx, node)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return forest, nil
	}

	for _, node := range forest {
		if err := b.expand(ctx, node); err != nil {
			return nil, err
		}
	}
	return forest, nil
}

// expand fetches the node's record, merges any children not yet present, and
// recurses into the (possibly just-extended) children set.
func (b *ForestBuilder) expand(ctx context.Context, node *ProjectNode) error {
	if node.ID == uuid.Nil {
		// Placeholder: referenced by name only, no record to fetch yet.
		return nil
	}

	record, err := b.Dir.GetProject(ctx, node.ID)
	if err != nil {
		return fmt.Errorf("fetch project %q: %w", node.Name, err)
	}
	seedChildren(node, record.Children)

	for _, child := range node.Children {
		if err := b.expand(ctx, child); err != nil {
			return err
		}
	}
	return nil
}

// seedChildren merges a children listing into the node, filling in IDs on
// existing placeholders and adding nodes for names not seen before.
func seedChildren(node *ProjectNode, children []deptrack.Project) {
	for _, child := range children {
		existing, ok := node.Children[child.Name]
		if !ok {
			node.Children[child.Name] = newProjectNode(child.Name, child.UUID)
			continue
		}
		if existing.ID == uuid.Nil {
			existing.ID = child.UUID
		}
	}
}

// Flatten reduces the forest to a name-to-ID map over every identified node.
// Placeholders without a remote ID are omitted. This is a pure transformation:
// no remote calls.
func (f Forest) Flatten() map[string]uuid.UUID {
	ids := make(map[string]uuid.UUID)
	var walk func(node *ProjectNode)
	walk = func(node *ProjectNode) {
		if node.ID != uuid.Nil {
			ids[node.Name] = node.ID
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	for _, root := range f {
		walk(root)
	}
	return ids
}

// Find returns the node with the given name, searching the whole forest
// depth-first, or nil when no such project exists.
func (f Forest) Find(name string) *ProjectNode {
	var find func(node *ProjectNode) *ProjectNode
	find = func(node *ProjectNode) *ProjectNode {
		if node.Name == name {
			return node
		}
		for _, child := range node.Children {
			if found := find(child); found != nil {
				return found
			}
		}
		return nil
	}
	for _, root := range f {
		if found := find(root); found != nil {
			return found
		}
	}
	return nil
}
