package reconcile

import (
	"context"

	"github.com/google/uuid"

	"deptrack-sync/internal/declarative"
)

// ensureProjects creates every desired project not in the observed name-to-ID
// map. A project whose declared parent is not observed is silently skipped
// for this pass and never retried within it; because new IDs are recorded
// into the map, a child declared after its parent in the same manifest is
// created in the same pass.
func (r *Reconciler) ensureProjects(ctx context.Context, desired []declarative.ProjectSpec, observed map[string]uuid.UUID) bool {
	changed := false
	for _, project := range desired {
		if _, ok := observed[project.Name]; ok {
			continue
		}

		var parent *uuid.UUID
		if project.Parent != "" {
			parentID, ok := observed[project.Parent]
			if !ok {
				r.log.Debug("skipping project: parent not observed",
					"project", project.Name, "parent", project.Parent)
				continue
			}
			parent = &parentID
		}

		id, created, err := r.dir.CreateProject(ctx, project.Name, project.Classifier, parent)
		if !r.writeOutcome(created, err, "create project", "project", project.Name) {
			continue
		}
		observed[project.Name] = id
		changed = true
	}
	return changed
}

// removeProjects deletes every desired project found remotely. Deletion never
// participates in the changed signal, and no hierarchy cleanup is attempted:
// the server enforces its own constraints for projects with live children.
func (r *Reconciler) removeProjects(ctx context.Context, desired []declarative.ProjectSpec, observed map[string]uuid.UUID) {
	for _, project := range desired {
		id, ok := observed[project.Name]
		if !ok {
			continue
		}
		if err := r.dir.DeleteProject(ctx, id); err != nil {
			r.log.Warn("delete project failed", "project", project.Name, "error", err)
		}
	}
}
