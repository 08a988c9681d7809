// Package reconcile converges a Dependency-Track server's access-control
// configuration toward a declarative manifest: it rebuilds the remote project
// forest, resolves per-team access scopes, and diffs desired against observed
// state for each entity class, issuing the minimal set of idempotent
// operations.
package reconcile

import (
	"context"

	"github.com/google/uuid"

	"deptrack-sync/internal/deptrack"
)

// Directory is the remote API surface the reconciler converges against.
// *deptrack.Client implements it; tests substitute an in-memory fake.
//
// List and get methods are reads: any error aborts the pass. Mutating methods
// report a changed signal; an error from a mutation is treated as "no change"
// by the caller and the pass continues.
type Directory interface {
	ListOIDCGroups(ctx context.Context) (map[string]uuid.UUID, error)
	CreateOIDCGroup(ctx context.Context, name string) (uuid.UUID, bool, error)
	DeleteOIDCGroup(ctx context.Context, id uuid.UUID) (bool, error)

	ListTeams(ctx context.Context) ([]deptrack.Team, error)
	CreateTeam(ctx context.Context, name string) (uuid.UUID, bool, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) (bool, error)

	ListRootProjects(ctx context.Context) ([]deptrack.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (deptrack.Project, error)
	CreateProject(ctx context.Context, name, classifier string, parent *uuid.UUID) (uuid.UUID, bool, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error

	GrantPermission(ctx context.Context, permission string, team uuid.UUID) (bool, error)

	CreateGroupMapping(ctx context.Context, group, team uuid.UUID) (bool, error)
	DeleteGroupMapping(ctx context.Context, group uuid.UUID) (bool, error)

	CreateACLMapping(ctx context.Context, team, project uuid.UUID) (bool, error)
	DeleteACLMapping(ctx context.Context, team, project uuid.UUID) (bool, error)
	EnablePortfolioACL(ctx context.Context) (bool, error)
}

var _ Directory = (*deptrack.Client)(nil)
