package reconcile

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"deptrack-sync/internal/declarative"
)

// Options configures a Reconciler.
type Options struct {
	// Logger receives per-operation progress and soft write failures. Nil
	// discards all logging.
	Logger *slog.Logger

	// CheckMode skips every mutation: reads are performed, writes are
	// reported as unchanged.
	CheckMode bool

	// TreeConcurrency bounds parallel root-subtree fetches during forest
	// reconstruction. Zero or one selects sequential traversal.
	TreeConcurrency int
}

// Reconciler drives one full reconciliation pass. It holds no state between
// passes: every pass starts from a fresh read of remote state, which is the
// engine's sole consistency mechanism against concurrent external mutation.
type Reconciler struct {
	dir             Directory
	log             *slog.Logger
	treeConcurrency int
}

// New creates a Reconciler over the given directory.
func New(dir Directory, opts Options) *Reconciler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.CheckMode {
		dir = readOnlyDirectory{Directory: dir}
	}
	return &Reconciler{
		dir:             dir,
		log:             logger,
		treeConcurrency: opts.TreeConcurrency,
	}
}

// Result is the outcome of a reconciliation pass.
type Result struct {
	// Changed is true when any individual create or delete took effect.
	Changed bool `json:"changed"`

	// APIKeys maps team name to the API keys the server has issued for it.
	// Populated on the present path only.
	APIKeys map[string][]string `json:"apiKeys,omitempty"`
}

// Run executes one pass, converging the server toward the manifest. The pass
// is not resumable: a failed read aborts it, and recovery is a fresh pass,
// which is safe because every mutation is idempotent.
func (r *Reconciler) Run(ctx context.Context, m *declarative.Manifest) (Result, error) {
	if m.State == declarative.StateAbsent {
		return r.runAbsent(ctx, m)
	}
	return r.runPresent(ctx, m)
}

func (r *Reconciler) runPresent(ctx context.Context, m *declarative.Manifest) (Result, error) {
	changed := false

	groups, err := r.dir.ListOIDCGroups(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list oidc groups: %w", err)
	}
	changed = r.ensureOIDCGroups(ctx, m.OIDCGroups, groups) || changed

	teamIDs, err := r.observedTeams(ctx)
	if err != nil {
		return Result{}, err
	}
	changed = r.ensureTeams(ctx, m.Teams, teamIDs) || changed

	builder := &ForestBuilder{Dir: r.dir, Concurrency: r.treeConcurrency}
	forest, err := builder.Build(ctx)
	if err != nil {
		return Result{}, err
	}

	if r.ensureProjects(ctx, m.Projects, forest.Flatten()) {
		changed = true
		// Re-read so the ACL walk below sees the projects created this pass.
		forest, err = builder.Build(ctx)
		if err != nil {
			return Result{}, err
		}
	}

	apiKeys, err := r.readTeamAPIKeys(ctx)
	if err != nil {
		return Result{}, err
	}

	// Always attempted, never gated on the current value; the outcome does
	// not participate in the changed signal.
	if _, err := r.dir.EnablePortfolioACL(ctx); err != nil {
		r.log.Warn("enable portfolio acl failed", "error", err)
	}

	for _, team := range m.Teams {
		teamID, ok := teamIDs[team.Name]
		if !ok {
			r.log.Warn("skipping team: not observed and creation did not take effect", "team", team.Name)
			continue
		}
		changed = r.reconcileGroupMappings(ctx, teamID, team.OIDCGroups, groups) || changed
		changed = r.reconcilePermissions(ctx, teamID, team.Permissions) || changed
		changed = r.reconcileProjectACL(ctx, forest, teamID, team.PortfolioAccessControl) || changed
	}

	return Result{Changed: changed, APIKeys: apiKeys}, nil
}

func (r *Reconciler) runAbsent(ctx context.Context, m *declarative.Manifest) (Result, error) {
	changed := false

	groups, err := r.dir.ListOIDCGroups(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list oidc groups: %w", err)
	}
	changed = r.removeOIDCGroups(ctx, m.OIDCGroups, groups) || changed

	teamIDs, err := r.observedTeams(ctx)
	if err != nil {
		return Result{}, err
	}
	changed = r.removeTeams(ctx, m.Teams, teamIDs) || changed

	if len(m.Projects) > 0 {
		builder := &ForestBuilder{Dir: r.dir, Concurrency: r.treeConcurrency}
		forest, err := builder.Build(ctx)
		if err != nil {
			return Result{}, err
		}
		r.removeProjects(ctx, m.Projects, forest.Flatten())
	}

	return Result{Changed: changed}, nil
}

// observedTeams lists remote teams as a name-to-ID map.
func (r *Reconciler) observedTeams(ctx context.Context) (map[string]uuid.UUID, error) {
	teams, err := r.dir.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	ids := make(map[string]uuid.UUID, len(teams))
	for _, t := range teams {
		ids[t.Name] = t.UUID
	}
	return ids, nil
}

// readTeamAPIKeys re-lists teams after creation to pick up the API keys the
// server issued, including keys for teams created earlier in this pass.
func (r *Reconciler) readTeamAPIKeys(ctx context.Context) (map[string][]string, error) {
	teams, err := r.dir.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("read back team api keys: %w", err)
	}
	keys := make(map[string][]string, len(teams))
	for _, t := range teams {
		for _, k := range t.APIKeys {
			keys[t.Name] = append(keys[t.Name], k.Key)
		}
	}
	return keys, nil
}

// writeOutcome folds one mutation outcome into the caller's changed
// accumulation. A write failure is soft: it is logged, counted as no change,
// and the pass continues.
func (r *Reconciler) writeOutcome(changed bool, err error, op string, attrs ...any) bool {
	if err != nil {
		r.log.Warn(op+" failed", append(attrs, "error", err)...)
		return false
	}
	if changed {
		r.log.Info(op, attrs...)
	}
	return changed
}
