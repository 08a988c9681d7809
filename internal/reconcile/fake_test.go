package reconcile

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"deptrack-sync/internal/deptrack"
)

// fakeDirectory is an in-memory Directory with the same status-code-derived
// changed semantics as the real server: creating something that exists and
// deleting something that does not are no-ops. Every call is recorded so
// tests can assert on exactly which operations a pass issued.
type fakeDirectory struct {
	mu sync.Mutex

	groups        map[string]uuid.UUID
	teams         map[uuid.UUID]deptrack.Team
	projects      map[uuid.UUID]*fakeProject
	rootIDs       []uuid.UUID
	perms         map[uuid.UUID]map[string]bool
	groupMappings map[uuid.UUID]uuid.UUID
	acl           map[uuid.UUID]map[uuid.UUID]bool
	aclEnabled    bool

	// embedRootChildren makes the root listing include each root's immediate
	// children, as newer server versions do.
	embedRootChildren bool

	failures map[string]error
	calls    []string
}

type fakeProject struct {
	name       string
	classifier string
	children   []uuid.UUID
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		groups:        make(map[string]uuid.UUID),
		teams:         make(map[uuid.UUID]deptrack.Team),
		projects:      make(map[uuid.UUID]*fakeProject),
		perms:         make(map[uuid.UUID]map[string]bool),
		groupMappings: make(map[uuid.UUID]uuid.UUID),
		acl:           make(map[uuid.UUID]map[uuid.UUID]bool),
		failures:      make(map[string]error),
	}
}

func (f *fakeDirectory) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

// callsLike returns the recorded calls whose text starts with prefix.
func (f *fakeDirectory) callsLike(prefix string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			out = append(out, c)
		}
	}
	return out
}

// addGroup seeds an OIDC group without recording a call.
func (f *fakeDirectory) addGroup(name string) uuid.UUID {
	id := uuid.New()
	f.groups[name] = id
	return id
}

// addTeam seeds a team, optionally with issued API keys.
func (f *fakeDirectory) addTeam(name string, keys ...string) uuid.UUID {
	id := uuid.New()
	team := deptrack.Team{UUID: id, Name: name}
	for _, k := range keys {
		team.APIKeys = append(team.APIKeys, deptrack.APIKey{Key: k})
	}
	f.teams[id] = team
	return id
}

// addProject seeds a project. A Nil parent makes it a root.
func (f *fakeDirectory) addProject(name, classifier string, parent uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.projects[id] = &fakeProject{name: name, classifier: classifier}
	if parent == uuid.Nil {
		f.rootIDs = append(f.rootIDs, id)
	} else {
		f.projects[parent].children = append(f.projects[parent].children, id)
	}
	return id
}

func (f *fakeDirectory) projectName(id uuid.UUID) string {
	if p, ok := f.projects[id]; ok {
		return p.name
	}
	return id.String()
}

func (f *fakeDirectory) fail(op string, err error) {
	f.failures[op] = err
}

// === reads ===

func (f *fakeDirectory) ListOIDCGroups(context.Context) (map[string]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failures["ListOIDCGroups"]; err != nil {
		return nil, err
	}
	out := make(map[string]uuid.UUID, len(f.groups))
	for name, id := range f.groups {
		out[name] = id
	}
	return out, nil
}

func (f *fakeDirectory) ListTeams(context.Context) ([]deptrack.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failures["ListTeams"]; err != nil {
		return nil, err
	}
	out := make([]deptrack.Team, 0, len(f.teams))
	for _, t := range f.teams {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeDirectory) ListRootProjects(context.Context) ([]deptrack.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failures["ListRootProjects"]; err != nil {
		return nil, err
	}
	out := make([]deptrack.Project, 0, len(f.rootIDs))
	for _, id := range f.rootIDs {
		p := deptrack.Project{UUID: id, Name: f.projects[id].name}
		if f.embedRootChildren {
			for _, childID := range f.projects[id].children {
				p.Children = append(p.Children, deptrack.Project{
					UUID: childID,
					Name: f.projects[childID].name,
				})
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeDirectory) GetProject(_ context.Context, id uuid.UUID) (deptrack.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failures["GetProject"]; err != nil {
		return deptrack.Project{}, err
	}
	p, ok := f.projects[id]
	if !ok {
		return deptrack.Project{}, fmt.Errorf("project %s not found", id)
	}
	out := deptrack.Project{UUID: id, Name: p.name, Classifier: p.classifier}
	for _, childID := range p.children {
		out.Children = append(out.Children, deptrack.Project{
			UUID: childID,
			Name: f.projects[childID].name,
		})
	}
	return out, nil
}

// === mutations ===

func (f *fakeDirectory) CreateOIDCGroup(_ context.Context, name string) (uuid.UUID, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create-group %s", name)
	if err := f.failures["CreateOIDCGroup"]; err != nil {
		return uuid.Nil, false, err
	}
	if _, ok := f.groups[name]; ok {
		return uuid.Nil, false, nil
	}
	id := uuid.New()
	f.groups[name] = id
	return id, true, nil
}

func (f *fakeDirectory) DeleteOIDCGroup(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete-group %s", id)
	if err := f.failures["DeleteOIDCGroup"]; err != nil {
		return false, err
	}
	for name, gid := range f.groups {
		if gid == id {
			delete(f.groups, name)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDirectory) CreateTeam(_ context.Context, name string) (uuid.UUID, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create-team %s", name)
	if err := f.failures["CreateTeam"]; err != nil {
		return uuid.Nil, false, err
	}
	for _, t := range f.teams {
		if t.Name == name {
			return uuid.Nil, false, nil
		}
	}
	id := uuid.New()
	f.teams[id] = deptrack.Team{UUID: id, Name: name}
	return id, true, nil
}

func (f *fakeDirectory) DeleteTeam(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete-team %s", id)
	if err := f.failures["DeleteTeam"]; err != nil {
		return false, err
	}
	if _, ok := f.teams[id]; !ok {
		return false, nil
	}
	delete(f.teams, id)
	return true, nil
}

func (f *fakeDirectory) CreateProject(_ context.Context, name, classifier string, parent *uuid.UUID) (uuid.UUID, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create-project %s", name)
	if err := f.failures["CreateProject"]; err != nil {
		return uuid.Nil, false, err
	}
	id := uuid.New()
	f.projects[id] = &fakeProject{name: name, classifier: classifier}
	if parent == nil {
		f.rootIDs = append(f.rootIDs, id)
	} else {
		p, ok := f.projects[*parent]
		if !ok {
			delete(f.projects, id)
			return uuid.Nil, false, nil
		}
		p.children = append(p.children, id)
	}
	return id, true, nil
}

func (f *fakeDirectory) DeleteProject(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete-project %s", f.projectName(id))
	if err := f.failures["DeleteProject"]; err != nil {
		return err
	}
	delete(f.projects, id)
	for i, rootID := range f.rootIDs {
		if rootID == id {
			f.rootIDs = append(f.rootIDs[:i], f.rootIDs[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeDirectory) GrantPermission(_ context.Context, permission string, team uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("grant-permission %s", permission)
	if err := f.failures["GrantPermission"]; err != nil {
		return false, err
	}
	if f.perms[team] == nil {
		f.perms[team] = make(map[string]bool)
	}
	if f.perms[team][permission] {
		return false, nil
	}
	f.perms[team][permission] = true
	return true, nil
}

func (f *fakeDirectory) CreateGroupMapping(_ context.Context, group, team uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("map-group %s", group)
	if err := f.failures["CreateGroupMapping"]; err != nil {
		return false, err
	}
	if existing, ok := f.groupMappings[group]; ok && existing == team {
		return false, nil
	}
	f.groupMappings[group] = team
	return true, nil
}

func (f *fakeDirectory) DeleteGroupMapping(_ context.Context, group uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("unmap-group %s", group)
	if err := f.failures["DeleteGroupMapping"]; err != nil {
		return false, err
	}
	if _, ok := f.groupMappings[group]; !ok {
		return false, nil
	}
	delete(f.groupMappings, group)
	return true, nil
}

func (f *fakeDirectory) CreateACLMapping(_ context.Context, team, project uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("grant-acl %s", f.projectName(project))
	if err := f.failures["CreateACLMapping"]; err != nil {
		return false, err
	}
	if f.acl[team] == nil {
		f.acl[team] = make(map[uuid.UUID]bool)
	}
	if f.acl[team][project] {
		return false, nil
	}
	f.acl[team][project] = true
	return true, nil
}

func (f *fakeDirectory) DeleteACLMapping(_ context.Context, team, project uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("revoke-acl %s", f.projectName(project))
	if err := f.failures["DeleteACLMapping"]; err != nil {
		return false, err
	}
	if !f.acl[team][project] {
		return false, nil
	}
	delete(f.acl[team], project)
	return true, nil
}

func (f *fakeDirectory) EnablePortfolioACL(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("enable-portfolio-acl")
	if err := f.failures["EnablePortfolioACL"]; err != nil {
		return false, err
	}
	changed := !f.aclEnabled
	f.aclEnabled = true
	return changed, nil
}

var _ Directory = (*fakeDirectory)(nil)
