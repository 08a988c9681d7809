// Package declarative defines the desired-state manifest for a
// Dependency-Track access-control reconciliation pass, its YAML loader, and
// its validator.
package declarative

// Resource states.
const (
	StatePresent = "present"
	StateAbsent  = "absent"
)

// Manifest is the declarative document a reconciliation pass converges the
// server toward.
type Manifest struct {
	URL        string        `yaml:"url"`
	APIKey     string        `yaml:"apiKey"`
	State      string        `yaml:"state"`
	OIDCGroups []string      `yaml:"oidcGroups"`
	Teams      []TeamSpec    `yaml:"teams"`
	Projects   []ProjectSpec `yaml:"projects"`
}

// TeamSpec describes a single team: its identity-provider group bindings, its
// permission set, and its portfolio access-control policy.
type TeamSpec struct {
	Name                   string        `yaml:"name"`
	OIDCGroups             []string      `yaml:"oidcGroups"`
	Permissions            []string      `yaml:"permissions"`
	PortfolioAccessControl PortfolioACL `yaml:"portfolioAccessControl"`
}

// PortfolioACL is a team's desired project visibility. When Verify is enabled
// the project list is filtered to names reachable from the named root project.
type PortfolioACL struct {
	Verify   VerifySpec `yaml:"verify"`
	Projects []string   `yaml:"projects"`
}

// VerifySpec configures root-descent verification of the project list.
type VerifySpec struct {
	Enabled     bool   `yaml:"enabled"`
	RootProject string `yaml:"rootProject"`
}

// ProjectSpec describes a project to create, optionally under a parent. The
// parent may exist only on the server; it is resolved against the remote
// project tree, not against this manifest.
type ProjectSpec struct {
	Name       string `yaml:"name"`
	Parent     string `yaml:"parent,omitempty"`
	Classifier string `yaml:"classifier,omitempty"`
}
