package declarative

import (
	"fmt"
	"strings"

	"deptrack-sync/internal/deptrack"
)

// ValidationError represents a single validation problem.
type ValidationError struct {
	Path    string // e.g. "teams[team-a]" or "projects[service-x]"
	Message string
}

func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Valid resource states.
var validStates = map[string]bool{
	StatePresent: true,
	StateAbsent:  true,
}

// Validate checks the manifest for structural correctness. It returns all
// validation errors rather than stopping at the first one.
func Validate(m *Manifest) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(m.URL) == "" {
		errs = append(errs, ValidationError{Path: "url", Message: "server URL is required"})
	}
	if strings.TrimSpace(m.APIKey) == "" {
		errs = append(errs, ValidationError{Path: "apiKey", Message: "API key is required"})
	}
	if !validStates[m.State] {
		errs = append(errs, ValidationError{
			Path:    "state",
			Message: fmt.Sprintf("unsupported state %q (expected %q or %q)", m.State, StatePresent, StateAbsent),
		})
	}

	seenGroups := make(map[string]bool, len(m.OIDCGroups))
	for _, g := range m.OIDCGroups {
		if strings.TrimSpace(g) == "" {
			errs = append(errs, ValidationError{Path: "oidcGroups", Message: "group name cannot be empty"})
			continue
		}
		if seenGroups[g] {
			errs = append(errs, ValidationError{Path: "oidcGroups", Message: fmt.Sprintf("duplicate group %q", g)})
		}
		seenGroups[g] = true
	}

	seenTeams := make(map[string]bool, len(m.Teams))
	for i, team := range m.Teams {
		path := teamPath(i, team.Name)
		if strings.TrimSpace(team.Name) == "" {
			errs = append(errs, ValidationError{Path: path, Message: "team name is required"})
		} else if seenTeams[team.Name] {
			errs = append(errs, ValidationError{Path: path, Message: fmt.Sprintf("duplicate team %q", team.Name)})
		}
		seenTeams[team.Name] = true

		for _, p := range team.Permissions {
			if !deptrack.ValidPermission(p) {
				errs = append(errs, ValidationError{
					Path:    path,
					Message: fmt.Sprintf("unknown permission %q", p),
				})
			}
		}

		pac := team.PortfolioAccessControl
		if pac.Verify.Enabled && strings.TrimSpace(pac.Verify.RootProject) == "" {
			errs = append(errs, ValidationError{
				Path:    path,
				Message: "portfolioAccessControl.verify.rootProject is required when verification is enabled",
			})
		}
	}

	seenProjects := make(map[string]bool, len(m.Projects))
	for i, project := range m.Projects {
		path := projectPath(i, project.Name)
		if strings.TrimSpace(project.Name) == "" {
			errs = append(errs, ValidationError{Path: path, Message: "project name is required"})
		} else if seenProjects[project.Name] {
			errs = append(errs, ValidationError{Path: path, Message: fmt.Sprintf("duplicate project %q", project.Name)})
		}
		seenProjects[project.Name] = true

		if project.Classifier != "" && !deptrack.ValidClassifier(project.Classifier) {
			errs = append(errs, ValidationError{
				Path:    path,
				Message: fmt.Sprintf("unknown classifier %q", project.Classifier),
			})
		}
		if project.Parent == project.Name && project.Name != "" {
			errs = append(errs, ValidationError{Path: path, Message: "project cannot be its own parent"})
		}
	}

	return errs
}

func teamPath(i int, name string) string {
	if name != "" {
		return fmt.Sprintf("teams[%s]", name)
	}
	return fmt.Sprintf("teams[%d]", i)
}

func projectPath(i int, name string) string {
	if name != "" {
		return fmt.Sprintf("projects[%s]", name)
	}
	return fmt.Sprintf("projects[%d]", i)
}
