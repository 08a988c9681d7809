package declarative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validManifest() *Manifest {
	return &Manifest{
		URL:        "https://deptrack.example.com",
		APIKey:     "odt_secret",
		State:      StatePresent,
		OIDCGroups: []string{"developers"},
		Teams: []TeamSpec{{
			Name:        "platform",
			OIDCGroups:  []string{"developers"},
			Permissions: []string{"VIEW_PORTFOLIO"},
			PortfolioAccessControl: PortfolioACL{
				Verify:   VerifySpec{Enabled: true, RootProject: "portfolio"},
				Projects: []string{"portfolio"},
			},
		}},
		Projects: []ProjectSpec{
			{Name: "portfolio", Classifier: "APPLICATION"},
			{Name: "service-a", Parent: "portfolio"},
		},
	}
}

func TestValidate_ValidManifest(t *testing.T) {
	assert.Empty(t, Validate(validManifest()))
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	m := &Manifest{State: "frozen"}
	errs := Validate(m)
	require.Len(t, errs, 3)

	paths := make([]string, 0, len(errs))
	for _, e := range errs {
		paths = append(paths, e.Path)
	}
	assert.ElementsMatch(t, []string{"url", "apiKey", "state"}, paths)
}

func TestValidate_UnknownState(t *testing.T) {
	m := validManifest()
	m.State = "maybe"
	errs := Validate(m)
	require.Len(t, errs, 1)
	assert.Equal(t, "state", errs[0].Path)
	assert.Contains(t, errs[0].Message, `"maybe"`)
}

func TestValidate_EmptyAndDuplicateGroups(t *testing.T) {
	m := validManifest()
	m.OIDCGroups = []string{"developers", "", "developers"}
	errs := Validate(m)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Message, "empty")
	assert.Contains(t, errs[1].Message, "duplicate")
}

func TestValidate_DuplicateTeamNames(t *testing.T) {
	m := validManifest()
	m.Teams = append(m.Teams, TeamSpec{Name: "platform"})
	errs := Validate(m)
	require.Len(t, errs, 1)
	assert.Equal(t, "teams[platform]", errs[0].Path)
	assert.Contains(t, errs[0].Message, "duplicate")
}

func TestValidate_UnknownPermission(t *testing.T) {
	m := validManifest()
	m.Teams[0].Permissions = append(m.Teams[0].Permissions, "RULE_THE_WORLD")
	errs := Validate(m)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, `unknown permission "RULE_THE_WORLD"`)
}

func TestValidate_VerifyRequiresRootProject(t *testing.T) {
	m := validManifest()
	m.Teams[0].PortfolioAccessControl.Verify.RootProject = ""
	errs := Validate(m)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "rootProject")
}

func TestValidate_VerifyDisabledNeedsNoRoot(t *testing.T) {
	m := validManifest()
	m.Teams[0].PortfolioAccessControl.Verify = VerifySpec{}
	assert.Empty(t, Validate(m))
}

func TestValidate_UnknownClassifier(t *testing.T) {
	m := validManifest()
	m.Projects[0].Classifier = "MICROSERVICE"
	errs := Validate(m)
	require.Len(t, errs, 1)
	assert.Equal(t, "projects[portfolio]", errs[0].Path)
}

func TestValidate_EmptyClassifierAllowed(t *testing.T) {
	m := validManifest()
	m.Projects[0].Classifier = ""
	assert.Empty(t, Validate(m))
}

func TestValidate_ProjectOwnParent(t *testing.T) {
	m := validManifest()
	m.Projects[1].Parent = "service-a"
	errs := Validate(m)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "own parent")
}

func TestValidate_UnnamedTeamUsesIndexPath(t *testing.T) {
	m := validManifest()
	m.Teams = []TeamSpec{{Name: ""}}
	errs := Validate(m)
	require.Len(t, errs, 1)
	assert.Equal(t, "teams[0]", errs[0].Path)
}

func TestValidationError_Error(t *testing.T) {
	e := ValidationError{Path: "teams[x]", Message: "bad"}
	assert.Equal(t, "teams[x]: bad", e.Error())

	e = ValidationError{Message: "bad"}
	assert.Equal(t, "bad", e.Error())
}
