package deptrack

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// Classifiers is the fixed set of project classifiers the server accepts.
var Classifiers = []string{
	"APPLICATION",
	"FRAMEWORK",
	"LIBRARY",
	"CONTAINER",
	"OPERATING_SYSTEM",
	"DEVICE",
	"FIRMWARE",
	"FILE",
}

// ValidClassifier reports whether name is one of the fixed classifiers.
func ValidClassifier(name string) bool {
	for _, c := range Classifiers {
		if c == name {
			return true
		}
	}
	return false
}

// Project is a project record. Children is populated on root listings and on
// single-project fetches; it holds only the immediate children.
type Project struct {
	UUID       uuid.UUID `json:"uuid"`
	Name       string    `json:"name"`
	Classifier string    `json:"classifier,omitempty"`
	Children   []Project `json:"children,omitempty"`
}

// projectParentRef is the parent reference accepted by the create endpoint.
type projectParentRef struct {
	UUID uuid.UUID `json:"uuid"`
}

// projectCreateRequest is the body for PUT /project.
type projectCreateRequest struct {
	Name       string            `json:"name"`
	Classifier string            `json:"classifier,omitempty"`
	Parent     *projectParentRef `json:"parent,omitempty"`
	Active     bool              `json:"active"`
}

// ListRootProjects returns the projects that have no parent. The server may
// embed each root's immediate children in the response.
func (c *Client) ListRootProjects(ctx context.Context) ([]Project, error) {
	q := url.Values{}
	q.Set("onlyRoot", "true")
	var projects []Project
	if err := c.get(ctx, "/project", q, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches a single project record including its immediate children.
func (c *Client) GetProject(ctx context.Context, id uuid.UUID) (Project, error) {
	var p Project
	if err := c.get(ctx, "/project/"+id.String(), nil, &p); err != nil {
		return Project{}, err
	}
	return p, nil
}

// CreateProject creates a project, optionally under a parent. 201 Created
// carries the new record.
func (c *Client) CreateProject(ctx context.Context, name, classifier string, parent *uuid.UUID) (uuid.UUID, bool, error) {
	req := projectCreateRequest{Name: name, Classifier: classifier, Active: true}
	if parent != nil {
		req.Parent = &projectParentRef{UUID: *parent}
	}
	var created Project
	changed, err := c.writeDecode(ctx, http.MethodPut, "/project", req, &created, http.StatusCreated)
	if err != nil || !changed {
		return uuid.Nil, false, err
	}
	return created.UUID, true, nil
}

// DeleteProject deletes a project by UUID. Deletion is always reported as
// unchanged: the server enforces its own constraints (for example a project
// with live children) and the outcome does not participate in the changed
// signal.
func (c *Client) DeleteProject(ctx context.Context, id uuid.UUID) error {
	resp, err := c.Do(ctx, http.MethodDelete, "/project/"+id.String(), nil, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
