package reconcile

import (
	"context"

	"github.com/google/uuid"
)

// readOnlyDirectory wraps a Directory for check mode: reads pass through,
// every mutation is skipped and reported as unchanged.
type readOnlyDirectory struct {
	Directory
}

func (readOnlyDirectory) CreateOIDCGroup(context.Context, string) (uuid.UUID, bool, error) {
	return uuid.Nil, false, nil
}

func (readOnlyDirectory) DeleteOIDCGroup(context.Context, uuid.UUID) (bool, error) {
	return false, nil
}

func (readOnlyDirectory) CreateTeam(context.Context, string) (uuid.UUID, bool, error) {
	return uuid.Nil, false, nil
}

func (readOnlyDirectory) DeleteTeam(context.Context, uuid.UUID) (bool, error) {
	return false, nil
}

func (readOnlyDirectory) CreateProject(context.Context, string, string, *uuid.UUID) (uuid.UUID, bool, error) {
	return uuid.Nil, false, nil
}

func (readOnlyDirectory) DeleteProject(context.Context, uuid.UUID) error {
	return nil
}

func (readOnlyDirectory) GrantPermission(context.Context, string, uuid.UUID) (bool, error) {
	return false, nil
}

func (readOnlyDirectory) CreateGroupMapping(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

func (readOnlyDirectory) DeleteGroupMapping(context.Context, uuid.UUID) (bool, error) {
	return false, nil
}

func (readOnlyDirectory) CreateACLMapping(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

func (readOnlyDirectory) DeleteACLMapping(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

func (readOnlyDirectory) EnablePortfolioACL(context.Context) (bool, error) {
	return false, nil
}
