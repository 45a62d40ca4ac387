package team

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventworks/backend/internal/apperr"
	"github.com/eventworks/backend/internal/models"
)

type fakeEvents struct {
	events map[int64]*models.Event
}

func (f *fakeEvents) GetInternal(_ context.Context, id int64) (*models.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, apperr.NotFound("event with id=%d not found", id)
	}
	return e, nil
}

type fakeMemberStore struct {
	members map[int64]*models.OrgTeamMember
	nextID  int64
}

func newFakeMemberStore() *fakeMemberStore {
	return &fakeMemberStore{members: make(map[int64]*models.OrgTeamMember)}
}

func (f *fakeMemberStore) Add(_ context.Context, m *models.OrgTeamMember) error {
	for _, existing := range f.members {
		if existing.EventID == m.EventID && existing.UserID == m.UserID {
			return apperr.Conflict("user(id=%d) is already a team member of event(id=%d)", m.UserID, m.EventID)
		}
	}
	f.nextID++
	m.ID = f.nextID
	stored := *m
	f.members[m.ID] = &stored
	return nil
}

func (f *fakeMemberStore) GetByEventAndUser(_ context.Context, eventID, userID int64) (*models.OrgTeamMember, error) {
	for _, m := range f.members {
		if m.EventID == eventID && m.UserID == userID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("no team member for event(id=%d) with user(id=%d)", eventID, userID)
}

func (f *fakeMemberStore) HasRole(_ context.Context, eventID, userID int64, role models.Role) (bool, error) {
	for _, m := range f.members {
		if m.EventID == eventID && m.UserID == userID && m.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMemberStore) ListByEvent(_ context.Context, eventID int64) ([]models.OrgTeamMember, error) {
	var list []models.OrgTeamMember
	for id := int64(1); id <= f.nextID; id++ {
		if m, ok := f.members[id]; ok && m.EventID == eventID {
			list = append(list, *m)
		}
	}
	return list, nil
}

func (f *fakeMemberStore) UpdateRole(_ context.Context, id int64, role models.Role) error {
	m, ok := f.members[id]
	if !ok {
		return apperr.NotFound("team member with id=%d not found", id)
	}
	m.Role = role
	return nil
}

func (f *fakeMemberStore) Delete(_ context.Context, id int64) error {
	delete(f.members, id)
	return nil
}

// newTestService sets up one event with id 1 owned by user 1.
func newTestService() (*Service, *fakeMemberStore) {
	events := &fakeEvents{events: map[int64]*models.Event{
		1: {ID: 1, OwnerID: 1, Name: "meetup"},
	}}
	store := newFakeMemberStore()
	return NewService(events, store, nil), store
}

const (
	ownerID    = int64(1)
	managerID  = int64(101)
	executorID = int64(102)
)

func seedTeam(t *testing.T, svc *Service) {
	t.Helper()
	ctx := context.Background()
	_, err := svc.Add(ctx, ownerID, MemberInput{EventID: 1, UserID: managerID, Role: models.RoleManager})
	require.NoError(t, err)
	_, err = svc.Add(ctx, managerID, MemberInput{EventID: 1, UserID: executorID, Role: models.RoleExecutor})
	require.NoError(t, err)
}

func TestAddByOwnerAndManager(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	view, err := svc.Add(ctx, ownerID, MemberInput{EventID: 1, UserID: managerID, Role: models.RoleManager})
	require.NoError(t, err)
	assert.Equal(t, managerID, view.UserID)
	assert.Equal(t, models.RoleManager, view.Role)

	// the freshly added manager may add further members
	view, err = svc.Add(ctx, managerID, MemberInput{EventID: 1, UserID: executorID, Role: models.RoleExecutor})
	require.NoError(t, err)
	assert.Equal(t, models.RoleExecutor, view.Role)
}

func TestAddForbiddenForExecutorAndStranger(t *testing.T) {
	svc, store := newTestService()
	seedTeam(t, svc)
	ctx := context.Background()

	_, err := svc.Add(ctx, executorID, MemberInput{EventID: 1, UserID: 200, Role: models.RoleExecutor})
	require.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.Add(ctx, 999, MemberInput{EventID: 1, UserID: 200, Role: models.RoleExecutor})
	require.ErrorIs(t, err, apperr.ErrForbidden)

	assert.Len(t, store.members, 2)
}

func TestAddOwnerAsMemberConflicts(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), ownerID, MemberInput{EventID: 1, UserID: ownerID, Role: models.RoleExecutor})
	require.ErrorIs(t, err, apperr.ErrConflict)
}

func TestAddDuplicateConflicts(t *testing.T) {
	svc, _ := newTestService()
	seedTeam(t, svc)

	_, err := svc.Add(context.Background(), ownerID, MemberInput{EventID: 1, UserID: managerID, Role: models.RoleExecutor})
	require.ErrorIs(t, err, apperr.ErrConflict)
}

func TestAddUnknownEvent(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), ownerID, MemberInput{EventID: 99, UserID: 5, Role: models.RoleExecutor})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateRole(t *testing.T) {
	svc, _ := newTestService()
	seedTeam(t, svc)
	ctx := context.Background()

	view, err := svc.Update(ctx, ownerID, MemberInput{EventID: 1, UserID: executorID, Role: models.RoleManager})
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, view.Role)

	// managers may demote as well
	view, err = svc.Update(ctx, managerID, MemberInput{EventID: 1, UserID: executorID, Role: models.RoleExecutor})
	require.NoError(t, err)
	assert.Equal(t, models.RoleExecutor, view.Role)
}

func TestUpdateRoleForbiddenForExecutor(t *testing.T) {
	svc, _ := newTestService()
	seedTeam(t, svc)

	// an executor cannot change roles, not even their own
	_, err := svc.Update(context.Background(), executorID, MemberInput{EventID: 1, UserID: executorID, Role: models.RoleManager})
	require.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestUpdateUnknownMember(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), ownerID, MemberInput{EventID: 1, UserID: 404, Role: models.RoleManager})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteMember(t *testing.T) {
	svc, store := newTestService()
	seedTeam(t, svc)
	ctx := context.Background()

	// an executor cannot delete a manager
	err := svc.Delete(ctx, executorID, 1, managerID)
	require.ErrorIs(t, err, apperr.ErrForbidden)
	assert.Len(t, store.members, 2)

	require.NoError(t, svc.Delete(ctx, managerID, 1, executorID))
	assert.Len(t, store.members, 1)

	err = svc.Delete(ctx, ownerID, 1, executorID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMembersListingIsPublic(t *testing.T) {
	svc, _ := newTestService()
	seedTeam(t, svc)

	views, err := svc.Members(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, MemberView{UserID: managerID, Role: models.RoleManager}, views[0])
	assert.Equal(t, MemberView{UserID: executorID, Role: models.RoleExecutor}, views[1])

	_, err = svc.Members(context.Background(), 99)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
