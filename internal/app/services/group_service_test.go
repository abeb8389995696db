package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjun/projecthub/internal/app/models"
	"github.com/arjun/projecthub/internal/app/models/dto"
	"github.com/arjun/projecthub/internal/pkg/apperrors"
)

func int64Ptr(v int64) *int64 { return &v }

func newGroupService(students *fakeStudentRepo, groups *fakeGroupRepo, invites *fakeInviteRepo, requests *fakeRequestRepo, changes *fakeChangeRequestRepo) *GroupService {
	return NewGroupService(fakeTxRunner{}, students, groups, invites, requests, changes)
}

func TestSendInvite(t *testing.T) {
	ctx := context.Background()

	newStudents := func() *fakeStudentRepo {
		return newFakeStudentRepo(
			&models.Student{ID: 1, UserID: 11, Name: "Asha", Year: "Third", School: "Engineering", Branch: "CS"},
			&models.Student{ID: 2, UserID: 12, Name: "Ravi", Year: "Third", School: "Engineering", Branch: "CS"},
			&models.Student{ID: 3, UserID: 13, Name: "Maya", Year: "Second", School: "Engineering", Branch: "CS"},
			&models.Student{ID: 4, UserID: 14, Name: "Tarun", Year: "Third", School: "Engineering", Branch: "EC"},
		)
	}

	t.Run("creates pending invite between matching students", func(t *testing.T) {
		invites := newFakeInviteRepo()
		svc := newGroupService(newStudents(), newFakeGroupRepo(), invites, newFakeRequestRepo(), newFakeChangeRequestRepo())

		invite, err := svc.SendInvite(ctx, 11, &dto.SendInviteRequest{ReceiverID: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(1), invite.SenderID)
		assert.Equal(t, int64(2), invite.ReceiverID)
		assert.Equal(t, models.StatusPending, invite.Status)
	})

	t.Run("rejects self invitation", func(t *testing.T) {
		svc := newGroupService(newStudents(), newFakeGroupRepo(), newFakeInviteRepo(), newFakeRequestRepo(), newFakeChangeRequestRepo())

		_, err := svc.SendInvite(ctx, 11, &dto.SendInviteRequest{ReceiverID: 1})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("rejects different year", func(t *testing.T) {
		svc := newGroupService(newStudents(), newFakeGroupRepo(), newFakeInviteRepo(), newFakeRequestRepo(), newFakeChangeRequestRepo())

		_, err := svc.SendInvite(ctx, 11, &dto.SendInviteRequest{ReceiverID: 3})
		assert.ErrorIs(t, err, apperrors.ErrStudentUnavailable)
	})

	t.Run("rejects different branch", func(t *testing.T) {
		svc := newGroupService(newStudents(), newFakeGroupRepo(), newFakeInviteRepo(), newFakeRequestRepo(), newFakeChangeRequestRepo())

		_, err := svc.SendInvite(ctx, 11, &dto.SendInviteRequest{ReceiverID: 4})
		assert.ErrorIs(t, err, apperrors.ErrStudentUnavailable)
	})

	t.Run("rejects grouped receiver", func(t *testing.T) {
		students := newStudents()
		students.students[2].GroupID = int64Ptr(7)
		svc := newGroupService(students, newFakeGroupRepo(), newFakeInviteRepo(), newFakeRequestRepo(), newFakeChangeRequestRepo())

		_, err := svc.SendInvite(ctx, 11, &dto.SendInviteRequest{ReceiverID: 2})
		assert.ErrorIs(t, err, apperrors.ErrStudentUnavailable)
	})

	t.Run("rejects when sender group is full", func(t *testing.T) {
		students := newFakeStudentRepo(
			&models.Student{ID: 1, UserID: 11, Year: "Third", School: "Engineering", Branch: "CS", GroupID: int64Ptr(7)},
			&models.Student{ID: 2, UserID: 12, Year: "Third", School: "Engineering", Branch: "CS", GroupID: int64Ptr(7)},
			&models.Student{ID: 3, UserID: 13, Year: "Third", School: "Engineering", Branch: "CS", GroupID: int64Ptr(7)},
			&models.Student{ID: 4, UserID: 14, Year: "Third", School: "Engineering", Branch: "CS", GroupID: int64Ptr(7)},
			&models.Student{ID: 5, UserID: 15, Year: "Third", School: "Engineering", Branch: "CS"},
		)
		svc := newGroupService(students, newFakeGroupRepo(), newFakeInviteRepo(), newFakeRequestRepo(), newFakeChangeRequestRepo())

		_, err := svc.SendInvite(ctx, 11, &dto.SendInviteRequest{ReceiverID: 5})
		assert.ErrorIs(t, err, apperrors.ErrGroupFull)
	})

	t.Run("rejects duplicate pending invite", func(t *testing.T) {
		svc := newGroupService(newStudents(), newFakeGroupRepo(), newFakeInviteRepo(), newFakeRequestRepo(), newFakeChangeRequestRepo())

		_, err := svc.SendInvite(ctx, 11, &dto.SendInviteRequest{ReceiverID: 2})
		require.NoError(t, err)
		_, err = svc.SendInvite(ctx, 11, &dto.SendInviteRequest{ReceiverID: 2})
		assert.ErrorIs(t, err, apperrors.ErrInviteAlreadySent)
	})
}

func TestRespondInvite(t *testing.T) {
	ctx := context.Background()

	t.Run("accept creates group for two ungrouped students", func(t *testing.T) {
		students := newFakeStudentRepo(
			&models.Student{ID: 1, UserID: 11, Year: "Third", School: "Engineering", Branch: "CS"},
			&models.Student{ID: 2, UserID: 12, Year: "Third", School: "Engineering", Branch: "CS"},
		)
		groups := newFakeGroupRepo()
		invites := newFakeInviteRepo(&models.GroupInvite{ID: 1, SenderID: 1, ReceiverID: 2, Status: models.StatusPending})
		svc := newGroupService(students, groups, invites, newFakeRequestRepo(), newFakeChangeRequestRepo())

		err := svc.RespondInvite(ctx, 12, &dto.RespondInviteRequest{InviteID: 1, Action: "accept"})
		require.NoError(t, err)

		require.NotNil(t, students.students[1].GroupID)
		require.NotNil(t, students.students[2].GroupID)
		assert.Equal(t, *students.students[1].GroupID, *students.students[2].GroupID)

		group := groups.groups[*students.students[1].GroupID]
		require.NotNil(t, group)
		assert.Equal(t, "CS01", group.Name)
		assert.Equal(t, models.StatusAccepted, invites.invites[1].Status)
	})

	t.Run("accept joins the sender's existing group", func(t *testing.T) {
		students := newFakeStudentRepo(
			&models.Student{ID: 1, UserID: 11, Year: "Third", School: "Engineering", Branch: "CS", GroupID: int64Ptr(7)},
			&models.Student{ID: 2, UserID: 12, Year: "Third", School: "Engineering", Branch: "CS"},
		)
		groups := newFakeGroupRepo(&models.StudentGroup{ID: 7, Name: "CS01", Branch: "CS", Year: "Third"})
		invites := newFakeInviteRepo(&models.GroupInvite{ID: 1, SenderID: 1, ReceiverID: 2, Status: models.StatusPending})
		svc := newGroupService(students, groups, invites, newFakeRequestRepo(), newFakeChangeRequestRepo())

		err := svc.RespondInvite(ctx, 12, &dto.RespondInviteRequest{InviteID: 1, Action: "accept"})
		require.NoError(t, err)
		require.NotNil(t, students.students[2].GroupID)
		assert.Equal(t, int64(7), *students.students[2].GroupID)
	})

	t.Run("group name generation retries past taken names", func(t *testing.T) {
		students := newFakeStudentRepo(
			&models.Student{ID: 1, UserID: 11, Year: "Third", School: "Engineering", Branch: "CS"},
			&models.Student{ID: 2, UserID: 12, Year: "Third", School: "Engineering", Branch: "CS"},
		)
		groups := newFakeGroupRepo()
		groups.failCreates = 2
		invites := newFakeInviteRepo(&models.GroupInvite{ID: 1, SenderID: 1, ReceiverID: 2, Status: models.StatusPending})
		svc := newGroupService(students, groups, invites, newFakeRequestRepo(), newFakeChangeRequestRepo())

		err := svc.RespondInvite(ctx, 12, &dto.RespondInviteRequest{InviteID: 1, Action: "accept"})
		require.NoError(t, err)

		require.NotNil(t, students.students[1].GroupID)
		group := groups.groups[*students.students[1].GroupID]
		require.NotNil(t, group)
		assert.Equal(t, "CS03", group.Name)
	})

	t.Run("reject leaves membership untouched", func(t *testing.T) {
		students := newFakeStudentRepo(
			&models.Student{ID: 1, UserID: 11, Year: "Third", School: "Engineering", Branch: "CS"},
			&models.Student{ID: 2, UserID: 12, Year: "Third", School: "Engineering", Branch: "CS"},
		)
		invites := newFakeInviteRepo(&models.GroupInvite{ID: 1, SenderID: 1, ReceiverID: 2, Status: models.StatusPending})
		svc := newGroupService(students, newFakeGroupRepo(), invites, newFakeRequestRepo(), newFakeChangeRequestRepo())

		err := svc.RespondInvite(ctx, 12, &dto.RespondInviteRequest{InviteID: 1, Action: "reject"})
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, invites.invites[1].Status)
		assert.Nil(t, students.students[2].GroupID)
	})

	t.Run("only the receiver may respond", func(t *testing.T) {
		students := newFakeStudentRepo(
			&models.Student{ID: 1, UserID: 11, Year: "Third", School: "Engineering", Branch: "CS"},
			&models.Student{ID: 2, UserID: 12, Year: "Third", School: "Engineering", Branch: "CS"},
		)
		invites := newFakeInviteRepo(&models.GroupInvite{ID: 1, SenderID: 1, ReceiverID: 2, Status: models.StatusPending})
		svc := newGroupService(students, newFakeGroupRepo(), invites, newFakeRequestRepo(), newFakeChangeRequestRepo())

		err := svc.RespondInvite(ctx, 11, &dto.RespondInviteRequest{InviteID: 1, Action: "accept"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("already resolved invite cannot be responded again", func(t *testing.T) {
		students := newFakeStudentRepo(
			&models.Student{ID: 1, UserID: 11, Year: "Third", School: "Engineering", Branch: "CS"},
			&models.Student{ID: 2, UserID: 12, Year: "Third", School: "Engineering", Branch: "CS"},
		)
		invites := newFakeInviteRepo(&models.GroupInvite{ID: 1, SenderID: 1, ReceiverID: 2, Status: models.StatusRejected})
		svc := newGroupService(students, newFakeGroupRepo(), invites, newFakeRequestRepo(), newFakeChangeRequestRepo())

		err := svc.RespondInvite(ctx, 12, &dto.RespondInviteRequest{InviteID: 1, Action: "accept"})
		assert.ErrorIs(t, err, apperrors.ErrInviteNotFound)
	})

	t.Run("accept fails when the sender's group filled up meanwhile", func(t *testing.T) {
		students := newFakeStudentRepo(
			&models.Student{ID: 1, UserID: 11, Year: "Third", School: "Engineering", Branch: "CS", GroupID: int64Ptr(7)},
			&models.Student{ID: 2, UserID: 12, Year: "Third", School: "Engineering", Branch: "CS", GroupID: int64Ptr(7)},
			&models.Student{ID: 3, UserID: 13, Year: "Third", School: "Engineering", Branch: "CS", GroupID: int64Ptr(7)},
			&models.Student{ID: 4, UserID: 14, Year: "Third", School: "Engineering", Branch: "CS", GroupID: int64Ptr(7)},
			&models.Student{ID: 5, UserID: 15, Year: "Third", School: "Engineering", Branch: "CS"},
		)
		groups := newFakeGroupRepo(&models.StudentGroup{ID: 7, Name: "CS01", Branch: "CS", Year: "Third"})
		invites := newFakeInviteRepo(&models.GroupInvite{ID: 1, SenderID: 1, ReceiverID: 5, Status: models.StatusPending})
		svc := newGroupService(students, groups, invites, newFakeRequestRepo(), newFakeChangeRequestRepo())

		err := svc.RespondInvite(ctx, 15, &dto.RespondInviteRequest{InviteID: 1, Action: "accept"})
		assert.ErrorIs(t, err, apperrors.ErrGroupFull)
		assert.Nil(t, students.students[5].GroupID)
	})
}

func TestLeaveGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("member leaves, group survives", func(t *testing.T) {
		students := newFakeStudentRepo(
			&models.Student{ID: 1, UserID: 11, GroupID: int64Ptr(7)},
			&models.Student{ID: 2, UserID: 12, GroupID: int64Ptr(7)},
		)
		groups := newFakeGroupRepo(&models.StudentGroup{ID: 7, Name: "CS01", Branch: "CS", Year: "Third"})
		svc := newGroupService(students, groups, newFakeInviteRepo(), newFakeRequestRepo(), newFakeChangeRequestRepo())

		err := svc.LeaveGroup(ctx, 11)
		require.NoError(t, err)
		assert.Nil(t, students.students[1].GroupID)
		assert.Contains(t, groups.groups, int64(7))
	})

	t.Run("last member leaving deletes the group and its requests", func(t *testing.T) {
		students := newFakeStudentRepo(&models.Student{ID: 1, UserID: 11, GroupID: int64Ptr(7)})
		groups := newFakeGroupRepo(&models.StudentGroup{ID: 7, Name: "CS01", Branch: "CS", Year: "Third"})
		requests := newFakeRequestRepo(&models.SupervisorRequest{ID: 1, GroupID: 7, SupervisorID: 3, Status: models.StatusPending})
		changes := newFakeChangeRequestRepo(&models.SupervisorChangeRequest{ID: 1, GroupID: 7, CurrentSupervisorID: 3, NewSupervisorID: 4, Status: models.StatusPending})
		svc := newGroupService(students, groups, newFakeInviteRepo(), requests, changes)

		err := svc.LeaveGroup(ctx, 11)
		require.NoError(t, err)
		assert.Nil(t, students.students[1].GroupID)
		assert.NotContains(t, groups.groups, int64(7))
		assert.Empty(t, requests.requests)
		assert.Empty(t, changes.requests)
	})

	t.Run("ungrouped student cannot leave", func(t *testing.T) {
		students := newFakeStudentRepo(&models.Student{ID: 1, UserID: 11})
		svc := newGroupService(students, newFakeGroupRepo(), newFakeInviteRepo(), newFakeRequestRepo(), newFakeChangeRequestRepo())

		err := svc.LeaveGroup(ctx, 11)
		assert.ErrorIs(t, err, apperrors.ErrNotInGroup)
	})
}

func TestUpdateProjectMetadata(t *testing.T) {
	ctx := context.Background()

	students := newFakeStudentRepo(&models.Student{ID: 1, UserID: 11, GroupID: int64Ptr(7)})
	groups := newFakeGroupRepo(&models.StudentGroup{ID: 7, Name: "CS01", Branch: "CS", Year: "Third"})
	svc := newGroupService(students, groups, newFakeInviteRepo(), newFakeRequestRepo(), newFakeChangeRequestRepo())

	err := svc.UpdateProject(ctx, 11, &dto.UpdateProjectRequest{Title: "Smart Irrigation", Description: "IoT moisture control"})
	require.NoError(t, err)
	require.NotNil(t, groups.groups[7].ProjectTitle)
	assert.Equal(t, "Smart Irrigation", *groups.groups[7].ProjectTitle)

	err = svc.UpdateDocumentLink(ctx, 11, &dto.UpdateDocumentLinkRequest{Link: "https://docs.example.com/cs01"})
	require.NoError(t, err)
	require.NotNil(t, groups.groups[7].DocumentLink)
	assert.Equal(t, "https://docs.example.com/cs01", *groups.groups[7].DocumentLink)

	t.Run("ungrouped student cannot edit project", func(t *testing.T) {
		loner := newFakeStudentRepo(&models.Student{ID: 2, UserID: 12})
		svc := newGroupService(loner, newFakeGroupRepo(), newFakeInviteRepo(), newFakeRequestRepo(), newFakeChangeRequestRepo())

		err := svc.UpdateProject(ctx, 12, &dto.UpdateProjectRequest{Title: "X"})
		assert.ErrorIs(t, err, apperrors.ErrNotInGroup)
	})
}

func TestGetMyGroup(t *testing.T) {
	ctx := context.Background()

	students := newFakeStudentRepo(
		&models.Student{ID: 1, UserID: 11, Name: "Asha", GroupID: int64Ptr(7)},
		&models.Student{ID: 2, UserID: 12, Name: "Ravi", GroupID: int64Ptr(7)},
	)
	groups := newFakeGroupRepo(&models.StudentGroup{ID: 7, Name: "CS01", Branch: "CS", Year: "Third"})
	svc := newGroupService(students, groups, newFakeInviteRepo(), newFakeRequestRepo(), newFakeChangeRequestRepo())

	detail, err := svc.GetMyGroup(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, "CS01", detail.Group.Name)
	assert.Len(t, detail.Members, 2)
}
