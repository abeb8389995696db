package services

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/arjun/projecthub/internal/app/models"
	"github.com/arjun/projecthub/internal/app/repositories"
	"github.com/arjun/projecthub/internal/db"
	"github.com/arjun/projecthub/internal/pkg/apperrors"
)

// fakeTxRunner runs the callback directly without a real transaction. The
// repository fakes ignore their tx argument, so nil is fine here.
type fakeTxRunner struct{}

func (fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

type sentMail struct {
	to      string
	code    string
	purpose string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendOTPEmail(toEmail, code, purpose string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: toEmail, code: code, purpose: purpose})
	return nil
}

func duplicateKeyError(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int64]*models.User), nextID: 1}
	for _, u := range users {
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) CreateTx(_ context.Context, _ pgx.Tx, user *models.User) (int64, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	u := *user
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = &u
	return u.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) UpdatePasswordTx(_ context.Context, _ pgx.Tx, userID int64, passwordHash string) error {
	u, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Password = passwordHash
	return nil
}

type fakeStudentRepo struct {
	students map[int64]*models.Student
	nextID   int64
}

func newFakeStudentRepo(students ...*models.Student) *fakeStudentRepo {
	r := &fakeStudentRepo{students: make(map[int64]*models.Student), nextID: 1}
	for _, s := range students {
		if s.ID >= r.nextID {
			r.nextID = s.ID + 1
		}
		r.students[s.ID] = s
	}
	return r
}

func (r *fakeStudentRepo) CreateTx(_ context.Context, _ pgx.Tx, student *models.Student) (int64, error) {
	s := *student
	s.ID = r.nextID
	r.nextID++
	r.students[s.ID] = &s
	return s.ID, nil
}

func (r *fakeStudentRepo) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	for _, s := range r.students {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, apperrors.ErrProfileNotFound
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	if s, ok := r.students[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *fakeStudentRepo) RollNumberExists(_ context.Context, rollNumber string) (bool, error) {
	for _, s := range r.students {
		if s.RollNumber == rollNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStudentRepo) CountByGroup(_ context.Context, groupID int64) (int, error) {
	count := 0
	for _, s := range r.students {
		if s.GroupID != nil && *s.GroupID == groupID {
			count++
		}
	}
	return count, nil
}

func (r *fakeStudentRepo) ListByGroup(_ context.Context, groupID int64) ([]*models.Student, error) {
	var members []*models.Student
	for _, s := range r.students {
		if s.GroupID != nil && *s.GroupID == groupID {
			members = append(members, s)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

func (r *fakeStudentRepo) ListAvailable(_ context.Context, year, branch string, excludeID int64) ([]*models.Student, error) {
	var available []*models.Student
	for _, s := range r.students {
		if s.GroupID == nil && s.Year == year && s.Branch == branch && s.ID != excludeID {
			available = append(available, s)
		}
	}
	sort.Slice(available, func(i, j int) bool { return available[i].ID < available[j].ID })
	return available, nil
}

func (r *fakeStudentRepo) SetGroupTx(_ context.Context, _ pgx.Tx, studentID int64, groupID *int64) error {
	s, ok := r.students[studentID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.GroupID = groupID
	return nil
}

type fakeSupervisorRepo struct {
	supervisors map[int64]*models.Supervisor
	nextID      int64
}

func newFakeSupervisorRepo(supervisors ...*models.Supervisor) *fakeSupervisorRepo {
	r := &fakeSupervisorRepo{supervisors: make(map[int64]*models.Supervisor), nextID: 1}
	for _, s := range supervisors {
		if s.ID >= r.nextID {
			r.nextID = s.ID + 1
		}
		r.supervisors[s.ID] = s
	}
	return r
}

func (r *fakeSupervisorRepo) CreateTx(_ context.Context, _ pgx.Tx, supervisor *models.Supervisor) (int64, error) {
	s := *supervisor
	s.ID = r.nextID
	r.nextID++
	r.supervisors[s.ID] = &s
	return s.ID, nil
}

func (r *fakeSupervisorRepo) GetByUserID(_ context.Context, userID int64) (*models.Supervisor, error) {
	for _, s := range r.supervisors {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, apperrors.ErrProfileNotFound
}

func (r *fakeSupervisorRepo) GetByID(_ context.Context, id int64) (*models.Supervisor, error) {
	if s, ok := r.supervisors[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrSupervisorNotFound
}

func (r *fakeSupervisorRepo) ListBySchool(_ context.Context, school string) ([]*models.Supervisor, error) {
	var list []*models.Supervisor
	for _, s := range r.supervisors {
		if s.School == school {
			list = append(list, s)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

type fakeCoordinatorRepo struct {
	coordinators map[int64]*models.Coordinator
	nextID       int64
}

func newFakeCoordinatorRepo(coordinators ...*models.Coordinator) *fakeCoordinatorRepo {
	r := &fakeCoordinatorRepo{coordinators: make(map[int64]*models.Coordinator), nextID: 1}
	for _, c := range coordinators {
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
		r.coordinators[c.ID] = c
	}
	return r
}

func (r *fakeCoordinatorRepo) CreateTx(_ context.Context, _ pgx.Tx, coordinator *models.Coordinator) (int64, error) {
	c := *coordinator
	c.ID = r.nextID
	r.nextID++
	r.coordinators[c.ID] = &c
	return c.ID, nil
}

func (r *fakeCoordinatorRepo) GetByUserID(_ context.Context, userID int64) (*models.Coordinator, error) {
	for _, c := range r.coordinators {
		if c.UserID == userID {
			return c, nil
		}
	}
	return nil, apperrors.ErrProfileNotFound
}

func (r *fakeCoordinatorRepo) CountBySchool(_ context.Context, school string) (int, error) {
	count := 0
	for _, c := range r.coordinators {
		if c.School == school {
			count++
		}
	}
	return count, nil
}

type fakeGroupRepo struct {
	groups  map[int64]*models.StudentGroup
	rosters []*repositories.GroupRoster
	nextID  int64

	// failCreates makes the next n CreateTx calls fail with a duplicate
	// name violation, simulating a lost race for the generated name.
	failCreates int
}

func newFakeGroupRepo(groups ...*models.StudentGroup) *fakeGroupRepo {
	r := &fakeGroupRepo{groups: make(map[int64]*models.StudentGroup), nextID: 1}
	for _, g := range groups {
		if g.ID >= r.nextID {
			r.nextID = g.ID + 1
		}
		r.groups[g.ID] = g
	}
	return r
}

func (r *fakeGroupRepo) CreateTx(_ context.Context, _ pgx.Tx, group *models.StudentGroup) (int64, error) {
	if r.failCreates > 0 {
		r.failCreates--
		return 0, duplicateKeyError(repositories.GroupNameConstraint)
	}
	for _, existing := range r.groups {
		if existing.Name == group.Name {
			return 0, duplicateKeyError(repositories.GroupNameConstraint)
		}
	}
	g := *group
	g.ID = r.nextID
	r.nextID++
	r.groups[g.ID] = &g
	return g.ID, nil
}

func (r *fakeGroupRepo) GetByID(_ context.Context, id int64) (*models.StudentGroup, error) {
	if g, ok := r.groups[id]; ok {
		return g, nil
	}
	return nil, apperrors.ErrGroupNotFound
}

func (r *fakeGroupRepo) CountByBranch(_ context.Context, branch string) (int, error) {
	count := 0
	for _, g := range r.groups {
		if g.Branch == branch {
			count++
		}
	}
	return count, nil
}

func (r *fakeGroupRepo) CountBySupervisor(_ context.Context, supervisorID int64) (int, error) {
	count := 0
	for _, g := range r.groups {
		if g.SupervisorID != nil && *g.SupervisorID == supervisorID {
			count++
		}
	}
	return count, nil
}

func (r *fakeGroupRepo) ListBySupervisor(_ context.Context, supervisorID int64) ([]*models.StudentGroup, error) {
	var list []*models.StudentGroup
	for _, g := range r.groups {
		if g.SupervisorID != nil && *g.SupervisorID == supervisorID {
			list = append(list, g)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *fakeGroupRepo) ListBySchool(_ context.Context, _ string) ([]*models.StudentGroup, error) {
	var list []*models.StudentGroup
	for _, g := range r.groups {
		list = append(list, g)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *fakeGroupRepo) ListBranchesBySchool(_ context.Context, _ string) ([]string, error) {
	seen := make(map[string]bool)
	var branches []string
	for _, g := range r.groups {
		if !seen[g.Branch] {
			seen[g.Branch] = true
			branches = append(branches, g.Branch)
		}
	}
	sort.Strings(branches)
	return branches, nil
}

func (r *fakeGroupRepo) AssignSupervisorTx(_ context.Context, _ pgx.Tx, groupID, supervisorID int64) error {
	g, ok := r.groups[groupID]
	if !ok {
		return apperrors.ErrGroupNotFound
	}
	if g.SupervisorID != nil {
		return apperrors.ErrGroupHasSupervisor
	}
	g.SupervisorID = &supervisorID
	return nil
}

func (r *fakeGroupRepo) SetSupervisorTx(_ context.Context, _ pgx.Tx, groupID, supervisorID int64) error {
	g, ok := r.groups[groupID]
	if !ok {
		return apperrors.ErrGroupNotFound
	}
	g.SupervisorID = &supervisorID
	return nil
}

func (r *fakeGroupRepo) UpdateProject(_ context.Context, groupID int64, title, description string) error {
	g, ok := r.groups[groupID]
	if !ok {
		return apperrors.ErrGroupNotFound
	}
	g.ProjectTitle = &title
	g.ProjectDescription = &description
	return nil
}

func (r *fakeGroupRepo) UpdateDocumentLink(_ context.Context, groupID int64, link string) error {
	g, ok := r.groups[groupID]
	if !ok {
		return apperrors.ErrGroupNotFound
	}
	g.DocumentLink = &link
	return nil
}

func (r *fakeGroupRepo) DeleteTx(_ context.Context, _ pgx.Tx, groupID int64) error {
	if _, ok := r.groups[groupID]; !ok {
		return apperrors.ErrGroupNotFound
	}
	delete(r.groups, groupID)
	return nil
}

func (r *fakeGroupRepo) GetRosters(_ context.Context, _, branch string) ([]*repositories.GroupRoster, error) {
	if branch == "" {
		return r.rosters, nil
	}
	var filtered []*repositories.GroupRoster
	for _, roster := range r.rosters {
		if roster.Branch == branch {
			filtered = append(filtered, roster)
		}
	}
	return filtered, nil
}

type fakeInviteRepo struct {
	invites map[int64]*models.GroupInvite
	nextID  int64
}

func newFakeInviteRepo(invites ...*models.GroupInvite) *fakeInviteRepo {
	r := &fakeInviteRepo{invites: make(map[int64]*models.GroupInvite), nextID: 1}
	for _, inv := range invites {
		if inv.ID >= r.nextID {
			r.nextID = inv.ID + 1
		}
		r.invites[inv.ID] = inv
	}
	return r
}

func (r *fakeInviteRepo) Create(_ context.Context, invite *models.GroupInvite) (int64, error) {
	inv := *invite
	inv.ID = r.nextID
	r.nextID++
	r.invites[inv.ID] = &inv
	return inv.ID, nil
}

func (r *fakeInviteRepo) GetByID(_ context.Context, id int64) (*models.GroupInvite, error) {
	if inv, ok := r.invites[id]; ok {
		return inv, nil
	}
	return nil, apperrors.ErrInviteNotFound
}

func (r *fakeInviteRepo) HasPending(_ context.Context, senderID, receiverID int64) (bool, error) {
	for _, inv := range r.invites {
		if inv.SenderID == senderID && inv.ReceiverID == receiverID && inv.Status == models.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeInviteRepo) UpdateStatusTx(_ context.Context, _ pgx.Tx, id int64, status models.RequestStatus) error {
	inv, ok := r.invites[id]
	if !ok || inv.Status != models.StatusPending {
		return apperrors.ErrInviteNotFound
	}
	inv.Status = status
	return nil
}

func (r *fakeInviteRepo) ListPendingByReceiver(_ context.Context, receiverID int64) ([]*models.GroupInvite, error) {
	var pending []*models.GroupInvite
	for _, inv := range r.invites {
		if inv.ReceiverID == receiverID && inv.Status == models.StatusPending {
			pending = append(pending, inv)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })
	return pending, nil
}

type fakeRequestRepo struct {
	requests map[int64]*models.SupervisorRequest
	nextID   int64
}

func newFakeRequestRepo(requests ...*models.SupervisorRequest) *fakeRequestRepo {
	r := &fakeRequestRepo{requests: make(map[int64]*models.SupervisorRequest), nextID: 1}
	for _, req := range requests {
		if req.ID >= r.nextID {
			r.nextID = req.ID + 1
		}
		r.requests[req.ID] = req
	}
	return r
}

func (r *fakeRequestRepo) Create(_ context.Context, request *models.SupervisorRequest) (int64, error) {
	req := *request
	req.ID = r.nextID
	r.nextID++
	r.requests[req.ID] = &req
	return req.ID, nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id int64) (*models.SupervisorRequest, error) {
	if req, ok := r.requests[id]; ok {
		return req, nil
	}
	return nil, apperrors.ErrRequestNotFound
}

func (r *fakeRequestRepo) CountPendingByGroup(_ context.Context, groupID int64) (int, error) {
	count := 0
	for _, req := range r.requests {
		if req.GroupID == groupID && req.Status == models.StatusPending {
			count++
		}
	}
	return count, nil
}

func (r *fakeRequestRepo) ExistsPending(_ context.Context, groupID, supervisorID int64) (bool, error) {
	for _, req := range r.requests {
		if req.GroupID == groupID && req.SupervisorID == supervisorID && req.Status == models.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRequestRepo) UpdateStatusTx(_ context.Context, _ pgx.Tx, id int64, status models.RequestStatus) error {
	req, ok := r.requests[id]
	if !ok || req.Status != models.StatusPending {
		return apperrors.ErrRequestNotFound
	}
	req.Status = status
	return nil
}

func (r *fakeRequestRepo) RejectOtherPendingTx(_ context.Context, _ pgx.Tx, groupID, acceptedID int64) error {
	for _, req := range r.requests {
		if req.GroupID == groupID && req.ID != acceptedID && req.Status == models.StatusPending {
			req.Status = models.StatusRejected
		}
	}
	return nil
}

func (r *fakeRequestRepo) ListPendingBySupervisor(_ context.Context, supervisorID int64) ([]*models.SupervisorRequest, error) {
	var pending []*models.SupervisorRequest
	for _, req := range r.requests {
		if req.SupervisorID == supervisorID && req.Status == models.StatusPending {
			pending = append(pending, req)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })
	return pending, nil
}

func (r *fakeRequestRepo) ListByGroup(_ context.Context, groupID int64) ([]*models.SupervisorRequest, error) {
	var list []*models.SupervisorRequest
	for _, req := range r.requests {
		if req.GroupID == groupID {
			list = append(list, req)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *fakeRequestRepo) DeleteByGroupTx(_ context.Context, _ pgx.Tx, groupID int64) error {
	for id, req := range r.requests {
		if req.GroupID == groupID {
			delete(r.requests, id)
		}
	}
	return nil
}

type fakeChangeRequestRepo struct {
	requests map[int64]*models.SupervisorChangeRequest
	nextID   int64
}

func newFakeChangeRequestRepo(requests ...*models.SupervisorChangeRequest) *fakeChangeRequestRepo {
	r := &fakeChangeRequestRepo{requests: make(map[int64]*models.SupervisorChangeRequest), nextID: 1}
	for _, req := range requests {
		if req.ID >= r.nextID {
			r.nextID = req.ID + 1
		}
		r.requests[req.ID] = req
	}
	return r
}

func (r *fakeChangeRequestRepo) Create(_ context.Context, request *models.SupervisorChangeRequest) (int64, error) {
	req := *request
	req.ID = r.nextID
	r.nextID++
	r.requests[req.ID] = &req
	return req.ID, nil
}

func (r *fakeChangeRequestRepo) GetByID(_ context.Context, id int64) (*models.SupervisorChangeRequest, error) {
	if req, ok := r.requests[id]; ok {
		return req, nil
	}
	return nil, apperrors.ErrChangeRequestNotFound
}

func (r *fakeChangeRequestRepo) HasPending(_ context.Context, groupID int64) (bool, error) {
	for _, req := range r.requests {
		if req.GroupID == groupID && req.Status == models.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeChangeRequestRepo) ResolveTx(_ context.Context, _ pgx.Tx, id int64, status models.RequestStatus) error {
	req, ok := r.requests[id]
	if !ok || req.Status != models.StatusPending {
		return apperrors.ErrChangeRequestNotFound
	}
	req.Status = status
	now := time.Now()
	req.ProcessedAt = &now
	return nil
}

func (r *fakeChangeRequestRepo) ListPendingBySchool(_ context.Context, _ string) ([]*models.SupervisorChangeRequest, error) {
	var pending []*models.SupervisorChangeRequest
	for _, req := range r.requests {
		if req.Status == models.StatusPending {
			pending = append(pending, req)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })
	return pending, nil
}

func (r *fakeChangeRequestRepo) ListPendingByCurrentSupervisor(_ context.Context, supervisorID int64) ([]*models.SupervisorChangeRequest, error) {
	var pending []*models.SupervisorChangeRequest
	for _, req := range r.requests {
		if req.CurrentSupervisorID == supervisorID && req.Status == models.StatusPending {
			pending = append(pending, req)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })
	return pending, nil
}

func (r *fakeChangeRequestRepo) ListByGroup(_ context.Context, groupID int64) ([]*models.SupervisorChangeRequest, error) {
	var list []*models.SupervisorChangeRequest
	for _, req := range r.requests {
		if req.GroupID == groupID {
			list = append(list, req)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *fakeChangeRequestRepo) DeleteByGroupTx(_ context.Context, _ pgx.Tx, groupID int64) error {
	for id, req := range r.requests {
		if req.GroupID == groupID {
			delete(r.requests, id)
		}
	}
	return nil
}

type fakePanelRepo struct {
	panels  map[int64]*models.Panel // keyed by group ID
	members map[int64][]*models.PanelMember
	nextID  int64
}

func newFakePanelRepo() *fakePanelRepo {
	return &fakePanelRepo{
		panels:  make(map[int64]*models.Panel),
		members: make(map[int64][]*models.PanelMember),
		nextID:  1,
	}
}

func (r *fakePanelRepo) ExistsForGroup(_ context.Context, groupID int64) (bool, error) {
	_, ok := r.panels[groupID]
	return ok, nil
}

func (r *fakePanelRepo) CreateTx(_ context.Context, _ pgx.Tx, groupID, createdBy int64, supervisorIDs []int64) (int64, error) {
	if _, ok := r.panels[groupID]; ok {
		return 0, apperrors.ErrPanelExists
	}
	panel := &models.Panel{ID: r.nextID, GroupID: groupID, CreatedBy: createdBy, CreatedAt: time.Now()}
	r.nextID++
	r.panels[groupID] = panel
	for _, supervisorID := range supervisorIDs {
		r.members[groupID] = append(r.members[groupID], &models.PanelMember{
			ID:           r.nextID,
			PanelID:      panel.ID,
			SupervisorID: supervisorID,
		})
		r.nextID++
	}
	return panel.ID, nil
}

func (r *fakePanelRepo) GetByGroup(_ context.Context, groupID int64) (*models.Panel, []*models.PanelMember, error) {
	panel, ok := r.panels[groupID]
	if !ok {
		return nil, nil, apperrors.ErrResourceNotFound
	}
	return panel, r.members[groupID], nil
}

func (r *fakePanelRepo) ListGroupIDsByMember(_ context.Context, supervisorID int64) ([]int64, error) {
	var groupIDs []int64
	for groupID, members := range r.members {
		for _, m := range members {
			if m.SupervisorID == supervisorID {
				groupIDs = append(groupIDs, groupID)
				break
			}
		}
	}
	sort.Slice(groupIDs, func(i, j int) bool { return groupIDs[i] < groupIDs[j] })
	return groupIDs, nil
}

type fakeMarksRepo struct {
	marks  []*models.Marks
	nextID int64
}

func newFakeMarksRepo() *fakeMarksRepo {
	return &fakeMarksRepo{nextID: 1}
}

func (r *fakeMarksRepo) Upsert(_ context.Context, marks *models.Marks) error {
	for _, existing := range r.marks {
		if existing.StudentID == marks.StudentID && existing.GivenBy == marks.GivenBy {
			existing.Presentation = marks.Presentation
			existing.Documents = marks.Documents
			existing.Collaboration = marks.Collaboration
			existing.Total = marks.Total
			existing.GivenAt = time.Now()
			marks.ID = existing.ID
			return nil
		}
	}
	m := *marks
	m.ID = r.nextID
	r.nextID++
	m.GivenAt = time.Now()
	r.marks = append(r.marks, &m)
	marks.ID = m.ID
	return nil
}

func (r *fakeMarksRepo) ListByStudent(_ context.Context, studentID int64) ([]*models.Marks, error) {
	var list []*models.Marks
	for _, m := range r.marks {
		if m.StudentID == studentID {
			list = append(list, m)
		}
	}
	return list, nil
}

func (r *fakeMarksRepo) ListByGiver(_ context.Context, givenBy int64) ([]*models.Marks, error) {
	var list []*models.Marks
	for _, m := range r.marks {
		if m.GivenBy == givenBy {
			list = append(list, m)
		}
	}
	return list, nil
}

type fakeOTPRepo struct {
	otps   []*models.OTP
	nextID int64
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{nextID: 1}
}

func (r *fakeOTPRepo) Create(_ context.Context, otp *models.OTP) (int64, error) {
	o := *otp
	o.ID = r.nextID
	r.nextID++
	r.otps = append(r.otps, &o)
	return o.ID, nil
}

func (r *fakeOTPRepo) GetLatestMatching(_ context.Context, email string, purpose models.OTPPurpose, code string) (*models.OTP, error) {
	var latest *models.OTP
	for _, o := range r.otps {
		if o.Email == email && o.Purpose == purpose && o.Code == code && !o.Used {
			if latest == nil || o.CreatedAt.After(latest.CreatedAt) {
				latest = o
			}
		}
	}
	if latest == nil {
		return nil, apperrors.ErrOTPInvalid
	}
	return latest, nil
}

func (r *fakeOTPRepo) MarkUsedTx(_ context.Context, _ pgx.Tx, id int64) error {
	for _, o := range r.otps {
		if o.ID == id && !o.Used {
			o.Used = true
			return nil
		}
	}
	return apperrors.ErrOTPInvalid
}

func (r *fakeOTPRepo) DeleteExpired(_ context.Context) (int64, error) {
	var kept []*models.OTP
	var removed int64
	now := time.Now()
	for _, o := range r.otps {
		if o.ExpiresAt.Before(now) {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	r.otps = kept
	return removed, nil
}

type fakeNotificationRepo struct {
	notifications []*models.Notification
	nextID        int64
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *models.Notification) (int64, error) {
	n := *notification
	n.ID = r.nextID
	r.nextID++
	n.CreatedAt = time.Now()
	r.notifications = append(r.notifications, &n)
	return n.ID, nil
}

func (r *fakeNotificationRepo) ListForStudent(_ context.Context, branch string) ([]*models.Notification, error) {
	var list []*models.Notification
	for _, n := range r.notifications {
		switch n.TargetType {
		case models.TargetAll, models.TargetStudents:
			list = append(list, n)
		case models.TargetSpecificBranch:
			if n.TargetBranch != nil && *n.TargetBranch == branch {
				list = append(list, n)
			}
		}
	}
	return list, nil
}

func (r *fakeNotificationRepo) ListForSupervisor(_ context.Context) ([]*models.Notification, error) {
	var list []*models.Notification
	for _, n := range r.notifications {
		if n.TargetType == models.TargetAll || n.TargetType == models.TargetSupervisors {
			list = append(list, n)
		}
	}
	return list, nil
}

func (r *fakeNotificationRepo) ListByCreator(_ context.Context, createdBy int64) ([]*models.Notification, error) {
	var list []*models.Notification
	for _, n := range r.notifications {
		if n.CreatedBy == createdBy {
			list = append(list, n)
		}
	}
	return list, nil
}

type fakeTokenRepo struct {
	tokens map[string]*models.RefreshToken
	nextID int64
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*models.RefreshToken), nextID: 1}
}

func (r *fakeTokenRepo) Create(_ context.Context, token *models.RefreshToken) (int64, error) {
	t := *token
	t.ID = r.nextID
	r.nextID++
	r.tokens[t.Token] = &t
	return t.ID, nil
}

func (r *fakeTokenRepo) GetByValue(_ context.Context, value string) (*models.RefreshToken, error) {
	t, ok := r.tokens[value]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	if t.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(t.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}
	return t, nil
}

func (r *fakeTokenRepo) Revoke(_ context.Context, value string) error {
	t, ok := r.tokens[value]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.Revoked = true
	return nil
}

func (r *fakeTokenRepo) RevokeAllForUser(_ context.Context, userID int64) error {
	for _, t := range r.tokens {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

func (r *fakeTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	var removed int64
	now := time.Now()
	for value, t := range r.tokens {
		if t.ExpiresAt.Before(now) {
			delete(r.tokens, value)
			removed++
		}
	}
	return removed, nil
}
