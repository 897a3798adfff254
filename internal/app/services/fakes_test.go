package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/yigit/scholarship/internal/app/models"
	"github.com/yigit/scholarship/internal/app/repositories"
	"github.com/yigit/scholarship/internal/pkg/apperrors"
)

// fakeUsers is an in-memory UserRepository
type fakeUsers struct {
	mu        sync.Mutex
	nextID    int64
	users     map[int64]*models.User
	aspirants map[int64]*models.User
	err       error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[int64]*models.User{}, aspirants: map[int64]*models.User{}}
}

func (f *fakeUsers) add(u *models.User) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	if u.ID == 0 {
		u.ID = f.nextID
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUsers) CreateUser(_ context.Context, user *models.User) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	user.CreatedAt = time.Now()
	f.add(user)
	return user.ID, nil
}

func (f *fakeUsers) EmailExists(_ context.Context, email string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUsers) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindAspirantByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.aspirants[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) SetTwoFactor(_ context.Context, userID int64, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.TwoFactorEnabled = enabled
	return nil
}

// fakeStudents maps user ids to students
type fakeStudents map[int64]*models.Student

func (f fakeStudents) GetStudentByUserID(_ context.Context, userID int64) (*models.Student, error) {
	s, ok := f[userID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return s, nil
}

type fakeApplication struct {
	app   models.Application
	slots []models.DocumentSlot
	blobs map[int64]models.StoredDocument
}

// fakeApplications mirrors the transactional semantics of the SQL repository
type fakeApplications struct {
	mu       sync.Mutex
	docTypes []models.DocumentType
	apps     map[int64]*fakeApplication
	nextApp  int64
	nextSlot int64
	clock    time.Time
}

func newFakeApplications(docTypes ...models.DocumentType) *fakeApplications {
	return &fakeApplications{
		docTypes: docTypes,
		apps:     map[int64]*fakeApplication{},
		clock:    time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (f *fakeApplications) Create(_ context.Context, studentID, callID, scholarshipTypeID int64) (int64, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.apps {
		if a.app.StudentID == studentID && a.app.CallID == callID {
			return 0, 0, apperrors.ErrDuplicateApplication
		}
	}

	f.nextApp++
	f.clock = f.clock.Add(time.Minute)
	a := &fakeApplication{
		app: models.Application{
			ID: f.nextApp, StudentID: studentID, CallID: callID, ScholarshipTypeID: scholarshipTypeID,
			Status: models.StatusDraft, CreatedAt: f.clock,
		},
		blobs: map[int64]models.StoredDocument{},
	}
	for _, dt := range f.docTypes {
		f.nextSlot++
		a.slots = append(a.slots, models.DocumentSlot{
			ID: f.nextSlot, ApplicationID: a.app.ID, DocumentTypeID: dt.ID,
			DocumentName: dt.Name, Mandatory: dt.Mandatory, Valid: models.ValidNo,
		})
	}
	f.apps[a.app.ID] = a
	return a.app.ID, len(a.slots), nil
}

func (f *fakeApplications) ListByStudent(_ context.Context, studentID int64) ([]models.ApplicationSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []models.ApplicationSummary{}
	for _, a := range f.apps {
		if a.app.StudentID == studentID {
			list = append(list, models.ApplicationSummary{ID: a.app.ID, Status: a.app.Status, CreatedAt: a.app.CreatedAt})
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (f *fakeApplications) ListDocuments(_ context.Context, applicationID, studentID int64) ([]models.DocumentSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[applicationID]
	if !ok || a.app.StudentID != studentID {
		return []models.DocumentSlot{}, nil
	}
	return append([]models.DocumentSlot{}, a.slots...), nil
}

func (f *fakeApplications) findSlot(slotID int64) (*fakeApplication, int) {
	for _, a := range f.apps {
		for i := range a.slots {
			if a.slots[i].ID == slotID {
				return a, i
			}
		}
	}
	return nil, -1
}

func (f *fakeApplications) UploadDocument(_ context.Context, slotID, studentID int64, upload repositories.DocumentUpload, allowAfterSubmit bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, i := f.findSlot(slotID)
	if a == nil || a.app.StudentID != studentID {
		return apperrors.ErrDocumentNotFound
	}
	if !allowAfterSubmit && a.app.Status != models.StatusDraft {
		return apperrors.ErrAlreadySubmitted
	}
	name := upload.FileName
	a.slots[i].FileName = &name
	a.slots[i].Valid = models.ValidNo
	a.blobs[slotID] = models.StoredDocument{FileName: upload.FileName, ContentType: upload.ContentType, Content: upload.Content}
	return nil
}

func (f *fakeApplications) Submit(_ context.Context, applicationID, studentID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[applicationID]
	if !ok || a.app.StudentID != studentID {
		return apperrors.ErrApplicationNotFound
	}
	if a.app.Status != models.StatusDraft {
		return apperrors.ErrAlreadySubmitted
	}
	if missing := models.MissingRequired(a.slots); len(missing) > 0 {
		return &apperrors.MissingDocumentsError{Names: missing}
	}
	a.app.Status = models.StatusSubmitted
	return nil
}

func (f *fakeApplications) GetDocumentFile(_ context.Context, slotID, studentID int64) (*models.StoredDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, _ := f.findSlot(slotID)
	if a == nil || a.app.StudentID != studentID {
		return nil, apperrors.ErrDocumentNotFound
	}
	doc, ok := a.blobs[slotID]
	if !ok {
		return nil, apperrors.ErrDocumentNotFound
	}
	return &doc, nil
}

func (f *fakeApplications) LatestApplicationID(_ context.Context, studentID int64) (*int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *fakeApplication
	for _, a := range f.apps {
		if a.app.StudentID == studentID && (latest == nil || a.app.CreatedAt.After(latest.app.CreatedAt)) {
			latest = a
		}
	}
	if latest == nil {
		return nil, nil
	}
	id := latest.app.ID
	return &id, nil
}

func (f *fakeApplications) status(id int64) models.ApplicationStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.apps[id].app.Status
}

func (f *fakeApplications) slotCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, a := range f.apps {
		n += len(a.slots)
	}
	return n
}

// fakeExpedientes stores records keyed by application id
type fakeExpedientes struct {
	infos    map[int64]models.SocioeconomicInfo
	families map[int64][]models.FamilyMember
	failOn   error
}

func newFakeExpedientes() *fakeExpedientes {
	return &fakeExpedientes{infos: map[int64]models.SocioeconomicInfo{}, families: map[int64][]models.FamilyMember{}}
}

func (f *fakeExpedientes) Get(_ context.Context, applicationID int64) (*models.SocioeconomicInfo, []models.FamilyMember, error) {
	info, ok := f.infos[applicationID]
	if !ok {
		return nil, []models.FamilyMember{}, nil
	}
	return &info, append([]models.FamilyMember{}, f.families[applicationID]...), nil
}

func (f *fakeExpedientes) Replace(_ context.Context, applicationID int64, info models.SocioeconomicInfo, family []models.FamilyMember) (int64, error) {
	if f.failOn != nil {
		return 0, f.failOn
	}
	info.ID = applicationID * 10
	info.ApplicationID = applicationID
	f.infos[applicationID] = info
	f.families[applicationID] = append([]models.FamilyMember{}, family...)
	return info.ID, nil
}

// fakeProfiles stores personal info by user id
type fakeProfiles struct {
	users *fakeUsers
	infos map[int64]models.PersonalInfo
}

func (f *fakeProfiles) GetPersonalInfo(_ context.Context, userID int64) (*models.PersonalInfo, error) {
	info, ok := f.infos[userID]
	if !ok {
		return nil, nil
	}
	return &info, nil
}

func (f *fakeProfiles) UpdateProfile(_ context.Context, userID int64, name, email string, info models.PersonalInfo) error {
	f.users.mu.Lock()
	defer f.users.mu.Unlock()
	u, ok := f.users.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	for id, other := range f.users.users {
		if id != userID && other.Email == email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	u.Name, u.Email = name, email
	f.infos[userID] = info
	return nil
}

// fakePanel returns canned aggregates
type fakePanel struct {
	failWith error
}

func (f fakePanel) CurrentScholarship(context.Context, int64) (*models.Scholarship, error) {
	return &models.Scholarship{ID: 1, Status: "ACTIVA", TypeName: "Beca socioeconómica"}, nil
}

func (f fakePanel) ApplicationStats(context.Context, int64) (models.ApplicationStats, error) {
	return models.ApplicationStats{Total: 3, InEvaluation: 1, Approved: 1, Rejected: 1}, nil
}

func (f fakePanel) DocumentStats(context.Context, int64) (models.DocumentStats, error) {
	return models.DocumentStats{Total: 5, Valid: 2, Pending: 3}, nil
}

func (f fakePanel) RecentNotifications(_ context.Context, _ int64, limit uint64) ([]models.Notification, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	list := make([]models.Notification, 0, limit)
	for i := uint64(0); i < limit; i++ {
		list = append(list, models.Notification{ID: int64(i + 1)})
	}
	return list, nil
}

func (f fakePanel) FollowUps(context.Context, int64) ([]models.FollowUp, error) {
	return []models.FollowUp{}, nil
}

func (f fakePanel) Renewals(context.Context, int64) ([]models.Renewal, error) {
	return []models.Renewal{{ID: 1, Period: "2025-I"}}, nil
}

// fakeSender records messages or fails
type fakeSender struct {
	mu   sync.Mutex
	err  error
	sent []sentMail
}

type sentMail struct {
	to, subject, body string
}

func (f *fakeSender) Send(_ context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

var errBoom = errors.New("boom")
