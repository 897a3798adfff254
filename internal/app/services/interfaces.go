package services

import (
	"context"
	"time"

	"github.com/yigit/scholarship/internal/app/models"
	"github.com/yigit/scholarship/internal/app/repositories"
	"github.com/yigit/scholarship/internal/pkg/auth"
)

// UserRepository is the account storage used by auth and two-factor flows
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	FindAspirantByID(ctx context.Context, id int64) (*models.User, error)
	SetTwoFactor(ctx context.Context, userID int64, enabled bool) error
}

// StudentRepository resolves the student behind a user account
type StudentRepository interface {
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
}

// CatalogRepository lists calls and scholarship types
type CatalogRepository interface {
	ListCalls(ctx context.Context) ([]models.Call, error)
	ListScholarshipTypes(ctx context.Context) ([]models.ScholarshipType, error)
}

// ApplicationRepository stores applications and their document slots
type ApplicationRepository interface {
	Create(ctx context.Context, studentID, callID, scholarshipTypeID int64) (int64, int, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.ApplicationSummary, error)
	ListDocuments(ctx context.Context, applicationID, studentID int64) ([]models.DocumentSlot, error)
	UploadDocument(ctx context.Context, slotID, studentID int64, upload repositories.DocumentUpload, allowAfterSubmit bool) error
	Submit(ctx context.Context, applicationID, studentID int64) error
	GetDocumentFile(ctx context.Context, slotID, studentID int64) (*models.StoredDocument, error)
	LatestApplicationID(ctx context.Context, studentID int64) (*int64, error)
}

// ExpedienteRepository stores the socioeconomic record
type ExpedienteRepository interface {
	Get(ctx context.Context, applicationID int64) (*models.SocioeconomicInfo, []models.FamilyMember, error)
	Replace(ctx context.Context, applicationID int64, info models.SocioeconomicInfo, family []models.FamilyMember) (int64, error)
}

// ProfileRepository stores personal data
type ProfileRepository interface {
	GetPersonalInfo(ctx context.Context, userID int64) (*models.PersonalInfo, error)
	UpdateProfile(ctx context.Context, userID int64, name, email string, info models.PersonalInfo) error
}

// PanelRepository reads dashboard aggregates
type PanelRepository interface {
	CurrentScholarship(ctx context.Context, studentID int64) (*models.Scholarship, error)
	ApplicationStats(ctx context.Context, studentID int64) (models.ApplicationStats, error)
	DocumentStats(ctx context.Context, studentID int64) (models.DocumentStats, error)
	RecentNotifications(ctx context.Context, userID int64, limit uint64) ([]models.Notification, error)
	FollowUps(ctx context.Context, studentID int64) ([]models.FollowUp, error)
	Renewals(ctx context.Context, studentID int64) ([]models.Renewal, error)
}

// TokenIssuer signs session tokens
type TokenIssuer interface {
	GenerateToken(id auth.Identity) (string, int, error)
}

// CodeRegistry issues and verifies one-time codes
type CodeRegistry interface {
	Issue(ctx context.Context, userID int64) (string, error)
	Verify(ctx context.Context, userID int64, code string) (bool, error)
	Revoke(ctx context.Context, userID int64, code string) error
	TTL() time.Duration
}
