package controllers

import (
	"context"

	"github.com/yigit/scholarship/internal/app/models"
	"github.com/yigit/scholarship/internal/app/models/dto"
	"github.com/yigit/scholarship/internal/pkg/filestorage"
)

// AuthService is implemented by services.AuthService
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userID int64) (*models.User, error)
}

// TwoFactorService is implemented by services.TwoFactorService
type TwoFactorService interface {
	SendOTP(ctx context.Context, userID int64) (int, error)
	Enable(ctx context.Context, userID int64, code string) error
	Disable(ctx context.Context, userID int64, code string) error
}

// ApplicationService is implemented by services.ApplicationService
type ApplicationService interface {
	Create(ctx context.Context, userID, callID, scholarshipTypeID int64) (int64, int, error)
	List(ctx context.Context, userID int64) ([]models.ApplicationSummary, error)
	ListDocuments(ctx context.Context, userID, applicationID int64) ([]models.DocumentSlot, error)
	Upload(ctx context.Context, userID, slotID int64, upload *filestorage.Upload) error
	Submit(ctx context.Context, userID, applicationID int64) error
	Download(ctx context.Context, userID, slotID int64) (*models.StoredDocument, error)
}

// CatalogService is implemented by services.CatalogService
type CatalogService interface {
	ListCalls(ctx context.Context) ([]models.Call, error)
	ListScholarshipTypes(ctx context.Context) ([]models.ScholarshipType, error)
}

// ProfileService is implemented by services.ProfileService
type ProfileService interface {
	Get(ctx context.Context, userID int64) (*models.Profile, error)
	Update(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) error
}

// ExpedienteService is implemented by services.ExpedienteService
type ExpedienteService interface {
	Get(ctx context.Context, userID int64) (*models.Expediente, error)
	Update(ctx context.Context, userID int64, req *dto.UpdateExpedienteRequest) error
}

// PanelService is implemented by services.PanelService
type PanelService interface {
	Get(ctx context.Context, userID int64) (*models.Panel, error)
}

// HealthChecker pings the database
type HealthChecker interface {
	Ping(ctx context.Context) error
}
