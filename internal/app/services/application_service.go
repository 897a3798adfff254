package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/scholarship/internal/app/models"
	"github.com/yigit/scholarship/internal/app/repositories"
	"github.com/yigit/scholarship/internal/pkg/apperrors"
	"github.com/yigit/scholarship/internal/pkg/filestorage"
	"github.com/yigit/scholarship/internal/pkg/metrics"
)

// ApplicationPolicy holds the configurable rules of the application workflow
type ApplicationPolicy struct {
	AllowUploadAfterSubmit bool
}

// ApplicationService runs the draft, upload and submission workflow
type ApplicationService struct {
	studentRepo StudentRepository
	appRepo     ApplicationRepository
	policy      ApplicationPolicy
	logger      zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(studentRepo StudentRepository, appRepo ApplicationRepository, policy ApplicationPolicy, logger zerolog.Logger) *ApplicationService {
	return &ApplicationService{
		studentRepo: studentRepo,
		appRepo:     appRepo,
		policy:      policy,
		logger:      logger,
	}
}

// requireStudent resolves the caller's student record. A user without one
// cannot run the workflow, which is a bad request rather than a missing resource.
func (s *ApplicationService) requireStudent(ctx context.Context, userID int64) (*models.Student, error) {
	student, err := s.studentRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewBadRequestError("Estudiante no encontrado")
		}
		return nil, err
	}
	return student, nil
}

// Create opens a draft application for a call and returns its id and slot count
func (s *ApplicationService) Create(ctx context.Context, userID, callID, scholarshipTypeID int64) (int64, int, error) {
	student, err := s.requireStudent(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	id, slots, err := s.appRepo.Create(ctx, student.ID, callID, scholarshipTypeID)
	metrics.RecordApplication(metrics.ActionCreate, err)
	if err != nil {
		return 0, 0, err
	}

	s.logger.Info().Int64("applicationID", id).Int64("studentID", student.ID).Int("slots", slots).Msg("Application created")
	return id, slots, nil
}

// List returns the caller's applications, newest first. Users without a
// student record simply have none.
func (s *ApplicationService) List(ctx context.Context, userID int64) ([]models.ApplicationSummary, error) {
	student, err := s.studentRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return []models.ApplicationSummary{}, nil
		}
		return nil, err
	}
	return s.appRepo.ListByStudent(ctx, student.ID)
}

// ListDocuments returns the document checklist of one of the caller's applications
func (s *ApplicationService) ListDocuments(ctx context.Context, userID, applicationID int64) ([]models.DocumentSlot, error) {
	student, err := s.studentRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return []models.DocumentSlot{}, nil
		}
		return nil, err
	}
	return s.appRepo.ListDocuments(ctx, applicationID, student.ID)
}

// Upload stores a file into one of the caller's document slots
func (s *ApplicationService) Upload(ctx context.Context, userID, slotID int64, upload *filestorage.Upload) error {
	if upload == nil || upload.Size() == 0 {
		return apperrors.ErrNoFileProvided
	}

	student, err := s.requireStudent(ctx, userID)
	if err != nil {
		return err
	}

	err = s.appRepo.UploadDocument(ctx, slotID, student.ID, repositories.DocumentUpload{
		FileName:    upload.Name,
		ContentType: upload.MimeType,
		Content:     upload.Content,
	}, s.policy.AllowUploadAfterSubmit)
	metrics.RecordApplication(metrics.ActionUpload, err)
	if err != nil {
		return err
	}

	s.logger.Info().Int64("slotID", slotID).Int64("studentID", student.ID).Int64("bytes", upload.Size()).Msg("Document uploaded")
	return nil
}

// Submit sends a draft application for evaluation
func (s *ApplicationService) Submit(ctx context.Context, userID, applicationID int64) error {
	student, err := s.requireStudent(ctx, userID)
	if err != nil {
		return err
	}

	err = s.appRepo.Submit(ctx, applicationID, student.ID)
	metrics.RecordApplication(metrics.ActionSubmit, err)
	if err != nil {
		return err
	}

	s.logger.Info().Int64("applicationID", applicationID).Int64("studentID", student.ID).Msg("Application submitted")
	return nil
}

// Download returns the stored binary of one of the caller's slots
func (s *ApplicationService) Download(ctx context.Context, userID, slotID int64) (*models.StoredDocument, error) {
	student, err := s.studentRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, err
	}

	doc, err := s.appRepo.GetDocumentFile(ctx, slotID, student.ID)
	if err != nil {
		return nil, err
	}
	if doc.ContentType == "" {
		doc.ContentType = filestorage.DetectContentType(doc.Content)
	}
	return doc, nil
}
