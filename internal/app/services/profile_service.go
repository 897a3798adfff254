package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/scholarship/internal/app/models"
	"github.com/yigit/scholarship/internal/app/models/dto"
	"github.com/yigit/scholarship/internal/pkg/apperrors"
	"github.com/yigit/scholarship/internal/pkg/helpers"
	"github.com/yigit/scholarship/internal/pkg/validation"
)

// ProfileService reads and updates the caller's own data
type ProfileService struct {
	userRepo    UserRepository
	studentRepo StudentRepository
	profileRepo ProfileRepository
	logger      zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo UserRepository, studentRepo StudentRepository, profileRepo ProfileRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Get aggregates user, student and personal info. Only the user is required.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*models.Profile, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetStudentByUserID(ctx, userID)
	if err != nil && !errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, err
	}

	info, err := s.profileRepo.GetPersonalInfo(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.Profile{User: user, Student: student, Info: info}, nil
}

// Update validates and stores the profile form
func (s *ProfileService) Update(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) error {
	name := strings.TrimSpace(req.Name)
	if !validation.IsName(name) {
		return apperrors.NewValidationError("nombre", "nombre must be between 2 and 100 characters")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.IsEmail(email) {
		return apperrors.NewValidationError("correo", "correo must be a valid email address")
	}
	if !validation.IsPhone(strings.TrimSpace(req.Phone)) {
		return apperrors.NewValidationError("telefono", "telefono must be a valid phone number")
	}

	birthDate, err := helpers.ParseDate(req.BirthDate)
	if err != nil {
		return apperrors.NewValidationError("fecha_nacimiento", "fecha_nacimiento must be YYYY-MM-DD or DD/MM/YYYY")
	}

	info := models.PersonalInfo{
		UserID:        userID,
		BirthDate:     birthDate,
		Phone:         helpers.NullableString(req.Phone),
		Address:       helpers.NullableString(req.Address),
		Province:      helpers.NullableString(req.Province),
		Canton:        helpers.NullableString(req.Canton),
		District:      helpers.NullableString(req.District),
		Gender:        helpers.NullableString(req.Gender),
		MaritalStatus: helpers.NullableString(req.MaritalStatus),
		NationalID:    helpers.NullableString(req.NationalID),
	}

	if err := s.profileRepo.UpdateProfile(ctx, userID, name, email, info); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Msg("Profile updated")
	return nil
}
