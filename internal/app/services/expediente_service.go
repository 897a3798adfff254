package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/scholarship/internal/app/models"
	"github.com/yigit/scholarship/internal/app/models/dto"
	"github.com/yigit/scholarship/internal/pkg/apperrors"
	"github.com/yigit/scholarship/internal/pkg/helpers"
)

// ExpedienteService maintains the socioeconomic record of the latest application
type ExpedienteService struct {
	studentRepo    StudentRepository
	appRepo        ApplicationRepository
	expedienteRepo ExpedienteRepository
	logger         zerolog.Logger
}

// NewExpedienteService creates a new ExpedienteService
func NewExpedienteService(studentRepo StudentRepository, appRepo ApplicationRepository, expedienteRepo ExpedienteRepository, logger zerolog.Logger) *ExpedienteService {
	return &ExpedienteService{
		studentRepo:    studentRepo,
		appRepo:        appRepo,
		expedienteRepo: expedienteRepo,
		logger:         logger,
	}
}

// Get returns the expediente of the caller's latest application. Missing
// application or record yields the empty shape, not an error.
func (s *ExpedienteService) Get(ctx context.Context, userID int64) (*models.Expediente, error) {
	student, err := s.studentRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	appID, err := s.appRepo.LatestApplicationID(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	if appID == nil {
		return models.EmptyExpediente(nil), nil
	}

	info, family, err := s.expedienteRepo.Get(ctx, *appID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return models.EmptyExpediente(appID), nil
	}

	return &models.Expediente{ApplicationID: appID, Socioeconomic: info, Family: family}, nil
}

// Update overwrites the socioeconomic record and replaces the family list
func (s *ExpedienteService) Update(ctx context.Context, userID int64, req *dto.UpdateExpedienteRequest) error {
	student, err := s.studentRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return err
	}

	appID, err := s.appRepo.LatestApplicationID(ctx, student.ID)
	if err != nil {
		return err
	}
	if appID == nil {
		return apperrors.ErrNoApplication
	}

	info, family := toExpediente(req)
	if _, err := s.expedienteRepo.Replace(ctx, *appID, info, family); err != nil {
		return err
	}

	s.logger.Info().Int64("applicationID", *appID).Int("familyMembers", len(family)).Msg("Expediente updated")
	return nil
}

// toExpediente coerces the loosely typed request into storage models.
// Unparseable numbers become NULL.
func toExpediente(req *dto.UpdateExpedienteRequest) (models.SocioeconomicInfo, []models.FamilyMember) {
	in := req.Socioeconomic
	info := models.SocioeconomicInfo{
		FatherOccupation: helpers.NullableString(in.FatherOccupation),
		MotherOccupation: helpers.NullableString(in.MotherOccupation),
		TotalIncome:      helpers.CoerceFloat(in.TotalIncome),
		TotalExpenses:    helpers.CoerceFloat(in.TotalExpenses),
		HousingType:      helpers.NullableString(in.HousingType),
		HousingCondition: helpers.NullableString(in.HousingCondition),
		BasicServices:    helpers.NullableString(in.BasicServices),
		Observations:     helpers.NullableString(in.Observations),
	}

	family := make([]models.FamilyMember, 0, len(req.Family))
	for _, f := range req.Family {
		family = append(family, models.FamilyMember{
			Name:           f.Name,
			Relationship:   helpers.NullableString(f.Relationship),
			Age:            helpers.CoerceInt(f.Age),
			Occupation:     helpers.NullableString(f.Occupation),
			MonthlyIncome:  helpers.CoerceFloat(f.MonthlyIncome),
			EducationLevel: helpers.NullableString(f.EducationLevel),
		})
	}
	return info, family
}
