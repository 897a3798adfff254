package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/scholarship/internal/app/models"
	"github.com/yigit/scholarship/internal/db"
	"github.com/yigit/scholarship/internal/pkg/apperrors"
	"github.com/yigit/scholarship/internal/pkg/dberrors"
)

const upsertSocioeconomicSuffix = `ON CONFLICT (application_id) DO UPDATE SET
		father_occupation = EXCLUDED.father_occupation,
		mother_occupation = EXCLUDED.mother_occupation,
		total_income = EXCLUDED.total_income,
		total_expenses = EXCLUDED.total_expenses,
		housing_type = EXCLUDED.housing_type,
		housing_condition = EXCLUDED.housing_condition,
		basic_services = EXCLUDED.basic_services,
		observations = EXCLUDED.observations,
		updated_at = NOW()
	RETURNING id`

// ExpedienteRepository handles the socioeconomic record of an application
type ExpedienteRepository struct {
	baseRepository
}

// NewExpedienteRepository creates a new ExpedienteRepository
func NewExpedienteRepository(pool db.Pool, queryTimeout time.Duration) *ExpedienteRepository {
	return &ExpedienteRepository{baseRepository: newBaseRepository(pool, queryTimeout)}
}

// Get returns the socioeconomic info and family of an application. Info is
// nil and the family empty when nothing has been saved.
func (r *ExpedienteRepository) Get(ctx context.Context, applicationID int64) (*models.SocioeconomicInfo, []models.FamilyMember, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	infoSQL, infoArgs, err := r.sb.Select(
		"id", "application_id", "father_occupation", "mother_occupation",
		"total_income::float8", "total_expenses::float8", "housing_type", "housing_condition",
		"basic_services", "observations").
		From("socioeconomic_info").
		Where(squirrel.Eq{"application_id": applicationID}).
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build socioeconomic query: %w", err)
	}

	info := &models.SocioeconomicInfo{}
	err = r.db.QueryRow(ctx, infoSQL, infoArgs...).Scan(
		&info.ID, &info.ApplicationID, &info.FatherOccupation, &info.MotherOccupation,
		&info.TotalIncome, &info.TotalExpenses, &info.HousingType, &info.HousingCondition,
		&info.BasicServices, &info.Observations)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, []models.FamilyMember{}, nil
		}
		return nil, nil, fmt.Errorf("error getting socioeconomic info: %w", err)
	}

	familySQL, familyArgs, err := r.sb.Select(
		"id", "name", "relationship", "age", "occupation", "monthly_income::float8", "education_level").
		From("family_members").
		Where(squirrel.Eq{"socioeconomic_info_id": info.ID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build family query: %w", err)
	}

	rows, err := r.db.Query(ctx, familySQL, familyArgs...)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying family members: %w", err)
	}
	defer rows.Close()

	family := []models.FamilyMember{}
	for rows.Next() {
		var m models.FamilyMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Relationship, &m.Age, &m.Occupation, &m.MonthlyIncome, &m.EducationLevel); err != nil {
			return nil, nil, fmt.Errorf("error scanning family member: %w", err)
		}
		family = append(family, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating family members: %w", err)
	}
	return info, family, nil
}

// Replace upserts the socioeconomic info and replaces the whole family list
// in one transaction. It returns the socioeconomic info id.
func (r *ExpedienteRepository) Replace(ctx context.Context, applicationID int64, info models.SocioeconomicInfo, family []models.FamilyMember) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	upsertSQL, upsertArgs, err := r.sb.Insert("socioeconomic_info").
		Columns("application_id", "father_occupation", "mother_occupation", "total_income", "total_expenses",
			"housing_type", "housing_condition", "basic_services", "observations").
		Values(applicationID, info.FatherOccupation, info.MotherOccupation, info.TotalIncome, info.TotalExpenses,
			info.HousingType, info.HousingCondition, info.BasicServices, info.Observations).
		Suffix(upsertSocioeconomicSuffix).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build socioeconomic upsert: %w", err)
	}

	var infoID int64
	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, upsertSQL, upsertArgs...).Scan(&infoID); err != nil {
			return fmt.Errorf("error upserting socioeconomic info: %w", err)
		}

		deleteSQL, deleteArgs, err := r.sb.Delete("family_members").
			Where(squirrel.Eq{"socioeconomic_info_id": infoID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build family delete: %w", err)
		}
		if _, err := tx.Exec(ctx, deleteSQL, deleteArgs...); err != nil {
			return fmt.Errorf("error deleting family members: %w", err)
		}

		for _, m := range family {
			insertSQL, insertArgs, err := r.sb.Insert("family_members").
				Columns("socioeconomic_info_id", "name", "relationship", "age", "occupation", "monthly_income", "education_level").
				Values(infoID, m.Name, m.Relationship, m.Age, m.Occupation, m.MonthlyIncome, m.EducationLevel).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build family insert: %w", err)
			}
			if _, err := tx.Exec(ctx, insertSQL, insertArgs...); err != nil {
				return fmt.Errorf("error inserting family member: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrApplicationNotFound
		}
		return 0, err
	}
	return infoID, nil
}
