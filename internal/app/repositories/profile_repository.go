package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/scholarship/internal/app/models"
	"github.com/yigit/scholarship/internal/db"
	"github.com/yigit/scholarship/internal/pkg/apperrors"
	"github.com/yigit/scholarship/internal/pkg/dberrors"
)

const upsertPersonalInfoSuffix = `ON CONFLICT (user_id) DO UPDATE SET
		birth_date = EXCLUDED.birth_date,
		phone = EXCLUDED.phone,
		address = EXCLUDED.address,
		province = EXCLUDED.province,
		canton = EXCLUDED.canton,
		district = EXCLUDED.district,
		gender = EXCLUDED.gender,
		marital_status = EXCLUDED.marital_status,
		national_id = EXCLUDED.national_id,
		updated_at = NOW()`

// ProfileRepository handles the personal data of a user
type ProfileRepository struct {
	baseRepository
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(pool db.Pool, queryTimeout time.Duration) *ProfileRepository {
	return &ProfileRepository{baseRepository: newBaseRepository(pool, queryTimeout)}
}

// GetPersonalInfo returns the personal record of a user, or nil if none was saved
func (r *ProfileRepository) GetPersonalInfo(ctx context.Context, userID int64) (*models.PersonalInfo, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql, args, err := r.sb.Select(
		"user_id", "birth_date", "phone", "address", "province", "canton",
		"district", "gender", "marital_status", "national_id").
		From("personal_info").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build personal info query: %w", err)
	}

	info := &models.PersonalInfo{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&info.UserID, &info.BirthDate, &info.Phone, &info.Address, &info.Province, &info.Canton,
		&info.District, &info.Gender, &info.MaritalStatus, &info.NationalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting personal info: %w", err)
	}
	return info, nil
}

// UpdateProfile changes the user's name and email and upserts the personal
// record in one transaction.
func (r *ProfileRepository) UpdateProfile(ctx context.Context, userID int64, name, email string, info models.PersonalInfo) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	userSQL, userArgs, err := r.sb.Update("users").
		Set("name", name).
		Set("email", strings.ToLower(email)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user update: %w", err)
	}

	infoSQL, infoArgs, err := r.sb.Insert("personal_info").
		Columns("user_id", "birth_date", "phone", "address", "province", "canton",
			"district", "gender", "marital_status", "national_id").
		Values(userID, info.BirthDate, info.Phone, info.Address, info.Province, info.Canton,
			info.District, info.Gender, info.MaritalStatus, info.NationalID).
		Suffix(upsertPersonalInfoSuffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build personal info upsert: %w", err)
	}

	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, userSQL, userArgs...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrUserNotFound
		}
		if _, err := tx.Exec(ctx, infoSQL, infoArgs...); err != nil {
			return fmt.Errorf("error upserting personal info: %w", err)
		}
		return nil
	})
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("error updating profile: %w", err)
	}
	return nil
}
