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
)

// StudentRepository reads the academic student records
type StudentRepository struct {
	baseRepository
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(pool db.Pool, queryTimeout time.Duration) *StudentRepository {
	return &StudentRepository{baseRepository: newBaseRepository(pool, queryTimeout)}
}

// GetStudentByUserID retrieves the student linked to a user account
func (r *StudentRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql, args, err := r.sb.Select("id", "user_id", "student_number", "program", "gpa::float8").
		From("students").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student := &models.Student{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&student.ID, &student.UserID, &student.StudentNumber, &student.Program, &student.GPA)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error getting student by user ID: %w", err)
	}
	return student, nil
}
