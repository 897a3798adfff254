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
)

// PanelRepository reads the aggregates shown on the student dashboard
type PanelRepository struct {
	baseRepository
}

// NewPanelRepository creates a new PanelRepository
func NewPanelRepository(pool db.Pool, queryTimeout time.Duration) *PanelRepository {
	return &PanelRepository{baseRepository: newBaseRepository(pool, queryTimeout)}
}

// CurrentScholarship returns the student's active scholarship, or the most
// recent one when none is active. Nil when the student never had one.
func (r *PanelRepository) CurrentScholarship(ctx context.Context, studentID int64) (*models.Scholarship, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql, args, err := r.sb.Select(
		"s.id", "s.status", "t.name", "s.monthly_amount::float8", "s.start_date", "s.end_date").
		From("scholarships s").
		Join("scholarship_types t ON t.id = s.scholarship_type_id").
		Where(squirrel.Eq{"s.student_id": studentID}).
		OrderBy("(s.status = 'ACTIVA') DESC", "s.start_date DESC NULLS LAST", "s.id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build current scholarship query: %w", err)
	}

	s := &models.Scholarship{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.Status, &s.TypeName, &s.MonthlyAmount, &s.StartDate, &s.EndDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting current scholarship: %w", err)
	}
	return s, nil
}

// ApplicationStats counts the student's applications by state
func (r *PanelRepository) ApplicationStats(ctx context.Context, studentID int64) (models.ApplicationStats, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var stats models.ApplicationStats
	sql, args, err := r.sb.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'EN_EVALUACION')",
		"COUNT(*) FILTER (WHERE status = 'APROBADA')",
		"COUNT(*) FILTER (WHERE status = 'RECHAZADA')").
		From("applications").
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()
	if err != nil {
		return stats, fmt.Errorf("failed to build application stats query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&stats.Total, &stats.InEvaluation, &stats.Approved, &stats.Rejected); err != nil {
		return stats, fmt.Errorf("error getting application stats: %w", err)
	}
	return stats, nil
}

// DocumentStats counts document slots across the student's applications
func (r *PanelRepository) DocumentStats(ctx context.Context, studentID int64) (models.DocumentStats, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var stats models.DocumentStats
	sql, args, err := r.sb.Select(
		"COUNT(d.id)",
		"COUNT(d.id) FILTER (WHERE d.valid = 'SI')",
		"COUNT(d.id) FILTER (WHERE d.valid <> 'SI')").
		From("application_documents d").
		Join("applications a ON a.id = d.application_id").
		Where(squirrel.Eq{"a.student_id": studentID}).
		ToSql()
	if err != nil {
		return stats, fmt.Errorf("failed to build document stats query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&stats.Total, &stats.Valid, &stats.Pending); err != nil {
		return stats, fmt.Errorf("error getting document stats: %w", err)
	}
	return stats, nil
}

// RecentNotifications returns the newest notifications of a user
func (r *PanelRepository) RecentNotifications(ctx context.Context, userID int64, limit uint64) ([]models.Notification, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql, args, err := r.sb.Select("id", "title", "message", "read", "created_at").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build notifications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying notifications: %w", err)
	}
	defer rows.Close()

	list := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning notification: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// FollowUps returns the tracking entries of the student's scholarships
func (r *PanelRepository) FollowUps(ctx context.Context, studentID int64) ([]models.FollowUp, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql, args, err := r.sb.Select("f.id", "f.description", "f.status", "f.created_at").
		From("follow_ups f").
		Join("scholarships s ON s.id = f.scholarship_id").
		Where(squirrel.Eq{"s.student_id": studentID}).
		OrderBy("f.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build follow ups query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying follow ups: %w", err)
	}
	defer rows.Close()

	list := []models.FollowUp{}
	for rows.Next() {
		var f models.FollowUp
		if err := rows.Scan(&f.ID, &f.Description, &f.Status, &f.Date); err != nil {
			return nil, fmt.Errorf("error scanning follow up: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// Renewals returns the renewal requests of the student's scholarships
func (r *PanelRepository) Renewals(ctx context.Context, studentID int64) ([]models.Renewal, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql, args, err := r.sb.Select("rn.id", "rn.period", "rn.status", "rn.requested_at").
		From("renewals rn").
		Join("scholarships s ON s.id = rn.scholarship_id").
		Where(squirrel.Eq{"s.student_id": studentID}).
		OrderBy("rn.requested_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build renewals query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying renewals: %w", err)
	}
	defer rows.Close()

	list := []models.Renewal{}
	for rows.Next() {
		var rn models.Renewal
		if err := rows.Scan(&rn.ID, &rn.Period, &rn.Status, &rn.RequestedAt); err != nil {
			return nil, fmt.Errorf("error scanning renewal: %w", err)
		}
		list = append(list, rn)
	}
	return list, rows.Err()
}
