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
	"github.com/yigit/scholarship/internal/pkg/logger"
)

const applicationStudentCallKey = "applications_student_call_key"

// fanOutDocumentSlots creates one empty slot per document type for a new application
const fanOutDocumentSlots = `
	INSERT INTO application_documents (application_id, document_type_id, valid)
	SELECT $1, dt.id, 'NO'
	FROM document_types dt
	ORDER BY dt.id`

// DocumentUpload is the payload written into a slot
type DocumentUpload struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ApplicationRepository handles applications and their document slots
type ApplicationRepository struct {
	baseRepository
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(pool db.Pool, queryTimeout time.Duration) *ApplicationRepository {
	return &ApplicationRepository{baseRepository: newBaseRepository(pool, queryTimeout)}
}

// Create inserts a draft application and its document slots in one
// transaction. It returns the new id and the number of slots created.
func (r *ApplicationRepository) Create(ctx context.Context, studentID, callID, scholarshipTypeID int64) (int64, int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	existsSQL, existsArgs, err := r.sb.Select("1").
		Prefix("SELECT EXISTS (").
		From("applications").
		Where(squirrel.Eq{"student_id": studentID, "call_id": callID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build application exists query: %w", err)
	}

	insertSQL, insertArgs, err := r.sb.Insert("applications").
		Columns("student_id", "call_id", "scholarship_type_id", "status").
		Values(studentID, callID, scholarshipTypeID, string(models.StatusDraft)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build create application query: %w", err)
	}

	var (
		applicationID int64
		slots         int
	)
	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, existsSQL, existsArgs...).Scan(&exists); err != nil {
			return fmt.Errorf("error checking existing application: %w", err)
		}
		if exists {
			return apperrors.ErrDuplicateApplication
		}

		if err := tx.QueryRow(ctx, insertSQL, insertArgs...).Scan(&applicationID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, fanOutDocumentSlots, applicationID)
		if err != nil {
			return fmt.Errorf("error creating document slots: %w", err)
		}
		slots = int(tag.RowsAffected())
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicateApplication),
			dberrors.IsDuplicateConstraintError(err, applicationStudentCallKey):
			return 0, 0, apperrors.ErrDuplicateApplication
		case dberrors.IsForeignKeyViolation(err):
			return 0, 0, apperrors.ErrInvalidReference
		}
		logger.Error().Err(err).Int64("studentID", studentID).Int64("callID", callID).Msg("Error creating application")
		return 0, 0, fmt.Errorf("error creating application: %w", err)
	}

	return applicationID, slots, nil
}

// ListByStudent returns a student's applications with call and type, newest first
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.ApplicationSummary, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql, args, err := r.sb.Select(
		"a.id", "a.status", "a.created_at", "c.name",
		"CASE WHEN p.id IS NULL THEN NULL ELSE p.year::text || ' - ' || p.cycle END",
		"t.name", "t.modality").
		From("applications a").
		Join("calls c ON c.id = a.call_id").
		Join("scholarship_types t ON t.id = a.scholarship_type_id").
		LeftJoin("periods p ON p.id = c.period_id").
		Where(squirrel.Eq{"a.student_id": studentID}).
		OrderBy("a.created_at DESC", "a.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying applications: %w", err)
	}
	defer rows.Close()

	list := []models.ApplicationSummary{}
	for rows.Next() {
		var s models.ApplicationSummary
		if err := rows.Scan(&s.ID, &s.Status, &s.CreatedAt, &s.CallName, &s.CallPeriod, &s.TypeName, &s.TypeModality); err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}
	return list, nil
}

// ListDocuments returns the slots of an application owned by studentID.
// A foreign or unknown application yields an empty list.
func (r *ApplicationRepository) ListDocuments(ctx context.Context, applicationID, studentID int64) ([]models.DocumentSlot, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql, args, err := r.sb.Select(
		"d.id", "d.application_id", "d.document_type_id", "dt.name", "dt.mandatory", "d.file_name", "d.valid").
		From("application_documents d").
		Join("applications a ON a.id = d.application_id").
		Join("document_types dt ON dt.id = d.document_type_id").
		Where(squirrel.Eq{"d.application_id": applicationID, "a.student_id": studentID}).
		OrderBy("dt.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list documents query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying document slots: %w", err)
	}
	defer rows.Close()

	slots := []models.DocumentSlot{}
	for rows.Next() {
		var s models.DocumentSlot
		if err := rows.Scan(&s.ID, &s.ApplicationID, &s.DocumentTypeID, &s.DocumentName, &s.Mandatory, &s.FileName, &s.Valid); err != nil {
			return nil, fmt.Errorf("error scanning document slot row: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document slot rows: %w", err)
	}
	return slots, nil
}

// UploadDocument stores a file in a slot and resets its valid flag. The
// parent application row is locked so the upload serialises with Submit.
func (r *ApplicationRepository) UploadDocument(ctx context.Context, slotID, studentID int64, upload DocumentUpload, allowAfterSubmit bool) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	lockSQL, lockArgs, err := r.sb.Select("a.status").
		From("application_documents d").
		Join("applications a ON a.id = d.application_id").
		Where(squirrel.Eq{"d.id": slotID, "a.student_id": studentID}).
		Suffix("FOR UPDATE OF a").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build slot lock query: %w", err)
	}

	updateSQL, updateArgs, err := r.sb.Update("application_documents").
		Set("file_name", upload.FileName).
		Set("content_type", upload.ContentType).
		Set("file_data", upload.Content).
		Set("valid", string(models.ValidNo)).
		Set("uploaded_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upload query: %w", err)
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var status models.ApplicationStatus
		if err := tx.QueryRow(ctx, lockSQL, lockArgs...).Scan(&status); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrDocumentNotFound
			}
			return fmt.Errorf("error locking application for upload: %w", err)
		}
		if !allowAfterSubmit && status != models.StatusDraft {
			return apperrors.ErrAlreadySubmitted
		}

		if _, err := tx.Exec(ctx, updateSQL, updateArgs...); err != nil {
			return fmt.Errorf("error storing document: %w", err)
		}
		return nil
	})
}

// Submit moves a draft application to ENVIADA once every obligatory slot
// has a file. The row lock and the status-guarded update make concurrent
// submits and uploads safe.
func (r *ApplicationRepository) Submit(ctx context.Context, applicationID, studentID int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	lockSQL, lockArgs, err := r.sb.Select("status").
		From("applications").
		Where(squirrel.Eq{"id": applicationID, "student_id": studentID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build application lock query: %w", err)
	}

	slotsSQL, slotsArgs, err := r.sb.Select("dt.name", "dt.mandatory", "d.file_name").
		From("application_documents d").
		Join("document_types dt ON dt.id = d.document_type_id").
		Where(squirrel.Eq{"d.application_id": applicationID}).
		OrderBy("dt.id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build slot query: %w", err)
	}

	updateSQL, updateArgs, err := r.sb.Update("applications").
		Set("status", string(models.StatusSubmitted)).
		Set("submitted_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": applicationID, "status": string(models.StatusDraft)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build submit query: %w", err)
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var status models.ApplicationStatus
		if err := tx.QueryRow(ctx, lockSQL, lockArgs...).Scan(&status); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrApplicationNotFound
			}
			return fmt.Errorf("error locking application: %w", err)
		}
		if status != models.StatusDraft {
			return apperrors.ErrAlreadySubmitted
		}

		rows, err := tx.Query(ctx, slotsSQL, slotsArgs...)
		if err != nil {
			return fmt.Errorf("error querying document slots: %w", err)
		}
		var slots []models.DocumentSlot
		for rows.Next() {
			var s models.DocumentSlot
			if err := rows.Scan(&s.DocumentName, &s.Mandatory, &s.FileName); err != nil {
				rows.Close()
				return fmt.Errorf("error scanning document slot: %w", err)
			}
			slots = append(slots, s)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating document slots: %w", err)
		}

		if missing := models.MissingRequired(slots); len(missing) > 0 {
			return &apperrors.MissingDocumentsError{Names: missing}
		}

		tag, err := tx.Exec(ctx, updateSQL, updateArgs...)
		if err != nil {
			return fmt.Errorf("error submitting application: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrAlreadySubmitted
		}
		return nil
	})
}

// GetDocumentFile returns the stored binary of a slot owned by studentID
func (r *ApplicationRepository) GetDocumentFile(ctx context.Context, slotID, studentID int64) (*models.StoredDocument, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql, args, err := r.sb.Select("d.file_name", "COALESCE(d.content_type, '')", "d.file_data").
		From("application_documents d").
		Join("applications a ON a.id = d.application_id").
		Where(squirrel.Eq{"d.id": slotID, "a.student_id": studentID}).
		Where(squirrel.NotEq{"d.file_data": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build document download query: %w", err)
	}

	doc := &models.StoredDocument{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&doc.FileName, &doc.ContentType, &doc.Content); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("error reading document: %w", err)
	}
	return doc, nil
}

// LatestApplicationID returns the id of the student's most recent
// application, or nil when there is none.
func (r *ApplicationRepository) LatestApplicationID(ctx context.Context, studentID int64) (*int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql, args, err := r.sb.Select("id").
		From("applications").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build latest application query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting latest application: %w", err)
	}
	return &id, nil
}
