package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/scholarship/internal/app/models"
	"github.com/yigit/scholarship/internal/db"
)

// CatalogRepository reads calls, scholarship types and document types
type CatalogRepository struct {
	baseRepository
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(pool db.Pool, queryTimeout time.Duration) *CatalogRepository {
	return &CatalogRepository{baseRepository: newBaseRepository(pool, queryTimeout)}
}

// ListCalls returns every call with its academic period, newest first
func (r *CatalogRepository) ListCalls(ctx context.Context) ([]models.Call, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql, args, err := r.sb.Select(
		"c.id", "c.name", "c.description", "c.start_date", "c.end_date", "c.status",
		"CASE WHEN p.id IS NULL THEN NULL ELSE p.year::text || ' - ' || p.cycle END AS period").
		From("calls c").
		LeftJoin("periods p ON p.id = c.period_id").
		OrderBy("c.start_date DESC NULLS LAST", "c.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list calls query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying calls: %w", err)
	}
	defer rows.Close()

	calls := []models.Call{}
	for rows.Next() {
		var c models.Call
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.StartDate, &c.EndDate, &c.Status, &c.Period); err != nil {
			return nil, fmt.Errorf("error scanning call row: %w", err)
		}
		calls = append(calls, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating call rows: %w", err)
	}
	return calls, nil
}

// ListScholarshipTypes returns the scholarship types ordered by name
func (r *CatalogRepository) ListScholarshipTypes(ctx context.Context) ([]models.ScholarshipType, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql, args, err := r.sb.Select("id", "code", "name", "modality", "monthly_cap::float8").
		From("scholarship_types").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list scholarship types query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying scholarship types: %w", err)
	}
	defer rows.Close()

	types := []models.ScholarshipType{}
	for rows.Next() {
		var t models.ScholarshipType
		if err := rows.Scan(&t.ID, &t.Code, &t.Name, &t.Modality, &t.MonthlyCap); err != nil {
			return nil, fmt.Errorf("error scanning scholarship type row: %w", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scholarship type rows: %w", err)
	}
	return types, nil
}

// ListDocumentTypes returns the document checklist template
func (r *CatalogRepository) ListDocumentTypes(ctx context.Context) ([]models.DocumentType, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql, args, err := r.sb.Select("id", "name", "mandatory").
		From("document_types").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list document types query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying document types: %w", err)
	}
	defer rows.Close()

	docTypes := []models.DocumentType{}
	for rows.Next() {
		var d models.DocumentType
		if err := rows.Scan(&d.ID, &d.Name, &d.Mandatory); err != nil {
			return nil, fmt.Errorf("error scanning document type row: %w", err)
		}
		docTypes = append(docTypes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document type rows: %w", err)
	}
	return docTypes, nil
}
