package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"
	"github.com/yigit/scholarship/internal/db"
)

// DocumentTypes is the default checklist every new application fans out to
var DocumentTypes = []struct {
	Name      string
	Mandatory string
}{
	{"Cédula de identidad", "SI"},
	{"Constancia de matrícula", "SI"},
	{"Constancia de ingresos familiares", "SI"},
	{"Recibo de servicios públicos", "SI"},
	{"Carta de motivación", "NO"},
}

// ScholarshipTypes are the default scholarship categories
var ScholarshipTypes = []struct {
	Code       string
	Name       string
	Modality   string
	MonthlyCap float64
}{
	{"SOCIO", "Beca socioeconómica", "Mensual", 150000},
	{"EXCEL", "Beca de excelencia académica", "Exoneración", 0},
	{"DEPOR", "Beca deportiva", "Mensual", 80000},
}

// CreateDefaultData inserts the catalogs and an open call for the current
// period when they are missing. Existing rows are left untouched.
func CreateDefaultData(ctx context.Context, pool db.Querier, lgr zerolog.Logger) error {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	lgr.Info().Msg("Checking/Creating default data (document types, scholarship types, calls)...")

	var finalErr error

	for _, dt := range DocumentTypes {
		sql, args, err := sb.Insert("document_types").
			Columns("name", "mandatory").
			Values(dt.Name, dt.Mandatory).
			Suffix("ON CONFLICT (name) DO NOTHING").
			ToSql()
		if err == nil {
			_, err = pool.Exec(ctx, sql, args...)
		}
		if err != nil {
			lgr.Error().Err(err).Str("documentType", dt.Name).Msg("Error creating document type")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for _, st := range ScholarshipTypes {
		sql, args, err := sb.Insert("scholarship_types").
			Columns("code", "name", "modality", "monthly_cap").
			Values(st.Code, st.Name, st.Modality, st.MonthlyCap).
			Suffix("ON CONFLICT (code) DO NOTHING").
			ToSql()
		if err == nil {
			_, err = pool.Exec(ctx, sql, args...)
		}
		if err != nil {
			lgr.Error().Err(err).Str("scholarshipType", st.Code).Msg("Error creating scholarship type")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if err := createCurrentCall(ctx, pool, sb, time.Now()); err != nil {
		lgr.Error().Err(err).Msg("Error creating default call")
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr != nil {
		lgr.Warn().Err(finalErr).Msg("Default data created with errors")
		return finalErr
	}
	lgr.Info().Msg("Default data check/creation completed.")
	return nil
}

// cycleOf maps a month to the academic cycle it belongs to
func cycleOf(t time.Time) string {
	if t.Month() <= time.June {
		return "I"
	}
	return "II"
}

func createCurrentCall(ctx context.Context, pool db.Querier, sb squirrel.StatementBuilderType, now time.Time) error {
	cycle := cycleOf(now)

	periodSQL, periodArgs, err := sb.Insert("periods").
		Columns("year", "cycle").
		Values(now.Year(), cycle).
		Suffix("ON CONFLICT (year, cycle) DO UPDATE SET cycle = EXCLUDED.cycle RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build period insert: %w", err)
	}

	var periodID int64
	if err := pool.QueryRow(ctx, periodSQL, periodArgs...).Scan(&periodID); err != nil {
		return fmt.Errorf("error creating period: %w", err)
	}

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	callSQL, callArgs, err := sb.Insert("calls").
		Columns("name", "description", "period_id", "start_date", "end_date", "status").
		Values(
			fmt.Sprintf("Convocatoria de becas %d-%s", now.Year(), cycle),
			"Convocatoria ordinaria de becas estudiantiles",
			periodID, start, start.AddDate(0, 3, 0), "ABIERTA").
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build call insert: %w", err)
	}

	if _, err := pool.Exec(ctx, callSQL, callArgs...); err != nil {
		return fmt.Errorf("error creating call: %w", err)
	}
	return nil
}
