package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/scholarship/internal/app/models"
)

func TestExpedienteRepository_ReplaceDeletesThenReinserts(t *testing.T) {
	mock := newMockPool(t)
	repo := NewExpedienteRepository(mock, time.Second)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO socioeconomic_info").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec("DELETE FROM family_members").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec("INSERT INTO family_members").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	family := []models.FamilyMember{{Name: "Rosa"}}
	id, err := repo.Replace(context.Background(), 42, models.SocioeconomicInfo{}, family)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpedienteRepository_ReplaceWithEmptyFamilyOnlyDeletes(t *testing.T) {
	mock := newMockPool(t)
	repo := NewExpedienteRepository(mock, time.Second)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO socioeconomic_info").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec("DELETE FROM family_members").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectCommit()

	_, err := repo.Replace(context.Background(), 42, models.SocioeconomicInfo{}, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpedienteRepository_ReplaceRollsBackOnInsertFailure(t *testing.T) {
	mock := newMockPool(t)
	repo := NewExpedienteRepository(mock, time.Second)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO socioeconomic_info").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec("DELETE FROM family_members").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec("INSERT INTO family_members").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO family_members").
		WillReturnError(errors.New("value too long"))
	mock.ExpectRollback()

	family := []models.FamilyMember{{Name: "Rosa"}, {Name: "Luis"}}
	_, err := repo.Replace(context.Background(), 42, models.SocioeconomicInfo{}, family)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpedienteRepository_GetWithoutRecord(t *testing.T) {
	mock := newMockPool(t)
	repo := NewExpedienteRepository(mock, time.Second)

	mock.ExpectQuery("FROM socioeconomic_info").
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	info, family, err := repo.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, info)
	assert.NotNil(t, family)
	assert.Empty(t, family)
}
