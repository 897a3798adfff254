package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/scholarship/internal/app/models/dto"
	"github.com/yigit/scholarship/internal/pkg/apperrors"
)

func newExpedienteService() (*ExpedienteService, *fakeApplications, *fakeExpedientes) {
	students := fakeStudents{studentUserID: {ID: 1, UserID: studentUserID}}
	apps := newFakeApplications(seededDocumentTypes...)
	records := newFakeExpedientes()
	return NewExpedienteService(students, apps, records, zerolog.Nop()), apps, records
}

func TestExpedienteService_Get_EmptyShapes(t *testing.T) {
	svc, apps, _ := newExpedienteService()
	ctx := context.Background()

	got, err := svc.Get(ctx, studentUserID)
	require.NoError(t, err)
	assert.Nil(t, got.ApplicationID)
	assert.Nil(t, got.Socioeconomic)
	assert.Equal(t, 0, len(got.Family))
	assert.NotNil(t, got.Family)

	id, _, err := apps.Create(ctx, 1, 1, 1)
	require.NoError(t, err)

	got, err = svc.Get(ctx, studentUserID)
	require.NoError(t, err)
	require.NotNil(t, got.ApplicationID)
	assert.Equal(t, id, *got.ApplicationID)
	assert.Nil(t, got.Socioeconomic)
}

func TestExpedienteService_Get_NoStudent(t *testing.T) {
	svc, _, _ := newExpedienteService()

	_, err := svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestExpedienteService_Update_NoApplication(t *testing.T) {
	svc, _, _ := newExpedienteService()

	err := svc.Update(context.Background(), studentUserID, &dto.UpdateExpedienteRequest{})
	assert.ErrorIs(t, err, apperrors.ErrNoApplication)
}

func TestExpedienteService_Update_CoercesAndReplaces(t *testing.T) {
	svc, apps, records := newExpedienteService()
	ctx := context.Background()

	_, _, err := apps.Create(ctx, 1, 1, 1)
	require.NoError(t, err)
	latest, _, err := apps.Create(ctx, 1, 2, 1)
	require.NoError(t, err)

	err = svc.Update(ctx, studentUserID, &dto.UpdateExpedienteRequest{
		Socioeconomic: dto.SocioeconomicInput{
			FatherOccupation: "Agricultor",
			TotalIncome:      "350000",
			TotalExpenses:    "no sé",
			HousingType:      "  ",
		},
		Family: []dto.FamilyMemberInput{
			{Name: "Rosa", Relationship: "Madre", Age: "47", MonthlyIncome: 420000.0},
			{Name: "Pedro", Age: "", MonthlyIncome: nil},
			{Name: "Luis", Age: 1e30, MonthlyIncome: "1e20"},
		},
	})
	require.NoError(t, err)

	info, ok := records.infos[latest]
	require.True(t, ok)
	require.NotNil(t, info.TotalIncome)
	assert.InDelta(t, 350000, *info.TotalIncome, 0.001)
	assert.Nil(t, info.TotalExpenses)
	assert.Nil(t, info.HousingType)
	assert.Equal(t, "Agricultor", *info.FatherOccupation)

	family := records.families[latest]
	require.Len(t, family, 3)
	require.NotNil(t, family[0].Age)
	assert.Equal(t, 47, *family[0].Age)
	assert.Nil(t, family[1].Age)
	assert.Nil(t, family[1].MonthlyIncome)
	assert.Nil(t, family[2].Age, "out of range ages are dropped, not wrapped")
	assert.Nil(t, family[2].MonthlyIncome)

	// A second save replaces the family list.
	err = svc.Update(ctx, studentUserID, &dto.UpdateExpedienteRequest{
		Family: []dto.FamilyMemberInput{{Name: "Rosa"}},
	})
	require.NoError(t, err)
	assert.Len(t, records.families[latest], 1)

	got, err := svc.Get(ctx, studentUserID)
	require.NoError(t, err)
	require.NotNil(t, got.Socioeconomic)
	assert.Len(t, got.Family, 1)
}

func TestExpedienteService_Update_StorageError(t *testing.T) {
	svc, apps, records := newExpedienteService()
	ctx := context.Background()
	_, _, err := apps.Create(ctx, 1, 1, 1)
	require.NoError(t, err)

	records.failOn = errBoom
	err = svc.Update(ctx, studentUserID, &dto.UpdateExpedienteRequest{})
	assert.ErrorIs(t, err, errBoom)
}
