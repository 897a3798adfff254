package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/scholarship/internal/app/models"
	"github.com/yigit/scholarship/internal/pkg/apperrors"
)

func TestPanelService_Get(t *testing.T) {
	users := newFakeUsers()
	u := users.add(&models.User{Name: "Ana", Email: "ana@ucr.ac.cr", Role: models.RoleStudent})
	students := fakeStudents{u.ID: {ID: 5, UserID: u.ID}}

	svc := NewPanelService(users, students, fakePanel{})
	panel, err := svc.Get(context.Background(), u.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(5), panel.Student.ID)
	assert.Equal(t, "ACTIVA", panel.Scholarship.Status)
	assert.Equal(t, 3, panel.Applications.Total)
	assert.Equal(t, 3, panel.Documents.Pending)
	assert.Len(t, panel.Notifications, NotificationLimit)
	assert.NotNil(t, panel.FollowUps)
	assert.Len(t, panel.Renewals, 1)
}

func TestPanelService_Get_PropagatesFailure(t *testing.T) {
	users := newFakeUsers()
	u := users.add(&models.User{Name: "Ana", Email: "ana@ucr.ac.cr"})
	students := fakeStudents{u.ID: {ID: 5, UserID: u.ID}}

	svc := NewPanelService(users, students, fakePanel{failWith: errBoom})
	_, err := svc.Get(context.Background(), u.ID)
	assert.ErrorIs(t, err, errBoom)
}

func TestPanelService_Get_NoStudent(t *testing.T) {
	users := newFakeUsers()
	u := users.add(&models.User{Name: "Luis", Email: "luis@correo.com"})

	svc := NewPanelService(users, fakeStudents{}, fakePanel{})
	_, err := svc.Get(context.Background(), u.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
