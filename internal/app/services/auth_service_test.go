package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/scholarship/internal/app/models"
	"github.com/yigit/scholarship/internal/app/models/dto"
	"github.com/yigit/scholarship/internal/pkg/apperrors"
	"github.com/yigit/scholarship/internal/pkg/auth"
)

func newAuthService(t *testing.T) (*AuthService, *fakeUsers, *auth.JWTService) {
	t.Helper()
	users := newFakeUsers()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "scholarship-test",
	})
	return NewAuthService(users, jwtService, zerolog.Nop()), users, jwtService
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _, jwtService := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "Ana Pérez",
		Email:    " Ana@UCR.ac.cr ",
		Password: "secreto1",
		Role:     "Estudiante",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "ana@ucr.ac.cr", user.Email)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.NotEqual(t, "secreto1", user.Password)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "ana@ucr.ac.cr", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, user.ID, resp.User.ID)

	id, err := jwtService.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id.UserID)
	assert.Equal(t, "estudiante", id.Role)
}

func TestAuthService_Register_Rejections(t *testing.T) {
	svc, users, _ := newAuthService(t)
	ctx := context.Background()
	users.add(&models.User{Email: "taken@ucr.ac.cr", Role: models.RoleStudent})

	tests := []struct {
		name    string
		req     dto.RegisterRequest
		wantErr error
	}{
		{"duplicate email", dto.RegisterRequest{Email: "taken@ucr.ac.cr", Password: "secreto1", Role: "estudiante"}, apperrors.ErrEmailAlreadyExists},
		{"bad email", dto.RegisterRequest{Email: "nope", Password: "secreto1", Role: "estudiante"}, apperrors.ErrValidationFailed},
		{"short password", dto.RegisterRequest{Email: "a@ucr.ac.cr", Password: "123", Role: "estudiante"}, apperrors.ErrValidationFailed},
		{"unknown role", dto.RegisterRequest{Email: "a@ucr.ac.cr", Password: "secreto1", Role: "rector"}, apperrors.ErrValidationFailed},
		{"staff role", dto.RegisterRequest{Email: "a@ucr.ac.cr", Password: "secreto1", Role: "administrador"}, apperrors.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.Register(ctx, &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	svc, users, _ := newAuthService(t)
	ctx := context.Background()

	hashed, err := auth.HashPassword("correcta")
	require.NoError(t, err)
	users.add(&models.User{Email: "ana@ucr.ac.cr", Password: hashed, Role: models.RoleStudent})

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "ana@ucr.ac.cr", Password: "incorrecta"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nadie@ucr.ac.cr", Password: "correcta"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_Me_FallsBackToAspirants(t *testing.T) {
	svc, users, _ := newAuthService(t)
	ctx := context.Background()

	users.aspirants[77] = &models.User{ID: 77, Name: "Luis", Email: "luis@correo.com", Role: models.RoleApplicant}

	got, err := svc.Me(ctx, 77)
	require.NoError(t, err)
	assert.Equal(t, models.RoleApplicant, got.Role)

	_, err = svc.Me(ctx, 78)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
