package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/scholarship/internal/app/models/dto"
	"github.com/yigit/scholarship/internal/pkg/apperrors"
	"github.com/yigit/scholarship/internal/pkg/filestorage"
	"github.com/yigit/scholarship/internal/pkg/logger"
)

// RetryAfterSeconds is advertised on 503 responses
const RetryAfterSeconds = 5

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := mapError(err)

	if status == http.StatusServiceUnavailable {
		c.Header("Retry-After", strconv.Itoa(RetryAfterSeconds))
	}
	if status >= http.StatusInternalServerError {
		logger.Ctx(c.Request.Context()).Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Msg("Request failed")
	}

	c.JSON(status, dto.NewErrorResponse(detail))
}

// mapError translates a domain error into a status code and error detail.
// A CustomError message, when present, replaces the default one.
func mapError(err error) (int, *dto.ErrorDetail) {
	var missing *apperrors.MissingDocumentsError
	if errors.As(err, &missing) {
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeMissingDocuments, "Faltan documentos obligatorios").
			WithDetails(dto.MissingDocumentsDetails{Missing: missing.Names})
	}

	var status int
	var detail *dto.ErrorDetail
	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound, apperrors.ErrUserNotFound):
		status, detail = http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Recurso no encontrado")
	case errors.Is(err, apperrors.ErrStudentNotFound):
		status, detail = http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Estudiante no encontrado")
	case errors.Is(err, apperrors.ErrApplicationNotFound):
		status, detail = http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Solicitud no encontrada")
	case errors.Is(err, apperrors.ErrDocumentNotFound):
		status, detail = http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Documento no encontrado")

	case errors.Is(err, apperrors.ErrDuplicateApplication):
		status, detail = http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Ya existe una solicitud para esta convocatoria")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		status, detail = http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "El correo ya está registrado")
	case errors.Is(err, apperrors.ErrConflict):
		status, detail = http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, "Conflicto")

	case errors.Is(err, apperrors.ErrAlreadySubmitted):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeConflict, "La solicitud ya fue enviada")
	case errors.Is(err, apperrors.ErrNoFileProvided), errors.Is(err, filestorage.ErrEmptyFile):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, "No se envió ningún archivo")
	case errors.Is(err, filestorage.ErrFileTooLarge):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, "El archivo excede el tamaño permitido")
	case errors.Is(err, apperrors.ErrNoApplication):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, "No existe una solicitud asociada")
	case errors.Is(err, apperrors.ErrInvalidReference):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Convocatoria o tipo de beca inexistente")
	case errors.Is(err, apperrors.ErrValidationFailed):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Datos inválidos")
	case errors.Is(err, apperrors.ErrBadRequest):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Solicitud inválida")
	case errors.Is(err, apperrors.ErrInvalidOTP):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidOTP, "Código inválido o expirado")

	case errors.Is(err, apperrors.ErrSecondFactorRequired):
		status, detail = http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeSecondFactorRequired, "Se requiere el código de verificación")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status, detail = http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Credenciales inválidas")
	case errors.Is(err, apperrors.ErrTokenExpired):
		status, detail = http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expirado")
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrInvalidFormat):
		status, detail = http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token inválido")

	case errors.Is(err, apperrors.ErrPermissionDenied):
		status, detail = http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Acceso denegado")

	case errors.Is(err, context.DeadlineExceeded), pgconn.Timeout(err),
		errors.Is(err, apperrors.ErrUnavailable), errors.Is(err, apperrors.ErrDeliveryFailed):
		status, detail = http.StatusServiceUnavailable, dto.NewErrorDetail(dto.ErrorCodeServiceUnavailable, "Servicio no disponible, intente de nuevo")
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Error interno del servidor").
			WithSeverity(dto.ErrorSeverityCritical)
	}

	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		detail.Message = custom.Message
		if field, ok := custom.Details["field"].(string); ok {
			detail.Field = field
		}
	}
	return status, detail
}
