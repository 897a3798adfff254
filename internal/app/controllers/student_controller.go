package controllers

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/scholarship/internal/app/models/dto"
	"github.com/yigit/scholarship/internal/middleware"
	"github.com/yigit/scholarship/internal/pkg/apperrors"
	"github.com/yigit/scholarship/internal/pkg/filestorage"
)

// UploadField is the multipart field carrying a document
const UploadField = "archivo"

// StudentController serves the student area
type StudentController struct {
	panelService       PanelService
	profileService     ProfileService
	expedienteService  ExpedienteService
	catalogService     CatalogService
	applicationService ApplicationService
	maxUploadBytes     int64
	logger             zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(
	panelService PanelService,
	profileService ProfileService,
	expedienteService ExpedienteService,
	catalogService CatalogService,
	applicationService ApplicationService,
	maxUploadBytes int64,
	logger zerolog.Logger,
) *StudentController {
	return &StudentController{
		panelService:       panelService,
		profileService:     profileService,
		expedienteService:  expedienteService,
		catalogService:     catalogService,
		applicationService: applicationService,
		maxUploadBytes:     maxUploadBytes,
		logger:             logger,
	}
}

// GetPanel returns the student dashboard
// @Summary Student dashboard
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Panel}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not a student"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /student/panel [get]
func (c *StudentController) GetPanel(ctx *gin.Context) {
	userID, ok := middleware.MustUserID(ctx)
	if !ok {
		return
	}

	panel, err := c.panelService.Get(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(panel, ""))
}

// GetProfile returns the caller's perfil
// @Summary Get profile
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /student/perfil [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	userID, ok := middleware.MustUserID(ctx)
	if !ok {
		return
	}

	profile, err := c.profileService.Get(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProfileResponse(profile), ""))
}

// UpdateProfile stores the caller's perfil
// @Summary Update profile
// @Description Updates name and email and upserts personal info. Requires X-OTP-Code when two-factor is enabled.
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-OTP-Code header string false "One-time code"
// @Param request body dto.UpdateProfileRequest true "Profile"
// @Success 200 {object} dto.APIResponse "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized or code required"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /student/perfil [put]
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	userID, ok := middleware.MustUserID(ctx)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.profileService.Update(ctx.Request.Context(), userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Perfil actualizado"))
}

// GetExpediente returns the socioeconomic record of the latest application
// @Summary Get expediente
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Expediente}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /student/expediente [get]
func (c *StudentController) GetExpediente(ctx *gin.Context) {
	userID, ok := middleware.MustUserID(ctx)
	if !ok {
		return
	}

	expediente, err := c.expedienteService.Get(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(expediente, ""))
}

// UpdateExpediente replaces the socioeconomic record and family list
// @Summary Update expediente
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateExpedienteRequest true "Expediente"
// @Success 200 {object} dto.APIResponse "Expediente updated"
// @Failure 400 {object} dto.ErrorResponse "No application"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /student/expediente [put]
func (c *StudentController) UpdateExpediente(ctx *gin.Context) {
	userID, ok := middleware.MustUserID(ctx)
	if !ok {
		return
	}
	var req dto.UpdateExpedienteRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.expedienteService.Update(ctx.Request.Context(), userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Expediente actualizado"))
}

// ListCalls lists the calls
// @Summary List calls
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Call}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/convocatorias [get]
func (c *StudentController) ListCalls(ctx *gin.Context) {
	calls, err := c.catalogService.ListCalls(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(calls, ""))
}

// ListScholarshipTypes lists the scholarship types
// @Summary List scholarship types
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ScholarshipType}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/tipos-beca [get]
func (c *StudentController) ListScholarshipTypes(ctx *gin.Context) {
	types, err := c.catalogService.ListScholarshipTypes(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(types, ""))
}

// CreateApplication opens a draft application
// @Summary Create application
// @Description Creates a BORRADOR application and one document slot per document type
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateApplicationRequest true "Call and scholarship type"
// @Success 201 {object} dto.APIResponse{data=dto.CreateApplicationResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid data or student not found"
// @Failure 409 {object} dto.ErrorResponse "Application already exists for the call"
// @Router /student/solicitud [post]
func (c *StudentController) CreateApplication(ctx *gin.Context) {
	userID, ok := middleware.MustUserID(ctx)
	if !ok {
		return
	}
	var req dto.CreateApplicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	id, slots, err := c.applicationService.Create(ctx.Request.Context(), userID, req.CallID, req.ScholarshipTypeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.CreateApplicationResponse{ID: id, Documents: slots}, "Solicitud creada"))
}

// ListApplications lists the caller's applications
// @Summary List applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ApplicationSummary}
// @Router /student/solicitudes [get]
func (c *StudentController) ListApplications(ctx *gin.Context) {
	userID, ok := middleware.MustUserID(ctx)
	if !ok {
		return
	}

	list, err := c.applicationService.List(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(list, ""))
}

// ListDocuments lists the document slots of an application
// @Summary List application documents
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=[]models.DocumentSlot}
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Router /student/solicitudes/{id}/documentos [get]
func (c *StudentController) ListDocuments(ctx *gin.Context) {
	userID, ok := middleware.MustUserID(ctx)
	if !ok {
		return
	}
	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	docs, err := c.applicationService.ListDocuments(ctx.Request.Context(), userID, applicationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(docs, ""))
}

// UploadDocument stores a file into a document slot
// @Summary Upload document
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document slot ID"
// @Param archivo formData file true "Document file"
// @Success 200 {object} dto.APIResponse{data=dto.UploadResponse}
// @Failure 400 {object} dto.ErrorResponse "No file or application already submitted"
// @Failure 404 {object} dto.ErrorResponse "Slot not found"
// @Router /student/solicitudes/{id}/subir [post]
func (c *StudentController) UploadDocument(ctx *gin.Context) {
	userID, ok := middleware.MustUserID(ctx)
	if !ok {
		return
	}
	slotID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile(UploadField)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrNoFileProvided)
		return
	}
	upload, err := filestorage.ReadUpload(fileHeader, c.maxUploadBytes)
	if err != nil {
		if !errors.Is(err, filestorage.ErrEmptyFile) && !errors.Is(err, filestorage.ErrFileTooLarge) {
			c.logger.Error().Err(err).Int64("slotID", slotID).Msg("Failed to read uploaded file")
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.applicationService.Upload(ctx.Request.Context(), userID, slotID, upload); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UploadResponse{
		FileName:    upload.Name,
		ContentType: upload.MimeType,
		Size:        upload.Size(),
	}, "Archivo subido"))
}

// SubmitApplication sends a draft application for evaluation
// @Summary Submit application
// @Description Moves a BORRADOR application to ENVIADA when every mandatory document is uploaded. Requires X-OTP-Code when two-factor is enabled.
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param X-OTP-Code header string false "One-time code"
// @Success 200 {object} dto.APIResponse "Application submitted"
// @Failure 400 {object} dto.ErrorResponse "Missing documents (details.faltantes) or already submitted"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /student/solicitud/{id}/enviar [post]
func (c *StudentController) SubmitApplication(ctx *gin.Context) {
	userID, ok := middleware.MustUserID(ctx)
	if !ok {
		return
	}
	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.applicationService.Submit(ctx.Request.Context(), userID, applicationID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Solicitud enviada"))
}

// DownloadDocument streams a stored document
// @Summary Download document
// @Tags applications
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "Document slot ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse "Document not found"
// @Router /student/solicitudes/doc/{id} [get]
func (c *StudentController) DownloadDocument(ctx *gin.Context) {
	userID, ok := middleware.MustUserID(ctx)
	if !ok {
		return
	}
	slotID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	doc, err := c.applicationService.Download(ctx.Request.Context(), userID, slotID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": filestorage.SanitizeFilename(doc.FileName)})
	ctx.Header("Content-Disposition", disposition)
	ctx.Data(http.StatusOK, doc.ContentType, doc.Content)
}
