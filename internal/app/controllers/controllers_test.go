package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/scholarship/internal/app/models"
	"github.com/yigit/scholarship/internal/app/models/dto"
	"github.com/yigit/scholarship/internal/middleware"
	"github.com/yigit/scholarship/internal/pkg/apperrors"
	"github.com/yigit/scholarship/internal/pkg/filestorage"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.RegisterValidatorTagNames()
}

const testUserHeader = "X-Test-User"

// asUser stands in for JWTAuth
func asUser(c *gin.Context) {
	if id, err := strconv.ParseInt(c.GetHeader(testUserHeader), 10, 64); err == nil {
		c.Set(middleware.ContextUserID, id)
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Field   string          `json:"field"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func do(r http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(testUserHeader, "10")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type stubAuth struct {
	registerErr error
	loginErr    error
}

func (s stubAuth) Register(_ context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &models.User{ID: 1, Name: req.Name, Email: req.Email, Role: models.NormalizeRole(req.Role)}, nil
}

func (s stubAuth) Login(_ context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &dto.LoginResponse{Token: "t", TokenType: "Bearer", ExpiresIn: 60, User: dto.UserResponse{ID: 1, Email: req.Email}}, nil
}

func (s stubAuth) Me(_ context.Context, userID int64) (*models.User, error) {
	return &models.User{ID: userID, Role: models.RoleStudent}, nil
}

func authRouter(svc AuthService) *gin.Engine {
	ctrl := NewAuthController(svc, zerolog.Nop())
	r := gin.New()
	r.POST("/auth/register", ctrl.Register)
	r.POST("/auth/login", ctrl.Login)
	r.GET("/auth/me", asUser, ctrl.Me)
	return r
}

func TestAuthController_Register(t *testing.T) {
	r := authRouter(stubAuth{})

	w := do(r, http.MethodPost, "/auth/register", `{"email":"ana@ucr.ac.cr","password":"secreto1","role":"estudiante"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"id":1,"name":"","email":"ana@ucr.ac.cr","role":"estudiante","twofactor_enabled":false}`, string(env.Data))

	w = do(r, http.MethodPost, "/auth/register", `{"password":"secreto1","role":"estudiante"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email", decode(t, w).Error.Field)

	w = do(authRouter(stubAuth{registerErr: apperrors.ErrEmailAlreadyExists}), http.MethodPost, "/auth/register",
		`{"email":"ana@ucr.ac.cr","password":"secreto1","role":"estudiante"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthController_Login(t *testing.T) {
	w := do(authRouter(stubAuth{}), http.MethodPost, "/auth/login", `{"email":"ana@ucr.ac.cr","password":"x"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(authRouter(stubAuth{loginErr: apperrors.ErrInvalidCredentials}), http.MethodPost, "/auth/login", `{"email":"ana@ucr.ac.cr","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, string(dto.ErrorCodeInvalidCredentials), decode(t, w).Error.Code)

	w = do(authRouter(stubAuth{}), http.MethodPost, "/auth/login", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthController_Me(t *testing.T) {
	w := do(authRouter(stubAuth{}), http.MethodGet, "/auth/me", "")
	assert.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w = httptest.NewRecorder()
	authRouter(stubAuth{}).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type stubApplications struct {
	createErr error
	submitErr error
	uploaded  *filestorage.Upload
	doc       *models.StoredDocument
}

func (s *stubApplications) Create(context.Context, int64, int64, int64) (int64, int, error) {
	if s.createErr != nil {
		return 0, 0, s.createErr
	}
	return 42, 5, nil
}

func (s *stubApplications) List(context.Context, int64) ([]models.ApplicationSummary, error) {
	return []models.ApplicationSummary{}, nil
}

func (s *stubApplications) ListDocuments(_ context.Context, _, applicationID int64) ([]models.DocumentSlot, error) {
	return []models.DocumentSlot{{ID: 1, ApplicationID: applicationID, DocumentName: "Cédula de identidad", Mandatory: "SI", Valid: models.ValidNo}}, nil
}

func (s *stubApplications) Upload(_ context.Context, _, _ int64, upload *filestorage.Upload) error {
	s.uploaded = upload
	return nil
}

func (s *stubApplications) Submit(context.Context, int64, int64) error {
	return s.submitErr
}

func (s *stubApplications) Download(context.Context, int64, int64) (*models.StoredDocument, error) {
	if s.doc == nil {
		return nil, apperrors.ErrDocumentNotFound
	}
	return s.doc, nil
}

type stubCatalog struct{}

func (stubCatalog) ListCalls(context.Context) ([]models.Call, error) {
	return []models.Call{{ID: 1, Name: "Becas 2025-I", Status: "ABIERTA"}}, nil
}

func (stubCatalog) ListScholarshipTypes(context.Context) ([]models.ScholarshipType, error) {
	return nil, errors.New("db down")
}

type stubExpediente struct{}

func (stubExpediente) Get(context.Context, int64) (*models.Expediente, error) {
	return models.EmptyExpediente(nil), nil
}

func (stubExpediente) Update(context.Context, int64, *dto.UpdateExpedienteRequest) error {
	return apperrors.ErrNoApplication
}

type stubProfile struct{}

func (stubProfile) Get(_ context.Context, userID int64) (*models.Profile, error) {
	return &models.Profile{User: &models.User{ID: userID, Name: "Ana", Email: "ana@ucr.ac.cr", Role: models.RoleStudent}}, nil
}

func (stubProfile) Update(context.Context, int64, *dto.UpdateProfileRequest) error {
	return apperrors.NewValidationError("fecha_nacimiento", "fecha_nacimiento must be YYYY-MM-DD or DD/MM/YYYY")
}

type stubPanel struct{}

func (stubPanel) Get(context.Context, int64) (*models.Panel, error) {
	return nil, apperrors.ErrStudentNotFound
}

func studentRouter(apps *stubApplications) *gin.Engine {
	ctrl := NewStudentController(stubPanel{}, stubProfile{}, stubExpediente{}, stubCatalog{}, apps, 1<<20, zerolog.Nop())
	r := gin.New()
	g := r.Group("/student", asUser)
	g.GET("/panel", ctrl.GetPanel)
	g.GET("/perfil", ctrl.GetProfile)
	g.PUT("/perfil", ctrl.UpdateProfile)
	g.GET("/expediente", ctrl.GetExpediente)
	g.PUT("/expediente", ctrl.UpdateExpediente)
	g.GET("/convocatorias", ctrl.ListCalls)
	g.GET("/tipos-beca", ctrl.ListScholarshipTypes)
	g.POST("/solicitud", ctrl.CreateApplication)
	g.GET("/solicitudes", ctrl.ListApplications)
	g.GET("/solicitudes/:id/documentos", ctrl.ListDocuments)
	g.POST("/solicitudes/:id/subir", ctrl.UploadDocument)
	g.POST("/solicitud/:id/enviar", ctrl.SubmitApplication)
	g.GET("/solicitudes/doc/:id", ctrl.DownloadDocument)
	return r
}

func TestStudentController_CreateApplication(t *testing.T) {
	r := studentRouter(&stubApplications{})

	w := do(r, http.MethodPost, "/student/solicitud", `{"id_convocatoria":3,"id_tipo_beca":1}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id_solicitud":42,"documentos":5}`, string(decode(t, w).Data))

	w = do(r, http.MethodPost, "/student/solicitud", `{"id_convocatoria":3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "id_tipo_beca", decode(t, w).Error.Field)

	w = do(studentRouter(&stubApplications{createErr: apperrors.ErrDuplicateApplication}), http.MethodPost, "/student/solicitud", `{"id_convocatoria":3,"id_tipo_beca":1}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(studentRouter(&stubApplications{createErr: apperrors.NewBadRequestError("Estudiante no encontrado")}), http.MethodPost, "/student/solicitud", `{"id_convocatoria":3,"id_tipo_beca":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudentController_Lists(t *testing.T) {
	r := studentRouter(&stubApplications{})

	w := do(r, http.MethodGet, "/student/solicitudes", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", string(decode(t, w).Data))

	w = do(r, http.MethodGet, "/student/solicitudes/7/documentos", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"id_solicitud":7`)

	w = do(r, http.MethodGet, "/student/solicitudes/abc/documentos", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/student/convocatorias", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/student/tipos-beca", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func multipartBody(t *testing.T, field, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	if field != "" {
		part, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("otro", "x"))
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestStudentController_Upload(t *testing.T) {
	apps := &stubApplications{}
	r := studentRouter(apps)
	content := []byte("%PDF-1.4 cedula")

	body, contentType := multipartBody(t, UploadField, "../../cedula.pdf", content)
	req := httptest.NewRequest(http.MethodPost, "/student/solicitudes/3/subir", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(testUserHeader, "10")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"nombre_archivo":"cedula.pdf","tipo_contenido":"application/pdf","tamano":15}`, string(decode(t, w).Data))
	require.NotNil(t, apps.uploaded)
	assert.Equal(t, content, apps.uploaded.Content)

	body, contentType = multipartBody(t, "", "", nil)
	req = httptest.NewRequest(http.MethodPost, "/student/solicitudes/3/subir", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(testUserHeader, "10")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudentController_Submit(t *testing.T) {
	w := do(studentRouter(&stubApplications{}), http.MethodPost, "/student/solicitud/42/enviar", "")
	assert.Equal(t, http.StatusOK, w.Code)

	apps := &stubApplications{submitErr: &apperrors.MissingDocumentsError{Names: []string{"Comprobante de ingresos"}}}
	w = do(studentRouter(apps), http.MethodPost, "/student/solicitud/42/enviar", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Equal(t, string(dto.ErrorCodeMissingDocuments), env.Error.Code)
	assert.JSONEq(t, `{"faltantes":["Comprobante de ingresos"]}`, string(env.Error.Details))

	w = do(studentRouter(&stubApplications{submitErr: apperrors.ErrApplicationNotFound}), http.MethodPost, "/student/solicitud/42/enviar", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentController_Download(t *testing.T) {
	apps := &stubApplications{doc: &models.StoredDocument{FileName: "cédula.pdf", ContentType: "application/pdf", Content: []byte("%PDF")}}
	w := do(studentRouter(apps), http.MethodGet, "/student/solicitudes/doc/1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), "attachment;"))
	assert.Equal(t, "%PDF", w.Body.String())

	w = do(studentRouter(&stubApplications{}), http.MethodGet, "/student/solicitudes/doc/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentController_ProfileAndExpediente(t *testing.T) {
	r := studentRouter(&stubApplications{})

	w := do(r, http.MethodGet, "/student/perfil", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"correo":"ana@ucr.ac.cr"`)

	w = do(r, http.MethodPut, "/student/perfil", `{"nombre":"Ana","correo":"ana@ucr.ac.cr","fecha_nacimiento":"31/02/2004"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "fecha_nacimiento", decode(t, w).Error.Field)

	w = do(r, http.MethodGet, "/student/expediente", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id_solicitud":null,"socioeconomica":null,"familiares":[]}`, string(decode(t, w).Data))

	w = do(r, http.MethodPut, "/student/expediente", `{"socioeconomica":{"ingreso_total":"1000"},"familiares":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/student/panel", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthController(t *testing.T) {
	r := gin.New()
	ok := NewHealthController(pingFunc(func(context.Context) error { return nil }))
	down := NewHealthController(pingFunc(func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		if !hasDeadline {
			return errors.New("no deadline")
		}
		return context.DeadlineExceeded
	}))
	r.GET("/health", ok.Health)
	r.GET("/down", down.Health)
	r.GET("/ping", ok.Ping)

	w := do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"ok"}`, string(decode(t, w).Data))

	w = do(r, http.MethodGet, "/down", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = do(r, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStudentController_UpdateExpediente_FamilyNameRules(t *testing.T) {
	r := studentRouter(&stubApplications{})

	long := strings.Repeat("ñ", 151)
	w := do(r, http.MethodPut, "/student/expediente", `{"familiares":[{"nombre":"`+long+`","edad":40}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	require.NotNil(t, body.Error)
	assert.Equal(t, string(dto.ErrorCodeValidationFailed), body.Error.Code)
	assert.Equal(t, "nombre", body.Error.Field)

	w = do(r, http.MethodPut, "/student/expediente", `{"familiares":[{"parentesco":"Madre"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "nombre", decode(t, w).Error.Field)

	// 150 runes passes binding and reaches the service.
	w = do(r, http.MethodPut, "/student/expediente", `{"familiares":[{"nombre":"`+strings.Repeat("ñ", 150)+`"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(dto.ErrorCodeBadRequest), decode(t, w).Error.Code)
}
