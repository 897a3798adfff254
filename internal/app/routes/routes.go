package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/scholarship/internal/app/controllers"
	"github.com/yigit/scholarship/internal/app/models"
	"github.com/yigit/scholarship/internal/middleware"
	"github.com/yigit/scholarship/internal/pkg/metrics"
)

// Controllers groups every HTTP handler the router mounts
type Controllers struct {
	Auth      *controllers.AuthController
	TwoFactor *controllers.TwoFactorController
	Student   *controllers.StudentController
	Health    *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	authMiddleware *middleware.AuthMiddleware,
	secondFactor middleware.SecondFactorChecker,
) {
	router.GET("/health", ctrl.Health.Health)
	router.GET("/ping", ctrl.Health.Ping)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.GET("/me", authMiddleware.JWTAuth(), ctrl.Auth.Me)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	twoFactor := authenticated.Group("/2fa")
	{
		twoFactor.POST("/send-otp", ctrl.TwoFactor.SendOTP)
		twoFactor.POST("/enable", ctrl.TwoFactor.Enable)
		twoFactor.POST("/disable", ctrl.TwoFactor.Disable)
	}

	requireOTP := middleware.SecondFactor(secondFactor)

	student := authenticated.Group("/student")
	{
		student.GET("/convocatorias", ctrl.Student.ListCalls)
		student.GET("/tipos-beca", ctrl.Student.ListScholarshipTypes)

		student.POST("/solicitud", ctrl.Student.CreateApplication)
		student.POST("/solicitud/:id/enviar", requireOTP, ctrl.Student.SubmitApplication)
		student.GET("/solicitudes", ctrl.Student.ListApplications)
		student.GET("/solicitudes/:id/documentos", ctrl.Student.ListDocuments)
		student.POST("/solicitudes/:id/subir", ctrl.Student.UploadDocument)
		student.GET("/solicitudes/doc/:id", ctrl.Student.DownloadDocument)

		// Role-protected routes within student
		studentOnly := student.Group("")
		studentOnly.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
		{
			studentOnly.GET("/panel", ctrl.Student.GetPanel)
			studentOnly.GET("/perfil", ctrl.Student.GetProfile)
			studentOnly.PUT("/perfil", requireOTP, ctrl.Student.UpdateProfile)
			studentOnly.GET("/expediente", ctrl.Student.GetExpediente)
			studentOnly.PUT("/expediente", ctrl.Student.UpdateExpediente)
		}
	}
}
