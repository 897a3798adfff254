package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/scholarship/internal/app/models/dto"
	"github.com/yigit/scholarship/internal/middleware"
)

// TwoFactorController handles the email second factor
type TwoFactorController struct {
	twoFactorService TwoFactorService
	logger           zerolog.Logger
}

// NewTwoFactorController creates a new TwoFactorController
func NewTwoFactorController(twoFactorService TwoFactorService, logger zerolog.Logger) *TwoFactorController {
	return &TwoFactorController{
		twoFactorService: twoFactorService,
		logger:           logger,
	}
}

// SendOTP mails a one-time code to the caller
// @Summary Send verification code
// @Description Issues a six digit code valid for five minutes and emails it to the caller
// @Tags 2fa
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.OTPSentResponse} "Code sent"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 503 {object} dto.ErrorResponse "Code could not be delivered"
// @Router /2fa/send-otp [post]
func (c *TwoFactorController) SendOTP(ctx *gin.Context) {
	userID, ok := middleware.MustUserID(ctx)
	if !ok {
		return
	}

	expiresIn, err := c.twoFactorService.SendOTP(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.OTPSentResponse{ExpiresIn: expiresIn}, "Código enviado"))
}

// Enable turns the second factor on
// @Summary Enable two-factor authentication
// @Tags 2fa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.OTPCodeRequest true "Code received by email"
// @Success 200 {object} dto.APIResponse "Two-factor enabled"
// @Failure 400 {object} dto.ErrorResponse "Wrong or expired code"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /2fa/enable [post]
func (c *TwoFactorController) Enable(ctx *gin.Context) {
	c.toggle(ctx, true)
}

// Disable turns the second factor off
// @Summary Disable two-factor authentication
// @Tags 2fa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.OTPCodeRequest true "Code received by email"
// @Success 200 {object} dto.APIResponse "Two-factor disabled"
// @Failure 400 {object} dto.ErrorResponse "Wrong or expired code"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /2fa/disable [post]
func (c *TwoFactorController) Disable(ctx *gin.Context) {
	c.toggle(ctx, false)
}

func (c *TwoFactorController) toggle(ctx *gin.Context, enable bool) {
	userID, ok := middleware.MustUserID(ctx)
	if !ok {
		return
	}
	var req dto.OTPCodeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	var err error
	message := "2FA activado"
	if enable {
		err = c.twoFactorService.Enable(ctx.Request.Context(), userID, req.Code)
	} else {
		message = "2FA desactivado"
		err = c.twoFactorService.Disable(ctx.Request.Context(), userID, req.Code)
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", userID).Bool("enabled", enable).Msg("Two-factor setting changed")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, message))
}
