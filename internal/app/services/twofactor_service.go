package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/scholarship/internal/pkg/apperrors"
	"github.com/yigit/scholarship/internal/pkg/email"
	"github.com/yigit/scholarship/internal/pkg/metrics"
)

// TwoFactorService drives the email one-time-code second factor
type TwoFactorService struct {
	userRepo UserRepository
	registry CodeRegistry
	sender   email.Sender
	logger   zerolog.Logger
}

// NewTwoFactorService creates a new TwoFactorService
func NewTwoFactorService(userRepo UserRepository, registry CodeRegistry, sender email.Sender, logger zerolog.Logger) *TwoFactorService {
	return &TwoFactorService{
		userRepo: userRepo,
		registry: registry,
		sender:   sender,
		logger:   logger,
	}
}

// SendOTP issues a code and mails it to the user's address. When delivery
// fails the code is revoked and ErrDeliveryFailed is returned.
func (s *TwoFactorService) SendOTP(ctx context.Context, userID int64) (int, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	code, err := s.registry.Issue(ctx, userID)
	if err != nil {
		metrics.RecordOTP(metrics.ActionIssue, false, err)
		return 0, fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}

	subject, body := email.OTPMessage(code, s.registry.TTL())
	if err := s.sender.Send(ctx, user.Email, subject, body); err != nil {
		metrics.RecordOTP(metrics.ActionIssue, false, err)
		if revokeErr := s.registry.Revoke(context.WithoutCancel(ctx), userID, code); revokeErr != nil {
			s.logger.Error().Err(revokeErr).Int64("userID", userID).Msg("Failed to revoke undelivered code")
		}
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Verification code delivery failed")
		return 0, fmt.Errorf("%w: %v", apperrors.ErrDeliveryFailed, err)
	}

	metrics.RecordOTP(metrics.ActionIssue, true, nil)
	return int(s.registry.TTL().Seconds()), nil
}

// Enable turns the second factor on after checking a code
func (s *TwoFactorService) Enable(ctx context.Context, userID int64, code string) error {
	if err := s.verify(ctx, userID, code); err != nil {
		return err
	}
	return s.userRepo.SetTwoFactor(ctx, userID, true)
}

// Disable turns the second factor off after checking a code
func (s *TwoFactorService) Disable(ctx context.Context, userID int64, code string) error {
	if err := s.verify(ctx, userID, code); err != nil {
		return err
	}
	return s.userRepo.SetTwoFactor(ctx, userID, false)
}

// RequireSecondFactor checks the code of a sensitive action. Users without
// the second factor pass; the others need a valid code.
func (s *TwoFactorService) RequireSecondFactor(ctx context.Context, userID int64, code string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.TwoFactorEnabled {
		return nil
	}
	if code == "" {
		return apperrors.ErrSecondFactorRequired
	}
	return s.verify(ctx, userID, code)
}

func (s *TwoFactorService) verify(ctx context.Context, userID int64, code string) error {
	ok, err := s.registry.Verify(ctx, userID, code)
	metrics.RecordOTP(metrics.ActionVerify, ok, err)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	if !ok {
		return apperrors.ErrInvalidOTP
	}
	return nil
}
