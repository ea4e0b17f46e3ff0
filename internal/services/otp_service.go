package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"github.com/sshusain313/causeconnect-sub000/internal/apperrors"
	"github.com/sshusain313/causeconnect-sub000/internal/models"
	"github.com/sshusain313/causeconnect-sub000/internal/repositories"
	"github.com/sshusain313/causeconnect-sub000/internal/utils"
	"github.com/sshusain313/causeconnect-sub000/pkg/mailer"
)

const (
	// otpTTL bounds both code validity and record retention; the TTL index
	// purges records this long after creation regardless of outcome.
	otpTTL = 10 * time.Minute
	// otpResendWindow is the dedup window: a live code younger than this
	// suppresses issuing a new one.
	otpResendWindow = 2 * time.Minute
)

// VerificationStatus is the four-way outcome of a code verification
type VerificationStatus string

const (
	VerificationInvalid     VerificationStatus = "invalid"
	VerificationExpired     VerificationStatus = "expired"
	VerificationAlreadyUsed VerificationStatus = "already_used"
	VerificationSuccess     VerificationStatus = "success"
)

// IssueResult reports whether a new code was issued or an existing live code
// was reused (dedup)
type IssueResult struct {
	Dedup bool
}

// OTPService issues and verifies one-time email-verification codes
type OTPService struct {
	otpRepo   repositories.OTPRepository
	claimRepo repositories.ClaimRepository
	mailer    mailer.Mailer
}

// NewOTPService creates a new OTPService
func NewOTPService(otpRepo repositories.OTPRepository, claimRepo repositories.ClaimRepository, m mailer.Mailer) *OTPService {
	return &OTPService{
		otpRepo:   otpRepo,
		claimRepo: claimRepo,
		mailer:    m,
	}
}

// IssueCode generates and dispatches a 6-digit code for the email unless a
// live, unconsumed code younger than the resend window already exists. The
// plaintext code goes only to the mailer, never to the caller.
func (s *OTPService) IssueCode(ctx context.Context, email string) (*IssueResult, error) {
	if email == "" {
		return nil, apperrors.Validation("email is required")
	}

	now := time.Now()
	live, err := s.otpRepo.FindLiveByEmail(ctx, email, now)
	if err != nil {
		return nil, apperrors.Server("failed to check for existing code", err)
	}
	if live != nil && now.Sub(live.CreatedAt) < otpResendWindow {
		slog.Info("otp already sent recently, deduping", "email", email)
		return &IssueResult{Dedup: true}, nil
	}

	code, err := utils.GenerateOTPCode()
	if err != nil {
		return nil, apperrors.Server("failed to generate code", err)
	}

	record := &models.OTPVerification{
		Email:     email,
		OTPHash:   utils.HashOTPCode(code),
		Type:      models.OTPTypeEmail,
		Verified:  false,
		ExpiresAt: now.Add(otpTTL),
	}
	if err := s.otpRepo.Create(ctx, record); err != nil {
		return nil, apperrors.Server("failed to store verification code", err)
	}

	body := fmt.Sprintf("Your CauseConnect verification code is %s. It expires in 10 minutes.", code)
	if _, err := s.mailer.SendMail(email, "Your verification code", body); err != nil {
		return nil, apperrors.Server("failed to send verification code", err)
	}

	slog.Info("otp issued", "email", email, "expiresAt", record.ExpiresAt)
	return &IssueResult{Dedup: false}, nil
}

// VerifyCode checks a supplied code against all records for the email and
// returns exactly one of invalid, expired, already_used or success.
//
// Codes are not unique across time, so several historical records can match
// the same hash. Precedence: the first unexpired, unverified match wins; if
// the only matches are consumed the result is already_used; if the only
// matches are expired the result is expired; no match at all is invalid.
// Success consumes the record, so retrying the same code yields already_used.
func (s *OTPService) VerifyCode(ctx context.Context, email, code string) (VerificationStatus, error) {
	if email == "" || code == "" {
		return "", apperrors.Validation("email and otp are required")
	}

	records, err := s.otpRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", apperrors.Server("failed to load verification records", err)
	}

	hash := utils.HashOTPCode(code)
	now := time.Now()

	var match *models.OTPVerification
	sawVerified := false
	sawExpired := false
	for _, record := range records {
		if record.OTPHash != hash {
			continue
		}
		if record.Verified {
			sawVerified = true
			continue
		}
		if record.Expired(now) {
			sawExpired = true
			continue
		}
		match = record
		break
	}

	switch {
	case match != nil:
		if err := s.otpRepo.MarkVerified(ctx, match.ID); err != nil {
			return "", apperrors.Server("failed to consume verification code", err)
		}
		// Flip emailVerified on the claimer's pending claims; the claim
		// status itself is untouched.
		if err := s.claimRepo.SetEmailVerified(ctx, email); err != nil {
			return "", apperrors.Server("failed to mark claims verified", err)
		}
		slog.Info("otp verified", "email", email)
		return VerificationSuccess, nil
	case sawVerified:
		return VerificationAlreadyUsed, nil
	case sawExpired:
		return VerificationExpired, nil
	default:
		return VerificationInvalid, nil
	}
}
