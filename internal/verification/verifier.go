// Package verification implements the demo one-time-code flow that gates
// login. The code is generated and "delivered" through the log by the same
// process that checks it; it is not a security boundary.
package verification

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
	"time"

	"table-together/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Mode selects the form the identity came from.
type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignup Mode = "signup"
)

// Identity is what the login or signup form collected.
type Identity struct {
	Mode            Mode   `json:"mode"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Target is the session a successful verification logs in.
type Target interface {
	ID() uuid.UUID
	Login(name, email, phone string)
}

// Config holds verifier settings.
type Config struct {
	// CodeTTL is how long a code stays valid.
	CodeTTL time.Duration

	// MaxAttempts is the number of codes a session may try within CodeTTL of
	// its first attempt. Reaching it discards the pending challenge and
	// blocks new codes until the counter expires.
	MaxAttempts int
}

// DefaultConfig returns the default verifier configuration.
func DefaultConfig() Config {
	return Config{
		CodeTTL:     5 * time.Minute,
		MaxAttempts: 5,
	}
}

// StartResult tells the caller where the code went and until when it is valid.
type StartResult struct {
	Destination string    `json:"destination"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Verifier issues and checks one-time codes.
type Verifier struct {
	store    CodeStore
	config   Config
	generate func() (string, error)
	logger   zerolog.Logger
}

// NewVerifier creates a verifier storing challenges in store.
func NewVerifier(store CodeStore, config Config, logger zerolog.Logger) *Verifier {
	if config.CodeTTL <= 0 {
		config.CodeTTL = DefaultConfig().CodeTTL
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultConfig().MaxAttempts
	}
	return &Verifier{
		store:    store,
		config:   config,
		generate: generateCode,
		logger:   logger.With().Str("component", "verifier").Logger(),
	}
}

// generateCode returns a random four digit code, zero padded.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// Start validates the form input, issues a code for the session and logs it
// as the out-of-band delivery channel.
func (v *Verifier) Start(ctx context.Context, sessionID uuid.UUID, id Identity) (*StartResult, error) {
	if err := validateIdentity(id); err != nil {
		return nil, err
	}

	attempts, err := v.store.Attempts(ctx, sessionID)
	if err != nil {
		v.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to read attempts")
		return nil, err
	}
	if attempts >= v.config.MaxAttempts {
		v.logger.Warn().Str("session_id", sessionID.String()).Int("attempts", attempts).Msg("verification locked")
		return nil, model.ErrTooManyAttempts
	}

	code, err := v.generate()
	if err != nil {
		return nil, err
	}

	challenge := Challenge{
		Code:      code,
		Name:      id.Name,
		Email:     id.Email,
		Phone:     id.Phone,
		ExpiresAt: time.Now().Add(v.config.CodeTTL),
	}
	if err := v.store.Put(ctx, sessionID, challenge, v.config.CodeTTL); err != nil {
		v.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to store challenge")
		return nil, err
	}

	destination := id.Email
	if destination == "" {
		destination = id.Phone
	}

	v.logger.Info().
		Str("session_id", sessionID.String()).
		Str("mode", string(id.Mode)).
		Str("destination", destination).
		Str("code", code).
		Msg("demo verification code issued")

	return &StartResult{
		Destination: destination,
		ExpiresAt:   challenge.ExpiresAt,
	}, nil
}

func validateIdentity(id Identity) error {
	if id.Mode != ModeLogin && id.Mode != ModeSignup {
		return model.NewValidationError(model.ErrCodeMissingField, "mode must be login or signup")
	}
	if strings.TrimSpace(id.Name) == "" {
		return model.NewValidationError(model.ErrCodeMissingField, "name is required")
	}
	if strings.TrimSpace(id.Email) == "" {
		return model.NewValidationError(model.ErrCodeMissingField, "email is required")
	}
	if id.Password == "" {
		return model.NewValidationError(model.ErrCodeMissingField, "password is required")
	}
	if id.Mode == ModeSignup && id.Password != id.ConfirmPassword {
		return model.ErrPasswordMismatch
	}
	return nil
}

// Verify checks code against the session's pending challenge and, on a
// match, logs the target in. Every call that finds a challenge spends one
// attempt before comparing, so concurrent guesses cannot exceed MaxAttempts.
func (v *Verifier) Verify(ctx context.Context, target Target, code string) error {
	sessionID := target.ID()

	challenge, ok, err := v.store.Get(ctx, sessionID)
	if err != nil {
		v.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to read challenge")
		return err
	}
	if !ok {
		return model.ErrChallengeNotFound
	}

	attempts, err := v.store.AddAttempt(ctx, sessionID, v.config.CodeTTL)
	if err != nil {
		v.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to record attempt")
		return err
	}
	if attempts > v.config.MaxAttempts {
		if err := v.store.Delete(ctx, sessionID); err != nil {
			return err
		}
		return model.ErrTooManyAttempts
	}

	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(code)), []byte(challenge.Code)) != 1 {
		logEvent := v.logger.Warn().
			Str("session_id", sessionID.String()).
			Int("attempts", attempts)

		if attempts >= v.config.MaxAttempts {
			logEvent.Msg("verification failed, challenge discarded")
			if err := v.store.Delete(ctx, sessionID); err != nil {
				return err
			}
			return model.ErrIncorrectCode
		}

		logEvent.Msg("verification failed")
		return model.ErrIncorrectCode
	}

	if err := v.store.Clear(ctx, sessionID); err != nil {
		return err
	}

	target.Login(challenge.Name, challenge.Email, challenge.Phone)

	v.logger.Info().
		Str("session_id", sessionID.String()).
		Str("email", challenge.Email).
		Msg("verification succeeded")

	return nil
}

// Cancel discards any pending challenge and attempt count for the session.
func (v *Verifier) Cancel(ctx context.Context, sessionID uuid.UUID) error {
	return v.store.Clear(ctx, sessionID)
}
