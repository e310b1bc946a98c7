package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/pledge/internal/config"
	"github.com/JaimeStill/pledge/internal/users"
	"github.com/JaimeStill/pledge/pkg/decode"
	"github.com/JaimeStill/pledge/pkg/identity"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	store  Store
	users  users.System
	tokens *Tokens
	sender Sender
	cfg    *config.AuthConfig
	logger *slog.Logger
}

// New creates the auth system.
func New(store Store, usersSys users.System, tokens *Tokens, sender Sender, cfg *config.AuthConfig, logger *slog.Logger) System {
	return &service{
		store:  store,
		users:  usersSys,
		tokens: tokens,
		sender: sender,
		cfg:    cfg,
		logger: logger.With("system", "auth"),
	}
}

func (s *service) RequestCode(ctx context.Context, cmd CodeCommand) (*CodeIssued, error) {
	if err := decode.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPhone, err)
	}

	code := s.cfg.DevCode
	if code == "" {
		var err error
		if code, err = generateCode(); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash code: %w", err)
	}

	expiresAt := time.Now().UTC().Add(s.cfg.CodeTTLDuration())
	if err := s.store.SaveCode(ctx, cmd.Phone, string(hash), expiresAt); err != nil {
		return nil, err
	}

	if err := s.sender.Send(ctx, cmd.Phone, code); err != nil {
		return nil, fmt.Errorf("send code: %w", err)
	}

	issued := &CodeIssued{Phone: cmd.Phone, ExpiresAt: expiresAt}
	if s.cfg.DevCode != "" {
		issued.DevCode = code
	}
	return issued, nil
}

func (s *service) Verify(ctx context.Context, cmd VerifyCommand) (*TokenResponse, error) {
	if err := decode.Struct(cmd); err != nil {
		return nil, err
	}

	if err := s.checkCode(ctx, cmd.Phone, cmd.Code); err != nil {
		return nil, err
	}

	user, err := s.findOrCreate(ctx, cmd.Phone, cmd.Name)
	if err != nil {
		return nil, err
	}

	token, hash, err := newRefreshToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sess, err := s.store.CreateSession(ctx, user.ID, hash, now.Add(s.cfg.RefreshTTLDuration()))
	if err != nil {
		return nil, err
	}

	s.logger.Info("session opened", "user_id", user.ID, "session_id", sess.ID)
	return s.respond(sess, user, token, now)
}

func (s *service) Refresh(ctx context.Context, cmd RefreshCommand) (*TokenResponse, error) {
	if err := decode.Struct(cmd); err != nil {
		return nil, err
	}

	oldHash := hashToken(cmd.RefreshToken)
	sess, err := s.store.FindSession(ctx, oldHash)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if now.After(sess.ExpiresAt) {
		if err := s.store.DeleteSession(ctx, sess.ID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: session expired", ErrInvalidToken)
	}

	user, err := s.users.Find(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	token, hash, err := newRefreshToken()
	if err != nil {
		return nil, err
	}

	sess.ExpiresAt = now.Add(s.cfg.RefreshTTLDuration())
	if err := s.store.RotateSession(ctx, sess.ID, oldHash, hash, sess.ExpiresAt); err != nil {
		return nil, err
	}

	return s.respond(sess, user, token, now)
}

func (s *service) Logout(ctx context.Context, cmd RefreshCommand) error {
	if err := decode.Struct(cmd); err != nil {
		return err
	}

	sess, err := s.store.FindSession(ctx, hashToken(cmd.RefreshToken))
	if err != nil {
		return err
	}

	if err := s.store.DeleteSession(ctx, sess.ID); err != nil {
		return err
	}

	s.logger.Info("session closed", "user_id", sess.UserID, "session_id", sess.ID)
	return nil
}

func (s *service) Authenticate(token string) (identity.Principal, error) {
	return s.tokens.Parse(token)
}

// checkCode consumes the pending code for phone when it matches. The
// attempt is claimed before comparing so concurrent guesses share the
// same budget.
func (s *service) checkCode(ctx context.Context, phone, code string) error {
	pending, err := s.store.ClaimAttempt(ctx, phone, s.cfg.CodeMaxAttempts)
	if err != nil {
		if errors.Is(err, errCodeNotFound) {
			return s.rejectCode(ctx, phone)
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(pending.Hash), []byte(code)); err != nil {
		s.logger.Warn("verification failed", "phone", phone, "attempts", pending.Attempts)
		return ErrInvalidCode
	}

	return s.store.ConsumeCode(ctx, phone, pending.Hash)
}

// rejectCode reports why no attempt could be claimed for phone.
func (s *service) rejectCode(ctx context.Context, phone string) error {
	pending, err := s.store.FindCode(ctx, phone)
	if err != nil {
		if errors.Is(err, errCodeNotFound) {
			return ErrInvalidCode
		}
		return err
	}

	if !time.Now().Before(pending.ExpiresAt) {
		if err := s.store.DeleteCode(ctx, phone); err != nil {
			return err
		}
		return ErrCodeExpired
	}

	if pending.Attempts >= s.cfg.CodeMaxAttempts {
		return ErrTooManyAttempts
	}
	return ErrInvalidCode
}

func (s *service) findOrCreate(ctx context.Context, phone, name string) (*users.User, error) {
	user, err := s.users.FindByPhone(ctx, phone)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, users.ErrNotFound) {
		return nil, err
	}

	if name == "" {
		name = phone
	}
	return s.users.Create(ctx, users.CreateCommand{Name: name, Phone: phone})
}

func (s *service) respond(sess *Session, user *users.User, refresh string, now time.Time) (*TokenResponse, error) {
	access, expiresAt, err := s.tokens.Issue(user.ID, sess.ID, now)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresAt:    expiresAt,
		User:         user,
	}, nil
}
