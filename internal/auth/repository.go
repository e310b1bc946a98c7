package auth

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/JaimeStill/pledge/pkg/repository"
	"github.com/google/uuid"
)

type store struct {
	db *sql.DB
}

// NewStore creates a PostgreSQL-backed Store.
func NewStore(db *sql.DB) Store {
	return &store{db: db}
}

func (s *store) SaveCode(ctx context.Context, phone, hash string, expiresAt time.Time) error {
	q := `
		INSERT INTO verification_codes (phone, code_hash, attempts, expires_at)
		VALUES ($1, $2, 0, $3)
		ON CONFLICT (phone) DO UPDATE
		SET code_hash = EXCLUDED.code_hash,
			attempts = 0,
			expires_at = EXCLUDED.expires_at,
			created_at = NOW()`

	if _, err := s.db.ExecContext(ctx, q, phone, hash, expiresAt); err != nil {
		return fmt.Errorf("save code: %w", err)
	}
	return nil
}

func (s *store) FindCode(ctx context.Context, phone string) (*Code, error) {
	q := `
		SELECT phone, code_hash, attempts, expires_at
		FROM verification_codes
		WHERE phone = $1`

	var c Code
	err := s.db.QueryRowContext(ctx, q, phone).Scan(&c.Phone, &c.Hash, &c.Attempts, &c.ExpiresAt)
	if err != nil {
		return nil, repository.MapError(err, errCodeNotFound, errCodeNotFound)
	}
	return &c, nil
}

// ClaimAttempt counts one verification attempt against the pending code
// and returns it. A code that is missing, expired, or out of attempts
// yields errCodeNotFound without being modified.
func (s *store) ClaimAttempt(ctx context.Context, phone string, maxAttempts int) (*Code, error) {
	q := `
		UPDATE verification_codes
		SET attempts = attempts + 1
		WHERE phone = $1 AND attempts < $2 AND expires_at > NOW()
		RETURNING phone, code_hash, attempts, expires_at`

	var c Code
	err := s.db.QueryRowContext(ctx, q, phone, maxAttempts).Scan(&c.Phone, &c.Hash, &c.Attempts, &c.ExpiresAt)
	if err != nil {
		return nil, repository.MapError(err, errCodeNotFound, errCodeNotFound)
	}
	return &c, nil
}

// ConsumeCode deletes the pending code only if it still carries hash.
func (s *store) ConsumeCode(ctx context.Context, phone, hash string) error {
	q := "DELETE FROM verification_codes WHERE phone = $1 AND code_hash = $2"

	result, err := s.db.ExecContext(ctx, q, phone, hash)
	if err != nil {
		return fmt.Errorf("consume code: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrInvalidCode
	}
	return nil
}

func (s *store) DeleteCode(ctx context.Context, phone string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM verification_codes WHERE phone = $1", phone); err != nil {
		return fmt.Errorf("delete code: %w", err)
	}
	return nil
}

func (s *store) CreateSession(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*Session, error) {
	q := `
		INSERT INTO sessions (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, expires_at`

	var sess Session
	err := s.db.QueryRowContext(ctx, q, userID, tokenHash, expiresAt).
		Scan(&sess.ID, &sess.UserID, &sess.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &sess, nil
}

func (s *store) FindSession(ctx context.Context, tokenHash string) (*Session, error) {
	q := `
		SELECT id, user_id, expires_at
		FROM sessions
		WHERE token_hash = $1`

	var sess Session
	err := s.db.QueryRowContext(ctx, q, tokenHash).Scan(&sess.ID, &sess.UserID, &sess.ExpiresAt)
	if err != nil {
		return nil, repository.MapError(err, ErrSessionNotFound, ErrSessionNotFound)
	}
	return &sess, nil
}

// RotateSession replaces the token hash only if it still equals oldHash,
// so a refresh token can be redeemed once.
func (s *store) RotateSession(ctx context.Context, id uuid.UUID, oldHash, newHash string, expiresAt time.Time) error {
	return repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		q := `
			UPDATE sessions
			SET token_hash = $1, expires_at = $2, updated_at = NOW()
			WHERE id = $3 AND token_hash = $4`

		result, err := tx.ExecContext(ctx, q, newHash, expiresAt, id, oldHash)
		if err != nil {
			return fmt.Errorf("rotate session: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if rows == 0 {
			return ErrSessionNotFound
		}
		return nil
	})
}

func (s *store) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
