package main

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/JaimeStill/pledge/internal/users"
	"github.com/JaimeStill/pledge/pkg/decode"
)

//go:embed seeds/*.json
var seedFiles embed.FS

func init() {
	registerSeeder(&UserSeeder{})
}

// UserSeedData represents the JSON structure for user seed files.
type UserSeedData struct {
	Users []users.CreateCommand `json:"users"`
}

// UserSeeder implements Seeder for development user accounts.
// It loads seed data from an embedded file or an external file path.
type UserSeeder struct {
	file string
}

func (s *UserSeeder) Name() string {
	return "users"
}

func (s *UserSeeder) Description() string {
	return "Seeds development user accounts keyed by phone number"
}

// SetFile configures an external seed file path, overriding the embedded default.
func (s *UserSeeder) SetFile(path string) {
	s.file = path
}

// Seed validates each user and saves it by phone number, so repeated runs
// update names and avatars in place.
func (s *UserSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	data, err := s.loadSeedData()
	if err != nil {
		return err
	}

	for _, u := range data.Users {
		if err := decode.Struct(u); err != nil {
			return fmt.Errorf("user %s: %w", u.Phone, err)
		}
		if u.Avatar == "" {
			u.Avatar = users.Initials(u.Name)
		}
		if err := s.saveUser(ctx, tx, u); err != nil {
			return fmt.Errorf("save user %s: %w", u.Phone, err)
		}
	}

	return nil
}

func (s *UserSeeder) loadSeedData() (*UserSeedData, error) {
	var content []byte
	var err error

	if s.file != "" {
		content, err = os.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile("seeds/users.json")
		if err != nil {
			return nil, fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	var data UserSeedData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}

	return &data, nil
}

func (s *UserSeeder) saveUser(ctx context.Context, tx *sql.Tx, u users.CreateCommand) error {
	const query = `
		INSERT INTO users (name, phone, avatar)
		VALUES ($1, $2, $3)
		ON CONFLICT (phone) DO UPDATE SET
			name = EXCLUDED.name,
			avatar = EXCLUDED.avatar,
			updated_at = NOW()`

	_, err := tx.ExecContext(ctx, query, u.Name, u.Phone, u.Avatar)
	return err
}
