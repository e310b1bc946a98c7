// Package main provides the seed command for populating the database with
// development data. Seeders run individually or together within a single
// transaction.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"

	"github.com/JaimeStill/pledge/pkg/repository"
)

// Seeder defines the interface for database seeders.
// Each seeder is responsible for populating a specific domain's data.
type Seeder interface {
	// Name returns the unique identifier for this seeder.
	Name() string

	// Description returns a human-readable description of what this seeder does.
	Description() string

	// Seed executes the seeding logic within the provided transaction.
	Seed(ctx context.Context, tx *sql.Tx) error
}

var seeders = map[string]Seeder{}

// registerSeeder adds a seeder to the registry. Seeders self-register via init().
func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// listSeeders returns all registered seeders ordered by name.
func listSeeders() []Seeder {
	result := make([]Seeder, 0, len(seeders))
	for _, name := range slices.Sorted(maps.Keys(seeders)) {
		result = append(result, seeders[name])
	}
	return result
}

// runSeeder executes a single seeder by name within a transaction.
func runSeeder(ctx context.Context, db *sql.DB, name string) error {
	seeder, ok := getSeeder(name)
	if !ok {
		return fmt.Errorf("seeder not found: %s", name)
	}

	return repository.WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := seeder.Seed(ctx, tx); err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
		return nil
	})
}

// runAllSeeders executes every registered seeder within one transaction.
// If any seeder fails, the entire transaction is rolled back.
func runAllSeeders(ctx context.Context, db *sql.DB) error {
	return repository.WithTx(ctx, db, func(tx *sql.Tx) error {
		for _, seeder := range listSeeders() {
			if err := seeder.Seed(ctx, tx); err != nil {
				return fmt.Errorf("seed %s: %w", seeder.Name(), err)
			}
		}
		return nil
	})
}
