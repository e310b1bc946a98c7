package users

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/pledge/pkg/decode"
	"github.com/JaimeStill/pledge/pkg/pagination"
	"github.com/JaimeStill/pledge/pkg/query"
	"github.com/JaimeStill/pledge/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a users system backed by db.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "users"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[User], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "name", "phone")
	qb = filters.Apply(qb).OrderBy(page.Sort)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanUser)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*User, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("id", id)

	u, err := scanUser(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}

func (r *repo) FindByPhone(ctx context.Context, phone string) (*User, error) {
	q, args := query.NewBuilder(projection, defaultSort).BuildSingle("phone", phone)

	u, err := scanUser(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*User, error) {
	if err := decode.Struct(cmd); err != nil {
		return nil, err
	}
	if cmd.Avatar == "" {
		cmd.Avatar = Initials(cmd.Name)
	}

	var u User
	err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		q := `
			INSERT INTO users (name, phone, avatar)
			VALUES ($1, $2, $3)
			RETURNING ` + returning

		var err error
		u, err = scanUser(tx.QueryRowContext(ctx, q, cmd.Name, cmd.Phone, cmd.Avatar))
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("user created", "id", u.ID)
	return &u, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*User, error) {
	if err := decode.Struct(cmd); err != nil {
		return nil, err
	}
	if cmd.Avatar == "" {
		cmd.Avatar = Initials(cmd.Name)
	}

	var u User
	err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		q := `
			UPDATE users
			SET name = $1, avatar = $2, updated_at = NOW()
			WHERE id = $3
			RETURNING ` + returning

		var err error
		u, err = scanUser(tx.QueryRowContext(ctx, q, cmd.Name, cmd.Avatar, id))
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("user updated", "id", u.ID)
	return &u, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if rows == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("user deleted", "id", id)
	return nil
}
