package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/go-social-api/internal/database"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Repository handles user data persistence. It works on a *bun.DB or inside a bun.Tx.
type Repository struct {
	db  bun.IDB
	now func() time.Time
}

func NewRepository(db bun.IDB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// NormalizeEmail lowercases and trims an address before storage or lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts a new active user
func (r *Repository) Create(ctx context.Context, nu NewUser) (*User, error) {
	dbUser := &database.User{
		EntityMeta:    database.NewEntityMeta(r.now().UTC()),
		Email:         NormalizeEmail(nu.Email),
		Name:          nu.Name,
		PasswordHash:  nu.PasswordHash,
		AcceptedTerms: nu.AcceptedTerms,
		IsActive:      true,
		IsAdmin:       nu.IsAdmin,
	}

	_, err := r.db.NewInsert().
		Model(dbUser).
		Returning("*").
		Exec(ctx)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByEmail retrieves a non-deleted user by email, ignoring case
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("lower(u.email) = ?", NormalizeEmail(email)).
		Where("u.is_deleted = false").
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByID retrieves a non-deleted user by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("u.id = ?", id).
		Where("u.is_deleted = false").
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// LockByID takes a row lock on the user until the surrounding transaction ends.
// Outside a transaction the lock is released immediately.
func (r *Repository) LockByID(ctx context.Context, id uuid.UUID) error {
	var locked uuid.UUID
	err := r.db.NewSelect().
		Model((*database.User)(nil)).
		Column("u.id").
		Where("u.id = ?", id).
		For("UPDATE").
		Scan(ctx, &locked)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to lock user: %w", err)
	}

	return nil
}

// Search returns active users whose email equals query or whose name
// contains it, both case-insensitively, newest first. An empty query matches everyone.
func (r *Repository) Search(ctx context.Context, query string, limit, offset int) ([]User, int, error) {
	var rows []database.User

	q := r.db.NewSelect().
		Model(&rows).
		Where("u.is_deleted = false").
		Where("u.is_active = true")

	if query != "" {
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("lower(u.email) = lower(?)", query).
				WhereOr("u.name ILIKE ?", "%"+escapeLike(query)+"%")
		})
	}

	count, err := q.
		Order("u.created_at DESC").
		Limit(limit).
		Offset(offset).
		ScanAndCount(ctx)

	if err != nil {
		return nil, 0, fmt.Errorf("failed to search users: %w", err)
	}

	return FromDBRows(rows), count, nil
}

// SoftDelete flags the user as deleted. The row is kept.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("is_deleted = true").
		Set("is_active = false").
		Set("updated_at = ?", r.now().UTC()).
		Where("id = ?", id).
		Where("is_deleted = false").
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	return &User{
		ID:            dbu.ID,
		Email:         dbu.Email,
		Name:          dbu.Name,
		PasswordHash:  dbu.PasswordHash,
		AcceptedTerms: dbu.AcceptedTerms,
		IsActive:      dbu.IsActive,
		IsAdmin:       dbu.IsAdmin,
		IsDeleted:     dbu.IsDeleted,
		CreatedAt:     dbu.CreatedAt,
		UpdatedAt:     dbu.UpdatedAt,
	}
}

// FromDBRows converts joined user rows, e.g. from the friend list query
func FromDBRows(rows []database.User) []User {
	users := make([]User, 0, len(rows))
	for i := range rows {
		users = append(users, *mapDBUserToModel(&rows[i]))
	}
	return users
}
