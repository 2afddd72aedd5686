package repository

import (
	"context"
	"errors"
	"fmt"

	"outbound_tool/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data
type UserRepository interface {
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	FindByOpsID(ctx context.Context, opsID string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	UpdatePassword(ctx context.Context, opsID, passwordHash string) error
	SearchProcessors(ctx context.Context, query string) ([]model.ProcessorLookup, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, ops_id, name, role, email, department, password_hash, is_first_time, must_change_password, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.OpsID, &user.Name, &user.Role, &user.Email, &user.Department,
		&user.PasswordHash, &user.IsFirstTime, &user.MustChangePassword, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found is not an error here, callers decide
		}
		return nil, err
	}
	return user, nil
}

// FindByIdentifier retrieves a user by ops_id or email, the two login handles
func (r *userRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE ops_id = $1 OR email = $1 LIMIT 1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, identifier))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by identifier: %w", err)
	}
	return user, nil
}

// FindByOpsID retrieves a user by their operational ID
func (r *userRepository) FindByOpsID(ctx context.Context, opsID string) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE ops_id = $1 LIMIT 1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, opsID))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ops_id: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by their numeric ID
func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// UpdatePassword stores a new password hash and ends the first-login flow
func (r *userRepository) UpdatePassword(ctx context.Context, opsID, passwordHash string) error {
	sql := `UPDATE users
            SET password_hash = $2, must_change_password = false, is_first_time = false
            WHERE ops_id = $1`
	if _, err := r.db.Exec(ctx, sql, opsID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// SearchProcessors returns processor users matching a typeahead query
func (r *userRepository) SearchProcessors(ctx context.Context, query string) ([]model.ProcessorLookup, error) {
	sql := `SELECT name, ops_id FROM users WHERE role = $1`
	args := []any{model.RoleProcessor}
	if query != "" {
		sql += ` AND name ILIKE $2`
		args = append(args, "%"+query+"%")
	}
	sql += ` ORDER BY name LIMIT 10`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search processors: %w", err)
	}
	defer rows.Close()

	var results []model.ProcessorLookup
	for rows.Next() {
		var p model.ProcessorLookup
		if err := rows.Scan(&p.Name, &p.OpsID); err != nil {
			return nil, fmt.Errorf("failed to scan processor row: %w", err)
		}
		results = append(results, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating processor rows: %w", err)
	}
	return results, nil
}
