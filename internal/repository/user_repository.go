package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dkaverin/hotel-booking/internal/model"
	"github.com/dkaverin/hotel-booking/internal/utils"
)

// UserRepo persists user identity: login, password hash and role.  It
// also owns the account removal path, because deleting a user must take
// that user's reservations and reviews with it in the same transaction.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with the default role and returns its ID.  The
// plain password is hashed here and never stored.  A duplicate login is
// reported as ErrLoginExists.
func (r *UserRepo) Create(ctx context.Context, login, password string, cost int) (uint64, error) {
	login = strings.TrimSpace(login)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (login, password_hash, role) VALUES (?,?,?)",
		login, hash, model.RoleUser)
	if err != nil {
		// MySQL duplicate-key errors carry code 1062.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrLoginExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByLogin fetches a user by login.
func (r *UserRepo) GetByLogin(ctx context.Context, login string) (model.User, error) {
	login = strings.TrimSpace(login)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,login,password_hash,role,created_at,updated_at FROM users WHERE login=? LIMIT 1",
		login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,login,password_hash,role,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// List returns all users ordered by id.  Filtering (for example hiding
// admins from the admin listing) is a presentation concern left to the
// caller.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,login,password_hash,role,created_at,updated_at FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// DeleteCascade removes a user together with every reservation owned by
// and every review authored by that user.  The three deletes run in one
// transaction: either the account and all of its dependents disappear,
// or nothing does.  Returns ErrUserNotFound when the id does not
// resolve; no partial state is left behind in that case either.
func (r *UserRepo) DeleteCascade(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists uint64
	if err := tx.QueryRowContext(ctx,
		"SELECT id FROM users WHERE id=? FOR UPDATE", id).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return ErrUserNotFound
		}
		return err
	}

	// Children first so foreign keys never block the user row delete.
	if _, err := tx.ExecContext(ctx, "DELETE FROM reservations WHERE user_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM reviews WHERE author_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id=?", id); err != nil {
		return err
	}
	return tx.Commit()
}
