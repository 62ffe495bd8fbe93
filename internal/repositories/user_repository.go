package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intconfig "invoice-engine/internal/config"
	"invoice-engine/internal/domain"
)

// User is the back-office account used for login.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	PasswordHash string `json:"-"`
}

type UserRepository struct {
	DB *sql.DB
}

// FindByLogin matches either email or username.
func (r UserRepository) FindByLogin(ctx context.Context, login string) (User, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return User{}, domain.ValidationError{Field: "email", Msg: "email/username wajib diisi"}
	}
	db := r.DB
	if db == nil {
		db = intconfig.DB
	}
	if db == nil {
		return User{}, domain.InternalError{Msg: "database belum terhubung"}
	}

	var u User
	err := db.QueryRowContext(ctx, `
		SELECT id, COALESCE(name,''), COALESCE(username,''), COALESCE(email,''),
			COALESCE(password_hash,''), COALESCE(role,''), COALESCE(status,'')
		FROM users
		WHERE email = ? OR username = ?
		LIMIT 1
	`, login, login).Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return User{}, domain.InternalError{Msg: "gagal query user", Err: err}
	}
	return u, nil
}
