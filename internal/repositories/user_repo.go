package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	intconfig "mavuso/internal/config"
	intdb "mavuso/internal/db"
	"mavuso/internal/domain"
	"mavuso/internal/domain/models"
)

type UserRepo struct {
	DB *sql.DB
}

func (r UserRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `id, email, first_name, last_name, COALESCE(bio,''), COALESCE(interests,'[]'), COALESCE(location,''), COALESCE(phone,''), verified, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	var interestsRaw string
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.Bio,
		&interestsRaw,
		&u.Location,
		&u.Phone,
		&u.Verified,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return models.User{}, err
	}
	if err := json.Unmarshal([]byte(interestsRaw), &u.Interests); err != nil {
		u.Interests = []string{}
	}
	if u.Interests == nil {
		u.Interests = []string{}
	}
	return u, nil
}

func (r UserRepo) GetByID(id int64) (models.User, error) {
	if id <= 0 {
		return models.User{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

// GetByEmail also returns the stored password hash for credential checks.
func (r UserRepo) GetByEmail(email string) (models.User, string, error) {
	var hash string
	var u models.User
	var interestsRaw string
	err := r.db().QueryRow(`
		SELECT `+userColumns+`, password_hash
		FROM users
		WHERE email = $1
	`, email).Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.Bio,
		&interestsRaw,
		&u.Location,
		&u.Phone,
		&u.Verified,
		&u.CreatedAt,
		&u.UpdatedAt,
		&hash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, "", domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, "", err
	}
	if jsonErr := json.Unmarshal([]byte(interestsRaw), &u.Interests); jsonErr != nil || u.Interests == nil {
		u.Interests = []string{}
	}
	return u, hash, nil
}

func (r UserRepo) EmailExists(email string) (bool, error) {
	var count int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email = $1`, email).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r UserRepo) Create(email, passwordHash, firstName, lastName, phone string) (models.User, error) {
	u := models.User{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		Interests: []string{},
	}
	err := r.db().QueryRow(`
		INSERT INTO users (email, password_hash, first_name, last_name, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, email, passwordHash, firstName, lastName, intdb.NullIfEmpty(phone)).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// buildProfilePatch assembles SET clauses from key presence. Placeholders start
// at $1; the caller appends the WHERE id placeholder after the returned args.
func buildProfilePatch(upd models.ProfileUpdate) ([]string, []any) {
	sets := []string{}
	args := []any{}

	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s=$%d", col, len(args)))
	}

	if upd.FirstName != nil {
		add("first_name", strings.TrimSpace(*upd.FirstName))
	}
	if upd.LastName != nil {
		add("last_name", strings.TrimSpace(*upd.LastName))
	}
	if upd.Bio != nil {
		add("bio", strings.TrimSpace(*upd.Bio))
	}
	if upd.Interests != nil {
		raw, err := json.Marshal(*upd.Interests)
		if err == nil {
			add("interests", string(raw))
		}
	}
	if upd.Location != nil {
		add("location", strings.TrimSpace(*upd.Location))
	}
	if upd.Phone != nil {
		add("phone", strings.TrimSpace(*upd.Phone))
	}
	return sets, args
}

// UpdateProfile performs PATCH-style updates based on key presence.
func (r UserRepo) UpdateProfile(id int64, upd models.ProfileUpdate) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	sets, args := buildProfilePatch(upd)
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id=$%d", strings.Join(sets, ", "), len(args))

	res, err := r.db().Exec(query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}
