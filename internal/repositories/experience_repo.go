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

type ExperienceRepo struct {
	DB *sql.DB
}

func (r ExperienceRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const experienceColumns = `e.id, e.host_id, e.title, COALESCE(e.description,''), e.category, e.price, COALESCE(e.duration,''), e.location, e.max_participants, COALESCE(e.images,'[]'), COALESCE(e.requirements,''), e.active, e.created_at, e.updated_at`

func scanExperience(row rowScanner) (models.Experience, error) {
	var e models.Experience
	var imagesRaw string
	if err := row.Scan(
		&e.ID,
		&e.HostID,
		&e.Title,
		&e.Description,
		&e.Category,
		&e.Price,
		&e.Duration,
		&e.Location,
		&e.MaxParticipants,
		&imagesRaw,
		&e.Requirements,
		&e.Active,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return models.Experience{}, err
	}
	if err := json.Unmarshal([]byte(imagesRaw), &e.Images); err != nil || e.Images == nil {
		e.Images = []string{}
	}
	return e, nil
}

// buildListQuery assembles the WHERE clause incrementally from optional
// filters. Active-only is always enforced; filters AND-combine.
func buildListQuery(f models.ExperienceFilter) (string, []any) {
	where := []string{"e.active = TRUE"}
	args := []any{}

	add := func(clause string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(e.title ILIKE $%d OR e.description ILIKE $%d)", n, n))
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		add("e.category = $%d", c)
	}
	if l := strings.TrimSpace(f.Location); l != "" {
		add("e.location ILIKE $%d", "%"+l+"%")
	}
	if f.PriceMin != nil {
		add("e.price >= $%d", *f.PriceMin)
	}
	if f.PriceMax != nil {
		add("e.price <= $%d", *f.PriceMax)
	}

	query := `SELECT ` + experienceColumns + `
		FROM experiences e
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY e.created_at DESC`
	return query, args
}

func (r ExperienceRepo) List(f models.ExperienceFilter) ([]models.Experience, error) {
	query, args := buildListQuery(f)
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Experience{}
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r ExperienceRepo) GetByID(id int64) (models.Experience, error) {
	if id <= 0 {
		return models.Experience{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	row := r.db().QueryRow(`
		SELECT `+experienceColumns+`, COALESCE(u.first_name || ' ' || u.last_name, '')
		FROM experiences e
		JOIN users u ON u.id = e.host_id
		WHERE e.id = $1
	`, id)

	var e models.Experience
	var imagesRaw string
	err := row.Scan(
		&e.ID,
		&e.HostID,
		&e.Title,
		&e.Description,
		&e.Category,
		&e.Price,
		&e.Duration,
		&e.Location,
		&e.MaxParticipants,
		&imagesRaw,
		&e.Requirements,
		&e.Active,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.HostName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Experience{}, domain.NotFoundError{Resource: "experience"}
	}
	if err != nil {
		return models.Experience{}, err
	}
	if jsonErr := json.Unmarshal([]byte(imagesRaw), &e.Images); jsonErr != nil || e.Images == nil {
		e.Images = []string{}
	}
	return e, nil
}

func (r ExperienceRepo) Create(e models.Experience) (models.Experience, error) {
	images, err := json.Marshal(e.Images)
	if err != nil {
		images = []byte("[]")
	}
	err = r.db().QueryRow(`
		INSERT INTO experiences
			(host_id, title, description, category, price, duration, location, max_participants, images, requirements, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE, NOW(), NOW())
		RETURNING id, active, created_at, updated_at
	`, e.HostID, e.Title, intdb.NullIfEmpty(e.Description), e.Category, e.Price,
		intdb.NullIfEmpty(e.Duration), e.Location, e.MaxParticipants, string(images),
		intdb.NullIfEmpty(e.Requirements)).
		Scan(&e.ID, &e.Active, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return models.Experience{}, err
	}
	return e, nil
}

func buildExperiencePatch(upd models.ExperienceUpdate) ([]string, []any) {
	sets := []string{}
	args := []any{}

	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s=$%d", col, len(args)))
	}

	if upd.Title != nil {
		add("title", strings.TrimSpace(*upd.Title))
	}
	if upd.Description != nil {
		add("description", strings.TrimSpace(*upd.Description))
	}
	if upd.Category != nil {
		add("category", strings.TrimSpace(*upd.Category))
	}
	if upd.Price != nil {
		add("price", *upd.Price)
	}
	if upd.Duration != nil {
		add("duration", strings.TrimSpace(*upd.Duration))
	}
	if upd.Location != nil {
		add("location", strings.TrimSpace(*upd.Location))
	}
	if upd.MaxParticipants != nil {
		add("max_participants", *upd.MaxParticipants)
	}
	if upd.Images != nil {
		raw, err := json.Marshal(*upd.Images)
		if err == nil {
			add("images", string(raw))
		}
	}
	if upd.Requirements != nil {
		add("requirements", strings.TrimSpace(*upd.Requirements))
	}
	if upd.Active != nil {
		add("active", *upd.Active)
	}
	return sets, args
}

// Update performs PATCH-style updates, restricted to the owning host.
func (r ExperienceRepo) Update(id, hostID int64, upd models.ExperienceUpdate) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	sets, args := buildExperiencePatch(upd)
	if len(sets) == 0 {
		// Nothing to set, but ownership still has to hold before the
		// caller is handed the row back.
		var one int
		err := r.db().QueryRow(`SELECT 1 FROM experiences WHERE id = $1 AND host_id = $2`, id, hostID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "experience"}
		}
		return err
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id, hostID)
	query := fmt.Sprintf("UPDATE experiences SET %s WHERE id=$%d AND host_id=$%d",
		strings.Join(sets, ", "), len(args)-1, len(args))

	res, err := r.db().Exec(query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "experience"}
	}
	return nil
}
