package repositories

import (
	"database/sql"
	"strings"

	intconfig "mavuso/internal/config"
	"mavuso/internal/domain"
	"mavuso/internal/domain/models"
)

type SlotRepo struct {
	DB *sql.DB
}

func (r SlotRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// List returns slots for an experience, optionally restricted to one date.
// Unavailable slots are included only when includeTaken is set (host view).
func (r SlotRepo) List(experienceID int64, date string, includeTaken bool) ([]models.TimeSlot, error) {
	if experienceID <= 0 {
		return nil, domain.ValidationError{Field: "experienceId", Msg: "must be positive"}
	}

	query := `
		SELECT id, experience_id, to_char(date, 'YYYY-MM-DD'), start_time, end_time, available, created_at
		FROM time_slots
		WHERE experience_id = $1`
	args := []any{experienceID}

	if d := strings.TrimSpace(date); d != "" {
		args = append(args, d)
		query += ` AND date = $2`
	}
	if !includeTaken {
		query += ` AND available = TRUE`
	}
	query += ` ORDER BY date, start_time`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TimeSlot{}
	for rows.Next() {
		var s models.TimeSlot
		if err := rows.Scan(&s.ID, &s.ExperienceID, &s.Date, &s.StartTime, &s.EndTime, &s.Available, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r SlotRepo) Create(s models.TimeSlot) (models.TimeSlot, error) {
	err := r.db().QueryRow(`
		INSERT INTO time_slots (experience_id, date, start_time, end_time, available, created_at)
		VALUES ($1, $2, $3, $4, TRUE, NOW())
		RETURNING id, available, created_at
	`, s.ExperienceID, s.Date, s.StartTime, s.EndTime).Scan(&s.ID, &s.Available, &s.CreatedAt)
	if err != nil {
		return models.TimeSlot{}, err
	}
	return s, nil
}
