package repositories

import (
	"database/sql"
	"errors"

	intconfig "mavuso/internal/config"
	"mavuso/internal/domain"
	"mavuso/internal/domain/models"
)

type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `b.id, b.experience_id, b.time_slot_id, b.guest_id, b.host_id, b.guests_count, b.total_price, b.status, b.payment_status, b.created_at, b.updated_at`

const bookingJoins = `
	FROM bookings b
	JOIN experiences e ON e.id = b.experience_id
	JOIN time_slots ts ON ts.id = b.time_slot_id`

func scanBookingRow(row rowScanner) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID,
		&b.ExperienceID,
		&b.TimeSlotID,
		&b.GuestID,
		&b.HostID,
		&b.GuestsCount,
		&b.TotalPrice,
		&b.Status,
		&b.PaymentStatus,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.ExperienceTitle,
		&b.SlotDate,
		&b.SlotStartTime,
		&b.SlotEndTime,
	)
	return b, err
}

func (r BookingRepo) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	row := r.db().QueryRow(`
		SELECT `+bookingColumns+`, e.title, to_char(ts.date, 'YYYY-MM-DD'), ts.start_time, ts.end_time
		`+bookingJoins+`
		WHERE b.id = $1
	`, id)
	b, err := scanBookingRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, err
}

func (r BookingRepo) listBy(where string, userID int64) ([]models.Booking, error) {
	rows, err := r.db().Query(`
		SELECT `+bookingColumns+`, e.title, to_char(ts.date, 'YYYY-MM-DD'), ts.start_time, ts.end_time
		`+bookingJoins+`
		WHERE `+where+` = $1
		ORDER BY b.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBookingRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListByGuest returns the caller's bookings, newest first.
func (r BookingRepo) ListByGuest(userID int64) ([]models.Booking, error) {
	return r.listBy("b.guest_id", userID)
}

// ListByHost returns bookings against the caller's experiences, newest first.
func (r BookingRepo) ListByHost(userID int64) ([]models.Booking, error) {
	return r.listBy("b.host_id", userID)
}
