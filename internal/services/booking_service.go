package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	intconfig "mavuso/internal/config"
	"mavuso/internal/domain"
	"mavuso/internal/domain/models"
	"mavuso/internal/repositories"
	"mavuso/internal/utils"
)

type BookingService struct {
	BookingRepo repositories.BookingRepo
	DB          *sql.DB
	RequestID   string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

// Create books a time slot for the guest. The whole flow runs in one
// transaction and the slot row is read FOR UPDATE, so two concurrent requests
// for the same slot cannot both succeed: the second blocks, then sees
// available=false and gets a conflict.
func (s BookingService) Create(guestID int64, in models.BookingInput) (models.Booking, error) {
	if guestID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "guest", Msg: "not authenticated"}
	}
	if in.ExperienceID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "experienceId", Msg: "required"}
	}
	if in.TimeSlotID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "timeSlotId", Msg: "required"}
	}
	if in.GuestsCount < 1 {
		return models.Booking{}, domain.ValidationError{Field: "guestsCount", Msg: "must be at least 1"}
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		"experience_id="+itoa(in.ExperienceID)+" slot_id="+itoa(in.TimeSlotID))

	tx, err := s.db().Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	var (
		price           float64
		hostID          int64
		maxParticipants int
		active          bool
	)
	err = tx.QueryRow(`
		SELECT price, host_id, max_participants, active
		FROM experiences
		WHERE id = $1
	`, in.ExperienceID).Scan(&price, &hostID, &maxParticipants, &active)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "experience"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if !active {
		return models.Booking{}, domain.NotFoundError{Resource: "experience"}
	}
	if hostID == guestID {
		return models.Booking{}, domain.ValidationError{Field: "experienceId", Msg: "cannot book your own experience"}
	}
	if maxParticipants > 0 && in.GuestsCount > maxParticipants {
		return models.Booking{}, domain.ValidationError{Field: "guestsCount", Msg: "exceeds experience capacity"}
	}

	var (
		slotExperienceID int64
		available        bool
	)
	err = tx.QueryRow(`
		SELECT experience_id, available
		FROM time_slots
		WHERE id = $1
		FOR UPDATE
	`, in.TimeSlotID).Scan(&slotExperienceID, &available)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "time slot"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if slotExperienceID != in.ExperienceID {
		return models.Booking{}, domain.ValidationError{Field: "timeSlotId", Msg: "slot does not belong to this experience"}
	}
	if !available {
		return models.Booking{}, domain.ConflictError{Resource: "time slot", Msg: "already booked"}
	}

	booking := models.Booking{
		ExperienceID:  in.ExperienceID,
		TimeSlotID:    in.TimeSlotID,
		GuestID:       guestID,
		HostID:        hostID,
		GuestsCount:   in.GuestsCount,
		TotalPrice:    price * float64(in.GuestsCount),
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
	}
	err = tx.QueryRow(`
		INSERT INTO bookings
			(experience_id, time_slot_id, guest_id, host_id, guests_count, total_price, status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, booking.ExperienceID, booking.TimeSlotID, booking.GuestID, booking.HostID,
		booking.GuestsCount, booking.TotalPrice, booking.Status, booking.PaymentStatus).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	if _, err := tx.Exec(`UPDATE time_slots SET available = FALSE WHERE id = $1`, in.TimeSlotID); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	return booking, nil
}

// UpdateStatus sets booking and/or payment status directly; cancellation also
// restores the slot inside the same transaction. Guest and host may both
// update. Empty fields are left untouched.
func (s BookingService) UpdateStatus(userID, bookingID int64, status, paymentStatus string) (models.Booking, error) {
	if bookingID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	if status == "" && paymentStatus == "" {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "nothing to update"}
	}
	if status != "" && !domain.ValidBookingStatus(status) {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "unknown status"}
	}
	if paymentStatus != "" && !domain.ValidPaymentStatus(paymentStatus) {
		return models.Booking{}, domain.ValidationError{Field: "paymentStatus", Msg: "unknown payment status"}
	}

	utils.LogEvent(s.RequestID, "booking", "update_status",
		"booking_id="+itoa(bookingID)+" status="+status+" payment_status="+paymentStatus)

	tx, err := s.db().Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	var (
		guestID, hostID, slotID int64
		current                 string
	)
	err = tx.QueryRow(`
		SELECT guest_id, host_id, time_slot_id, status
		FROM bookings
		WHERE id = $1
		FOR UPDATE
	`, bookingID).Scan(&guestID, &hostID, &slotID, &current)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if userID != guestID && userID != hostID {
		return models.Booking{}, domain.ForbiddenError{Msg: "not your booking"}
	}

	sets := []string{}
	args := []any{}
	if status != "" {
		args = append(args, status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if paymentStatus != "" {
		args = append(args, paymentStatus)
		sets = append(sets, fmt.Sprintf("payment_status = $%d", len(args)))
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, bookingID)
	query := fmt.Sprintf("UPDATE bookings SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	if _, err := tx.Exec(query, args...); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	if status == domain.BookingCancelled && current != domain.BookingCancelled {
		if _, err := tx.Exec(`UPDATE time_slots SET available = TRUE WHERE id = $1`, slotID); err != nil {
			return models.Booking{}, domain.InternalError{Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	return s.bookings().GetByID(bookingID)
}

// GetForUser fetches a booking the caller participates in.
func (s BookingService) GetForUser(userID, bookingID int64) (models.Booking, error) {
	b, err := s.bookings().GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if b.GuestID != userID && b.HostID != userID {
		return models.Booking{}, domain.ForbiddenError{Msg: "not your booking"}
	}
	return b, nil
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
