package repositories

import (
	"database/sql"

	intconfig "mavuso/internal/config"
	"mavuso/internal/domain"
	"mavuso/internal/domain/models"
)

type ReviewRepo struct {
	DB *sql.DB
}

func (r ReviewRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ReviewRepo) ExistsForBooking(bookingID, reviewerID int64) (bool, error) {
	var count int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM reviews WHERE booking_id = $1 AND reviewer_id = $2
	`, bookingID, reviewerID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r ReviewRepo) Create(rv models.Review) (models.Review, error) {
	err := r.db().QueryRow(`
		INSERT INTO reviews (booking_id, reviewer_id, reviewee_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`, rv.BookingID, rv.ReviewerID, rv.RevieweeID, rv.Rating, rv.Comment).Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		return models.Review{}, err
	}
	return rv, nil
}

// ListForExperience returns reviews left on bookings of one experience,
// newest first, with reviewer display names.
func (r ReviewRepo) ListForExperience(experienceID int64) ([]models.Review, error) {
	if experienceID <= 0 {
		return nil, domain.ValidationError{Field: "experienceId", Msg: "must be positive"}
	}
	rows, err := r.db().Query(`
		SELECT rv.id, rv.booking_id, rv.reviewer_id, rv.reviewee_id, rv.rating, COALESCE(rv.comment,''), rv.created_at,
			COALESCE(u.first_name || ' ' || u.last_name, '')
		FROM reviews rv
		JOIN bookings b ON b.id = rv.booking_id
		JOIN users u ON u.id = rv.reviewer_id
		WHERE b.experience_id = $1
		ORDER BY rv.created_at DESC
	`, experienceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Review{}
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.BookingID, &rv.ReviewerID, &rv.RevieweeID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.ReviewerName); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
