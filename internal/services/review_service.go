package services

import (
	"database/sql"

	intconfig "mavuso/internal/config"
	"mavuso/internal/domain"
	"mavuso/internal/domain/models"
	"mavuso/internal/repositories"
)

type ReviewService struct {
	ReviewRepo  repositories.ReviewRepo
	BookingRepo repositories.BookingRepo
	DB          *sql.DB
}

func (s ReviewService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ReviewService) reviews() repositories.ReviewRepo {
	if s.ReviewRepo.DB != nil {
		return s.ReviewRepo
	}
	return repositories.ReviewRepo{DB: s.db()}
}

func (s ReviewService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

// Create records a review against a completed booking. Guest reviews host and
// vice versa; one review per booking per reviewer.
func (s ReviewService) Create(reviewerID int64, in models.ReviewInput) (models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return models.Review{}, domain.ValidationError{Field: "rating", Msg: "must be between 1 and 5"}
	}

	booking, err := s.bookings().GetByID(in.BookingID)
	if err != nil {
		return models.Review{}, err
	}
	if booking.GuestID != reviewerID && booking.HostID != reviewerID {
		return models.Review{}, domain.ForbiddenError{Msg: "not your booking"}
	}
	if booking.Status != domain.BookingCompleted {
		return models.Review{}, domain.ValidationError{Field: "bookingId", Msg: "booking is not completed"}
	}

	exists, err := s.reviews().ExistsForBooking(in.BookingID, reviewerID)
	if err != nil {
		return models.Review{}, domain.InternalError{Err: err}
	}
	if exists {
		return models.Review{}, domain.ConflictError{Resource: "review", Msg: "already reviewed this booking"}
	}

	revieweeID := booking.HostID
	if reviewerID == booking.HostID {
		revieweeID = booking.GuestID
	}

	review, err := s.reviews().Create(models.Review{
		BookingID:  in.BookingID,
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		Rating:     in.Rating,
		Comment:    in.Comment,
	})
	if err != nil {
		return models.Review{}, domain.InternalError{Err: err}
	}
	return review, nil
}
