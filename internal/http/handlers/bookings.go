package handlers

import (
	"net/http"
	"strconv"

	"mavuso/internal/domain/models"
	"mavuso/internal/http/middleware"
	"mavuso/internal/repositories"
	"mavuso/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/bookings (auth)
func CreateBooking(c *gin.Context) {
	var in models.BookingInput
	if !BindJSONOrError(c, &in) {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	booking, err := svc.Create(middleware.CurrentUserID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": booking})
}

// GET /api/bookings (auth) — caller as guest.
func GetMyBookings(c *gin.Context) {
	repo := repositories.BookingRepo{}
	bookings, err := repo.ListByGuest(middleware.CurrentUserID(c))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load bookings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

// GET /api/bookings/hosting (auth) — caller as host.
func GetHostingBookings(c *gin.Context) {
	repo := repositories.BookingRepo{}
	bookings, err := repo.ListByHost(middleware.CurrentUserID(c))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load bookings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

type updateStatusRequest struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

// PUT /api/bookings/:id/status (auth, guest or host)
func UpdateBookingStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid booking id", nil)
		return
	}

	var req updateStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	booking, err := svc.UpdateStatus(middleware.CurrentUserID(c), id, req.Status, req.PaymentStatus)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}
