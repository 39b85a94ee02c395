package domain

// BookingStatus values set directly by the API; no transition validation.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

const (
	MessageText    = "text"
	MessageImage   = "image"
	MessageBooking = "booking"
)

func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

func ValidMessageType(s string) bool {
	switch s {
	case MessageText, MessageImage, MessageBooking:
		return true
	}
	return false
}
