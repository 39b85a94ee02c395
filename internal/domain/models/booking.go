package models

import "time"

type Booking struct {
	ID            int64     `json:"id"`
	ExperienceID  int64     `json:"experienceId"`
	TimeSlotID    int64     `json:"timeSlotId"`
	GuestID       int64     `json:"guestId"`
	HostID        int64     `json:"hostId"`
	GuestsCount   int       `json:"guestsCount"`
	TotalPrice    float64   `json:"totalPrice"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// denormalized for listings/receipts
	ExperienceTitle string `json:"experienceTitle,omitempty"`
	SlotDate        string `json:"slotDate,omitempty"`
	SlotStartTime   string `json:"slotStartTime,omitempty"`
	SlotEndTime     string `json:"slotEndTime,omitempty"`
}

// BookingInput is the create payload.
type BookingInput struct {
	ExperienceID int64 `json:"experienceId"`
	TimeSlotID   int64 `json:"timeSlotId"`
	GuestsCount  int   `json:"guestsCount"`
}
