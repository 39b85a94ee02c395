package models

import "time"

type Review struct {
	ID           int64     `json:"id"`
	BookingID    int64     `json:"bookingId"`
	ReviewerID   int64     `json:"reviewerId"`
	RevieweeID   int64     `json:"revieweeId"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
	ReviewerName string    `json:"reviewerName,omitempty"`
}

type ReviewInput struct {
	BookingID int64  `json:"bookingId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}
