package models

import "time"

type Experience struct {
	ID              int64     `json:"id"`
	HostID          int64     `json:"hostId"`
	HostName        string    `json:"hostName,omitempty"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Price           float64   `json:"price"`
	Duration        string    `json:"duration"`
	Location        string    `json:"location"`
	MaxParticipants int       `json:"maxParticipants"`
	Images          []string  `json:"images"`
	Requirements    string    `json:"requirements"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ExperienceFilter carries the optional list-query parameters. Zero values mean
// "not set"; PriceMin/PriceMax use pointers so 0 is a usable bound.
type ExperienceFilter struct {
	Search   string
	Category string
	Location string
	PriceMin *float64
	PriceMax *float64
}

// ExperienceUpdate supports PATCH-style updates via key presence.
type ExperienceUpdate struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	Category        *string   `json:"category"`
	Price           *float64  `json:"price"`
	Duration        *string   `json:"duration"`
	Location        *string   `json:"location"`
	MaxParticipants *int      `json:"maxParticipants"`
	Images          *[]string `json:"images"`
	Requirements    *string   `json:"requirements"`
	Active          *bool     `json:"active"`
}

type TimeSlot struct {
	ID           int64     `json:"id"`
	ExperienceID int64     `json:"experienceId"`
	Date         string    `json:"date"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"createdAt"`
}
