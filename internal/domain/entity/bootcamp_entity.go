package entity

import "time"

// DefaultPhoto is the photo name of a bootcamp that has none uploaded.
const DefaultPhoto = "no-photo.jpg"

// Bootcamp is owned by exactly one user. AverageRating and AverageCost are
// derived from reviews and courses; nil means there is nothing to average.
type Bootcamp struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"user"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Website       string    `json:"website,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address"`
	Zipcode       string    `json:"zipcode"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Careers       []string  `json:"careers"`
	Housing       bool      `json:"housing"`
	JobAssistance bool      `json:"job_assistance"`
	JobGuarantee  bool      `json:"job_guarantee"`
	AcceptGI      bool      `json:"accept_gi"`
	Photo         string    `json:"photo"`
	AverageRating *float64  `json:"average_rating"`
	AverageCost   *float64  `json:"average_cost"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
