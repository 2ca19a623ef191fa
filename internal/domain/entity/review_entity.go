package entity

import "time"

const (
	MinRating = 1
	MaxRating = 10
)

// Review belongs to one bootcamp and one user; a user reviews a bootcamp at most once.
type Review struct {
	ID         string    `json:"id"`
	BootcampID string    `json:"bootcamp"`
	UserID     string    `json:"user"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
}
