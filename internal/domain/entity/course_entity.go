package entity

import "time"

type Skill string

const (
	SkillBeginner     Skill = "beginner"
	SkillIntermediate Skill = "intermediate"
	SkillAdvanced     Skill = "advanced"
)

// Course belongs to one bootcamp and is owned by the user who created it.
type Course struct {
	ID                   string    `json:"id"`
	BootcampID           string    `json:"bootcamp"`
	OwnerID              string    `json:"user"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Weeks                int       `json:"weeks"`
	Tuition              float64   `json:"tuition"`
	MinimumSkill         Skill     `json:"minimum_skill"`
	ScholarshipAvailable bool      `json:"scholarship_available"`
	CreatedAt            time.Time `json:"created_at"`
}
