package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// CourseProgress is the per-user per-course statistics row. At most one
// row exists per (user_id, course_id); the DB enforces that. CorrectRate
// is derived from the two counters on every write, never set directly.
type CourseProgress struct {
	ID              int64      `db:"id" json:"id"`
	UserID          int64      `db:"user_id" json:"user_id"`
	CourseID        int64      `db:"course_id" json:"course_id"`
	ProgressPercent int        `db:"progress_percent" json:"progress_percent"`
	TotalAnswered   int        `db:"total_answered" json:"total_answered"`
	TotalCorrect    int        `db:"total_correct" json:"total_correct"`
	CorrectRate     float64    `db:"correct_rate" json:"correct_rate"`
	SubmitAt        *time.Time `db:"submit_at" json:"submit_at"`
}

// ProgressPatch carries the optional fields of a progress upsert. A nil
// field means "keep the stored value" (or 0 when no row exists yet).
type ProgressPatch struct {
	ProgressPercent *int `json:"progress_percent" validate:"omitempty,gte=0,lte=100"`
	TotalAnswered   *int `json:"total_answered" validate:"omitempty,gte=0"`
	TotalCorrect    *int `json:"total_correct" validate:"omitempty,gte=0"`
}

func (p *ProgressPatch) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
