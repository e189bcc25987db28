package store

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/xinmi/exammaster/internal/models"
)

type UserStore interface {
	Close() error
	ApplyMigrations(dir string) error

	GetUserByCode(code string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
	GetUserByToken(token string) (*models.User, error)
	GetOrCreateUserByCode(code, defaultName string) (*models.User, error)
	UpdateUserToken(userID int64, token string) error

	ListProgress(userID int64, courseID *int64) ([]models.CourseProgress, error)
	UpsertProgress(userID, courseID int64, patch models.ProgressPatch) (*models.CourseProgress, error)
}

// BaseStore provides common functionality for different DB implementations
type BaseStore struct {
	DB        *sqlx.DB
	Converter func(string) string
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// ApplyMigrations applies SQL migrations from a directory, translating dialect if needed
func (s *BaseStore) ApplyMigrations(dir string, translateSQL func(string) string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		content, err := os.ReadFile(fmt.Sprintf("%s/%s", dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}

		sql := string(content)
		if translateSQL != nil {
			sql = translateSQL(sql)
		}

		if _, err := s.DB.Exec(sql); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file.Name(), err)
		}
	}

	return nil
}

func (s *BaseStore) getUserWhere(clause string, arg interface{}) (*models.User, error) {
	var user models.User
	query := s.Converter(`
		SELECT id, code, name, email, grade, token
		FROM users
		WHERE ` + clause)

	err := s.DB.Get(&user, query, arg)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *BaseStore) GetUserByCode(code string) (*models.User, error) {
	return s.getUserWhere("code = ?", code)
}

func (s *BaseStore) GetUserByID(id int64) (*models.User, error) {
	return s.getUserWhere("id = ?", id)
}

func (s *BaseStore) GetUserByToken(token string) (*models.User, error) {
	return s.getUserWhere("token = ?", token)
}

// GetOrCreateUserByCode resolves a validated code to its user row,
// inserting one on first sight. The insert is conditional on the unique
// code column, so two concurrent first-sight requests cannot create
// duplicate identities.
func (s *BaseStore) GetOrCreateUserByCode(code, defaultName string) (*models.User, error) {
	query := s.Converter(`
		INSERT INTO users (code, name)
		VALUES (?, ?)
		ON CONFLICT (code) DO NOTHING
	`)
	if _, err := s.DB.Exec(query, code, defaultName); err != nil {
		return nil, fmt.Errorf("failed to create user for code %s: %w", code, err)
	}

	user, err := s.GetUserByCode(code)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user for code %s missing after conditional insert", code)
	}
	return user, nil
}

func (s *BaseStore) UpdateUserToken(userID int64, token string) error {
	query := s.Converter(`
		UPDATE users
		SET token = ?
		WHERE id = ?
	`)
	if _, err := s.DB.Exec(query, token, userID); err != nil {
		return fmt.Errorf("failed to update token for user %d: %w", userID, err)
	}
	return nil
}

func (s *BaseStore) ListProgress(userID int64, courseID *int64) ([]models.CourseProgress, error) {
	query := `
		SELECT id, user_id, course_id, progress_percent, total_answered, total_correct, correct_rate, submit_at
		FROM user_course_progress
		WHERE user_id = ?
	`
	args := []interface{}{userID}

	if courseID != nil {
		query += " AND course_id = ?"
		args = append(args, *courseID)
	}

	var items []models.CourseProgress
	err := s.DB.Select(&items, s.Converter(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list course progress: %w", err)
	}

	return items, nil
}

// UpsertProgress creates or partially updates the progress row for
// (userID, courseID). Fields left nil in the patch keep their stored
// value, or default to 0 when no row exists yet. correct_rate and
// submit_at are recomputed on every write. The returned record is
// re-read from the store so the caller sees exactly what was persisted.
func (s *BaseStore) UpsertProgress(userID, courseID int64, patch models.ProgressPatch) (*models.CourseProgress, error) {
	existing, err := s.getProgress(userID, courseID)
	if err != nil {
		return nil, err
	}

	var progressPercent, totalAnswered, totalCorrect int
	if existing != nil {
		progressPercent = existing.ProgressPercent
		totalAnswered = existing.TotalAnswered
		totalCorrect = existing.TotalCorrect
	}
	if patch.ProgressPercent != nil {
		progressPercent = *patch.ProgressPercent
	}
	if patch.TotalAnswered != nil {
		totalAnswered = *patch.TotalAnswered
	}
	if patch.TotalCorrect != nil {
		totalCorrect = *patch.TotalCorrect
	}

	correctRate := 0.0
	if totalAnswered > 0 {
		// ties round to even, like the Python round() that issued
		// existing rows
		correctRate = math.RoundToEven(float64(totalCorrect)*100.0/float64(totalAnswered)*100) / 100
	}

	query := s.Converter(`
		INSERT INTO user_course_progress
			(user_id, course_id, progress_percent, total_answered, total_correct, correct_rate, submit_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, course_id) DO UPDATE SET
			progress_percent = excluded.progress_percent,
			total_answered = excluded.total_answered,
			total_correct = excluded.total_correct,
			correct_rate = excluded.correct_rate,
			submit_at = excluded.submit_at
	`)
	_, err = s.DB.Exec(query,
		userID,
		courseID,
		progressPercent,
		totalAnswered,
		totalCorrect,
		correctRate,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert course progress: %w", err)
	}

	stored, err := s.getProgress(userID, courseID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("progress row for user %d course %d missing after upsert", userID, courseID)
	}
	return stored, nil
}

func (s *BaseStore) getProgress(userID, courseID int64) (*models.CourseProgress, error) {
	var progress models.CourseProgress
	query := s.Converter(`
		SELECT id, user_id, course_id, progress_percent, total_answered, total_correct, correct_rate, submit_at
		FROM user_course_progress
		WHERE user_id = ?
		AND course_id = ?
	`)

	err := s.DB.Get(&progress, query, userID, courseID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course progress: %w", err)
	}
	return &progress, nil
}
