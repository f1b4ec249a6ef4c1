package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/usicttechiete/boli.ai/internal/db"
	"github.com/usicttechiete/boli.ai/internal/model"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL session repository
func NewPostgresRepository() SessionRepository {
	return &postgresRepository{
		db: db.DB,
	}
}

// Insert creates a new session record
func (r *postgresRepository) Insert(ctx context.Context, session *model.Session) (*model.Session, error) {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	fillersJSON, err := json.Marshal(sliceOrEmpty(session.FillerWordsFound))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal filler words: %w", err)
	}
	tipsJSON, err := json.Marshal(sliceOrEmpty(session.Tips))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tips: %w", err)
	}

	query := `
		INSERT INTO sessions (
			id, user_id, type, prompt_text, transcript, wpm, accuracy_score,
			filler_count, filler_words_found, llm_tips, audio_url,
			duration_secs, overall_score, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
	`

	_, err = r.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.Kind,
		session.PromptText,
		session.Transcript,
		session.WPM,
		session.AccuracyScore,
		session.FillerCount,
		fillersJSON,
		tipsJSON,
		session.AudioURL,
		session.DurationSecs,
		session.OverallScore,
		session.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	return session, nil
}

// GetByID retrieves a session by ID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	query := sessionSelect + ` WHERE id = $1`

	session, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// ListByUser retrieves sessions for a user with pagination
func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID, kind *model.SessionKind, limit, offset int) ([]model.Session, int, error) {
	query := sessionSelect + ` WHERE user_id = $1`
	countQuery := `SELECT COUNT(*) FROM sessions WHERE user_id = $1`
	args := []interface{}{userID}

	if kind != nil {
		query += ` AND type = $2`
		countQuery += ` AND type = $2`
		args = append(args, *kind)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return sessions, total, nil
}

const sessionSelect = `
	SELECT
		id, user_id, type, prompt_text, transcript, wpm, accuracy_score,
		filler_count, filler_words_found, llm_tips, audio_url,
		duration_secs, overall_score, created_at
	FROM sessions`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*model.Session, error) {
	var session model.Session
	var fillersJSON, tipsJSON []byte

	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.Kind,
		&session.PromptText,
		&session.Transcript,
		&session.WPM,
		&session.AccuracyScore,
		&session.FillerCount,
		&fillersJSON,
		&tipsJSON,
		&session.AudioURL,
		&session.DurationSecs,
		&session.OverallScore,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(fillersJSON) > 0 {
		if err := json.Unmarshal(fillersJSON, &session.FillerWordsFound); err != nil {
			return nil, fmt.Errorf("failed to unmarshal filler words: %w", err)
		}
	}
	if len(tipsJSON) > 0 {
		if err := json.Unmarshal(tipsJSON, &session.Tips); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tips: %w", err)
		}
	}

	return &session, nil
}

func sliceOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
