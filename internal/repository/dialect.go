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

type postgresDialectRepository struct {
	db *sql.DB
}

// NewPostgresDialectRepository creates a new PostgreSQL dialect profile repository
func NewPostgresDialectRepository() DialectProfileRepository {
	return &postgresDialectRepository{
		db: db.DB,
	}
}

// Upsert creates or replaces the dialect profile for a user
func (r *postgresDialectRepository) Upsert(ctx context.Context, profile *model.DialectProfile) error {
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = time.Now().UTC()
	}

	patternsJSON, err := json.Marshal(profile.FillerPatterns)
	if err != nil {
		return fmt.Errorf("failed to marshal filler patterns: %w", err)
	}
	seedIDsJSON, err := json.Marshal(profile.SeedSessionIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal seed session ids: %w", err)
	}

	query := `
		INSERT INTO dialect_profiles (
			user_id, detected_region, filler_patterns, avg_wpm_baseline,
			seed_session_ids, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			detected_region = EXCLUDED.detected_region,
			filler_patterns = EXCLUDED.filler_patterns,
			avg_wpm_baseline = EXCLUDED.avg_wpm_baseline,
			seed_session_ids = EXCLUDED.seed_session_ids,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		profile.UserID,
		profile.DetectedRegion,
		patternsJSON,
		profile.AvgWPMBaseline,
		seedIDsJSON,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert dialect profile: %w", err)
	}

	return nil
}

// GetByUser retrieves the dialect profile for a user
func (r *postgresDialectRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*model.DialectProfile, error) {
	query := `
		SELECT user_id, detected_region, filler_patterns, avg_wpm_baseline,
			seed_session_ids, updated_at
		FROM dialect_profiles
		WHERE user_id = $1
	`

	var profile model.DialectProfile
	var patternsJSON, seedIDsJSON []byte

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.DetectedRegion,
		&patternsJSON,
		&profile.AvgWPMBaseline,
		&seedIDsJSON,
		&profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("dialect profile not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dialect profile: %w", err)
	}

	if len(patternsJSON) > 0 {
		if err := json.Unmarshal(patternsJSON, &profile.FillerPatterns); err != nil {
			return nil, fmt.Errorf("failed to unmarshal filler patterns: %w", err)
		}
	}
	if len(seedIDsJSON) > 0 {
		if err := json.Unmarshal(seedIDsJSON, &profile.SeedSessionIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal seed session ids: %w", err)
		}
	}

	return &profile, nil
}
