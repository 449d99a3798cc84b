package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/cover-letter-agent/internal/types"
)

// SaveProfile inserts or updates a profile keyed by email and returns
// its ID. The whole profile is stored as JSONB; name and email are
// duplicated into columns for lookups.
func (s *Store) SaveProfile(ctx context.Context, profile types.UserProfile) (uuid.UUID, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	var id uuid.UUID
	err = s.pool.QueryRow(ctx,
		`INSERT INTO profiles (name, email, data)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO UPDATE SET name = $1, data = $3, updated_at = NOW()
		 RETURNING id`,
		profile.Name, profile.Email, data,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return id, nil
}

// GetProfile retrieves a profile by ID. Returns nil without error when
// no profile exists.
func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (*types.UserProfile, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM profiles WHERE id = $1`,
		id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile types.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	profile.ID = id.String()
	return &profile, nil
}

// GetProfileByEmail retrieves a profile by its email address
func (s *Store) GetProfileByEmail(ctx context.Context, email string) (*types.UserProfile, error) {
	var id uuid.UUID
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, data FROM profiles WHERE email = $1`,
		email,
	).Scan(&id, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile types.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	profile.ID = id.String()
	return &profile, nil
}
