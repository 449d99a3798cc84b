package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/cover-letter-agent/internal/types"
)

// LetterFilters holds optional filters for listing letters
type LetterFilters struct {
	Company string
	Tier    types.GenerationTier
	Limit   int
}

// SaveLetter stores a generated letter and returns its ID. The
// original content is kept alongside so user edits never lose the
// generated text.
func (s *Store) SaveLetter(ctx context.Context, letter types.CoverLetter) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO letters (job_posting_id, content, original_content, language, tier,
		                      job_title, company_name, position_type)
		 VALUES (NULLIF($1, '')::uuid, $2, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		letter.JobPostingID, letter.Content, letter.Language, string(letter.Tier),
		letter.JobTitle, letter.CompanyName, string(letter.PositionType),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save letter: %w", err)
	}
	return id, nil
}

// UpdateLetterContent replaces the editable content of a letter. The
// original generated text stays untouched.
func (s *Store) UpdateLetterContent(ctx context.Context, id uuid.UUID, content string) error {
	result, err := s.pool.Exec(ctx,
		`UPDATE letters SET content = $1, edited_at = NOW() WHERE id = $2`,
		content, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update letter: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("letter not found: %s", id)
	}
	return nil
}

// GetLetter retrieves a letter by ID. Returns nil without error when
// no letter exists.
func (s *Store) GetLetter(ctx context.Context, id uuid.UUID) (*types.CoverLetter, error) {
	var letter types.CoverLetter
	var letterID uuid.UUID
	var jobID *uuid.UUID

	err := s.pool.QueryRow(ctx,
		`SELECT id, job_posting_id, content, original_content, language, tier,
		        job_title, company_name, position_type, created_at, edited_at
		 FROM letters WHERE id = $1`,
		id,
	).Scan(&letterID, &jobID, &letter.Content, &letter.OriginalContent,
		&letter.Language, &letter.Tier, &letter.JobTitle, &letter.CompanyName,
		&letter.PositionType, &letter.GeneratedAt, &letter.EditedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get letter: %w", err)
	}

	letter.ID = letterID.String()
	if jobID != nil {
		letter.JobPostingID = jobID.String()
	}
	return &letter, nil
}

// ListLetters retrieves recent letters, most recent first
func (s *Store) ListLetters(ctx context.Context, filters LetterFilters) ([]types.CoverLetter, error) {
	if filters.Limit <= 0 {
		filters.Limit = 50
	}

	query := `SELECT id, content, language, tier, job_title, company_name, position_type, created_at
		FROM letters WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Company != "" {
		query += fmt.Sprintf(" AND company_name ILIKE $%d", argNum)
		args = append(args, "%"+filters.Company+"%")
		argNum++
	}
	if filters.Tier != "" {
		query += fmt.Sprintf(" AND tier = $%d", argNum)
		args = append(args, string(filters.Tier))
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list letters: %w", err)
	}
	defer rows.Close()

	var letters []types.CoverLetter
	for rows.Next() {
		var letter types.CoverLetter
		var id uuid.UUID
		if err := rows.Scan(&id, &letter.Content, &letter.Language, &letter.Tier,
			&letter.JobTitle, &letter.CompanyName, &letter.PositionType, &letter.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan letter: %w", err)
		}
		letter.ID = id.String()
		letters = append(letters, letter)
	}
	return letters, nil
}

// DeleteLetter removes a letter
func (s *Store) DeleteLetter(ctx context.Context, id uuid.UUID) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM letters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete letter: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("letter not found: %s", id)
	}
	return nil
}
