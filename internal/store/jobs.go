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

// SaveJobPosting inserts a job posting and returns its ID
func (s *Store) SaveJobPosting(ctx context.Context, job types.JobPosting) (uuid.UUID, error) {
	data, err := json.Marshal(job)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal job posting: %w", err)
	}

	var id uuid.UUID
	err = s.pool.QueryRow(ctx,
		`INSERT INTO job_postings (job_title, company_name, position_type, data)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		job.JobTitle, job.CompanyName, string(job.PositionType), data,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save job posting: %w", err)
	}
	return id, nil
}

// GetJobPosting retrieves a job posting by ID. Returns nil without
// error when no posting exists.
func (s *Store) GetJobPosting(ctx context.Context, id uuid.UUID) (*types.JobPosting, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM job_postings WHERE id = $1`,
		id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}

	var job types.JobPosting
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job posting: %w", err)
	}
	job.ID = id.String()
	return &job, nil
}

// ListJobPostings retrieves recent postings, optionally filtered by
// company name substring.
func (s *Store) ListJobPostings(ctx context.Context, company string, limit int) ([]types.JobPosting, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, data FROM job_postings WHERE 1=1`
	args := []any{}
	argNum := 1

	if company != "" {
		query += fmt.Sprintf(" AND company_name ILIKE $%d", argNum)
		args = append(args, "%"+company+"%")
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	var jobs []types.JobPosting
	for rows.Next() {
		var id uuid.UUID
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		var job types.JobPosting
		if err := json.Unmarshal(data, &job); err != nil {
			return nil, fmt.Errorf("failed to unmarshal job posting: %w", err)
		}
		job.ID = id.String()
		jobs = append(jobs, job)
	}
	return jobs, nil
}
