// Package db provides PostgreSQL storage for parsed candidates.
package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-parser/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping verifies database connectivity, for health checks
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// InsertCandidate stores one parsed candidate and its skills in a single
// transaction and returns the generated candidate id.
func (db *DB) InsertCandidate(ctx context.Context, rec *types.CandidateRecord, filename string) (uuid.UUID, error) {
	tx, err := db.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO candidates
		 (full_name, email, phone, total_experience_years,
		  current_role, current_company, location, resume_file_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		rec.FullName, rec.Email, rec.Phone, rec.TotalExperienceYears,
		rec.CurrentRole, rec.CurrentCompany, rec.Location, filename,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert candidate: %w", err)
	}

	for _, skill := range rec.Skills {
		_, err = tx.Exec(ctx,
			`INSERT INTO skills (candidate_id, skill_name) VALUES ($1, $2)`,
			id, skill,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert skill %q: %w", skill, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit candidate insert: %w", err)
	}
	return id, nil
}

// ListCandidates returns all stored candidates, newest first
func (db *DB) ListCandidates(ctx context.Context) ([]Candidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, full_name, email, phone, total_experience_years,
		        current_role, current_company, location, resume_file_name, created_at
		 FROM candidates ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []Candidate{}
	for rows.Next() {
		var c Candidate
		err := rows.Scan(
			&c.ID, &c.FullName, &c.Email, &c.Phone, &c.TotalExperienceYears,
			&c.CurrentRole, &c.CurrentCompany, &c.Location, &c.ResumeFileName, &c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}

	skillsByCandidate, err := db.allSkills(ctx)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		skills := skillsByCandidate[candidates[i].ID]
		if skills == nil {
			skills = []string{}
		}
		candidates[i].Skills = skills
	}

	return candidates, nil
}

// allSkills loads every skill row grouped by candidate, in insertion order.
func (db *DB) allSkills(ctx context.Context) (map[uuid.UUID][]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT candidate_id, skill_name FROM skills ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	grouped := make(map[uuid.UUID][]string)
	for rows.Next() {
		var candidateID uuid.UUID
		var skill string
		if err := rows.Scan(&candidateID, &skill); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		grouped[candidateID] = append(grouped[candidateID], skill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read skills: %w", err)
	}

	return grouped, nil
}
