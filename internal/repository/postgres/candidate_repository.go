package postgres

import (
	"context"
	"errors"
	"fmt"

	"ats-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SQLSTATE for unique constraint violations.
const uniqueViolationCode = "23505"

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

const candidateColumns = `
	id, name, surname, email, phone, address, education, experience,
	COALESCE(cv_file_path, ''), created_at, updated_at`

func (r *candidateRepository) Save(ctx context.Context, candidate *domain.Candidate) (*domain.Candidate, error) {
	data := candidate.ToPersistence()

	// cv_file_path is nullable; store NULL rather than an empty string.
	var cvFilePath *string
	if data.CVFilePath != "" {
		cvFilePath = &data.CVFilePath
	}

	query := `
		INSERT INTO candidates (name, surname, email, phone, address, education, experience, cv_file_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		data.Name, data.Surname, data.Email, data.Phone,
		data.Address, data.Education, data.Experience, cvFilePath,
	).Scan(&data.ID, &data.CreatedAt, &data.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to save candidate: %w", err)
	}

	return domain.CandidateFromPersistence(data)
}

func (r *candidateRepository) FindByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE email = $1`
	return r.queryOne(ctx, query, email)
}

func (r *candidateRepository) FindByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	return r.queryOne(ctx, query, id)
}

func (r *candidateRepository) queryOne(ctx context.Context, query string, arg interface{}) (*domain.Candidate, error) {
	var data domain.CandidateData
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&data.ID, &data.Name, &data.Surname, &data.Email, &data.Phone,
		&data.Address, &data.Education, &data.Experience,
		&data.CVFilePath, &data.CreatedAt, &data.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch candidate: %w", err)
	}
	return domain.CandidateFromPersistence(data)
}

func (r *candidateRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM candidates WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check candidate existence: %w", err)
	}
	return exists, nil
}

func (r *candidateRepository) FindAll(ctx context.Context) ([]*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates ORDER BY created_at, id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []*domain.Candidate{}
	for rows.Next() {
		var data domain.CandidateData
		err := rows.Scan(
			&data.ID, &data.Name, &data.Surname, &data.Email, &data.Phone,
			&data.Address, &data.Education, &data.Experience,
			&data.CVFilePath, &data.CreatedAt, &data.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidate, err := domain.CandidateFromPersistence(data)
		if err != nil {
			return nil, fmt.Errorf("stored candidate %d failed validation: %w", data.ID, err)
		}
		candidates = append(candidates, candidate)
	}
	return candidates, rows.Err()
}
