package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bursa-register/internal/domain"
)

// SubmissionFilter narrows a listing of one owner's submissions.
type SubmissionFilter struct {
	OwnerSubject string
	// Limit caps the result to the newest rows; zero means no cap.
	Limit int
}

// SubmissionRepository encapsulates submission persistence.
type SubmissionRepository interface {
	// CreateWithinCap inserts record unless the owner already holds maxPerOwner
	// submissions, in which case domain.ErrSubmissionCapReached is returned.
	CreateWithinCap(ctx context.Context, record *domain.SubmissionRecord, maxPerOwner int) error
	List(ctx context.Context, filter SubmissionFilter) ([]domain.SubmissionRecord, error)
	GetByID(ctx context.Context, id string) (*domain.SubmissionRecord, error)
}

type submissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository instantiates repository.
func NewSubmissionRepository(pool *pgxpool.Pool) SubmissionRepository {
	return &submissionRepository{pool: pool}
}

const submissionColumns = `id, owner_subject, owner_email, name, category_slug, is_online_business,
               status, payload, created_at, updated_at`

func (r *submissionRepository) CreateWithinCap(ctx context.Context, record *domain.SubmissionRecord, maxPerOwner int) error {
	payload, err := json.Marshal(record.Payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		// Serializes submissions of one owner so the count below stays accurate.
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, record.OwnerSubject); err != nil {
			return err
		}

		var count int
		if err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM business_submissions WHERE owner_subject=$1`,
			record.OwnerSubject,
		).Scan(&count); err != nil {
			return err
		}
		if count >= maxPerOwner {
			return domain.ErrSubmissionCapReached
		}

		const query = `
        INSERT INTO business_submissions (id, owner_subject, owner_email, name, category_slug, is_online_business, status, payload)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at, updated_at`
		return tx.QueryRow(ctx, query,
			record.ID,
			record.OwnerSubject,
			record.OwnerEmail,
			record.Name,
			record.CategorySlug,
			record.IsOnlineBusiness,
			record.Status,
			payload,
		).Scan(&record.CreatedAt, &record.UpdatedAt)
	})
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*domain.SubmissionRecord, error) {
	query := `SELECT ` + submissionColumns + ` FROM business_submissions WHERE id=$1`
	record, err := scanSubmission(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *submissionRepository) List(ctx context.Context, filter SubmissionFilter) ([]domain.SubmissionRecord, error) {
	args := []any{filter.OwnerSubject}
	query := fmt.Sprintf(`SELECT %s FROM business_submissions WHERE owner_subject=$1 ORDER BY created_at DESC`,
		submissionColumns)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.SubmissionRecord
	for rows.Next() {
		record, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func scanSubmission(row pgx.Row) (*domain.SubmissionRecord, error) {
	var (
		record  domain.SubmissionRecord
		payload []byte
	)
	if err := row.Scan(
		&record.ID,
		&record.OwnerSubject,
		&record.OwnerEmail,
		&record.Name,
		&record.CategorySlug,
		&record.IsOnlineBusiness,
		&record.Status,
		&payload,
		&record.CreatedAt,
		&record.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &record.Payload); err != nil {
		return nil, fmt.Errorf("decode payload of %s: %w", record.ID, err)
	}
	return &record, nil
}
