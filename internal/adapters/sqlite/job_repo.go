package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sdezurik/MolProbity/internal/ports/secondary"
)

// JobRepository implements secondary.JobRepository with SQLite.
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new SQLite job repository.
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = "id, session, pdb_path, command, status, created_at, updated_at"

func scanJob(row scanner) (*secondary.JobRecord, error) {
	var (
		createdAt time.Time
		updatedAt time.Time
	)
	record := &secondary.JobRecord{}
	err := row.Scan(&record.ID, &record.Session, &record.PDBPath, &record.Command, &record.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// Create persists a new job.
func (r *JobRepository) Create(ctx context.Context, job *secondary.JobRecord) error {
	status := job.Status
	if status == "" {
		status = secondary.JobStatusRunning
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO jobs (id, session, pdb_path, command, status) VALUES (?, ?, ?, ?, ?)",
		job.ID, job.Session, job.PDBPath, job.Command, status,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// GetByID retrieves a job by its ID.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*secondary.JobRecord, error) {
	record, err := scanJob(r.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM jobs WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("job %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return record, nil
}

// List retrieves all jobs, newest first.
func (r *JobRepository) List(ctx context.Context) ([]*secondary.JobRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+jobColumns+" FROM jobs ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*secondary.JobRecord
	for rows.Next() {
		record, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, record)
	}
	return jobs, rows.Err()
}

// UpdateStatus sets the status of a job.
func (r *JobRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE jobs SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("job %s not found", id)
	}
	return nil
}

// Ensure JobRepository implements the interface
var _ secondary.JobRepository = (*JobRepository)(nil)
