package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/sdezurik/MolProbity/internal/ports/primary"
	"github.com/sdezurik/MolProbity/internal/ports/secondary"
)

// JobServiceImpl implements the JobService interface.
type JobServiceImpl struct {
	jobRepo    secondary.JobRepository
	launcher   secondary.JobLauncher
	executable string // program re-invoked inside the session
}

// NewJobService creates a new JobService with injected dependencies.
func NewJobService(jobRepo secondary.JobRepository, launcher secondary.JobLauncher, executable string) *JobServiceImpl {
	return &JobServiceImpl{
		jobRepo:    jobRepo,
		launcher:   launcher,
		executable: executable,
	}
}

// SessionName is the terminal session a job runs in.
func SessionName(jobID string) string {
	return "mp-" + jobID
}

// LaunchJob starts an analysis in a detached session.
func (s *JobServiceImpl) LaunchJob(ctx context.Context, req primary.LaunchJobRequest) (*primary.Job, error) {
	if req.PDBPath == "" {
		return nil, fmt.Errorf("a coordinate file is required")
	}
	pdb, err := filepath.Abs(req.PDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", req.PDBPath, err)
	}

	id := "JOB-" + uuid.NewString()[:8]
	session := SessionName(id)
	argv := append([]string{s.executable, "analyze", pdb}, req.Args...)

	if err := s.launcher.Launch(ctx, session, req.WorkDir, argv); err != nil {
		return nil, fmt.Errorf("failed to launch job: %w", err)
	}

	record := &secondary.JobRecord{
		ID:      id,
		Session: session,
		PDBPath: pdb,
		Command: strings.Join(argv, " "),
		Status:  secondary.JobStatusRunning,
	}
	if err := s.jobRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record job: %w", err)
	}

	job := recordToJob(record)
	job.Attach = s.launcher.AttachInstructions(session)
	return job, nil
}

// ListJobs lists jobs. A running job whose session is gone is marked finished.
func (s *JobServiceImpl) ListJobs(ctx context.Context) ([]*primary.Job, error) {
	records, err := s.jobRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	jobs := make([]*primary.Job, 0, len(records))
	for _, r := range records {
		if r.Status == secondary.JobStatusRunning && !s.launcher.SessionExists(ctx, r.Session) {
			if err := s.jobRepo.UpdateStatus(ctx, r.ID, secondary.JobStatusFinished); err != nil {
				return nil, fmt.Errorf("failed to update job %s: %w", r.ID, err)
			}
			r.Status = secondary.JobStatusFinished
		}
		jobs = append(jobs, recordToJob(r))
	}
	return jobs, nil
}

// KillJob ends a job's session and marks it killed.
func (s *JobServiceImpl) KillJob(ctx context.Context, jobID string) error {
	record, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to get job: %w", err)
	}
	if record.Status != secondary.JobStatusRunning {
		return fmt.Errorf("job %s is %s", jobID, record.Status)
	}

	if s.launcher.SessionExists(ctx, record.Session) {
		if err := s.launcher.KillSession(ctx, record.Session); err != nil {
			return fmt.Errorf("failed to kill session: %w", err)
		}
	}
	if err := s.jobRepo.UpdateStatus(ctx, jobID, secondary.JobStatusKilled); err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	return nil
}

func recordToJob(r *secondary.JobRecord) *primary.Job {
	return &primary.Job{
		ID:        r.ID,
		Session:   r.Session,
		PDBPath:   r.PDBPath,
		Command:   r.Command,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Ensure JobServiceImpl implements the interface
var _ primary.JobService = (*JobServiceImpl)(nil)
