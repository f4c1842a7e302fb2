package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/sdezurik/MolProbity/internal/ports/primary"
)

// JobAdapter translates CLI operations to JobService calls.
type JobAdapter struct {
	service primary.JobService
	out     io.Writer
}

// NewJobAdapter creates a new JobAdapter with the given service.
func NewJobAdapter(service primary.JobService, out io.Writer) *JobAdapter {
	return &JobAdapter{
		service: service,
		out:     out,
	}
}

// Launch starts a background analysis and tells the user how to follow it.
func (a *JobAdapter) Launch(ctx context.Context, pdbPath, workDir string, args []string) error {
	job, err := a.service.LaunchJob(ctx, primary.LaunchJobRequest{
		PDBPath: pdbPath,
		Args:    args,
		WorkDir: workDir,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Started job %s in session %s\n", job.ID, job.Session)
	if job.Attach != "" {
		fmt.Fprintf(a.out, "\n%s\n", strings.TrimRight(job.Attach, "\n"))
	}
	return nil
}

// List lists background jobs.
func (a *JobAdapter) List(ctx context.Context) error {
	jobs, err := a.service.ListJobs(ctx)
	if err != nil {
		return err
	}

	if len(jobs) == 0 {
		fmt.Fprintln(a.out, "No jobs found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-13s %-18s %-9s %s\n", "ID", "SESSION", "STATUS", "FILE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, j := range jobs {
		fmt.Fprintf(a.out, "%-13s %-18s %s %s\n", j.ID, j.Session, statusText(j.Status), j.PDBPath)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Kill ends a running job.
func (a *JobAdapter) Kill(ctx context.Context, jobID string) error {
	if err := a.service.KillJob(ctx, jobID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Job %s killed\n", jobID)
	return nil
}

// statusText pads before coloring so escape codes do not break alignment.
func statusText(status string) string {
	padded := fmt.Sprintf("%-9s", status)
	switch status {
	case "running":
		return color.New(color.FgGreen).Sprint(padded)
	case "killed":
		return color.New(color.FgRed).Sprint(padded)
	default:
		return padded
	}
}
