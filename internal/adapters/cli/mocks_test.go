package cli

import (
	"context"
	"io"

	"github.com/fatih/color"

	"github.com/sdezurik/MolProbity/internal/core/pipeline"
	"github.com/sdezurik/MolProbity/internal/ports/primary"
)

func init() {
	color.NoColor = true
}

// mockAnalysisService implements primary.AnalysisService for testing
type mockAnalysisService struct {
	analyzeFn func(ctx context.Context, req primary.AnalyzeRequest) (*primary.AnalyzeResponse, error)
	resumeFn  func(ctx context.Context, modelID string, opts pipeline.Options) (*primary.AnalyzeResponse, error)

	lastAnalyzeReq primary.AnalyzeRequest
}

func (m *mockAnalysisService) Analyze(ctx context.Context, req primary.AnalyzeRequest) (*primary.AnalyzeResponse, error) {
	m.lastAnalyzeReq = req
	return m.analyzeFn(ctx, req)
}

func (m *mockAnalysisService) Run(ctx context.Context, state *pipeline.ModelAnalysisState, opts pipeline.Options) (*pipeline.ModelAnalysisState, error) {
	return state, nil
}

func (m *mockAnalysisService) Resume(ctx context.Context, modelID string, opts pipeline.Options) (*primary.AnalyzeResponse, error) {
	return m.resumeFn(ctx, modelID, opts)
}

// mockModelService implements primary.ModelService for testing
type mockModelService struct {
	listModelsFn  func(ctx context.Context, filters primary.ModelFilters) ([]*primary.Model, error)
	getModelFn    func(ctx context.Context, modelID string) (*primary.ModelDetail, error)
	deleteModelFn func(ctx context.Context, modelID string) error
}

func (m *mockModelService) ListModels(ctx context.Context, filters primary.ModelFilters) ([]*primary.Model, error) {
	if m.listModelsFn != nil {
		return m.listModelsFn(ctx, filters)
	}
	return []*primary.Model{}, nil
}

func (m *mockModelService) GetModel(ctx context.Context, modelID string) (*primary.ModelDetail, error) {
	return m.getModelFn(ctx, modelID)
}

func (m *mockModelService) DeleteModel(ctx context.Context, modelID string) error {
	if m.deleteModelFn != nil {
		return m.deleteModelFn(ctx, modelID)
	}
	return nil
}

// mockJobService implements primary.JobService for testing
type mockJobService struct {
	launchJobFn func(ctx context.Context, req primary.LaunchJobRequest) (*primary.Job, error)
	listJobsFn  func(ctx context.Context) ([]*primary.Job, error)
	killJobFn   func(ctx context.Context, jobID string) error
}

func (m *mockJobService) LaunchJob(ctx context.Context, req primary.LaunchJobRequest) (*primary.Job, error) {
	return m.launchJobFn(ctx, req)
}

func (m *mockJobService) ListJobs(ctx context.Context) ([]*primary.Job, error) {
	if m.listJobsFn != nil {
		return m.listJobsFn(ctx)
	}
	return nil, nil
}

func (m *mockJobService) KillJob(ctx context.Context, jobID string) error {
	if m.killJobFn != nil {
		return m.killJobFn(ctx, jobID)
	}
	return nil
}

// mockReportService implements primary.ReportService for testing
type mockReportService struct {
	generateFn func(ctx context.Context, req primary.ReportRequest, w io.Writer) (*primary.ReportSummary, error)
	lastReq    primary.ReportRequest
}

func (m *mockReportService) Generate(ctx context.Context, req primary.ReportRequest, w io.Writer) (*primary.ReportSummary, error) {
	m.lastReq = req
	return m.generateFn(ctx, req, w)
}
