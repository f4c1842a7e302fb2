package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sdezurik/MolProbity/internal/config"
	"github.com/sdezurik/MolProbity/internal/core/effects"
	"github.com/sdezurik/MolProbity/internal/core/pipeline"
	"github.com/sdezurik/MolProbity/internal/core/structure"
	"github.com/sdezurik/MolProbity/internal/core/summary"
	"github.com/sdezurik/MolProbity/internal/ports/primary"
	"github.com/sdezurik/MolProbity/internal/ports/secondary"
)

// ReportServiceImpl implements the ReportService interface.
type ReportServiceImpl struct {
	workspace secondary.WorkspaceAdapter
	executor  EffectExecutor
	cfg       *config.Config
}

// NewReportService creates a new ReportService with injected dependencies.
func NewReportService(workspace secondary.WorkspaceAdapter, executor EffectExecutor, cfg *config.Config) *ReportServiceImpl {
	return &ReportServiceImpl{
		workspace: workspace,
		executor:  executor,
		cfg:       cfg,
	}
}

// Generate writes the report header, then the rows of every model of every
// input in order. Inputs are processed one at a time, each in its own scratch
// session. Only a failure to write to w stops the batch.
func (s *ReportServiceImpl) Generate(ctx context.Context, req primary.ReportRequest, w io.Writer) (*primary.ReportSummary, error) {
	sum := &primary.ReportSummary{Inputs: len(req.Paths)}

	if _, err := fmt.Fprintln(w, req.Columns.Header()); err != nil {
		return sum, fmt.Errorf("failed to write header: %w", err)
	}

	for _, path := range req.Paths {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			s.skip(ctx, sum, path, "not a regular file")
			continue
		}

		if err := s.reportInput(ctx, path, req, w, sum); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

// reportInput reports every model of one input file. Errors returned are
// write errors; everything else is recorded as a skip.
func (s *ReportServiceImpl) reportInput(ctx context.Context, path string, req primary.ReportRequest, w io.Writer, sum *primary.ReportSummary) error {
	session, err := s.workspace.CreateSession(ctx)
	if err != nil {
		s.skip(ctx, sum, path, fmt.Sprintf("failed to create session: %v", err))
		return nil
	}
	defer func() {
		if err := s.workspace.DestroySession(ctx, session); err != nil {
			s.warn(ctx, "failed to remove session", map[string]any{"dir": session, "error": err.Error()})
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		s.skip(ctx, sum, path, fmt.Sprintf("failed to read: %v", err))
		return nil
	}
	models, err := structure.SplitModels(bytes.NewReader(data))
	if err != nil {
		s.skip(ctx, sum, path, fmt.Sprintf("failed to split models: %v", err))
		return nil
	}

	base := filepath.Base(path)
	for i, model := range models {
		name := base
		if len(models) > 1 {
			name = structure.ModelFileName(base, i)
		}

		rows, err := s.reportModel(ctx, session, name, model, req)
		if err != nil {
			s.skip(ctx, sum, name, err.Error())
			continue
		}

		for _, row := range rows {
			if _, err := fmt.Fprintln(w, row); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
		}
		sum.Models++
		sum.Rows += len(rows)
	}
	return nil
}

// reportModel runs the enabled analyzers on one model and renders its rows.
func (s *ReportServiceImpl) reportModel(ctx context.Context, session, name string, model []byte, req primary.ReportRequest) ([]string, error) {
	file := filepath.Join(session, name)
	write := effects.FileEffect{Operation: effects.FileWrite, Path: file, Content: model, Mode: 0644}
	if err := s.executor.Execute(ctx, []effects.Effect{write}); err != nil {
		return nil, fmt.Errorf("failed to write model: %w", err)
	}

	prefix := strings.TrimSuffix(name, filepath.Ext(name))
	in := pipeline.StageInput{
		PDB:         file,
		Dir:         session,
		Prefix:      prefix,
		HBondLength: s.cfg.HydrogenBondLength,
		LibDir:      s.cfg.LibDir,
		Tools:       s.cfg.Tools,
	}

	var f summary.Findings
	for _, stage := range pipeline.ReportPlan(reportCriteria(req.Columns)) {
		if err := s.executor.Execute(ctx, pipeline.StageEffects(stage, in)); err != nil {
			return nil, fmt.Errorf("failed to run %s: %w", stage, err)
		}
		out := readStageOutput(ctx, s.executor, stage, pipeline.OutputPath(stage, session, prefix))
		pipeline.Collect(stage, out, &f)
	}

	m := summary.Model{
		FileName: name,
		HType:    s.cfg.HydrogenBondLength,
		Residues: structure.ListResidues(bytes.NewReader(model)),
		BFactors: structure.ResidueBFactors(bytes.NewReader(model)),
	}
	return summary.Rows(m, f, req.Columns, req.OutliersOnly), nil
}

func reportCriteria(cols summary.Columns) pipeline.ReportCriteria {
	return pipeline.ReportCriteria{
		Clash:    cols.Clash,
		Cbeta:    cols.Cbeta,
		Rotamer:  cols.Rotamer,
		Rama:     cols.Rama,
		Omega:    cols.Omega,
		Geometry: cols.Geometry,
	}
}

func (s *ReportServiceImpl) skip(ctx context.Context, sum *primary.ReportSummary, path, reason string) {
	sum.Skipped = append(sum.Skipped, primary.SkippedInput{Path: path, Reason: reason})
	s.warn(ctx, "skipping input", map[string]any{"path": path, "reason": reason})
}

func (s *ReportServiceImpl) warn(ctx context.Context, msg string, fields map[string]any) {
	_ = s.executor.Execute(ctx, []effects.Effect{effects.Warn(msg, fields)})
}

// Ensure ReportServiceImpl implements the interface
var _ primary.ReportService = (*ReportServiceImpl)(nil)
