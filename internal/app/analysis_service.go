package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/sdezurik/MolProbity/internal/config"
	"github.com/sdezurik/MolProbity/internal/core/effects"
	"github.com/sdezurik/MolProbity/internal/core/pipeline"
	"github.com/sdezurik/MolProbity/internal/core/residue"
	"github.com/sdezurik/MolProbity/internal/core/structure"
	"github.com/sdezurik/MolProbity/internal/core/summary"
	"github.com/sdezurik/MolProbity/internal/core/validation"
	"github.com/sdezurik/MolProbity/internal/ports/primary"
	"github.com/sdezurik/MolProbity/internal/ports/secondary"
)

// AnalysisServiceImpl implements the AnalysisService interface.
type AnalysisServiceImpl struct {
	modelRepo secondary.ModelRepository
	workspace secondary.WorkspaceAdapter
	observer  secondary.ProgressObserver
	executor  EffectExecutor
	cfg       *config.Config
}

// NewAnalysisService creates a new AnalysisService with injected dependencies.
func NewAnalysisService(
	modelRepo secondary.ModelRepository,
	workspace secondary.WorkspaceAdapter,
	observer secondary.ProgressObserver,
	executor EffectExecutor,
	cfg *config.Config,
) *AnalysisServiceImpl {
	return &AnalysisServiceImpl{
		modelRepo: modelRepo,
		workspace: workspace,
		observer:  observer,
		executor:  executor,
		cfg:       cfg,
	}
}

// NewModelID returns a fresh model identifier.
func NewModelID() string {
	return "MODEL-" + uuid.NewString()[:8]
}

// Analyze registers the coordinate file as a new model and runs the requested stages.
func (s *AnalysisServiceImpl) Analyze(ctx context.Context, req primary.AnalyzeRequest) (*primary.AnalyzeResponse, error) {
	info, err := os.Stat(req.PDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", req.PDBPath, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", req.PDBPath)
	}

	// 1. Give the model its own directory and copy the input there
	id := NewModelID()
	dir, err := s.workspace.CreateModelDir(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to create model directory: %w", err)
	}
	pdb, err := s.workspace.ImportFile(ctx, req.PDBPath, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", req.PDBPath, err)
	}

	// 2. Register it; a file that already carries hydrogens is not reduced again
	reduced := req.Reduced || fileHasHydrogens(pdb)
	name := strings.TrimSuffix(filepath.Base(pdb), filepath.Ext(pdb))
	record := &secondary.ModelRecord{
		ID:        id,
		Name:      name,
		Dir:       dir,
		PDB:       pdb,
		Prefix:    name,
		IsReduced: reduced,
	}
	if err := s.modelRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	// 3. Run the stages
	state := pipeline.NewModelAnalysisState(id, dir, pdb, name, reduced)
	stages := pipeline.Plan(req.Options, reduced)
	if _, err := s.Run(ctx, state, req.Options); err != nil {
		return nil, err
	}

	return &primary.AnalyzeResponse{ModelID: id, State: state, Stages: stages}, nil
}

// Resume loads a registered model with its recorded findings and runs the
// requested stages on it.
func (s *AnalysisServiceImpl) Resume(ctx context.Context, modelID string, opts pipeline.Options) (*primary.AnalyzeResponse, error) {
	analysis, err := s.modelRepo.GetAnalysis(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	state := stateFromRecord(analysis)
	stages := pipeline.Plan(opts, state.IsReduced)
	if _, err := s.Run(ctx, state, opts); err != nil {
		return nil, err
	}

	return &primary.AnalyzeResponse{ModelID: modelID, State: state, Stages: stages}, nil
}

// Run executes the planned stages against state and persists the result.
// Stages run one at a time; each one's output is parsed before the next starts.
func (s *AnalysisServiceImpl) Run(ctx context.Context, state *pipeline.ModelAnalysisState, opts pipeline.Options) (*pipeline.ModelAnalysisState, error) {
	stages := pipeline.Plan(opts, state.IsReduced)
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		s.observer.StageStarted(ctx, state.ID, string(stage), pipeline.Description(stage))

		in := state.Input(s.cfg.Tools, s.cfg.HydrogenBondLength, s.cfg.LibDir)
		if stage == pipeline.StageMultiKin {
			in = s.withStructure(ctx, in)
		}
		if err := s.executor.Execute(ctx, pipeline.StageEffects(stage, in)); err != nil {
			return state, fmt.Errorf("failed to run stage %s: %w", stage, err)
		}
		state.Complete(stage)

		s.absorb(ctx, state, stage)
	}

	// A chart from an earlier run is redrawn from the outliers it now has.
	if _, ok := state.Artifacts[pipeline.StageMultiChart]; ok && len(stages) > 0 && !slices.Contains(stages, pipeline.StageMultiChart) {
		in := state.Input(s.cfg.Tools, s.cfg.HydrogenBondLength, s.cfg.LibDir)
		if err := s.executor.Execute(ctx, pipeline.StageEffects(pipeline.StageMultiChart, in)); err != nil {
			return state, fmt.Errorf("failed to refresh chart: %w", err)
		}
		state.Chart = summary.BuildChart(state.Outliers)
	}

	s.observer.StageStarted(ctx, state.ID, string(pipeline.StageNone), "")

	if err := s.modelRepo.SaveAnalysis(ctx, analysisRecord(state)); err != nil {
		return state, fmt.Errorf("failed to save analysis: %w", err)
	}
	return state, nil
}

// absorb folds the output a finished stage left on disk into state.
func (s *AnalysisServiceImpl) absorb(ctx context.Context, state *pipeline.ModelAnalysisState, stage pipeline.Stage) {
	switch stage {
	case pipeline.StageMultiChart:
		state.Chart = summary.BuildChart(state.Outliers)
		return
	case pipeline.StageMultiKin, pipeline.StageRamaPlot, pipeline.StageCbetaKin, pipeline.StageAACKin:
		return
	}

	path, ok := state.Artifacts[stage]
	if !ok {
		return
	}
	data := readStageOutput(ctx, s.executor, stage, path)

	if stage == pipeline.StageReduce {
		if len(bytes.TrimSpace(data)) > 0 {
			state.UseReduced()
		}
		return
	}
	state.Apply(pipeline.Classify(stage, data))
}

// readStageOutput returns what stage left at path. A missing file is empty
// output; any other read failure is logged and read as empty too.
func readStageOutput(ctx context.Context, executor EffectExecutor, stage pipeline.Stage, path string) []byte {
	data, err := os.ReadFile(path)
	if err == nil || os.IsNotExist(err) {
		return data
	}
	_ = executor.Execute(ctx, []effects.Effect{effects.Warn("failed to read analyzer output", map[string]any{
		"stage": string(stage),
		"path":  path,
		"error": err.Error(),
	})})
	return nil
}

// fileHasHydrogens reports whether the coordinate file already has H atoms.
func fileHasHydrogens(pdb string) bool {
	f, err := os.Open(pdb)
	if err != nil {
		return false
	}
	defer f.Close()
	return structure.HasHydrogens(f)
}

// withStructure adds the alternate conformers and residue centers of the
// current coordinates to in.
func (s *AnalysisServiceImpl) withStructure(ctx context.Context, in pipeline.StageInput) pipeline.StageInput {
	data, err := os.ReadFile(in.PDB)
	if err != nil {
		_ = s.executor.Execute(ctx, []effects.Effect{effects.Warn("failed to read coordinates for kinemage markers", map[string]any{
			"path":  in.PDB,
			"error": err.Error(),
		})})
		return in
	}
	in.AltConfs = structure.FindAltConfs(bytes.NewReader(data))
	in.Centers = structure.ResidueCenters(bytes.NewReader(data))
	return in
}

func analysisRecord(state *pipeline.ModelAnalysisState) *secondary.AnalysisRecord {
	rec := &secondary.AnalysisRecord{
		Model: secondary.ModelRecord{
			ID:              state.ID,
			Dir:             state.Dir,
			PDB:             state.PDB,
			Prefix:          state.Prefix,
			IsReduced:       state.IsReduced,
			ClashScoreAll:   state.ClashScore.All,
			ClashScoreBlt40: state.ClashScore.Blt40,
		},
		Artifacts: make(map[string]string, len(state.Artifacts)),
	}

	for _, c := range validation.Criteria {
		for k, sev := range state.Outliers[c].All() {
			rec.Outliers = append(rec.Outliers, secondary.OutlierRecord{
				Criterion:  string(c),
				ResidueKey: string(k),
				Value:      sev.Value,
				Label:      sev.Label,
			})
		}
	}
	for stage, path := range state.Artifacts {
		rec.Artifacts[string(stage)] = path
	}
	for _, row := range state.Chart.Rows {
		cr := secondary.ChartRowRecord{ResidueKey: string(row.Key)}
		for _, c := range state.Chart.Criteria {
			if _, ok := row.Flags[c]; ok {
				cr.Criteria = append(cr.Criteria, string(c))
			}
		}
		rec.ChartRows = append(rec.ChartRows, cr)
	}
	return rec
}

func stateFromRecord(rec *secondary.AnalysisRecord) *pipeline.ModelAnalysisState {
	m := rec.Model
	state := pipeline.NewModelAnalysisState(m.ID, m.Dir, m.PDB, m.Prefix, m.IsReduced)
	state.ClashScore = pipeline.ClashScore{All: m.ClashScoreAll, Blt40: m.ClashScoreBlt40}

	builders := make(map[validation.Criterion]*validation.OutlierMapBuilder)
	for _, o := range rec.Outliers {
		c := validation.Criterion(o.Criterion)
		b, ok := builders[c]
		if !ok {
			b = validation.NewOutlierMapBuilder()
			builders[c] = b
		}
		b.Set(residue.Key(o.ResidueKey), validation.Severity{Value: o.Value, Label: o.Label})
	}
	for c, b := range builders {
		state.SetOutliers(c, b.Build())
	}
	for stage, path := range rec.Artifacts {
		state.Artifacts[pipeline.Stage(stage)] = path
	}
	if _, ok := state.Artifacts[pipeline.StageMultiChart]; ok {
		state.Chart = summary.BuildChart(state.Outliers)
	}
	return state
}

// Ensure AnalysisServiceImpl implements the interface
var _ primary.AnalysisService = (*AnalysisServiceImpl)(nil)
