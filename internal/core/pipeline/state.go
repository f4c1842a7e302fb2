package pipeline

import (
	"github.com/sdezurik/MolProbity/internal/core/summary"
	"github.com/sdezurik/MolProbity/internal/core/validation"
)

// ClashScore is the clash tool's summary line.
type ClashScore struct {
	All   float64
	Blt40 float64 // atoms with B < 40 only
}

// ModelAnalysisState is everything an analyze run has learned about one
// model. It is created empty, passed through each stage and returned.
type ModelAnalysisState struct {
	ID        string
	Dir       string // model working directory
	PDB       string // current coordinate file; the reduced file once reduce ran
	Prefix    string // output file name prefix
	IsReduced bool

	Outliers   map[validation.Criterion]validation.OutlierMap
	ClashScore ClashScore
	Artifacts  map[Stage]string // stage -> output path
	Chart      summary.Chart
}

// NewModelAnalysisState returns an empty state for a registered model.
func NewModelAnalysisState(id, dir, pdb, prefix string, reduced bool) *ModelAnalysisState {
	return &ModelAnalysisState{
		ID:        id,
		Dir:       dir,
		PDB:       pdb,
		Prefix:    prefix,
		IsReduced: reduced,
		Outliers:  make(map[validation.Criterion]validation.OutlierMap),
		Artifacts: make(map[Stage]string),
	}
}

// Input returns the planner input for the state's next stage.
func (s *ModelAnalysisState) Input(tools map[string][]string, hBondLength, libDir string) StageInput {
	return StageInput{
		PDB:         s.PDB,
		Dir:         s.Dir,
		Prefix:      s.Prefix,
		HBondLength: hBondLength,
		LibDir:      libDir,
		Tools:       tools,
		Outliers:    s.Outliers,
	}
}

// Complete records that stage ran and left its output at OutputPath.
func (s *ModelAnalysisState) Complete(stage Stage) {
	if out := OutputPath(stage, s.Dir, s.Prefix); out != "" {
		s.Artifacts[stage] = out
	}
}

// UseReduced switches later stages to the coordinates written by reduce.
func (s *ModelAnalysisState) UseReduced() {
	if out, ok := s.Artifacts[StageReduce]; ok {
		s.PDB = out
		s.IsReduced = true
	}
}

// SetOutliers stores the outlier map of one criterion.
func (s *ModelAnalysisState) SetOutliers(c validation.Criterion, m validation.OutlierMap) {
	s.Outliers[c] = m
}
