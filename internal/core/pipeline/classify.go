package pipeline

import (
	"bytes"

	"github.com/sdezurik/MolProbity/internal/core/summary"
	"github.com/sdezurik/MolProbity/internal/core/validation"
)

// StageResult is what one analyzer stage contributes to the model state.
type StageResult struct {
	Outliers   map[validation.Criterion]validation.OutlierMap
	ClashScore *ClashScore
}

// Classify parses the captured output of stage and classifies it. Stages
// without parseable output yield an empty result; so does empty output.
func Classify(stage Stage, output []byte) StageResult {
	res := StageResult{Outliers: make(map[validation.Criterion]validation.OutlierMap)}
	r := func() *bytes.Reader { return bytes.NewReader(output) }

	switch stage {
	case StageCbeta:
		res.Outliers[validation.CriterionCbeta] = validation.FindCbetaOutliers(validation.ParseCbetaDev(r()))
	case StageRotamer:
		res.Outliers[validation.CriterionRotamer] = validation.FindRotamerOutliers(validation.ParseRotamer(r()))
	case StageRama:
		res.Outliers[validation.CriterionRama] = validation.FindRamaOutliers(validation.ParseRamachandran(r()))
	case StageClash:
		rep := validation.ParseClashlist(r())
		res.Outliers[validation.CriterionClash] = validation.FindClashOutliers(rep)
		res.ClashScore = &ClashScore{All: rep.ScoreAll, Blt40: rep.ScoreBlt40}
	case StageOmega:
		res.Outliers[validation.CriterionOmega] = validation.FindOmegaOutliers(validation.ParseOmega(r()))
	case StageGeometry:
		res.Outliers[validation.CriterionBond] = validation.FindGeometryOutliers(validation.ParseGeometry(r(), validation.GeometryBond))
		res.Outliers[validation.CriterionAngle] = validation.FindGeometryOutliers(validation.ParseGeometry(r(), validation.GeometryAngle))
	}
	return res
}

// Apply folds res into the state.
func (s *ModelAnalysisState) Apply(res StageResult) {
	for c, m := range res.Outliers {
		s.SetOutliers(c, m)
	}
	if res.ClashScore != nil {
		s.ClashScore = *res.ClashScore
	}
}

// Collect parses the captured output of a report stage into f. Output of
// other stages is ignored.
func Collect(stage Stage, output []byte, f *summary.Findings) {
	r := func() *bytes.Reader { return bytes.NewReader(output) }

	switch stage {
	case StageClash:
		f.Clash = validation.ParseClashlist(r()).ByKey()
	case StageCbeta:
		f.Cbeta = validation.FindCbetaOutliers(validation.ParseCbetaDev(r()))
	case StageRotamer:
		f.Rotamer = summary.IndexRecords(validation.ParseRotamer(r()))
	case StageRama:
		f.Rama = summary.IndexRecords(validation.ParseRamachandran(r()))
	case StageOmega:
		f.Omega = summary.IndexRecords(validation.ParseOmega(r()))
	case StageGeometry:
		f.Bonds = summary.IndexRecords(validation.ParseGeometry(r(), validation.GeometryBond))
		f.Angles = summary.IndexRecords(validation.ParseGeometry(r(), validation.GeometryAngle))
	}
}
