package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/sdezurik/MolProbity/internal/core/effects"
	"github.com/sdezurik/MolProbity/internal/core/residue"
	"github.com/sdezurik/MolProbity/internal/core/structure"
	"github.com/sdezurik/MolProbity/internal/core/summary"
	"github.com/sdezurik/MolProbity/internal/core/validation"
)

// Template placeholders substituted into tool argv templates.
const (
	PlaceholderInput   = "{input}"
	PlaceholderOutput  = "{output}"
	PlaceholderBLength = "{blength}"
	PlaceholderLib     = "{lib}"
)

// output file name suffixes, appended to the model prefix
var outputNames = map[Stage]string{
	StageReduce:     "H.pdb",
	StageCbeta:      "cbdev.data",
	StageRotamer:    "rota.data",
	StageRama:       "rama.data",
	StageClash:      "clash.data",
	StageOmega:      "omega.data",
	StageGeometry:   "geom.data",
	StageMultiChart: "multi.csv",
	StageMultiKin:   "multi.kin",
	StageRamaPlot:   "rama.kin",
	StageCbetaKin:   "cbetadev.kin",
	StageAACKin:     "aac.kin",
}

// OutputPath is where stage leaves its result for a model.
func OutputPath(stage Stage, dir, prefix string) string {
	name, ok := outputNames[stage]
	if !ok {
		return ""
	}
	return filepath.Join(dir, prefix+name)
}

// StageInput contains pre-fetched data for planning one stage.
// All values must be gathered by the caller - no I/O in the planner.
type StageInput struct {
	PDB         string // coordinate file the stage reads
	Dir         string // model working directory
	Prefix      string // model file name prefix
	HBondLength string // ecloud or nuclear
	LibDir      string
	Tools       map[string][]string // stage name -> argv template

	// Outlier maps gathered so far; consumed by the chart and kinemage stages.
	Outliers map[validation.Criterion]validation.OutlierMap

	// Read from PDB by the caller for the multi-criterion kinemage only.
	AltConfs structure.AltConfs
	Centers  map[residue.Key]structure.Point
}

// Resolve substitutes placeholders in every argument of template.
func Resolve(template []string, vars map[string]string) []string {
	pairs := make([]string, 0, 2*len(vars))
	for k, v := range vars {
		pairs = append(pairs, k, v)
	}
	r := strings.NewReplacer(pairs...)

	out := make([]string, len(template))
	for i, arg := range template {
		out[i] = r.Replace(arg)
	}
	return out
}

// StageEffects returns the effects that carry out stage for in.
//
// Analyzer stages run their configured tool with standard output captured to
// the stage's output path, unless the template names {output} itself. A stage
// without a configured tool logs a warning and leaves an empty output file,
// which later parses to no findings.
func StageEffects(stage Stage, in StageInput) []effects.Effect {
	output := OutputPath(stage, in.Dir, in.Prefix)

	switch stage {
	case StageNone:
		return []effects.Effect{effects.NoEffect{}}
	case StageMultiChart:
		chart := summary.BuildChart(in.Outliers)
		return []effects.Effect{
			effects.FileEffect{Operation: effects.FileWrite, Path: output, Content: chart.CSV(), Mode: 0644},
			effects.Info("wrote multi-criterion chart", map[string]any{"path": output, "rows": len(chart.Rows)}),
		}
	}

	if output == "" {
		return []effects.Effect{effects.Warn("unknown stage", map[string]any{"stage": string(stage)})}
	}

	template, ok := in.Tools[string(stage)]
	if !ok || len(template) == 0 {
		return []effects.Effect{
			effects.Warn("no tool configured", map[string]any{"stage": string(stage)}),
			effects.FileEffect{Operation: effects.FileWrite, Path: output, Content: nil, Mode: 0644},
		}
	}

	if stage == StageMultiKin {
		return multiKinEffects(in, template, output)
	}

	argv := Resolve(template, map[string]string{
		PlaceholderInput:   in.PDB,
		PlaceholderOutput:  output,
		PlaceholderBLength: in.HBondLength,
		PlaceholderLib:     in.LibDir,
	})

	exec := effects.ExecEffect{Tool: string(stage), Argv: argv, Dir: in.Dir}
	if !mentions(template, PlaceholderOutput) {
		exec.StdoutPath = output
	}
	return []effects.Effect{exec}
}

func mentions(template []string, placeholder string) bool {
	for _, arg := range template {
		if strings.Contains(arg, placeholder) {
			return true
		}
	}
	return false
}
