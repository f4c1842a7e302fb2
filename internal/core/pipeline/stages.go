// Package pipeline plans the analysis stages for a model.
// This is part of the Functional Core - no I/O, only pure functions.
package pipeline

import "github.com/sdezurik/MolProbity/internal/core/validation"

// Stage is one step of an analysis run.
type Stage string

const (
	StageNone       Stage = ""
	StageReduce     Stage = "reduce"
	StageCbeta      Stage = "cbeta"
	StageRotamer    Stage = "rotamer"
	StageRama       Stage = "ramachandran"
	StageClash      Stage = "clash"
	StageMultiChart Stage = "multiChart"
	StageMultiKin   Stage = "multiKin"
	StageRamaPlot   Stage = "ramaPlot"
	StageCbetaKin   Stage = "cbetaKin"
	StageAACKin     Stage = "aacKin"

	// Report-only stages; never part of an analyze plan.
	StageOmega    Stage = "omega"
	StageGeometry Stage = "geometry"
)

// Order is the fixed execution order of an analyze run.
var Order = []Stage{
	StageReduce, StageCbeta, StageRotamer, StageRama, StageClash,
	StageMultiChart, StageMultiKin, StageRamaPlot, StageCbetaKin, StageAACKin,
}

// Options selects what an analyze run produces.
type Options struct {
	All        bool
	Rama       bool
	Rota       bool
	Cbeta      bool
	AAC        bool // all-atom contacts
	MultiKin   bool
	MultiChart bool
}

// Any reports whether at least one option is set.
func (o Options) Any() bool {
	return o.All || o.Rama || o.Rota || o.Cbeta || o.AAC || o.MultiKin || o.MultiChart
}

// Active reports whether stage runs under opts for a model whose reduced
// state is given.
func Active(stage Stage, opts Options, reduced bool) bool {
	switch stage {
	case StageReduce:
		return (opts.All || opts.AAC || opts.MultiChart || opts.MultiKin) && !reduced
	case StageCbeta:
		return opts.All || opts.Cbeta || opts.MultiChart
	case StageRotamer:
		return opts.All || opts.Rota || opts.MultiChart || opts.MultiKin
	case StageRama:
		return opts.All || opts.Rama || opts.MultiChart || opts.MultiKin
	case StageClash:
		return opts.All || opts.AAC || opts.MultiChart
	case StageMultiChart:
		return opts.All || opts.MultiChart
	case StageMultiKin:
		return opts.All || opts.MultiKin
	case StageRamaPlot:
		return opts.All || opts.Rama
	case StageCbetaKin:
		return opts.All || opts.Cbeta
	case StageAACKin:
		return opts.All || opts.AAC
	default:
		return false
	}
}

// Plan returns the active stages in execution order. Stages feeding a
// requested chart or kinemage are included even when not asked for directly.
func Plan(opts Options, reduced bool) []Stage {
	var out []Stage
	for _, s := range Order {
		if Active(s, opts, reduced) {
			out = append(out, s)
		}
	}
	return out
}

// ReportCriteria selects the analyzers a residue report needs.
type ReportCriteria struct {
	Clash    bool
	Cbeta    bool
	Rotamer  bool
	Rama     bool
	Omega    bool
	Geometry bool
}

// ReportPlan returns the analyzer stages for a residue report. Reduction is
// not part of it: the report runs against the file as given.
func ReportPlan(c ReportCriteria) []Stage {
	var out []Stage
	if c.Clash {
		out = append(out, StageClash)
	}
	if c.Cbeta {
		out = append(out, StageCbeta)
	}
	if c.Rotamer {
		out = append(out, StageRotamer)
	}
	if c.Rama {
		out = append(out, StageRama)
	}
	if c.Omega {
		out = append(out, StageOmega)
	}
	if c.Geometry {
		out = append(out, StageGeometry)
	}
	return out
}

// Description is a human-readable summary of what stage does.
func Description(stage Stage) string {
	switch stage {
	case StageReduce:
		return "Add H with reduce"
	case StageCbeta:
		return "Do C-beta analysis"
	case StageRotamer:
		return "Do rotamer analysis"
	case StageRama:
		return "Do Ramachandran analysis"
	case StageClash:
		return "Do clash analysis with clashlist"
	case StageMultiChart:
		return "Create multi-criteria chart"
	case StageMultiKin:
		return "Create multi-criteria kinemage"
	case StageRamaPlot:
		return "Create Ramachandran plot"
	case StageCbetaKin:
		return "Create C-beta deviation plot"
	case StageAACKin:
		return "Create all-atom contacts kinemage"
	case StageOmega:
		return "Do peptide bond analysis"
	case StageGeometry:
		return "Do bond length and angle analysis"
	case StageNone:
		return "Finished"
	default:
		return string(stage)
	}
}

// Criteria returns the outlier criteria whose maps stage produces.
func Criteria(stage Stage) []validation.Criterion {
	switch stage {
	case StageCbeta:
		return []validation.Criterion{validation.CriterionCbeta}
	case StageRotamer:
		return []validation.Criterion{validation.CriterionRotamer}
	case StageRama:
		return []validation.Criterion{validation.CriterionRama}
	case StageClash:
		return []validation.Criterion{validation.CriterionClash}
	case StageOmega:
		return []validation.Criterion{validation.CriterionOmega}
	case StageGeometry:
		return []validation.Criterion{validation.CriterionBond, validation.CriterionAngle}
	default:
		return nil
	}
}
