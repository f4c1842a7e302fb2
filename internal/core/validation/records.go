// Package validation normalizes analyzer reports into per-residue records and
// classifies them into sorted outlier maps.
// This is part of the Functional Core - parsers read from io.Reader, nothing opens files.
package validation

import "github.com/sdezurik/MolProbity/internal/core/residue"

// Outlier thresholds. Comparisons are inclusive.
const (
	CbetaOutlierDeviation  = 0.25 // Å, dev >= threshold
	ClashOutlierOverlap    = 0.40 // Å, overlap >= threshold
	RotamerOutlierScore    = 1.0  // percent, score <= threshold
	GeometryOutlierSigma   = 4.0  // |sigma| >= threshold counts as a bond/angle outlier
	RotamerOutlierLabel    = "OUTLIER"
	RamachandranOutlierTag = "OUTLIER"
)

// Verdict is the capability shared by every per-criterion record.
type Verdict interface {
	ResidueKey() residue.Key
	IsOutlier() bool
}

// NullAngle is a dihedral that may be absent from a report.
type NullAngle struct {
	Value float64
	Valid bool
}

// ClashRecord is the worst steric overlap involving one residue.
type ClashRecord struct {
	Key            residue.Key
	MaxOverlap     float64 // Å, positive
	ContactPartner residue.Key
	SrcAtom        string
	DstAtom        string
}

func (r ClashRecord) ResidueKey() residue.Key { return r.Key }

// IsOutlier reports overlap >= 0.40 Å.
func (r ClashRecord) IsOutlier() bool { return r.MaxOverlap >= ClashOutlierOverlap }

// ClashReport is the parsed clash-tool output.
type ClashReport struct {
	ScoreAll   float64
	ScoreBlt40 float64
	Records    []ClashRecord // first-appearance order
}

// ByKey indexes the records by residue.
func (c ClashReport) ByKey() map[residue.Key]ClashRecord {
	out := make(map[residue.Key]ClashRecord, len(c.Records))
	for _, r := range c.Records {
		out[r.Key] = r
	}
	return out
}

// CbetaRecord is one Cβ deviation measurement.
type CbetaRecord struct {
	Key       residue.Key
	Residue   residue.Residue
	AltConf   string // " " for none
	Deviation float64
	Dihedral  float64
	Occupancy float64
}

func (r CbetaRecord) ResidueKey() residue.Key { return r.Key }

// IsOutlier reports dev >= 0.25 Å.
func (r CbetaRecord) IsOutlier() bool { return r.Deviation >= CbetaOutlierDeviation }

// HasAltConf reports whether the measurement belongs to an alternate conformer.
func (r CbetaRecord) HasAltConf() bool { return r.AltConf != "" && r.AltConf != " " }

// RotamerRecord is one side-chain rotamer evaluation.
type RotamerRecord struct {
	Key        residue.Key
	Residue    residue.Residue
	ScorePct   float64
	Chi        [4]NullAngle
	Evaluation string // OUTLIER, Allowed, Favored
	Rotamer    string // rotamer name, e.g. "mt-10"
}

func (r RotamerRecord) ResidueKey() residue.Key { return r.Key }

// IsOutlier reports score <= 1%.
func (r RotamerRecord) IsOutlier() bool { return r.ScorePct <= RotamerOutlierScore }

// LabelledOutlier reports whether the analyzer itself labelled the rotamer an
// outlier. This is the predicate of the residue report's tally and may disagree
// with IsOutlier.
func (r RotamerRecord) LabelledOutlier() bool { return r.Evaluation == RotamerOutlierLabel }

// RamaEvaluation classifies a phi/psi pair.
type RamaEvaluation int

const (
	RamaUnknown RamaEvaluation = iota
	RamaFavored
	RamaAllowed
	RamaOutlier
)

// RamaCase is the Ramachandran distribution a residue is scored against.
type RamaCase int

const (
	RamaCaseUnknown RamaCase = iota
	RamaCaseGeneral
	RamaCaseGlycine
	RamaCaseProline
	RamaCasePreProline
)

// RamaRecord is one backbone dihedral evaluation.
type RamaRecord struct {
	Key        residue.Key
	Residue    residue.Residue
	ScorePct   float64
	Phi        float64
	Psi        float64
	Evaluation RamaEvaluation
	Case       RamaCase
	EvalLabel  string // as printed by the analyzer
	CaseLabel  string
}

func (r RamaRecord) ResidueKey() residue.Key { return r.Key }

// IsOutlier reports an OUTLIER evaluation.
func (r RamaRecord) IsOutlier() bool { return r.Evaluation == RamaOutlier }

// OmegaConformation classifies a peptide bond.
type OmegaConformation int

const (
	OmegaUnknown OmegaConformation = iota
	OmegaCis
	OmegaTrans
	OmegaTwisted
)

// OmegaClass distinguishes peptides preceding proline.
type OmegaClass int

const (
	OmegaClassUnknown OmegaClass = iota
	OmegaClassGeneral
	OmegaClassProline
)

// OmegaRecord is one peptide-bond evaluation.
type OmegaRecord struct {
	Key          residue.Key
	Residue      residue.Residue
	Omega        float64
	Conformation OmegaConformation
	Class        OmegaClass
	ConfLabel    string
	ClassLabel   string
}

func (r OmegaRecord) ResidueKey() residue.Key { return r.Key }

// IsOutlier reports twisted peptides and non-proline cis peptides.
func (r OmegaRecord) IsOutlier() bool {
	return r.Conformation == OmegaTwisted ||
		(r.Conformation == OmegaCis && r.Class == OmegaClassGeneral)
}

// GeometryKind selects bond lengths or bond angles from a geometry report.
type GeometryKind int

const (
	GeometryBond GeometryKind = iota
	GeometryAngle
)

func (k GeometryKind) String() string {
	if k == GeometryAngle {
		return "angle"
	}
	return "bond"
}

// GeometryRecord summarizes one residue's bond or angle deviations.
type GeometryRecord struct {
	Key          residue.Key
	Kind         GeometryKind
	OutlierCount int
	WorstMeasure string
	WorstValue   float64
	WorstSigma   float64
}

func (r GeometryRecord) ResidueKey() residue.Key { return r.Key }

// IsOutlier reports at least one deviating measure.
func (r GeometryRecord) IsOutlier() bool { return r.OutlierCount > 0 }

var (
	_ Verdict = ClashRecord{}
	_ Verdict = CbetaRecord{}
	_ Verdict = RotamerRecord{}
	_ Verdict = RamaRecord{}
	_ Verdict = OmegaRecord{}
	_ Verdict = GeometryRecord{}
)
