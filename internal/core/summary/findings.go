package summary

import (
	"github.com/sdezurik/MolProbity/internal/core/residue"
	"github.com/sdezurik/MolProbity/internal/core/validation"
)

// Findings indexes one model's parsed analyzer output by residue. A nil map
// means the analyzer was not run; a residue missing from a map has no finding.
type Findings struct {
	Clash   map[residue.Key]validation.ClashRecord
	Cbeta   validation.OutlierMap
	Rotamer map[residue.Key]validation.RotamerRecord
	Rama    map[residue.Key]validation.RamaRecord
	Omega   map[residue.Key]validation.OmegaRecord
	Bonds   map[residue.Key]validation.GeometryRecord
	Angles  map[residue.Key]validation.GeometryRecord
}

// IndexRecords keys recs by residue; later records replace earlier ones.
func IndexRecords[R validation.Verdict](recs []R) map[residue.Key]R {
	out := make(map[residue.Key]R, len(recs))
	for _, r := range recs {
		out[r.ResidueKey()] = r
	}
	return out
}

// Tally is a residue's outlier count under both counting rules.
type Tally struct {
	Combined int // Cβ, bond and angle together count at most once
	Separate int // Cβ, bond and angle each count
}

// Tally counts the criteria flagging key.
//
// Rotamers count by the analyzer's OUTLIER label, not by the score threshold
// FindRotamerOutliers applies.
func (f Findings) Tally(key residue.Key) Tally {
	var t Tally
	hit := func() {
		t.Combined++
		t.Separate++
	}

	if r, ok := f.Clash[key]; ok && r.IsOutlier() {
		hit()
	}
	if r, ok := f.Rotamer[key]; ok && r.LabelledOutlier() {
		hit()
	}
	if r, ok := f.Rama[key]; ok && r.IsOutlier() {
		hit()
	}
	if r, ok := f.Omega[key]; ok && r.IsOutlier() {
		hit()
	}

	cbeta := f.Cbeta.Has(key)
	bond := f.Bonds[key].IsOutlier()
	angle := f.Angles[key].IsOutlier()
	for _, flagged := range []bool{cbeta, bond, angle} {
		if flagged {
			t.Separate++
		}
	}
	if cbeta || bond || angle {
		t.Combined++
	}
	return t
}
