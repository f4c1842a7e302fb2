package summary

import (
	"slices"
	"strconv"
	"strings"

	"github.com/sdezurik/MolProbity/internal/core/numeric"
	"github.com/sdezurik/MolProbity/internal/core/residue"
	"github.com/sdezurik/MolProbity/internal/core/structure"
	"github.com/sdezurik/MolProbity/internal/core/validation"
)

// Model is what the report needs to know about one coordinate file besides
// its findings.
type Model struct {
	FileName string
	HType    string // hydrogen bond length, "ecloud" or "nuclear"
	Residues []residue.Key
	BFactors structure.BFactors
}

// Rows renders one line per residue of m in residue.Compare order, without
// line terminators. With outliersOnly, residues whose combined tally is zero
// are left out; tallies are computed whether or not their columns are shown.
func Rows(m Model, f Findings, cols Columns, outliersOnly bool) []string {
	keys := slices.Clone(m.Residues)
	slices.SortFunc(keys, residue.Compare)
	keys = slices.Compact(keys)

	var out []string
	for _, k := range keys {
		t := f.Tally(k)
		if outliersOnly && t.Combined == 0 {
			continue
		}
		out = append(out, Row(m, k, f, cols, t))
	}
	return out
}

// Row renders the fields of one residue joined by commas. Fields are not
// quoted; residue keys keep their embedded blanks.
func Row(m Model, key residue.Key, f Findings, cols Columns, t Tally) string {
	fields := []string{m.FileName, m.HType, string(key), bfactor(m.BFactors.Residue, key), bfactor(m.BFactors.Mainchain, key)}

	if cols.Clash {
		if r, ok := f.Clash[key]; ok {
			fields = append(fields, numeric.Format(r.MaxOverlap), r.SrcAtom, r.DstAtom, string(r.ContactPartner))
		} else {
			fields = append(fields, blanks(len(clashColumns))...)
		}
	}
	if cols.Cbeta {
		if sev, ok := f.Cbeta.Get(key); ok {
			fields = append(fields, numeric.Format(sev.Value))
		} else {
			fields = append(fields, blanks(len(cbetaColumns))...)
		}
	}
	if cols.Rotamer {
		if r, ok := f.Rotamer[key]; ok {
			fields = append(fields, numeric.Format(r.ScorePct), r.Evaluation, r.Rotamer)
		} else {
			fields = append(fields, blanks(len(rotamerColumns))...)
		}
	}
	if cols.Rama {
		if r, ok := f.Rama[key]; ok {
			fields = append(fields, numeric.Format(r.ScorePct), r.EvalLabel, r.CaseLabel)
		} else {
			fields = append(fields, blanks(len(ramaColumns))...)
		}
	}
	if cols.Omega {
		if r, ok := f.Omega[key]; ok {
			fields = append(fields, numeric.Format(r.Omega), r.ConfLabel, r.ClassLabel)
		} else {
			fields = append(fields, blanks(len(omegaColumns))...)
		}
	}
	if cols.Geometry {
		fields = append(fields, geometryFields(f.Bonds, key)...)
		fields = append(fields, geometryFields(f.Angles, key)...)
	}
	if cols.Counts {
		fields = append(fields, strconv.Itoa(t.Combined), strconv.Itoa(t.Separate))
	}
	return strings.Join(fields, ",")
}

func geometryFields(recs map[residue.Key]validation.GeometryRecord, key residue.Key) []string {
	r, ok := recs[key]
	if !ok {
		return blanks(len(geometryColumns) / 2)
	}
	return []string{strconv.Itoa(r.OutlierCount), r.WorstMeasure, numeric.Format(r.WorstValue), numeric.Format(r.WorstSigma)}
}

func bfactor(m map[residue.Key]float64, key residue.Key) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	return numeric.Format(v)
}

func blanks(n int) []string {
	return make([]string, n)
}
