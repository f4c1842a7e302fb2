// Package summary renders per-residue validation results as CSV rows and
// merges outlier maps into the multi-criterion chart.
// This is part of the Functional Core - no I/O, only pure functions.
package summary

import "strings"

// Column groups, in report order.
var (
	identityColumns = []string{"#file_name", "x-H_type", "residue", "res_high_B", "mc_high_B"}
	clashColumns    = []string{"worst_clash", "src_atom", "dst_atom", "dst_residue"}
	cbetaColumns    = []string{"CB_dev"}
	rotamerColumns  = []string{"rotamer_score", "rotamer_eval", "rotamer"}
	ramaColumns     = []string{"rama_score", "rama_eval", "rama_type"}
	omegaColumns    = []string{"omega", "omega_eval", "omega_type"}
	geometryColumns = []string{
		"num_length_out", "worst_length", "worst_length_value", "worst_length_sigma",
		"num_angle_out", "worst_angle", "worst_angle_value", "worst_angle_sigma",
	}
	tallyColumns = []string{"outlier_count", "outlier_count_sep_geom"}
)

// Columns selects the column groups of a residue report.
type Columns struct {
	Clash    bool
	Cbeta    bool
	Rotamer  bool
	Rama     bool
	Omega    bool
	Geometry bool
	Counts   bool
}

// AllColumns enables every group.
func AllColumns() Columns {
	return Columns{Clash: true, Cbeta: true, Rotamer: true, Rama: true, Omega: true, Geometry: true, Counts: true}
}

// Names returns the header column names for the enabled groups.
func (c Columns) Names() []string {
	names := append([]string(nil), identityColumns...)
	if c.Clash {
		names = append(names, clashColumns...)
	}
	if c.Cbeta {
		names = append(names, cbetaColumns...)
	}
	if c.Rotamer {
		names = append(names, rotamerColumns...)
	}
	if c.Rama {
		names = append(names, ramaColumns...)
	}
	if c.Omega {
		names = append(names, omegaColumns...)
	}
	if c.Geometry {
		names = append(names, geometryColumns...)
	}
	if c.Counts {
		names = append(names, tallyColumns...)
	}
	return names
}

// Header returns the header line, without a line terminator.
func (c Columns) Header() string {
	return strings.Join(c.Names(), ",")
}
