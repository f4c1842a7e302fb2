package validation

// Criterion names one validation criterion. The names double as storage keys.
type Criterion string

const (
	CriterionCbeta   Criterion = "cbeta"
	CriterionClash   Criterion = "clash"
	CriterionRotamer Criterion = "rotamer"
	CriterionRama    Criterion = "rama"
	CriterionOmega   Criterion = "omega"
	CriterionBond    Criterion = "bond"
	CriterionAngle   Criterion = "angle"
)

// Criteria lists every criterion in report order.
var Criteria = []Criterion{
	CriterionClash, CriterionCbeta, CriterionRotamer, CriterionRama,
	CriterionOmega, CriterionBond, CriterionAngle,
}

// classify keeps the outlier records of recs, keyed by residue.
func classify[R Verdict](recs []R, severity func(R) Severity) OutlierMap {
	b := NewOutlierMapBuilder()
	for _, r := range recs {
		if r.IsOutlier() {
			b.Set(r.ResidueKey(), severity(r))
		}
	}
	return b.Build()
}

// FindCbetaOutliers maps residues with a Cβ deviation >= 0.25 Å to their
// deviation. Alternate conformers of one residue keep the largest deviation.
func FindCbetaOutliers(recs []CbetaRecord) OutlierMap {
	b := NewOutlierMapBuilder()
	for _, r := range recs {
		if r.IsOutlier() {
			b.SetMax(r.Key, Severity{Value: r.Deviation})
		}
	}
	return b.Build()
}

// FindClashOutliers maps residues whose worst overlap is >= 0.40 Å to that overlap.
func FindClashOutliers(rep ClashReport) OutlierMap {
	return classify(rep.Records, func(r ClashRecord) Severity {
		return Severity{Value: r.MaxOverlap}
	})
}

// FindRotamerOutliers maps residues scoring <= 1% to their score.
func FindRotamerOutliers(recs []RotamerRecord) OutlierMap {
	return classify(recs, func(r RotamerRecord) Severity {
		return Severity{Value: r.ScorePct}
	})
}

// FindRamaOutliers maps residues evaluated OUTLIER to that label.
func FindRamaOutliers(recs []RamaRecord) OutlierMap {
	return classify(recs, func(r RamaRecord) Severity {
		return Severity{Value: r.ScorePct, Label: RamachandranOutlierTag}
	})
}

// FindOmegaOutliers maps twisted and non-proline cis peptides to their conformation.
func FindOmegaOutliers(recs []OmegaRecord) OutlierMap {
	return classify(recs, func(r OmegaRecord) Severity {
		return Severity{Value: r.Omega, Label: r.Conformation.String()}
	})
}

// FindGeometryOutliers maps residues with at least one deviating bond or
// angle to their outlier count.
func FindGeometryOutliers(recs []GeometryRecord) OutlierMap {
	return classify(recs, func(r GeometryRecord) Severity {
		return Severity{Value: float64(r.OutlierCount)}
	})
}
