package validation

import (
	"strings"
	"testing"

	"github.com/sdezurik/MolProbity/internal/core/residue"
)

func TestParseCbetaDev(t *testing.T) {
	input := strings.Join([]string{
		"pdb:alt:res:chainID:resnum:dev:dihedralNABB:Occ:ALT:",
		"1abc.pdb: :ala:a:  10 :0.312:-172.11:1.00:",
		"1abc.pdb:b:ser:a:  11A:0.100:25.5:0.50:",
		"",
		"1abc.pdb: :gly:a:  12 :bogus:1:1:",
	}, "\n")

	recs := ParseCbetaDev(strings.NewReader(input))
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}

	first := recs[0]
	if first.Key != "A  10 ALA" {
		t.Errorf("key = %q, want %q", first.Key, "A  10 ALA")
	}
	if first.Deviation != 0.312 || first.Dihedral != -172.11 || first.Occupancy != 1 {
		t.Errorf("unexpected measures: %+v", first)
	}
	if first.HasAltConf() {
		t.Error("first record should not be an alternate")
	}

	if recs[1].Key != "A  11ASER" || !recs[1].HasAltConf() || recs[1].AltConf != "B" {
		t.Errorf("second record = %+v", recs[1])
	}

	// malformed numbers coerce to zero instead of dropping the row
	if recs[2].Key != "A  12 GLY" || recs[2].Deviation != 0 {
		t.Errorf("third record = %+v", recs[2])
	}
}

func TestParseClashlist_EndToEnd(t *testing.T) {
	input := ":atom1:A   5 ALA :A  10 GLY :0.55:...\nsum::1.23:0.98\n"

	rep := ParseClashlist(strings.NewReader(input))
	if rep.ScoreAll != 1.23 {
		t.Errorf("ScoreAll = %v, want 1.23", rep.ScoreAll)
	}
	if rep.ScoreBlt40 != 0.98 {
		t.Errorf("ScoreBlt40 = %v, want 0.98", rep.ScoreBlt40)
	}

	outliers := FindClashOutliers(rep)
	for _, k := range []residue.Key{"A   5 ALA", "A  10 GLY"} {
		sev, ok := outliers.Get(k)
		if !ok {
			t.Fatalf("expected %q in outlier map", k)
		}
		if sev.Value != 0.55 {
			t.Errorf("%q = %v, want 0.55", k, sev.Value)
		}
	}
	if outliers.Len() != 2 {
		t.Errorf("Len() = %d, want 2", outliers.Len())
	}
}

func TestParseClashlist_KeepsWorstPerResidue(t *testing.T) {
	input := strings.Join([]string{
		":1->2:A   5 ALA  CB :A  10 GLY  CA :-0.45:",
		":1->2:A   5 ALA  O  :A  20 LYS  NZ :-0.80:",
		":1->2:A  10 GLY  N  :A  20 LYS  O  :-0.30:",
		"#sum2:45 atoms:12.5:8.25",
		"#sum3:trailer",
	}, "\n")

	rep := ParseClashlist(strings.NewReader(input))
	if rep.ScoreAll != 12.5 || rep.ScoreBlt40 != 8.25 {
		t.Errorf("scores = %v/%v, want 12.5/8.25", rep.ScoreAll, rep.ScoreBlt40)
	}

	byKey := rep.ByKey()
	ala := byKey["A   5 ALA"]
	if ala.MaxOverlap != 0.80 || ala.ContactPartner != "A  20 LYS" || ala.SrcAtom != "O" || ala.DstAtom != "NZ" {
		t.Errorf("ALA 5 record = %+v", ala)
	}

	gly := byKey["A  10 GLY"]
	if gly.MaxOverlap != 0.45 || gly.ContactPartner != "A   5 ALA" || gly.SrcAtom != "CA" || gly.DstAtom != "CB" {
		t.Errorf("GLY 10 record = %+v", gly)
	}

	lys := byKey["A  20 LYS"]
	if lys.MaxOverlap != 0.80 || lys.SrcAtom != "NZ" || lys.DstAtom != "O" {
		t.Errorf("LYS 20 record = %+v", lys)
	}

	// records keep first-appearance order
	want := []residue.Key{"A   5 ALA", "A  10 GLY", "A  20 LYS"}
	for i, k := range want {
		if rep.Records[i].Key != k {
			t.Errorf("Records[%d] = %q, want %q", i, rep.Records[i].Key, k)
		}
	}
}

func TestParseClashlist_Empty(t *testing.T) {
	rep := ParseClashlist(strings.NewReader(""))
	if len(rep.Records) != 0 || rep.ScoreAll != 0 {
		t.Errorf("expected empty report, got %+v", rep)
	}
}

func TestParseRotamer(t *testing.T) {
	input := strings.Join([]string{
		"residue:score%:chi1:chi2:chi3:chi4:evaluation:rotamer",
		"A  10 LEU:0.5:60.1:170.2:::OUTLIER:OUTLIER",
		"A  11 SER:45.2:-65.0::::Favored:m",
		"A  12 LYS:x:1:2:3:4:Allowed:mttt",
	}, "\n")

	recs := ParseRotamer(strings.NewReader(input))
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}

	leu := recs[0]
	if leu.Key != "A  10 LEU" || leu.Residue.SeqNum != 10 || leu.Residue.ResType != "LEU" {
		t.Errorf("LEU record = %+v", leu)
	}
	if !leu.Chi[0].Valid || leu.Chi[0].Value != 60.1 || !leu.Chi[1].Valid || leu.Chi[2].Valid || leu.Chi[3].Valid {
		t.Errorf("LEU chis = %+v", leu.Chi)
	}
	if !leu.IsOutlier() || !leu.LabelledOutlier() {
		t.Error("LEU should be an outlier by score and by label")
	}

	if recs[1].IsOutlier() || recs[1].LabelledOutlier() || recs[1].Rotamer != "m" {
		t.Errorf("SER record = %+v", recs[1])
	}

	// non-numeric score becomes 0, which the score predicate flags
	if recs[2].ScorePct != 0 || !recs[2].IsOutlier() || recs[2].LabelledOutlier() {
		t.Errorf("LYS record = %+v", recs[2])
	}
}

func TestParseRamachandran(t *testing.T) {
	input := strings.Join([]string{
		"residue:score%:phi:psi:evaluation:type",
		"A   2 GLY:98.1:-80.0:170.0:Favored:Glycine",
		"A   3 ALA:0.01:60.0:-120.0:OUTLIER:General case",
		"A   4 PRO:12.0:-60.0:140.0:Allowed:Proline",
		"A   5 SER:30.0:-60.0:140.0:Allowed:Pre-proline",
	}, "\n")

	recs := ParseRamachandran(strings.NewReader(input))
	if len(recs) != 4 {
		t.Fatalf("expected 4 records, got %d", len(recs))
	}

	tests := []struct {
		eval RamaEvaluation
		cse  RamaCase
	}{
		{RamaFavored, RamaCaseGlycine},
		{RamaOutlier, RamaCaseGeneral},
		{RamaAllowed, RamaCaseProline},
		{RamaAllowed, RamaCasePreProline},
	}
	for i, tt := range tests {
		if recs[i].Evaluation != tt.eval || recs[i].Case != tt.cse {
			t.Errorf("record %d = %+v, want eval %v case %v", i, recs[i], tt.eval, tt.cse)
		}
	}
	if recs[1].EvalLabel != "OUTLIER" || recs[1].CaseLabel != "General case" {
		t.Errorf("labels not kept: %+v", recs[1])
	}
	if recs[1].Phi != 60 || recs[1].Psi != -120 {
		t.Errorf("angles = %v/%v", recs[1].Phi, recs[1].Psi)
	}
}

func TestParseOmega(t *testing.T) {
	input := strings.Join([]string{
		"residue:omega:conformation:type",
		"A   7 PRO:-3.5:Cis:Proline",
		"A   8 ALA:2.0:Cis:General",
		"A   9 GLY:150.0:Twisted:General",
		"A  10 SER:179.0:Trans:General",
	}, "\n")

	recs := ParseOmega(strings.NewReader(input))
	if len(recs) != 4 {
		t.Fatalf("expected 4 records, got %d", len(recs))
	}
	if recs[0].Conformation != OmegaCis || recs[0].Class != OmegaClassProline || recs[0].Omega != -3.5 {
		t.Errorf("PRO record = %+v", recs[0])
	}
	if recs[2].Conformation != OmegaTwisted || recs[3].Conformation != OmegaTrans {
		t.Errorf("conformations = %v, %v", recs[2].Conformation, recs[3].Conformation)
	}
}

func TestParseGeometry(t *testing.T) {
	input := strings.Join([]string{
		"#file:chain:resnum:ins:alt:resname:atoms:value:sigma",
		"m.pdb:A:  10: : :ALA:CA--CB:1.62:4.5",
		"m.pdb:A:  10: : :ALA:N--CA:1.40:-5.2",
		"m.pdb:A:  10: : :ALA:N-CA-C:120.0:-1.0",
		"m.pdb:A:  11: : :GLY:C--O:1.23:0.3",
		"m.pdb:A:  11: : :GLY:CA-C-O:128.0:6.1",
	}, "\n")

	bonds := ParseGeometry(strings.NewReader(input), GeometryBond)
	if len(bonds) != 2 {
		t.Fatalf("expected 2 bond records, got %d", len(bonds))
	}
	ala := bonds[0]
	if ala.Key != "A  10 ALA" || ala.OutlierCount != 2 || ala.WorstMeasure != "N--CA" || ala.WorstSigma != -5.2 || ala.WorstValue != 1.40 {
		t.Errorf("ALA bonds = %+v", ala)
	}
	if bonds[1].OutlierCount != 0 || bonds[1].IsOutlier() {
		t.Errorf("GLY bonds = %+v", bonds[1])
	}

	angles := ParseGeometry(strings.NewReader(input), GeometryAngle)
	if len(angles) != 2 {
		t.Fatalf("expected 2 angle records, got %d", len(angles))
	}
	if angles[1].Key != "A  11 GLY" || angles[1].OutlierCount != 1 || angles[1].WorstMeasure != "CA-C-O" {
		t.Errorf("GLY angles = %+v", angles[1])
	}
	if angles[0].Kind != GeometryAngle || angles[0].IsOutlier() {
		t.Errorf("ALA angles = %+v", angles[0])
	}
}

func TestParsers_HeaderOnly(t *testing.T) {
	header := "only a header\n"
	if n := len(ParseRotamer(strings.NewReader(header))); n != 0 {
		t.Errorf("rotamer records = %d", n)
	}
	if n := len(ParseRamachandran(strings.NewReader(header))); n != 0 {
		t.Errorf("rama records = %d", n)
	}
	if n := len(ParseOmega(strings.NewReader(header))); n != 0 {
		t.Errorf("omega records = %d", n)
	}
	if n := len(ParseGeometry(strings.NewReader(header), GeometryBond)); n != 0 {
		t.Errorf("geometry records = %d", n)
	}
	if n := len(ParseCbetaDev(strings.NewReader(""))); n != 0 {
		t.Errorf("cbeta records = %d", n)
	}
}

func TestParseRamaEvaluation_ExactLabels(t *testing.T) {
	tests := []struct {
		label string
		want  RamaEvaluation
	}{
		{"Favored", RamaFavored},
		{"Allowed", RamaAllowed},
		{"OUTLIER", RamaOutlier},
		{" OUTLIER ", RamaOutlier},
		{"outlier", RamaUnknown},
		{"Outlier", RamaUnknown},
		{"favored", RamaUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := ParseRamaEvaluation(tt.label); got != tt.want {
				t.Errorf("ParseRamaEvaluation(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}

	rot := RotamerRecord{Evaluation: "outlier"}
	if rot.LabelledOutlier() {
		t.Error("lower-case rotamer label should not count as labelled outlier")
	}
}
