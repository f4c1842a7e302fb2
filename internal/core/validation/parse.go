package validation

import (
	"bufio"
	"io"
	"math"
	"strings"

	"github.com/sdezurik/MolProbity/internal/core/numeric"
	"github.com/sdezurik/MolProbity/internal/core/residue"
)

// cbetaHeaderPrefix starts the column header line of the Cβ deviation dump.
const cbetaHeaderPrefix = "pdb:alt:res:"

// readLines returns the lines of r without line terminators.
// A read error ends the input early; what was read so far is kept.
func readLines(r io.Reader) []string {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	return lines
}

// dataLines drops the header line and blank lines of a column-oriented report.
func dataLines(r io.Reader) []string {
	lines := readLines(r)
	if len(lines) > 0 {
		lines = lines[1:]
	}
	out := lines[:0]
	for _, l := range lines {
		l = strings.TrimRight(l, " \t")
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}

// field returns fields[i], or "" past the end.
func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}

func nullAngle(s string) NullAngle {
	if numeric.IsBlank(s) {
		return NullAngle{}
	}
	return NullAngle{Value: numeric.Parse(s), Valid: true}
}

// ParseCbetaDev reads a Cβ deviation dump:
//
//	pdb:alt:res:chain:seqins:dev:dihedral:occ
//
// Chain, residue type and alternate flags are upper-cased; the analyzer
// prints them in lower case.
func ParseCbetaDev(r io.Reader) []CbetaRecord {
	var out []CbetaRecord
	for _, line := range readLines(r) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, cbetaHeaderPrefix) {
			continue
		}
		f := strings.Split(line, ":")
		seqIns := field(f, 4)
		var seq, ins string
		if seqIns != "" {
			seq, ins = seqIns[:len(seqIns)-1], seqIns[len(seqIns)-1:]
		}
		res := residue.Residue{
			Chain:   strings.ToUpper(field(f, 3)),
			SeqNum:  numeric.ParseInt(seq),
			InsCode: ins,
			ResType: strings.ToUpper(field(f, 2)),
		}
		out = append(out, CbetaRecord{
			Key:       res.Key(),
			Residue:   res,
			AltConf:   strings.ToUpper(field(f, 1)),
			Deviation: numeric.Parse(field(f, 5)),
			Dihedral:  numeric.Parse(field(f, 6)),
			Occupancy: numeric.Parse(field(f, 7)),
		})
	}
	return out
}

// ParseClashlist reads clash-tool output. Lines starting with ':' are clashes:
//
//	:info:res1+atom1:res2+atom2:overlap:...
//
// The summary "...:scoreAll:scoreBlt40" is the first non-clash line among the
// last two non-blank lines. Each residue keeps only its largest overlap.
func ParseClashlist(r io.Reader) ClashReport {
	lines := readLines(r)

	var rep ClashReport
	var tail []string
	for i := len(lines) - 1; i >= 0 && len(tail) < 2; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			tail = append([]string{lines[i]}, tail...)
		}
	}
	for _, l := range tail {
		if !strings.HasPrefix(l, ":") {
			scores := strings.Split(strings.TrimSpace(l), ":")
			rep.ScoreAll = numeric.Parse(field(scores, 2))
			rep.ScoreBlt40 = numeric.Parse(field(scores, 3))
			break
		}
	}

	index := make(map[residue.Key]int)
	keep := func(key, partner residue.Key, src, dst string, dist float64) {
		i, seen := index[key]
		if seen && rep.Records[i].MaxOverlap >= dist {
			return
		}
		rec := ClashRecord{Key: key, MaxOverlap: dist, ContactPartner: partner, SrcAtom: src, DstAtom: dst}
		if seen {
			rep.Records[i] = rec
			return
		}
		index[key] = len(rep.Records)
		rep.Records = append(rep.Records, rec)
	}

	for _, l := range lines {
		if !strings.HasPrefix(l, ":") {
			continue
		}
		f := strings.Split(l, ":")
		res1, atom1 := splitResidueAtom(field(f, 2))
		res2, atom2 := splitResidueAtom(field(f, 3))
		dist := math.Abs(numeric.Parse(field(f, 4)))
		keep(res1, res2, atom1, atom2, dist)
		keep(res2, res1, atom2, atom1, dist)
	}
	return rep
}

// splitResidueAtom splits "cnnnnittt atom" into the residue key and atom name.
func splitResidueAtom(s string) (residue.Key, string) {
	if len(s) <= residue.KeyWidth {
		return residue.Key(s), ""
	}
	return residue.Key(s[:residue.KeyWidth]), strings.TrimSpace(s[residue.KeyWidth:])
}

// ParseRotamer reads rotamer output after its header line:
//
//	cnnnnittt:score:chi1:chi2:chi3:chi4:eval:rotamer
func ParseRotamer(r io.Reader) []RotamerRecord {
	var out []RotamerRecord
	for _, line := range dataLines(r) {
		f := strings.Split(line, ":")
		key := residue.Key(field(f, 0))
		out = append(out, RotamerRecord{
			Key:      key,
			Residue:  key.Decode(),
			ScorePct: numeric.Parse(field(f, 1)),
			Chi: [4]NullAngle{
				nullAngle(field(f, 2)),
				nullAngle(field(f, 3)),
				nullAngle(field(f, 4)),
				nullAngle(field(f, 5)),
			},
			Evaluation: field(f, 6),
			Rotamer:    field(f, 7),
		})
	}
	return out
}

// ParseRamachandran reads Ramachandran output after its header line:
//
//	cnnnnittt:score:phi:psi:eval:type
func ParseRamachandran(r io.Reader) []RamaRecord {
	var out []RamaRecord
	for _, line := range dataLines(r) {
		f := strings.Split(line, ":")
		key := residue.Key(field(f, 0))
		out = append(out, RamaRecord{
			Key:        key,
			Residue:    key.Decode(),
			ScorePct:   numeric.Parse(field(f, 1)),
			Phi:        numeric.Parse(field(f, 2)),
			Psi:        numeric.Parse(field(f, 3)),
			Evaluation: ParseRamaEvaluation(field(f, 4)),
			Case:       ParseRamaCase(field(f, 5)),
			EvalLabel:  field(f, 4),
			CaseLabel:  field(f, 5),
		})
	}
	return out
}

// ParseOmega reads peptide-bond output after its header line:
//
//	cnnnnittt:omega:conformation:type
func ParseOmega(r io.Reader) []OmegaRecord {
	var out []OmegaRecord
	for _, line := range dataLines(r) {
		f := strings.Split(line, ":")
		key := residue.Key(field(f, 0))
		out = append(out, OmegaRecord{
			Key:          key,
			Residue:      key.Decode(),
			Omega:        numeric.Parse(field(f, 1)),
			Conformation: ParseOmegaConformation(field(f, 2)),
			Class:        ParseOmegaClass(field(f, 3)),
			ConfLabel:    field(f, 2),
			ClassLabel:   field(f, 3),
		})
	}
	return out
}

// ParseGeometry reads a bond/angle geometry report after its header line and
// folds it to one record per residue for the requested kind:
//
//	file:chain:seq:ins:alt:res:measure:value:sigma
//
// Bond measures name two atoms joined by "--" (CA--CB); angle measures do
// not (N-CA-C). Measures with |sigma| >= 4 count as outliers; the measure
// with the largest |sigma| is the residue's worst.
func ParseGeometry(r io.Reader, kind GeometryKind) []GeometryRecord {
	var out []GeometryRecord
	index := make(map[residue.Key]int)
	for _, line := range dataLines(r) {
		f := strings.Split(line, ":")
		measure := strings.TrimSpace(field(f, 6))
		isBond := strings.Contains(measure, "--")
		if isBond != (kind == GeometryBond) {
			continue
		}
		key := residue.Encode(field(f, 1), numeric.ParseInt(field(f, 2)), field(f, 3), strings.TrimSpace(field(f, 5)))
		value := numeric.Parse(field(f, 7))
		sigma := numeric.Parse(field(f, 8))

		i, seen := index[key]
		if !seen {
			i = len(out)
			index[key] = i
			out = append(out, GeometryRecord{Key: key, Kind: kind, WorstMeasure: measure, WorstValue: value, WorstSigma: sigma})
		} else if math.Abs(sigma) > math.Abs(out[i].WorstSigma) {
			out[i].WorstMeasure = measure
			out[i].WorstValue = value
			out[i].WorstSigma = sigma
		}
		if math.Abs(sigma) >= GeometryOutlierSigma {
			out[i].OutlierCount++
		}
	}
	return out
}
