package pipeline

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sdezurik/MolProbity/internal/core/effects"
	"github.com/sdezurik/MolProbity/internal/core/residue"
	"github.com/sdezurik/MolProbity/internal/core/structure"
	"github.com/sdezurik/MolProbity/internal/core/validation"
)

// PlaceholderShow receives the prekin -show selection of a kinemage group.
const PlaceholderShow = "{show}"

// MaxLinkDistance is the largest gap, in Å, between residue centers that an
// outlier run still draws as one connected line.
const MaxLinkDistance = 5.0

// kinGroup is one prekin pass of the multi-criterion kinemage.
type kinGroup struct {
	header string
	show   string
}

var multiKinGroups = []kinGroup{
	{"@kinemage 1\n@group {macromol.} dominant off\n", "mc(white),sc(brown),hy(gray),ht(sky)"},
	{"@group {waters} dominant off\n", "wa(bluetint)"},
	{"@group {Ca trace} dominant\n", "ca(gray)"},
}

// marker styles, in drawing order
var kinMarkers = []struct {
	criterion validation.Criterion
	name      string
	color     string
}{
	{validation.CriterionRama, "Rama outliers", "green"},
	{validation.CriterionRotamer, "rotamer outliers", "gold"},
	{validation.CriterionCbeta, "CB dev outliers", "magenta"},
}

// multiKinEffects builds the multi-criterion kinemage: the file is started
// over, each group header is appended before the prekin pass that fills it,
// and the alternate-conformer and outlier markers close the file.
// A template without {show} gets a single pass.
func multiKinEffects(in StageInput, template []string, output string) []effects.Effect {
	effs := []effects.Effect{
		effects.FileEffect{Operation: effects.FileRemove, Path: output},
	}

	groups := multiKinGroups
	if !mentions(template, PlaceholderShow) {
		groups = []kinGroup{{header: "@kinemage 1\n"}}
	}
	for _, g := range groups {
		exec := effects.ExecEffect{
			Tool: string(StageMultiKin),
			Argv: Resolve(template, map[string]string{
				PlaceholderInput:   in.PDB,
				PlaceholderOutput:  output,
				PlaceholderBLength: in.HBondLength,
				PlaceholderLib:     in.LibDir,
				PlaceholderShow:    g.show,
			}),
			Dir: in.Dir,
		}
		if !mentions(template, PlaceholderOutput) {
			exec.StdoutPath = output
			exec.Append = true
		}
		effs = append(effs, effects.CompositeEffect{Effects: []effects.Effect{
			effects.FileEffect{Operation: effects.FileAppend, Path: output, Content: []byte(g.header), Mode: 0644},
			exec,
		}})
	}

	return append(effs, effects.FileEffect{
		Operation: effects.FileAppend,
		Path:      output,
		Content:   MarkerKinemage(in.AltConfs, in.Centers, in.Outliers),
		Mode:      0644,
	})
}

// MarkerKinemage renders kinemage groups marking residues with alternate
// conformers and the outliers of each drawn criterion. Residues without a
// known center are left out. Outliers are drawn as balls; consecutive outliers
// on a chain are also joined by a line unless their centers lie further
// apart than MaxLinkDistance.
func MarkerKinemage(alts structure.AltConfs, centers map[residue.Key]structure.Point, outliers map[validation.Criterion]validation.OutlierMap) []byte {
	var b strings.Builder

	if len(alts.All) > 0 {
		b.WriteString("@group {alt confs} dominant off\n")
		writeBalls(&b, "mc alts", "yellow", setKeys(alts.Mainchain), centers)
		writeBalls(&b, "sc alts", "cyan", setKeys(alts.Sidechain), centers)
	}

	for _, m := range kinMarkers {
		keys := slices.Clone(outliers[m.criterion].Keys())
		if len(keys) == 0 {
			continue
		}
		slices.SortFunc(keys, residue.Compare)

		fmt.Fprintf(&b, "@group {%s} dominant\n", m.name)
		writeBalls(&b, m.name, m.color, keys, centers)

		byChain := residue.RunsByChain(residue.GroupRuns(keys))
		chains := make([]string, 0, len(byChain))
		for c := range byChain {
			chains = append(chains, c)
		}
		slices.Sort(chains)
		for _, c := range chains {
			for _, run := range byChain[c] {
				writeRunLine(&b, m.name, m.color, run, centers)
			}
		}
	}
	return []byte(b.String())
}

func writeBalls(b *strings.Builder, name, color string, keys []residue.Key, centers map[residue.Key]structure.Point) {
	header := false
	for _, k := range keys {
		p, ok := centers[k]
		if !ok {
			continue
		}
		if !header {
			fmt.Fprintf(b, "@balllist {%s} color= %s radius= 0.3\n", name, color)
			header = true
		}
		fmt.Fprintf(b, "{%s} %.3f %.3f %.3f\n", k, p.X, p.Y, p.Z)
	}
}

// writeRunLine draws run as a polyline; a gap wider than MaxLinkDistance
// starts a new line. Runs of a single residue draw nothing.
func writeRunLine(b *strings.Builder, name, color string, run []residue.Key, centers map[residue.Key]structure.Point) {
	var pts []residue.Key
	for _, k := range run {
		if _, ok := centers[k]; ok {
			pts = append(pts, k)
		}
	}
	if len(pts) < 2 {
		return
	}

	fmt.Fprintf(b, "@vectorlist {%s} color= %s width= 4\n", name, color)
	for i, k := range pts {
		p := centers[k]
		mark := ""
		if i == 0 || p.Distance(centers[pts[i-1]]) > MaxLinkDistance {
			mark = "P"
		}
		fmt.Fprintf(b, "{%s}%s %.3f %.3f %.3f\n", k, mark, p.X, p.Y, p.Z)
	}
}

func setKeys(set map[residue.Key]bool) []residue.Key {
	keys := make([]residue.Key, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, residue.Compare)
	return keys
}
