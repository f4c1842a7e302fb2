package structure

import (
	"io"
	"math"

	"github.com/sdezurik/MolProbity/internal/core/residue"
)

// backbone atoms used for the main-chain B-factor column
var backboneAtoms = map[string]bool{" N  ": true, " CA ": true, " C  ": true, " O  ": true}

// main-chain atoms for alternate-conformer classification; includes the
// backbone hydrogens
var mainchainAtoms = map[string]bool{
	" N  ": true, " CA ": true, " C  ": true, " O  ": true,
	" H  ": true, " HA ": true, "1HA ": true, "2HA ": true,
	" HA2": true, " HA3": true,
}

// ListResidues returns the distinct residues of r in file order.
func ListResidues(r io.Reader) []residue.Key {
	seen := make(map[residue.Key]bool)
	var out []residue.Key
	for _, a := range ReadAtoms(r) {
		if !seen[a.Residue] {
			seen[a.Residue] = true
			out = append(out, a.Residue)
		}
	}
	return out
}

// BFactors holds per-residue maximum temperature factors.
type BFactors struct {
	Residue   map[residue.Key]float64 // over all atoms
	Mainchain map[residue.Key]float64 // over N, CA, C, O
}

// ResidueBFactors returns the highest B-factor of each residue and of its backbone.
// Residues without backbone atoms are absent from Mainchain.
func ResidueBFactors(r io.Reader) BFactors {
	out := BFactors{
		Residue:   make(map[residue.Key]float64),
		Mainchain: make(map[residue.Key]float64),
	}
	for _, a := range ReadAtoms(r) {
		keepMax(out.Residue, a.Residue, a.BFactor)
		if backboneAtoms[a.Name] {
			keepMax(out.Mainchain, a.Residue, a.BFactor)
		}
	}
	return out
}

func keepMax(m map[residue.Key]float64, k residue.Key, v float64) {
	if prev, ok := m[k]; !ok || v > prev {
		m[k] = v
	}
}

// AltConfs records which residues carry alternate conformers, and where.
type AltConfs struct {
	All       map[residue.Key]bool
	Mainchain map[residue.Key]bool
	Sidechain map[residue.Key]bool
}

// FindAltConfs scans r for atoms with an alternate location indicator.
func FindAltConfs(r io.Reader) AltConfs {
	out := AltConfs{
		All:       make(map[residue.Key]bool),
		Mainchain: make(map[residue.Key]bool),
		Sidechain: make(map[residue.Key]bool),
	}
	for _, a := range ReadAtoms(r) {
		if a.AltLoc == "" {
			continue
		}
		out.All[a.Residue] = true
		if mainchainAtoms[a.Name] {
			out.Mainchain[a.Residue] = true
		} else {
			out.Sidechain[a.Residue] = true
		}
	}
	return out
}

// Point is a position in model space, in Å.
type Point struct {
	X, Y, Z float64
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	dx, dy, dz := p.X-q.X, p.Y-q.Y, p.Z-q.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// ResidueCenters returns the unweighted mean atom position of each residue.
// Multiple models are not told apart; split ensembles first.
func ResidueCenters(r io.Reader) map[residue.Key]Point {
	sums := make(map[residue.Key]Point)
	counts := make(map[residue.Key]int)
	for _, a := range ReadAtoms(r) {
		s := sums[a.Residue]
		s.X += a.X
		s.Y += a.Y
		s.Z += a.Z
		sums[a.Residue] = s
		counts[a.Residue]++
	}
	out := make(map[residue.Key]Point, len(sums))
	for k, s := range sums {
		n := float64(counts[k])
		out[k] = Point{X: s.X / n, Y: s.Y / n, Z: s.Z / n}
	}
	return out
}

// HasHydrogens reports whether any atom of r is a hydrogen.
func HasHydrogens(r io.Reader) bool {
	for _, a := range ReadAtoms(r) {
		if a.IsHydrogen() {
			return true
		}
	}
	return false
}
