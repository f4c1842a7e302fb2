// Package structure reads the parts of a PDB coordinate file the residue
// report needs: the residue list, B-factors, alternate conformers and centers.
// This is part of the Functional Core - readers come from the caller.
package structure

import (
	"bufio"
	"io"
	"strings"

	"github.com/sdezurik/MolProbity/internal/core/fixedwidth"
	"github.com/sdezurik/MolProbity/internal/core/numeric"
	"github.com/sdezurik/MolProbity/internal/core/residue"
)

// Field names of the ATOM/HETATM record layout.
const (
	FieldRecord    = "record"
	FieldAtomName  = "atom_name"
	FieldAltLoc    = "alt_loc"
	FieldX         = "x"
	FieldY         = "y"
	FieldZ         = "z"
	FieldOccupancy = "occupancy"
	FieldBFactor   = "b_factor"
	FieldElement   = "element"
)

// AtomLayout locates the columns of an ATOM/HETATM record.
var AtomLayout = fixedwidth.Layout{
	{Name: FieldRecord, Offset: 0, Length: 6},
	{Name: FieldAtomName, Offset: 12, Length: 4},
	{Name: FieldAltLoc, Offset: 16, Length: 1},
	{Name: FieldX, Offset: 30, Length: 8},
	{Name: FieldY, Offset: 38, Length: 8},
	{Name: FieldZ, Offset: 46, Length: 8},
	{Name: FieldOccupancy, Offset: 54, Length: 6},
	{Name: FieldBFactor, Offset: 60, Length: 6},
	{Name: FieldElement, Offset: 76, Length: 2},
}

// Atom is one ATOM or HETATM record.
type Atom struct {
	Residue   residue.Key
	Name      string // 4 columns, untrimmed (" CA ")
	AltLoc    string
	X, Y, Z   float64
	Occupancy float64
	BFactor   float64
	Element   string
}

// IsHydrogen reports whether the atom is a hydrogen (or deuterium), going by
// the element column when present and the atom name otherwise.
func (a Atom) IsHydrogen() bool {
	if a.Element != "" {
		return a.Element == "H" || a.Element == "D"
	}
	name := strings.TrimLeft(a.Name, "0123456789 ")
	return strings.HasPrefix(name, "H") || strings.HasPrefix(name, "D")
}

// IsAtomRecord reports whether line is an ATOM or HETATM record.
func IsAtomRecord(line string) bool {
	return strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM")
}

// ParseAtom decodes one ATOM/HETATM record. Short or malformed lines decode
// with empty or zero fields.
func ParseAtom(line string) Atom {
	f := AtomLayout.Decode(line)
	return Atom{
		Residue:   residue.FromPDBLine(line),
		Name:      f[FieldAtomName],
		AltLoc:    strings.TrimSpace(f[FieldAltLoc]),
		X:         numeric.Parse(f[FieldX]),
		Y:         numeric.Parse(f[FieldY]),
		Z:         numeric.Parse(f[FieldZ]),
		Occupancy: numeric.Parse(f[FieldOccupancy]),
		BFactor:   numeric.Parse(f[FieldBFactor]),
		Element:   strings.ToUpper(strings.TrimSpace(f[FieldElement])),
	}
}

// ReadAtoms returns every ATOM/HETATM record of r in file order.
func ReadAtoms(r io.Reader) []Atom {
	var atoms []Atom
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if IsAtomRecord(line) {
			atoms = append(atoms, ParseAtom(line))
		}
	}
	return atoms
}
