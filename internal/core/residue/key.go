// Package residue contains the canonical residue identity used by every validation criterion.
// This is part of the Functional Core - no I/O, only pure functions.
//
// A residue (or one alternate conformer of it) is identified by a packed 9-character key:
//
//	c nnnn i ttt
//	| |    | +-- residue type, left justified, space padded (ALA, LYS, "  A")
//	| |    +---- insertion code, space for none
//	| +--------- sequence number, right justified, space padded
//	+----------- chain ID, space for none
package residue

import (
	"fmt"
	"strings"

	"github.com/sdezurik/MolProbity/internal/core/fixedwidth"
	"github.com/sdezurik/MolProbity/internal/core/numeric"
)

// KeyWidth is the length of a packed residue key.
const KeyWidth = 9

// Field names of the packed key layout.
const (
	FieldChain   = "chain"
	FieldSeqNum  = "seq_num"
	FieldInsCode = "ins_code"
	FieldResType = "res_type"
)

// KeyLayout describes the packed key.
var KeyLayout = fixedwidth.Layout{
	{Name: FieldChain, Offset: 0, Length: 1},
	{Name: FieldSeqNum, Offset: 1, Length: 4},
	{Name: FieldInsCode, Offset: 5, Length: 1},
	{Name: FieldResType, Offset: 6, Length: 3},
}

// pdbLayout locates the residue identity inside an ATOM/HETATM record.
var pdbLayout = fixedwidth.Layout{
	{Name: FieldResType, Offset: 17, Length: 3},
	{Name: FieldChain, Offset: 21, Length: 1},
	{Name: FieldSeqNum, Offset: 22, Length: 4},
	{Name: FieldInsCode, Offset: 26, Length: 1},
}

// Key is the packed 9-character residue identity.
type Key string

// Residue is the decomposed form of a Key.
type Residue struct {
	Chain   string
	SeqNum  int
	InsCode string
	ResType string
}

// Encode packs a residue identity into a Key.
//
// Sequence numbers needing more than 4 characters (above 9999, below -999) are
// truncated to their last 4 characters so the key keeps its width; such keys
// cannot be decoded back to the original number.
func Encode(chain string, seqNum int, insCode, resType string) Key {
	num := fmt.Sprintf("%4d", seqNum)
	if len(num) > 4 {
		num = num[len(num)-4:]
	}
	return Key(oneChar(chain) + num + oneChar(insCode) + fmt.Sprintf("%-3s", resType))
}

// Key packs r.
func (r Residue) Key() Key {
	return Encode(r.Chain, r.SeqNum, r.InsCode, r.ResType)
}

// Decode splits a packed key into its fields. Any input is accepted: fields
// falling outside a short key come back empty and a non-numeric sequence
// number decodes as 0. Callers supply well-formed keys.
func Decode(k Key) Residue {
	s := string(k)
	return Residue{
		Chain:   KeyLayout.Get(s, FieldChain),
		SeqNum:  numeric.ParseInt(KeyLayout.Get(s, FieldSeqNum)),
		InsCode: KeyLayout.Get(s, FieldInsCode),
		ResType: strings.TrimRight(KeyLayout.Get(s, FieldResType), " "),
	}
}

// Decode is shorthand for Decode(k).
func (k Key) Decode() Residue {
	return Decode(k)
}

// Chain returns the chain ID column of k.
func (k Key) Chain() string {
	return KeyLayout.Get(string(k), FieldChain)
}

// SeqNum returns the decoded sequence number of k.
func (k Key) SeqNum() int {
	return numeric.ParseInt(KeyLayout.Get(string(k), FieldSeqNum))
}

// String returns the packed form.
func (k Key) String() string {
	return string(k)
}

// FromPDBLine builds the key of the residue an ATOM/HETATM record belongs to.
func FromPDBLine(line string) Key {
	return Key(pdbLayout.Get(line, FieldChain) +
		pdbLayout.Get(line, FieldSeqNum) +
		pdbLayout.Get(line, FieldInsCode) +
		pdbLayout.Get(line, FieldResType))
}

// Compare orders keys lexically on the packed string.
//
// This is the ordering of every outlier map and report. It is not numeric:
// sequence numbers are space padded, so it only agrees with (chain, number)
// order while numbers fit the padding and chains share case.
func Compare(a, b Key) int {
	return strings.Compare(string(a), string(b))
}

// Less reports whether a sorts before b under Compare.
func Less(a, b Key) bool {
	return Compare(a, b) < 0
}

func oneChar(s string) string {
	if s == "" {
		return " "
	}
	return s[:1]
}
