package validation

import "strings"

// ParseRamaEvaluation maps an analyzer evaluation label to its enum value.
// Labels match exactly, as RotamerRecord.LabelledOutlier does: "outlier" is
// not RamachandranOutlierTag.
func ParseRamaEvaluation(label string) RamaEvaluation {
	switch strings.TrimSpace(label) {
	case "Favored":
		return RamaFavored
	case "Allowed":
		return RamaAllowed
	case RamachandranOutlierTag:
		return RamaOutlier
	default:
		return RamaUnknown
	}
}

// ParseRamaCase maps an analyzer residue-type label to its enum value.
func ParseRamaCase(label string) RamaCase {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "general case", "general":
		return RamaCaseGeneral
	case "glycine":
		return RamaCaseGlycine
	case "proline", "trans-pro", "cis-pro":
		return RamaCaseProline
	case "pre-proline", "pre-pro":
		return RamaCasePreProline
	default:
		return RamaCaseUnknown
	}
}

// ParseOmegaConformation maps a peptide conformation label to its enum value.
func ParseOmegaConformation(label string) OmegaConformation {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "cis":
		return OmegaCis
	case "trans":
		return OmegaTrans
	case "twisted":
		return OmegaTwisted
	default:
		return OmegaUnknown
	}
}

// ParseOmegaClass maps a peptide residue-class label to its enum value.
func ParseOmegaClass(label string) OmegaClass {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "general":
		return OmegaClassGeneral
	case "proline":
		return OmegaClassProline
	default:
		return OmegaClassUnknown
	}
}

func (e RamaEvaluation) String() string {
	switch e {
	case RamaFavored:
		return "Favored"
	case RamaAllowed:
		return "Allowed"
	case RamaOutlier:
		return RamachandranOutlierTag
	default:
		return "unknown"
	}
}

func (c OmegaConformation) String() string {
	switch c {
	case OmegaCis:
		return "Cis"
	case OmegaTrans:
		return "Trans"
	case OmegaTwisted:
		return "Twisted"
	default:
		return "unknown"
	}
}
