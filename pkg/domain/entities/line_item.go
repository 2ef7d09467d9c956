package entities

// LineItemKind classifies a row of the chemical line-item table
type LineItemKind int

const (
	MarkerLine LineItemKind = iota
	ChemicalLine
	NullLine
)

// String method for LineItemKind enum
func (k LineItemKind) String() string {
	switch k {
	case MarkerLine:
		return "Marker"
	case ChemicalLine:
		return "Chemical"
	case NullLine:
		return "Null"
	default:
		return "Unknown"
	}
}

// LineItem is one row of the fixed-layout reagent interface table.
// Position is 0 for the final-volume marker and 1..N for chemical slots.
type LineItem struct {
	Index    int
	Reagent  ReagentKey
	Kind     LineItemKind
	Chemical ChemicalAbbr
	Position int
}

// ReagentName returns the reagentnames cell for the row
func (li LineItem) ReagentName() string {
	return li.Reagent.Name()
}

// Label returns the chemabbr cell for the row
func (li LineItem) Label() string {
	switch li.Kind {
	case MarkerLine:
		return FinalVolumeMarker
	case ChemicalLine:
		return string(li.Chemical)
	default:
		return NullValue
	}
}
