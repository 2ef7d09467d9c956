// Package robotfile assembles and writes the spreadsheet files read by the
// liquid handling robots.
package robotfile

import (
	"strings"

	"github.com/vsinha/reagentprep/pkg/domain/entities"
	"github.com/vsinha/reagentprep/pkg/domain/services/layout"
)

// Column is a named column of cell values. A nil value is an empty cell.
type Column struct {
	Name   string
	Values []any
}

// Frame is an ordered set of columns. Columns may differ in length; the
// shorter ones are padded with empty cells when written.
type Frame struct {
	Columns []Column
}

// Add appends a column to the frame
func (f *Frame) Add(name string, values ...any) *Frame {
	f.Columns = append(f.Columns, Column{Name: name, Values: values})
	return f
}

// Rows returns the length of the longest column
func (f *Frame) Rows() int {
	n := 0
	for _, c := range f.Columns {
		if len(c.Values) > n {
			n = len(c.Values)
		}
	}
	return n
}

// Column returns the first column with the given name
func (f *Frame) Column(name string) (Column, bool) {
	for _, c := range f.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Names returns the column headers in order
func (f *Frame) Names() []string {
	names := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		names[i] = c.Name
	}
	return names
}

// Concat joins frames side by side, keeping every column in order
func Concat(frames ...*Frame) *Frame {
	out := &Frame{}
	for _, f := range frames {
		if f == nil {
			continue
		}
		out.Columns = append(out.Columns, f.Columns...)
	}
	return out
}

// aliasColumns replaces "Reagent" in every header with alias
func aliasColumns(f *Frame, alias string) *Frame {
	if alias == "" || alias == "Reagent" {
		return f
	}
	out := &Frame{Columns: make([]Column, len(f.Columns))}
	for i, c := range f.Columns {
		out.Columns[i] = Column{Name: strings.ReplaceAll(c.Name, "Reagent", alias), Values: c.Values}
	}
	return out
}

func volumeFrame(vt *entities.VolumeTable) *Frame {
	f := &Frame{}
	for _, col := range vt.Columns {
		values := make([]any, len(col.Volumes))
		for i, v := range col.Volumes {
			values[i] = v
		}
		f.Add(col.Name, values...)
	}
	return f
}

// wellFrame returns the site and labware columns of a tray layout
func wellFrame(wells []layout.Well, labwareHeader string) (site, labware *Frame) {
	sites := make([]any, len(wells))
	labwares := make([]any, len(wells))
	for i, w := range wells {
		sites[i] = w.Site
		labwares[i] = w.Labware
	}
	return (&Frame{}).Add("Vial Site", sites...), (&Frame{}).Add(labwareHeader, labwares...)
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
