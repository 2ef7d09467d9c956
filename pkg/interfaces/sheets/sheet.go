// Package sheets fills the reagent preparation interface worksheet that lab
// staff follow when mixing reagents.
package sheets

import (
	"fmt"
	"sort"
	"sync"
)

// Sheet is a worksheet addressed by A1-style cell names
type Sheet interface {
	Cell(cell string) (string, error)
	UpdateCell(cell string, value any) error
}

// MemorySheet is a Sheet held in memory
type MemorySheet struct {
	mu    sync.RWMutex
	cells map[string]any
}

// NewMemorySheet creates a sheet with the given initial cell values
func NewMemorySheet(cells map[string]any) *MemorySheet {
	s := &MemorySheet{cells: make(map[string]any, len(cells))}
	for k, v := range cells {
		s.cells[k] = v
	}
	return s
}

// Cell returns the rendered value of a cell, empty when unset
func (s *MemorySheet) Cell(cell string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.cells[cell]
	if !ok || v == nil {
		return "", nil
	}
	return fmt.Sprint(v), nil
}

// UpdateCell sets a cell value
func (s *MemorySheet) UpdateCell(cell string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells[cell] = value
	return nil
}

// Addresses returns the names of all set cells, sorted
func (s *MemorySheet) Addresses() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.cells))
	for k := range s.cells {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
