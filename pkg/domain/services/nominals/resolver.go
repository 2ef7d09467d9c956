// Package nominals resolves reagent line items into nominal dispensing
// amounts. Two strategies are provided:
//
//   - "simple" sums stock solvent volumes into the final-volume row and does
//     not account for the volume displaced by dissolved solids.
//   - "v1" tracks a depletion budget per reagent. Solids and liquids both
//     consume volume, and the last recipe chemical receives the remainder.
//
// Both strategies walk the table in index order through the same per-block
// state machine and return exactly one row per line item.
package nominals

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/reagentprep/pkg/domain/entities"
	"github.com/vsinha/reagentprep/pkg/domain/repositories"
)

const (
	StrategySimple = "simple"
	StrategyV1     = "v1"
)

// placesRounded is the number of decimal places of every emitted amount
const placesRounded = 2

var (
	thousand = decimal.NewFromInt(1000)
	million  = decimal.NewFromInt(1000000)
)

// Request carries everything a resolution needs. Nothing in it is modified.
type Request struct {
	Reagents      entities.Reagents
	LineItems     []entities.LineItem
	TargetVolumes entities.TargetVolumes
	Solvents      entities.SolventSet
	Chemicals     repositories.ChemicalLookup
	Config        entities.LabConfig
}

// Resolver turns a line-item table into a row-aligned nominal table
type Resolver interface {
	Name() string
	Resolve(req Request) ([]entities.NominalRow, error)
}

// NewResolver returns the resolver registered under strategy
func NewResolver(strategy string, logger *zap.Logger) (Resolver, error) {
	switch strategy {
	case StrategySimple:
		return NewSimpleResolver(logger), nil
	case StrategyV1, "":
		return NewDepletionResolver(logger), nil
	default:
		return nil, fmt.Errorf("unsupported nominal strategy: %s (expected %s or %s)", strategy, StrategySimple, StrategyV1)
	}
}

// blockStrategy computes the rows of a single reagent block
type blockStrategy interface {
	// chemical resolves the chemical row at 1-based recipe position item
	chemical(item int, li entities.LineItem) (entities.NominalRow, error)
	// marker returns the deferred final-volume row once the block is complete
	marker(index int) entities.NominalRow
}

// blockContext is what a strategy receives when a block opens. Reagent is nil
// for unpopulated slots.
type blockContext struct {
	reagent *entities.Reagent
	target  decimal.Decimal // µL
	req     *Request
}

type newBlockFunc func(ctx blockContext) blockStrategy

// walker drives a blockStrategy through the table. Every block moves through
// awaitingMarker -> inChemical(i) -> blockComplete.
type walker struct {
	name     string
	newBlock newBlockFunc
	logger   *zap.Logger
}

func newWalker(name string, fn newBlockFunc, logger *zap.Logger) *walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &walker{name: name, newBlock: fn, logger: logger}
}

// Name returns the strategy name
func (w *walker) Name() string {
	return w.name
}

type blockPhase int

const (
	awaitingMarker blockPhase = iota
	inChemical
	blockComplete
)

type blockState struct {
	phase     blockPhase
	reagent   entities.ReagentKey
	item      int // next 1-based chemical position
	markerPos int // output slot of the deferred marker row
	markerIdx int
	strategy  blockStrategy
}

// Resolve walks the line items in index order and returns one nominal row
// per item in the same order. Any lookup failure aborts the whole run.
func (w *walker) Resolve(req Request) ([]entities.NominalRow, error) {
	if err := req.Config.ValidateTable(); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrConfigMismatch, err)
	}
	if req.Chemicals == nil {
		return nil, fmt.Errorf("chemical lookup is required")
	}

	items := append([]entities.LineItem(nil), req.LineItems...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Index < items[j].Index })

	out := make([]entities.NominalRow, len(items))
	state := blockState{phase: awaitingMarker}

	for pos, li := range items {
		switch li.Kind {
		case entities.MarkerLine:
			if state.phase == inChemical {
				return nil, fmt.Errorf("%w: %s block ended after %d of %d chemical rows",
					entities.ErrConfigMismatch, state.reagent.Name(), state.item-1, req.Config.MaxReagentChemicals)
			}
			ctx, err := w.openBlock(&req, li.Reagent)
			if err != nil {
				return nil, err
			}
			state = blockState{
				phase:     inChemical,
				reagent:   li.Reagent,
				item:      1,
				markerPos: pos,
				markerIdx: li.Index,
				strategy:  w.newBlock(ctx),
			}

		case entities.ChemicalLine, entities.NullLine:
			if state.phase != inChemical || li.Reagent != state.reagent {
				return nil, fmt.Errorf("%w: line %d (%s) is outside a reagent block",
					entities.ErrConfigMismatch, li.Index, li.ReagentName())
			}
			if li.Position != state.item {
				return nil, fmt.Errorf("%w: line %d is position %d, expected %d",
					entities.ErrConfigMismatch, li.Index, li.Position, state.item)
			}
			if li.Kind == entities.NullLine {
				out[pos] = entities.NullNominal(li.Index)
			} else {
				row, err := state.strategy.chemical(state.item, li)
				if err != nil {
					return nil, fmt.Errorf("%s resolution of %s: %w", w.name, li.ReagentName(), err)
				}
				out[pos] = row
			}
			state.item++

		default:
			return nil, fmt.Errorf("line %d has unknown kind %s", li.Index, li.Kind)
		}

		if state.phase == inChemical && state.item == req.Config.MaxReagentChemicals+1 {
			state.phase = blockComplete
			out[state.markerPos] = state.strategy.marker(state.markerIdx)
			w.logger.Info("formula calculation complete",
				zap.String("reagent", state.reagent.Name()),
				zap.String("strategy", w.name))
			state.phase = awaitingMarker
		}
	}

	if state.phase == inChemical {
		return nil, fmt.Errorf("%w: %s block is incomplete", entities.ErrConfigMismatch, state.reagent.Name())
	}

	return out, nil
}

func (w *walker) openBlock(req *Request, key entities.ReagentKey) (blockContext, error) {
	ctx := blockContext{req: req}
	r, ok := req.Reagents[key]
	if !ok {
		return ctx, nil
	}
	target, ok := req.TargetVolumes[key]
	if !ok {
		return ctx, fmt.Errorf("%w: %s", entities.ErrMissingTargetVolume, key.Name())
	}
	ctx.reagent = r
	ctx.target = target
	return ctx, nil
}

// lookup fetches the property record and the concentration for a chemical row
func (c blockContext) lookup(item int, li entities.LineItem) (*entities.ChemicalProperties, decimal.Decimal, error) {
	if c.reagent == nil {
		return nil, decimal.Zero, fmt.Errorf("%w: line %d names %s but %s is not specified",
			entities.ErrConfigMismatch, li.Index, li.Chemical, li.ReagentName())
	}
	chem, err := c.chemical(li.Chemical)
	if err != nil {
		return nil, decimal.Zero, err
	}
	conc, err := c.reagent.Concentration(item)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return chem, conc, nil
}

func (c blockContext) chemical(abbr entities.ChemicalAbbr) (*entities.ChemicalProperties, error) {
	chem, err := c.req.Chemicals.GetChemical(abbr)
	if err != nil {
		return nil, err
	}
	if chem == nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrUnknownChemical, abbr)
	}
	if !chem.Density.IsPositive() || !chem.MolecularWeight.IsPositive() {
		return nil, fmt.Errorf("%w: %s needs positive molecular weight and density", entities.ErrInvalidChemical, abbr)
	}
	return chem, nil
}

func round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(placesRounded)
}
