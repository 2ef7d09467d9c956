package nominals

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/reagentprep/pkg/domain/entities"
)

// NewDepletionResolver returns the "v1" strategy. Each chemical consumes
// volume from the reagent's target (solids by mass over density) and the
// last recipe chemical is dispensed as whatever volume remains.
func NewDepletionResolver(logger *zap.Logger) Resolver {
	return newWalker(StrategyV1, func(ctx blockContext) blockStrategy {
		target := ctx.target.Div(million) // liters
		return &depletionBlock{ctx: ctx, target: target, remaining: target}
	}, logger)
}

type depletionBlock struct {
	ctx       blockContext
	target    decimal.Decimal // L
	remaining decimal.Decimal // L
}

func (b *depletionBlock) chemical(item int, li entities.LineItem) (entities.NominalRow, error) {
	if b.ctx.reagent != nil && b.ctx.reagent.IsLastChemical(item) {
		if _, err := b.ctx.chemical(li.Chemical); err != nil {
			return entities.NominalRow{}, err
		}
		if b.remaining.IsNegative() {
			return entities.NominalRow{}, fmt.Errorf("%w: %s needs %s mL more than the %s mL target",
				entities.ErrVolumeExceeded, li.Chemical, round(b.remaining.Neg().Mul(thousand)), round(b.target.Mul(thousand)))
		}
		return entities.NewNominal(li.Index, round(b.remaining.Mul(thousand)), entities.Milliliter), nil
	}

	chem, conc, err := b.ctx.lookup(item, li)
	if err != nil {
		return entities.NominalRow{}, err
	}

	neededMol := b.target.Mul(conc)
	massG := neededMol.Mul(chem.MolecularWeight)
	volumeML := massG.Div(chem.Density)
	b.remaining = b.remaining.Sub(volumeML.Div(thousand))

	if b.ctx.req.Solvents.IsLiquid(li.Chemical) {
		return entities.NewNominal(li.Index, round(volumeML), entities.Milliliter), nil
	}
	return entities.NewNominal(li.Index, round(massG), entities.Gram), nil
}

func (b *depletionBlock) marker(index int) entities.NominalRow {
	if b.remaining.Equal(b.target) {
		return entities.NullNominal(index)
	}
	return entities.NewNominal(index, round(b.target.Mul(thousand)), entities.Milliliter)
}
