package nominals

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/reagentprep/pkg/domain/entities"
)

// NewSimpleResolver returns the "simple" strategy. Liquids are dispensed at
// the full target volume and summed into the final-volume row; solids are
// weighed from molarity alone.
func NewSimpleResolver(logger *zap.Logger) Resolver {
	return newWalker(StrategySimple, func(ctx blockContext) blockStrategy {
		return &simpleBlock{ctx: ctx}
	}, logger)
}

type simpleBlock struct {
	ctx         blockContext
	formulaVols []decimal.Decimal
}

func (b *simpleBlock) chemical(item int, li entities.LineItem) (entities.NominalRow, error) {
	if b.ctx.reagent != nil && b.ctx.req.Solvents.IsLiquid(li.Chemical) {
		// stock solutions are summed for the final total volume
		vol := round(b.ctx.target.Div(thousand))
		b.formulaVols = append(b.formulaVols, vol)
		return entities.NewNominal(li.Index, vol, entities.Milliliter), nil
	}

	chem, conc, err := b.ctx.lookup(item, li)
	if err != nil {
		return entities.NominalRow{}, err
	}
	grams := round(b.ctx.target.Div(million).Mul(conc).Mul(chem.MolecularWeight))
	return entities.NewNominal(li.Index, grams, entities.Gram), nil
}

func (b *simpleBlock) marker(index int) entities.NominalRow {
	if len(b.formulaVols) == 0 {
		return entities.NullNominal(index)
	}
	return entities.NewNominal(index, decimal.Sum(decimal.Zero, b.formulaVols...), entities.Milliliter)
}
