package entities

import "github.com/shopspring/decimal"

// AdditionalAction is a free-form robot step with a description and value
type AdditionalAction struct {
	Description string
	Value       string
}

// Run describes one planned reaction run
type Run struct {
	RunID            string
	Lab              string
	Date             string
	Time             string
	ExpWorkflowVer   decimal.Decimal
	ChallengeProblem string

	Temperature1Nominal decimal.Decimal
	Temperature2Nominal decimal.Decimal
	StirRate            decimal.Decimal
	DurationStir1       decimal.Decimal
	DurationStir2       decimal.Decimal
	DurationReaction    decimal.Decimal

	PlateContainer string
	WellCount      int

	// ReagentDeadVolume is in milliliters
	ReagentDeadVolume         decimal.Decimal
	ReagentsPreRxnTemperature decimal.Decimal

	AdditionalActions []AdditionalAction
	WF3Split          []ReagentKey
	Solvents          SolventSet
	Reagents          Reagents
}

var (
	workflowThree = decimal.NewFromInt(3)
	workflowFour  = decimal.NewFromInt(4)
)

// IsWorkflow3 reports whether the run uses the split-tray workflow 3.x
func (r *Run) IsWorkflow3() bool {
	return r.ExpWorkflowVer.GreaterThanOrEqual(workflowThree) && r.ExpWorkflowVer.LessThan(workflowFour)
}

// Action returns the nth additional action, or an empty action when unset
func (r *Run) Action(n int) AdditionalAction {
	if n < 0 || n >= len(r.AdditionalActions) {
		return AdditionalAction{}
	}
	return r.AdditionalActions[n]
}
