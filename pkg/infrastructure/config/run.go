package config

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/reagentprep/pkg/domain/entities"
)

// number decodes a YAML scalar into an exact decimal
type number struct {
	decimal.Decimal
}

// UnmarshalYAML parses the scalar text rather than a float
func (n *number) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", value.Line)
	}
	d, err := decimal.NewFromString(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid number %q", value.Line, value.Value)
	}
	n.Decimal = d
	return nil
}

// runFile is the on-disk layout of a run description
type runFile struct {
	RunID            string `yaml:"run_id"`
	Lab              string `yaml:"lab"`
	Date             string `yaml:"date"`
	Time             string `yaml:"time"`
	ExpWorkflowVer   number `yaml:"exp_workflow_ver"`
	ChallengeProblem string `yaml:"challenge_problem"`

	Temperature1Nominal number `yaml:"temperature1_nominal"`
	Temperature2Nominal number `yaml:"temperature2_nominal"`
	StirRate            number `yaml:"stir_rate"`
	DurationStir1       number `yaml:"duration_stir1"`
	DurationStir2       number `yaml:"duration_stir2"`
	DurationReaction    number `yaml:"duration_reaction"`

	PlateContainer string `yaml:"plate_container"`
	WellCount      int    `yaml:"well_count"`

	ReagentDeadVolume         number `yaml:"reagent_dead_volume"`
	ReagentsPreRxnTemperature number `yaml:"reagents_prerxn_temperature"`

	AdditionalActions []actionFile `yaml:"additional_actions"`
	WF3Split          []int        `yaml:"wf3_split"`
	Solvents          []string     `yaml:"solvents"`

	Reagents map[int]reagentFile `yaml:"reagents"`
}

type actionFile struct {
	Description string `yaml:"description"`
	Value       string `yaml:"value"`
}

type reagentFile struct {
	Chemicals         []string          `yaml:"chemicals"`
	Concentrations    map[string]number `yaml:"concentrations"`
	Identity          string            `yaml:"identity"`
	PrepTemperature   string            `yaml:"prep_temperature"`
	PrepStirRate      string            `yaml:"prep_stir_rate"`
	PrepDuration      string            `yaml:"prep_duration"`
	PreRxnTemperature string            `yaml:"prerxn_temperature"`
}

// LoadRun reads the run description at path
func LoadRun(path string) (*entities.Run, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run file %s: %w", path, err)
	}
	defer file.Close()

	return ReadRun(file)
}

// ReadRun decodes a run description
func ReadRun(r io.Reader) (*entities.Run, error) {
	var rf runFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rf); err != nil {
		return nil, fmt.Errorf("failed to parse run: %w", err)
	}
	return rf.toRun()
}

func (rf *runFile) toRun() (*entities.Run, error) {
	if rf.RunID == "" {
		return nil, fmt.Errorf("run_id cannot be empty")
	}
	if rf.Lab == "" {
		return nil, fmt.Errorf("run %s: lab cannot be empty", rf.RunID)
	}
	if rf.WellCount < 0 {
		return nil, fmt.Errorf("run %s: well_count cannot be negative, got %d", rf.RunID, rf.WellCount)
	}

	run := &entities.Run{
		RunID:                     rf.RunID,
		Lab:                       rf.Lab,
		Date:                      rf.Date,
		Time:                      rf.Time,
		ExpWorkflowVer:            rf.ExpWorkflowVer.Decimal,
		ChallengeProblem:          rf.ChallengeProblem,
		Temperature1Nominal:       rf.Temperature1Nominal.Decimal,
		Temperature2Nominal:       rf.Temperature2Nominal.Decimal,
		StirRate:                  rf.StirRate.Decimal,
		DurationStir1:             rf.DurationStir1.Decimal,
		DurationStir2:             rf.DurationStir2.Decimal,
		DurationReaction:          rf.DurationReaction.Decimal,
		PlateContainer:            rf.PlateContainer,
		WellCount:                 rf.WellCount,
		ReagentDeadVolume:         rf.ReagentDeadVolume.Decimal,
		ReagentsPreRxnTemperature: rf.ReagentsPreRxnTemperature.Decimal,
		Reagents:                  make(entities.Reagents, len(rf.Reagents)),
	}

	for _, a := range rf.AdditionalActions {
		run.AdditionalActions = append(run.AdditionalActions, entities.AdditionalAction{
			Description: a.Description,
			Value:       a.Value,
		})
	}
	for _, k := range rf.WF3Split {
		run.WF3Split = append(run.WF3Split, entities.ReagentKey(k))
	}
	solvents := make([]entities.ChemicalAbbr, 0, len(rf.Solvents))
	for _, s := range rf.Solvents {
		solvents = append(solvents, entities.ChemicalAbbr(s))
	}
	run.Solvents = entities.NewSolventSet(solvents...)

	for key, raw := range rf.Reagents {
		reagent, err := raw.toReagent(entities.ReagentKey(key))
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", rf.RunID, err)
		}
		run.Reagents[reagent.Key] = reagent
	}

	return run, nil
}

func (raw reagentFile) toReagent(key entities.ReagentKey) (*entities.Reagent, error) {
	chemicals := make([]entities.ChemicalAbbr, 0, len(raw.Chemicals))
	for _, c := range raw.Chemicals {
		chemicals = append(chemicals, entities.ChemicalAbbr(c))
	}

	concs := make(map[int]decimal.Decimal, len(raw.Concentrations))
	for k, v := range raw.Concentrations {
		item, err := entities.ParseConcentrationKey(k)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key.Name(), err)
		}
		concs[item] = v.Decimal
	}

	reagent, err := entities.NewReagent(key, chemicals, concs)
	if err != nil {
		return nil, err
	}
	reagent.Identity = raw.Identity
	reagent.PrepTemperature = raw.PrepTemperature
	reagent.PrepStirRate = raw.PrepStirRate
	reagent.PrepDuration = raw.PrepDuration
	reagent.PreRxnTemperature = raw.PreRxnTemperature
	return reagent, nil
}
