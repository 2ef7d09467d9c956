package entities

import "fmt"

// LabConfig holds the per-lab layout constants of the robot and the
// reagent preparation interface
type LabConfig struct {
	Name                           string
	MaxReagents                    int
	MaxReagentChemicals            int
	ReagentInterfaceAmountStartRow int
	ReagentAlias                   string
}

// Validate checks that the configuration can describe a layout
func (c LabConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("lab name cannot be empty")
	}
	if err := c.ValidateTable(); err != nil {
		return err
	}
	if c.ReagentInterfaceAmountStartRow < 1 {
		return fmt.Errorf("lab %s: reagent_interface_amount_startrow must be positive, got %d",
			c.Name, c.ReagentInterfaceAmountStartRow)
	}
	return nil
}

// ValidateTable checks only the constants that shape the line-item table
func (c LabConfig) ValidateTable() error {
	if c.MaxReagents < 1 {
		return fmt.Errorf("lab %s: max_reagents must be positive, got %d", c.Name, c.MaxReagents)
	}
	if c.MaxReagentChemicals < 1 {
		return fmt.Errorf("lab %s: max_reagent_chemicals must be positive, got %d", c.Name, c.MaxReagentChemicals)
	}
	return nil
}

// BlockSize is the number of line-item rows per reagent slot
func (c LabConfig) BlockSize() int {
	return c.MaxReagentChemicals + 1
}

// TableSize is the fixed number of line-item rows for the lab
func (c LabConfig) TableSize() int {
	return c.MaxReagents * c.BlockSize()
}

// Alias returns the display alias for reagents, defaulting to "Reagent"
func (c LabConfig) Alias() string {
	if c.ReagentAlias == "" {
		return "Reagent"
	}
	return c.ReagentAlias
}
