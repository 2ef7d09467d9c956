package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/vsinha/reagentprep/pkg/application/dto"
	"github.com/vsinha/reagentprep/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	RunID     string
	Verbose   bool
	// Writer receives output that is not saved to a file. Defaults to stdout.
	Writer io.Writer
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

func (c Config) filename(ext string) string {
	name := "reagent_spec"
	if c.RunID != "" {
		name = c.RunID + "_" + name
	}
	return filepath.Join(c.OutputDir, name+"."+ext)
}

// Header is the column order of the reagent specification table
var Header = []string{"chemabbr", "reagentnames", "nominal_amount", "Unit", "actualsnull"}

// Generate renders the reagent specification in the specified format
func Generate(spec *dto.ReagentSpec, config Config) error {
	switch config.Format {
	case "text", "":
		return generateTextOutput(spec, config)
	case "json":
		return generateJSONOutput(spec, config)
	case "csv":
		return generateCSVOutput(spec, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// Records returns the table rows in Header order
func Records(spec *dto.ReagentSpec) [][]string {
	records := make([][]string, 0, len(spec.Rows))
	for _, row := range spec.Rows {
		records = append(records, []string{
			row.Label(),
			row.ReagentName(),
			row.Nominal.AmountString(),
			row.Nominal.Unit.String(),
			row.Nominal.ActualsString(),
		})
	}
	return records
}

// generateTextOutput creates human-readable text output
func generateTextOutput(spec *dto.ReagentSpec, config Config) error {
	w := config.writer()
	fmt.Fprintf(w, "Reagent Specification (%s)\n", spec.Strategy)
	fmt.Fprintf(w, "==============================\n\n")

	fmt.Fprintf(w, "%-16s %-10s %-14s %-11s %-8s\n",
		"Chemical", "Reagent", "Nominal", "Unit", "Actuals")
	fmt.Fprintf(w, "%-16s %-10s %-14s %-11s %-8s\n",
		"----------------", "----------", "--------------", "-----------", "--------")
	for _, rec := range Records(spec) {
		fmt.Fprintf(w, "%-16s %-10s %-14s %-11s %-8s\n", rec[0], rec[1], rec[2], rec[3], rec[4])
	}
	fmt.Fprintln(w)

	if len(spec.TargetVolumes) > 0 {
		fmt.Fprintf(w, "Target Volumes (ul):\n")
		for _, key := range sortedKeys(spec) {
			fmt.Fprintf(w, "  %-10s %s\n", key.Name(), spec.TargetVolumes[key].String())
		}
		fmt.Fprintln(w)
	}
	return nil
}

type jsonRow struct {
	Index         int    `json:"index"`
	ChemAbbr      string `json:"chemabbr"`
	ReagentName   string `json:"reagentnames"`
	NominalAmount string `json:"nominal_amount"`
	Unit          string `json:"unit"`
	ActualsNull   string `json:"actualsnull"`
}

type jsonSpec struct {
	Strategy      string            `json:"strategy"`
	TargetVolumes map[string]string `json:"target_volumes_ul"`
	Rows          []jsonRow         `json:"rows"`
}

// generateJSONOutput creates JSON output
func generateJSONOutput(spec *dto.ReagentSpec, config Config) error {
	doc := jsonSpec{
		Strategy:      spec.Strategy,
		TargetVolumes: make(map[string]string, len(spec.TargetVolumes)),
		Rows:          make([]jsonRow, 0, len(spec.Rows)),
	}
	for key, vol := range spec.TargetVolumes {
		doc.TargetVolumes[key.Name()] = vol.String()
	}
	for i, rec := range Records(spec) {
		doc.Rows = append(doc.Rows, jsonRow{
			Index:         spec.Rows[i].Index,
			ChemAbbr:      rec[0],
			ReagentName:   rec[1],
			NominalAmount: rec[2],
			Unit:          rec[3],
			ActualsNull:   rec[4],
		})
	}

	jsonData, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.writer(), string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := config.filename("json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if config.Verbose {
		fmt.Fprintf(config.writer(), "JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput creates CSV output
func generateCSVOutput(spec *dto.ReagentSpec, config Config) error {
	if config.OutputDir == "" {
		return writeCSV(config.writer(), spec)
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := config.filename("csv")
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	if err := writeCSV(file, spec); err != nil {
		return fmt.Errorf("failed to write reagent spec CSV: %w", err)
	}
	if config.Verbose {
		fmt.Fprintf(config.writer(), "CSV results saved to: %s\n", filename)
	}
	return file.Close()
}

func writeCSV(w io.Writer, spec *dto.ReagentSpec) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	if err := cw.WriteAll(Records(spec)); err != nil {
		return err
	}
	return cw.Error()
}

func sortedKeys(spec *dto.ReagentSpec) []entities.ReagentKey {
	keys := make([]entities.ReagentKey, 0, len(spec.TargetVolumes))
	for k := range spec.TargetVolumes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
