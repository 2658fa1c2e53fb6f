package seed

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TableFile is the seed table file name looked up inside a project directory.
const TableFile = "seeds.yaml"

// Load reads a seed table from a YAML file.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("reading seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed table from YAML bytes.
func Parse(data []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("parsing seed YAML: %w", err)
	}
	return t, nil
}

// LoadProject loads seeds.yaml from a project directory.
func LoadProject(projectDir string) (Table, error) {
	return Load(filepath.Join(projectDir, TableFile))
}

// LoadOrDefault loads the table at path, or returns Default when path is empty.
func LoadOrDefault(path string) (Table, error) {
	if path == "" {
		return Default(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return Table{}, fmt.Errorf("reading seed file: %w", err)
	}
	if info.IsDir() {
		return LoadProject(path)
	}
	return Load(path)
}

// Default returns the built-in oil reference table. Values approximate
// present-day reserves and consumption in billion barrels.
func Default() Table {
	return Table{
		Version: "1",
		Entities: []Entry{
			{ID: "USA", Name: "United States", Params: Params{68.8, 0.8, 0.01}},
			{ID: "CHN", Name: "China", Params: Params{26.0, 0.7, 0.04}},
			{ID: "RUS", Name: "Russia", Params: Params{107.8, 0.15, 0.005}},
			{ID: "SAU", Name: "Saudi Arabia", Params: Params{297.5, 0.15, 0.02}},
			{ID: "IND", Name: "India", Params: Params{4.5, 0.23, 0.06}},
			{ID: "CAN", Name: "Canada", Params: Params{170.3, 0.1, 0.01}},
			{ID: "BRA", Name: "Brazil", Params: Params{12.7, 0.11, 0.02}},
			{ID: "VEN", Name: "Venezuela", Params: Params{303.8, 0.05, -0.01}},
			{ID: "IRN", Name: "Iran", Params: Params{157.8, 0.08, 0.01}},
			{ID: "IRQ", Name: "Iraq", Params: Params{145.0, 0.04, 0.02}},
			{ID: "KWT", Name: "Kuwait", Params: Params{101.5, 0.03, 0.01}},
			{ID: "ARE", Name: "United Arab Emirates", Params: Params{97.8, 0.04, 0.02}},
			{ID: "NGA", Name: "Nigeria", Params: Params{37.0, 0.02, 0.03}},
			{ID: "GBR", Name: "United Kingdom", Params: Params{2.5, 0.06, -0.02}},
			{ID: "DEU", Name: "Germany", Params: Params{0.2, 0.09, -0.01}},
			// Pure importer.
			{ID: "JPN", Name: "Japan", Params: Params{0.0, 0.16, -0.01}},
		},
	}
}
