package weights

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nexten/smartmatch/internal/types"
)

// profilesFile is the YAML shape for external weight profile definitions:
//
//	profiles:
//	  custom:
//	    skills: 0.30
//	    experience: 0.20
//	    ...
type profilesFile struct {
	Profiles map[string]map[string]float64 `yaml:"profiles"`
}

// LoadProfilesFile reads weight profiles from a YAML file into the catalog.
// Every profile must sum to 1.0 within tolerance; the first invalid profile
// aborts the load.
func (c *Catalog) LoadProfilesFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read profiles file %s: %w", path, err)
	}

	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse profiles YAML %s: %w", path, err)
	}
	if len(file.Profiles) == 0 {
		return fmt.Errorf("profiles file %s defines no profiles", path)
	}

	for name, table := range file.Profiles {
		weights := make(map[types.Criterion]float64, len(table))
		for criterion, w := range table {
			weights[types.Criterion(criterion)] = w
		}
		if err := c.Register(name, weights); err != nil {
			return err
		}
	}
	return nil
}
