package repository

import (
	"fmt"
	"os"

	"homecare-booking/internal/data/entity"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Services []struct {
		ID        string `yaml:"id"`
		Label     string `yaml:"label"`
		Category  string `yaml:"category"`
		Unit      string `yaml:"unit"`
		UnitPrice int64  `yaml:"unitPrice"`
	} `yaml:"services"`
}

// LoadServiceOptions reads a price list from a YAML file, in file order.
// Unknown categories or units fail the whole file.
func LoadServiceOptions(path string) ([]entity.ServiceOption, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parseServiceOptions(data)
}

func parseServiceOptions(data []byte) ([]entity.ServiceOption, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Services) == 0 {
		return nil, fmt.Errorf("parse catalog: no services")
	}

	options := make([]entity.ServiceOption, 0, len(file.Services))
	for i, s := range file.Services {
		category := entity.ServiceCategory(s.Category)
		if category != entity.ServiceCategoryCleaning && category != entity.ServiceCategoryHandyman {
			return nil, fmt.Errorf("parse catalog: service %d (%s): unknown category %q", i, s.ID, s.Category)
		}
		unit := entity.PriceUnit(s.Unit)
		if unit == "" {
			unit = entity.PriceUnitJob
		}
		if unit != entity.PriceUnitJob && unit != entity.PriceUnitHour {
			return nil, fmt.Errorf("parse catalog: service %d (%s): unknown unit %q", i, s.ID, s.Unit)
		}
		options = append(options, entity.ServiceOption{
			ID:        s.ID,
			Label:     s.Label,
			Category:  category,
			Unit:      unit,
			UnitPrice: s.UnitPrice,
		})
	}
	return options, nil
}
