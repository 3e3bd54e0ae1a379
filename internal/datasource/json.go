package datasource

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/statboard/uiscorecard/internal/scorecard"
)

// LoadJSON reads a dataset from a JSON file. The top level maps scope
// codes to year-keyed bundles.
func LoadJSON(path string) (scorecard.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("datasource: reading %s: %w", path, err)
	}

	var ds scorecard.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("datasource: parsing %s: %w", path, err)
	}
	if err := Validate(ds); err != nil {
		return nil, fmt.Errorf("%w (in %s)", err, path)
	}
	return ds, nil
}
