package results

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads and parses a benchmark results document. Read and parse
// failures are fatal to the caller; there is no partial recovery.
func Load(path string) (*Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var r Results
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &r, nil
}
