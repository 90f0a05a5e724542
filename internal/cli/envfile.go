package cli

import (
	"fmt"
	"sort"

	"github.com/joho/godotenv"
)

// Reads KEY=VALUE variables from dotenv files.
//
// Files are read in the given order and the variables of each file are
// returned sorted by key, so the result does not depend on map iteration.
func readEnvFiles(files []string) ([]string, error) {
	var vars []string
	for _, file := range files {
		values, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("env file %s: %w", file, err)
		}

		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			vars = append(vars, k+"="+values[k])
		}
	}
	return vars, nil
}
