package config

import (
	"os"

	"grimm.is/spagen/internal/generator"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overlays SPAGEN_<NAME> variables onto v. It returns the updated
// values and the keys of the fields that were overridden. Empty variables
// are ignored.
func ApplyEnv(v generator.FormValues, lookup LookupFunc) (generator.FormValues, []string) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	var applied []string
	for _, f := range generator.Fields {
		val, ok := lookup(f.Env)
		if !ok || val == "" {
			continue
		}
		f.Set(&v, val)
		applied = append(applied, f.Key)
	}
	return v, applied
}
