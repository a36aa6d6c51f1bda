package cmd

import (
	"flag"
	"fmt"

	"grimm.is/spagen/internal/config"
	"grimm.is/spagen/internal/generator"
)

// fieldFlag binds one FormValues field to a command-line flag.
type fieldFlag struct {
	field generator.Field
	dst   *generator.FormValues
}

func (f fieldFlag) String() string {
	if f.dst == nil {
		return ""
	}
	return f.field.Get(f.dst)
}

func (f fieldFlag) Set(s string) error {
	f.field.Set(f.dst, s)
	return nil
}

// registerFieldFlags adds a flag per form field. Values set on the command
// line land in the returned struct.
func registerFieldFlags(fs *flag.FlagSet) *generator.FormValues {
	dst := &generator.FormValues{}
	for _, f := range generator.Fields {
		usage := "Form field " + f.Key
		if f.Default != "" {
			usage += fmt.Sprintf(" (default %q)", f.Default)
		}
		fs.Var(fieldFlag{field: f, dst: dst}, flagName(f.Name), usage)
	}
	return dst
}

// valueSources are the layers merged by loadValues, lowest priority first.
type valueSources struct {
	File   string
	Lookup config.LookupFunc
	Flags  generator.FormValues
}

// loadInfo describes where the values came from.
type loadInfo struct {
	Path   string
	Format config.Format
	Env    []string
}

// loadValues merges the file, the environment and flags, in that order.
func loadValues(src valueSources) (generator.FormValues, loadInfo, error) {
	var v generator.FormValues
	var info loadInfo

	if src.File != "" {
		result, err := config.LoadFile(src.File)
		if err != nil {
			return v, info, err
		}
		v = result.Values
		info.Path = result.Path
		info.Format = result.Format
	}

	v, info.Env = config.ApplyEnv(v, src.Lookup)
	v = v.Merge(src.Flags)
	return v, info, nil
}
