package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v2"

	"grimm.is/spagen/internal/generator"
)

// Format identifies an input file syntax.
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL, true
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return "", false
}

// LoadResult contains the loaded values and metadata about the load
type LoadResult struct {
	Path   string
	Format Format
	Values generator.FormValues
}

// LoadFile loads form values from an HCL, JSON or YAML file.
func LoadFile(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if format, ok := DetectFormat(path); ok {
		v, err := Load(data, path, format)
		if err != nil {
			return nil, err
		}
		return &LoadResult{Path: path, Format: format, Values: v}, nil
	}

	var errs []error
	for _, format := range []Format{FormatHCL, FormatJSON, FormatYAML} {
		v, err := Load(data, path, format)
		if err == nil {
			return &LoadResult{Path: path, Format: format, Values: v}, nil
		}
		errs = append(errs, err)
	}
	return nil, fmt.Errorf("unrecognized config format in %s: %w", path, errors.Join(errs...))
}

// Load decodes data in the given format.
func Load(data []byte, filename string, format Format) (generator.FormValues, error) {
	switch format {
	case FormatHCL:
		return LoadHCL(data, filename)
	case FormatJSON:
		return LoadJSON(data)
	case FormatYAML:
		return LoadYAML(data)
	}
	return generator.FormValues{}, fmt.Errorf("unsupported format %q", format)
}

// LoadHCL decodes top-level HCL attributes into form values.
func LoadHCL(data []byte, filename string) (generator.FormValues, error) {
	var v generator.FormValues

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return v, fmt.Errorf("HCL parse error: %s", diags.Error())
	}

	if diags := gohcl.DecodeBody(file.Body, nil, &v); diags.HasErrors() {
		return v, fmt.Errorf("HCL decode error: %s", diags.Error())
	}
	return v, nil
}

// LoadJSON decodes camelCase JSON into form values. Unknown keys are rejected.
func LoadJSON(data []byte) (generator.FormValues, error) {
	var v generator.FormValues
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("JSON decode error: %w", err)
	}
	return v, nil
}

// LoadYAML decodes snake_case YAML into form values. Unknown keys are rejected.
func LoadYAML(data []byte) (generator.FormValues, error) {
	var v generator.FormValues
	if err := yaml.UnmarshalStrict(data, &v); err != nil {
		return v, fmt.Errorf("YAML decode error: %w", err)
	}
	return v, nil
}
