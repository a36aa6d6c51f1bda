package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"grimm.is/spagen/internal/brand"
	"grimm.is/spagen/internal/generator"
)

// ErrExists is returned by SaveTemplate when the target exists.
var ErrExists = errors.New("file already exists")

// SerializeHCL renders v as an HCL input file. Required fields get a
// "required" comment; the preshared key is left out unless set, so that
// SPAGEN_IPSEC_PSK can supply it.
func SerializeHCL(v generator.FormValues) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.AppendUnstructuredTokens(comment(fmt.Sprintf("# %s input (%s)\n", brand.Name, brand.Description)))
	body.AppendNewline()

	for _, field := range generator.Fields {
		val := field.Get(&v)
		if field.Key == "ipsecPsk" && val == "" {
			body.AppendUnstructuredTokens(comment("# ipsec_psk: set here or via SPAGEN_IPSEC_PSK; `spagen secret` generates one\n"))
			continue
		}
		if field.Required {
			body.AppendUnstructuredTokens(comment("# required\n"))
		}
		body.SetAttributeValue(field.Name, cty.StringVal(val))
	}

	return hclwrite.Format(f.Bytes())
}

func comment(text string) hclwrite.Tokens {
	return hclwrite.Tokens{
		{Type: hclsyntax.TokenComment, Bytes: []byte(text)},
	}
}

// SaveTemplate writes SerializeHCL(v) to path with owner-only permissions.
func SaveTemplate(path string, v generator.FormValues, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrExists)
		}
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, SerializeHCL(v), 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move config into place: %w", err)
	}
	return nil
}
