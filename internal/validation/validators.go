// Package validation lints form values for problems FortiOS would reject
// when the rendered script is pasted. It only looks at names and the
// preshared key; address syntax is the operator's responsibility.
//
// Lint results are advisory: rendering never depends on them.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"grimm.is/spagen/internal/generator"
)

// FortiOS length limits.
const (
	MaxInterfaceNameLength = 15
	MaxObjectNameLength    = 79
	MaxPSKLength           = 128
)

var (
	// FortiOS interface names: alphanumeric, dash, underscore, dot.
	interfaceNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

	// Characters that break a quoted CLI value or split the command.
	dangerousChars = []string{"\"", "\n", "\r"}
)

// ValidateInterfaceName validates a FortiGate interface name.
func ValidateInterfaceName(name string) error {
	if name == "" {
		return fmt.Errorf("interface name cannot be empty")
	}

	if utf8.RuneCountInString(name) > MaxInterfaceNameLength {
		return fmt.Errorf("interface name too long (max %d characters): %s", MaxInterfaceNameLength, name)
	}

	if !interfaceNameRegex.MatchString(name) {
		return fmt.Errorf("invalid interface name: %s (must be alphanumeric with -_.)", name)
	}

	return nil
}

// ValidateObjectName validates a quoted object name such as a tunnel or an
// address-object reference.
func ValidateObjectName(name string, max int) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if utf8.RuneCountInString(name) > max {
		return fmt.Errorf("name too long (max %d characters)", max)
	}

	if err := checkDangerous(name); err != nil {
		return err
	}

	return nil
}

// ValidatePSK validates the IPsec preshared key.
func ValidatePSK(psk string) error {
	if psk == "" {
		return fmt.Errorf("preshared key cannot be empty")
	}
	if len(psk) > MaxPSKLength {
		return fmt.Errorf("preshared key too long (max %d characters)", MaxPSKLength)
	}
	return checkDangerous(psk)
}

func checkDangerous(s string) error {
	for _, char := range dangerousChars {
		if strings.Contains(s, char) {
			return fmt.Errorf("contains character that breaks the CLI: %q", char)
		}
	}
	return nil
}

// Warning is one lint finding.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return w.Field + ": " + w.Message
}

// Lint checks the values after defaults are applied. Blank required fields
// are reported by FormValues.Validate, not here.
func Lint(v generator.FormValues) []Warning {
	v = v.WithDefaults()
	var warnings []Warning
	add := func(field string, err error) {
		if err != nil {
			warnings = append(warnings, Warning{Field: field, Message: err.Error()})
		}
	}

	add("wanInterface", ValidateInterfaceName(v.WANInterface))
	add("internalInterface", ValidateInterfaceName(v.InternalInterface))
	add("aggregateInterface", ValidateInterfaceName(v.AggregateInterface))

	add("tunnel1Name", ValidateObjectName(v.Tunnel1Name, generator.MaxTunnelNameLength))
	add("tunnel2Name", ValidateObjectName(v.Tunnel2Name, generator.MaxTunnelNameLength))
	if v.Tunnel1Name == v.Tunnel2Name {
		warnings = append(warnings, Warning{Field: "tunnel2Name", Message: "both tunnels use the same name"})
	}
	add("internalNetworkObjects", ValidateObjectName(v.InternalObjects, MaxObjectNameLength))

	if v.IPsecPSK != "" {
		add("ipsecPsk", ValidatePSK(v.IPsecPSK))
	}

	return warnings
}
