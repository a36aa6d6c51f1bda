package generator

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTunnelNameLength is the longest phase1-interface name FortiOS accepts.
const MaxTunnelNameLength = 35

// ErrMissingField is wrapped by MissingFieldsError.
var ErrMissingField = errors.New("required field missing")

// FormValues is the raw, editable set of values collected from a form,
// a file, the environment or command-line flags.
//
// The `tui` tag drives the interactive form (see internal/tui.AutoForm);
// its properties are separated by semicolons.
type FormValues struct {
	HealthCheckIP      string `json:"healthCheckIp" yaml:"health_check_ip" hcl:"health_check_ip,optional" tui:"group=Loopbacks & BGP;title=Health Check Loopback IP;desc=Example: 10.234.250.30/32. SPA health-check loopback interface.;placeholder=10.234.250.30/32;validate=required"`
	BGPLoopbackIP      string `json:"bgpLoopbackIp" yaml:"bgp_loopback_ip" hcl:"bgp_loopback_ip,optional" tui:"group=Loopbacks & BGP;title=BGP Loopback / Peer IP;desc=Example: 10.233.250.242/32. Used for SASE-BGP loopback, location-id, router-id.;placeholder=10.233.250.242/32;validate=required"`
	BGPNeighborRange   string `json:"bgpNeighborRange" yaml:"bgp_neighbor_range" hcl:"bgp_neighbor_range,optional" tui:"group=Loopbacks & BGP;title=BGP Neighbor-Range Prefix;desc=Example: 10.233.250.0/28. Applied to config neighbor-range.;placeholder=10.233.250.0/28;validate=required"`
	BGPAS              string `json:"bgpAs" yaml:"bgp_as" hcl:"bgp_as,optional" tui:"group=Loopbacks & BGP;title=Local BGP AS;desc=Example: 65001. Applied to router bgp and neighbor group remote-as.;placeholder=65001;validate=required"`
	BGPLoopbackSummary string `json:"bgpLoopbackSummary" yaml:"bgp_loopback_summary" hcl:"bgp_loopback_summary,optional" tui:"group=Loopbacks & BGP;title=BGP Loopback Summary Subnet;desc=Example: 10.233.250.0 255.255.255.0. Added to config network with LOCAL_REGION route-map.;placeholder=10.233.250.0 255.255.255.0;validate=required"`
	InternalNetworks   string `json:"internalNetworks" yaml:"internal_networks" hcl:"internal_networks,optional" tui:"group=Internal Networks;title=Internal Network(s) to Advertise;desc=One prefix per line.;placeholder=10.132.10.0 255.255.252.0;type=text;validate=required"`
	IPsecPSK           string `json:"ipsecPsk" yaml:"ipsec_psk" hcl:"ipsec_psk,optional" tui:"group=IPsec & SPA;title=IPsec Preshared Key;desc=Shared across both tunnels. Leave blank to generate one.;placeholder=Generate or paste secure key;type=secret"`
	WANInterface       string `json:"wanInterface" yaml:"wan_interface" hcl:"wan_interface,optional" tui:"group=IPsec & SPA;title=WAN Interface;desc=Default: port1. Applied to both IPsec phase1 interfaces.;placeholder=port1"`
	Tunnel1Name        string `json:"tunnel1Name" yaml:"tunnel1_name" hcl:"tunnel1_name,optional" tui:"group=IPsec & SPA;title=Tunnel 1 Name;desc=Limited to 35 characters.;placeholder=RUH-DC-01;limit=35"`
	Tunnel2Name        string `json:"tunnel2Name" yaml:"tunnel2_name" hcl:"tunnel2_name,optional" tui:"group=IPsec & SPA;title=Tunnel 2 Name;desc=Limited to 35 characters.;placeholder=RUH-DC-02;limit=35"`
	InternalInterface  string `json:"internalInterface" yaml:"internal_interface" hcl:"internal_interface,optional" tui:"group=Internal Networks;title=Internal Interface Name;desc=Destination interface for SASE-to-internal policy.;placeholder=port2"`
	InternalObjects    string `json:"internalNetworkObjects" yaml:"internal_network_objects" hcl:"internal_network_objects,optional" tui:"group=Internal Networks;title=Internal Network Object(s);desc=Use 'all' or a list of address objects.;placeholder=all"`
	AggregateInterface string `json:"aggregateInterface" yaml:"aggregate_interface" hcl:"aggregate_interface,optional" tui:"group=Internal Networks;title=SPA Tunnel Aggregate Interface;desc=Interface used as source for policies (e.g. SASE-TUNNEL).;placeholder=SASE-TUNNEL"`
}

// Field describes one entry of FormValues.
type Field struct {
	Key      string // JSON key, also used in error reports
	Name     string // snake_case name used by HCL and YAML
	Env      string // environment override
	Required bool
	Default  string

	ref func(*FormValues) *string
}

// Get returns the field value from v.
func (f Field) Get(v *FormValues) string {
	return *f.ref(v)
}

// Set stores s into the field of v.
func (f Field) Set(v *FormValues, s string) {
	*f.ref(v) = s
}

func field(key, name string, required bool, def string, ref func(*FormValues) *string) Field {
	return Field{
		Key:      key,
		Name:     name,
		Env:      "SPAGEN_" + strings.ToUpper(name),
		Required: required,
		Default:  def,
		ref:      ref,
	}
}

// Fields lists every form field in declaration order.
var Fields = []Field{
	field("healthCheckIp", "health_check_ip", true, "", func(v *FormValues) *string { return &v.HealthCheckIP }),
	field("bgpLoopbackIp", "bgp_loopback_ip", true, "", func(v *FormValues) *string { return &v.BGPLoopbackIP }),
	field("bgpNeighborRange", "bgp_neighbor_range", true, "", func(v *FormValues) *string { return &v.BGPNeighborRange }),
	field("bgpAs", "bgp_as", true, "", func(v *FormValues) *string { return &v.BGPAS }),
	field("bgpLoopbackSummary", "bgp_loopback_summary", true, "", func(v *FormValues) *string { return &v.BGPLoopbackSummary }),
	field("internalNetworks", "internal_networks", true, "", func(v *FormValues) *string { return &v.InternalNetworks }),
	field("ipsecPsk", "ipsec_psk", true, "", func(v *FormValues) *string { return &v.IPsecPSK }),
	field("wanInterface", "wan_interface", false, "port1", func(v *FormValues) *string { return &v.WANInterface }),
	field("tunnel1Name", "tunnel1_name", false, "RUH-DC-01", func(v *FormValues) *string { return &v.Tunnel1Name }),
	field("tunnel2Name", "tunnel2_name", false, "RUH-DC-02", func(v *FormValues) *string { return &v.Tunnel2Name }),
	field("internalInterface", "internal_interface", false, "port2", func(v *FormValues) *string { return &v.InternalInterface }),
	field("internalNetworkObjects", "internal_network_objects", false, "all", func(v *FormValues) *string { return &v.InternalObjects }),
	field("aggregateInterface", "aggregate_interface", false, "SASE-TUNNEL", func(v *FormValues) *string { return &v.AggregateInterface }),
}

// LookupField finds a field by JSON key or snake_case name.
func LookupField(name string) (Field, bool) {
	for _, f := range Fields {
		if f.Key == name || f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// DefaultValues returns a FormValues with every optional field at its default.
func DefaultValues() FormValues {
	var v FormValues
	for _, f := range Fields {
		f.Set(&v, f.Default)
	}
	return v
}

// WithDefaults returns a copy of v where blank optional fields take their
// default value.
func (v FormValues) WithDefaults() FormValues {
	out := v
	for _, f := range Fields {
		if f.Required || f.Default == "" {
			continue
		}
		if strings.TrimSpace(f.Get(&out)) == "" {
			f.Set(&out, f.Default)
		}
	}
	return out
}

// Merge returns a copy of v with every non-empty field of other applied.
func (v FormValues) Merge(other FormValues) FormValues {
	out := v
	for _, f := range Fields {
		if s := f.Get(&other); s != "" {
			f.Set(&out, s)
		}
	}
	return out
}

// Missing returns the keys of required fields that are blank, in the fixed
// required-field order.
func (v FormValues) Missing() []string {
	var missing []string
	for _, f := range Fields {
		if f.Required && strings.TrimSpace(f.Get(&v)) == "" {
			missing = append(missing, f.Key)
		}
	}
	return missing
}

// MissingFieldsError reports required fields left blank.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Unwrap() error {
	return ErrMissingField
}

// FieldBag is a validated, immutable set of values. The only way to build
// one is FormValues.Validate.
type FieldBag struct {
	v FormValues
}

// Validate checks that every required field is present, applies defaults
// and truncates the tunnel names.
func (v FormValues) Validate() (FieldBag, error) {
	if missing := v.Missing(); len(missing) > 0 {
		return FieldBag{}, &MissingFieldsError{Fields: missing}
	}
	out := v.WithDefaults()
	out.Tunnel1Name = TruncateName(out.Tunnel1Name, MaxTunnelNameLength)
	out.Tunnel2Name = TruncateName(out.Tunnel2Name, MaxTunnelNameLength)
	return FieldBag{v: out}, nil
}

// Values returns a copy of the validated values.
func (b FieldBag) Values() FormValues {
	return b.v
}

// TruncateName cuts s to at most max characters.
func TruncateName(s string, max int) string {
	if max < 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
