// Package config loads generator input values from files and the
// environment, and writes starter input files.
//
// # Overview
//
// Input files hold the same fields as the interactive form. Three formats
// are accepted, chosen by file extension:
//   - .hcl: top-level attributes in snake_case (preferred)
//   - .json: camelCase keys, as produced by GET /api/defaults
//   - .yaml/.yml: snake_case keys
//
// Files with any other extension are tried as HCL, then JSON, then YAML.
//
// # Example
//
//	health_check_ip      = "10.234.250.30/32"
//	bgp_loopback_ip      = "10.233.250.242/32"
//	bgp_neighbor_range   = "10.233.250.0/28"
//	bgp_as               = "65001"
//	bgp_loopback_summary = "10.233.250.0 255.255.255.0"
//	internal_networks    = <<EOT
//	10.132.10.0 255.255.252.0
//	10.140.0.0 255.255.255.0
//	EOT
//
// # Environment
//
// Every field can be overridden with SPAGEN_<NAME>, for example
// SPAGEN_IPSEC_PSK, so secrets do not have to live in the file.
package config
