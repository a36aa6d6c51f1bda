package generator

import (
	"grimm.is/spagen/internal/fortios"
)

// Fixed object names on the FortiGate side.
const (
	LoopbackBGP         = "SASE-BGP"
	LoopbackHealthCheck = "SASE-HC"
	RouteMapLocalRegion = "LOCAL_REGION"
	NeighborGroupSASE   = "FSASE"
)

const (
	phase1Proposals = "aes128-sha256 aes256-sha256 aes128gcm-prfsha256 aes256gcm-prfsha384 chacha20poly1305-prfsha256"
	phase2Proposals = "aes128-sha1 aes256-sha1 aes128-sha256 aes256-sha256 aes128gcm aes256gcm chacha20poly1305"
)

// InterfacesBlock renders the two loopbacks and the system location-id.
// bgpLoopback is written verbatim on the interface; its bare address becomes
// the location-id.
func InterfacesBlock(bgpLoopback, healthCheck string) string {
	s := fortios.NewScript()
	loopback(s, LoopbackBGP, bgpLoopback)
	s.Blank()
	loopback(s, LoopbackHealthCheck, healthCheck)
	s.Blank()
	s.Config("system settings")
	s.Set("location-id", BareAddress(bgpLoopback))
	s.End()
	return s.String()
}

func loopback(s *fortios.Script, name, ip string) {
	s.Config("system interface")
	s.Edit(name)
	s.SetQuoted("vdom", "root")
	s.Set("type", "loopback")
	s.Set("ip", ip)
	s.Set("allowaccess", "ping")
	s.Next()
	s.End()
}

// TunnelParams holds the inputs of one auto-discovery tunnel.
type TunnelParams struct {
	Name         string
	WANInterface string
	ExchangeIP   string // bare BGP loopback address
	PSK          string
}

// TunnelBlock renders the phase1 and phase2 interfaces of one tunnel.
func TunnelBlock(p TunnelParams) string {
	s := fortios.NewScript()

	s.Config("vpn ipsec phase1-interface")
	s.Edit(p.Name)
	s.Set("type", "dynamic")
	s.SetQuoted("interface", p.WANInterface)
	s.SetInt("ike-version", 2)
	s.Set("peertype", "any")
	s.Disable("net-device")
	s.Set("proposal", phase1Proposals)
	s.Disable("add-route")
	s.Set("dpd", "on-idle")
	s.Enable("auto-discovery-sender")
	s.Enable("network-overlay")
	s.SetInt("network-id", 1)
	s.SetQuoted("psksecret", p.PSK)
	s.Next()
	s.End()
	s.Blank()

	s.Config("vpn ipsec phase1-interface")
	s.Edit(p.Name)
	s.Set("exchange-ip-addr4", p.ExchangeIP)
	s.Next()
	s.End()
	s.Blank()

	s.Config("vpn ipsec phase2-interface")
	s.Edit(p.Name)
	s.SetQuoted("phase1name", p.Name)
	s.Set("proposal", phase2Proposals)
	s.Enable("keepalive")
	s.Next()
	s.End()

	return s.String()
}

// RoutingParams holds the inputs of the route-map and BGP block.
type RoutingParams struct {
	AS            string
	RouterID      string // bare BGP loopback address
	NeighborRange string
	Summary       string
	Networks      []string
}

// RoutingBlock renders the LOCAL_REGION route-map and the BGP process.
//
// The neighbor group peers with the local AS: spokes act as
// route-reflector clients of the SASE hub.
func RoutingBlock(p RoutingParams) string {
	s := fortios.NewScript()

	s.Config("router route-map")
	s.Edit(RouteMapLocalRegion)
	s.Config("rule")
	s.EditID(1)
	s.SetQuoted("set-community", "no-export")
	s.Next()
	s.End()
	s.Next()
	s.End()
	s.Blank()

	s.Config("router bgp")
	s.Set("as", p.AS)
	s.Set("router-id", p.RouterID)
	s.SetInt("keepalive-timer", 15)
	s.SetInt("holdtime-timer", 45)
	s.Enable("ebgp-multipath")
	s.Enable("ibgp-multipath")
	s.Enable("recursive-next-hop")
	s.Enable("graceful-restart")
	s.Blank()

	s.Config("neighbor-group")
	s.Edit(NeighborGroupSASE)
	s.Enable("soft-reconfiguration")
	s.SetInt("advertisement-interval", 1)
	s.Enable("next-hop-self")
	s.Set("remote-as", p.AS)
	s.SetQuoted("interface", LoopbackBGP)
	s.SetQuoted("update-source", LoopbackBGP)
	s.Enable("route-reflector-client")
	s.Enable("next-hop-self-rr")
	s.Next()
	s.End()
	s.Blank()

	s.Config("neighbor-range")
	s.EditID(1)
	s.Set("prefix", p.NeighborRange)
	s.SetQuoted("neighbor-group", NeighborGroupSASE)
	s.Next()
	s.End()
	s.Blank()

	s.Config("network")
	for _, n := range NetworkStatements(p.Summary, p.Networks) {
		s.EditID(n.ID)
		s.Set("prefix", n.Prefix)
		if n.RouteMap != "" {
			s.SetQuoted("route-map", n.RouteMap)
		}
		s.Next()
	}
	s.End()
	s.End()

	return s.String()
}

// NetworkStatement is one entry of "config network" under router bgp.
type NetworkStatement struct {
	ID       int
	Prefix   string
	RouteMap string
}

// NetworkStatements numbers the summary route 1 (bound to LOCAL_REGION)
// and the internal networks from 2 in order.
func NetworkStatements(summary string, networks []string) []NetworkStatement {
	out := make([]NetworkStatement, 0, len(networks)+1)
	out = append(out, NetworkStatement{ID: 1, Prefix: summary, RouteMap: RouteMapLocalRegion})
	for i, n := range networks {
		out = append(out, NetworkStatement{ID: i + 2, Prefix: n})
	}
	return out
}

// PolicyParams holds the inputs of the firewall policy block.
type PolicyParams struct {
	AggregateInterface string
	InternalInterface  string
	InternalObjects    string
}

type policyRule struct {
	name    string
	dstintf string
	dstaddr string
	service []string
}

// PolicyBlock renders the three baseline policies from the SPA aggregate
// tunnel. Rules use id 0 so FortiOS assigns the next free policy id.
func PolicyBlock(p PolicyParams) string {
	rules := []policyRule{
		{name: "SASE-HC-PING", dstintf: LoopbackHealthCheck, dstaddr: "all", service: []string{"PING"}},
		{name: "SASE-BGP-LOOPBACK", dstintf: LoopbackBGP, dstaddr: "all", service: []string{"PING", "BGP"}},
		{name: "SASE-TO-INTERNAL", dstintf: p.InternalInterface, dstaddr: p.InternalObjects, service: []string{"ALL"}},
	}

	s := fortios.NewScript()
	s.Config("firewall policy")
	for _, r := range rules {
		s.EditID(0)
		s.SetQuoted("name", r.name)
		s.SetQuoted("srcintf", p.AggregateInterface)
		s.SetQuoted("dstintf", r.dstintf)
		s.SetQuoted("srcaddr", "all")
		s.SetQuoted("dstaddr", r.dstaddr)
		s.Set("action", "accept")
		s.SetQuoted("schedule", "always")
		s.SetQuoted("service", r.service...)
		s.Set("logtraffic", "all")
		s.Next()
	}
	s.End()
	return s.String()
}
