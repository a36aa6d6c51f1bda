package generator

import "strings"

// Block IDs in render order.
const (
	BlockInterfaces = "interfaces"
	BlockTunnel1    = "tunnel1"
	BlockTunnel2    = "tunnel2"
	BlockBGP        = "bgp"
	BlockPolicies   = "policies"
)

// BlockIDs lists the block IDs in the order Render emits them.
var BlockIDs = []string{BlockInterfaces, BlockTunnel1, BlockTunnel2, BlockBGP, BlockPolicies}

// BlockSeparator joins block contents in the full document.
const BlockSeparator = "\n\n"

// Block is one titled section of rendered CLI.
type Block struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// Document is the result of a render: the blocks in fixed order and their
// concatenation.
type Document struct {
	Blocks     []Block `json:"sections"`
	FullConfig string  `json:"fullConfig"`
}

// Block returns the block with the given ID.
func (d Document) Block(id string) (Block, bool) {
	for _, b := range d.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return Block{}, false
}

// Render turns a validated field bag into the FortiOS CLI document.
// It has no side effects and the same bag always yields the same bytes.
func Render(bag FieldBag) Document {
	v := bag.v
	bareLoopback := BareAddress(v.BGPLoopbackIP)

	tunnel := func(name string) string {
		return TunnelBlock(TunnelParams{
			Name:         name,
			WANInterface: v.WANInterface,
			ExchangeIP:   bareLoopback,
			PSK:          v.IPsecPSK,
		})
	}

	blocks := []Block{
		{
			ID:          BlockInterfaces,
			Title:       "Interfaces & System Settings",
			Description: "Create loopback interfaces and set system identifiers for FortiSASE SPA.",
			Content:     InterfacesBlock(v.BGPLoopbackIP, strings.TrimSpace(v.HealthCheckIP)),
		},
		{
			ID:          BlockTunnel1,
			Title:       v.Tunnel1Name + " Tunnel",
			Description: "Primary auto-discovery IPsec tunnel parameters for SPA connectivity.",
			Content:     tunnel(v.Tunnel1Name),
		},
		{
			ID:          BlockTunnel2,
			Title:       v.Tunnel2Name + " Tunnel",
			Description: "Secondary auto-discovery IPsec tunnel parameters for redundancy.",
			Content:     tunnel(v.Tunnel2Name),
		},
		{
			ID:          BlockBGP,
			Title:       "BGP Configuration",
			Description: "Neighbor group, dynamic range, and networks for FortiSASE peering.",
			Content: RoutingBlock(RoutingParams{
				AS:            v.BGPAS,
				RouterID:      bareLoopback,
				NeighborRange: v.BGPNeighborRange,
				Summary:       v.BGPLoopbackSummary,
				Networks:      SplitRoutes(v.InternalNetworks),
			}),
		},
		{
			ID:          BlockPolicies,
			Title:       "Security Policies",
			Description: "Baseline policies for health checks, BGP peering, and internal access.",
			Content: PolicyBlock(PolicyParams{
				AggregateInterface: v.AggregateInterface,
				InternalInterface:  v.InternalInterface,
				InternalObjects:    v.InternalObjects,
			}),
		},
	}

	return Document{
		Blocks:     blocks,
		FullConfig: Assemble(blocks),
	}
}

// Assemble joins block contents with one blank line between them.
func Assemble(blocks []Block) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = b.Content
	}
	return strings.Join(parts, BlockSeparator)
}

// Generate validates v and renders it.
func Generate(v FormValues) (Document, error) {
	bag, err := v.Validate()
	if err != nil {
		return Document{}, err
	}
	return Render(bag), nil
}

// StatementCount returns how many BGP network statements v renders.
func StatementCount(v FormValues) int {
	return len(NetworkStatements(v.BGPLoopbackSummary, SplitRoutes(v.InternalNetworks)))
}
