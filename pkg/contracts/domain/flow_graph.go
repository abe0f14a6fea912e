package domain

// Process stage node identifiers of the plant flow graph.
const (
	NodeInflow             = "inflow"
	NodeTankerDischarge    = "tanker_discharge"
	NodeDirectSewage       = "direct_sewage"
	NodePrimaryTreatment   = "primary_treatment"
	NodeSecondaryTreatment = "secondary_treatment"
	NodeTertiaryTreatment  = "tertiary_treatment"
	NodeTSEOutput          = "tse_output"
	NodeLosses             = "losses"
)

// FlowNode is one process stage.
type FlowNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FlowLink is a directed volume transfer between two stages, in m3.
type FlowLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Value  int64  `json:"value"`
}

// FlowGraph drives a Sankey-style diagram. It always has the same eight nodes
// and nine links; only the link values change between months.
type FlowGraph struct {
	Nodes []FlowNode `json:"nodes"`
	Links []FlowLink `json:"links"`
}

// Link returns the value of the link from source to target and whether it exists.
func (g FlowGraph) Link(source, target string) (int64, bool) {
	for _, l := range g.Links {
		if l.Source == source && l.Target == target {
			return l.Value, true
		}
	}
	return 0, false
}

// Outgoing sums the values of all links leaving node.
func (g FlowGraph) Outgoing(node string) int64 {
	var total int64
	for _, l := range g.Links {
		if l.Source == node {
			total += l.Value
		}
	}
	return total
}

// Incoming sums the values of all links entering node.
func (g FlowGraph) Incoming(node string) int64 {
	var total int64
	for _, l := range g.Links {
		if l.Target == node {
			total += l.Value
		}
	}
	return total
}
