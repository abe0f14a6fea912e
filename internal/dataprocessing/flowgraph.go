package dataprocessing

import (
	"github.com/shopspring/decimal"

	"stpflow/pkg/contracts/domain"
)

// Fixed stage fractions of the monthly inlet volume. They approximate the
// plant rather than meter it, so links leaving a stage need not sum exactly
// to the link entering it.
var (
	PrimaryPassFraction   = decimal.RequireFromString("0.95")
	PrimaryLossFraction   = decimal.RequireFromString("0.05")
	SecondaryPassFraction = decimal.RequireFromString("0.90")
	SecondaryLossFraction = decimal.RequireFromString("0.05")
	TertiaryLossFraction  = decimal.RequireFromString("0.05")
)

var flowNodes = []domain.FlowNode{
	{ID: domain.NodeInflow, Name: "Inflow"},
	{ID: domain.NodeTankerDischarge, Name: "Tanker Discharge"},
	{ID: domain.NodeDirectSewage, Name: "Direct Sewage"},
	{ID: domain.NodePrimaryTreatment, Name: "Primary Treatment"},
	{ID: domain.NodeSecondaryTreatment, Name: "Secondary Treatment"},
	{ID: domain.NodeTertiaryTreatment, Name: "Tertiary Treatment"},
	{ID: domain.NodeTSEOutput, Name: "TSE Output"},
	{ID: domain.NodeLosses, Name: "Losses"},
}

// FlowNodes returns a copy of the fixed plant topology.
func FlowNodes() []domain.FlowNode {
	out := make([]domain.FlowNode, len(flowNodes))
	copy(out, flowNodes)
	return out
}

// DeriveFlowGraph maps a monthly aggregate onto the fixed flow topology.
// The tanker/direct to inflow links and the TSE output link carry measured
// volumes; the stage links are fixed fractions of the inlet volume rounded to
// whole m3. A nil aggregate yields the same eight nodes and nine links with
// every value 0.
func DeriveFlowGraph(agg *domain.MonthlyAggregate) domain.FlowGraph {
	var a domain.MonthlyAggregate
	if agg != nil {
		a = *agg
	}
	inlet := a.TotalInletVolume

	return domain.FlowGraph{
		Nodes: FlowNodes(),
		Links: []domain.FlowLink{
			{Source: domain.NodeTankerDischarge, Target: domain.NodeInflow, Value: a.TotalTankerVolume},
			{Source: domain.NodeDirectSewage, Target: domain.NodeInflow, Value: a.TotalDirectSewageVolume},
			{Source: domain.NodeInflow, Target: domain.NodePrimaryTreatment, Value: inlet},
			{Source: domain.NodePrimaryTreatment, Target: domain.NodeSecondaryTreatment, Value: fractionOf(inlet, PrimaryPassFraction)},
			{Source: domain.NodePrimaryTreatment, Target: domain.NodeLosses, Value: fractionOf(inlet, PrimaryLossFraction)},
			{Source: domain.NodeSecondaryTreatment, Target: domain.NodeTertiaryTreatment, Value: fractionOf(inlet, SecondaryPassFraction)},
			{Source: domain.NodeSecondaryTreatment, Target: domain.NodeLosses, Value: fractionOf(inlet, SecondaryLossFraction)},
			{Source: domain.NodeTertiaryTreatment, Target: domain.NodeTSEOutput, Value: a.TotalOutputVolume},
			{Source: domain.NodeTertiaryTreatment, Target: domain.NodeLosses, Value: fractionOf(inlet, TertiaryLossFraction)},
		},
	}
}

func fractionOf(volume int64, fraction decimal.Decimal) int64 {
	return decimal.NewFromInt(volume).Mul(fraction).Round(0).IntPart()
}
