package pricing

// Input represents the cost inputs of a single print job. Unit costs and
// quantities are zero when no catalog item is selected.
type Input struct {
	MaterialUnitCost float64
	MaterialQuantity float64
	InkUnitCost      float64
	InkQuantity      float64
	OtherCosts       []float64
	SalePrice        float64
}

// Quote contains the full cost breakdown and the derived profit figures.
type Quote struct {
	MaterialCost float64
	InkCost      float64
	OtherCost    float64
	TotalCost    float64
	Profit       float64
	Margin       float64 // percent of sale price; 0 when sale price is 0
}

// Calculate computes the quote for the given inputs. It is pure: no
// validation, no side effects, and the same inputs always yield the same
// quote. Margin is guarded against division by zero so it never produces
// NaN or Inf.
func Calculate(in Input) Quote {
	materialCost := in.MaterialUnitCost * in.MaterialQuantity
	inkCost := in.InkUnitCost * in.InkQuantity

	otherCost := 0.0
	for _, v := range in.OtherCosts {
		otherCost += v
	}

	totalCost := materialCost + inkCost + otherCost
	profit := in.SalePrice - totalCost

	margin := 0.0
	if in.SalePrice > 0 {
		margin = profit / in.SalePrice * 100
	}

	return Quote{
		MaterialCost: materialCost,
		InkCost:      inkCost,
		OtherCost:    otherCost,
		TotalCost:    totalCost,
		Profit:       profit,
		Margin:       margin,
	}
}
