package costmodel

// EnsembleShortlist returns the two-price-tier candidate list a search
// restricts itself to under common.Ensemble mode: the cheapest and
// second-cheapest instance type by hourly price, per SPEC_FULL's
// resolution of the reference's t in {0,1} branch restriction — the
// original's t index selected among a pre-sorted price ladder, so "0,1"
// names the two cheapest tiers rather than a fixed pair of type ids.
func (e *Evaluator) EnsembleShortlist(numTypes int) []int {
	if numTypes == 0 {
		return nil
	}
	cheapest, second := 0, -1
	for typ := 1; typ < numTypes; typ++ {
		if e.Pricing.PricePerHour(typ) < e.Pricing.PricePerHour(cheapest) {
			second = cheapest
			cheapest = typ
		} else if second == -1 || e.Pricing.PricePerHour(typ) < e.Pricing.PricePerHour(second) {
			second = typ
		}
	}
	if second == -1 {
		return []int{cheapest}
	}
	return []int{cheapest, second}
}
