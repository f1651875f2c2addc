// Package scenario implements the financial engine that projects yearly
// production, revenue, cost, and cash flow for one electricity-supply model
// of a rooftop PV installation and derives NPV and payback metrics from the
// projection. The engine is pure: it never mutates its input, has no side
// effects, and two runs with the same input produce identical results.
package scenario

import (
	"math"

	"github.com/sonnenplan/solar-scenario/pkg/mathutil"
)

// Input holds all parameters for a single scenario run. Monetary fields are
// EUR or EUR/kWh and all rates are fractional; conversion from the ct/kWh
// and percent units used in configuration happens in pkg/adapters before
// the engine is invoked.
type Input struct {
	// Label identifies the supply model, e.g. "GGV" or "Mieterstrom".
	Label string

	CapacityKwp   float64 // installed capacity
	SpecificYield float64 // annual yield, kWh per kWp

	// SelfConsumptionShare is the fraction of production consumed on site.
	// GridShareOverride, when set, wins: the self-consumption share becomes
	// 1 - override and the raw share is discarded.
	SelfConsumptionShare float64
	GridShareOverride    *float64

	GridPrice          float64 // local reference tariff, EUR/kWh
	FeedInPrice        float64 // feed-in remuneration, EUR/kWh
	DirectMarketingFee float64 // deducted from feed-in remuneration, EUR/kWh
	InternalPrice      float64 // on-site sale price, EUR/kWh
	PriceCap           float64 // regulatory ceiling for the internal price, EUR/kWh
	Premium            float64 // subsidy premium on self-consumed energy, EUR/kWh

	Capex              float64 // one-time investment, EUR
	OpexPercentOfCapex float64 // annual, fraction of capex
	OpexFixed          float64 // annual, EUR

	LifetimeYears   int
	DegradationRate float64
	InflationRate   float64
	PriceGrowthRate float64
	DiscountRate    float64

	// Subsidized selects whether the price cap and premium apply
	// (Mieterstrom model).
	Subsidized bool
}

// YearRecord is one row of the cash-flow table. Year 0 is the investment
// year: production is zero and capex is booked there and nowhere else.
type YearRecord struct {
	Year            int
	Production      float64 // kWh
	SelfConsumed    float64 // kWh
	Exported        float64 // kWh
	InternalRevenue float64 // EUR
	ExportRevenue   float64 // EUR
	PremiumRevenue  float64 // EUR
	Opex            float64 // EUR
	Capex           float64 // EUR
	TotalRevenue    float64 // EUR
	NetCashFlow     float64 // EUR
}

// Result is the derived output of one engine run.
type Result struct {
	Label string
	Years []YearRecord

	// NPV is the discounted sum of net cash flows over all years.
	NPV float64

	// PaybackYear is the first year whose cumulative undiscounted net cash
	// flow is non-negative; nil when payback is never reached within the
	// lifetime.
	PaybackYear *int

	// Note carries the storage assumption the inputs were built under.
	Note string
}

// Run computes the full cash-flow table and summary metrics for one
// scenario. It validates the input first and returns an
// *InvalidParameterError without any partial result when a parameter is out
// of range.
func Run(input Input) (Result, error) {
	if err := validate(input); err != nil {
		return Result{}, err
	}

	// Upstream input should already be within [0,1]; the clamp is part of
	// the documented contract, not dead code.
	scShare := mathutil.Clamp01(input.SelfConsumptionShare)
	if input.GridShareOverride != nil {
		scShare = 1 - *input.GridShareOverride
	}
	gridShare := 1 - scShare

	internalPrice := input.InternalPrice
	if input.Subsidized {
		internalPrice = mathutil.Min(internalPrice, input.PriceCap)
	}
	exportPrice := mathutil.Max(input.FeedInPrice-input.DirectMarketingFee, 0)

	annualProduction := input.CapacityKwp * input.SpecificYield
	opexBase := input.Capex*input.OpexPercentOfCapex + input.OpexFixed

	years := make([]YearRecord, 0, input.LifetimeYears+1)
	for year := 0; year <= input.LifetimeYears; year++ {
		// Degradation applies after year 0 (commissioning); year 1 is the
		// undegraded baseline.
		var production float64
		if year > 0 {
			production = annualProduction * math.Pow(1-input.DegradationRate, float64(year-1))
		}
		selfConsumed := production * scShare
		exported := production * gridShare

		priceFactor := escalation(input.PriceGrowthRate, year)
		costFactor := escalation(input.InflationRate, year)

		internalRevenue := selfConsumed * internalPrice * priceFactor
		exportRevenue := exported * exportPrice * priceFactor
		// The premium is cost-side: it escalates with inflation, not with
		// energy price growth, and applies to self-consumed volume only.
		var premiumRevenue float64
		if input.Subsidized {
			premiumRevenue = selfConsumed * input.Premium * costFactor
		}
		totalRevenue := internalRevenue + exportRevenue + premiumRevenue

		opex := opexBase * costFactor
		var capex float64
		if year == 0 {
			capex = input.Capex
		}

		years = append(years, YearRecord{
			Year:            year,
			Production:      production,
			SelfConsumed:    selfConsumed,
			Exported:        exported,
			InternalRevenue: internalRevenue,
			ExportRevenue:   exportRevenue,
			PremiumRevenue:  premiumRevenue,
			Opex:            opex,
			Capex:           capex,
			TotalRevenue:    totalRevenue,
			NetCashFlow:     totalRevenue - opex - capex,
		})
	}

	npv, payback := Summarize(years, input.DiscountRate)

	return Result{
		Label:       input.Label,
		Years:       years,
		NPV:         npv,
		PaybackYear: payback,
	}, nil
}

// Summarize derives NPV and the simple payback year from a cash-flow table.
// NPV discounts each year's net cash flow by (1+discountRate)^year; payback
// accumulates the undiscounted flows and reports the first year the running
// sum turns non-negative, or nil when it never does. The two intentionally
// use different cash-flow bases (simple payback convention).
func Summarize(years []YearRecord, discountRate float64) (float64, *int) {
	npv := 0.0
	cumulative := 0.0
	var payback *int
	for _, record := range years {
		npv += record.NetCashFlow / math.Pow(1+discountRate, float64(record.Year))
		cumulative += record.NetCashFlow
		if payback == nil && cumulative >= 0 {
			year := record.Year
			payback = &year
		}
	}
	return npv, payback
}

// escalation returns the compounding factor for a year-over-year rate; year
// 1 is the un-escalated baseline, so the exponent is max(0, year-1).
func escalation(rate float64, year int) float64 {
	exponent := year - 1
	if exponent < 0 {
		exponent = 0
	}
	return math.Pow(1+rate, float64(exponent))
}
