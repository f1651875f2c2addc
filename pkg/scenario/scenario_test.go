package scenario

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

// baseInput returns a valid input resembling a 99 kWp rooftop plant.
func baseInput() Input {
	return Input{
		Label:                "GGV",
		CapacityKwp:          99,
		SpecificYield:        1000,
		SelfConsumptionShare: 0.35,
		GridPrice:            0.40,
		FeedInPrice:          0.07,
		DirectMarketingFee:   0.004,
		InternalPrice:        0.32,
		PriceCap:             0.36,
		Premium:              0.03,
		Capex:                120000,
		OpexPercentOfCapex:   0.015,
		OpexFixed:            1500,
		LifetimeYears:        20,
		DegradationRate:      0.005,
		InflationRate:        0.02,
		PriceGrowthRate:      0.02,
		DiscountRate:         0.06,
		Subsidized:           false,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestEnergyBalance(t *testing.T) {
	result, err := Run(baseInput())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, record := range result.Years {
		balance := record.SelfConsumed + record.Exported
		if math.Abs(balance-record.Production) > tolerance {
			t.Errorf("year %d: selfConsumed+exported = %.6f, production = %.6f",
				record.Year, balance, record.Production)
		}
	}
}

func TestInvestmentYear(t *testing.T) {
	input := baseInput()
	result, err := Run(input)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	year0 := result.Years[0]
	if year0.Production != 0 {
		t.Errorf("expected zero production at year 0, got %.2f", year0.Production)
	}
	if year0.Capex != input.Capex {
		t.Errorf("expected capex %.2f at year 0, got %.2f", input.Capex, year0.Capex)
	}
	for _, record := range result.Years[1:] {
		if record.Capex != 0 {
			t.Errorf("year %d: expected zero capex, got %.2f", record.Year, record.Capex)
		}
	}

	if len(result.Years) != input.LifetimeYears+1 {
		t.Errorf("expected %d year records, got %d", input.LifetimeYears+1, len(result.Years))
	}
}

func TestDegradationSchedule(t *testing.T) {
	input := baseInput()
	input.DegradationRate = 0.01
	result, err := Run(input)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	undegraded := input.CapacityKwp * input.SpecificYield
	// Year 1 is the undegraded baseline; the first compounding step shows
	// up in year 2.
	if math.Abs(result.Years[1].Production-undegraded) > tolerance {
		t.Errorf("year 1 production = %.4f, expected %.4f", result.Years[1].Production, undegraded)
	}
	expectedYear2 := undegraded * 0.99
	if math.Abs(result.Years[2].Production-expectedYear2) > tolerance {
		t.Errorf("year 2 production = %.4f, expected %.4f", result.Years[2].Production, expectedYear2)
	}
}

func TestPriceEscalation(t *testing.T) {
	input := baseInput()
	input.DegradationRate = 0
	input.PriceGrowthRate = 0.02
	result, err := Run(input)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Two compounding steps from the year-1 baseline.
	year3 := result.Years[3]
	expectedPrice := input.InternalPrice * math.Pow(1.02, 2)
	effectivePrice := year3.InternalRevenue / year3.SelfConsumed
	if math.Abs(effectivePrice-expectedPrice) > tolerance {
		t.Errorf("year 3 internal price = %.6f, expected %.6f", effectivePrice, expectedPrice)
	}

	year1 := result.Years[1]
	basePrice := year1.InternalRevenue / year1.SelfConsumed
	if math.Abs(basePrice-input.InternalPrice) > tolerance {
		t.Errorf("year 1 internal price = %.6f, expected un-escalated %.6f", basePrice, input.InternalPrice)
	}
}

func TestPremiumEscalatesWithInflation(t *testing.T) {
	input := baseInput()
	input.Subsidized = true
	input.InternalPrice = 0.30 // below the cap
	input.DegradationRate = 0
	input.PriceGrowthRate = 0.05 // must not drive the premium
	input.InflationRate = 0.03
	result, err := Run(input)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	year3 := result.Years[3]
	expected := year3.SelfConsumed * input.Premium * math.Pow(1.03, 2)
	if math.Abs(year3.PremiumRevenue-expected) > tolerance {
		t.Errorf("year 3 premium revenue = %.4f, expected %.4f", year3.PremiumRevenue, expected)
	}
}

func TestPriceCapEnforcement(t *testing.T) {
	input := baseInput()
	input.Subsidized = true
	input.InternalPrice = 0.40 // above the 0.36 cap
	input.DegradationRate = 0
	input.PriceGrowthRate = 0
	result, err := Run(input)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	year1 := result.Years[1]
	effectivePrice := year1.InternalRevenue / year1.SelfConsumed
	if math.Abs(effectivePrice-input.PriceCap) > tolerance {
		t.Errorf("effective internal price = %.4f, expected cap %.4f", effectivePrice, input.PriceCap)
	}
}

func TestCapIgnoredWithoutSubsidy(t *testing.T) {
	input := baseInput()
	input.Subsidized = false
	input.InternalPrice = 0.40 // above the cap, but GGV is not capped
	input.DegradationRate = 0
	input.PriceGrowthRate = 0
	result, err := Run(input)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	year1 := result.Years[1]
	effectivePrice := year1.InternalRevenue / year1.SelfConsumed
	if math.Abs(effectivePrice-input.InternalPrice) > tolerance {
		t.Errorf("effective internal price = %.4f, expected raw %.4f", effectivePrice, input.InternalPrice)
	}
	for _, record := range result.Years {
		if record.PremiumRevenue != 0 {
			t.Errorf("year %d: expected zero premium without subsidy, got %.4f", record.Year, record.PremiumRevenue)
		}
	}
}

func TestOverridePrecedence(t *testing.T) {
	input := baseInput()
	input.SelfConsumptionShare = 0.20 // discarded when the override is set
	input.GridShareOverride = floatPtr(0.65)
	result, err := Run(input)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	year1 := result.Years[1]
	expectedSelfConsumed := year1.Production * 0.35
	if math.Abs(year1.SelfConsumed-expectedSelfConsumed) > tolerance {
		t.Errorf("selfConsumed = %.2f, expected %.2f (1 - override)", year1.SelfConsumed, expectedSelfConsumed)
	}
	expectedExported := year1.Production * 0.65
	if math.Abs(year1.Exported-expectedExported) > tolerance {
		t.Errorf("exported = %.2f, expected %.2f", year1.Exported, expectedExported)
	}
}

func TestSelfConsumptionShareClamped(t *testing.T) {
	input := baseInput()
	input.SelfConsumptionShare = 1.5
	result, err := Run(input)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	year1 := result.Years[1]
	if math.Abs(year1.SelfConsumed-year1.Production) > tolerance {
		t.Errorf("expected share clamped to 1, selfConsumed = %.2f, production = %.2f",
			year1.SelfConsumed, year1.Production)
	}
	if year1.Exported > tolerance {
		t.Errorf("expected zero export with clamped share, got %.2f", year1.Exported)
	}
}

func TestExportPriceFloor(t *testing.T) {
	input := baseInput()
	input.FeedInPrice = 0.05
	input.DirectMarketingFee = 0.08 // fee exceeds the remuneration
	result, err := Run(input)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, record := range result.Years {
		if record.ExportRevenue != 0 {
			t.Errorf("year %d: expected zero export revenue, got %.4f", record.Year, record.ExportRevenue)
		}
	}
}

func TestDiscountRateMonotonicity(t *testing.T) {
	// Capex-front-loaded profile: higher discount rates must strictly
	// decrease NPV.
	rates := []float64{0.0, 0.03, 0.06, 0.09, 0.12}
	var previous float64
	for i, rate := range rates {
		input := baseInput()
		input.DiscountRate = rate
		result, err := Run(input)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if i > 0 && result.NPV >= previous {
			t.Errorf("NPV at discount rate %.2f = %.2f, expected below %.2f", rate, result.NPV, previous)
		}
		previous = result.NPV
	}
}

func TestSummarizePayback(t *testing.T) {
	records := []YearRecord{
		{Year: 0, NetCashFlow: -1000},
		{Year: 1, NetCashFlow: 400},
		{Year: 2, NetCashFlow: 400},
		{Year: 3, NetCashFlow: 400},
	}

	_, payback := Summarize(records, 0.06)
	if payback == nil {
		t.Fatal("expected payback year, got none")
	}
	// Cumulative: -1000, -600, -200, 200; first non-negative at year 3.
	if *payback != 3 {
		t.Errorf("payback year = %d, expected 3", *payback)
	}
}

func TestSummarizeNoPayback(t *testing.T) {
	records := []YearRecord{
		{Year: 0, NetCashFlow: -1000},
		{Year: 1, NetCashFlow: 100},
		{Year: 2, NetCashFlow: 100},
	}

	_, payback := Summarize(records, 0.06)
	if payback != nil {
		t.Errorf("expected no payback within lifetime, got year %d", *payback)
	}
}

func TestSummarizeNPVReference(t *testing.T) {
	records := []YearRecord{
		{Year: 0, NetCashFlow: -1000},
		{Year: 1, NetCashFlow: 1100},
	}

	npv, _ := Summarize(records, 0.10)
	// -1000 + 1100/1.10 = 0
	if math.Abs(npv) > tolerance {
		t.Errorf("NPV = %.6f, expected 0", npv)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	input := baseInput()
	first, err := Run(input)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	second, err := Run(input)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if first.NPV != second.NPV {
		t.Errorf("NPV differs between runs: %.6f vs %.6f", first.NPV, second.NPV)
	}
	for i := range first.Years {
		if first.Years[i] != second.Years[i] {
			t.Errorf("year %d differs between runs", i)
		}
	}
}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Input)
		field  string
	}{
		{
			name:   "zero capacity",
			modify: func(in *Input) { in.CapacityKwp = 0 },
			field:  "capacityKwp",
		},
		{
			name:   "negative capacity",
			modify: func(in *Input) { in.CapacityKwp = -5 },
			field:  "capacityKwp",
		},
		{
			name:   "zero yield",
			modify: func(in *Input) { in.SpecificYield = 0 },
			field:  "specificYield",
		},
		{
			name:   "lifetime below one year",
			modify: func(in *Input) { in.LifetimeYears = 0 },
			field:  "lifetimeYears",
		},
		{
			name:   "negative degradation",
			modify: func(in *Input) { in.DegradationRate = -0.01 },
			field:  "degradationRate",
		},
		{
			name:   "negative discount rate",
			modify: func(in *Input) { in.DiscountRate = -0.02 },
			field:  "discountRate",
		},
		{
			name:   "negative feed-in price",
			modify: func(in *Input) { in.FeedInPrice = -0.01 },
			field:  "feedInPrice",
		},
		{
			name:   "negative capex",
			modify: func(in *Input) { in.Capex = -1 },
			field:  "capex",
		},
		{
			name:   "override above one",
			modify: func(in *Input) { in.GridShareOverride = floatPtr(1.2) },
			field:  "gridShareOverride",
		},
		{
			name:   "override below zero",
			modify: func(in *Input) { in.GridShareOverride = floatPtr(-0.1) },
			field:  "gridShareOverride",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := baseInput()
			tt.modify(&input)

			_, err := Run(input)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			var invalidErr *InvalidParameterError
			if !errors.As(err, &invalidErr) {
				t.Fatalf("expected *InvalidParameterError, got %T", err)
			}
			if invalidErr.Field != tt.field {
				t.Errorf("error field = %s, expected %s", invalidErr.Field, tt.field)
			}
		})
	}
}
