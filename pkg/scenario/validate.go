package scenario

import "fmt"

// InvalidParameterError reports a scenario input that is out of range or
// structurally invalid. Validation happens before any computation; the
// engine never returns a partial result.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Field, e.Value, e.Reason)
}

func invalid(field string, value float64, reason string) error {
	return &InvalidParameterError{Field: field, Value: value, Reason: reason}
}

func validate(input Input) error {
	if input.CapacityKwp <= 0 {
		return invalid("capacityKwp", input.CapacityKwp, "must be greater than zero")
	}
	if input.SpecificYield <= 0 {
		return invalid("specificYield", input.SpecificYield, "must be greater than zero")
	}
	if input.LifetimeYears < 1 {
		return invalid("lifetimeYears", float64(input.LifetimeYears), "must be at least 1")
	}

	rates := []struct {
		field string
		value float64
	}{
		{"degradationRate", input.DegradationRate},
		{"inflationRate", input.InflationRate},
		{"priceGrowthRate", input.PriceGrowthRate},
		{"discountRate", input.DiscountRate},
	}
	for _, rate := range rates {
		if rate.value < 0 {
			return invalid(rate.field, rate.value, "rate must not be negative")
		}
	}

	prices := []struct {
		field string
		value float64
	}{
		{"gridPrice", input.GridPrice},
		{"feedInPrice", input.FeedInPrice},
		{"directMarketingFee", input.DirectMarketingFee},
		{"internalPrice", input.InternalPrice},
		{"priceCap", input.PriceCap},
		{"premium", input.Premium},
	}
	for _, price := range prices {
		if price.value < 0 {
			return invalid(price.field, price.value, "price must not be negative")
		}
	}

	if input.Capex < 0 {
		return invalid("capex", input.Capex, "must not be negative")
	}
	if input.OpexPercentOfCapex < 0 {
		return invalid("opexPercentOfCapex", input.OpexPercentOfCapex, "must not be negative")
	}
	if input.OpexFixed < 0 {
		return invalid("opexFixed", input.OpexFixed, "must not be negative")
	}

	if input.GridShareOverride != nil {
		override := *input.GridShareOverride
		if override < 0 || override > 1 {
			return invalid("gridShareOverride", override, "share must resolve within [0, 1]")
		}
	}

	return nil
}
