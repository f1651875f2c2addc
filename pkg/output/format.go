// Package output provides utilities for formatting and displaying scenario results.
package output

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sonnenplan/solar-scenario/pkg/format"
	"github.com/sonnenplan/solar-scenario/pkg/scenario"
)

// csvHeader lists the exported columns in fixed order; one row per year per
// scenario, grouped by scenario.
var csvHeader = []string{
	"scenario",
	"year",
	"production_kwh",
	"self_consumed_kwh",
	"exported_kwh",
	"internal_revenue_eur",
	"export_revenue_eur",
	"premium_revenue_eur",
	"opex_eur",
	"capex_eur",
	"total_revenue_eur",
	"net_cash_flow_eur",
	"storage_note",
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []scenario.Result) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		fmt.Printf("--- Results for scenario %s (%s) ---\n", result.Label, result.Note)
		fmt.Printf("Year | Production | Self-cons. | Exported   | Revenue    | OPEX      | Net cash flow\n")
		fmt.Printf("____ | __________ | __________ | __________ | __________ | _________ | _____________\n")
		for _, record := range result.Years {
			_, _ = p.Printf("%4d | %10.0f | %10.0f | %10.0f | %10.2f | %9.2f | %13.2f\n",
				record.Year, record.Production, record.SelfConsumed, record.Exported,
				record.TotalRevenue, record.Opex, record.NetCashFlow)
		}
		fmt.Printf("NPV: %s\n", format.Euro(result.NPV))
		fmt.Printf("Payback year: %s\n", PaybackString(result.PaybackYear))
		if i < len(results)-1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []scenario.Result) {
	fmt.Print(CsvString(results))
}

// CsvString renders the combined year-record table of all scenarios as CSV.
// Rows stay grouped per scenario so consumers can compute derived series
// (e.g. cumulative cash flow) per scenario rather than across the
// concatenation.
func CsvString(results []scenario.Result) string {
	var builder strings.Builder

	for i, column := range csvHeader {
		if i > 0 {
			builder.WriteByte(',')
		}
		fmt.Fprintf(&builder, "%q", column)
	}
	builder.WriteByte('\n')

	for _, result := range results {
		for _, record := range result.Years {
			fmt.Fprintf(&builder, "%q,%d,%q,%q,%q,%q,%q,%q,%q,%q,%q,%q,%q\n",
				result.Label,
				record.Year,
				fmt.Sprintf("%.2f", record.Production),
				fmt.Sprintf("%.2f", record.SelfConsumed),
				fmt.Sprintf("%.2f", record.Exported),
				fmt.Sprintf("%.2f", record.InternalRevenue),
				fmt.Sprintf("%.2f", record.ExportRevenue),
				fmt.Sprintf("%.2f", record.PremiumRevenue),
				fmt.Sprintf("%.2f", record.Opex),
				fmt.Sprintf("%.2f", record.Capex),
				fmt.Sprintf("%.2f", record.TotalRevenue),
				fmt.Sprintf("%.2f", record.NetCashFlow),
				result.Note,
			)
		}
	}

	return builder.String()
}

// PaybackString renders a payback year, or "n/a" when payback is never
// reached within the lifetime.
func PaybackString(paybackYear *int) string {
	if paybackYear == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d", *paybackYear)
}
