package output

import (
	"strings"
	"testing"

	"github.com/sonnenplan/solar-scenario/pkg/scenario"
)

func sampleResults() []scenario.Result {
	paybackYear := 3
	return []scenario.Result{
		{
			Label: "GGV",
			Years: []scenario.YearRecord{
				{Year: 0, Capex: 120000, NetCashFlow: -120000},
				{Year: 1, Production: 99000, SelfConsumed: 34650, Exported: 64350,
					InternalRevenue: 11088, ExportRevenue: 4247.1, Opex: 3300,
					TotalRevenue: 15335.1, NetCashFlow: 12035.1},
			},
			NPV:         -5000.5,
			PaybackYear: nil,
			Note:        "without storage",
		},
		{
			Label: "Mieterstrom",
			Years: []scenario.YearRecord{
				{Year: 0, Capex: 120000, NetCashFlow: -120000},
				{Year: 1, Production: 99000, SelfConsumed: 34650, Exported: 64350,
					InternalRevenue: 12474, ExportRevenue: 4247.1, PremiumRevenue: 1039.5,
					Opex: 3300, TotalRevenue: 17760.6, NetCashFlow: 14460.6},
			},
			NPV:         12345.67,
			PaybackYear: &paybackYear,
			Note:        "without storage",
		},
	}
}

func TestCsvStringHeader(t *testing.T) {
	csv := CsvString(sampleResults())
	lines := strings.Split(strings.TrimSpace(csv), "\n")

	expectedHeader := `"scenario","year","production_kwh","self_consumed_kwh","exported_kwh",` +
		`"internal_revenue_eur","export_revenue_eur","premium_revenue_eur","opex_eur",` +
		`"capex_eur","total_revenue_eur","net_cash_flow_eur","storage_note"`
	if lines[0] != expectedHeader {
		t.Errorf("header = %s, expected %s", lines[0], expectedHeader)
	}

	// One header row plus one row per year per scenario.
	if len(lines) != 5 {
		t.Errorf("expected 5 lines, got %d", len(lines))
	}
}

func TestCsvStringGroupsByScenario(t *testing.T) {
	csv := CsvString(sampleResults())
	lines := strings.Split(strings.TrimSpace(csv), "\n")

	if !strings.HasPrefix(lines[1], `"GGV",0,`) {
		t.Errorf("line 1 = %s, expected GGV year 0", lines[1])
	}
	if !strings.HasPrefix(lines[2], `"GGV",1,`) {
		t.Errorf("line 2 = %s, expected GGV year 1", lines[2])
	}
	if !strings.HasPrefix(lines[3], `"Mieterstrom",0,`) {
		t.Errorf("line 3 = %s, expected Mieterstrom year 0", lines[3])
	}
	if !strings.HasPrefix(lines[4], `"Mieterstrom",1,`) {
		t.Errorf("line 4 = %s, expected Mieterstrom year 1", lines[4])
	}
}

func TestCsvStringValues(t *testing.T) {
	csv := CsvString(sampleResults())
	lines := strings.Split(strings.TrimSpace(csv), "\n")

	if !strings.Contains(lines[1], `"120000.00"`) {
		t.Errorf("year 0 row %s does not carry the capex", lines[1])
	}
	if !strings.Contains(lines[4], `"1039.50"`) {
		t.Errorf("Mieterstrom year 1 row %s does not carry the premium revenue", lines[4])
	}
	if !strings.Contains(lines[2], `"without storage"`) {
		t.Errorf("row %s does not carry the storage note", lines[2])
	}
}

func TestPaybackString(t *testing.T) {
	if got := PaybackString(nil); got != "n/a" {
		t.Errorf("PaybackString(nil) = %s, expected n/a", got)
	}
	year := 7
	if got := PaybackString(&year); got != "7" {
		t.Errorf("PaybackString(7) = %s, expected 7", got)
	}
}
