package main

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/SbEnChOi/world-energy-ubiquity/pkg/aggregate"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/timeline"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/validation"
)

var printer = message.NewPrinter(language.English)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(e)
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			printResult(w)
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(r validation.Result) {
	fmt.Printf("  [%s] %s\n", r.Level, r.Message)
	if r.Path != "" {
		fmt.Printf("    -> %s = %v\n", r.Path, r.ActualValue)
	}
	if r.Expected != "" {
		fmt.Printf("    expected: %s\n", r.Expected)
	}
	for _, s := range r.Suggestions {
		fmt.Printf("    * %s\n", s)
	}
}

func printSnapshot(s *timeline.WorldSnapshot, year int, threshold float64) {
	fmt.Printf("%s reserves in %d (%s)\n", s.Resource, year, s.Resource.Unit())
	fmt.Println("==========================================")
	fmt.Println()
	fmt.Printf("%-4s %-22s %14s %12s %7s %-9s %9s\n",
		"ID", "Name", "Reserves", "Consumption", "Ratio", "Tier", "Depletes")
	fmt.Printf("%-4s %-22s %14s %12s %7s %-9s %9s\n",
		"----", "----------------------", "--------------", "------------", "-------", "---------", "---------")

	for _, id := range s.IDs() {
		tl := s.Entities[id]
		v := aggregate.Inspect(tl, year, threshold)
		reserves, consumption := "-", "-"
		if v.Point != nil {
			reserves = formatAmount(v.Point.Reserves)
			consumption = formatAmount(v.Point.Consumption)
		}
		fmt.Printf("%-4s %-22s %14s %12s %7s %-9s %9s\n",
			v.ID, truncate(v.Name, 22), reserves, consumption, formatPercent(v.Ratio), v.Tier, formatYear(tl.FirstDepletionYear))
	}
}

func printSummary(s aggregate.Summary) {
	fmt.Println("Summary")
	fmt.Println("-------")
	fmt.Printf("  Total reserves:         %s %s\n", formatAmount(s.TotalReserves), s.Unit)
	fmt.Printf("  Total consumption:      %s %s/yr\n", formatAmount(s.TotalConsumption), s.Unit)
	fmt.Printf("  Depleted:               %d of %d\n", s.DepletedCount, s.EntityCount)
	fmt.Printf("  Critical:               %d\n", s.CriticalCount)
	fmt.Printf("  Global depletion year:  %s\n", formatYear(s.GlobalDepletionYear))
	if s.AverageDepletionYear != nil {
		fmt.Printf("  Avg depletion year:     %.1f\n", *s.AverageDepletionYear)
	} else {
		fmt.Printf("  Avg depletion year:     -\n")
	}
}

func printSeries(series []aggregate.GlobalYearAggregate, unit string) {
	fmt.Printf("Global series (%s)\n", unit)
	fmt.Println()
	fmt.Printf("%-6s %16s %14s\n", "Year", "Reserves", "Consumption")
	fmt.Printf("%-6s %16s %14s\n", "------", "----------------", "--------------")
	for _, g := range series {
		fmt.Printf("%-6d %16s %14s\n", g.Year, formatAmount(g.TotalReserves), formatAmount(g.TotalConsumption))
	}
}

// formatAmount groups thousands and keeps two decimals.
func formatAmount(v float64) string {
	return printer.Sprintf("%.2f", v)
}

func formatPercent(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio*100)
}

func formatYear(y *int) string {
	if y == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *y)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
