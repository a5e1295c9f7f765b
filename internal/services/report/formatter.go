// Package report formats portfolio valuations for display
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fincatch/fincatch/internal/models"
)

// FormatPerformance generates a markdown summary of a portfolio valuation.
// Monetary figures are rounded to 2 decimal places for display only; the
// underlying valuation math is never rounded.
func FormatPerformance(perf *models.PortfolioPerformance, asOf time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Portfolio Performance\n\n")
	sb.WriteString(fmt.Sprintf("**Date:** %s\n", asOf.Format("2006-01-02 15:04")))
	sb.WriteString(fmt.Sprintf("**Currency:** %s\n", perf.Currency))
	sb.WriteString(fmt.Sprintf("**Total Value:** %s\n", formatMoney(perf.TotalValue)))
	sb.WriteString(fmt.Sprintf("**Total Cost:** %s\n", formatMoney(perf.TotalCost)))
	sb.WriteString(fmt.Sprintf("**Total Gain/Loss:** %s (%s)\n\n", formatSignedMoney(perf.TotalGainLoss), formatSignedPct(perf.TotalGainLossPercentage)))

	sb.WriteString("## Holdings\n\n")
	sb.WriteString("| Symbol | Type | Qty | Price | Value | Cost | Coupon Income | Gain/Loss | Gain/Loss % | Source |\n")
	sb.WriteString("|--------|------|-----|-------|-------|------|---------------|-----------|-------------|--------|\n")

	for _, ep := range perf.EntriesPerformance {
		entry := ep.Entry
		sb.WriteString(fmt.Sprintf("| %s | %s | %.4g | %s | %s | %s | %s | %s | %s | %s |\n",
			entry.Symbol, entry.AssetType, entry.Quantity,
			formatMoney(ep.CurrentPrice), formatMoney(ep.CurrentValue), formatMoney(ep.TotalCost),
			formatMoney(ep.CouponIncome),
			formatSignedMoney(ep.GainLoss), formatSignedPct(ep.GainLossPercentage),
			ep.PriceSource,
		))
	}

	return sb.String()
}

func formatMoney(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2)
}

func formatSignedMoney(v float64) string {
	s := formatMoney(v)
	if v > 0 {
		return "+" + s
	}
	return s
}

func formatSignedPct(v float64) string {
	s := decimal.NewFromFloat(v).Round(2).StringFixed(2) + "%"
	if v > 0 {
		return "+" + s
	}
	return s
}
