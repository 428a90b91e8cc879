package portfolio

import (
	"github.com/nicolasberthel/enerfolio/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Valuate recomputes the money view of one investment from its transaction
// history instead of trusting the backend snapshot. The cost basis uses the
// average purchase price across all buys, applied to the shares still held.
func Valuate(inv domain.Investment, currentPrice float64) domain.InvestmentValuation {
	boughtShares := 0
	heldShares := 0
	buyCost := decimal.Zero

	for _, tx := range inv.History {
		price := decimal.NewFromFloat(tx.PricePerShare)
		qty := decimal.NewFromInt(int64(tx.Shares))
		if tx.Direction == domain.DirectionSell {
			heldShares -= tx.Shares
			continue
		}
		boughtShares += tx.Shares
		heldShares += tx.Shares
		buyCost = buyCost.Add(price.Mul(qty))
	}
	if heldShares < 0 {
		heldShares = 0
	}

	avgPrice := decimal.Zero
	if boughtShares > 0 {
		avgPrice = buyCost.DivRound(decimal.NewFromInt(int64(boughtShares)), 4)
	}

	held := decimal.NewFromInt(int64(heldShares))
	costBasis := avgPrice.Mul(held)
	currentValue := decimal.NewFromFloat(currentPrice).Mul(held)
	gain := currentValue.Sub(costBasis)

	gainPercent := decimal.Zero
	if !costBasis.IsZero() {
		gainPercent = gain.Div(costBasis).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return domain.InvestmentValuation{
		ProjectID:            inv.ProjectID,
		ProjectName:          inv.ProjectName,
		EnergyType:           inv.EnergyType,
		Shares:               heldShares,
		CostBasis:            costBasis.Round(2).InexactFloat64(),
		AveragePurchasePrice: avgPrice.Round(2).InexactFloat64(),
		CurrentValue:         currentValue.Round(2).InexactFloat64(),
		GainLoss:             gain.Round(2).InexactFloat64(),
		GainLossPercent:      gainPercent.InexactFloat64(),
	}
}

// Summarize aggregates per-investment valuations into portfolio totals and a
// per-energy-type breakdown.
func Summarize(valuations []domain.InvestmentValuation) domain.PortfolioSummary {
	summary := domain.PortfolioSummary{
		ByEnergyType: make(map[domain.EnergyType]domain.EnergyTypeSummary),
	}

	totalBasis := decimal.Zero
	totalValue := decimal.Zero
	for _, v := range valuations {
		summary.TotalShares += v.Shares
		totalBasis = totalBasis.Add(decimal.NewFromFloat(v.CostBasis))
		totalValue = totalValue.Add(decimal.NewFromFloat(v.CurrentValue))

		byType := summary.ByEnergyType[v.EnergyType]
		byType.Shares += v.Shares
		byType.CostBasis += v.CostBasis
		summary.ByEnergyType[v.EnergyType] = byType
	}

	gain := totalValue.Sub(totalBasis)
	summary.TotalCostBasis = totalBasis.Round(2).InexactFloat64()
	summary.CurrentValue = totalValue.Round(2).InexactFloat64()
	summary.GainLoss = gain.Round(2).InexactFloat64()
	if !totalBasis.IsZero() {
		summary.GainLossPercent = gain.Div(totalBasis).
			Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}
	return summary
}
