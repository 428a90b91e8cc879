package adapters

import (
	"fmt"
	"time"

	"github.com/nicolasberthel/enerfolio/pkg/models/api"
	"github.com/nicolasberthel/enerfolio/pkg/models/domain"
)

func MapApiTransactionToDomain(t api.Transaction) (domain.Transaction, error) {
	date, err := ParseTimestamp(t.Date)
	if err != nil {
		return domain.Transaction{}, err
	}
	dir := domain.Direction(t.Direction)
	if dir != domain.DirectionBuy && dir != domain.DirectionSell {
		return domain.Transaction{}, fmt.Errorf("unknown transaction direction: %q", t.Direction)
	}
	if t.Shares <= 0 {
		return domain.Transaction{}, fmt.Errorf("transaction shares must be positive, got %d", t.Shares)
	}
	return domain.Transaction{
		Date:          date,
		Direction:     dir,
		Shares:        t.Shares,
		PricePerShare: t.PricePerShare,
	}, nil
}

func MapApiInvestmentToDomain(inv api.Investment) (domain.Investment, error) {
	history := make([]domain.Transaction, 0, len(inv.TransactionHistory))
	for _, t := range inv.TransactionHistory {
		dt, err := MapApiTransactionToDomain(t)
		if err != nil {
			return domain.Investment{}, fmt.Errorf("investment %s: %w", inv.ProjectID, err)
		}
		history = append(history, dt)
	}
	return domain.Investment{
		ProjectID:   inv.ProjectID,
		ProjectName: inv.ProjectName,
		EnergyType:  mapEnergyType(inv.EnergyType),
		Shares:      inv.Shares,
		History:     history,
	}, nil
}

func MapApiPortfolioToDomain(p api.Portfolio) (domain.Portfolio, error) {
	investments := make([]domain.Investment, 0, len(p.Investments))
	for _, inv := range p.Investments {
		di, err := MapApiInvestmentToDomain(inv)
		if err != nil {
			return domain.Portfolio{}, err
		}
		investments = append(investments, di)
	}
	return domain.Portfolio{
		UserID:      p.UserID,
		UserName:    p.UserName,
		MeterID:     p.PodID,
		Investments: investments,
	}, nil
}

func mapEnergyType(s string) domain.EnergyType {
	switch domain.EnergyType(s) {
	case domain.EnergySolar:
		return domain.EnergySolar
	case domain.EnergyWind:
		return domain.EnergyWind
	case domain.EnergyBattery:
		return domain.EnergyBattery
	default:
		return domain.EnergyOther
	}
}

func MapApiProjectToDomain(p api.Project) domain.Project {
	startSupply, _ := ParseTimestamp(p.StartSupply)
	return domain.Project{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		EnergyType:      mapEnergyType(p.Energy),
		Status:          domain.ProjectStatus(p.Status),
		Capacity:        p.Capacity.Value,
		CapacityUnit:    p.Capacity.Unit,
		City:            p.Location.City,
		Country:         p.Location.Country,
		StartSupply:     startSupply,
		TotalShares:     p.Shares.Total,
		AvailableShares: p.Shares.Available,
		SharePrice:      p.Shares.Price,
		CO2PerShare:     p.Forecast.CO2SavingsPerShare,
	}
}

func MapDomainProjectToApi(p domain.Project) api.Project {
	return api.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Energy:      string(p.EnergyType),
		Capacity:    api.Capacity{Value: p.Capacity, Unit: p.CapacityUnit},
		StartSupply: p.StartSupply.UTC().Format("2006-01-02"),
		Location:    api.Location{City: p.City, Country: p.Country},
		Shares: api.Shares{
			Total:     p.TotalShares,
			Price:     p.SharePrice,
			Available: p.AvailableShares,
			Sold:      p.TotalShares - p.AvailableShares,
		},
		Status:   string(p.Status),
		Forecast: api.Forecast{CO2SavingsPerShare: p.CO2PerShare},
	}
}

func MapDomainPortfolioToApi(p domain.Portfolio) api.Portfolio {
	investments := make([]api.Investment, 0, len(p.Investments))
	for _, inv := range p.Investments {
		history := make([]api.Transaction, 0, len(inv.History))
		for _, tx := range inv.History {
			history = append(history, api.Transaction{
				Date:          tx.Date.UTC().Format(time.RFC3339),
				Direction:     string(tx.Direction),
				Shares:        tx.Shares,
				PricePerShare: tx.PricePerShare,
			})
		}
		investments = append(investments, api.Investment{
			ProjectID:          inv.ProjectID,
			ProjectName:        inv.ProjectName,
			EnergyType:         string(inv.EnergyType),
			Shares:             inv.Shares,
			TransactionHistory: history,
		})
	}
	return api.Portfolio{
		UserID:      p.UserID,
		UserName:    p.UserName,
		PodID:       p.MeterID,
		Investments: investments,
	}
}
