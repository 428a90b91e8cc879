package domain

import "time"

type ProjectStatus string

const (
	ProjectStatusActive  ProjectStatus = "active"
	ProjectStatusFunding ProjectStatus = "funding"
	ProjectStatusClosed  ProjectStatus = "closed"
)

// Project is an investable renewable-energy asset as listed by the backend.
type Project struct {
	ID              string
	Name            string
	Description     string
	EnergyType      EnergyType
	Status          ProjectStatus
	Capacity        float64
	CapacityUnit    string
	City            string
	Country         string
	StartSupply     time.Time
	TotalShares     int
	AvailableShares int
	SharePrice      float64
	CO2PerShare     float64
}

// InvestmentValuation is the money view of one holding, recomputed from its
// transaction history rather than trusted from the backend snapshot.
type InvestmentValuation struct {
	ProjectID            string
	ProjectName          string
	EnergyType           EnergyType
	Shares               int
	CostBasis            float64
	AveragePurchasePrice float64
	CurrentValue         float64
	GainLoss             float64
	GainLossPercent      float64
}

// PortfolioSummary aggregates valuations across a portfolio.
type PortfolioSummary struct {
	TotalShares     int
	TotalCostBasis  float64
	CurrentValue    float64
	GainLoss        float64
	GainLossPercent float64
	ByEnergyType    map[EnergyType]EnergyTypeSummary
}

type EnergyTypeSummary struct {
	Shares    int
	CostBasis float64
}
