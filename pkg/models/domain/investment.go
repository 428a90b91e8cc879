package domain

import "time"

type Direction string

const (
	DirectionBuy  Direction = "buy"
	DirectionSell Direction = "sell"
)

type EnergyType string

const (
	EnergySolar   EnergyType = "solar"
	EnergyWind    EnergyType = "wind"
	EnergyBattery EnergyType = "battery"
	EnergyOther   EnergyType = "other"
)

// Transaction is one buy or sell of project shares. Histories are stored
// chronologically but re-sorted before any replay.
type Transaction struct {
	Date          time.Time
	Direction     Direction
	Shares        int
	PricePerShare float64
}

// Investment is one project holding inside a portfolio. Shares is the
// backend's snapshot of the net total as of now; historical share counts are
// always recomputed from History, and the two only have to agree for "now".
type Investment struct {
	ProjectID   string
	ProjectName string
	EnergyType  EnergyType
	Shares      int
	History     []Transaction
}

// Portfolio is the read-only projection returned by the backend for one user.
type Portfolio struct {
	UserID      string
	UserName    string
	MeterID     string
	Investments []Investment
}
