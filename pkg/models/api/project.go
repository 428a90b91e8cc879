package api

type Capacity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

type Shares struct {
	Total     int     `json:"total"`
	Price     float64 `json:"price"`
	Available int     `json:"available"`
	Sold      int     `json:"sold"`
}

type Forecast struct {
	Return             float64 `json:"return"`
	CO2SavingsPerShare float64 `json:"co2_savings_per_share"`
}

type Project struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	Energy           string   `json:"energy"`
	Capacity         Capacity `json:"capacity"`
	CapacityPerShare Capacity `json:"capacity_per_share"`
	StartSupply      string   `json:"start_supply"`
	Location         Location `json:"location"`
	Shares           Shares   `json:"shares"`
	Status           string   `json:"status"`
	Forecast         Forecast `json:"forecast"`
}
