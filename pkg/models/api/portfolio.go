package api

type Transaction struct {
	Date          string  `json:"date"`
	Direction     string  `json:"direction"`
	Shares        int     `json:"shares"`
	PricePerShare float64 `json:"price_per_share"`
}

type Investment struct {
	ProjectID          string        `json:"project_id"`
	ProjectName        string        `json:"project_name"`
	EnergyType         string        `json:"energy_type"`
	Shares             int           `json:"shares"`
	Capacity           float64       `json:"capacity,omitempty"`
	CapacityUnit       string        `json:"capacity_unit,omitempty"`
	FirstPurchaseDate  string        `json:"first_purchase_date,omitempty"`
	TransactionHistory []Transaction `json:"transaction_history"`
}

type Portfolio struct {
	UserID           string       `json:"user_id"`
	UserName         string       `json:"user_name"`
	PodID            string       `json:"pod_id"`
	RegistrationDate string       `json:"registration_date,omitempty"`
	Investments      []Investment `json:"investments"`
}
