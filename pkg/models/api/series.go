package api

// Sample is the backend wire form of one reading. Value is a numeric string
// and needs an explicit parse.
type Sample struct {
	Timestamp string `json:"timestamp"`
	Value     string `json:"value"`
}

// SeriesResponse wraps the samples of one load-curve or production query.
// The monthly and daily aggregate endpoints return the bare array instead,
// the client normalizes both forms into this one.
type SeriesResponse struct {
	Data     []Sample `json:"data"`
	Page     int      `json:"page,omitempty"`
	PageSize int      `json:"page_size,omitempty"`
	Total    int      `json:"total,omitempty"`
}
