package request

// CreateEntryRequest is the request body for submitting a day's times
type CreateEntryRequest struct {
	Date  string            `json:"date"`
	Times map[string]string `json:"times"`
}
