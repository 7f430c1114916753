package model

// Service is a single entry of the salon's service catalog.
type Service struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"` // in minutes
	Price    int    `json:"price"`    // in whole currency units
}
