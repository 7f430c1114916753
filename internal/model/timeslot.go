package model

// TimeSlot is a bookable time-of-day slot. The list is the same for every
// date; only available slots may be selected.
type TimeSlot struct {
	ID        string `json:"id"`
	Time      string `json:"time"` // display label, e.g. "09:00 AM"
	Available bool   `json:"available"`
}
