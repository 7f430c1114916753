// Package catalog holds the salon's static service and time-slot data.
// The lists are fixed at startup and read-only; accessors return copies so
// callers cannot mutate the catalog.
package catalog

import "github.com/glamoursalon/salon_queue_bot/internal/model"

var services = []model.Service{
	{ID: "1", Name: "Haircut", Duration: 30, Price: 35},
	{ID: "2", Name: "Hair Coloring", Duration: 90, Price: 85},
	{ID: "3", Name: "Styling", Duration: 45, Price: 45},
	{ID: "4", Name: "Beard Trim", Duration: 20, Price: 20},
	{ID: "5", Name: "Hair Treatment", Duration: 60, Price: 65},
}

var timeSlots = []model.TimeSlot{
	{ID: "1", Time: "09:00 AM", Available: true},
	{ID: "2", Time: "10:00 AM", Available: true},
	{ID: "3", Time: "11:00 AM", Available: false},
	{ID: "4", Time: "12:00 PM", Available: true},
	{ID: "5", Time: "01:00 PM", Available: true},
	{ID: "6", Time: "02:00 PM", Available: true},
	{ID: "7", Time: "03:00 PM", Available: false},
	{ID: "8", Time: "04:00 PM", Available: true},
	{ID: "9", Time: "05:00 PM", Available: true},
}

// Services returns the full service catalog.
func Services() []model.Service {
	out := make([]model.Service, len(services))
	copy(out, services)
	return out
}

// ServiceByID looks up a service by its catalog id.
func ServiceByID(id string) (model.Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return model.Service{}, false
}

// TimeSlots returns all time slots, available or not.
func TimeSlots() []model.TimeSlot {
	out := make([]model.TimeSlot, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// AvailableSlots returns only the slots that can be selected.
func AvailableSlots() []model.TimeSlot {
	var out []model.TimeSlot
	for _, t := range timeSlots {
		if t.Available {
			out = append(out, t)
		}
	}
	return out
}

// SlotByTime looks up a slot by its display label.
func SlotByTime(label string) (model.TimeSlot, bool) {
	for _, t := range timeSlots {
		if t.Time == label {
			return t, true
		}
	}
	return model.TimeSlot{}, false
}
