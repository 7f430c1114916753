package state

// DialogState is where a chat currently is in the booking dialog.
type DialogState string

const (
	StateNone DialogState = "" // No dialog in progress

	// Booking dialog steps
	StateChoosingService DialogState = "booking_choosing_service"
	StateChoosingTime    DialogState = "booking_choosing_time"
	StateEnteringName    DialogState = "booking_entering_name"
)

// Keys for transient dialog data.
const (
	DataServiceID = "service_id"
	DataTime      = "time"
)

// chatData holds a chat's dialog position and its transient selections.
type chatData struct {
	State DialogState
	Data  map[string]string
}
