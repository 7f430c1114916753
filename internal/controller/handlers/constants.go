package handlers

// Callback data patterns used by the inline keyboards.
const (
	// Booking dialog
	CallbackService = "book_service:" // book_service:<service id>
	CallbackSlot    = "book_slot:"    // book_slot:<slot id>

	// Cancel confirmation
	CallbackCancelYes = "cancel_yes"
	CallbackCancelNo  = "cancel_no"
)

// missingInputText is shown whenever the booking submission is incomplete.
const missingInputText = "❌ Missing information.\n\nPlease select a service, time, and enter your name."
