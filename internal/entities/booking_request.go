package entities

// BookingRequest is the wire payload submitted by the booking form.
type BookingRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

// BookingAck is returned to the client after a submission. In test mode only
// Success and Mode are set; after a live send MessageID carries the provider's
// acknowledgment.
type BookingAck struct {
	Success   bool   `json:"success"`
	Mode      string `json:"mode,omitempty"`
	MessageID string `json:"message_id,omitempty"`
}
