package entities

// BookingEmailData feeds the operator notification template.
type BookingEmailData struct {
	Name          string
	Email         string
	DateFormatted string
	Time          string
	Timezone      string
}

// DigestEmailData feeds the daily digest template sent to the operator.
type DigestEmailData struct {
	DateFormatted string
	Open          bool
	FirstSlot     string
	LastSlot      string
	SlotCount     int
	Timezone      string
}
