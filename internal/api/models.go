package api

// Calendar grid
type MonthResponse struct {
	Month    string        `json:"month"`
	Timezone string        `json:"timezone"`
	Days     []DayResponse `json:"days"`
}
type DayResponse struct {
	Date     string `json:"date"`
	InMonth  bool   `json:"in_month"`
	Bookable bool   `json:"bookable"`
	Today    bool   `json:"today"`
}

// Time slots
type SlotsResponse struct {
	Date     string   `json:"date"`
	Timezone string   `json:"timezone"`
	Slots    []string `json:"slots"`
}

// Errors
type ErrorResponse struct {
	Error string `json:"error"`
}
