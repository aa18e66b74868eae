package model

// ReminderRow is one contract surfaced by the threshold reminder view.
type ReminderRow struct {
	Contract string `json:"contract"`
	Customer string `json:"customer"`
	DropDate string `json:"dropDate"` // DD/MM/YYYY display form
	Days     int    `json:"days"`
	ClosedBy string `json:"closedBy"`
	Branch   string `json:"branch"`
}
