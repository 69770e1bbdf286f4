package model

import "fmt"

// Slot is one bookable hour of a turf on a specific date. Slots are
// derived at query time and never persisted; availability reflects the
// booking store at the moment of the query.
type Slot struct {
	ID        string `json:"id"`
	Time      string `json:"time"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// SlotID builds the canonical slot identifier for a date (YYYY-MM-DD)
// and starting hour. The hour is intentionally unpadded ("slot-2024-01-10-9").
func SlotID(date string, hour int) string {
	return fmt.Sprintf("slot-%s-%d", date, hour)
}
