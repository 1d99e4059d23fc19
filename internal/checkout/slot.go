package checkout

import (
	"fmt"
	"time"
)

// Slot is one selectable calendar-day × time-window combination.
type Slot struct {
	ID        string `json:"id"`
	Date      string `json:"date"` // 2006-01-02
	Window    string `json:"window"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

// Display is the slot string submitted with the order.
func (s Slot) Display() string {
	return fmt.Sprintf("%s - %s", s.Date, s.Window)
}

var windows = []struct {
	id        string
	window    string
	label     string
	available bool
}{
	{"1", "6:00 AM - 9:00 AM", "Early Morning", true},
	{"2", "9:00 AM - 12:00 PM", "Morning", true},
	{"3", "12:00 PM - 3:00 PM", "Afternoon", true},
	{"4", "3:00 PM - 6:00 PM", "Evening", false},
	{"5", "6:00 PM - 9:00 PM", "Night", true},
}

// Menu is the fixed slot menu for the next two delivery days. Unavailable
// windows stay on the menu but cannot be selected.
func Menu(now time.Time) []Slot {
	days := []time.Time{now, now.AddDate(0, 0, 1)}

	slots := make([]Slot, 0, len(days)*len(windows))
	for _, day := range days {
		date := day.Format("2006-01-02")
		for _, w := range windows {
			slots = append(slots, Slot{
				ID:        fmt.Sprintf("%s-%s", date, w.id),
				Date:      date,
				Window:    w.window,
				Label:     w.label,
				Available: w.available,
			})
		}
	}
	return slots
}

func findSlot(menu []Slot, id string) (Slot, bool) {
	for _, s := range menu {
		if s.ID == id {
			return s, true
		}
	}
	return Slot{}, false
}
