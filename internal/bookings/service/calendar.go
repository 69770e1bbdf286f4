package service

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	bookingserrors "github.com/Prasi710/Turffy/internal/bookings/errors"
	"github.com/Prasi710/Turffy/pkg/model"
)

const dateLayout = "2006-01-02"

var slotIDPattern = regexp.MustCompile(`^slot-(\d{4}-\d{2}-\d{2})-(\d{1,2})$`)

// Calendar generates the canonical slot universe for a date. It is pure:
// the same (date, now) pair always yields the same sequence, and it
// performs no I/O.
type Calendar struct {
	openingHour int
	closingHour int
}

func NewCalendar(openingHour, closingHour int) *Calendar {
	return &Calendar{
		openingHour: openingHour,
		closingHour: closingHour,
	}
}

// Slots returns the hour-aligned slots of the operating window for a
// date, all marked available. When the date is now's calendar day,
// slots starting at or before now are dropped; they can no longer be
// offered or held.
func (c *Calendar) Slots(date string, now time.Time) []*model.Slot {
	slots := make([]*model.Slot, 0, c.closingHour-c.openingHour)

	day, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return slots
	}
	isToday := day.Year() == now.Year() && day.YearDay() == now.YearDay()

	for hour := c.openingHour; hour < c.closingHour; hour++ {
		if isToday {
			start := day.Add(time.Duration(hour) * time.Hour)
			if !start.After(now) {
				continue
			}
		}

		slots = append(slots, &model.Slot{
			ID:        model.SlotID(date, hour),
			Time:      fmt.Sprintf("%02d:00", hour),
			EndTime:   fmt.Sprintf("%02d:00", hour+1),
			Available: true,
		})
	}

	return slots
}

// Started reports whether the slot's start is at or before now. A slot
// on an unparseable date is treated as started so it can never be held.
func (c *Calendar) Started(date string, hour int, now time.Time) bool {
	day, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return true
	}
	return !day.Add(time.Duration(hour) * time.Hour).After(now)
}

// ParseSlotID recovers the date and hour from a slot identifier and
// rejects identifiers outside the operating window.
func (c *Calendar) ParseSlotID(slotID string) (string, int, error) {
	match := slotIDPattern.FindStringSubmatch(slotID)
	if match == nil {
		return "", 0, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidSlotID, slotID)
	}

	date := match[1]
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", 0, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidSlotID, slotID)
	}

	hour, err := strconv.Atoi(match[2])
	if err != nil || hour < c.openingHour || hour >= c.closingHour {
		return "", 0, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidSlotID, slotID)
	}

	return date, hour, nil
}
