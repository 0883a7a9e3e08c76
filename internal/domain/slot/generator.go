package slot

import (
	"time"

	"slotbook/internal/domain/product"
)

// Candidate is one bookable time unit proposed by the generator, not yet
// checked against existing inventory.
type Candidate struct {
	Date      time.Time // calendar day, UTC midnight
	StartTime string
	EndTime   string
}

// DayTime identifies a candidate within one product/room-type scope.
type DayTime struct {
	Date      string // "2006-01-02"
	StartTime string
}

func Key(date time.Time, startTime string) DayTime {
	return DayTime{Date: date.UTC().Format("2006-01-02"), StartTime: startTime}
}

// Expand generates slot candidates for every calendar day in [from, to]
// inclusive. Date stepping is done in UTC: stepping in a local timezone
// drifts a day around DST transitions.
//
// Overnight products yield exactly one candidate per day spanning open to
// close (close being on the following day). Timed products yield fixed-size
// steps of slotDurationMin from the opening time; a trailing step that would
// overrun closing time is dropped, not truncated.
func Expand(kind product.Kind, hours product.OperatingHours, slotDurationMin int, from, to time.Time) []Candidate {
	from = midnightUTC(from)
	to = midnightUTC(to)
	if to.Before(from) {
		return nil
	}
	if kind == product.KindTimed && slotDurationMin <= 0 {
		return nil
	}

	var candidates []Candidate
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if kind == product.KindOvernight {
			candidates = append(candidates, Candidate{
				Date:      d,
				StartTime: hours.Open().String(),
				EndTime:   hours.Close().String(),
			})
			continue
		}

		open := hours.Open().Minutes()
		close := hours.Close().Minutes()
		for m := open; m+slotDurationMin <= close; m += slotDurationMin {
			candidates = append(candidates, Candidate{
				Date:      d,
				StartTime: product.ClockTimeFromMinutes(m).String(),
				EndTime:   product.ClockTimeFromMinutes(m + slotDurationMin).String(),
			})
		}
	}
	return candidates
}

// FilterExisting drops candidates whose (date, start time) already exists.
// Inventory without a room type has no storage-level uniqueness constraint
// (the room type key is null there), so the generator must deduplicate itself.
func FilterExisting(candidates []Candidate, existing map[DayTime]struct{}) []Candidate {
	if len(existing) == 0 {
		return candidates
	}
	kept := candidates[:0]
	for _, c := range candidates {
		if _, ok := existing[Key(c.Date, c.StartTime)]; ok {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
