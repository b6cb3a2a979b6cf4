// Package availability turns a doctor's working window into bookable slots.
//
// The engine is pure: it never touches storage and returns the same output
// for the same input.
package availability

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Window is the part of a working window the engine needs
type Window struct {
	Start      types.TimeString
	End        types.TimeString
	BreakStart types.TimeString // empty = no break
	BreakEnd   types.TimeString
}

// FromWorkingWindow extracts the engine input from a stored window
func FromWorkingWindow(w *domain.WorkingWindow) Window {
	out := Window{Start: w.Start, End: w.End}
	if w.HasBreak() {
		out.BreakStart = *w.BreakStart
		out.BreakEnd = *w.BreakEnd
	}
	return out
}

// Slot is one bookable interval [Start, End)
type Slot struct {
	Start        types.TimeString
	End          types.TimeString
	DisplayStart string
	DisplayEnd   string
}

// Availability is the slot list of a day plus the already booked starts
type Availability struct {
	Slots       []Slot
	BookedSlots []types.TimeString
}

// IsBooked returns true if the slot start is in the booked list
func (a Availability) IsBooked(start types.TimeString) bool {
	i := sort.Search(len(a.BookedSlots), func(i int) bool { return !a.BookedSlots[i].IsBefore(start) })
	return i < len(a.BookedSlots) && a.BookedSlots[i] == start
}

// Contains returns true if a generated slot starts at the given time
func (a Availability) Contains(start types.TimeString) bool {
	for _, s := range a.Slots {
		if s.Start == start {
			return true
		}
	}
	return false
}

// GenerateSlots splits the window into consecutive slots of durationMinutes.
//
// A slot that starts inside the break and fits before its end is skipped by
// jumping the cursor to the break end. A slot that starts before the break and
// ends inside it is still emitted.
func GenerateSlots(w Window, durationMinutes int) ([]Slot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}

	start, err := minutesOf(w.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: start: %v", ErrInvalidWindow, err)
	}
	end, err := minutesOf(w.End)
	if err != nil {
		return nil, fmt.Errorf("%w: end: %v", ErrInvalidWindow, err)
	}

	hasBreak := !w.BreakStart.IsZero() && !w.BreakEnd.IsZero()
	var breakStart, breakEnd int
	if hasBreak {
		if breakStart, err = minutesOf(w.BreakStart); err != nil {
			return nil, fmt.Errorf("%w: break start: %v", ErrInvalidWindow, err)
		}
		if breakEnd, err = minutesOf(w.BreakEnd); err != nil {
			return nil, fmt.Errorf("%w: break end: %v", ErrInvalidWindow, err)
		}
	}

	slots := make([]Slot, 0)
	cursor := start
	for cursor+durationMinutes <= end {
		if hasBreak && breakStart <= cursor && cursor < breakEnd && cursor+durationMinutes <= breakEnd {
			cursor = breakEnd
			continue
		}

		slot, err := newSlot(cursor, cursor+durationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
		}
		slots = append(slots, slot)
		cursor += durationMinutes
	}

	return slots, nil
}

// AvailableSlots generates the slots of the window and attaches the booked
// starts, sorted and de-duplicated. Booked slots stay in Slots.
func AvailableSlots(w Window, durationMinutes int, booked []types.TimeString) (Availability, error) {
	slots, err := GenerateSlots(w, durationMinutes)
	if err != nil {
		return Availability{}, err
	}

	return Availability{
		Slots:       slots,
		BookedSlots: normalizeBooked(booked),
	}, nil
}

// normalizeBooked сортирует и убирает дубликаты
func normalizeBooked(booked []types.TimeString) []types.TimeString {
	seen := make(map[types.TimeString]struct{}, len(booked))
	out := make([]types.TimeString, 0, len(booked))
	for _, b := range booked {
		if b.IsZero() {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IsBefore(out[j]) })
	return out
}

func minutesOf(t types.TimeString) (int, error) {
	if t.IsZero() {
		return 0, types.ErrInvalidTimeFormat
	}
	return t.Minutes()
}

func newSlot(from, to int) (Slot, error) {
	start, err := types.TimeStringFromMinutes(from)
	if err != nil {
		return Slot{}, err
	}
	end, err := types.TimeStringFromMinutes(to)
	if err != nil {
		return Slot{}, err
	}

	return Slot{
		Start:        start,
		End:          end,
		DisplayStart: start.Display(),
		DisplayEnd:   end.Display(),
	}, nil
}
