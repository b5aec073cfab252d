// Package filter narrows directory and appointment listings by free text and
// structured predicates. Functions never modify their inputs.
package filter

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mediqueue/backend/internal/domain/entities"
)

// StatusAll disables status filtering
const StatusAll = "all"

// SearchFacilities matches query against name, city and zip code. A blank
// query yields no results rather than the whole list.
func SearchFacilities(items []*entities.Facility, query string) entities.FacilitySearchResult {
	result := entities.FacilitySearchResult{
		Results:     []*entities.FacilityView{},
		HasSearched: true,
		Query:       query,
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return result
	}

	for _, facility := range items {
		if facility == nil {
			continue
		}
		if containsFold(facility.Name, needle) ||
			containsFold(facility.Address.City, needle) ||
			containsFold(facility.Address.ZipCode, needle) {
			result.Results = append(result.Results, &entities.FacilityView{Facility: facility})
		}
	}
	return result
}

// HistoryFilter holds the appointment history predicates. Zero values pass
// everything.
type HistoryFilter struct {
	Status string
	Date   *time.Time
	Query  string
}

// FilterHistory returns the appointments matching every predicate of f
func FilterHistory(items []*entities.Appointment, f HistoryFilter) []*entities.Appointment {
	needle := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]*entities.Appointment, 0, len(items))
	for _, appt := range items {
		if appt == nil || !matchesStatus(appt, f.Status) {
			continue
		}
		if f.Date != nil && !sameDay(appt.Date, *f.Date) {
			continue
		}
		if needle != "" &&
			!containsFold(appt.DoctorName, needle) &&
			!containsFold(appt.Department, needle) &&
			!containsFold(appt.Notes, needle) {
			continue
		}
		out = append(out, appt)
	}
	return out
}

// FilterSchedule keeps appointments with the given status and orders them
// chronologically
func FilterSchedule(items []*entities.Appointment, status string) []*entities.Appointment {
	out := make([]*entities.Appointment, 0, len(items))
	for _, appt := range items {
		if appt != nil && matchesStatus(appt, status) {
			out = append(out, appt)
		}
	}
	return SortChronologically(out)
}

// SortChronologically returns a copy ordered by calendar day, then by time
// slot. Unreadable slots go last within their day; ties keep input order.
// Nil entries are dropped.
func SortChronologically(items []*entities.Appointment) []*entities.Appointment {
	out := make([]*entities.Appointment, 0, len(items))
	for _, appt := range items {
		if appt != nil {
			out = append(out, appt)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := dayKey(out[i].Date), dayKey(out[j].Date)
		if di != dj {
			return di < dj
		}
		return SlotSortKey(out[i].TimeSlot) < SlotSortKey(out[j].TimeSlot)
	})
	return out
}

// ErrInvalidSlot is returned by SlotMinutes for labels it cannot read
var ErrInvalidSlot = errors.New("invalid time slot")

// SlotMinutes converts a "hh:mm AM/PM" or 24-hour "HH:MM" label to minutes
// since midnight.
func SlotMinutes(label string) (int, error) {
	value := strings.ToUpper(strings.TrimSpace(label))

	meridiem := ""
	switch {
	case strings.HasSuffix(value, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(value, "PM"):
		meridiem = "PM"
	}
	value = strings.TrimSpace(strings.TrimSuffix(value, meridiem))

	hh, mm, found := strings.Cut(value, ":")
	if !found || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSlot, label)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSlot, label)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSlot, label)
	}

	if meridiem == "" {
		if hour < 0 || hour > 23 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSlot, label)
		}
		return hour*60 + minute, nil
	}

	if hour < 1 || hour > 12 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSlot, label)
	}
	hour %= 12
	if meridiem == "PM" {
		hour += 12
	}
	return hour*60 + minute, nil
}

// SlotSortKey is the ordering key of a slot label: its minutes since midnight,
// or 1440 for labels SlotMinutes cannot read.
func SlotSortKey(label string) int {
	minutes, err := SlotMinutes(label)
	if err != nil {
		return 24 * 60
	}
	return minutes
}

func dayKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

func sameDay(a, b time.Time) bool {
	return dayKey(a) == dayKey(b)
}

func matchesStatus(appt *entities.Appointment, status string) bool {
	status = strings.TrimSpace(status)
	if status == "" || strings.EqualFold(status, StatusAll) {
		return true
	}
	return strings.EqualFold(string(appt.Status), status)
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}
