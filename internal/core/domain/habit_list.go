package domain

import (
	"errors"
	"strings"
)

var (
	ErrListNameEmpty       = errors.New("list name cannot be empty")
	ErrListNotFound        = errors.New("list not found")
	ErrInvalidSection      = errors.New("invalid section (must be morning, afternoon or evening)")
	ErrItemIndexOutOfRange = errors.New("item index out of range")
)

type Section string

const (
	SectionMorning   Section = "morning"
	SectionAfternoon Section = "afternoon"
	SectionEvening   Section = "evening"
)

var Sections = []Section{SectionMorning, SectionAfternoon, SectionEvening}

func ParseSection(s string) (Section, error) {
	switch sec := Section(strings.ToLower(strings.TrimSpace(s))); sec {
	case SectionMorning, SectionAfternoon, SectionEvening:
		return sec, nil
	default:
		return "", ErrInvalidSection
	}
}

// HabitList is a named collection of habits grouped into three ordered
// sections. Section order is user-significant and preserved on save.
type HabitList struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Morning   []HabitItem `json:"morning"`
	Afternoon []HabitItem `json:"afternoon"`
	Evening   []HabitItem `json:"evening"`
}

// NormalizeListName trims the name and rejects blank names.
func NormalizeListName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrListNameEmpty
	}
	return trimmed, nil
}

func (l HabitList) Items(section Section) []HabitItem {
	switch section {
	case SectionMorning:
		return l.Morning
	case SectionAfternoon:
		return l.Afternoon
	case SectionEvening:
		return l.Evening
	}
	return nil
}

func (l *HabitList) SetItems(section Section, items []HabitItem) error {
	switch section {
	case SectionMorning:
		l.Morning = items
	case SectionAfternoon:
		l.Afternoon = items
	case SectionEvening:
		l.Evening = items
	default:
		return ErrInvalidSection
	}
	return nil
}

// Clone returns a deep copy so callers can edit sections without
// aliasing the stored list.
func (l HabitList) Clone() HabitList {
	return HabitList{
		ID:        l.ID,
		Name:      l.Name,
		Morning:   cloneItems(l.Morning),
		Afternoon: cloneItems(l.Afternoon),
		Evening:   cloneItems(l.Evening),
	}
}

// Normalize replaces nil sections with empty ones and drops repeated
// item IDs within a section, keeping the first occurrence.
func (l *HabitList) Normalize() {
	l.Morning = dedupeItems(l.Morning)
	l.Afternoon = dedupeItems(l.Afternoon)
	l.Evening = dedupeItems(l.Evening)
}

func cloneItems(items []HabitItem) []HabitItem {
	out := make([]HabitItem, len(items))
	copy(out, items)
	return out
}

func dedupeItems(items []HabitItem) []HabitItem {
	seen := make(map[string]bool, len(items))
	out := make([]HabitItem, 0, len(items))
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out
}

// ContainsItem reports whether the section already holds an item with id.
func (l HabitList) ContainsItem(section Section, id string) bool {
	return indexOfItem(l.Items(section), id) >= 0
}

// MoveItem is a true positional move inside a section.
func MoveItem(items []HabitItem, from, to int) ([]HabitItem, error) {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return nil, ErrItemIndexOutOfRange
	}

	out := cloneItems(items)
	if from == to {
		return out, nil
	}

	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]HabitItem{moved}, out[to:]...)...)
	return out, nil
}

// RemoveItem drops every occurrence of id from the section.
func RemoveItem(items []HabitItem, id string) []HabitItem {
	out := make([]HabitItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

func FindList(lists []HabitList, id string) (HabitList, bool) {
	for _, l := range lists {
		if l.ID == id {
			return l, true
		}
	}
	return HabitList{}, false
}

func CloneLists(lists []HabitList) []HabitList {
	out := make([]HabitList, len(lists))
	for i, l := range lists {
		out[i] = l.Clone()
	}
	return out
}
