package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidDay         = errors.New("invalid day of week")
	ErrDayIndexOutOfRange = errors.New("day index out of range (must be 0-6)")
)

type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// DaysOfWeek is the canonical day order used for storage and iteration.
var DaysOfWeek = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayAbbreviations = map[Day]string{
	Monday:    "MON",
	Tuesday:   "TUE",
	Wednesday: "WED",
	Thursday:  "THU",
	Friday:    "FRI",
	Saturday:  "SAT",
	Sunday:    "SUN",
}

func ParseDay(s string) (Day, error) {
	d := Day(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := dayAbbreviations[d]; !ok {
		return "", ErrInvalidDay
	}
	return d, nil
}

// DayFromTime maps a wall-clock time to its canonical day name,
// independent of locale.
func DayFromTime(t time.Time) Day {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

func (d Day) Abbreviation() string {
	return dayAbbreviations[d]
}

// Index returns the canonical position of the day, or -1 if unknown.
func (d Day) Index() int {
	for i, day := range DaysOfWeek {
		if day == d {
			return i
		}
	}
	return -1
}

// ScheduleItem assigns at most one list to a day slot. ListName is a
// projection of the referenced list's name and is never trusted from
// storage.
type ScheduleItem struct {
	Day      Day     `json:"day"`
	ListID   *string `json:"listId"`
	ListName *string `json:"listName"`
}

func (s ScheduleItem) IsAssigned() bool {
	return s.ListID != nil
}

// TodaysAssignment is the derived answer to "what applies today".
type TodaysAssignment struct {
	Day  Day        `json:"day"`
	List *HabitList `json:"list"`
}

// ScheduleSnapshot is the read-only state observed by view collaborators.
type ScheduleSnapshot struct {
	Items          []ScheduleItem `json:"items"`
	AvailableLists []HabitList    `json:"available_lists"`
	IsLoading      bool           `json:"is_loading"`
}

// NewCanonicalSchedule returns the seven unassigned day slots.
func NewCanonicalSchedule() []ScheduleItem {
	items := make([]ScheduleItem, len(DaysOfWeek))
	for i, day := range DaysOfWeek {
		items[i] = ScheduleItem{Day: day}
	}
	return items
}

// ResolveListName looks the list up by ID. A nil ID or a reference to a
// list that no longer exists resolves to nil.
func ResolveListName(listID *string, lists []HabitList) *string {
	if listID == nil {
		return nil
	}
	list, ok := FindList(lists, *listID)
	if !ok {
		return nil
	}
	name := list.Name
	return &name
}

// ReconcileSchedule merges a persisted schedule with the current lists.
// The result always holds the seven canonical days in order. A persisted
// schedule with any other entry count is discarded. Stale list IDs are
// kept but resolve to a nil name.
func ReconcileSchedule(persisted []ScheduleItem, lists []HabitList) []ScheduleItem {
	if len(persisted) != len(DaysOfWeek) {
		persisted = nil
	}

	byDay := make(map[Day]ScheduleItem, len(persisted))
	for _, item := range persisted {
		byDay[item.Day] = item
	}

	out := make([]ScheduleItem, len(DaysOfWeek))
	for i, day := range DaysOfWeek {
		item, ok := byDay[day]
		if !ok {
			out[i] = ScheduleItem{Day: day}
			continue
		}
		out[i] = ScheduleItem{
			Day:      day,
			ListID:   cloneString(item.ListID),
			ListName: ResolveListName(item.ListID, lists),
		}
	}
	return out
}

// RefreshListNames recomputes every ListName against lists in place.
func RefreshListNames(items []ScheduleItem, lists []HabitList) {
	for i := range items {
		items[i].ListName = ResolveListName(items[i].ListID, lists)
	}
}

func CloneSchedule(items []ScheduleItem) []ScheduleItem {
	out := make([]ScheduleItem, len(items))
	for i, item := range items {
		out[i] = ScheduleItem{
			Day:      item.Day,
			ListID:   cloneString(item.ListID),
			ListName: cloneString(item.ListName),
		}
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
