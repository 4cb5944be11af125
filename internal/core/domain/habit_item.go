package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrHabitItemInvalid  = errors.New("habit item requires a name and an emoji")
	ErrHabitItemNotFound = errors.New("habit item not found")
)

// HabitItem is a single habit a user can place in a list section.
// Items are copied by value into lists, so the same ID may legally
// appear in several lists or sections.
type HabitItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

func validateHabitItem(name, emoji string) (string, string, error) {
	cleanName := strings.TrimSpace(name)
	cleanEmoji := strings.TrimSpace(emoji)
	if cleanName == "" || cleanEmoji == "" {
		return "", "", ErrHabitItemInvalid
	}
	return cleanName, cleanEmoji, nil
}

func NewHabitItem(name, emoji string) (HabitItem, error) {
	cleanName, cleanEmoji, err := validateHabitItem(name, emoji)
	if err != nil {
		return HabitItem{}, err
	}

	return HabitItem{
		ID:    uuid.New().String(),
		Name:  cleanName,
		Emoji: cleanEmoji,
	}, nil
}

// Update edits the content of the item in place. The ID never changes.
func (h *HabitItem) Update(name, emoji string) error {
	cleanName, cleanEmoji, err := validateHabitItem(name, emoji)
	if err != nil {
		return err
	}

	h.Name = cleanName
	h.Emoji = cleanEmoji
	return nil
}

// DefaultLibrary returns the starter catalogue offered before the user
// has customised their habit library. Every call generates fresh IDs.
func DefaultLibrary() []HabitItem {
	seed := []struct{ name, emoji string }{
		{"Walking", "🚶"},
		{"Stretching", "🧘"},
		{"Meditation", "🙏"},
		{"Gym", "💪"},
		{"Reading", "📚"},
		{"Journaling", "✏️"},
		{"Yoga", "🤸"},
		{"Hydrate", "💧"},
		{"Mindful eating", "🥗"},
	}

	items := make([]HabitItem, 0, len(seed))
	for _, s := range seed {
		items = append(items, HabitItem{
			ID:    uuid.New().String(),
			Name:  s.name,
			Emoji: s.emoji,
		})
	}
	return items
}

func indexOfItem(items []HabitItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// FindHabitItem looks an item up by ID.
func FindHabitItem(items []HabitItem, id string) (HabitItem, bool) {
	idx := indexOfItem(items, id)
	if idx < 0 {
		return HabitItem{}, false
	}
	return items[idx], true
}
