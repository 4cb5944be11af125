package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

// ListBuilder holds the draft behind the list editor. A builder belongs
// to a single editing session and is not safe for concurrent use.
type ListBuilder struct {
	lists     *ListService
	draft     domain.HabitList
	editingID string
}

func NewListBuilder(lists *ListService) *ListBuilder {
	b := &ListBuilder{lists: lists}
	b.PrepareForCreateNew()
	return b
}

// PrepareForCreateNew clears the draft for a brand-new list.
func (b *ListBuilder) PrepareForCreateNew() {
	b.draft = domain.HabitList{
		Morning:   []domain.HabitItem{},
		Afternoon: []domain.HabitItem{},
		Evening:   []domain.HabitItem{},
	}
	b.editingID = ""
}

// InitializeForEdit loads a copy of list into the draft.
func (b *ListBuilder) InitializeForEdit(list domain.HabitList) {
	b.draft = list.Clone()
	b.draft.Normalize()
	b.editingID = list.ID
}

func (b *ListBuilder) EditingID() string {
	return b.editingID
}

func (b *ListBuilder) Draft() domain.HabitList {
	d := b.draft.Clone()
	d.ID = b.editingID
	return d
}

func (b *ListBuilder) SetName(name string) {
	b.draft.Name = name
}

// AddHabitToSection appends item unless the section already holds it.
// It reports whether the draft changed.
func (b *ListBuilder) AddHabitToSection(item domain.HabitItem, section domain.Section) (bool, error) {
	if _, err := domain.ParseSection(string(section)); err != nil {
		return false, err
	}
	if b.draft.ContainsItem(section, item.ID) {
		return false, nil
	}

	items := append(append([]domain.HabitItem{}, b.draft.Items(section)...), item)
	return true, b.draft.SetItems(section, items)
}

// SetHabitsForSection replaces the whole ordered section.
func (b *ListBuilder) SetHabitsForSection(items []domain.HabitItem, section domain.Section) error {
	next := append([]domain.HabitItem{}, items...)
	return b.draft.SetItems(section, next)
}

func (b *ListBuilder) RemoveHabitFromSection(id string, section domain.Section) error {
	return b.draft.SetItems(section, domain.RemoveItem(b.draft.Items(section), id))
}

func (b *ListBuilder) MoveHabit(section domain.Section, from, to int) error {
	if _, err := domain.ParseSection(string(section)); err != nil {
		return err
	}
	moved, err := domain.MoveItem(b.draft.Items(section), from, to)
	if err != nil {
		return err
	}
	return b.draft.SetItems(section, moved)
}

// Save persists the draft and resets the builder on success. A failed
// save keeps the draft so the user can correct it.
func (b *ListBuilder) Save(ctx context.Context) (domain.HabitList, error) {
	saved, err := b.lists.Save(ctx, b.Draft())
	if err != nil {
		return domain.HabitList{}, err
	}
	b.PrepareForCreateNew()
	return saved, nil
}

// DeleteEditing removes the list being edited and resets the builder.
func (b *ListBuilder) DeleteEditing(ctx context.Context) error {
	if b.editingID == "" {
		b.PrepareForCreateNew()
		return nil
	}
	if err := b.lists.Delete(ctx, b.editingID); err != nil {
		return err
	}
	b.PrepareForCreateNew()
	return nil
}
