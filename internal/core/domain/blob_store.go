package domain

import (
	"context"
	"errors"
)

var (
	ErrBlobNotFound = errors.New("blob not found")
	ErrStorage      = errors.New("storage failure")

	// ErrRecordMalformed marks a stored record that does not parse or does
	// not have the expected shape.
	ErrRecordMalformed = errors.New("stored record is malformed")
)

// Record keys. Each record holds a complete JSON snapshot and is fully
// replaced on every write.
const (
	ListsKey    = "lists"
	ScheduleKey = "schedule"
	LibraryKey  = "habit_library"
)

type BlobStore interface {
	// Get returns the payload stored under key, or ErrBlobNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set replaces the payload stored under key in a single write.
	Set(ctx context.Context, key, value string) error
}
