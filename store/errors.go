package store

import "errors"

var (
	// ErrIDKeyRequired is returned when the resolved id key is empty.
	ErrIDKeyRequired = errors.New("entitystore: idKey is required in EntityStore")
)
