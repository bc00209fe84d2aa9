package stream

import "errors"

var (
	// ErrMissingImage is returned when a record lacks the image needed to apply it.
	ErrMissingImage = errors.New("entitystore: stream record has no image")

	// ErrMissingID is returned when a decoded image has no usable identifier.
	ErrMissingID = errors.New("entitystore: stream image has no identifier")
)
