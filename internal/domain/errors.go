package domain

import "errors"

var (
	// ErrConfiguration is returned when a reader cannot be built from the given inputs.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnsupportedShape is returned when a variable has a rank outside {2, 3, 4}.
	ErrUnsupportedShape = errors.New("unsupported variable shape")

	// ErrUnknownVariable is returned for names that cannot be mapped to a dataset variable.
	ErrUnknownVariable = errors.New("unknown variable")

	// ErrTimeOutOfRange is returned when a requested time lies outside the dataset coverage.
	ErrTimeOutOfRange = errors.New("time outside dataset coverage")

	// ErrEmptyQuery is returned when x or y positions are missing.
	ErrEmptyQuery = errors.New("empty horizontal query")
)
