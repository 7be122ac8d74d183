package repository

import "errors"

// Repository-level sentinel errors. The service layer translates these into
// domain errors so the business logic never sees sql.ErrNoRows or driver
// constraint codes directly.

var (
	// ErrNotFound is returned when a point lookup finds no row.
	ErrNotFound = errors.New("repository: not found")

	// ErrThreadNotFound is returned when a message insert references a thread
	// id that does not name a live thread. The foreign-key constraint at the
	// store enforces this; the repository surfaces it as a typed failure.
	ErrThreadNotFound = errors.New("repository: thread not found")
)
