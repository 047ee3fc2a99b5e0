package billing

import "errors"

var (
	ErrNotFound    = errors.New("bill not found")
	ErrAlreadyPaid = errors.New("bill is already paid")
)
