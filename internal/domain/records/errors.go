package records

import "errors"

var ErrNotFound = errors.New("medical history entry not found")
