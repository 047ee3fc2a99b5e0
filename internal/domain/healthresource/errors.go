package healthresource

import "errors"

var ErrNotFound = errors.New("health resource not found")
