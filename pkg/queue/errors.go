package queue

import "errors"

var ErrNotInDLQ = errors.New("notification not found in DLQ")
