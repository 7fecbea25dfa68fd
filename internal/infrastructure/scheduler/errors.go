package scheduler

import "errors"

// ErrInvalidConfig is returned when a job is missing its name, function or interval
var ErrInvalidConfig = errors.New("invalid scheduler configuration")
