package classify

import "errors"

// ErrInvalidRange is returned by Entropy when bit_start >= bit_end.
var ErrInvalidRange = errors.New("classify: invalid bit range")
