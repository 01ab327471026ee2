package scan

import "errors"

// ErrChannel is returned when the scan session's raw socket cannot be
// opened at all. It is fatal to the session: no sender/receiver pair is
// started.
var ErrChannel = errors.New("scan: channel error")
