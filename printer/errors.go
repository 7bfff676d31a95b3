package printer

import (
	"errors"
	"fmt"
)

// ErrMismatch marks a protocol-level failure: the device answered with the
// wrong length or the wrong bytes. The sequence stops issuing further
// commands but the device is still in a known state, so the job can be
// closed out with a cancel.
var ErrMismatch = errors.New("response mismatch")

// TransportError is a bulk-transfer fault: an I/O error or a short write
// on a fixed-size transfer. The device's internal state is unknown after
// one of these, so the protocol offers no recovery path.
type TransportError struct {
	Op  string // "send" or "receive"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err is (or wraps) a fatal bus fault,
// as opposed to a recoverable protocol mismatch.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
