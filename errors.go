package bloom

import (
	"github.com/pkg/errors"
)

// ErrInvalidParameters is returned by the constructors when the capacity is zero
// or the false positive rate is outside of the open interval (0, 1).
var ErrInvalidParameters = errors.New("bloom: invalid filter parameters")

var (
	ErrBadMagic       = errors.New("bloom: stream magic invalid")
	ErrBadVersion     = errors.New("bloom: stream version unsupported")
	ErrBadHashFamily  = errors.New("bloom: stream hash family unsupported")
	ErrCorruptPayload = errors.New("bloom: stream payload does not match its header")
)
