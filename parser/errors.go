package parser

import (
	"errors"
	"fmt"
)

var (
	ImageNotFoundError       = errors.New("ImageNotFoundError")
	ImageUnreadableError     = errors.New("ImageUnreadableError")
	ImageTooShortError       = errors.New("ImageTooShortError")
	OutOfRangeError          = errors.New("OutOfRangeError")
	NoMatchingPartitionError = errors.New("NoMatchingPartitionError")
	InvalidBootSectorError   = errors.New("InvalidBootSectorError")
	MalformedAttributeError  = errors.New("MalformedAttributeError")
)

func tooShort(what string, offset int64, want, got int) error {
	return fmt.Errorf("%w: %s needs %d bytes at %#x, got %d",
		ImageTooShortError, what, want, offset, got)
}
