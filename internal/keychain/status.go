package keychain

import (
	"errors"
	"fmt"
)

// Status is a result code reported by a credential store.
//
// Codes share their values with the Security framework's OSStatus
// so that they line up with what users see in system logs.
// Status implements error;
// backends report failures as a Status or wrap one.
type Status int32

// Known status codes.
const (
	StatusSuccess               Status = 0
	StatusUnimplemented         Status = -4
	StatusIO                    Status = -36
	StatusParam                 Status = -50
	StatusAllocate              Status = -108
	StatusInternal              Status = -2070
	StatusNotAvailable          Status = -25291
	StatusAuthFailed            Status = -25293
	StatusDuplicateItem         Status = -25299
	StatusItemNotFound          Status = -25300
	StatusInteractionNotAllowed Status = -25308
	StatusDecode                Status = -26275
)

var (
	// ErrItemNotFound reports that no record matched a query.
	ErrItemNotFound error = StatusItemNotFound

	// ErrDuplicateItem reports that an insert collided
	// with an existing record.
	ErrDuplicateItem error = StatusDuplicateItem
)

var _statusText = map[Status]string{
	StatusSuccess:               "no error",
	StatusUnimplemented:         "function or operation not implemented",
	StatusIO:                    "I/O error",
	StatusParam:                 "one or more parameters passed to a function were not valid",
	StatusAllocate:              "failed to allocate memory",
	StatusInternal:              "internal error in a credential store component",
	StatusNotAvailable:          "no keychain is available",
	StatusAuthFailed:            "the user name or passphrase you entered is not correct",
	StatusDuplicateItem:         "the specified item already exists in the keychain",
	StatusItemNotFound:          "the specified item could not be found in the keychain",
	StatusInteractionNotAllowed: "user interaction is not allowed",
	StatusDecode:                "unable to decode the provided data",
}

// Error returns a description of the status and its code.
func (s Status) Error() string {
	text, ok := _statusText[s]
	if !ok {
		text = "unknown status"
	}
	return fmt.Sprintf("%s (%d)", text, int32(s))
}

// StatusOf reports the status carried by err.
//
// It returns StatusSuccess for a nil error,
// and StatusInternal if err does not wrap a Status.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}

	var s Status
	if errors.As(err, &s) {
		return s
	}
	return StatusInternal
}
