package curve

import "errors"

var (
	// ErrUnknownKeyHandle is the panic value (wrapped) when an unchecked
	// accessor is given a handle the curve does not know.
	ErrUnknownKeyHandle = errors.New("curve: key handle is not known to the curve")
	// ErrKeyIndexRange is the panic value (wrapped) when a key index is
	// outside [0, NumKeys()).
	ErrKeyIndexRange = errors.New("curve: key index out of range")
	// ErrDuplicateKeyHandle is the panic value (wrapped) when a key is added
	// with a handle the curve already holds.
	ErrDuplicateKeyHandle = errors.New("curve: key handle already in use on the curve")
)

var (
	ErrUnsupportedVersion  = errors.New("curve: encoded curve version is not supported")
	ErrHandleRecordInvalid = errors.New("curve: transaction handle records are not a bijection over the keys")
	ErrKeysNotSorted       = errors.New("curve: encoded keys are not sorted by time")
	ErrKeyTimeInvalid      = errors.New("curve: encoded key time is not a finite number")
	ErrModeInvalid         = errors.New("curve: encoded interpolation, tangent or extrapolation mode is unknown")
)
