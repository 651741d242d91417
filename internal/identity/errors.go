package identity

import "errors"

var (
	ErrNoIdentity       = errors.New("no identity found")
	ErrEmptyName        = errors.New("spiritual name is empty")
	ErrUnknownSymbol    = errors.New("unknown symbol")
	ErrChecksumMismatch = errors.New("invalid identity data (checksum mismatch)")
	ErrMalformedPackage = errors.New("invalid identity file format")
)
