// Package ecerr defines the error kinds shared by the field, curve and
// secp256k1 packages.
//
// Every error produced by this module is either an ErrorKind or an Error
// wrapping one, so callers can use errors.Is against the exported kinds and
// errors.As to extract the kind:
//
//	if errors.Is(err, ecerr.ErrInvalidPointEncoding) {
//	    // reject the input
//	}
package ecerr

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to field arithmetic, the group law or one
// of the encodings.  It has full support for errors.Is and errors.As, so the
// caller can ascertain the specific reason for the error by checking the
// underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// New creates an Error given a set of arguments.
func New(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
