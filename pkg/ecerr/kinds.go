package ecerr

// These constants are used to identify a specific Error.
const (
	// ErrFieldMismatch is raised when two field elements with different
	// primes are combined.
	ErrFieldMismatch = ErrorKind("ErrFieldMismatch")

	// ErrDivisionByZero is raised when a field element is divided by the
	// zero element.
	ErrDivisionByZero = ErrorKind("ErrDivisionByZero")

	// ErrElementOutOfRange is returned when a field element is constructed
	// from a number outside [0, prime).
	ErrElementOutOfRange = ErrorKind("ErrElementOutOfRange")

	// ErrCurveMismatch is returned when two points on curves with different
	// coefficients are added.
	ErrCurveMismatch = ErrorKind("ErrCurveMismatch")

	// ErrPointNotOnCurve is returned when the coordinates of a finite point
	// do not satisfy the curve equation.
	ErrPointNotOnCurve = ErrorKind("ErrPointNotOnCurve")

	// ErrInvalidPointEncoding is returned when a SEC encoded point has an
	// unknown prefix byte or the wrong length.
	ErrInvalidPointEncoding = ErrorKind("ErrInvalidPointEncoding")

	// ErrInvalidSecret is returned when a private key secret is not in
	// [1, N-1].
	ErrInvalidSecret = ErrorKind("ErrInvalidSecret")

	// ErrNonceExhausted is returned when deterministic nonce generation does
	// not produce a valid candidate within the iteration limit.
	ErrNonceExhausted = ErrorKind("ErrNonceExhausted")

	// ErrInvalidDigest is returned when a message digest to sign is
	// negative or wider than 256 bits.
	ErrInvalidDigest = ErrorKind("ErrInvalidDigest")

	// ErrSigTooShort is returned when a DER signature is too short.
	ErrSigTooShort = ErrorKind("ErrSigTooShort")

	// ErrSigTooLong is returned when a DER signature is too long.
	ErrSigTooLong = ErrorKind("ErrSigTooLong")

	// ErrSigInvalidSeqID is returned when a DER signature does not start
	// with the ASN.1 sequence identifier.
	ErrSigInvalidSeqID = ErrorKind("ErrSigInvalidSeqID")

	// ErrSigInvalidDataLen is returned when the sequence length of a DER
	// signature does not match the remaining bytes.
	ErrSigInvalidDataLen = ErrorKind("ErrSigInvalidDataLen")

	// ErrSigInvalidIntID is returned when R or S is not introduced by the
	// ASN.1 integer identifier.
	ErrSigInvalidIntID = ErrorKind("ErrSigInvalidIntID")

	// ErrSigInvalidIntLen is returned when the length of R or S is zero or
	// runs past the end of the signature.
	ErrSigInvalidIntLen = ErrorKind("ErrSigInvalidIntLen")

	// ErrSigNegativeInt is returned when R or S has the high bit set.
	ErrSigNegativeInt = ErrorKind("ErrSigNegativeInt")

	// ErrSigTooMuchPadding is returned when R or S carries a leading zero
	// byte that is not required.
	ErrSigTooMuchPadding = ErrorKind("ErrSigTooMuchPadding")

	// ErrInvalidBase58 is returned when a string contains characters outside
	// the Bitcoin base58 alphabet.
	ErrInvalidBase58 = ErrorKind("ErrInvalidBase58")

	// ErrBadChecksum is returned when the checksum of a Base58Check string
	// does not match its payload.
	ErrBadChecksum = ErrorKind("ErrBadChecksum")

	// ErrInvalidWIF is returned when a decoded WIF payload has an unknown
	// version byte, the wrong length or a bad compression flag.
	ErrInvalidWIF = ErrorKind("ErrInvalidWIF")
)
