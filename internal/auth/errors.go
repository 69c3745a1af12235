package auth

import "errors"

var (
	// ErrInvalidToken indicates a token with a bad signature, shape, issuer or expiry.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnauthenticated indicates the caller could not be identified.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrForbidden indicates an identified caller lacking the required role.
	ErrForbidden = errors.New("insufficient privileges")
	// ErrPasswordTooLong indicates a plaintext beyond bcrypt's 72 byte input limit.
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)
