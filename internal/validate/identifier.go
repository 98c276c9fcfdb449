package validate

import (
	"fmt"

	"github.com/google/uuid"
)

// canonicalLen is the length of the hyphenated 8-4-4-4-12 hex layout.
const canonicalLen = 36

// IdentifierInput is one of the accepted external representations of an
// identifier. Build values with IDString, IDBytes or IDValue.
type IdentifierInput interface {
	identifierInput()
}

type idString string

type idBytes []byte

type idValue uuid.UUID

func (idString) identifierInput() {}
func (idBytes) identifierInput()  {}
func (idValue) identifierInput()  {}

// IDString wraps a human readable identifier such as
// "8f1d2c3a-5b6e-4f70-8a9b-0c1d2e3f4a5b".
func IDString(s string) IdentifierInput { return idString(s) }

// IDBytes wraps the 16-byte binary form stored in binary(16) columns.
func IDBytes(b []byte) IdentifierInput { return idBytes(b) }

// IDValue wraps an identifier that is already a uuid.UUID.
func IDValue(u uuid.UUID) IdentifierInput { return idValue(u) }

// ValidateIdentifier normalizes in into a uuid.UUID and checks that it is a
// random (version 4, RFC 4122 variant) identifier.
func ValidateIdentifier(in IdentifierInput) (uuid.UUID, error) {
	var (
		u   uuid.UUID
		err error
	)
	switch v := in.(type) {
	case idBytes:
		if len(v) != 16 {
			return uuid.Nil, fmt.Errorf("%w: identifier blob must be 16 bytes, got %d", ErrInvalidFormat, len(v))
		}
		raw, ferr := uuid.FromBytes(v)
		if ferr != nil {
			return uuid.Nil, fmt.Errorf("%w: identifier blob: %v", ErrInvalidFormat, ferr)
		}
		// re-encode to the hyphenated layout so both paths share one parser
		u, err = parseCanonical(raw.String())
	case idString:
		u, err = parseCanonical(string(v))
	case idValue:
		u = uuid.UUID(v)
	default:
		return uuid.Nil, fmt.Errorf("%w: unsupported identifier input %T", ErrInvalidFormat, in)
	}
	if err != nil {
		return uuid.Nil, err
	}
	if u.Variant() != uuid.RFC4122 || u.Version() != 4 {
		return uuid.Nil, fmt.Errorf("%w: identifier %s is version %d, want 4", ErrWrongVersion, u, u.Version())
	}
	return u, nil
}

// ParseIdentifier is shorthand for ValidateIdentifier(IDString(s)).
func ParseIdentifier(s string) (uuid.UUID, error) {
	return ValidateIdentifier(IDString(s))
}

// parseCanonical accepts only the 36 character hyphenated form; uuid.Parse on
// its own also takes urn, braced and unhyphenated layouts.
func parseCanonical(s string) (uuid.UUID, error) {
	if len(s) != canonicalLen {
		return uuid.Nil, fmt.Errorf("%w: identifier must be %d characters, got %d", ErrInvalidFormat, canonicalLen, len(s))
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: identifier %q: %v", ErrInvalidFormat, s, err)
	}
	return u, nil
}
