package token

import "unicode"

// Identity is a validated holder address. Address-format rules beyond the
// basic shape (bech32 checksums and the like) belong to the host; the engine
// only refuses input that can never be a canonical address.
type Identity string

// ValidateIdentity checks the basic shape of an address string: non-empty,
// no whitespace, no upper-case letters (canonical addresses are lower-case).
func ValidateIdentity(raw string) (Identity, error) {
	if raw == "" {
		return "", ErrInvalidIdentity
	}
	for _, r := range raw {
		if unicode.IsSpace(r) || unicode.IsUpper(r) {
			return "", ErrInvalidIdentity
		}
	}
	return Identity(raw), nil
}
