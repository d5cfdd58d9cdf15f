package session

import (
	"errors"
	"fmt"

	"github.com/dgrijalva/jwt-go"
)

// Session is the portal's belief that a vendor is authenticated: the bearer
// token plus the identity fields embedded in its payload. The identity is
// advisory: it drives display and vendor-scoped URLs, never an
// authorization decision. The backend re-validates the token on every call.
type Session struct {
	Token    string
	VendorID int64
	Username string
}

// ErrMalformedToken indicates a token whose payload could not be decoded.
// Under correct server behaviour this is unreachable; it signals a client
// bug or tampering, not a normal condition.
var ErrMalformedToken = errors.New("malformed session token")

// FromToken extracts the vendor identity from the token's claims WITHOUT
// verifying the signature. Signature verification is the backend's job; the
// portal trusts transport-level integrity and only needs the embedded
// display identity.
func FromToken(token string) (Session, error) {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	username, _ := claims["sub"].(string)
	// JSON numbers decode as float64; vendor ids are small enough that the
	// conversion is exact.
	vendorID, ok := claims["vendorId"].(float64)
	if username == "" || !ok {
		return Session{}, fmt.Errorf("%w: missing vendorId or sub claim", ErrMalformedToken)
	}

	return Session{
		Token:    token,
		VendorID: int64(vendorID),
		Username: username,
	}, nil
}
