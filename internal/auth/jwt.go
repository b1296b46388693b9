package auth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bzhu9/BasicChat/internal/config"
	"github.com/bzhu9/BasicChat/internal/identity"
)

// Validator checks bearer tokens issued by the external identity provider
// and extracts the caller's session from the claims.
type Validator struct {
	alg    string
	secret []byte
	pub    *rsa.PublicKey
}

func NewValidator(cfg config.JWT) (*Validator, error) {
	switch strings.ToUpper(cfg.Alg) {
	case "HS256":
		return &Validator{alg: "HS256", secret: []byte(cfg.HSSecret)}, nil
	case "RS256":
		b, err := os.ReadFile(cfg.PublicKeyPath)
		if err != nil {
			return nil, err
		}
		block, _ := pem.Decode(b)
		if block == nil {
			return nil, errors.New("failed to decode public key")
		}
		pubIfc, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		pub, ok := pubIfc.(*rsa.PublicKey)
		if !ok {
			return nil, errors.New("not an rsa public key")
		}
		return &Validator{alg: "RS256", pub: pub}, nil
	default:
		return nil, errors.New("invalid jwt alg")
	}
}

func (v *Validator) key(t *jwt.Token) (interface{}, error) {
	if v.alg == "HS256" {
		return v.secret, nil
	}
	return v.pub, nil
}

// Session validates the token and builds the caller's identity from the
// sub/first_name/last_name claims.
func (v *Validator) Session(tokenStr string) (identity.Session, error) {
	tok, err := jwt.Parse(tokenStr, v.key, jwt.WithValidMethods([]string{v.alg}))
	if err != nil {
		return identity.Session{}, err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return identity.Session{}, errors.New("invalid token")
	}
	email, _ := claims["sub"].(string)
	if email == "" {
		return identity.Session{}, errors.New("missing sub claim")
	}
	s := identity.Session{Email: email}
	s.FirstName, _ = claims["first_name"].(string)
	s.LastName, _ = claims["last_name"].(string)
	return s, nil
}
