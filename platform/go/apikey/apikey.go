package apikey

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// Scheme is the fixed first segment of every key.
	Scheme = "sk"
	// EnvLive is the only environment tag currently issued.
	EnvLive = "live"

	secretBytes      = 32
	lookupPrefixSize = 8
)

var recognizedEnvs = map[string]struct{}{EnvLive: {}}

// ErrMalformed is returned for keys that do not follow the sk_<env>_<secret> format.
var ErrMalformed = errors.New("malformed api key")

// Issued is a freshly generated key. Full is shown to the caller once and never stored.
type Issued struct {
	Full   string
	Prefix string
	Hash   string
}

// Generate creates a new key with a random hex secret and its bcrypt hash.
func Generate() (Issued, error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return Issued{}, fmt.Errorf("generate api key secret: %w", err)
	}
	secret := hex.EncodeToString(buf)
	full := Scheme + "_" + EnvLive + "_" + secret

	hash, err := bcrypt.GenerateFromPassword([]byte(full), bcrypt.DefaultCost)
	if err != nil {
		return Issued{}, fmt.Errorf("hash api key: %w", err)
	}

	return Issued{
		Full:   full,
		Prefix: lookupPrefix(EnvLive, secret),
		Hash:   string(hash),
	}, nil
}

// LookupPrefix validates the format of raw and returns the prefix used to find its record.
func LookupPrefix(raw string) (string, error) {
	parts := strings.Split(strings.TrimSpace(raw), "_")
	if len(parts) != 3 || parts[0] != Scheme {
		return "", ErrMalformed
	}
	if _, ok := recognizedEnvs[parts[1]]; !ok {
		return "", ErrMalformed
	}
	if len(parts[2]) < lookupPrefixSize {
		return "", ErrMalformed
	}
	return lookupPrefix(parts[1], parts[2]), nil
}

// Verify compares the presented key with a stored hash in constant time.
func Verify(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(strings.TrimSpace(raw))) == nil
}

func lookupPrefix(env, secret string) string {
	return Scheme + "_" + env + "_" + secret[:lookupPrefixSize]
}
