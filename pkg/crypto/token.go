package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
)

const DefaultTokenLength = 32 // 256 bits

// TokenPair is a freshly minted session credential: the raw token goes
// to the client, only the hash is ever stored.
type TokenPair struct {
	Token string // value returned to client
	Hash  string // value in storage
}

// GenerateToken returns a TokenPair with byteLength random bytes of
// entropy. Non-positive lengths fall back to DefaultTokenLength.
func GenerateToken(byteLength int) (*TokenPair, error) {
	if byteLength <= 0 {
		byteLength = DefaultTokenLength
	}

	raw := make([]byte, byteLength)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}

	token := base64.RawURLEncoding.EncodeToString(raw)
	return &TokenPair{
		Token: token,
		Hash:  HashToken(token),
	}, nil
}

// HashToken maps a raw token to its storage form.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// VerifyToken checks a raw token against a stored hash in constant
// time.
func VerifyToken(token, storedHash string) (bool, error) {
	if token == "" || storedHash == "" {
		return false, errors.New("token and hash cannot be empty")
	}
	return subtle.ConstantTimeCompare([]byte(HashToken(token)), []byte(storedHash)) == 1, nil
}
