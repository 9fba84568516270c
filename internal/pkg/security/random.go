package security

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// Randomizer produces a printable random string from length random bytes.
type Randomizer interface {
	Randomize(length uint32) (string, error)
}

type RandomizeFunc func(length uint32) (string, error)

func (r RandomizeFunc) Randomize(length uint32) (string, error) {
	return r(length)
}

// HexRandomizer encodes the bytes as lowercase hex so the result is safe in URL paths.
var HexRandomizer = RandomizeFunc(GenerateRandomBytesHexEncoded)

func GenerateRandomBytes(length uint32) ([]byte, error) {
	key := make([]byte, length)

	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}

	return key, nil
}

func GenerateRandomBytesHexEncoded(length uint32) (string, error) {
	key, err := GenerateRandomBytes(length)
	if err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}

	return hex.EncodeToString(key), nil
}

func GenerateRandomBytesURLEncoded(length uint32) (string, error) {
	key, err := GenerateRandomBytes(length)
	if err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(key), nil
}
