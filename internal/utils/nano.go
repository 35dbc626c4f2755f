package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	RequestIDSize = 21
	KeySuffixSize = 8

	requestIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	keySuffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// RequestID returns an id for X-Request-ID.
func RequestID() string {
	return gonanoid.MustGenerate(requestIDAlphabet, RequestIDSize)
}

// KeySuffix returns a short random suffix that keeps object keys written in
// the same second apart.
func KeySuffix() string {
	return gonanoid.MustGenerate(keySuffixAlphabet, KeySuffixSize)
}
