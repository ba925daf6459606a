package facematch

import (
	"crypto/sha256"
	"crypto/subtle"
)

// Match is the result of comparing a captured image against a reference image.
type Match struct {
	Matched    bool
	Confidence float64
}

// Verifier compares a candidate capture against an enrolled reference image.
// Implementations must be deterministic for identical inputs and must return
// a non-match (never an error) when either input is absent.
type Verifier interface {
	Verify(candidate, reference string) (Match, error)
}

// HashVerifier matches images by content digest equality. It stands in for a
// real biometric matcher behind the Verifier interface; confidence is binary.
type HashVerifier struct{}

func NewHashVerifier() *HashVerifier {
	return &HashVerifier{}
}

// Verify implements Verifier.
func (v *HashVerifier) Verify(candidate, reference string) (Match, error) {
	if candidate == "" || reference == "" {
		return Match{Matched: false, Confidence: 0}, nil
	}

	h1 := sha256.Sum256([]byte(candidate))
	h2 := sha256.Sum256([]byte(reference))

	if subtle.ConstantTimeCompare(h1[:], h2[:]) == 1 {
		return Match{Matched: true, Confidence: 1}, nil
	}
	return Match{Matched: false, Confidence: 0}, nil
}
