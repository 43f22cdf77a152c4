package domain

import (
	"math"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// Fingerprinter turns report text into a fixed-length vector for similarity
// lookups. Classification never reads it.
type Fingerprinter interface {
	Fingerprint(text string) []float32
	Dimensions() int
}

// DefaultFingerprintDimensions is the vector length of the default
// HashingFingerprinter.
const DefaultFingerprintDimensions = 64

// HashingFingerprinter is a feature-hashing bag of folded words. Each token
// lands in one bucket with a sign taken from its hash, and the vector is
// L2-normalized. Empty text yields the zero vector.
type HashingFingerprinter struct {
	dims int
}

func NewHashingFingerprinter(dims int) HashingFingerprinter {
	if dims <= 0 {
		dims = DefaultFingerprintDimensions
	}
	return HashingFingerprinter{dims: dims}
}

func (h HashingFingerprinter) Dimensions() int { return h.dims }

func (h HashingFingerprinter) Fingerprint(text string) []float32 {
	vec := make([]float32, h.dims)
	tokens := strings.FieldsFunc(Fold(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(tokens) == 0 {
		return vec
	}

	for _, tok := range tokens {
		sum := xxhash.Sum64String(tok)
		bucket := sum % uint64(h.dims)
		if sum>>63 == 1 {
			vec[bucket]--
		} else {
			vec[bucket]++
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return vec
}

// noopFingerprinter is used when fingerprints are switched off.
type noopFingerprinter struct{}

func (noopFingerprinter) Fingerprint(string) []float32 { return nil }
func (noopFingerprinter) Dimensions() int              { return 0 }
