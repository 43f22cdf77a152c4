package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashingFingerprinter(t *testing.T) {
	f := NewHashingFingerprinter(32)

	vec := f.Fingerprint("Kadıköy'de SEL var, sel büyüyor")
	assert.Len(t, vec, 32)
	assert.Equal(t, 32, f.Dimensions())

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, norm, 1e-5)
}

func TestHashingFingerprinter_Deterministic(t *testing.T) {
	f := NewHashingFingerprinter(DefaultFingerprintDimensions)
	assert.Equal(t, f.Fingerprint(avcilarReport), f.Fingerprint(avcilarReport))
}

func TestHashingFingerprinter_CaseFolded(t *testing.T) {
	f := NewHashingFingerprinter(DefaultFingerprintDimensions)
	assert.Equal(t, f.Fingerprint("ACİL YARDIM"), f.Fingerprint("acil yardım"))
}

func TestHashingFingerprinter_Empty(t *testing.T) {
	f := NewHashingFingerprinter(0)

	vec := f.Fingerprint("  ,.;  ")
	assert.Len(t, vec, DefaultFingerprintDimensions)
	for _, v := range vec {
		assert.Zero(t, v)
		assert.False(t, math.IsNaN(float64(v)))
	}
}
