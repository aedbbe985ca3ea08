package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Microneedling":            "microneedling",
		"Anti-Wrinkle Injections":  "anti-wrinkle-injections",
		"  Chemical   Peel ":       "chemical-peel",
		"Crème Brûlée Facial!":     "creme-brulee-facial",
		"Dr. Sophia's -- Top Tips": "dr-sophias-top-tips",
		"¿":                        "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Make(in), in)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("laser-hair-removal"))
	assert.True(t, Valid("hydrafacial"))
	assert.False(t, Valid("Laser Hair"))
	assert.False(t, Valid("-leading"))
	assert.False(t, Valid(""))
}
