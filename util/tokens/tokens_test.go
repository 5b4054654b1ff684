package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate(t *testing.T) {
	assert.Equal(t, 0, Estimate(""))
	assert.Equal(t, 0, Estimate("   "))
	assert.Equal(t, 1, Estimate("hi"))

	// longer text scales with length
	short := Estimate("User lives in Lisbon.")
	long := Estimate("User lives in Lisbon and works remotely for a company headquartered in Berlin.")
	assert.Greater(t, long, short)
}
