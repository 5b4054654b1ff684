package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumbers(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "currency amounts",
			text:     "basic plan $99, premium plan $299",
			expected: []string{"$99", "$299"},
		},
		{
			name:     "decimals and percents",
			text:     "growth was 3.5% on 1,200 units",
			expected: []string{"3.5%", "1,200"},
		},
		{
			name:     "no numbers",
			text:     "nothing to see here",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Numbers(tc.text))
		})
	}
}

func TestDates(t *testing.T) {
	dates := Dates("the deadline moved from 2024-03-01 to March 15, meeting Friday at 3pm")

	assert.Contains(t, dates, "2024-03-01")
	assert.Contains(t, dates, "Friday")
	assert.Contains(t, dates, "3pm")
}

func TestEntities(t *testing.T) {
	entities := Entities("Tell me about Alex and the Acme project")

	assert.Equal(t, []string{"Alex", "Acme"}, entities)
}

func TestOrdinal(t *testing.T) {
	position, noun, ok := Ordinal("what was the second code I gave you")

	assert.True(t, ok)
	assert.Equal(t, 2, position)
	assert.Equal(t, "code", noun)

	_, _, ok = Ordinal("what was the code")
	assert.False(t, ok)
}

func TestHasCorrectionMarker(t *testing.T) {
	assert.True(t, HasCorrectionMarker("Actually, my salary is $120k"))
	assert.True(t, HasCorrectionMarker("I was wrong about the date"))
	assert.False(t, HasCorrectionMarker("My salary is $95k"))
}
