package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	detector := NewDetector()

	testCases := []struct {
		name       string
		text       string
		slot       string
		method     string
		confidence float64
	}{
		{
			name:       "indicator and value",
			text:       "My salary is $95k.",
			slot:       "salary",
			method:     MethodIndicatorValue,
			confidence: 0.9,
		},
		{
			name: "indicator without a parsable value still assigns the slot",
			// no digits, so the value pattern cannot match
			text:       "My salary went up a lot.",
			slot:       "salary",
			method:     MethodIndicator,
			confidence: 0.9 * 0.6,
		},
		{
			name:       "meeting time",
			text:       "The meeting moved to 3pm.",
			slot:       "meeting_time",
			method:     MethodIndicatorValue,
			confidence: 0.85,
		},
		{
			name:       "dietary constraint",
			text:       "I am allergic to peanuts.",
			slot:       "dietary_constraint",
			method:     MethodIndicatorValue,
			confidence: 0.9,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			match, ok := detector.Detect(tc.text)

			require.True(t, ok)
			assert.Equal(t, tc.slot, match.SlotId)
			assert.Equal(t, tc.method, match.Method)
			assert.InDelta(t, tc.confidence, match.Confidence, 0.001)
		})
	}
}

func TestDetectNoIndicator(t *testing.T) {
	detector := NewDetector()

	_, ok := detector.Detect("The weather is nice today.")

	assert.False(t, ok)
}

func TestDetectCustomSlot(t *testing.T) {
	detector := NewDetector()
	detector.AddSlot(Slot{
		Id:             "license_plate",
		Indicators:     []string{"license plate"},
		BaseConfidence: 0.8,
	})

	match, ok := detector.Detect("My license plate changed.")

	require.True(t, ok)
	assert.Equal(t, "license_plate", match.SlotId)
	assert.Equal(t, MethodIndicator, match.Method)
}

func TestReconcile(t *testing.T) {
	testCases := []struct {
		name     string
		oldText  string
		newText  string
		expected Winner
	}{
		{
			name:     "newer statement wins by default",
			oldText:  "My salary is $95k.",
			newText:  "My salary is $120k.",
			expected: NewWins,
		},
		{
			name:     "later explicit anchor on the old statement wins",
			oldText:  "The deadline is 2024-05-10.",
			newText:  "The deadline is 2024-04-01.",
			expected: OldWins,
		},
		{
			name:     "correction marker overrides anchor ordering",
			oldText:  "The deadline is 2024-05-10.",
			newText:  "Actually the deadline is 2024-04-01.",
			expected: NewWins,
		},
		{
			name:     "later anchor on the new statement wins",
			oldText:  "The deadline is 2024-04-01.",
			newText:  "The deadline is 2024-05-10.",
			expected: NewWins,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Reconcile(tc.oldText, tc.newText))
		})
	}
}
