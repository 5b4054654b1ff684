package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyIsContentBased(t *testing.T) {
	router := NewRouter()

	testCases := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "health content",
			text:     "I am allergic to peanuts and my doctor prescribed medication",
			expected: "health",
		},
		{
			name:     "work content",
			text:     "My salary is $95k and I just got promoted",
			expected: "work",
		},
		{
			name:     "recall phrasing routes on the topic, not the question form",
			text:     "do you remember my salary details",
			expected: "work",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assignment, err := router.Classify(tc.text)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, assignment.Category)
		})
	}
}

func TestClassifyConfidence(t *testing.T) {
	router := NewRouter()

	strong, err := router.Classify("I am allergic to peanuts and my doctor prescribed medication")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, strong.Confidence, 0.8)

	weak, err := router.Classify("hmm okay sure")
	require.NoError(t, err)
	assert.Equal(t, Default, weak.Category)
	assert.Less(t, weak.Confidence, 0.8)
}

func TestRouteFallback(t *testing.T) {
	router := NewRouter()

	// nothing scores above the floor, so the route falls back and widens
	route := router.Route("hmm okay sure")

	assert.True(t, route.Fallback)
	assert.Equal(t, Default, route.Primary)
	assert.Greater(t, len(route.Categories), 1)
}

func TestRouteConfidentNoFallback(t *testing.T) {
	router := NewRouter()

	route := router.Route("I am allergic to peanuts and my doctor prescribed medication")

	assert.False(t, route.Fallback)
	assert.Equal(t, []string{"health"}, route.Categories)
}

func TestStripRecallPhrasing(t *testing.T) {
	assert.Equal(t, "my salary details", StripRecallPhrasing("do you remember my salary details"))
	assert.Equal(t, "Kiwi", StripRecallPhrasing("tell me about Kiwi"))
	assert.Equal(t, "plain statement", StripRecallPhrasing("plain statement"))
}

func TestRegistryDynamicCategories(t *testing.T) {
	registry := NewRegistry()
	before := registry.Version()

	err := registry.Add(Definition{
		Name:         "Travel",
		Keywords:     []string{"flight", "hotel", "passport"},
		TokenCeiling: 2000,
	})
	require.NoError(t, err)

	assert.Greater(t, registry.Version(), before)

	def, ok := registry.Get("travel")
	require.True(t, ok)
	assert.Equal(t, "travel", def.Name)

	router := NewRouter(WithRegistry(registry))
	assignment, err := router.Classify("I booked a flight and a hotel for next month")
	require.NoError(t, err)
	assert.Equal(t, "travel", assignment.Category)
}

func TestRegistryRejectsEmptyName(t *testing.T) {
	registry := NewRegistry()

	assert.Error(t, registry.Add(Definition{Name: "  "}))
}
