package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lueurxax/seva-desk/internal/core/domain"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "pure_object",
			input: `{"key":"value"}`,
			want:  `{"key":"value"}`,
		},
		{
			name:  "object_with_preamble",
			input: `Here: {"key":"value"} done.`,
			want:  `{"key":"value"}`,
		},
		{
			name:  "markdown_fence",
			input: "```json\n{\"category\":\"complaint\"}\n```",
			want:  `{"category":"complaint"}`,
		},
		{
			name:  "nested_object",
			input: `{"extractedInfo":{"bloodType":"O+"},"success":true}`,
			want:  `{"extractedInfo":{"bloodType":"O+"},"success":true}`,
		},
		{
			name:  "no_json",
			input: "  sorry, I cannot help  ",
			want:  "sorry, I cannot help",
		},
		{
			name:  "broken_braces_returned_as_is",
			input: `{"a": }`,
			want:  `{"a": }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.input))
		})
	}
}

func TestSlotValues(t *testing.T) {
	got := slotValues(map[string]any{
		"bloodType":   "AB-",
		"unitsNeeded": float64(2),
		"age":         float64(72.5),
		"hospital":    "  ",
		"patientName": nil,
		"urgent":      true,
	})

	assert.Equal(t, domain.SlotMap{
		"bloodType":   "AB-",
		"unitsNeeded": "2",
		"age":         "72.5",
		"urgent":      "true",
	}, got)
}

func TestMeanProbability(t *testing.T) {
	assert.Nil(t, meanProbability(nil))

	p := meanProbability([]float64{0, 0})
	if assert.NotNil(t, p) {
		assert.InDelta(t, 1.0, *p, 1e-9)
	}

	p = meanProbability([]float64{-0.2, -0.4})
	if assert.NotNil(t, p) {
		assert.InDelta(t, 0.7408, *p, 1e-3)
	}
}
