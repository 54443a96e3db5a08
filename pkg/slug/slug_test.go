package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"men's clothing", "mens-clothing"},
		{"women’s clothing", "womens-clothing"},
		{"  Electronics!", "electronics"},
		{"jewelery", "jewelery"},
		{"a  --  b", "a-b"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}

func TestMatch(t *testing.T) {
	assert.True(t, Match("men's clothing", "mens-clothing"))
	assert.True(t, Match("Electronics", "electronics"))
	assert.False(t, Match("jewelery", "electronics"))
}
