package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Typos within edit distance 2
		{"verfy", "verify"},
		{"verifi", "verify"},
		{"vrify", "verify"},
		{"mpc", "mcp"},
		{"mc", "mcp"},
		{"versoin", "version"},
		{"hlep", "help"},

		// Too far - no suggestion
		{"xyz", ""},
		{"validate", ""},
		{"compare", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, suggestCommand(tt.input))
		})
	}
}

func TestEditDistance(t *testing.T) {
	assert.Equal(t, 0, editDistance("verify", "verify"))
	assert.Equal(t, 1, editDistance("verfy", "verify"))
	assert.Equal(t, 3, editDistance("", "mcp"))
	assert.Equal(t, 2, editDistance("vérifié", "verifie"))
}
