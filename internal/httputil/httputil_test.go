package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStatusCode(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"200", true},
		{"404", true},
		{"599", true},
		{"100", true},
		{"default", true},
		{"2XX", true},
		{"5XX", true},
		{"099", false},
		{"600", false},
		{"6XX", false},
		{"2xx", false},
		{"20", false},
		{"2000", false},
		{"abc", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateStatusCode(tt.code))
		})
	}
}

func TestIsSuccessCode(t *testing.T) {
	for code, expected := range map[string]bool{
		"200": true, "204": true, "299": true, "2XX": true,
		"301": false, "404": false, "default": false, "": false, "2000": false,
	} {
		assert.Equal(t, expected, IsSuccessCode(code), code)
	}
}

func TestIsValidMediaType(t *testing.T) {
	tests := []struct {
		mediaType string
		valid     bool
	}{
		{"application/json", true},
		{"application/vnd.api+json", true},
		{"text/plain; charset=utf-8", true},
		{"*/*", true},
		{"application/*", true},
		{"*/json", false},
		{"*/json; charset=utf-8", false},
		{"text/*", true},
		{"/*", false},
		{"json", false},
		{"application json", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.mediaType, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidMediaType(tt.mediaType))
		})
	}
}
