// Package httputil provides status code and media type helpers shared by the
// tree decoder and the checkers.
package httputil

import (
	"mime"
	"strconv"
	"strings"
)

// HTTP Status Code Constants
const (
	StatusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode    = 100 // Minimum valid HTTP status code
	MaxStatusCode    = 599 // Maximum valid HTTP status code
	WildcardChar     = 'X' // Wildcard character used in status code ranges (e.g., "2XX")
)

// ValidateStatusCode reports whether code names a response. Valid values are
// "default", the ranges 1XX through 5XX, and numeric codes 100-599.
func ValidateStatusCode(code string) bool {
	if code == "default" {
		return true
	}
	if len(code) != StatusCodeLength {
		return false
	}
	if code[1] == WildcardChar && code[2] == WildcardChar {
		return code[0] >= '1' && code[0] <= '5'
	}
	n, err := strconv.Atoi(code)
	return err == nil && n >= MinStatusCode && n <= MaxStatusCode
}

// IsSuccessCode reports whether code is a 2xx status code or the "2XX" range.
func IsSuccessCode(code string) bool {
	if code == "2XX" {
		return true
	}
	n, err := strconv.Atoi(code)
	return err == nil && len(code) == StatusCodeLength && n >= 200 && n < 300
}

// IsValidMediaType validates a media type string according to RFC 2045/2046.
// Handles wildcards (*/* and type/*) and rejects */subtype.
func IsValidMediaType(mediaType string) bool {
	if mediaType == "*/*" {
		return true
	}
	if strings.HasPrefix(mediaType, "*/") {
		return false
	}
	if major, ok := strings.CutSuffix(mediaType, "/*"); ok {
		return major != "" && major != "*" && !strings.Contains(major, "/")
	}
	_, _, err := mime.ParseMediaType(mediaType)
	return err == nil && strings.Contains(mediaType, "/")
}
