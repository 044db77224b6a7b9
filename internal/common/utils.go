package common

import (
	"net"
	"strconv"
	"strings"
)

// SanitizeEndpoint performs basic cleanup on endpoint strings to handle
// common copy-paste issues: surrounding whitespace, trailing punctuation,
// and a leading scheme-style prefix.
func SanitizeEndpoint(raw string) string {
	cleaned := strings.TrimSpace(raw)

	// Example: "tcp://127.0.0.1:9101" -> "127.0.0.1:9101"
	cleaned = strings.TrimPrefix(cleaned, "tcp://")

	trailingChars := []string{",", ";", "/", "\"", "'"}
	for _, char := range trailingChars {
		cleaned = strings.TrimSuffix(cleaned, char)
	}

	return strings.TrimSpace(cleaned)
}

// SanitizeAndValidateEndpoints sanitizes all endpoints and returns
// (sanitized endpoints, invalid endpoints). Invalid endpoints are those
// that fail validation even after sanitization.
func SanitizeAndValidateEndpoints(endpoints []string) ([]string, []string) {
	sanitized := make([]string, 0, len(endpoints))
	var invalid []string

	for _, raw := range endpoints {
		cleaned := SanitizeEndpoint(raw)
		if cleaned == "" {
			invalid = append(invalid, raw)
			continue
		}

		host, port, err := net.SplitHostPort(cleaned)
		if err != nil || host == "" {
			invalid = append(invalid, raw)
			continue
		}

		portNum, err := strconv.Atoi(port)
		if err != nil || portNum < 1 || portNum > 65535 {
			invalid = append(invalid, raw)
			continue
		}

		sanitized = append(sanitized, cleaned)
	}

	return sanitized, invalid
}
