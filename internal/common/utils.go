package common

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)
	urlPattern          = regexp.MustCompile(`^https?://[a-zA-Z0-9][-a-zA-Z0-9.]*[a-zA-Z0-9](:\d+)?(/[^\s]*)?$`)
)

// ContentHash returns the hex SHA-256 of data.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// SummaryKey identifies a summary by its sanitized input, length settings
// and the backend and model that produced it.
func SummaryKey(text string, ratio float64, level, backend, model string, doSample bool) string {
	parts := []string{
		text,
		strconv.FormatFloat(ratio, 'f', 4, 64),
		level,
		backend,
		model,
		strconv.FormatBool(doSample),
	}
	return ContentHash([]byte(strings.Join(parts, "|")))
}

// SanitizeURL cleans up common copy-paste damage: surrounding whitespace,
// markdown link syntax and stray punctuation.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	// "[text](https://example.com)" -> "https://example.com"
	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	for _, char := range []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"} {
		cleaned = strings.TrimSuffix(cleaned, char)
	}
	for _, char := range []string{"(", "[", "<", "\"", "'"} {
		cleaned = strings.TrimPrefix(cleaned, char)
	}

	return strings.TrimSpace(cleaned)
}

// ParseTargetURL sanitizes rawURL and accepts only absolute http(s) URLs.
func ParseTargetURL(rawURL string) (*url.URL, error) {
	cleaned := SanitizeURL(rawURL)
	if cleaned == "" {
		return nil, fmt.Errorf("empty URL")
	}
	// Spaces must be pre-encoded as %20.
	if strings.Contains(cleaned, " ") {
		return nil, fmt.Errorf("invalid URL %q: contains spaces", rawURL)
	}
	if !urlPattern.MatchString(cleaned) {
		return nil, fmt.Errorf("invalid URL %q", rawURL)
	}

	parsed, err := url.Parse(cleaned)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL %q: scheme must be http or https", rawURL)
	}
	if parsed.Host == "" || strings.ContainsAny(parsed.Host, "{}[]<>\"'") {
		return nil, fmt.Errorf("invalid URL %q: bad host", rawURL)
	}
	return parsed, nil
}
