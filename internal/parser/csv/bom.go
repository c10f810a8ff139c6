package csv

import (
	"fmt"
	"strings"
)

// utf8BOM is stripped from the first header cell if present. The file source
// already removes a BOM for UTF-8 input; this covers callers that hand the
// parser an undecoded reader.
const utf8BOM = "\uFEFF"

// StripHeaderBOM removes a UTF-8 BOM from the first header cell if present.
func StripHeaderBOM(headers []string) []string {
	if len(headers) == 0 {
		return headers
	}
	headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	return headers
}

// UniqueHeader names empty cells "Unnamed: <i>" (i is the zero-based column
// position) and renames repeats of a name to "<name>.1", "<name>.2", ...,
// skipping any candidate already taken. It modifies headers in place.
func UniqueHeader(headers []string) []string {
	for i, h := range headers {
		if h == "" {
			headers[i] = fmt.Sprintf("Unnamed: %d", i)
		}
	}
	counts := make(map[string]int, len(headers))
	for i, h := range headers {
		n := counts[h]
		for n > 0 {
			counts[h] = n + 1
			h = fmt.Sprintf("%s.%d", h, n)
			n = counts[h]
		}
		headers[i] = h
		counts[h] = n + 1
	}
	return headers
}
