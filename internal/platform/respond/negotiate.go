package respond

import (
	"net/http"
	"strconv"
	"strings"
)

// acceptEntry is one media range of an Accept header.
type acceptEntry struct {
	mediaType string
	q         float64
}

// parseAccept splits an Accept header into lower-cased media ranges with
// their quality values. Missing or malformed q parameters count as 1.
func parseAccept(header string) []acceptEntry {
	var entries []acceptEntry
	for part := range strings.SplitSeq(header, ",") {
		mediaType, params, _ := strings.Cut(part, ";")
		mediaType = strings.ToLower(strings.TrimSpace(mediaType))
		if mediaType == "" {
			continue
		}
		if !strings.Contains(mediaType, "/") {
			mediaType += "/*"
		}

		entry := acceptEntry{mediaType: mediaType, q: 1}
		for param := range strings.SplitSeq(params, ";") {
			key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || !strings.EqualFold(key, "q") {
				continue
			}
			if q, err := strconv.ParseFloat(value, 64); err == nil && q >= 0 && q <= 1 {
				entry.q = q
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// specificity ranks how closely a media range names a problem format.
// Zero means the range does not match the format at all.
func specificity(mediaType, format string) int {
	switch {
	case mediaType == "application/problem+"+format:
		return 4
	case mediaType == "application/"+format:
		return 3
	case strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+"+format):
		return 3
	case mediaType == "application/*":
		return 2
	case mediaType == "*/*":
		return 1
	}
	return 0
}

// quality returns the q value of the most specific range matching format,
// or -1 when no range matches.
func quality(entries []acceptEntry, format string) (q float64, spec int) {
	q = -1
	for _, e := range entries {
		s := specificity(e.mediaType, format)
		if s == 0 {
			continue
		}
		if s > spec || (s == spec && e.q > q) {
			q, spec = e.q, s
		}
	}
	return q, spec
}

// prefersCBOR reports whether the Accept header ranks CBOR above JSON.
// q value decides first, specificity breaks ties, JSON wins otherwise.
func prefersCBOR(header string) bool {
	entries := parseAccept(header)
	if len(entries) == 0 {
		return false
	}
	cborQ, cborSpec := quality(entries, "cbor")
	jsonQ, jsonSpec := quality(entries, "json")
	if cborQ <= 0 {
		return false
	}
	if cborQ != jsonQ {
		return cborQ > jsonQ
	}
	return cborSpec > jsonSpec
}

// ensureVary adds values to the Vary header without duplicating existing entries.
func ensureVary(h http.Header, values ...string) {
	existing := make(map[string]struct{})
	for _, v := range h.Values("Vary") {
		for part := range strings.SplitSeq(v, ",") {
			existing[strings.TrimSpace(part)] = struct{}{}
		}
	}
	for _, v := range values {
		if _, ok := existing[v]; !ok {
			h.Add("Vary", v)
			existing[v] = struct{}{}
		}
	}
}
