package respond

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseAccept(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   []acceptEntry
	}{
		{"empty", "", nil},
		{"no slash", "text", []acceptEntry{{"text/*", 1}}},
		{"empty part", "application/json, , text/html", []acceptEntry{{"application/json", 1}, {"text/html", 1}}},
		{"lower-cased", "Application/CBOR", []acceptEntry{{"application/cbor", 1}}},
		{"quality", "application/json;q=0.5", []acceptEntry{{"application/json", 0.5}}},
		{"invalid quality", "application/json;q=invalid", []acceptEntry{{"application/json", 1}}},
		{"quality above range", "application/json;q=2.0", []acceptEntry{{"application/json", 1}}},
		{"quality below range", "application/json;q=-0.5", []acceptEntry{{"application/json", 1}}},
		{"last quality wins", "application/json;q=0.5;q=0.9", []acceptEntry{{"application/json", 0.9}}},
		{"other params ignored", "text/html;level=1;Q=0.3", []acceptEntry{{"text/html", 0.3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseAccept(tt.header)
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(acceptEntry{})); diff != "" {
				t.Fatalf("parseAccept(%q) mismatch (-want +got):\n%s", tt.header, diff)
			}
		})
	}
}

func TestPrefersCBOR(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   bool
	}{
		{"empty accept defaults to JSON", "", false},
		{"wildcard defaults to JSON", "*/*", false},
		{"application wildcard defaults to JSON", "application/*", false},
		{"browser accept defaults to JSON", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8", false},
		{"explicit JSON", "application/json", false},
		{"explicit CBOR", "application/cbor", true},
		{"equal q-values defaults to JSON", "application/json, application/cbor", false},
		{"CBOR preferred with quality", "application/json;q=0.9, application/cbor;q=1.0", true},
		{"JSON preferred with quality", "application/cbor;q=0.5, application/json;q=0.9", false},
		{"problem+cbor explicit", "application/problem+cbor", true},
		{"problem+json explicit", "application/problem+json", false},
		{"problem+cbor over base cbor", "application/cbor, application/problem+cbor", true},
		{"problem+cbor beats json on specificity", "application/json, application/problem+cbor", true},
		{"CBOR excluded with q=0", "application/cbor;q=0, application/json", false},
		{"CBOR excluded despite wildcard", "application/cbor;q=0, */*", false},
		{"CBOR only with low quality", "application/cbor;q=0.1", true},
		{"structured suffix", "application/vnd.example+cbor", true},
		{"text/html defaults to JSON", "text/html", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prefersCBOR(tt.accept); got != tt.want {
				t.Fatalf("prefersCBOR(%q) = %v, want %v", tt.accept, got, tt.want)
			}
		})
	}
}

func TestEnsureVaryAddsValues(t *testing.T) {
	h := make(http.Header)
	ensureVary(h, "Origin", "Accept")
	set := headerSet(h.Values("Vary"))
	for _, v := range []string{"Origin", "Accept"} {
		if _, ok := set[v]; !ok {
			t.Fatalf("expected Vary to contain %q", v)
		}
	}
}

func TestEnsureVaryNoDuplicates(t *testing.T) {
	h := make(http.Header)
	h.Set("Vary", "Accept-Encoding, Accept")
	ensureVary(h, "Accept", "Accept", "Origin")
	if count := countInHeader(h.Values("Vary"), "Accept"); count != 1 {
		t.Fatalf("expected Accept once, got %d", count)
	}
	if _, ok := headerSet(h.Values("Vary"))["Accept-Encoding"]; !ok {
		t.Fatal("expected existing Accept-Encoding to be kept")
	}
}

func TestEnsureVaryEmptyInput(t *testing.T) {
	h := make(http.Header)
	ensureVary(h)
	if len(h.Values("Vary")) != 0 {
		t.Fatalf("expected no Vary header, got %v", h.Values("Vary"))
	}
}

func headerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			set[strings.TrimSpace(part)] = struct{}{}
		}
	}
	return set
}

func countInHeader(values []string, target string) int {
	count := 0
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			if strings.TrimSpace(part) == target {
				count++
			}
		}
	}
	return count
}
