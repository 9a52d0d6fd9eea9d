// Package fingerprint computes stable content hashes over element payloads.
// The hash is a change detector, not a security primitive: it must be
// deterministic, independent of map iteration order, and cheap.
package fingerprint

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/loreforge/loreforge/internal/models"
)

// Fingerprint is the hex form of a 64-bit content hash.
type Fingerprint = string

// Compute hashes a payload. Two semantically equal payloads hash identically
// regardless of construction order; payloads differing in any field hash
// differently with overwhelmingly high probability.
func Compute(payload models.Payload) (Fingerprint, error) {
	m, err := models.PayloadMap(payload)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize payload: %w", err)
	}
	return ComputeMap(m), nil
}

// ComputeMap hashes the generic map form of a payload directly.
func ComputeMap(m map[string]any) Fingerprint {
	d := xxhash.New()
	writeValue(d, m)
	return strconv.FormatUint(d.Sum64(), 16)
}

// writeValue streams a canonical serialization of v into the digest.
// Map keys are visited in lexicographic order; numbers and timestamps are
// normalized so that representation differences (1.0 vs 1, +02:00 vs Z)
// do not produce false-positive diffs.
func writeValue(d *xxhash.Digest, v any) {
	switch val := v.(type) {
	case nil:
		d.WriteString("z")
	case bool:
		d.WriteString("b")
		d.WriteString(strconv.FormatBool(val))
	case string:
		d.WriteString("s")
		d.WriteString(normalizeString(val))
	case float64:
		d.WriteString("n")
		d.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	case []any:
		d.WriteString("a")
		d.WriteString(strconv.Itoa(len(val)))
		for _, item := range val {
			writeValue(d, item)
			d.WriteString(",")
		}
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		d.WriteString("m")
		d.WriteString(strconv.Itoa(len(keys)))
		for _, k := range keys {
			d.WriteString("k")
			d.WriteString(k)
			d.WriteString(":")
			writeValue(d, val[k])
			d.WriteString(";")
		}
	default:
		// Non-JSON types only appear when a caller hashes a hand-built map.
		d.WriteString("o")
		fmt.Fprintf(d, "%v", val)
	}
}

// normalizeString canonicalizes RFC3339 timestamps to UTC nanosecond form.
// Other strings pass through unchanged.
func normalizeString(s string) string {
	if len(s) < len("2006-01-02T15:04:05Z") {
		return s
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.UTC().Format(time.RFC3339Nano)
}
