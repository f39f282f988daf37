package db

import (
	"strings"
)

// CleanInlineFields returns a copy of fields without the keys that cannot
// be stored inline next to a document's typed fields: keys that name a
// typed field, operator keys starting with "$", and dotted paths.
func CleanInlineFields(fields map[string]any, known ...string) map[string]any {
	if len(fields) == 0 {
		return nil
	}

	reserved := make(map[string]bool, len(known)+1)
	reserved["_id"] = true
	for _, k := range known {
		reserved[k] = true
	}

	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "" || reserved[k] || strings.HasPrefix(k, "$") || strings.Contains(k, ".") {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}

	return out
}
