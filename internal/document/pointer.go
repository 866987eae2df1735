package document

import (
	"strconv"
	"strings"
)

// splitPointer splits a JSON Pointer (RFC 6901) into unescaped reference tokens. The empty pointer refers to the whole document.
func splitPointer(ptr string) []string {
	if ptr == "" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(ptr, "/"), "/")
	for i, p := range parts {
		parts[i] = strings.NewReplacer("~1", "/", "~0", "~").Replace(p)
	}
	return parts
}

func escapeToken(tok string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(tok)
}

// lookup resolves ptr in a decoded JSON value.
func lookup(doc any, ptr string) (any, bool) {
	cur := doc
	for _, tok := range splitPointer(ptr) {
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[tok]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(v) {
				return nil, false
			}
			cur = v[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// stringLeaves records every string value at or below v, keyed by its JSON Pointer.
func stringLeaves(v any, ptr string, out map[string]string) {
	switch v := v.(type) {
	case string:
		out[ptr] = v
	case map[string]any:
		for k, child := range v {
			stringLeaves(child, ptr+"/"+escapeToken(k), out)
		}
	case []any:
		for i, child := range v {
			stringLeaves(child, ptr+"/"+strconv.Itoa(i), out)
		}
	}
}

// normalizePath converts a patch path to a JSON Pointer. Paths that already start with "/" are pointers; others are dotted (ex: "sections.0.text").
func normalizePath(path string) string {
	if path == "" || strings.HasPrefix(path, "/") {
		return path
	}
	parts := strings.Split(path, ".")
	for i, p := range parts {
		parts[i] = escapeToken(p)
	}
	return "/" + strings.Join(parts, "/")
}
