package meta

import (
	"os"
	"strings"
	"unicode"
)

// expandEnvExpr substitutes ${env.KEY} expressions in value with the
// corresponding environment variable.  An optional fallback may follow the
// key, ${env.KEY:fallback}, and is used when the variable is unset.
// Malformed expressions are kept literally.
func expandEnvExpr(value string) string {
	const marker = "${env."
	var b strings.Builder
	for {
		idx := strings.Index(value, marker)
		if idx < 0 {
			b.WriteString(value)
			return b.String()
		}
		b.WriteString(value[:idx])
		rest := value[idx+len(marker):]

		end := strings.IndexByte(rest, '}')
		if end < 0 {
			b.WriteString(value[idx:])
			return b.String()
		}
		expr := rest[:end]

		key, fallback := expr, ""
		hasFallback := false
		if sep := strings.IndexByte(expr, ':'); sep >= 0 {
			key, fallback = expr[:sep], expr[sep+1:]
			hasFallback = true
		}
		if !validEnvKey(key) {
			// Keep the marker literally and rescan the remainder so that a
			// later, well-formed expression still expands.
			b.WriteString(value[idx : idx+len(marker)])
			value = rest
			continue
		}
		resolved, ok := os.LookupEnv(key)
		if !ok && hasFallback {
			resolved = fallback
		}
		b.WriteString(resolved)
		value = rest[end+1:]
	}
}

// validEnvKey permits letters, digits and underscores; an empty key resolves
// to the empty string.
func validEnvKey(key string) bool {
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
