package domain

// IsValidSlug reports whether s is a URL-safe slug: non-empty, lowercase
// latin letters, digits and single hyphens, never leading or trailing.
// Slugs are authored, not derived; invalid ones are rejected, not fixed.
func IsValidSlug(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	prevHyphen := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			prevHyphen = false
		case c == '-':
			if prevHyphen {
				return false
			}
			prevHyphen = true
		default:
			return false
		}
	}
	return true
}
