package leaderboard

import "strings"

// MaxNameLen caps player names on the board.
const MaxNameLen = 20

// ValidNameChar reports whether a rune is allowed in a player name.
func ValidNameChar(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// ValidName reports whether a raw name is acceptable as typed: non-empty,
// alphanumeric only, at most MaxNameLen characters.
func ValidName(name string) bool {
	if name == "" || len(name) > MaxNameLen {
		return false
	}
	for _, r := range name {
		if !ValidNameChar(r) {
			return false
		}
	}
	return true
}

// SanitizeName normalizes a name for storage: invalid characters dropped,
// capped at MaxNameLen, uppercased. Returns "" if nothing survives.
func SanitizeName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if !ValidNameChar(r) {
			continue
		}
		sb.WriteRune(r)
		if sb.Len() == MaxNameLen {
			break
		}
	}
	return strings.ToUpper(sb.String())
}
