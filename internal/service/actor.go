package service

import "strings"

// actorOr prefers the audit actor sent in a payload over the one resolved
// from the request.
func actorOr(payload, resolved string) string {
	if trimmed := strings.TrimSpace(payload); trimmed != "" {
		return trimmed
	}
	return resolved
}
