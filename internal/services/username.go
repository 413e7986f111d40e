package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// UsernameChecker reports whether a username is already taken.
type UsernameChecker interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// deriveUsername builds a username as firstname.lastname, lowercased and
// stripped of whitespace. When the base name is taken, a numeric suffix is
// appended, incrementing until a free one is found.
func deriveUsername(ctx context.Context, checker UsernameChecker, firstName, lastName string) (string, error) {
	base := normalizeNamePart(firstName) + "." + normalizeNamePart(lastName)

	candidate := base
	for serial := 1; ; serial++ {
		taken, err := checker.UsernameExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check username availability: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, serial)
	}
}

func normalizeNamePart(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
