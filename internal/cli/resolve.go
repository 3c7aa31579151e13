package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mecrobet/marga/internal/repository"
)

// resolveSessionID resolves a session identifier which can be a full ID or
// a unique prefix of one, as printed by "session list".
func resolveSessionID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", errors.New("session ID must not be empty")
	}
	if _, err := app.Study.Get(ctx, input); err == nil {
		return input, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	sessions, err := app.Study.List(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, s := range sessions {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("session %q: %w", input, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("session prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
