package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ValidateNodeID проверяет id узла хранилища.
// Допустимы UUID с дефисами и компактная форма из 32 hex символов.
func ValidateNodeID(id string) error {
	if id == "" {
		return fmt.Errorf("node id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid node id %q: expected a UUID, with or without dashes", id)
	}
	return nil
}

// CanonicalNodeID возвращает id в каноническом виде с дефисами и в нижнем регистре
func CanonicalNodeID(id string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", fmt.Errorf("invalid node id %q: %w", id, err)
	}
	return parsed.String(), nil
}

// ValidatePageTitle проверяет заголовок новой страницы
func ValidatePageTitle(title string) error {
	const maxTitleLen = 2000

	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("page title cannot be empty")
	}
	if len(title) > maxTitleLen {
		return fmt.Errorf("page title must not exceed %d characters", maxTitleLen)
	}
	return nil
}
