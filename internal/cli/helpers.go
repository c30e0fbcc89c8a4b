package cli

import (
	"fmt"

	"github.com/billwatch/billwatch/internal/store"
)

// withStore opens the database, executes the function, and handles cleanup.
func withStore(fn func(*store.SQLiteStore) error) error {
	s, err := store.Open(dbPath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	return fn(s)
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}
