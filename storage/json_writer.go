package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"aviasales-scraper/models"
)

// WriteTicketsJSON dumps every parsed ticket of a session for debugging and
// auditing, independent of the spreadsheet exports.
func WriteTicketsJSON(path string, tickets []*models.ParsedTicket) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("json: create output dir: %w", err)
	}

	data, err := json.MarshalIndent(tickets, "", "  ")
	if err != nil {
		return fmt.Errorf("json: marshal tickets: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("json: write %q: %w", path, err)
	}
	return nil
}
