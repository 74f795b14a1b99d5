package storage

import "aviasales-scraper/models"

// SessionStore is the interface any persistence backend for parsed
// sessions must satisfy.
type SessionStore interface {
	WriteSession(token string, tickets []*models.ParsedTicket) error
	Close() error
}
