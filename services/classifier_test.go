package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aviasales-scraper/models"
)

func segs(conns ...models.Connection) []models.FlightSegment {
	out := make([]models.FlightSegment, len(conns))
	for i, c := range conns {
		out[i] = models.FlightSegment{Connection: c}
	}
	return out
}

func direct() models.Connection {
	return models.Connection{Kind: models.ConnectionDirect}
}

func stops(n int) models.Connection {
	return models.Connection{Kind: models.ConnectionStops, Stops: n}
}

func unknown() models.Connection {
	return models.Connection{Kind: models.ConnectionUnknown}
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name  string
		conns []models.Connection
		want  bool
	}{
		{"all direct", []models.Connection{direct(), direct(), direct()}, true},
		{"one stop on return", []models.Connection{direct(), direct(), stops(1)}, true},
		{"two stops on return", []models.Connection{direct(), direct(), stops(2)}, false},
		{"stop on first leg", []models.Connection{stops(1), direct(), direct()}, false},
		{"stop on second leg", []models.Connection{direct(), stops(1), direct()}, false},
		{"unknown return", []models.Connection{direct(), direct(), unknown()}, false},
		{"all unknown", []models.Connection{unknown(), unknown(), unknown()}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Classify(segs(tt.conns...)), tt.name)
	}
}

func TestClassifyTooFewSegments(t *testing.T) {
	p := DefaultPolicy()
	assert.False(t, p.Classify(segs(direct(), direct())))
	assert.False(t, p.Classify(nil))
}

func TestCustomPolicy(t *testing.T) {
	lenient := Policy{1, 1}
	assert.True(t, lenient.Classify(segs(stops(1), direct())))
	assert.False(t, lenient.Classify(segs(stops(2), direct())))
}

func TestClassifyParsedSampleTicket(t *testing.T) {
	ticket := newTestParser().Parse(models.RawTicket{RawText: sampleTicketText})
	assert.True(t, DefaultPolicy().Classify(ticket.Segments))
}
