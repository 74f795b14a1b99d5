package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aviasales-scraper/trips"
)

func TestBuildGenerateConfigParsesWindow(t *testing.T) {
	tripsWindow = []string{"01.02", "11.02"}
	t.Cleanup(func() { tripsWindow = nil })

	gen, err := buildGenerateConfig()
	require.NoError(t, err)
	assert.Equal(t, trips.Date{Day: 1, Month: 2}, gen.MinDeparture)
	assert.Equal(t, trips.Date{Day: 11, Month: 2}, gen.MaxReturn)
}

func TestBuildGenerateConfigRejectsOutOfRangeWindow(t *testing.T) {
	tripsWindow = []string{"99.99", "10.03"}
	t.Cleanup(func() { tripsWindow = nil })

	_, err := buildGenerateConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "99.99")
}

func TestBuildGenerateConfigRejectsShortWindow(t *testing.T) {
	tripsWindow = []string{"20.02"}
	t.Cleanup(func() { tripsWindow = nil })

	_, err := buildGenerateConfig()
	require.Error(t, err)
}
