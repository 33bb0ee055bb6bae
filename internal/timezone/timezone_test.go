package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	loc, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	loc, err = Load("America/Sao_Paulo")
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())

	_, err = Load("Mars/Olympus")
	assert.Error(t, err)
}

func TestLocation_FallsBack(t *testing.T) {
	assert.Equal(t, "UTC", Location("Mars/Olympus").String())
	assert.Equal(t, "Europe/Paris", Location("Europe/Paris").String())
}
