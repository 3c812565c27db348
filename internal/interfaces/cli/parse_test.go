package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID_RechazaNoPositivos(t *testing.T) {
	for _, raw := range []string{"0", "-3", "abc", "1.5", ""} {
		_, err := parseID(raw)
		assert.Error(t, err, "debería rechazar %q", raw)
	}

	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestParseTTL_DuracionesEstiloGo(t *testing.T) {
	d, err := parseTTL("72h")
	require.NoError(t, err)
	assert.Equal(t, 72*time.Hour, d)

	_, err = parseTTL("-1h")
	assert.Error(t, err, "las duraciones negativas no tienen sentido como vida útil")

	_, err = parseTTL("tres días")
	assert.Error(t, err)
}

func TestParseTimestamp_SoloRFC3339(t *testing.T) {
	ts, err := parseTimestamp("2024-03-01T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), ts)

	_, err = parseTimestamp("01/03/2024")
	assert.Error(t, err)
}

func TestParseDecimal_ConservaPrecision(t *testing.T) {
	d, err := parseDecimal("0.1")
	require.NoError(t, err)
	assert.Equal(t, "0.1", d.String())

	_, err = parseDecimal("mucho")
	assert.Error(t, err)
}
