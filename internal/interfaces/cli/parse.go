package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("id inválido %q: se espera un entero positivo", raw)
	}
	return id, nil
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("cantidad inválida %q: se espera un número", raw)
	}
	return d, nil
}

// parseTTL acepta duraciones estilo Go: "72h", "30m", "168h30m".
func parseTTL(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("duración inválida %q: se espera algo como 72h o 30m", raw)
	}
	if d < 0 {
		return 0, fmt.Errorf("duración inválida %q: debe ser positiva", raw)
	}
	return d, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: se espera RFC 3339 (2024-03-01T12:00:00Z)", raw)
	}
	return t, nil
}
