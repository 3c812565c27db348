package inventory

import "time"

// ExpiryOnOpen calcula la fecha de expiración que corresponde al abrir una
// instancia en openedAt (servicio de dominio).
// Regla: abrir nunca puede empujar una expiración ya registrada hacia el
// futuro; se conserva la más temprana entre la existente y openedAt+ttl.
// Con ttl nil se conserva la existente tal cual (puede ser nil).
func ExpiryOnOpen(openedAt time.Time, ttl *time.Duration, existing *time.Time) *time.Time {
	if ttl == nil {
		return existing
	}
	candidate := openedAt.Add(*ttl)
	if existing != nil && existing.Before(candidate) {
		return existing
	}
	return &candidate
}
