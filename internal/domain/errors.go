package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrUnknownItemType     = errors.New("tipo de artículo no encontrado")
	ErrUnknownItemInstance = errors.New("instancia de artículo no encontrada")
	ErrNoMatchingInstance  = errors.New("no hay instancia activa para consumir")
	ErrInvalidInput        = errors.New("entrada inválida")
)
