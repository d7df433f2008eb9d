package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrMissingReason: los ajustes manuales de stock siempre deben explicarse.
	ErrMissingReason = errors.New("se requiere una nota para el ajuste manual")
	// ErrMissingLogistics: el envío de muestra requiere indicar el método logístico.
	ErrMissingLogistics = errors.New("se requiere el método logístico de la muestra")
	// ErrExternalWrite: el almacén rechazó la escritura después de pasar la validación;
	// la operación completa se reporta como fallida (nunca commit parcial).
	ErrExternalWrite = errors.New("fallo de escritura en el almacén de datos")
)

// InsufficientStockError indica que la cantidad solicitada supera el stock disponible.
// Lleva los contadores para que la capa HTTP arme un mensaje específico.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Available, e.Requested)
}

// InvalidTransitionError indica una operación de QA intentada desde un estado que no la permite.
// Incluye estado actual, operación intentada y estado requerido.
type InvalidTransitionError struct {
	AssessmentID string
	Current      string
	Attempted    string
	Required     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transición inválida (%s): el estado actual es %s y se requiere %s",
		e.Attempted, e.Current, e.Required)
}
