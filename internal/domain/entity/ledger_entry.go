package entity

import "time"

// Tipos de cambio del ledger de stock (enumeración cerrada).
const (
	ChangeDeduction   = "DEDUCTION"   // venta online/offline
	ChangeAddition    = "ADDITION"    // reposición
	ChangeAdjustment  = "ADJUSTMENT"  // corrección manual
	ChangeReservation = "RESERVATION" // retención antes de confirmar pago
	ChangeRelease     = "RELEASE"     // devolución de una reserva
)

// Razones de movimiento (enumeración cerrada).
const (
	ReasonOnlineSale         = "ONLINE_SALE"
	ReasonOfflineSale        = "OFFLINE_SALE"
	ReasonManualAdjustment   = "MANUAL_ADJUSTMENT"
	ReasonStockReplenishment = "STOCK_REPLENISHMENT"
	ReasonOrderCancellation  = "ORDER_CANCELLATION"
	ReasonReservation        = "RESERVATION"
)

// LedgerEntry registro inmutable de un cambio de stock (append-only).
// Invariante verificado en cada escritura: QuantityAfter = QuantityBefore + QuantityChange,
// y QuantityAfter debe coincidir con el stock vivo del producto al momento del commit.
// La suma de QuantityChange de todas las entradas de un producto reconstruye su stock.
type LedgerEntry struct {
	ID             string
	ProductID      string
	ChangeType     string
	Reason         string
	QuantityBefore int
	QuantityChange int // con signo: negativo en deducciones/reservas
	QuantityAfter  int
	ReferenceID    string // id de orden o de ajuste
	UserID         string // actor que originó el movimiento
	Notes          string // opcional; obligatorio en ajustes manuales
	CreatedAt      time.Time
}

// ValidChangeType verifica que el tipo pertenezca a la enumeración cerrada.
func ValidChangeType(t string) bool {
	switch t {
	case ChangeDeduction, ChangeAddition, ChangeAdjustment, ChangeReservation, ChangeRelease:
		return true
	}
	return false
}

// ValidDeductionReason razones admitidas en una deducción: solo ventas.
// Las reservas y cancelaciones tienen sus propias operaciones.
func ValidDeductionReason(r string) bool {
	return r == ReasonOnlineSale || r == ReasonOfflineSale
}

// ValidAdditionReason razones admitidas en una adición: reposición o retorno
// de stock por cancelación de una orden ya descontada.
func ValidAdditionReason(r string) bool {
	return r == ReasonStockReplenishment || r == ReasonOrderCancellation
}

// ValidReason verifica que la razón pertenezca a la enumeración cerrada.
func ValidReason(r string) bool {
	switch r {
	case ReasonOnlineSale, ReasonOfflineSale, ReasonManualAdjustment,
		ReasonStockReplenishment, ReasonOrderCancellation, ReasonReservation:
		return true
	}
	return false
}
