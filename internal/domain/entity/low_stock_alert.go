package entity

import "time"

// LowStockAlert aviso deduplicado de que el stock cayó bajo el umbral configurado.
// Invariante: como máximo una alerta sin reconocer por producto. Una alerta no
// expira sola ni se limpia al recuperar stock: solo se cierra con Acknowledge.
type LowStockAlert struct {
	ID           string
	ProductID    string
	ProductName  string
	CurrentStock int
	Threshold    int
	Acknowledged bool
	CreatedAt    time.Time
}
