package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Marketplace-api/internal/application/ledger"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un almacén compartido con semántica de rollback (el runner
// toma un snapshot antes de la transacción y lo restaura si la función falla).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products map[string]*entity.Product
	entries  []*entity.LedgerEntry
	alerts   []*entity.LowStockAlert
	orders   []*entity.Order

	failLedgerCreate bool // simula fallo del almacén al insertar la entrada
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{products: make(map[string]*entity.Product)}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

type memSnapshot struct {
	products map[string]*entity.Product
	entries  int
	alerts   int
	orders   int
}

func (s *memStore) snapshot() memSnapshot {
	products := make(map[string]*entity.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		products[id] = &cp
	}
	return memSnapshot{products: products, entries: len(s.entries), alerts: len(s.alerts), orders: len(s.orders)}
}

func (s *memStore) restore(snap memSnapshot) {
	s.products = snap.products
	s.entries = s.entries[:snap.entries]
	s.alerts = s.alerts[:snap.alerts]
	s.orders = s.orders[:snap.orders]
}

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *fakeProductRepo) UpdateStock(id string, stock int) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}
func (r *fakeProductRepo) UpdateApprovalStatus(id, status string) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.ApprovalStatus = status
	return nil
}
func (r *fakeProductRepo) ListBySeller(sellerID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) ListApproved(nameFilter string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) SoftDelete(id string) error { return nil }

type fakeLedgerRepo struct{ s *memStore }

func (r *fakeLedgerRepo) Create(e *entity.LedgerEntry) error {
	if r.s.failLedgerCreate {
		return fmt.Errorf("disco lleno")
	}
	r.s.entries = append(r.s.entries, e)
	return nil
}
func (r *fakeLedgerRepo) ListByProduct(productID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for i := len(r.s.entries) - 1; i >= 0; i-- {
		if r.s.entries[i].ProductID == productID {
			out = append(out, r.s.entries[i])
		}
	}
	return out, nil
}
func (r *fakeLedgerRepo) ListRecent(limit int) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for i := len(r.s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.s.entries[i])
	}
	return out, nil
}

type fakeAlertRepo struct{ s *memStore }

func (r *fakeAlertRepo) Create(a *entity.LowStockAlert) error {
	r.s.alerts = append(r.s.alerts, a)
	return nil
}
func (r *fakeAlertRepo) GetByID(id string) (*entity.LowStockAlert, error) {
	for _, a := range r.s.alerts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}
func (r *fakeAlertRepo) GetUnacknowledged(productID string) (*entity.LowStockAlert, error) {
	for _, a := range r.s.alerts {
		if a.ProductID == productID && !a.Acknowledged {
			return a, nil
		}
	}
	return nil, nil
}
func (r *fakeAlertRepo) ListUnacknowledgedBySeller(sellerID string) ([]*entity.LowStockAlert, error) {
	var out []*entity.LowStockAlert
	for _, a := range r.s.alerts {
		if !a.Acknowledged {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r *fakeAlertRepo) Acknowledge(id string) error {
	for _, a := range r.s.alerts {
		if a.ID == id {
			a.Acknowledged = true
		}
	}
	return nil
}

type fakeOrderRepo struct{ s *memStore }

func (r *fakeOrderRepo) Create(o *entity.Order) error { r.s.orders = append(r.s.orders, o); return nil }
func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	for _, o := range r.s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}
func (r *fakeOrderRepo) ListByBuyer(buyerID string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.s.orders {
		if o.BuyerID == buyerID {
			out = append(out, o)
		}
	}
	return out, nil
}

// fakeTxRunner implementa ledger.TxRunner y ledger.CheckoutTxRunner con rollback
// por snapshot: si la función falla, el almacén queda como estaba.
type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	ledgerRepo repository.LedgerRepository,
	alertRepo repository.AlertRepository,
) error) error {
	snap := r.s.snapshot()
	if err := fn(&fakeProductRepo{r.s}, &fakeLedgerRepo{r.s}, &fakeAlertRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

func (r *fakeTxRunner) RunCheckout(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	ledgerRepo repository.LedgerRepository,
	alertRepo repository.AlertRepository,
	orderRepo repository.OrderRepository,
) error) error {
	snap := r.s.snapshot()
	if err := fn(&fakeProductRepo{r.s}, &fakeLedgerRepo{r.s}, &fakeAlertRepo{r.s}, &fakeOrderRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

func testProduct(id string, stock, threshold int) *entity.Product {
	return &entity.Product{
		ID:                id,
		SellerID:          "seller-1",
		Name:              "Café de origen",
		Price:             decimal.NewFromInt(25000),
		Stock:             stock,
		LowStockThreshold: threshold,
		ApprovalStatus:    entity.ApprovalApproved,
	}
}

func newLedgerUC(s *memStore) *ledger.LedgerUseCase {
	return ledger.NewLedgerUseCase(&fakeTxRunner{s}, &fakeLedgerRepo{s}, &fakeAlertRepo{s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Deducciones
// ──────────────────────────────────────────────────────────────────────────────

func TestDeduct_RegistraEntradaYActualizaStock(t *testing.T) {
	s := newMemStore(testProduct("p1", 100, 10))
	uc := newLedgerUC(s)

	entry, err := uc.Deduct(context.Background(), ledger.MovementInput{
		ProductID:   "p1",
		Quantity:    3,
		ReferenceID: "order-1",
		UserID:      "buyer-1",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ChangeDeduction, entry.ChangeType)
	assert.Equal(t, entity.ReasonOnlineSale, entry.Reason, "sin reason explícito aplica ONLINE_SALE")
	assert.Equal(t, 100, entry.QuantityBefore)
	assert.Equal(t, -3, entry.QuantityChange)
	assert.Equal(t, 97, entry.QuantityAfter)
	assert.Equal(t, entry.QuantityBefore+entry.QuantityChange, entry.QuantityAfter)
	assert.Equal(t, 97, s.products["p1"].Stock, "el stock vivo debe reflejar la deducción")
	assert.Len(t, s.entries, 1)
}

func TestDeduct_StockInsuficiente_NoEscribeNada(t *testing.T) {
	s := newMemStore(testProduct("p1", 2, 10))
	uc := newLedgerUC(s)

	_, err := uc.Deduct(context.Background(), ledger.MovementInput{ProductID: "p1", Quantity: 5})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "p1", insufficient.ProductID)
	assert.Equal(t, 2, insufficient.Available)
	assert.Equal(t, 5, insufficient.Requested)

	assert.Equal(t, 2, s.products["p1"].Stock, "el stock no debe cambiar")
	assert.Empty(t, s.entries, "no debe quedar ninguna entrada de ledger")
}

func TestDeduct_CantidadInvalida(t *testing.T) {
	s := newMemStore(testProduct("p1", 10, 5))
	uc := newLedgerUC(s)

	for _, q := range []int{0, -3} {
		_, err := uc.Deduct(context.Background(), ledger.MovementInput{ProductID: "p1", Quantity: q})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Empty(t, s.entries)
}

func TestDeduct_ProductoInexistente(t *testing.T) {
	s := newMemStore()
	uc := newLedgerUC(s)

	_, err := uc.Deduct(context.Background(), ledger.MovementInput{ProductID: "nope", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeduct_VentaOffline(t *testing.T) {
	s := newMemStore(testProduct("p1", 50, 5))
	uc := newLedgerUC(s)

	entry, err := uc.Deduct(context.Background(), ledger.MovementInput{
		ProductID: "p1",
		Quantity:  1,
		Reason:    entity.ReasonOfflineSale,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReasonOfflineSale, entry.Reason)
}

func TestDeduct_SoloAdmiteRazonesDeVenta(t *testing.T) {
	s := newMemStore(testProduct("p1", 50, 5))
	uc := newLedgerUC(s)

	// RESERVATION y ORDER_CANCELLATION son razones del enum pero pertenecen a
	// otras operaciones; una deducción solo registra ventas.
	for _, reason := range []string{entity.ReasonReservation, entity.ReasonOrderCancellation, "REGALO"} {
		_, err := uc.Deduct(context.Background(), ledger.MovementInput{
			ProductID: "p1",
			Quantity:  1,
			Reason:    reason,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "razón %s", reason)
	}
	assert.Equal(t, 50, s.products["p1"].Stock)
	assert.Empty(t, s.entries)
}

func TestDeduct_FalloDeEscritura_RevierteTodo(t *testing.T) {
	s := newMemStore(testProduct("p1", 100, 10))
	s.failLedgerCreate = true
	uc := newLedgerUC(s)

	_, err := uc.Deduct(context.Background(), ledger.MovementInput{ProductID: "p1", Quantity: 3})

	require.ErrorIs(t, err, domain.ErrExternalWrite)
	assert.Equal(t, 100, s.products["p1"].Stock, "el rollback debe restaurar el stock")
	assert.Empty(t, s.entries)
}

// ──────────────────────────────────────────────────────────────────────────────
// Adiciones y ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestAdd_SumaStock(t *testing.T) {
	s := newMemStore(testProduct("p1", 10, 5))
	uc := newLedgerUC(s)

	entry, err := uc.Add(context.Background(), ledger.MovementInput{ProductID: "p1", Quantity: 40})
	require.NoError(t, err)

	assert.Equal(t, entity.ChangeAddition, entry.ChangeType)
	assert.Equal(t, entity.ReasonStockReplenishment, entry.Reason)
	assert.Equal(t, 10, entry.QuantityBefore)
	assert.Equal(t, 50, entry.QuantityAfter)
	assert.Equal(t, 50, s.products["p1"].Stock)
}

func TestAdd_SoloAdmiteRazonesDeEntrada(t *testing.T) {
	s := newMemStore(testProduct("p1", 10, 5))
	uc := newLedgerUC(s)

	for _, reason := range []string{entity.ReasonOnlineSale, entity.ReasonManualAdjustment} {
		_, err := uc.Add(context.Background(), ledger.MovementInput{
			ProductID: "p1",
			Quantity:  5,
			Reason:    reason,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "razón %s", reason)
	}

	// La devolución por cancelación sí es una entrada legítima.
	entry, err := uc.Add(context.Background(), ledger.MovementInput{
		ProductID: "p1",
		Quantity:  5,
		Reason:    entity.ReasonOrderCancellation,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReasonOrderCancellation, entry.Reason)
}

func TestAdjust_SinNotas_FallaAntesDeEscribir(t *testing.T) {
	s := newMemStore(testProduct("p1", 30, 5))
	uc := newLedgerUC(s)

	for _, notes := range []string{"", "   "} {
		_, err := uc.Adjust(context.Background(), ledger.AdjustInput{
			ProductID:   "p1",
			NewQuantity: 25,
			Notes:       notes,
		})
		assert.ErrorIs(t, err, domain.ErrMissingReason)
	}
	assert.Equal(t, 30, s.products["p1"].Stock)
	assert.Empty(t, s.entries)
}

func TestAdjust_FijaStockYRegistraDelta(t *testing.T) {
	s := newMemStore(testProduct("p1", 30, 5))
	uc := newLedgerUC(s)

	entry, err := uc.Adjust(context.Background(), ledger.AdjustInput{
		ProductID:   "p1",
		NewQuantity: 25,
		Notes:       "conteo físico: 5 unidades dañadas",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ChangeAdjustment, entry.ChangeType)
	assert.Equal(t, entity.ReasonManualAdjustment, entry.Reason)
	assert.Equal(t, 30, entry.QuantityBefore)
	assert.Equal(t, -5, entry.QuantityChange)
	assert.Equal(t, 25, entry.QuantityAfter)
	assert.Equal(t, 25, s.products["p1"].Stock)
}

func TestAdjust_CantidadNegativa(t *testing.T) {
	s := newMemStore(testProduct("p1", 30, 5))
	uc := newLedgerUC(s)

	_, err := uc.Adjust(context.Background(), ledger.AdjustInput{
		ProductID:   "p1",
		NewQuantity: -1,
		Notes:       "error de digitación",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reservas
// ──────────────────────────────────────────────────────────────────────────────

func TestReserveYRelease_IdaYVuelta(t *testing.T) {
	s := newMemStore(testProduct("p1", 20, 5))
	uc := newLedgerUC(s)
	ctx := context.Background()

	reserve, err := uc.Reserve(ctx, "p1", 4, "order-9", "buyer-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ChangeReservation, reserve.ChangeType)
	assert.Equal(t, "order-9", reserve.ReferenceID)
	assert.Equal(t, 16, s.products["p1"].Stock)

	release, err := uc.Release(ctx, "p1", 4, "order-9", "buyer-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ChangeRelease, release.ChangeType)
	assert.Equal(t, entity.ReasonOrderCancellation, release.Reason)
	assert.Equal(t, 20, s.products["p1"].Stock, "la liberación devuelve el stock reservado")
	assert.Len(t, s.entries, 2, "reserva y liberación quedan ambas en el ledger")
}

func TestReserve_SinOrden(t *testing.T) {
	s := newMemStore(testProduct("p1", 20, 5))
	uc := newLedgerUC(s)

	_, err := uc.Reserve(context.Background(), "p1", 4, "", "buyer-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReserve_MasQueElDisponible(t *testing.T) {
	s := newMemStore(testProduct("p1", 3, 5))
	uc := newLedgerUC(s)

	_, err := uc.Reserve(context.Background(), "p1", 10, "order-9", "buyer-1")
	var insufficient *domain.InsufficientStockError
	assert.ErrorAs(t, err, &insufficient)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante del libro: reproducir las entradas reconstruye el stock vivo
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_ReproduccionReconstruyeElStock(t *testing.T) {
	s := newMemStore(testProduct("p1", 0, 5))
	uc := newLedgerUC(s)
	ctx := context.Background()

	_, err := uc.Add(ctx, ledger.MovementInput{ProductID: "p1", Quantity: 100})
	require.NoError(t, err)
	_, err = uc.Deduct(ctx, ledger.MovementInput{ProductID: "p1", Quantity: 30})
	require.NoError(t, err)
	_, err = uc.Reserve(ctx, "p1", 10, "order-1", "buyer-1")
	require.NoError(t, err)
	_, err = uc.Adjust(ctx, ledger.AdjustInput{ProductID: "p1", NewQuantity: 55, Notes: "conteo"})
	require.NoError(t, err)

	sum := 0
	for _, e := range s.entries {
		assert.Equal(t, e.QuantityBefore+e.QuantityChange, e.QuantityAfter,
			"cada entrada debe cumplir before + change = after")
		assert.Equal(t, sum, e.QuantityBefore, "cada entrada parte del after de la anterior")
		sum += e.QuantityChange
	}
	assert.Equal(t, s.products["p1"].Stock, sum, "la suma de cambios reconstruye el stock vivo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Monitor de stock bajo
// ──────────────────────────────────────────────────────────────────────────────

func TestLowStock_CrearAlertaAlCruzarElUmbral(t *testing.T) {
	s := newMemStore(testProduct("p1", 12, 10))
	uc := newLedgerUC(s)

	_, err := uc.Deduct(context.Background(), ledger.MovementInput{ProductID: "p1", Quantity: 5})
	require.NoError(t, err)

	require.Len(t, s.alerts, 1)
	alert := s.alerts[0]
	assert.Equal(t, "p1", alert.ProductID)
	assert.Equal(t, 7, alert.CurrentStock)
	assert.Equal(t, 10, alert.Threshold)
	assert.False(t, alert.Acknowledged)
}

func TestLowStock_NoDuplicaAlertaSinReconocer(t *testing.T) {
	s := newMemStore(testProduct("p1", 12, 10))
	uc := newLedgerUC(s)
	ctx := context.Background()

	_, err := uc.Deduct(ctx, ledger.MovementInput{ProductID: "p1", Quantity: 5})
	require.NoError(t, err)
	_, err = uc.Deduct(ctx, ledger.MovementInput{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	assert.Len(t, s.alerts, 1, "una sola alerta sin reconocer por producto")
}

func TestLowStock_LlegarACeroNoGeneraAlerta(t *testing.T) {
	s := newMemStore(testProduct("p1", 5, 10))
	uc := newLedgerUC(s)

	_, err := uc.Deduct(context.Background(), ledger.MovementInput{ProductID: "p1", Quantity: 5})
	require.NoError(t, err)

	assert.Empty(t, s.alerts, "stock cero es agotado, no stock bajo")
}

func TestLowStock_RecuperarStockNoLimpiaLaAlerta(t *testing.T) {
	s := newMemStore(testProduct("p1", 12, 10))
	uc := newLedgerUC(s)
	ctx := context.Background()

	_, err := uc.Deduct(ctx, ledger.MovementInput{ProductID: "p1", Quantity: 5})
	require.NoError(t, err)
	require.Len(t, s.alerts, 1)

	_, err = uc.Add(ctx, ledger.MovementInput{ProductID: "p1", Quantity: 50})
	require.NoError(t, err)

	require.Len(t, s.alerts, 1)
	assert.False(t, s.alerts[0].Acknowledged,
		"recuperar stock no reconoce ni borra la alerta: eso lo decide el vendedor")
}

func TestLowStock_TrasReconocerPuedeCrearseOtra(t *testing.T) {
	s := newMemStore(testProduct("p1", 12, 10))
	uc := newLedgerUC(s)
	ctx := context.Background()

	_, err := uc.Deduct(ctx, ledger.MovementInput{ProductID: "p1", Quantity: 5})
	require.NoError(t, err)
	require.Len(t, s.alerts, 1)

	require.NoError(t, uc.AcknowledgeAlert(ctx, s.alerts[0].ID))

	_, err = uc.Deduct(ctx, ledger.MovementInput{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	assert.Len(t, s.alerts, 2, "reconocida la primera, un nuevo cruce crea otra alerta")
}

func TestAcknowledgeAlert_Inexistente(t *testing.T) {
	s := newMemStore()
	uc := newLedgerUC(s)

	err := uc.AcknowledgeAlert(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetLedgerByProduct_MasRecientePrimero(t *testing.T) {
	s := newMemStore(testProduct("p1", 0, 5))
	uc := newLedgerUC(s)
	ctx := context.Background()

	_, err := uc.Add(ctx, ledger.MovementInput{ProductID: "p1", Quantity: 10})
	require.NoError(t, err)
	_, err = uc.Deduct(ctx, ledger.MovementInput{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	entries, err := uc.GetLedgerByProduct(ctx, "p1", 50, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entity.ChangeDeduction, entries[0].ChangeType, "la más reciente va primero")
	assert.Equal(t, entity.ChangeAddition, entries[1].ChangeType)
}

func TestErrExternalWrite_SeDistingueDeInsuficiente(t *testing.T) {
	s := newMemStore(testProduct("p1", 100, 10))
	s.failLedgerCreate = true
	uc := newLedgerUC(s)

	_, err := uc.Deduct(context.Background(), ledger.MovementInput{ProductID: "p1", Quantity: 1})

	assert.ErrorIs(t, err, domain.ErrExternalWrite)
	var insufficient *domain.InsufficientStockError
	assert.False(t, errors.As(err, &insufficient))
}
