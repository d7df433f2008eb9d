package qa_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appqa "github.com/jhoicas/Marketplace-api/internal/application/qa"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type qaStore struct {
	assessments map[string]*entity.QAAssessment
	products    map[string]*entity.Product
	users       map[string]*entity.User
	ops         []string // secuencia de accesos relevantes para asserts de orden
}

func newQAStore() *qaStore {
	return &qaStore{
		assessments: make(map[string]*entity.QAAssessment),
		products:    make(map[string]*entity.Product),
		users:       make(map[string]*entity.User),
	}
}

type fakeAssessmentRepo struct{ s *qaStore }

func (r *fakeAssessmentRepo) Create(a *entity.QAAssessment) error {
	r.s.assessments[a.ID] = a
	return nil
}
func (r *fakeAssessmentRepo) GetByID(id string) (*entity.QAAssessment, error) {
	return r.s.assessments[id], nil
}
func (r *fakeAssessmentRepo) GetForUpdate(id string) (*entity.QAAssessment, error) {
	return r.s.assessments[id], nil
}
func (r *fakeAssessmentRepo) GetActiveByProduct(productID string) (*entity.QAAssessment, error) {
	r.s.ops = append(r.s.ops, "consulta-evaluacion-activa")
	for _, a := range r.s.assessments {
		if a.ProductID == productID && !a.IsTerminal() {
			return a, nil
		}
	}
	return nil, nil
}
func (r *fakeAssessmentRepo) Update(a *entity.QAAssessment) error {
	r.s.assessments[a.ID] = a
	return nil
}
func (r *fakeAssessmentRepo) ListByStatus(status string, limit, offset int) ([]*entity.QAAssessment, error) {
	var out []*entity.QAAssessment
	for _, a := range r.s.assessments {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeQAProductRepo struct{ s *qaStore }

func (r *fakeQAProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *fakeQAProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *fakeQAProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	r.s.ops = append(r.s.ops, "bloqueo-producto")
	return r.s.products[id], nil
}
func (r *fakeQAProductRepo) Update(p *entity.Product) error            { return nil }
func (r *fakeQAProductRepo) UpdateStock(id string, stock int) error    { return nil }
func (r *fakeQAProductRepo) UpdateApprovalStatus(id, st string) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.ApprovalStatus = st
	return nil
}
func (r *fakeQAProductRepo) ListBySeller(sellerID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeQAProductRepo) ListApproved(nameFilter string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeQAProductRepo) SoftDelete(id string) error { return nil }

type fakeQAUserRepo struct{ s *qaStore }

func (r *fakeQAUserRepo) Create(u *entity.User) error             { r.s.users[u.ID] = u; return nil }
func (r *fakeQAUserRepo) GetByID(id string) (*entity.User, error) { return r.s.users[id], nil }
func (r *fakeQAUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type fakeApprovalTxRunner struct{ s *qaStore }

func (r *fakeApprovalTxRunner) RunApproval(ctx context.Context, fn func(
	assessmentRepo repository.AssessmentRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(&fakeAssessmentRepo{r.s}, &fakeQAProductRepo{r.s})
}

func newQAUC(s *qaStore) *appqa.QAUseCase {
	return appqa.NewQAUseCase(&fakeApprovalTxRunner{s}, &fakeAssessmentRepo{s}, &fakeQAProductRepo{s}, &fakeQAUserRepo{s})
}

func seedProduct(s *qaStore) *entity.Product {
	p := &entity.Product{
		ID:             "p1",
		SellerID:       "seller-1",
		Name:           "Mochila artesanal",
		ApprovalStatus: entity.ApprovalPending,
	}
	s.products[p.ID] = p
	s.users["seller-1"] = &entity.User{
		ID:        "seller-1",
		Name:      "Ana",
		StoreName: "Tienda Wayuu",
		Role:      entity.RoleSeller,
	}
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Envío inicial
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitForReview_CreaEvaluacionPendiente(t *testing.T) {
	s := newQAStore()
	seedProduct(s)
	uc := newQAUC(s)

	a, err := uc.SubmitForReview(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, entity.QAPendingDigitalReview, a.Status)
	assert.Equal(t, "p1", a.ProductID)
	assert.Equal(t, "seller-1", a.SellerID)
	assert.Equal(t, "Tienda Wayuu", a.Vendor, "el vendor es el nombre visible de la tienda")
	assert.False(t, a.SubmittedAt.IsZero())
	assert.Equal(t, entity.ApprovalPending, s.products["p1"].ApprovalStatus,
		"el producto sigue oculto a compradores")
}

func TestSubmitForReview_SoloUnaEvaluacionActiva(t *testing.T) {
	s := newQAStore()
	seedProduct(s)
	uc := newQAUC(s)
	ctx := context.Background()

	_, err := uc.SubmitForReview(ctx, "p1")
	require.NoError(t, err)

	_, err = uc.SubmitForReview(ctx, "p1")
	assert.ErrorIs(t, err, domain.ErrConflict, "un producto no admite dos evaluaciones activas")
}

func TestSubmitForReview_VerificaActivasConElProductoBloqueado(t *testing.T) {
	s := newQAStore()
	seedProduct(s)
	uc := newQAUC(s)

	_, err := uc.SubmitForReview(context.Background(), "p1")
	require.NoError(t, err)

	// La unicidad de la evaluación activa solo vale si la consulta ocurre con la
	// fila del producto ya bloqueada dentro de la transacción; de lo contrario dos
	// envíos concurrentes insertan dos evaluaciones.
	require.Equal(t, []string{"bloqueo-producto", "consulta-evaluacion-activa"}, s.ops,
		"el lock del producto debe preceder a la consulta de evaluaciones activas")
}

func TestSubmitForReview_ProductoInexistente(t *testing.T) {
	s := newQAStore()
	uc := newQAUC(s)

	_, err := uc.SubmitForReview(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmitForReview_TrasRechazoCreaEvaluacionNueva(t *testing.T) {
	s := newQAStore()
	seedProduct(s)
	uc := newQAUC(s)
	ctx := context.Background()

	first, err := uc.SubmitForReview(ctx, "p1")
	require.NoError(t, err)
	_, err = uc.Reject(ctx, first.ID, "fotos de baja calidad", entity.QAStageDigital)
	require.NoError(t, err)

	second, err := uc.SubmitForReview(ctx, "p1")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID, "una evaluación terminal nunca se reabre")
	assert.Equal(t, entity.QAPendingDigitalReview, second.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recorrido feliz del pipeline
// ──────────────────────────────────────────────────────────────────────────────

func TestPipeline_RecorridoCompletoHastaVerificado(t *testing.T) {
	s := newQAStore()
	seedProduct(s)
	uc := newQAUC(s)
	ctx := context.Background()

	a, err := uc.SubmitForReview(ctx, "p1")
	require.NoError(t, err)

	a, err = uc.ApproveForSample(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QAWaitingForSample, a.Status)
	assert.NotNil(t, a.ApprovedAt)
	assert.Equal(t, entity.ApprovalPending, s.products["p1"].ApprovalStatus,
		"aprobar lo digital aún no hace visible el producto")

	a, err = uc.SubmitSample(ctx, a.ID, "Servientrega guía 12345")
	require.NoError(t, err)
	assert.Equal(t, entity.QAInQualityReview, a.Status)
	assert.Equal(t, "Servientrega guía 12345", a.LogisticsMethod)

	a, err = uc.PassQualityCheck(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QAActiveVerified, a.Status)
	assert.NotNil(t, a.VerifiedAt)
	assert.Equal(t, entity.ApprovalApproved, s.products["p1"].ApprovalStatus,
		"verificado sincroniza el producto a approved en la misma transacción")
}

func TestSubmitSample_SinMetodoLogistico(t *testing.T) {
	s := newQAStore()
	seedProduct(s)
	uc := newQAUC(s)
	ctx := context.Background()

	a, err := uc.SubmitForReview(ctx, "p1")
	require.NoError(t, err)
	a, err = uc.ApproveForSample(ctx, a.ID)
	require.NoError(t, err)

	for _, m := range []string{"", "  "} {
		_, err = uc.SubmitSample(ctx, a.ID, m)
		assert.ErrorIs(t, err, domain.ErrMissingLogistics)
	}
	assert.Equal(t, entity.QAWaitingForSample, s.assessments[a.ID].Status, "el estado no cambia")
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones inválidas
// ──────────────────────────────────────────────────────────────────────────────

func TestPassQualityCheck_RequiereRevisionFisicaEnCurso(t *testing.T) {
	s := newQAStore()
	seedProduct(s)
	uc := newQAUC(s)
	ctx := context.Background()

	a, err := uc.SubmitForReview(ctx, "p1")
	require.NoError(t, err)

	// Saltarse la muestra física no está permitido.
	_, err = uc.PassQualityCheck(ctx, a.ID)

	var transition *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, entity.QAPendingDigitalReview, transition.Current)
	assert.Equal(t, entity.QAInQualityReview, transition.Required)
	assert.Equal(t, entity.ApprovalPending, s.products["p1"].ApprovalStatus)
}

func TestEstadosTerminales_SonInmutables(t *testing.T) {
	s := newQAStore()
	seedProduct(s)
	uc := newQAUC(s)
	ctx := context.Background()

	a, err := uc.SubmitForReview(ctx, "p1")
	require.NoError(t, err)
	_, err = uc.Reject(ctx, a.ID, "producto falsificado", entity.QAStageDigital)
	require.NoError(t, err)

	var transition *domain.InvalidTransitionError

	_, err = uc.ApproveForSample(ctx, a.ID)
	assert.ErrorAs(t, err, &transition)

	_, err = uc.Reject(ctx, a.ID, "otro motivo", entity.QAStageDigital)
	assert.ErrorAs(t, err, &transition)

	_, err = uc.RequestRevision(ctx, a.ID, "motivo", entity.QAStageDigital)
	assert.ErrorAs(t, err, &transition)

	assert.Equal(t, entity.QARejected, s.assessments[a.ID].Status)
	assert.Equal(t, entity.ApprovalRejected, s.products["p1"].ApprovalStatus)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rechazo y revisión
// ──────────────────────────────────────────────────────────────────────────────

func TestReject_RequiereMotivo(t *testing.T) {
	s := newQAStore()
	seedProduct(s)
	uc := newQAUC(s)
	ctx := context.Background()

	a, err := uc.SubmitForReview(ctx, "p1")
	require.NoError(t, err)

	_, err = uc.Reject(ctx, a.ID, "   ", entity.QAStageDigital)
	assert.ErrorIs(t, err, domain.ErrMissingReason)
	assert.Equal(t, entity.QAPendingDigitalReview, s.assessments[a.ID].Status)
}

func TestReject_DesdeRevisionFisica(t *testing.T) {
	s := newQAStore()
	seedProduct(s)
	uc := newQAUC(s)
	ctx := context.Background()

	a, err := uc.SubmitForReview(ctx, "p1")
	require.NoError(t, err)
	a, err = uc.ApproveForSample(ctx, a.ID)
	require.NoError(t, err)
	a, err = uc.SubmitSample(ctx, a.ID, "InterRapidísimo")
	require.NoError(t, err)

	a, err = uc.Reject(ctx, a.ID, "la muestra no coincide con las fotos", entity.QAStagePhysical)
	require.NoError(t, err)

	assert.Equal(t, entity.QARejected, a.Status)
	assert.Equal(t, entity.QAStagePhysical, a.RejectionStage)
	assert.NotNil(t, a.RejectedAt)
	assert.Equal(t, entity.ApprovalRejected, s.products["p1"].ApprovalStatus)
}

func TestRequestRevision_YReenvio(t *testing.T) {
	s := newQAStore()
	seedProduct(s)
	uc := newQAUC(s)
	ctx := context.Background()

	a, err := uc.SubmitForReview(ctx, "p1")
	require.NoError(t, err)

	a, err = uc.RequestRevision(ctx, a.ID, "falta la ficha técnica", entity.QAStageDigital)
	require.NoError(t, err)
	assert.Equal(t, entity.QAForRevision, a.Status)
	assert.NotNil(t, a.RevisionRequestedAt)
	assert.Equal(t, entity.ApprovalPending, s.products["p1"].ApprovalStatus)

	// Pedir revisión de algo ya en revisión no tiene sentido.
	_, err = uc.RequestRevision(ctx, a.ID, "otra cosa", entity.QAStageDigital)
	var transition *domain.InvalidTransitionError
	assert.ErrorAs(t, err, &transition)

	// El reenvío corregido reincorpora la MISMA evaluación al inicio del pipeline.
	resubmitted, err := uc.ResubmitAfterRevision(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, resubmitted.ID)
	assert.Equal(t, entity.QAPendingDigitalReview, resubmitted.Status)
}

func TestRequestRevision_EtapaInvalida(t *testing.T) {
	s := newQAStore()
	seedProduct(s)
	uc := newQAUC(s)
	ctx := context.Background()

	a, err := uc.SubmitForReview(ctx, "p1")
	require.NoError(t, err)

	_, err = uc.RequestRevision(ctx, a.ID, "motivo válido", "telepática")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetAssessment_DevuelveLaActiva(t *testing.T) {
	s := newQAStore()
	seedProduct(s)
	uc := newQAUC(s)
	ctx := context.Background()

	created, err := uc.SubmitForReview(ctx, "p1")
	require.NoError(t, err)

	got, err := uc.GetAssessment(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = uc.GetAssessment(ctx, "sin-evaluacion")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
