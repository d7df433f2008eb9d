package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/application/usecase"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/pkg/normalize"
)

// fakeProductRepo almacén en memoria del puerto ProductRepository.
type fakeProductRepo struct {
	products   map[string]*entity.Product
	lastFilter string
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok || p.DeletedAt != nil {
		return nil, nil
	}
	return p, nil
}
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }
func (r *fakeProductRepo) Update(p *entity.Product) error                  { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) UpdateStock(id string, stock int) error {
	r.products[id].Stock = stock
	return nil
}
func (r *fakeProductRepo) UpdateApprovalStatus(id, status string) error {
	r.products[id].ApprovalStatus = status
	return nil
}
func (r *fakeProductRepo) ListBySeller(sellerID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.SellerID == sellerID && p.DeletedAt == nil {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakeProductRepo) ListApproved(nameFilter string, limit, offset int) ([]*entity.Product, error) {
	r.lastFilter = nameFilter
	var out []*entity.Product
	for _, p := range r.products {
		if p.ApprovalStatus != entity.ApprovalApproved || p.DeletedAt != nil {
			continue
		}
		if nameFilter == "" || normalize.Fold(p.Name) == nameFilter {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakeProductRepo) SoftDelete(id string) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := p.CreatedAt
	p.DeletedAt = &now
	return nil
}

func TestCreateProduct_NaceOcultoYSinStock(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	out, err := uc.Create("seller-1", dto.CreateProductRequest{
		Name:  "Hamaca tejida",
		Price: decimal.NewFromInt(120000),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, out.Stock, "el stock inicial siempre es cero: entra vía ledger")
	assert.Equal(t, entity.ApprovalPending, out.ApprovalStatus, "nace oculto hasta pasar QA")
	assert.Equal(t, entity.DefaultLowStockThreshold, out.LowStockThreshold)
	assert.Equal(t, "seller-1", out.SellerID)
}

func TestCreateProduct_Invalido(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	_, err := uc.Create("seller-1", dto.CreateProductRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create("seller-1", dto.CreateProductRequest{
		Name:  "Hamaca",
		Price: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateProduct_SoloElDueno(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	created, err := uc.Create("seller-1", dto.CreateProductRequest{
		Name:  "Hamaca tejida",
		Price: decimal.NewFromInt(120000),
	})
	require.NoError(t, err)

	nuevoNombre := "Hamaca tejida XL"
	_, err = uc.Update("seller-2", created.ID, dto.UpdateProductRequest{Name: &nuevoNombre})
	assert.ErrorIs(t, err, domain.ErrForbidden, "otro vendedor no puede editar el producto")

	out, err := uc.Update("seller-1", created.ID, dto.UpdateProductRequest{Name: &nuevoNombre})
	require.NoError(t, err)
	assert.Equal(t, "Hamaca tejida XL", out.Name)
	assert.Equal(t, 0, out.Stock, "el update nunca toca el stock")
}

func TestDeleteProduct_BorradoLogico(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	created, err := uc.Create("seller-1", dto.CreateProductRequest{
		Name:  "Hamaca",
		Price: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete("seller-2", created.ID), domain.ErrForbidden)
	require.NoError(t, uc.Delete("seller-1", created.ID))

	_, err = uc.GetByID(created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchCatalog_NormalizaElFiltro(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	created, err := uc.Create("seller-1", dto.CreateProductRequest{
		Name:  "Cámara instantánea",
		Price: decimal.NewFromInt(300000),
	})
	require.NoError(t, err)
	// Simular la aprobación vía QA para hacerlo visible.
	require.NoError(t, repo.UpdateApprovalStatus(created.ID, entity.ApprovalApproved))

	list, err := uc.SearchCatalog("CÁMARA INSTANTÁNEA", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "camara instantanea", repo.lastFilter,
		"el filtro llega al repositorio en minúsculas y sin acentos")
}

func TestSearchCatalog_SoloProductosAprobados(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	_, err := uc.Create("seller-1", dto.CreateProductRequest{
		Name:  "Producto sin aprobar",
		Price: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	list, err := uc.SearchCatalog("", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list, "los pendientes de QA no aparecen en el catálogo")
}
