package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
)

type fakeProductRepo struct {
	products map[uint]*models.Product
	saved    []models.Product
}

func (f *fakeProductRepo) FindByID(id uint) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductRepo) Save(p *models.Product) error {
	f.products[p.ID] = p
	f.saved = append(f.saved, *p)
	return nil
}

type fakeOrderRepo struct {
	created []models.Order
}

func (f *fakeOrderRepo) Create(o *models.Order) error {
	o.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *o)
	return nil
}

func (f *fakeOrderRepo) ListForSeller(sellerID uint) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.created {
		if o.SellerID == sellerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func newProductFixture() (*ProductService, *fakeProductRepo, *fakeOrderRepo) {
	products := &fakeProductRepo{products: map[uint]*models.Product{
		5: {ID: 5, SellerID: 2, Title: "Bicicleta aro 29", Price: 850, Status: models.ProductAvailable},
	}}
	orders := &fakeOrderRepo{}
	return NewProductService(products, orders), products, orders
}

func TestUpdateStatusOnlyBySeller(t *testing.T) {
	svc, repo, _ := newProductFixture()

	_, err := svc.UpdateStatus(1, 5, models.ProductSold)
	require.Error(t, err)
	assert.Empty(t, repo.saved)

	p, err := svc.UpdateStatus(2, 5, models.ProductSold)
	require.NoError(t, err)
	assert.Equal(t, models.ProductSold, p.Status)
	assert.Equal(t, models.ProductSold, repo.products[5].Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, repo, _ := newProductFixture()

	_, err := svc.UpdateStatus(2, 5, "haggling")
	require.Error(t, err)
	assert.Empty(t, repo.saved)
}

func TestRequestPurchaseCreatesPendingOrder(t *testing.T) {
	svc, _, orders := newProductFixture()

	order, err := svc.RequestPurchase(1, 5)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, uint(2), order.SellerID)
	assert.Equal(t, float64(850), order.Amount)
	require.Len(t, orders.created, 1)

	listed, err := svc.SellerOrders(2)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestRequestPurchaseBlocksOwnListing(t *testing.T) {
	svc, _, orders := newProductFixture()

	_, err := svc.RequestPurchase(2, 5)
	require.Error(t, err)
	assert.Empty(t, orders.created)
}

func TestRequestPurchaseBlocksSoldProduct(t *testing.T) {
	svc, repo, orders := newProductFixture()
	repo.products[5].Status = models.ProductSold

	_, err := svc.RequestPurchase(1, 5)
	require.Error(t, err)
	assert.Empty(t, orders.created)
}

func TestGetUnknownProduct(t *testing.T) {
	svc, _, _ := newProductFixture()

	_, err := svc.Get(99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
