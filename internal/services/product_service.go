package services

import (
	"fmt"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/repositories"
)

type ProductService struct {
	products repositories.ProductRepository
	orders   repositories.OrderRepository
}

func NewProductService(p repositories.ProductRepository, o repositories.OrderRepository) *ProductService {
	return &ProductService{products: p, orders: o}
}

func (s *ProductService) Get(id uint) (models.Product, error) {
	p, err := s.products.FindByID(id)
	if err != nil {
		return models.Product{}, err
	}
	return *p, nil
}

var validStatuses = map[string]bool{
	models.ProductAvailable: true,
	models.ProductReserved:  true,
	models.ProductSold:      true,
}

// UpdateStatus flips a listing's status. Only the owner may do it; this is the
// call the offer-acceptance flow makes before sending its response.
func (s *ProductService) UpdateStatus(userID, productID uint, status string) (models.Product, error) {
	if !validStatuses[status] {
		return models.Product{}, fmt.Errorf("invalid status %q", status)
	}
	p, err := s.products.FindByID(productID)
	if err != nil {
		return models.Product{}, err
	}
	if p.SellerID != userID {
		return models.Product{}, fmt.Errorf("only the seller can change the listing status")
	}
	p.Status = status
	if err := s.products.Save(p); err != nil {
		return models.Product{}, err
	}
	return *p, nil
}

// RequestPurchase records a pending order for the seller to confirm.
func (s *ProductService) RequestPurchase(buyerID, productID uint) (models.Order, error) {
	p, err := s.products.FindByID(productID)
	if err != nil {
		return models.Order{}, err
	}
	if p.SellerID == buyerID {
		return models.Order{}, fmt.Errorf("cannot buy your own listing")
	}
	if p.Status == models.ProductSold {
		return models.Order{}, fmt.Errorf("product already sold")
	}
	order := models.Order{
		ProductID: productID,
		BuyerID:   buyerID,
		SellerID:  p.SellerID,
		Amount:    p.Price,
		Status:    models.OrderPending,
	}
	if err := s.orders.Create(&order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *ProductService) SellerOrders(sellerID uint) ([]models.Order, error) {
	return s.orders.ListForSeller(sellerID)
}
