package service

import (
	"context"
	"strings"

	"github.com/ridloal/skincare-store-api/internal/product/domain"
	"github.com/ridloal/skincare-store-api/internal/product/repository"
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	CreateProduct(ctx context.Context, req domain.UpsertProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req domain.UpsertProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type productServiceImpl struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productServiceImpl{repo: repo}
}

func (s *productServiceImpl) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *productServiceImpl) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, strings.TrimSpace(productID))
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, req domain.UpsertProductRequest) (*domain.Product, error) {
	product := &domain.Product{
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Benefits:    splitBenefits(req.Benefits),
		Usage:       req.Usage,
		Image:       req.Image,
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct overwrites the form-backed fields; the stored image is
// kept when the request carries no replacement.
func (s *productServiceImpl) UpdateProduct(ctx context.Context, productID string, req domain.UpsertProductRequest) (*domain.Product, error) {
	product, err := s.repo.GetProductByID(ctx, strings.TrimSpace(productID))
	if err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(req.Name)
	product.Price = req.Price
	product.Description = req.Description
	product.Category = req.Category
	product.Benefits = splitBenefits(req.Benefits)
	product.Usage = req.Usage
	if req.Image != "" {
		product.Image = req.Image
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productServiceImpl) DeleteProduct(ctx context.Context, productID string) error {
	return s.repo.DeleteProduct(ctx, strings.TrimSpace(productID))
}

// splitBenefits turns the newline-separated textarea value into a list,
// dropping blank lines.
func splitBenefits(raw string) []string {
	benefits := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			benefits = append(benefits, trimmed)
		}
	}
	return benefits
}
