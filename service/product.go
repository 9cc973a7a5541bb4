package service

import (
	"Storefront/dao"
	"Storefront/models"
	"Storefront/pkg/money"
	"Storefront/pkg/snowflake"
	"Storefront/types"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type IProductService interface {
	List(ctx context.Context, req *types.ProductListRequest) (*types.ProductListResponse, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, req *types.CreateProductRequest) (*models.Product, error)
}

type ProductService struct {
	ProductDAO *dao.Product
}

var _ IProductService = (*ProductService)(nil)

func (s *ProductService) List(ctx context.Context, req *types.ProductListRequest) (*types.ProductListResponse, error) {
	limit := pageSize(req.Limit)
	products, err := s.ProductDAO.ListOnShelf(ctx, req.Cursor, limit+1)
	if err != nil {
		return nil, err
	}
	resp := &types.ProductListResponse{Products: products}
	if len(products) > limit {
		resp.Products = products[:limit]
		resp.HasMore = true
	}
	if n := len(resp.Products); n > 0 {
		resp.NextCursor = resp.Products[n-1].ID
	}
	return resp, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	p, err := s.ProductDAO.FindById(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	return p, err
}

// Create 内容模板是显式的商品属性, 不从名称推断
func (s *ProductService) Create(ctx context.Context, req *types.CreateProductRequest) (*models.Product, error) {
	sku := strings.TrimSpace(req.Sku)
	name := strings.TrimSpace(req.Name)
	if sku == "" {
		return nil, invalid("sku", "required")
	}
	if name == "" {
		return nil, invalid("name", "required")
	}
	if req.Price.IsNegative() {
		return nil, invalid("price", "must not be negative")
	}
	if req.Stock < 0 {
		return nil, invalid("stock", "must not be negative")
	}
	kind := models.ContentKind(req.ContentKind)
	if kind == "" {
		kind = models.ContentStandard
	}
	if !kind.Valid() {
		return nil, invalid("content_kind", "must be standard, blend_klow or bac_water")
	}
	status := int8(models.ProductOnShelf)
	if req.Status != nil {
		if *req.Status != models.ProductOnShelf && *req.Status != models.ProductOffShelf {
			return nil, invalid("status", "must be 0 or 1")
		}
		status = *req.Status
	}

	exist, err := s.ProductDAO.ExistsBySku(ctx, sku)
	if err != nil {
		return nil, err
	}
	if exist {
		return nil, ErrDuplicateSku
	}
	p := &models.Product{
		ID:          snowflake.GenID(),
		Sku:         sku,
		Name:        name,
		Price:       money.Round2(req.Price),
		Stock:       req.Stock,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		ContentKind: kind,
		Status:      status,
	}
	if err := s.ProductDAO.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSku
		}
		return nil, err
	}
	return p, nil
}
