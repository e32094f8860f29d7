package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nahuelmangano/speedtest/internal/application/dto"
	"github.com/nahuelmangano/speedtest/internal/application/ports"
	"github.com/nahuelmangano/speedtest/internal/domain"
	"github.com/nahuelmangano/speedtest/internal/domain/entity"
	"github.com/nahuelmangano/speedtest/internal/domain/repository"
)

// CatalogTxRunner ejecuta fn dentro de una transacción con repos de catálogo atados a ella.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		categoryRepo repository.CategoryRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ProductUseCase casos de uso del catálogo: listado, detalle y alta con imagen opcional.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	tx         CatalogTxRunner
	images     ports.ImageStorage
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	tx CatalogTxRunner,
	images ports.ImageStorage,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, tx: tx, images: images}
}

// List devuelve los productos en orden de alta, con el nombre de su categoría.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names, err := uc.categoryNames(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, names))
	}
	return items, nil
}

// GetByID obtiene un producto. ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	names := map[string]string{}
	if p.CategoryID != nil {
		c, err := uc.categories.GetByID(ctx, *p.CategoryID)
		if err != nil {
			return nil, err
		}
		if c != nil {
			names[c.ID] = c.Name
		}
	}
	return toProductResponse(p, names), nil
}

// Create valida y persiste un producto. Precio y stock llegan como texto del formulario:
// precio decimal no negativo con hasta 2 decimales, stock entero no negativo; si no, ErrValidation.
// La categoría, si viene, debe existir (ErrNotFound). La imagen se guarda antes del insert.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, image *dto.ImageUpload) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Price = strings.TrimSpace(in.Price)
	in.Stock = strings.TrimSpace(in.Stock)
	in.Color = strings.TrimSpace(in.Color)
	in.Description = strings.TrimSpace(in.Description)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	stock, err := parseStock(in.Stock)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Price:       price,
		Stock:       stock,
		Color:       optional(in.Color),
		Description: optional(in.Description),
		CategoryID:  optional(in.CategoryID),
		CreatedAt:   time.Now().UTC(),
	}

	names := map[string]string{}
	if product.CategoryID != nil {
		c, err := uc.categories.GetByID(ctx, *product.CategoryID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("categoría %s: %w", *product.CategoryID, domain.ErrNotFound)
		}
		names[c.ID] = c.Name
	}

	if image != nil && image.Filename != "" {
		ref, err := uc.images.Save(ctx, image.Filename, image.Content)
		if err != nil {
			return nil, err
		}
		product.ImageURL = &ref
	}

	err = uc.tx.RunCatalog(ctx, func(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) error {
		if product.CategoryID != nil {
			c, err := categoryRepo.GetByID(ctx, *product.CategoryID)
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("categoría %s: %w", *product.CategoryID, domain.ErrNotFound)
			}
		}
		return productRepo.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, names), nil
}

func (uc *ProductUseCase) categoryNames(ctx context.Context) (map[string]string, error) {
	cats, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	return names, nil
}

// maxPrice cota exclusiva de precio: la columna es NUMERIC(10,2).
var maxPrice = decimal.New(1, 8)

func parsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: precio %q no es numérico", domain.ErrValidation, s)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: precio negativo", domain.ErrValidation)
	}
	if !price.Equal(price.Round(2)) {
		return decimal.Zero, fmt.Errorf("%w: precio con más de 2 decimales", domain.ErrValidation)
	}
	if price.GreaterThanOrEqual(maxPrice) {
		return decimal.Zero, fmt.Errorf("%w: precio fuera de rango", domain.ErrValidation)
	}
	return price, nil
}

func parseStock(s string) (int, error) {
	stock, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: stock %q no es entero", domain.ErrValidation, s)
	}
	if stock < 0 {
		return 0, fmt.Errorf("%w: stock negativo", domain.ErrValidation)
	}
	return int(stock), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToProductResponse adapta la entidad sin resolver el nombre de categoría.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	return toProductResponse(p, nil)
}

func toProductResponse(p *entity.Product, categoryNames map[string]string) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	out := &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Stock:       p.Stock,
		Color:       p.Color,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
	if p.CategoryID != nil {
		out.CategoryName = categoryNames[*p.CategoryID]
	}
	return out
}
