package cart

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nahuelmangano/speedtest/internal/application/dto"
	"github.com/nahuelmangano/speedtest/internal/application/ports"
	"github.com/nahuelmangano/speedtest/internal/application/usecase"
	"github.com/nahuelmangano/speedtest/internal/domain"
	"github.com/nahuelmangano/speedtest/internal/domain/entity"
	"github.com/nahuelmangano/speedtest/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos de productos y órdenes atados a ella.
// Garantiza que el descuento de stock y el alta de la orden sean atómicos.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// UseCase carrito por sesión y confirmación de compras.
type UseCase struct {
	products  repository.ProductRepository
	orders    repository.OrderRepository
	tx        TxRunner
	sessions  ports.SessionStore
	receipts  ports.ReceiptGenerator
	storeName string
}

// NewUseCase construye el caso de uso del carrito.
func NewUseCase(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	tx TxRunner,
	sessions ports.SessionStore,
	receipts ports.ReceiptGenerator,
	storeName string,
) *UseCase {
	return &UseCase{
		products:  products,
		orders:    orders,
		tx:        tx,
		sessions:  sessions,
		receipts:  receipts,
		storeName: storeName,
	}
}

// Add agrega productID al final del carrito. No verifica que el producto exista
// y admite repetidos; la lista se crea en el primer uso.
func (uc *UseCase) Add(sessionID, productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return domain.ErrValidation
	}
	return uc.sessions.Update(sessionID, func(s *entity.Session) error {
		s.Cart = append(s.Cart, productID)
		return nil
	})
}

// Items resuelve el carrito contra el catálogo: agrupa repetidos en cantidad (orden de primera
// aparición) y cuenta los ids que no existen.
func (uc *UseCase) Items(ctx context.Context, sessionID string) (*dto.CartResponse, error) {
	out := &dto.CartResponse{Lines: []dto.CartLine{}, Total: decimal.Zero}
	s, ok := uc.sessions.Load(sessionID)
	if !ok {
		return out, nil
	}
	for _, l := range aggregate(s.Cart) {
		p, err := uc.lookup(ctx, l.productID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			out.Missing += l.quantity
			continue
		}
		sub := p.Price.Mul(decimal.NewFromInt(int64(l.quantity)))
		out.Lines = append(out.Lines, dto.CartLine{
			Product:  *usecase.ToProductResponse(p),
			Quantity: l.quantity,
			Subtotal: sub,
		})
		out.Total = out.Total.Add(sub)
	}
	return out, nil
}

// Checkout compra una unidad de productID: descuenta stock y registra la orden en una
// transacción. ErrNotFound si el producto no existe, ErrInsufficientStock si no hay unidades.
// Tras confirmar quita una unidad de ese producto del carrito.
func (uc *UseCase) Checkout(ctx context.Context, sessionID, productID string) (*dto.PurchaseConfirmation, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, domain.ErrNotFound
	}
	order, err := uc.placeOrder(ctx, uc.username(sessionID), []line{{productID: productID, quantity: 1}}, false)
	if err != nil {
		return nil, err
	}
	err = uc.sessions.Update(sessionID, func(s *entity.Session) error {
		for i, id := range s.Cart {
			if id == productID {
				s.Cart = append(s.Cart[:i], s.Cart[i+1:]...)
				break
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return toConfirmation(order, fmt.Sprintf("Compra confirmada: %s", order.Items[0].ProductName)), nil
}

// CheckoutCart compra todo el carrito en una sola transacción (todo o nada) y lo vacía.
// Los ids que no existen en el catálogo se descartan; carrito vacío es ErrValidation.
func (uc *UseCase) CheckoutCart(ctx context.Context, sessionID string) (*dto.PurchaseConfirmation, error) {
	s, ok := uc.sessions.Load(sessionID)
	if !ok || len(s.Cart) == 0 {
		return nil, fmt.Errorf("%w: el carrito está vacío", domain.ErrValidation)
	}
	lines := make([]line, 0, len(s.Cart))
	for _, l := range aggregate(s.Cart) {
		if _, err := uuid.Parse(l.productID); err == nil {
			lines = append(lines, l)
		}
	}
	order, err := uc.placeOrder(ctx, s.Username, lines, true)
	if err != nil {
		return nil, err
	}
	err = uc.sessions.Update(sessionID, func(s *entity.Session) error {
		s.Cart = nil
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return toConfirmation(order, fmt.Sprintf("Compra confirmada: %d artículo(s)", len(order.Items))), nil
}

// Receipt genera el PDF de la orden orderID.
func (uc *UseCase) Receipt(ctx context.Context, orderID string) ([]byte, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, domain.ErrNotFound
	}
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return uc.receipts.GenerateReceiptPDF(ctx, uc.storeName, order)
}

// placeOrder bloquea las filas en orden de id para que dos compras concurrentes no se crucen.
func (uc *UseCase) placeOrder(ctx context.Context, username string, lines []line, skipMissing bool) (*entity.Order, error) {
	sorted := append([]line(nil), lines...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].productID < sorted[j].productID })

	order := &entity.Order{
		ID:        uuid.New().String(),
		Username:  username,
		Total:     decimal.Zero,
		CreatedAt: time.Now().UTC(),
	}
	err := uc.tx.RunCheckout(ctx, func(productRepo repository.ProductRepository, orderRepo repository.OrderRepository) error {
		for _, l := range sorted {
			p, err := productRepo.GetForUpdate(ctx, l.productID)
			if err != nil {
				return err
			}
			if p == nil {
				if skipMissing {
					continue
				}
				return domain.ErrNotFound
			}
			if p.Stock < l.quantity {
				return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, p.Name)
			}
			if err := productRepo.UpdateStock(ctx, p.ID, p.Stock-l.quantity); err != nil {
				return err
			}
			item := entity.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    l.quantity,
				UnitPrice:   p.Price,
			}
			order.Items = append(order.Items, item)
			order.Total = order.Total.Add(item.Subtotal())
		}
		if len(order.Items) == 0 {
			return fmt.Errorf("%w: ningún producto del carrito existe", domain.ErrValidation)
		}
		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (uc *UseCase) lookup(ctx context.Context, id string) (*entity.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return uc.products.GetByID(ctx, id)
}

func (uc *UseCase) username(sessionID string) string {
	s, ok := uc.sessions.Load(sessionID)
	if !ok {
		return ""
	}
	return s.Username
}

type line struct {
	productID string
	quantity  int
}

func aggregate(ids []string) []line {
	idx := make(map[string]int, len(ids))
	var out []line
	for _, id := range ids {
		if i, ok := idx[id]; ok {
			out[i].quantity++
			continue
		}
		idx[id] = len(out)
		out = append(out, line{productID: id, quantity: 1})
	}
	return out
}

func toConfirmation(o *entity.Order, msg string) *dto.PurchaseConfirmation {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return &dto.PurchaseConfirmation{
		OrderID:   o.ID,
		Message:   msg,
		Total:     o.Total,
		Items:     items,
		CreatedAt: o.CreatedAt,
	}
}
