package cart_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahuelmangano/speedtest/internal/application/cart"
	"github.com/nahuelmangano/speedtest/internal/domain"
	"github.com/nahuelmangano/speedtest/internal/domain/entity"
	"github.com/nahuelmangano/speedtest/internal/infrastructure/memory"
	"github.com/nahuelmangano/speedtest/internal/infrastructure/session"
)

type fakeReceipts struct {
	store string
	order *entity.Order
}

func (f *fakeReceipts) GenerateReceiptPDF(_ context.Context, storeName string, order *entity.Order) ([]byte, error) {
	f.store, f.order = storeName, order
	return []byte("%PDF-fake"), nil
}

type fixture struct {
	uc       *cart.UseCase
	store    *memory.Store
	sessions *session.Store
	receipts *fakeReceipts
}

func newFixture() fixture {
	store := memory.NewStore()
	sessions := session.NewStore(100, time.Hour)
	receipts := &fakeReceipts{}
	uc := cart.NewUseCase(store.Products(), store.Orders(), store, sessions, receipts, "Tienda Test")
	return fixture{uc: uc, store: store, sessions: sessions, receipts: receipts}
}

func (f fixture) product(t *testing.T, name, price string, stock int) string {
	t.Helper()
	p := &entity.Product{
		ID:        uuid.NewString(),
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.store.Products().Create(context.Background(), p))
	return p.ID
}

func (f fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func TestAdd_ConservaOrdenYRepetidos(t *testing.T) {
	f := newFixture()
	sid := f.sessions.Create()
	a := f.product(t, "A", "1.50", 10)
	b := f.product(t, "B", "2.00", 10)

	for _, id := range []string{a, b, a, "fantasma"} {
		require.NoError(t, f.uc.Add(sid, id))
	}
	s, _ := f.sessions.Load(sid)
	assert.Equal(t, []string{a, b, a, "fantasma"}, s.Cart)

	items, err := f.uc.Items(context.Background(), sid)
	require.NoError(t, err)
	require.Len(t, items.Lines, 2)
	assert.Equal(t, "A", items.Lines[0].Product.Name)
	assert.Equal(t, 2, items.Lines[0].Quantity)
	assert.Equal(t, "5.00", items.Total.StringFixed(2))
	assert.Equal(t, 1, items.Missing)
}

func TestAdd_ConcurrenteNoPierdeAltas(t *testing.T) {
	f := newFixture()
	sid := f.sessions.Create()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, f.uc.Add(sid, "p"))
		}()
	}
	wg.Wait()
	s, _ := f.sessions.Load(sid)
	assert.Len(t, s.Cart, 50)
}

func TestCheckout_DescuentaStockRegistraOrdenYLimpiaCarrito(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sid := f.sessions.Create()
	require.NoError(t, f.sessions.Update(sid, func(s *entity.Session) error { s.Username = "alice"; return nil }))
	w := f.product(t, "Widget", "9.99", 5)
	other := f.product(t, "Otro", "1.00", 1)
	require.NoError(t, f.uc.Add(sid, w))
	require.NoError(t, f.uc.Add(sid, other))
	require.NoError(t, f.uc.Add(sid, w))

	out, err := f.uc.Checkout(ctx, sid, w)
	require.NoError(t, err)
	assert.Contains(t, out.Message, "Widget")
	assert.Equal(t, "9.99", out.Total.StringFixed(2))
	assert.Equal(t, 4, f.stock(t, w))

	s, _ := f.sessions.Load(sid)
	assert.Equal(t, []string{other, w}, s.Cart, "se quita una sola unidad")

	order, err := f.store.Orders().GetByID(ctx, out.OrderID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "alice", order.Username)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 1, order.Items[0].Quantity)
}

func TestCheckout_QuitaUnaUnidadPorCompra(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sid := f.sessions.Create()
	a := f.product(t, "A", "1.00", 10)
	for i := 0; i < 3; i++ {
		require.NoError(t, f.uc.Add(sid, a))
	}

	_, err := f.uc.Checkout(ctx, sid, a)
	require.NoError(t, err)
	s, _ := f.sessions.Load(sid)
	assert.Equal(t, []string{a, a}, s.Cart)

	_, err = f.uc.Checkout(ctx, sid, a)
	require.NoError(t, err)
	_, err = f.uc.Checkout(ctx, sid, a)
	require.NoError(t, err)
	s, _ = f.sessions.Load(sid)
	assert.Empty(t, s.Cart)
	assert.Equal(t, 7, f.stock(t, a))
}

func TestCheckout_ProductoInexistente(t *testing.T) {
	f := newFixture()
	sid := f.sessions.Create()
	_, err := f.uc.Checkout(context.Background(), sid, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.uc.Checkout(context.Background(), sid, "basura")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckout_SinStockNoCambiaNada(t *testing.T) {
	f := newFixture()
	sid := f.sessions.Create()
	id := f.product(t, "Agotado", "3.00", 0)
	require.NoError(t, f.uc.Add(sid, id))

	_, err := f.uc.Checkout(context.Background(), sid, id)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 0, f.stock(t, id))
	s, _ := f.sessions.Load(sid)
	assert.Equal(t, []string{id}, s.Cart, "el carrito queda como estaba")
}

func TestCheckout_ConcurrenteNoVendeDeMas(t *testing.T) {
	f := newFixture()
	id := f.product(t, "Último", "10.00", 1)

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Checkout(context.Background(), f.sessions.Create(), id)
		}(i)
	}
	wg.Wait()

	sold := 0
	for _, err := range errs {
		if err == nil {
			sold++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, sold)
	assert.Equal(t, 0, f.stock(t, id))
}

func TestCheckoutCart_TodoONada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sid := f.sessions.Create()
	a := f.product(t, "A", "2.50", 3)
	b := f.product(t, "B", "1.00", 1)
	for _, id := range []string{a, b, b} {
		require.NoError(t, f.uc.Add(sid, id))
	}

	_, err := f.uc.CheckoutCart(ctx, sid)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, f.stock(t, a), "A no se descuenta si B falla")
	assert.Equal(t, 1, f.stock(t, b))

	require.NoError(t, f.sessions.Update(sid, func(s *entity.Session) error {
		s.Cart = []string{a, a, b, "fantasma"}
		return nil
	}))
	out, err := f.uc.CheckoutCart(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "6.00", out.Total.StringFixed(2))
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 1, f.stock(t, a))
	assert.Equal(t, 0, f.stock(t, b))

	s, _ := f.sessions.Load(sid)
	assert.Empty(t, s.Cart)
}

func TestCheckoutCart_Vacio(t *testing.T) {
	f := newFixture()
	_, err := f.uc.CheckoutCart(context.Background(), f.sessions.Create())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReceipt(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sid := f.sessions.Create()
	id := f.product(t, "Widget", "9.99", 5)
	out, err := f.uc.Checkout(ctx, sid, id)
	require.NoError(t, err)

	pdf, err := f.uc.Receipt(ctx, out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	assert.Equal(t, "Tienda Test", f.receipts.store)
	assert.Equal(t, out.OrderID, f.receipts.order.ID)

	_, err = f.uc.Receipt(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
