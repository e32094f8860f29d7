package usecase_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahuelmangano/speedtest/internal/application/dto"
	"github.com/nahuelmangano/speedtest/internal/application/usecase"
	"github.com/nahuelmangano/speedtest/internal/domain"
	"github.com/nahuelmangano/speedtest/internal/infrastructure/memory"
)

// fakeImages guarda en memoria y rechaza lo que no termina en .png.
type fakeImages struct {
	saved map[string]string
}

func (f *fakeImages) Save(_ context.Context, filename string, content io.Reader) (string, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		return "", domain.ErrUnsupportedFileType
	}
	b, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	ref := fmt.Sprintf("/uploads/%d-%s", len(f.saved), filename)
	f.saved[ref] = string(b)
	return ref, nil
}

func newCatalog() (*usecase.ProductUseCase, *usecase.CategoryUseCase, *fakeImages) {
	store := memory.NewStore()
	images := &fakeImages{saved: map[string]string{}}
	products := usecase.NewProductUseCase(store.Products(), store.Categories(), store, images)
	return products, usecase.NewCategoryUseCase(store.Categories()), images
}

func TestCreate_SinImagenApareceEnListado(t *testing.T) {
	products, _, _ := newCatalog()
	ctx := context.Background()

	out, err := products.Create(ctx, dto.CreateProductRequest{Name: "Widget", Price: "9.99", Stock: "5"}, nil)
	require.NoError(t, err)
	assert.Nil(t, out.ImageURL)
	assert.Nil(t, out.Color)
	assert.Nil(t, out.CategoryID)

	list, err := products.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Widget", list[0].Name)
	assert.Equal(t, "9.99", list[0].Price.StringFixed(2))
	assert.Equal(t, 5, list[0].Stock)
	assert.Nil(t, list[0].ImageURL)
}

func TestCreate_ConImagenYCategoria(t *testing.T) {
	products, categories, images := newCatalog()
	ctx := context.Background()
	cat, err := categories.Create(ctx, dto.CreateCategoryRequest{Name: "Redes"})
	require.NoError(t, err)

	out, err := products.Create(ctx,
		dto.CreateProductRequest{Name: "Router", Price: "89.90", Stock: "2", Color: "negro", CategoryID: cat.ID},
		&dto.ImageUpload{Filename: "router.png", Content: strings.NewReader("png-bytes")},
	)
	require.NoError(t, err)
	require.NotNil(t, out.ImageURL)
	assert.Equal(t, "png-bytes", images.saved[*out.ImageURL])
	assert.Equal(t, "Redes", out.CategoryName)
	require.NotNil(t, out.Color)
	assert.Equal(t, "negro", *out.Color)

	got, err := products.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "Redes", got.CategoryName)
}

func TestCreate_CamposNumericosInvalidos(t *testing.T) {
	products, _, _ := newCatalog()
	cases := []struct{ price, stock string }{
		{"abc", "1"},
		{"-1", "1"},
		{"1.234", "1"},
		{"1", "1.5"},
		{"1", "-3"},
		{"1", "muchos"},
	}
	for _, tc := range cases {
		_, err := products.Create(context.Background(),
			dto.CreateProductRequest{Name: "X", Price: tc.price, Stock: tc.stock}, nil)
		assert.ErrorIs(t, err, domain.ErrValidation, "precio=%q stock=%q", tc.price, tc.stock)
	}
	list, err := products.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list, "ningún alta inválida persiste")
}

func TestCreate_LimitesDeColumnas(t *testing.T) {
	products, categories, _ := newCatalog()
	ctx := context.Background()

	ok := []dto.CreateProductRequest{
		{Name: strings.Repeat("n", 100), Price: "99999999.99", Stock: "2147483647"},
		{Name: strings.Repeat("ñ", 100), Price: "0", Stock: "0"},
	}
	for _, in := range ok {
		_, err := products.Create(ctx, in, nil)
		assert.NoError(t, err, "precio=%q stock=%q", in.Price, in.Stock)
	}

	bad := []dto.CreateProductRequest{
		{Name: strings.Repeat("n", 101), Price: "1", Stock: "1"},
		{Name: "X", Price: "100000000", Stock: "1"},
		{Name: "X", Price: "1e12", Stock: "1"},
		{Name: "X", Price: "1", Stock: "2147483648"},
		{Name: "X", Price: "1", Stock: "9223372036854775807"},
	}
	for _, in := range bad {
		_, err := products.Create(ctx, in, nil)
		assert.ErrorIs(t, err, domain.ErrValidation, "nombre=%d precio=%q stock=%q", len(in.Name), in.Price, in.Stock)
	}

	_, err := categories.Create(ctx, dto.CreateCategoryRequest{Name: strings.Repeat("c", 80)})
	assert.NoError(t, err)
	_, err = categories.Create(ctx, dto.CreateCategoryRequest{Name: strings.Repeat("c", 81)})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_CategoriaInexistente(t *testing.T) {
	products, _, _ := newCatalog()
	_, err := products.Create(context.Background(),
		dto.CreateProductRequest{Name: "X", Price: "1", Stock: "1", CategoryID: uuid.NewString()}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_ImagenNoPermitidaNoCreaProducto(t *testing.T) {
	products, _, _ := newCatalog()
	_, err := products.Create(context.Background(),
		dto.CreateProductRequest{Name: "X", Price: "1", Stock: "1"},
		&dto.ImageUpload{Filename: "virus.exe", Content: strings.NewReader("MZ")},
	)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	list, _ := products.List(context.Background())
	assert.Empty(t, list)
}

func TestGetByID_NoEncontrado(t *testing.T) {
	products, _, _ := newCatalog()
	_, err := products.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = products.GetByID(context.Background(), "no-es-un-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategory_ListOrdenadoPorNombre(t *testing.T) {
	_, categories, _ := newCatalog()
	ctx := context.Background()
	for _, n := range []string{"Redes", "Audio", "Periféricos"} {
		_, err := categories.Create(ctx, dto.CreateCategoryRequest{Name: n})
		require.NoError(t, err)
	}
	_, err := categories.Create(ctx, dto.CreateCategoryRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Audio", list[0].Name)
	assert.Equal(t, "Redes", list[2].Name)
}
