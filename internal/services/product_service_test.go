package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/services"
	"github.com/web-prodavnica/backend/internal/utils"
)

func validProductRequest() *services.CreateProductRequest {
	return &services.CreateProductRequest{
		Price:      decimal.RequireFromString("2490.00"),
		Quantity:   7,
		Images:     []string{" https://cdn.example.com/narukvica.jpg "},
		NameSr:     "Narukvica",
		NameEn:     "Bracelet",
		CategorySr: "Nakit",
		CategoryEn: "Jewelry",
	}
}

func TestCreateProduct(t *testing.T) {
	f := newFixture(t)

	product, err := f.products.CreateProduct(f.ctx, validProductRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/narukvica.jpg", product.PrimaryImage())

	stored, err := f.products.GetProduct(f.ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bracelet", stored.Localize(models.LocaleEnglish).Name)

	tests := []struct {
		name   string
		mutate func(*services.CreateProductRequest)
		want   error
	}{
		{"zero price", func(r *services.CreateProductRequest) { r.Price = decimal.Zero }, services.ErrInvalidPrice},
		{"negative price", func(r *services.CreateProductRequest) { r.Price = decimal.NewFromInt(-1) }, services.ErrInvalidPrice},
		{"no images", func(r *services.CreateProductRequest) { r.Images = nil }, nil},
		{"bad image url", func(r *services.CreateProductRequest) { r.Images = []string{"slika"} }, nil},
		{"blank image", func(r *services.CreateProductRequest) { r.Images = []string{"https://cdn.example.com/a.jpg", "  "} }, nil},
		{"missing english name", func(r *services.CreateProductRequest) { r.NameEn = "" }, nil},
		{"negative stock", func(r *services.CreateProductRequest) { r.Quantity = -1 }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validProductRequest()
			tt.mutate(req)
			_, err := f.products.CreateProduct(f.ctx, req)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			} else {
				assert.True(t, utils.IsValidationError(err), err.Error())
			}
		})
	}
}

func TestUpdateProductImages(t *testing.T) {
	f := newFixture(t)
	ring := f.product("Prsten", "10.00", 1)

	product, err := f.products.UpdateProduct(f.ctx, ring.ID, &services.UpdateProductRequest{
		Images: []string{" https://cdn.example.com/prsten-2.jpg", "https://cdn.example.com/prsten-3.jpg\t"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/prsten-2.jpg", "https://cdn.example.com/prsten-3.jpg"}, []string(product.Images))

	name := "Zlatni prsten"
	product, err = f.products.UpdateProduct(f.ctx, ring.ID, &services.UpdateProductRequest{NameSr: &name})
	require.NoError(t, err)
	assert.Len(t, product.Images, 2, "omitted images are left alone")

	for _, images := range [][]string{{}, {" "}, {"slika"}} {
		_, err = f.products.UpdateProduct(f.ctx, ring.ID, &services.UpdateProductRequest{Images: images})
		assert.True(t, utils.IsValidationError(err), "%q", images)
	}

	stored, err := f.products.GetProduct(f.ctx, ring.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/prsten-2.jpg", stored.PrimaryImage())
}

func TestListProductsSortsByLocalizedName(t *testing.T) {
	f := newFixture(t)
	for _, names := range [][2]string{{"Ogrlica", "Necklace"}, {"Broš", "Brooch"}, {"Prsten", "Ring"}} {
		req := validProductRequest()
		req.NameSr, req.NameEn = names[0], names[1]
		_, err := f.products.CreateProduct(f.ctx, req)
		require.NoError(t, err)
	}

	params := services.ProductSearchParams{PaginationParams: utils.PaginationParams{Page: 1, Limit: 10, Sort: "name", Order: "asc"}}

	list, total, err := f.products.ListProducts(f.ctx, params, models.LocaleEnglish)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, []string{"Brooch", "Necklace", "Ring"}, []string{list[0].NameEn, list[1].NameEn, list[2].NameEn})

	list, _, err = f.products.ListProducts(f.ctx, params, models.LocaleSerbian)
	require.NoError(t, err)
	assert.Equal(t, []string{"Broš", "Ogrlica", "Prsten"}, []string{list[0].NameSr, list[1].NameSr, list[2].NameSr})
}

func TestSetStockAndDelete(t *testing.T) {
	f := newFixture(t)
	user := f.user("kupac@example.com")
	ring := f.product("Prsten", "10.00", 1)
	spare := f.product("Broš", "10.00", 1)

	zero := 0
	product, err := f.products.SetStock(f.ctx, ring.ID, &services.UpdateStockRequest{Quantity: &zero})
	require.NoError(t, err)
	assert.Equal(t, 0, product.Quantity)

	negative := -3
	_, err = f.products.SetStock(f.ctx, ring.ID, &services.UpdateStockRequest{Quantity: &negative})
	assert.True(t, utils.IsValidationError(err))

	five := 5
	_, err = f.products.SetStock(f.ctx, ring.ID, &services.UpdateStockRequest{Quantity: &five})
	require.NoError(t, err)

	_, err = f.orders.PlaceOrder(f.ctx, user.ID, &services.PlaceOrderRequest{
		Lines: []services.OrderLineRequest{{ProductID: ring.ID, Quantity: 1}},
	}, models.LocaleSerbian)
	require.NoError(t, err)

	assert.ErrorIs(t, f.products.DeleteProduct(f.ctx, ring.ID), services.ErrProductInUse)
	assert.NoError(t, f.products.DeleteProduct(f.ctx, spare.ID))
	_, err = f.products.GetProduct(f.ctx, spare.ID)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}
