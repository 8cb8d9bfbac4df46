package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/orders"
	"github.com/web-prodavnica/backend/internal/repository"
)

type StoreTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *Store
	user    *models.User
	product *models.Product
}

func (suite *StoreTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = New()

	suite.user = &models.User{Email: "Kupac@Example.com", LastName: "Petrović"}
	require.NoError(suite.T(), suite.store.Users().Create(suite.ctx, suite.user))

	suite.product = &models.Product{
		Price:      decimal.RequireFromString("12.50"),
		Quantity:   4,
		Images:     []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		NameSr:     "Šolja",
		NameEn:     "Mug",
		CategorySr: "Kuhinja",
		CategoryEn: "Kitchen",
	}
	require.NoError(suite.T(), suite.store.Products().Create(suite.ctx, suite.product))
}

func (suite *StoreTestSuite) TestUserEmailIsNormalizedAndUnique() {
	assert.Equal(suite.T(), "kupac@example.com", suite.user.Email)

	found, err := suite.store.Users().GetByEmail(suite.ctx, " KUPAC@example.com ")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.user.ID, found.ID)

	err = suite.store.Users().Create(suite.ctx, &models.User{Email: "kupac@example.com"})
	assert.ErrorIs(suite.T(), err, repository.ErrDuplicate)
}

func (suite *StoreTestSuite) TestAddOrIncrementKeepsOneLine() {
	carts := suite.store.Carts()

	first, err := carts.AddOrIncrement(suite.ctx, suite.user.ID, suite.product.ID, 1)
	require.NoError(suite.T(), err)
	second, err := carts.AddOrIncrement(suite.ctx, suite.user.ID, suite.product.ID, 2)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), first.ID, second.ID)
	assert.Equal(suite.T(), 3, second.Quantity)
	assert.Equal(suite.T(), "Mug", second.Product.NameEn)

	items, err := carts.ListByUser(suite.ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), items, 1)

	lines, err := carts.CartLines(suite.ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []orders.LineRequest{{ProductID: suite.product.ID, Quantity: 3}}, lines)
}

func (suite *StoreTestSuite) TestWithinTxRollsBackOnError() {
	boom := errors.New("boom")
	err := suite.store.WithinTx(suite.ctx, func(tx orders.Tx) error {
		affected, err := tx.DecrementStock(suite.ctx, suite.product.ID, 3)
		require.NoError(suite.T(), err)
		assert.EqualValues(suite.T(), 1, affected)

		order := &models.Order{UserID: suite.user.ID, Total: decimal.NewFromInt(1), Status: models.OrderStatusPending}
		require.NoError(suite.T(), tx.InsertOrder(suite.ctx, order))
		return boom
	})
	assert.ErrorIs(suite.T(), err, boom)

	product, err := suite.store.Products().Get(suite.ctx, suite.product.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 4, product.Quantity)

	count, err := suite.store.Orders().CountByUser(suite.ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), count)
}

func (suite *StoreTestSuite) TestDecrementStockIsConditional() {
	err := suite.store.WithinTx(suite.ctx, func(tx orders.Tx) error {
		affected, err := tx.DecrementStock(suite.ctx, suite.product.ID, 5)
		require.NoError(suite.T(), err)
		assert.Zero(suite.T(), affected)

		affected, err = tx.DecrementStock(suite.ctx, suite.product.ID, 4)
		require.NoError(suite.T(), err)
		assert.EqualValues(suite.T(), 1, affected)
		return nil
	})
	require.NoError(suite.T(), err)

	product, err := suite.store.Products().Get(suite.ctx, suite.product.ID)
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), product.Quantity)
}

func (suite *StoreTestSuite) TestProductDeleteRestrictedByOrderLines() {
	err := suite.store.WithinTx(suite.ctx, func(tx orders.Tx) error {
		order := &models.Order{UserID: suite.user.ID, Total: suite.product.Price, Status: models.OrderStatusPending}
		if err := tx.InsertOrder(suite.ctx, order); err != nil {
			return err
		}
		return tx.InsertOrderLine(suite.ctx, &models.OrderItem{
			OrderID:   order.ID,
			ProductID: suite.product.ID,
			Quantity:  1,
			UnitPrice: suite.product.Price,
		})
	})
	require.NoError(suite.T(), err)

	err = suite.store.Products().Delete(suite.ctx, suite.product.ID)
	assert.ErrorIs(suite.T(), err, repository.ErrInUse)

	err = suite.store.Users().Delete(suite.ctx, suite.user.ID)
	assert.ErrorIs(suite.T(), err, repository.ErrInUse)
}

func (suite *StoreTestSuite) TestPaymentReferenceIsUnique() {
	ref := "MONRI-1-abc"
	insert := func() error {
		return suite.store.WithinTx(suite.ctx, func(tx orders.Tx) error {
			return tx.InsertOrder(suite.ctx, &models.Order{
				UserID:           suite.user.ID,
				Status:           models.OrderStatusPaid,
				PaymentReference: &ref,
			})
		})
	}
	require.NoError(suite.T(), insert())
	assert.ErrorIs(suite.T(), insert(), repository.ErrDuplicate)

	found, err := suite.store.Orders().FindByPaymentReference(suite.ctx, ref)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderStatusPaid, found.Status)
}

func (suite *StoreTestSuite) TestProductListFiltersAndPaginates() {
	for i, name := range []string{"Tanjir", "Čaša", "Viljuška"} {
		p := &models.Product{
			Price:      decimal.NewFromInt(int64(10 * (i + 1))),
			Quantity:   i,
			NameSr:     name,
			NameEn:     name,
			CategorySr: "Kuhinja",
			CategoryEn: "Kitchen",
		}
		require.NoError(suite.T(), suite.store.Products().Create(suite.ctx, p))
	}

	filter := repository.ProductFilter{InStock: true}
	filter.Category = "Kitchen"
	filter.Sort = "price"
	filter.Order = "asc"
	filter.Page = 1
	filter.Limit = 2

	list, total, err := suite.store.Products().List(suite.ctx, filter)
	require.NoError(suite.T(), err)
	assert.EqualValues(suite.T(), 3, total)
	require.Len(suite.T(), list, 2)
	assert.Equal(suite.T(), "Šolja", list[0].NameSr)
	assert.Equal(suite.T(), "Čaša", list[1].NameSr)

	filter.Search = "VILJ"
	list, total, err = suite.store.Products().List(suite.ctx, filter)
	require.NoError(suite.T(), err)
	assert.EqualValues(suite.T(), 1, total)
	assert.Equal(suite.T(), "Viljuška", list[0].NameSr)
}

func (suite *StoreTestSuite) TestReturnedProductsAreCopies() {
	product, err := suite.store.Products().Get(suite.ctx, suite.product.ID)
	require.NoError(suite.T(), err)
	product.Images[0] = "changed"
	product.Quantity = 99

	again, err := suite.store.Products().Get(suite.ctx, suite.product.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "https://cdn.example.com/a.jpg", again.PrimaryImage())
	assert.Equal(suite.T(), 4, again.Quantity)
}

func (suite *StoreTestSuite) TestUnknownProductInTx() {
	err := suite.store.WithinTx(suite.ctx, func(tx orders.Tx) error {
		_, err := tx.GetProduct(suite.ctx, uuid.New(), models.LocaleSerbian)
		return err
	})
	assert.ErrorIs(suite.T(), err, orders.ErrNotFound)
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
