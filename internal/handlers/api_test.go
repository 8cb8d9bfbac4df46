package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/web-prodavnica/backend/internal/config"
	"github.com/web-prodavnica/backend/internal/i18n"
	"github.com/web-prodavnica/backend/internal/metrics"
	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/repository/memory"
	"github.com/web-prodavnica/backend/internal/router"
	"github.com/web-prodavnica/backend/internal/utils"
)

// response is the envelope; Data or List is filled depending on the payload.
type response struct {
	Success bool                   `json:"success"`
	Raw     json.RawMessage        `json:"data"`
	Data    map[string]interface{} `json:"-"`
	List    []interface{}          `json:"-"`
	Error   struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details interface{} `json:"details"`
	} `json:"error"`
}

// detail reads one key of an object-shaped error.details.
func (r response) detail(key string) interface{} {
	details, _ := r.Error.Details.(map[string]interface{})
	return details[key]
}

// invalidFields lists the fields named by an array-shaped error.details.
func (r response) invalidFields() []string {
	list, _ := r.Error.Details.([]interface{})
	fields := make([]string, 0, len(list))
	for _, item := range list {
		if entry, ok := item.(map[string]interface{}); ok {
			field, _ := entry["field"].(string)
			fields = append(fields, field)
		}
	}
	return fields
}

type APITestSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc
	cfg    *config.Config
	store  *memory.Store
	router *gin.Engine

	customer      *models.User
	customerToken string
	adminToken    string
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: "handler-secret", AccessTokenTTL: 1, RefreshTokenTTL: 24},
		Payment: config.PaymentConfig{
			Provider:    "monri-simulated",
			Currency:    "RSD",
			SessionTTL:  30 * time.Minute,
			OrderPrefix: "MONRI",
		},
		I18n:      config.I18nConfig{DefaultLocale: models.LocaleSerbian},
		Frontend:  config.FrontendConfig{BaseURL: "http://localhost:3000"},
		Orders:    config.OrdersConfig{DefaultStatus: models.OrderStatusPending, HookTimeout: time.Second},
		RateLimit: config.RateLimitConfig{RequestsPerMinute: 1000, CheckoutPerMinute: 1000},
	}
}

func (suite *APITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(i18n.Initialize(models.LocaleSerbian))
}

func (suite *APITestSuite) SetupTest() {
	suite.ctx, suite.cancel = context.WithCancel(context.Background())
	suite.cfg = testConfig()
	utils.SetJWTSecret(suite.cfg.JWT.SecretKey)

	suite.store = memory.New()
	suite.router = newRouter(suite.ctx, suite.store, suite.cfg)

	suite.customer = suite.createUser("kupac@example.com", models.UserRoleCustomer)
	suite.customerToken = suite.tokenFor(suite.customer)
	suite.adminToken = suite.tokenFor(suite.createUser("admin@example.com", models.UserRoleAdmin))
}

func (suite *APITestSuite) TearDownTest() {
	suite.cancel()
}

func newRouter(ctx context.Context, store *memory.Store, cfg *config.Config) *gin.Engine {
	m := metrics.New(prometheus.NewRegistry())
	backend := router.MemoryBackend(store)
	return router.Initialize(ctx, backend, router.NewServices(backend, cfg, m, nil), cfg, m)
}

func (suite *APITestSuite) createUser(email string, role models.UserRole) *models.User {
	u := &models.User{Email: email, LastName: "Jovanović", Role: role}
	suite.Require().NoError(u.SetPassword("lozinka123"))
	suite.Require().NoError(suite.store.Users().Create(suite.ctx, u))
	return u
}

func (suite *APITestSuite) tokenFor(u *models.User) string {
	token, err := utils.GenerateJWT(u.ID, u.Email, string(u.Role), 1)
	suite.Require().NoError(err)
	return token
}

func (suite *APITestSuite) createProduct(name, price string, quantity int) *models.Product {
	p := &models.Product{
		Price:      decimal.RequireFromString(price),
		Quantity:   quantity,
		Images:     []string{"https://cdn.example.com/" + name + ".jpg"},
		NameSr:     name,
		NameEn:     name + " EN",
		CategorySr: "Keramika",
		CategoryEn: "Ceramics",
	}
	suite.Require().NoError(suite.store.Products().Create(suite.ctx, p))
	return p
}

func (suite *APITestSuite) stock(id uuid.UUID) int {
	p, err := suite.store.Products().Get(suite.ctx, id)
	suite.Require().NoError(err)
	return p.Quantity
}

func (suite *APITestSuite) do(method, path, token string, body interface{}, headers ...string) (*httptest.ResponseRecorder, response) {
	reader := bytes.NewReader(nil)
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var resp response
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		switch {
		case len(resp.Raw) > 0 && resp.Raw[0] == '[':
			suite.Require().NoError(json.Unmarshal(resp.Raw, &resp.List))
		case len(resp.Raw) > 0:
			suite.Require().NoError(json.Unmarshal(resp.Raw, &resp.Data))
		}
	}
	return w, resp
}

func (suite *APITestSuite) TestHealthAndMetrics() {
	w, _ := suite.do(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "healthy")
	suite.NotEmpty(w.Header().Get("X-Request-ID"))

	w, _ = suite.do(http.MethodGet, "/metrics", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "prodavnica_http_requests_total")
}

func (suite *APITestSuite) TestRegisterLoginAndMe() {
	w, resp := suite.do(http.MethodPost, "/v1/auth/register", "", map[string]interface{}{
		"email":     "Nova@Example.com",
		"password":  "sigurna123",
		"last_name": "Nikolić",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.True(resp.Success)
	token, _ := resp.Data["token"].(string)
	suite.NotEmpty(token)

	w, resp = suite.do(http.MethodGet, "/v1/auth/me", token, nil)
	suite.Equal(http.StatusOK, w.Code)
	user := resp.Data["user"].(map[string]interface{})
	suite.Equal("nova@example.com", user["email"])
	suite.NotContains(w.Body.String(), "password")

	w, resp = suite.do(http.MethodPost, "/v1/auth/register", "", map[string]interface{}{
		"email":     "nova@example.com",
		"password":  "sigurna123",
		"last_name": "Nikolić",
	})
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("CONFLICT", resp.Error.Code)

	w, resp = suite.do(http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    "nova@example.com",
		"password": "pogresna123",
	})
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("UNAUTHORIZED", resp.Error.Code)

	w, resp = suite.do(http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    "nova@example.com",
		"password": "sigurna123",
	})
	suite.Equal(http.StatusOK, w.Code)
	refresh, _ := resp.Data["refresh_token"].(string)
	suite.NotEmpty(refresh)

	w, resp = suite.do(http.MethodPost, "/v1/auth/refresh", "", map[string]string{"refresh_token": refresh})
	suite.Equal(http.StatusOK, w.Code)
	suite.NotEmpty(resp.Data["token"])
}

func (suite *APITestSuite) TestRegisterValidation() {
	w, resp := suite.do(http.MethodPost, "/v1/auth/register", "", map[string]interface{}{
		"email":    "not-an-email",
		"password": "short",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", resp.Error.Code)
	suite.ElementsMatch([]string{"email", "password", "lastname"}, resp.invalidFields())
}

func (suite *APITestSuite) TestAccessControl() {
	w, resp := suite.do(http.MethodGet, "/v1/cart", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.False(resp.Success)

	w, _ = suite.do(http.MethodGet, "/v1/cart", "garbage", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w, resp = suite.do(http.MethodGet, "/v1/admin/users", suite.customerToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("FORBIDDEN", resp.Error.Code)

	w, _ = suite.do(http.MethodGet, "/v1/admin/users", suite.adminToken, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *APITestSuite) TestCatalogIsLocalized() {
	w, resp := suite.do(http.MethodPost, "/v1/admin/products", suite.adminToken, map[string]interface{}{
		"price":       "1499.90",
		"quantity":    3,
		"images":      []string{"https://cdn.example.com/solja.jpg"},
		"name_sr":     "Šolja",
		"name_en":     "Mug",
		"category_sr": "Keramika",
		"category_en": "Ceramics",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	product := resp.Data["product"].(map[string]interface{})
	id := product["id"].(string)

	w, resp = suite.do(http.MethodGet, "/v1/products", "", nil, "Accept-Language", "en-US,en;q=0.9")
	suite.Equal(http.StatusOK, w.Code)
	suite.Require().Len(resp.List, 1)
	suite.Equal("Mug", resp.List[0].(map[string]interface{})["name"])
	suite.Equal("1", w.Header().Get("X-Total-Count"))

	w, resp = suite.do(http.MethodGet, "/v1/products/"+id, "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Šolja", resp.Data["product"].(map[string]interface{})["name"])

	w, resp = suite.do(http.MethodPost, "/v1/admin/products", suite.adminToken, map[string]interface{}{
		"price":       "0",
		"quantity":    1,
		"images":      []string{"https://cdn.example.com/x.jpg"},
		"name_sr":     "X",
		"name_en":     "X",
		"category_sr": "X",
		"category_en": "X",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", resp.Error.Code)

	w, _ = suite.do(http.MethodGet, "/v1/products/not-a-uuid", "", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestPlaceOrderFromCart() {
	mug := suite.createProduct("solja", "1200.25", 5)
	plate := suite.createProduct("tanjir", "800", 2)

	w, _ := suite.do(http.MethodPost, "/v1/cart", suite.customerToken, map[string]interface{}{"product_id": mug.ID, "quantity": 2})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	w, _ = suite.do(http.MethodPost, "/v1/cart", suite.customerToken, map[string]interface{}{"product_id": plate.ID})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w, resp := suite.do(http.MethodGet, "/v1/cart", suite.customerToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("3200.5", resp.Data["total"])

	w, resp = suite.do(http.MethodPost, "/v1/orders", suite.customerToken, nil)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.Equal("3200.5", resp.Data["total"])
	order := resp.Data["order"].(map[string]interface{})
	suite.Equal(string(models.OrderStatusPending), order["status"])
	suite.Equal("kupac@example.com", order["email"])
	suite.Len(order["items"], 2)

	suite.Equal(3, suite.stock(mug.ID))
	suite.Equal(1, suite.stock(plate.ID))

	w, resp = suite.do(http.MethodGet, "/v1/cart", suite.customerToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.EqualValues(0, resp.Data["count"])

	w, resp = suite.do(http.MethodGet, "/v1/orders", suite.customerToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Len(resp.List, 1)
}

func (suite *APITestSuite) TestPlaceOrderRejections() {
	mug := suite.createProduct("solja", "1200", 1)

	w, resp := suite.do(http.MethodPost, "/v1/orders", suite.customerToken, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", resp.Error.Code)

	w, resp = suite.do(http.MethodPost, "/v1/orders", suite.customerToken, map[string]interface{}{
		"lines": []map[string]interface{}{{"product_id": mug.ID, "quantity": 4}},
	})
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("OUT_OF_STOCK", resp.Error.Code)
	suite.EqualValues(4, resp.detail("requested"))
	suite.EqualValues(1, resp.detail("available"))
	suite.Equal(1, suite.stock(mug.ID))

	missing := uuid.New()
	w, resp = suite.do(http.MethodPost, "/v1/orders", suite.customerToken, map[string]interface{}{
		"lines": []map[string]interface{}{
			{"product_id": mug.ID, "quantity": 1},
			{"product_id": missing, "quantity": 1},
		},
	})
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal(missing.String(), resp.detail("product_id"))
	suite.Equal(1, suite.stock(mug.ID))

	w, _ = suite.do(http.MethodGet, "/v1/orders", suite.customerToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("0", w.Header().Get("X-Total-Count"))
}

func (suite *APITestSuite) TestOrderVisibilityAndStatus() {
	mug := suite.createProduct("solja", "500", 10)
	w, resp := suite.do(http.MethodPost, "/v1/admin/orders", suite.adminToken, map[string]interface{}{
		"user_id": suite.customer.ID,
		"lines":   []map[string]interface{}{{"product_id": mug.ID, "quantity": 2, "note": "poklon"}},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	orderID := resp.Data["order"].(map[string]interface{})["id"].(string)

	w, _ = suite.do(http.MethodGet, "/v1/orders/"+orderID, suite.customerToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	other := suite.tokenFor(suite.createUser("drugi@example.com", models.UserRoleCustomer))
	w, _ = suite.do(http.MethodGet, "/v1/orders/"+orderID, other, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w, resp = suite.do(http.MethodPut, "/v1/admin/orders/"+orderID+"/status", suite.adminToken, map[string]string{"status": "delivered"})
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("INVALID_STATUS_TRANSITION", resp.Error.Code)

	w, resp = suite.do(http.MethodPut, "/v1/admin/orders/"+orderID+"/status", suite.adminToken, map[string]string{"status": "bogus"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", resp.Error.Code)

	for _, status := range []string{"processing", "shipped", "delivered"} {
		w, resp = suite.do(http.MethodPut, "/v1/admin/orders/"+orderID+"/status", suite.adminToken, map[string]string{"status": status})
		suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		suite.Equal(status, resp.Data["order"].(map[string]interface{})["status"])
	}

	w, resp = suite.do(http.MethodGet, "/v1/admin/orders?status=delivered", suite.adminToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Len(resp.List, 1)

	w, _ = suite.do(http.MethodDelete, "/v1/admin/orders/"+orderID, suite.adminToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(8, suite.stock(mug.ID))
}

func (suite *APITestSuite) TestCheckoutIsIdempotent() {
	mug := suite.createProduct("solja", "1000", 4)
	w, _ := suite.do(http.MethodPost, "/v1/cart", suite.customerToken, map[string]interface{}{"product_id": mug.ID, "quantity": 2})
	suite.Require().Equal(http.StatusOK, w.Code)

	w, resp := suite.do(http.MethodPost, "/v1/checkout", suite.customerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	session := resp.Data["session"].(map[string]interface{})
	token := session["token"].(string)
	suite.Equal("2000", session["amount"])
	suite.True(strings.HasPrefix(session["order_number"].(string), "MONRI-"))
	suite.Contains(session["redirect_url"], "http://localhost:3000/uspjesno_placanje?")

	w, resp = suite.do(http.MethodPost, "/v1/checkout/complete", suite.customerToken, map[string]string{"token": token, "amount": "1999"})
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("AMOUNT_MISMATCH", resp.Error.Code)

	body := map[string]string{"token": token, "amount": "2000.00"}
	w, resp = suite.do(http.MethodPost, "/v1/checkout/complete", suite.customerToken, body)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.Equal(false, resp.Data["replayed"])
	order := resp.Data["order"].(map[string]interface{})
	suite.Equal(string(models.OrderStatusPaid), order["status"])
	suite.Equal(session["order_number"], order["payment_reference"])

	w, resp = suite.do(http.MethodPost, "/v1/checkout/complete", suite.customerToken, body)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal(true, resp.Data["replayed"])
	suite.Equal(order["id"], resp.Data["order"].(map[string]interface{})["id"])
	suite.Equal(2, suite.stock(mug.ID))

	w, resp = suite.do(http.MethodPost, "/v1/checkout/complete", suite.customerToken, map[string]string{"token": "forged", "amount": "2000"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("INVALID_CHECKOUT", resp.Error.Code)
}

func (suite *APITestSuite) TestCheckoutWithEmptyCart() {
	w, resp := suite.do(http.MethodPost, "/v1/checkout", suite.customerToken, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("CART_EMPTY", resp.Error.Code)
}

func (suite *APITestSuite) TestCartAndFavorites() {
	mug := suite.createProduct("solja", "300", 5)

	w, resp := suite.do(http.MethodPost, "/v1/cart", suite.customerToken, map[string]interface{}{"product_id": mug.ID, "quantity": 5000})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", resp.Error.Code)

	w, resp = suite.do(http.MethodPost, "/v1/cart", suite.customerToken, map[string]interface{}{"product_id": mug.ID})
	suite.Require().Equal(http.StatusOK, w.Code)
	itemID := resp.Data["item"].(map[string]interface{})["id"].(string)

	other := suite.tokenFor(suite.createUser("drugi@example.com", models.UserRoleCustomer))
	w, _ = suite.do(http.MethodPut, "/v1/cart/"+itemID, other, map[string]int{"quantity": 3})
	suite.Equal(http.StatusNotFound, w.Code)

	w, _ = suite.do(http.MethodPut, "/v1/cart/"+itemID, suite.customerToken, map[string]int{"quantity": 3})
	suite.Equal(http.StatusOK, w.Code)
	w, _ = suite.do(http.MethodDelete, "/v1/cart/"+itemID, suite.customerToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	path := "/v1/favorites/" + mug.ID.String()
	w, _ = suite.do(http.MethodPost, path, suite.customerToken, nil)
	suite.Equal(http.StatusCreated, w.Code)
	w, _ = suite.do(http.MethodPost, path, suite.customerToken, nil)
	suite.Equal(http.StatusConflict, w.Code)
	w, resp = suite.do(http.MethodGet, path, suite.customerToken, nil)
	suite.Equal(true, resp.Data["favorite"])
	w, _ = suite.do(http.MethodDelete, path, suite.customerToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	w, _ = suite.do(http.MethodDelete, path, suite.customerToken, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *APITestSuite) TestAccountManagement() {
	w, _ := suite.do(http.MethodGet, "/v1/users/delivery", suite.customerToken, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	delivery := map[string]string{
		"address":     "Knez Mihailova 1",
		"city":        "Beograd",
		"postal_code": "11000",
		"country":     "Srbija",
		"phone":       "+381601234567",
	}
	w, _ = suite.do(http.MethodPut, "/v1/users/delivery", suite.customerToken, delivery)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	w, resp := suite.do(http.MethodGet, "/v1/users/delivery", suite.customerToken, nil)
	suite.Equal("Beograd", resp.Data["delivery"].(map[string]interface{})["city"])

	w, _ = suite.do(http.MethodDelete, "/v1/users/account", suite.customerToken, map[string]string{"password": "pogresna"})
	suite.Equal(http.StatusUnauthorized, w.Code)

	w, _ = suite.do(http.MethodDelete, "/v1/users/account", suite.customerToken, map[string]string{"password": "lozinka123"})
	suite.Equal(http.StatusOK, w.Code)
	_, err := suite.store.Users().GetByID(suite.ctx, suite.customer.ID)
	suite.Error(err)
}

func (suite *APITestSuite) TestAdminUserManagement() {
	w, resp := suite.do(http.MethodPost, "/v1/admin/users", suite.adminToken, map[string]interface{}{
		"email":     "radnik@example.com",
		"password":  "radnik1234",
		"last_name": "Ilić",
		"role":      "admin",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	created := resp.Data["user"].(map[string]interface{})
	suite.Equal("admin", created["role"])

	w, resp = suite.do(http.MethodGet, "/v1/admin/users?role=admin", suite.adminToken, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Len(resp.List, 2)

	w, _ = suite.do(http.MethodDelete, "/v1/admin/users/"+created["id"].(string), suite.adminToken, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func TestStrictRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, i18n.Initialize(models.LocaleSerbian))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig()
	cfg.RateLimit.CheckoutPerMinute = 1
	r := newRouter(ctx, memory.New(), cfg)

	login := func() int {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"email":"x@example.com","password":"nope1234"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, login())
	assert.Equal(t, http.StatusTooManyRequests, login())
}
