package services_test

import (
	"context"
	"net/smtp"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/web-prodavnica/backend/internal/config"
	"github.com/web-prodavnica/backend/internal/i18n"
	"github.com/web-prodavnica/backend/internal/metrics"
	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/orders"
	"github.com/web-prodavnica/backend/internal/repository/memory"
	"github.com/web-prodavnica/backend/internal/services"
	"github.com/web-prodavnica/backend/internal/utils"
)

type sentMail struct {
	to   []string
	body string
}

type mailbox struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *mailbox) messages() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

type fixture struct {
	t       *testing.T
	ctx     context.Context
	cfg     *config.Config
	store   *memory.Store
	metrics *metrics.Metrics
	mailbox *mailbox
	placer  *orders.Placer

	products     *services.ProductService
	carts        *services.CartService
	favorites    *services.FavoriteService
	orders       *services.OrderService
	payments     *services.PaymentService
	auth         *services.AuthService
	users        *services.UserService
	admin        *services.AdminService
	notification *services.NotificationService
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		Payment: config.PaymentConfig{
			Provider:    "monri-simulated",
			Currency:    "RSD",
			SessionTTL:  30 * time.Minute,
			OrderPrefix: "MONRI",
		},
		Email: config.EmailConfig{
			SMTPHost:     "smtp.example.com",
			SMTPPort:     "587",
			SMTPUsername: "shop",
			FromEmail:    "noreply@example.com",
			FromName:     "Web Prodavnica",
		},
		I18n:     config.I18nConfig{DefaultLocale: models.LocaleSerbian},
		Frontend: config.FrontendConfig{BaseURL: "https://shop.example.com/"},
		Orders: config.OrdersConfig{
			DefaultStatus: models.OrderStatusPending,
			HookTimeout:   time.Second,
		},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	require.NoError(t, i18n.Initialize(models.LocaleSerbian))

	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	f := &fixture{
		t:       t,
		ctx:     context.Background(),
		cfg:     cfg,
		store:   memory.New(),
		metrics: metrics.New(prometheus.NewRegistry()),
		mailbox: &mailbox{},
	}

	f.notification = services.NewNotificationService(cfg).WithSendMail(func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		f.mailbox.mu.Lock()
		defer f.mailbox.mu.Unlock()
		f.mailbox.sent = append(f.mailbox.sent, sentMail{to: to, body: string(msg)})
		return nil
	})

	carts := f.store.Carts()
	f.placer = orders.NewPlacer(f.store,
		orders.WithCarts(carts),
		orders.WithHooks(orders.ClearCartHook(carts), orders.NotifyHook(f.notification)),
		orders.WithDefaultStatus(cfg.Orders.DefaultStatus),
		orders.WithHookTimeout(cfg.Orders.HookTimeout),
	)

	f.products = services.NewProductService(f.store.Products())
	f.carts = services.NewCartService(carts, f.store.Products())
	f.favorites = services.NewFavoriteService(f.store.Favorites(), f.store.Products())
	f.orders = services.NewOrderService(f.placer, f.store.Orders(), f.store.Users(), f.metrics)
	f.payments = services.NewPaymentService(cfg, f.carts, f.orders)
	f.auth = services.NewAuthService(f.store.Users(), cfg, nil)
	f.users = services.NewUserService(f.store.Users(), f.store.Orders())
	f.admin = services.NewAdminService(f.store.Users(), f.store.Orders())
	return f
}

func (f *fixture) user(email string) *models.User {
	f.t.Helper()
	u := &models.User{Email: email, LastName: "Petrović", Role: models.UserRoleCustomer}
	require.NoError(f.t, u.SetPassword("lozinka123"))
	require.NoError(f.t, f.store.Users().Create(f.ctx, u))
	return u
}

func (f *fixture) product(name string, price string, quantity int) *models.Product {
	f.t.Helper()
	p := &models.Product{
		Price:      decimal.RequireFromString(price),
		Quantity:   quantity,
		Images:     []string{"https://cdn.example.com/" + name + ".jpg"},
		NameSr:     name,
		NameEn:     name + " (en)",
		CategorySr: "Nakit",
		CategoryEn: "Jewelry",
	}
	require.NoError(f.t, f.store.Products().Create(f.ctx, p))
	return p
}

func (f *fixture) addToCart(userID, productID uuid.UUID, quantity int) {
	f.t.Helper()
	_, err := f.carts.AddItem(f.ctx, userID, &services.AddToCartRequest{ProductID: productID, Quantity: quantity})
	require.NoError(f.t, err)
}

func (f *fixture) stock(id uuid.UUID) int {
	f.t.Helper()
	p, err := f.store.Products().Get(f.ctx, id)
	require.NoError(f.t, err)
	return p.Quantity
}
