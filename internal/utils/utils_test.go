package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
	Phone    string `validate:"omitempty,phone"`
	Status   string `validate:"omitempty,order_status"`
	Locale   string `validate:"omitempty,locale"`
}

func TestCustomValidators(t *testing.T) {
	valid := signupForm{Email: "a@b.rs", Password: "lozinka123", Phone: "+381 64 123 4567", Status: "paid", Locale: "sr"}
	require.NoError(t, ValidateStruct(valid))

	invalid := signupForm{Email: "nope", Password: "short1", Phone: "call me", Status: "lost", Locale: "de"}
	err := ValidateStruct(invalid)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	tags := map[string]string{}
	for _, e := range GetValidationErrors(err) {
		tags[e.Field] = e.Tag
	}
	assert.Equal(t, map[string]string{
		"email":    "email",
		"password": "password",
		"phone":    "phone",
		"status":   "order_status",
		"locale":   "locale",
	}, tags)
}

func TestAccessAndRefreshTokensAreNotInterchangeable(t *testing.T) {
	SetJWTSecret("test-secret")
	id := uuid.New()

	access, err := GenerateJWT(id, "kupac@example.com", "customer", 1)
	require.NoError(t, err)
	refresh, err := GenerateRefreshToken(id, 1)
	require.NoError(t, err)

	claims, err := ValidateJWT(access)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	assert.Equal(t, "customer", claims.Role)

	subject, err := ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, id.String(), subject)

	_, err = ValidateJWT(refresh)
	assert.Error(t, err)
	_, err = ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestCheckoutToken(t *testing.T) {
	SetJWTSecret("test-secret")
	id := uuid.New()
	amount := decimal.RequireFromString("2599.99")

	token, err := GenerateCheckoutToken(id, "MONRI-1-abc", amount, "RSD", time.Minute)
	require.NoError(t, err)

	claims, err := ValidateCheckoutToken(token)
	require.NoError(t, err)
	assert.Equal(t, "MONRI-1-abc", claims.OrderNumber)
	assert.True(t, amount.Equal(claims.Amount))

	expired, err := GenerateCheckoutToken(id, "MONRI-2-abc", amount, "RSD", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateCheckoutToken(expired)
	assert.Error(t, err)

	SetJWTSecret("rotated")
	_, err = ValidateCheckoutToken(token)
	assert.Error(t, err)
}

func paginationFor(query string) PaginationParams {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/products?"+query, nil)
	return GetPaginationParams(c)
}

func TestPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	params := paginationFor("page=0&limit=500&order=sideways&search=majica")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, "desc", params.Order)
	assert.Equal(t, "majica", params.Search)

	assert.True(t, params.Desc())
	assert.Equal(t, 0, params.Offset())

	result := CreatePaginationResult([]string{}, 41, params)
	assert.Equal(t, 3, result.TotalPages)

	params = paginationFor("page=3&limit=10&order=ASC&category=%20Nakit%20")
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 20, params.Offset())
	assert.False(t, params.Desc())
	assert.Equal(t, "Nakit", params.Category)
	assert.Empty(t, params.Search, "each request is read on its own")

	assert.Equal(t, 0, CreatePaginationResult(nil, 5, PaginationParams{}).TotalPages)
}

func TestGenerateRandomString(t *testing.T) {
	s, err := GenerateRandomString(12)
	require.NoError(t, err)
	assert.Len(t, s, 12)
	assert.Regexp(t, "^[a-z0-9]+$", s)

	code, err := GenerateReferenceCode(8)
	require.NoError(t, err)
	assert.Regexp(t, "^[A-HJ-NP-Z2-9]{8}$", code)
}
