// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess       = "success"
	KeyError         = "error"
	KeyInternalError = "error.internal"
	KeyRetryable     = "error.retryable"
	KeyRateLimited   = "error.rate_limited"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Users
	KeyUserProfileUpdated    = "user.profile_updated"
	KeyUserNotFound          = "user.not_found"
	KeyUserDeleted           = "user.deleted"
	KeyUserHasOrders         = "user.has_orders"
	KeyUserWrongPassword     = "user.wrong_password"
	KeyDeliveryNotFound      = "delivery.not_found"
	KeyDeliveryUpdated       = "delivery.updated"
	KeyDeliveryDeleted       = "delivery.deleted"
	KeyAdminCannotDeleteSelf = "admin.cannot_delete_self"

	// Products
	KeyProductCreated    = "product.created"
	KeyProductUpdated    = "product.updated"
	KeyProductDeleted    = "product.deleted"
	KeyProductNotFound   = "product.not_found"
	KeyProductInUse      = "product.in_use"
	KeyProductBadPrice   = "product.invalid_price"
	KeyProductOutOfStock = "product.out_of_stock"
	KeyStockUpdated      = "product.stock_updated"

	// Cart
	KeyCartItemAdded    = "cart.item_added"
	KeyCartItemUpdated  = "cart.item_updated"
	KeyCartItemRemoved  = "cart.item_removed"
	KeyCartItemNotFound = "cart.not_found"
	KeyCartCleared      = "cart.cleared"
	KeyCartEmpty        = "cart.empty"

	// Favorites
	KeyFavoriteAdded    = "favorite.added"
	KeyFavoriteRemoved  = "favorite.removed"
	KeyFavoriteExists   = "favorite.exists"
	KeyFavoriteNotFound = "favorite.not_found"

	// Orders
	KeyOrderPlaced         = "order.placed"
	KeyOrderNotFound       = "order.not_found"
	KeyOrderStatusUpdated  = "order.status_updated"
	KeyOrderInvalidStatus  = "order.invalid_status_transition"
	KeyOrderUnknownStatus  = "order.unknown_status"
	KeyOrderDeleted        = "order.deleted"
	KeyOrderEmailSubject   = "order.email_subject"
	KeyOrderEmailGreeting  = "order.email_greeting"
	KeyOrderEmailIntro     = "order.email_intro"
	KeyOrderEmailTotal     = "order.email_total"
	KeyOrderEmailProduct   = "order.email_product"
	KeyOrderEmailQuantity  = "order.email_quantity"
	KeyOrderEmailPrice     = "order.email_price"
	KeyOrderEmailReference = "order.email_reference"
	KeyOrderEmailSignature = "order.email_signature"

	// Payments
	KeyPaymentSessionCreated = "payment.session_created"
	KeyPaymentInvalidSession = "payment.invalid_session"
	KeyPaymentAmountMismatch = "payment.amount_mismatch"
	KeyPaymentCompleted      = "payment.completed"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationEmail    = "validation.invalid_email"
	KeyValidationPassword = "validation.invalid_password"
	KeyValidationID       = "validation.invalid_id"
)
