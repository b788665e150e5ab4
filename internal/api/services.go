package api

import (
	"context"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/cyberfanta/shopping-exercise/internal/service"
	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

type AuthService interface {
	Register(ctx context.Context, reg domain.Registration) (service.Session, error)
	Login(ctx context.Context, email, password string) (service.Session, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	Me(ctx context.Context, userID uuid.UUID) (domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch domain.ProfilePatch) (domain.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error
}

type CatalogService interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, domain.PageInfo, error)
	GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error)
	CreateProduct(ctx context.Context, product domain.NewProduct) (domain.Product, error)
	CreateProducts(ctx context.Context, products []domain.NewProduct) (domain.BulkResult, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch domain.ProductPatch) (domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (domain.Category, error)
	CreateCategory(ctx context.Context, category domain.NewCategory) (domain.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, patch domain.CategoryPatch) (domain.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type CartService interface {
	Currency() currency.Unit
	Get(ctx context.Context, userID uuid.UUID) (domain.Cart, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (domain.CartItem, error)
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type OrderService interface {
	Checkout(ctx context.Context, userID uuid.UUID, req domain.CheckoutRequest) (domain.Order, error)
	Cancel(ctx context.Context, orderID uuid.UUID, principal domain.Principal) (domain.Order, error)
	Pay(ctx context.Context, orderID uuid.UUID, principal domain.Principal) (domain.Order, error)
	Get(ctx context.Context, orderID uuid.UUID, principal domain.Principal) (domain.Order, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
}

type AdminService interface {
	ListCarts(ctx context.Context, page domain.Page) ([]domain.CartSummary, domain.PageInfo, error)
	GetCart(ctx context.Context, userID uuid.UUID) (domain.CartSummary, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
	CartStats(ctx context.Context) (domain.CartStats, error)

	ListOrders(ctx context.Context, status *domain.OrderStatus, page domain.Page) ([]domain.OrderWithUser, domain.PageInfo, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID, admin domain.Principal) (domain.Order, error)
	AdvanceOrder(ctx context.Context, orderID uuid.UUID, next domain.OrderStatus) (domain.Order, error)
}

type UserService interface {
	List(ctx context.Context, filter domain.UserFilter) ([]domain.User, domain.PageInfo, error)
	Get(ctx context.Context, id uuid.UUID) (domain.User, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch, by domain.Principal) (domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Pinger reports database health.
type Pinger interface {
	Ping(ctx context.Context) error
}
