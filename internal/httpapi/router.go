package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/RanjithMathi/freshto-gateway/internal/auth"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Products *ProductHandler
	Cart     *CartHandler
	Address  *AddressHandler
	Checkout *CheckoutHandler
	Orders   *OrdersHandler
}

// NewRouter wires the full route tree. Catalog browsing and the OTP
// endpoints are public; everything that touches a customer's data sits
// behind the session middleware.
func NewRouter(h Handlers, authSvc *auth.Service, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/send-otp", h.Auth.SendOTP)
			r.Post("/verify-otp", h.Auth.VerifyOTP)
			r.Get("/me", h.Auth.Me)
			r.Post("/logout", h.Auth.Logout)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.ListProducts)
			r.Get("/available", h.Products.ListAvailable)
			r.Get("/category/{category}", h.Products.ListByCategory)
			r.Get("/sale/{sale_type}", h.Products.ListBySaleType)
			r.Get("/{product_id}", h.Products.GetProduct)
		})

		r.Group(func(r chi.Router) {
			r.Use(SessionAuth(authSvc))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.Cart.GetCart)
				r.Delete("/", h.Cart.ClearCart)
				r.Post("/items", h.Cart.AddItem)
				r.Put("/items/{product_id}", h.Cart.UpdateQuantity)
				r.Delete("/items/{product_id}", h.Cart.RemoveItem)
			})

			r.Route("/addresses", func(r chi.Router) {
				r.Get("/", h.Address.ListAddresses)
				r.Post("/", h.Address.CreateAddress)
				r.Get("/default", h.Address.GetDefault)
				r.Get("/type/{type}", h.Address.ListByType)
				r.Put("/{address_id}", h.Address.UpdateAddress)
				r.Delete("/{address_id}", h.Address.DeleteAddress)
				r.Patch("/{address_id}/default", h.Address.SetDefault)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", h.Checkout.GetSession)
				r.Delete("/", h.Checkout.Reset)
				r.Get("/slots", h.Checkout.ListSlots)
				r.Post("/address", h.Checkout.SelectAddress)
				r.Post("/slot", h.Checkout.SelectSlot)
				r.Post("/payment", h.Checkout.SelectPayment)
				r.Post("/summary", h.Checkout.ReviewSummary)
				r.Post("/place", h.Checkout.PlaceOrder)
				r.Post("/retry", h.Checkout.RetryOrder)
				r.Post("/back", h.Checkout.Back)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.Orders.ListOrders)
				r.Get("/status/{status}", h.Orders.ListByStatus)
				r.Get("/{order_id}", h.Orders.GetOrder)
			})

			// Stock writes need a session even though catalog reads are public.
			r.Patch("/products/{product_id}/stock", h.Products.UpdateStock)
		})
	})

	return r
}
