package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusswap/campusswap-backend/api/controllers"
	"github.com/campusswap/campusswap-backend/api/middleware"
	"github.com/campusswap/campusswap-backend/internal/admin"
	"github.com/campusswap/campusswap-backend/internal/auth"
	"github.com/campusswap/campusswap-backend/internal/chat"
	"github.com/campusswap/campusswap-backend/internal/items"
	"github.com/campusswap/campusswap-backend/internal/swaps"
	"github.com/campusswap/campusswap-backend/internal/wishlist"
	"github.com/campusswap/campusswap-backend/pkg/auth/session"
	"github.com/campusswap/campusswap-backend/pkg/config"
	"github.com/campusswap/campusswap-backend/pkg/db"
	"github.com/campusswap/campusswap-backend/pkg/logger"
	"github.com/campusswap/campusswap-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	sessionManager session.AccessSessionChecker,
	authService auth.Service,
	registerService auth.RegisterService,
	itemsService items.Service,
	swapsService swaps.Service,
	chatService chat.Service,
	wishlistService wishlist.Service,
	adminService admin.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(dbClient, redisClient, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.Register(registerService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.Login(authService, logg))
		r.Post("/refresh", controllers.Refresh(authService, logg))
		r.With(middleware.Auth(cfg.JWT, sessionManager, logg)).Post("/logout", controllers.Logout(authService, logg))
	})

	// Catalog browsing is public. Writes live in the authed group below.
	r.Get("/api/v1/items", controllers.ItemsList(itemsService, logg))
	r.Get("/api/v1/items/{itemId}", controllers.ItemsGet(itemsService, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/me", controllers.Me(authService, logg))

		r.Route("/items", func(r chi.Router) {
			r.Post("/", controllers.ItemsCreate(itemsService, logg))
			r.Put("/{itemId}", controllers.ItemsUpdate(itemsService, logg))
			r.Delete("/{itemId}", controllers.ItemsDelete(itemsService, logg))
		})

		r.Route("/swaps", func(r chi.Router) {
			r.Post("/", controllers.SwapsCreate(swapsService, logg))
			r.Get("/mine", controllers.SwapsListMine(swapsService, logg))
			r.Get("/incoming", controllers.SwapsListIncoming(swapsService, logg))
			r.Put("/{swapId}/status", controllers.SwapsSetStatus(swapsService, logg))
			r.Get("/{swapId}/messages", controllers.ChatListMessages(chatService, logg))
			r.Post("/{swapId}/messages", controllers.ChatPostMessage(chatService, logg))
		})

		r.Route("/chat", func(r chi.Router) {
			r.Get("/conversations", controllers.ChatListConversations(chatService, logg))
			r.Get("/partner/{partnerId}", controllers.ChatListPartnerMessages(chatService, logg))
			r.Post("/partner/{partnerId}", controllers.ChatPostPartnerMessage(chatService, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistList(wishlistService, logg))
			r.Post("/", controllers.WishlistAddItem(wishlistService, logg))
			r.Delete("/{itemId}", controllers.WishlistRemoveItem(wishlistService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
		r.Use(middleware.RequireRole("admin", logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/users", controllers.AdminListUsers(adminService, logg))
		r.Put("/users/{userId}/role", controllers.AdminSetUserRole(adminService, logg))
		r.Get("/items", controllers.AdminListItems(adminService, logg))
		r.Put("/items/{itemId}/status", controllers.AdminSetItemStatus(adminService, logg))
		r.Get("/swaps", controllers.AdminListSwaps(adminService, logg))
	})

	return r
}
