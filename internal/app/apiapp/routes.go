package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ivankudzin/svcmarket/internal/config"
	"github.com/ivankudzin/svcmarket/internal/domain/enums"
	adminauthsvc "github.com/ivankudzin/svcmarket/internal/services/adminauth"
	assistantsvc "github.com/ivankudzin/svcmarket/internal/services/assistant"
	catalogsvc "github.com/ivankudzin/svcmarket/internal/services/catalog"
	listingsvc "github.com/ivankudzin/svcmarket/internal/services/listings"
	modsvc "github.com/ivankudzin/svcmarket/internal/services/moderation"
	planssvc "github.com/ivankudzin/svcmarket/internal/services/plans"
	ratesvc "github.com/ivankudzin/svcmarket/internal/services/rate"
	settingsvc "github.com/ivankudzin/svcmarket/internal/services/settings"
	userssvc "github.com/ivankudzin/svcmarket/internal/services/users"
	"github.com/ivankudzin/svcmarket/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService       *adminauthsvc.Service
	UserService       *userssvc.Service
	ModerationService *modsvc.Service
	ListingService    *listingsvc.Service
	CatalogService    *catalogsvc.Service
	PlanService       *planssvc.Service
	SettingsService   *settingsvc.Service
	AssistantService  *assistantsvc.Service
	RateLimiter       *ratesvc.Limiter
	Logger            *zap.Logger
	Config            config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.RateLimiter)
	usersHandler := handlers.NewUsersHandler(deps.UserService)
	moderationHandler := handlers.NewModerationHandler(deps.ModerationService)
	listingsHandler := handlers.NewListingsHandler(deps.ListingService, deps.UserService)
	catalogHandler := handlers.NewCatalogHandler(deps.CatalogService)
	plansHandler := handlers.NewPlansHandler(deps.PlanService)
	settingsHandler := handlers.NewSettingsHandler(deps.SettingsService)
	assistantHandler := handlers.NewAssistantHandler(deps.AssistantService, deps.RateLimiter)

	authMW := AuthMiddleware(deps.AuthService, deps.Logger)
	staffRoleMW := RequireRole(string(enums.RoleOwner), string(enums.RoleSupport), string(enums.RoleModerator))
	supportRoleMW := RequireRole(string(enums.RoleOwner), string(enums.RoleSupport))
	ownerRoleMW := RequireRole(string(enums.RoleOwner))

	r.Get("/healthz", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		// Public marketplace surface.
		r.Get("/services", listingsHandler.ListPublic)
		r.Get("/services/{id}", listingsHandler.GetPublic)
		r.Post("/services/draft/preview", listingsHandler.Preview)
		r.Post("/users/{userID}/services/publish", listingsHandler.Publish)
		r.Get("/categories", catalogHandler.ListCategories)
		r.With(authMW, supportRoleMW).Post("/categories", catalogHandler.CreateCategory)
		r.Post("/category-suggestions", catalogHandler.SubmitSuggestion)
		r.Get("/plans", plansHandler.ListPublic)
		r.With(authMW).Get("/settings", settingsHandler.Get)
		r.With(authMW, ownerRoleMW).Patch("/settings", settingsHandler.Save)

		r.With(authMW, staffRoleMW).Post("/ai/admin-assist", assistantHandler.Ask)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.With(authMW).Get("/session", authHandler.Session)
			r.With(authMW).Post("/2fa/setup", authHandler.SetupTOTP)
			r.With(authMW).Post("/2fa/confirm", authHandler.ConfirmTOTP)

			r.Route("/users", func(r chi.Router) {
				r.Use(authMW, staffRoleMW)
				r.Get("/", usersHandler.List)
				r.Get("/{id}", usersHandler.Get)
				r.With(supportRoleMW).Patch("/{id}", usersHandler.Patch)
				r.Post("/{id}/moderate", moderationHandler.Moderate)
				r.Get("/{id}/history", moderationHandler.History)
			})

			r.Route("/banned-identifiers", func(r chi.Router) {
				r.Use(authMW, staffRoleMW)
				r.Get("/", moderationHandler.ListBanned)
				r.Post("/", moderationHandler.AddBanned)
				r.Delete("/{id}", moderationHandler.RemoveBanned)
			})

			r.Route("/services", func(r chi.Router) {
				r.Use(authMW, staffRoleMW)
				r.Get("/", listingsHandler.List)
				r.Get("/{id}", listingsHandler.Get)
				r.Patch("/{id}", listingsHandler.Patch)
				r.Delete("/{id}", listingsHandler.Delete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Use(authMW, supportRoleMW)
				r.Post("/", catalogHandler.CreateCategory)
				r.Patch("/{id}", catalogHandler.PatchCategory)
				r.Delete("/{id}", catalogHandler.DeleteCategory)
			})

			r.Route("/category-suggestions", func(r chi.Router) {
				r.Use(authMW, staffRoleMW)
				r.Get("/", catalogHandler.ListSuggestions)
				r.Patch("/{id}", catalogHandler.DecideSuggestion)
			})

			r.Route("/plans", func(r chi.Router) {
				r.Use(authMW, supportRoleMW)
				r.Get("/", plansHandler.List)
				r.Get("/{id}", plansHandler.Get)
				r.Post("/", plansHandler.Create)
				r.Patch("/{id}", plansHandler.Patch)
				r.Delete("/{id}", plansHandler.Delete)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Use(authMW, ownerRoleMW)
				r.Get("/", settingsHandler.Get)
				r.Patch("/", settingsHandler.Save)
			})

			r.Route("/api-keys", func(r chi.Router) {
				r.Use(authMW, ownerRoleMW)
				r.Get("/", settingsHandler.ListAPIKeys)
				r.Post("/", settingsHandler.SaveAPIKey)
			})

			r.With(authMW, ownerRoleMW).Get("/env-status", settingsHandler.EnvStatus)
		})
	})
}
