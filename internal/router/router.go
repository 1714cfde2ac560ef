package router

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"zuna/internal/handlers/api/v1/activity"
	"zuna/internal/handlers/api/v1/analyses"
	"zuna/internal/handlers/api/v1/badges"
	"zuna/internal/handlers/api/v1/content"
	"zuna/internal/handlers/api/v1/notifications"
	"zuna/internal/middleware"
	"zuna/internal/monitoring"
	"zuna/internal/response"
	"zuna/internal/services"
)

// SetupRouter builds the full HTTP surface: health probes, swagger,
// internal stats, and the versioned API with its middleware chain.
func SetupRouter(
	serviceCollection *services.ServiceCollection,
	dashboard *monitoring.Dashboard,
	responseBuilder *response.Builder,
	logger *zap.Logger,
) http.Handler {
	r := mux.NewRouter()

	// ===============================
	// GLOBAL MIDDLEWARE
	// ===============================

	// Order matters: the request id and response builder must be in the
	// context before anything that logs or writes an envelope.
	r.Use(middleware.RequestID(logger))
	r.Use(response.Middleware(responseBuilder))
	r.Use(middleware.RequestLogging())
	r.Use(middleware.Recovery())
	r.Use(middleware.UserContext())

	r.NotFoundHandler = notFoundHandler(responseBuilder)
	r.MethodNotAllowedHandler = methodNotAllowedHandler(responseBuilder)

	// ===============================
	// HEALTH ENDPOINTS
	// ===============================

	r.HandleFunc("/health", healthHandler(serviceCollection, responseBuilder)).Methods(http.MethodGet)
	r.HandleFunc("/healthz", livenessHandler(responseBuilder)).Methods(http.MethodGet)
	r.HandleFunc("/readyz", readinessHandler(serviceCollection, responseBuilder)).Methods(http.MethodGet)

	// The gateway never routes /internal; it is reachable only inside
	// the cluster.
	r.HandleFunc("/internal/stats", statsHandler(dashboard, responseBuilder)).Methods(http.MethodGet)

	// ===============================
	// SWAGGER DOCUMENTATION
	// ===============================

	// The json is generated by swag init; the doc.json route must be
	// registered before the UI prefix so it wins the match.
	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.json")
	}).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// ===============================
	// CONTROLLERS
	// ===============================

	badgeController := badges.NewBadgeController(serviceCollection, logger, responseBuilder)
	activityController := activity.NewActivityController(serviceCollection, logger, responseBuilder)
	analysisController := analyses.NewAnalysisController(serviceCollection, logger, responseBuilder)
	contentController := content.NewContentController(serviceCollection, logger, responseBuilder)
	notificationController := notifications.NewNotificationController(serviceCollection, logger, responseBuilder)

	// ===============================
	// PUBLIC API ROUTES
	// ===============================

	api := r.PathPrefix("/api/v1").Subrouter()

	// Health probes and swagger stay reachable during maintenance; only
	// the API surface goes dark.
	if serviceCollection.Config != nil && serviceCollection.Config.Features.MaintenanceMode {
		api.Use(maintenanceMiddleware(responseBuilder))
		logger.Warn("Maintenance mode enabled, API routes will return 503")
	}

	api.HandleFunc("/badges", badgeController.ListCatalog).Methods(http.MethodGet)
	api.HandleFunc("/content/daily-tip", contentController.GetDailyTip).Methods(http.MethodGet)
	api.HandleFunc("/content/discover", contentController.GetDiscoverFeed).Methods(http.MethodGet)
	api.HandleFunc("/content/expert-tips", contentController.GetExpertTips).Methods(http.MethodGet)

	// ===============================
	// AUTHENTICATED API ROUTES
	// ===============================

	// Everything under /me requires the gateway-verified user identity.
	me := api.PathPrefix("/me").Subrouter()
	me.Use(middleware.RequireUser())

	me.HandleFunc("/badges", badgeController.ListMyBadges).Methods(http.MethodGet)
	me.HandleFunc("/badges/progress", badgeController.GetMyProgress).Methods(http.MethodGet)
	me.HandleFunc("/badges/check", badgeController.CheckMyBadges).Methods(http.MethodPost)

	me.HandleFunc("/activity", activityController.RecordActivity).Methods(http.MethodPost)
	me.HandleFunc("/activity/coloring", activityController.RecordColoring).Methods(http.MethodPost)

	me.HandleFunc("/analyses", analysisController.IngestAnalysis).Methods(http.MethodPost)
	me.HandleFunc("/analyses", analysisController.ListMyAnalyses).Methods(http.MethodGet)

	me.HandleFunc("/notifications", notificationController.ListMyNotifications).Methods(http.MethodGet)
	me.HandleFunc("/notifications/{id}/read", notificationController.MarkRead).Methods(http.MethodPost)

	logger.Info("Router setup completed",
		zap.String("swagger_ui", "/swagger/index.html"),
		zap.String("api_prefix", "/api/v1"),
	)

	return r
}

// ===============================
// HEALTH HANDLERS
// ===============================

// healthHandler reports aggregate service health with per-dependency detail.
func healthHandler(serviceCollection *services.ServiceCollection, builder *response.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		health, err := serviceCollection.HealthCheck(ctx)
		if err != nil {
			builder.WriteError(w, r, err)
			return
		}

		builder.WriteHealth(w, r, health)
	}
}

// livenessHandler answers the kubernetes liveness probe. It only proves
// the process is serving requests, so it never touches dependencies.
func livenessHandler(builder *response.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		builder.WriteSuccess(w, r, map[string]string{"status": "alive"})
	}
}

// readinessHandler answers the kubernetes readiness probe. A failed
// database ping takes the pod out of rotation until it recovers.
func readinessHandler(serviceCollection *services.ServiceCollection, builder *response.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if dbHealth := serviceCollection.DBManager.Health(ctx); !dbHealth.Healthy() {
			builder.WriteServiceUnavailable(w, r, "5")
			return
		}

		builder.WriteSuccess(w, r, map[string]string{"status": "ready"})
	}
}

// statsHandler serves the runtime stats snapshot for operators.
func statsHandler(dashboard *monitoring.Dashboard, builder *response.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		builder.WriteSuccess(w, r, dashboard.Snapshot(r.Context()))
	}
}

// maintenanceMiddleware short-circuits every API request while the
// service is down for maintenance.
func maintenanceMiddleware(builder *response.Builder) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			builder.WriteServiceUnavailable(w, r, "300")
		})
	}
}

// ===============================
// FALLBACK HANDLERS
// ===============================

// Fallback handlers close over the builder directly: mux middleware do
// not run for unmatched routes, so the context carries no builder there.
func notFoundHandler(builder *response.Builder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		builder.WriteNotFound(w, r, "route not found")
	})
}

func methodNotAllowedHandler(builder *response.Builder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		builder.WriteError(w, r, services.NewMethodNotAllowedError("method not allowed for this route"))
	})
}
