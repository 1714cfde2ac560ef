// Package docs contains the Swagger documentation for the API
package docs

// This file contains all Swagger endpoint documentation
// Import this in your main.go with: _ "zuna/internal/docs"

// HealthCheck godoc
// @Summary Health check endpoint
// @Description Returns aggregate service health with per-dependency detail
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse "Service is healthy or degraded"
// @Failure 503 {object} HealthResponse "Service is unhealthy"
// @Router /health [get]
func _() {}

// Liveness godoc
// @Summary Liveness probe
// @Description Proves the process is serving requests without touching dependencies
// @Tags System
// @Produce json
// @Success 200 {object} APIResponse "Process is alive"
// @Router /healthz [get]
func _() {}

// Readiness godoc
// @Summary Readiness probe
// @Description Checks the database connection before the pod takes traffic
// @Tags System
// @Produce json
// @Success 200 {object} APIResponse "Ready for traffic"
// @Failure 503 {object} ErrorResponse "Database unavailable"
// @Router /readyz [get]
func _() {}

// ListCatalog godoc
// @Summary List the badge catalog
// @Description Returns every non-secret badge a user can earn
// @Tags Badges
// @Produce json
// @Success 200 {object} BadgeCatalogResponse "Badge catalog"
// @Router /badges [get]
func _() {}

// ListMyBadges godoc
// @Summary List earned badges
// @Description Returns the caller's earned badges, oldest first
// @Tags Badges
// @Produce json
// @Param X-User-ID header string true "Gateway-verified user id"
// @Success 200 {object} UserBadgesResponse "Earned badges"
// @Failure 401 {object} ErrorResponse "Missing or invalid identity"
// @Router /me/badges [get]
func _() {}

// GetMyProgress godoc
// @Summary Get badge progress
// @Description Returns progress toward unearned badges, most complete first
// @Tags Badges
// @Produce json
// @Param X-User-ID header string true "Gateway-verified user id"
// @Success 200 {object} BadgeProgressResponse "Progress entries"
// @Failure 401 {object} ErrorResponse "Missing or invalid identity"
// @Router /me/badges/progress [get]
func _() {}

// CheckMyBadges godoc
// @Summary Re-evaluate badge criteria
// @Description Evaluates every catalog criterion against fresh stats and awards anything newly earned
// @Tags Badges
// @Produce json
// @Param X-User-ID header string true "Gateway-verified user id"
// @Success 200 {object} AwardResultResponse "Evaluation result"
// @Failure 401 {object} ErrorResponse "Missing or invalid identity"
// @Router /me/badges/check [post]
func _() {}

// RecordActivity godoc
// @Summary Record a daily activity
// @Description Bumps the caller's daily counter for the activity type and evaluates badges
// @Tags Activity
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Gateway-verified user id"
// @Param activityRequest body RecordActivityRequest true "Activity to record"
// @Success 200 {object} RecordActivityResponse "Activity recorded, new badges listed"
// @Failure 400 {object} ErrorResponse "Unknown activity type"
// @Failure 401 {object} ErrorResponse "Missing or invalid identity"
// @Router /me/activity [post]
func _() {}

// RecordColoring godoc
// @Summary Record a coloring session event
// @Description Folds one coloring event into lifetime stats and evaluates badges
// @Tags Activity
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Gateway-verified user id"
// @Param coloringEvent body ColoringEventRequest true "Coloring event"
// @Success 200 {object} RecordActivityResponse "Event recorded, new badges listed"
// @Failure 400 {object} ErrorResponse "Unknown coloring event type"
// @Failure 401 {object} ErrorResponse "Missing or invalid identity"
// @Router /me/activity/coloring [post]
func _() {}

// IngestAnalysis godoc
// @Summary Ingest a drawing analysis
// @Description Parses the raw model output, stores the analysis, and runs badge hooks
// @Tags Analyses
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Gateway-verified user id"
// @Param analysisRequest body IngestAnalysisRequest true "Raw analysis output"
// @Success 201 {object} IngestAnalysisResponse "Analysis stored"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Missing or invalid identity"
// @Failure 500 {object} ErrorResponse "Storage failure"
// @Router /me/analyses [post]
func _() {}

// ListMyAnalyses godoc
// @Summary List stored analyses
// @Description Returns the caller's analyses, newest first
// @Tags Analyses
// @Produce json
// @Param X-User-ID header string true "Gateway-verified user id"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} PaginationResponse "Analyses page"
// @Failure 401 {object} ErrorResponse "Missing or invalid identity"
// @Router /me/analyses [get]
func _() {}

// GetDailyTip godoc
// @Summary Get the daily parenting tip
// @Description Returns the tip for the given day, today by default
// @Tags Content
// @Produce json
// @Param date query string false "Day to fetch, formatted YYYY-MM-DD"
// @Success 200 {object} DailyTipResponse "Daily tip, null when no tip exists"
// @Failure 400 {object} ErrorResponse "Malformed date"
// @Router /content/daily-tip [get]
func _() {}

// GetDiscoverFeed godoc
// @Summary Get the discover feed
// @Description Returns curated discover items, featured first
// @Tags Content
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} PaginationResponse "Discover page"
// @Router /content/discover [get]
func _() {}

// GetExpertTips godoc
// @Summary Get expert tips
// @Description Returns expert-authored articles, newest first
// @Tags Content
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} PaginationResponse "Expert tips page"
// @Router /content/expert-tips [get]
func _() {}

// ListMyNotifications godoc
// @Summary List notifications
// @Description Returns the caller's notifications, newest first
// @Tags Notifications
// @Produce json
// @Param X-User-ID header string true "Gateway-verified user id"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} PaginationResponse "Notifications page"
// @Failure 401 {object} ErrorResponse "Missing or invalid identity"
// @Router /me/notifications [get]
func _() {}

// MarkNotificationRead godoc
// @Summary Mark a notification read
// @Description Marks one of the caller's notifications as read
// @Tags Notifications
// @Produce json
// @Param X-User-ID header string true "Gateway-verified user id"
// @Param id path int true "Notification id"
// @Success 200 {object} APIResponse "Marked read"
// @Failure 400 {object} ErrorResponse "Non-numeric id"
// @Failure 401 {object} ErrorResponse "Missing or invalid identity"
// @Failure 404 {object} ErrorResponse "Notification not found"
// @Router /me/notifications/{id}/read [post]
func _() {}
