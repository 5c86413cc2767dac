package routes

import (
	"net/http"

	"github.com/templui/goalmaster/internal/app"
	"github.com/templui/goalmaster/internal/handler"
	"github.com/templui/goalmaster/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService, app.UserService)
	goal := handler.NewGoalHandler(app.GoalService)
	progress := handler.NewProgressHandler(app.ProgressService)
	advisor := handler.NewAdvisorHandler(app.AdvisorService)
	community := handler.NewCommunityHandler(app.CommunityService)

	requireAuth := middleware.RequireAuth(app.AuthService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /health", health.Health)
	mux.Handle("GET /metrics", app.Metrics.Handler())

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth(app.Metrics, app.Cfg.TrustProxy)

	mux.HandleFunc("POST /api/auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))

	// ============================================================================
	// PROTECTED ROUTES (bearer token)
	// ============================================================================

	// Account
	mux.HandleFunc("POST /api/auth/refresh", requireAuth(auth.Refresh))
	mux.HandleFunc("GET /api/auth/me", requireAuth(auth.Me))
	mux.HandleFunc("PUT /api/auth/me", requireAuth(auth.UpdateMe))
	mux.HandleFunc("POST /api/auth/me/avatar", requireAuth(auth.UploadAvatar))

	// Goals
	mux.HandleFunc("GET /api/goals", requireAuth(goal.List))
	mux.HandleFunc("POST /api/goals", requireAuth(goal.Create))
	mux.HandleFunc("GET /api/goals/{id}", requireAuth(goal.Get))
	mux.HandleFunc("PUT /api/goals/{id}", requireAuth(goal.Update))
	mux.HandleFunc("DELETE /api/goals/{id}", requireAuth(goal.Delete))

	// Progress
	mux.HandleFunc("GET /api/progress", requireAuth(progress.List))
	mux.HandleFunc("GET /api/progress/goal/{goal_id}", requireAuth(progress.List))
	mux.HandleFunc("POST /api/progress", requireAuth(progress.Create))
	mux.HandleFunc("PUT /api/progress/{id}", requireAuth(progress.Update))

	// AI advisory
	mux.HandleFunc("POST /api/ai/analyze-goal", requireAuth(advisor.Analyze))
	mux.HandleFunc("POST /api/ai/generate-plan", requireAuth(advisor.GeneratePlan))
	mux.HandleFunc("GET /api/ai/get-coaching", requireAuth(advisor.Coach))
	mux.HandleFunc("POST /api/ai/get-coaching", requireAuth(advisor.Coach))
	mux.HandleFunc("GET /api/ai/get-coaching/{goal_id}", requireAuth(advisor.Coach))
	mux.HandleFunc("GET /api/ai/plans", requireAuth(advisor.Plans))

	// Community
	mux.HandleFunc("GET /api/community/users/similar-goals", requireAuth(community.SimilarGoals))

	// Apply middleware chain (executed in order)
	return middleware.Chain(mux,
		middleware.Recover,
		middleware.RequestID,
		middleware.CORS(app.Cfg.AllowedOrigins),
		middleware.RequestLogging(app.Metrics),
	)
}
