package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/hitoshi/tasktimer/internal/metrics"
	"github.com/hitoshi/tasktimer/internal/middleware"
	"github.com/hitoshi/tasktimer/internal/model"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	TokenVerifier     middleware.TokenVerifier
	RateLimiter       *middleware.RateLimiter
	CORSAllowedOrigin string

	// メトリクス
	Metrics        metrics.MetricsCollector
	MetricsHandler http.Handler

	// ヘルスチェック
	DB Pinger

	// ユースケース
	AccountService AccountServiceInterface
	TaskService    TaskServiceInterface
	TimeLogService TimeLogServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → RealIP → Recovery → Logging → Metrics → SecurityHeaders → CORS
//
// サインアップ・サインインはIP単位、それ以外の/api/*はBearer認証の後にユーザー単位でレート制限する。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	collector := deps.Metrics
	if collector == nil {
		collector = metrics.NopCollector{}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewMetricsMiddleware(collector))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewNotFoundError("system", "Resource not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeAPIErrorResponse(w, http.StatusMethodNotAllowed, &model.APIError{
			Code:     "METHOD_NOT_ALLOWED",
			Message:  "Method not allowed",
			Category: "system",
			Action:   "Check the API documentation for supported methods.",
		})
	})

	accountHandler := NewAccountHandler(deps.AccountService, collector)
	taskHandler := NewTaskHandler(deps.TaskService)
	timeLogHandler := NewTimeLogHandler(deps.TimeLogService, collector)

	// --- 認証不要のルート ---

	r.Get("/health", NewHealthHandler(deps.DB))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.AuthMiddleware())
		r.Post("/api/accounts/sign-up", accountHandler.SignUp)
		r.Post("/api/accounts/sign-in", accountHandler.SignIn)
	})

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Route("/api/accounts/me", func(r chi.Router) {
			r.Get("/", accountHandler.Me)
			r.Patch("/", accountHandler.UpdateMe)
			r.Delete("/", accountHandler.DeleteMe)
		})

		r.Route("/api/tasks", func(r chi.Router) {
			r.Post("/", taskHandler.CreateTask)
			r.Get("/", taskHandler.ListTasks)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.GetTask)
				r.Put("/", taskHandler.UpdateTask)
				r.Delete("/", taskHandler.DeleteTask)

				// GET /api/tasks/{id}/time-logs - タスクごとの時間ログ一覧
				r.Get("/time-logs", timeLogHandler.ListTimeLogs)
			})
		})

		r.Route("/api/time-logs", func(r chi.Router) {
			r.Post("/", timeLogHandler.StartTimeLog)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", timeLogHandler.GetTimeLog)
				r.Delete("/", timeLogHandler.DeleteTimeLog)
				r.Post("/stop", timeLogHandler.StopTimeLog)
			})
		})
	})

	return r
}
