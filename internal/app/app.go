package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/hitoshi/tasktimer/internal/account"
	"github.com/hitoshi/tasktimer/internal/config"
	"github.com/hitoshi/tasktimer/internal/database"
	"github.com/hitoshi/tasktimer/internal/handler"
	"github.com/hitoshi/tasktimer/internal/logger"
	"github.com/hitoshi/tasktimer/internal/metrics"
	"github.com/hitoshi/tasktimer/internal/middleware"
	"github.com/hitoshi/tasktimer/internal/repository"
	"github.com/hitoshi/tasktimer/internal/security"
	"github.com/hitoshi/tasktimer/internal/task"
	"github.com/hitoshi/tasktimer/internal/timelog"
)

// envFile は起動時に読み込む.envファイルのパス。
const envFile = ".env"

// Init はアプリケーションの初期化を行う。
// .envと環境変数からConfigを読み込み、LOG_LEVELに従ってJSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, *slog.Logger, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w, slog.LevelInfo)

	// 2. .envと環境変数から設定を読み込む
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, nil, fmt.Errorf("failed to load env file: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 3. 設定されたレベルでロガーを再構成する
	l := logger.SetupDefault(w, logger.ParseLevel(cfg.LogLevel))

	return cfg, l, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, l, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	l.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	switch cmd {
	case CommandMigrate:
		var migrateArgs []string
		if len(args) > 1 {
			migrateArgs = args[1:]
		}
		return runMigrate(cfg, l, migrateArgs)
	default:
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, cfg, l)
	}
}

// application はserveモードで組み立てた依存関係を保持する。
type application struct {
	handler     http.Handler
	rateLimiter *middleware.RateLimiter
	registry    *prometheus.Registry
}

// close はバックグラウンドで動作するリソースを停止する。
func (a *application) close() {
	a.rateLimiter.Stop()
}

// newApplication はリポジトリからルーターまでの全依存関係をワイヤリングする。
func newApplication(cfg *config.Config, db *sql.DB, l *slog.Logger) (*application, error) {
	// 1. リポジトリ
	accountRepo := repository.NewPostgresAccountRepo(db)
	taskRepo := repository.NewPostgresTaskRepo(db)
	timeLogRepo := repository.NewPostgresTimeLogRepo(db)

	// 2. セキュリティサービス
	hasher, err := security.NewPasswordHasher(cfg.PasswordHasher, cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}
	tokens := security.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	taskMapper := task.NewMapper(security.NewTextSanitizer())

	// 3. ユースケース
	taskLimits := task.PageLimits{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize}
	timeLogLimits := timelog.PageLimits{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize}

	accountService := &handler.AccountServiceAdapter{
		SignUpUseCase:        account.NewSignUpUseCase(hasher, accountRepo, account.SignUpMapper{}),
		SignInUseCase:        account.NewSignInUseCase(accountRepo, hasher, tokens),
		FindAccountUseCase:   account.NewFindAccountUseCase(accountRepo),
		UpdateAccountUseCase: account.NewUpdateAccountUseCase(accountRepo, hasher),
		DeleteAccountUseCase: account.NewDeleteAccountUseCase(accountRepo),
	}
	taskService := &handler.TaskServiceAdapter{
		CreateUseCase:   task.NewCreateTaskUseCase(taskRepo, taskMapper),
		FindAllUseCase:  task.NewFindAllTasksUseCase(taskRepo, taskMapper, taskLimits),
		FindByIDUseCase: task.NewFindTaskByIDUseCase(taskRepo, taskMapper),
		UpdateUseCase:   task.NewUpdateTaskUseCase(taskRepo, taskMapper),
		DeleteUseCase:   task.NewDeleteTaskUseCase(taskRepo),
	}
	timeLogService := &handler.TimeLogServiceAdapter{
		CreateUseCase:     timelog.NewCreateTimeLogUseCase(timeLogRepo, taskRepo),
		StopUseCase:       timelog.NewStopTimeLogUseCase(timeLogRepo, taskRepo),
		FindUseCase:       timelog.NewFindTimeLogUseCase(timeLogRepo, taskRepo),
		FindByTaskUseCase: timelog.NewFindTimeLogsByTaskUseCase(timeLogRepo, taskRepo, timeLogLimits),
		DeleteUseCase:     timelog.NewDeleteTimeLogUseCase(timeLogRepo, taskRepo),
	}

	// 4. メトリクス
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	// 5. ルーター
	rateLimiter := middleware.NewRateLimiter(
		middleware.RateLimiterConfigPerMinute(cfg.RateLimitGeneral, cfg.RateLimitAuth),
	)

	router := handler.NewRouter(&handler.RouterDeps{
		Logger:            l,
		TokenVerifier:     tokens,
		RateLimiter:       rateLimiter,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		Metrics:           collector,
		MetricsHandler:    metrics.Handler(registry),
		DB:                db,
		AccountService:    accountService,
		TaskService:       taskService,
		TimeLogService:    timeLogService,
	})

	return &application{
		handler:     router,
		rateLimiter: rateLimiter,
		registry:    registry,
	}, nil
}

// runServe はAPIサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// ctxがキャンセルされるとグレースフルシャットダウンを行う。
func runServe(ctx context.Context, cfg *config.Config, l *slog.Logger) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL, database.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := database.Ping(ctx, db, 5*time.Second); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	l.Info("database connection established")

	// 2. 依存関係のワイヤリング
	app, err := newApplication(cfg, db, l)
	if err != nil {
		return err
	}
	defer app.close()

	// 3. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      app.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		l.Info("API server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server listen error: %w", err)
		}
		return nil
	})

	// シグナル受信またはリッスン失敗でシャットダウンする
	g.Go(func() error {
		<-gctx.Done()
		l.Info("shutting down API server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	l.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
func runMigrate(cfg *config.Config, l *slog.Logger, args []string) error {
	margs, err := ParseMigrateArgs(args)
	if err != nil {
		return fmt.Errorf("invalid migrate arguments: %w", err)
	}

	l.Info("running database migrations",
		slog.String("direction", string(margs.Direction)),
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	switch margs.Direction {
	case MigrateDown:
		if err := database.RollbackMigrations(cfg.DatabaseURL, margs.Steps); err != nil {
			return fmt.Errorf("migration rollback failed: %w", err)
		}
	case MigrateVersion:
		// 表示のみのため後続の完了ログは出さない
		version, dirty, err := database.MigrationVersion(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to read migration version: %w", err)
		}
		l.Info("current migration version",
			slog.Uint64("version", uint64(version)),
			slog.Bool("dirty", dirty),
		)
		return nil
	default:
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	l.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
