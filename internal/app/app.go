package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/abdo754/soccer-team-hub/internal/assistant"
	"github.com/abdo754/soccer-team-hub/internal/config"
	"github.com/abdo754/soccer-team-hub/internal/fixtures"
	"github.com/abdo754/soccer-team-hub/internal/handler"
	"github.com/abdo754/soccer-team-hub/internal/i18n"
	"github.com/abdo754/soccer-team-hub/internal/metrics"
	"github.com/abdo754/soccer-team-hub/internal/middleware"
	"github.com/abdo754/soccer-team-hub/internal/repository"
	"github.com/abdo754/soccer-team-hub/internal/repository/memory"
	"github.com/abdo754/soccer-team-hub/internal/repository/postgres"
	"github.com/abdo754/soccer-team-hub/internal/service"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config          *config.Config
	db              *pgxpool.Pool
	server          *http.Server
	logger          *slog.Logger
	seed            fixtures.Provider
	gateway         assistant.Gateway
	registerMetrics bool
}

// Option настраивает приложение при создании
type Option func(*App)

// WithSeed подменяет источник начального состояния in-memory хранилища
func WithSeed(seed fixtures.Provider) Option {
	return func(a *App) { a.seed = seed }
}

// WithGateway подменяет шлюз ассистента (используется в тестах)
func WithGateway(gw assistant.Gateway) Option {
	return func(a *App) { a.gateway = gw }
}

// WithoutMetricsRegistration отключает регистрацию метрик в глобальном
// реестре Prometheus (повторная регистрация в тестах паникует)
func WithoutMetricsRegistration() Option {
	return func(a *App) { a.registerMetrics = false }
}

// New создает новый экземпляр приложения
func New(cfg *config.Config, opts ...Option) (*App, error) {
	// Инициализируем структурированный логгер (JSON формат)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app := &App{
		config:          cfg,
		logger:          logger,
		registerMetrics: true,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app, nil
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	if a.config.Store.Backend == "postgres" {
		if err := a.connectDB(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	if a.registerMetrics {
		metrics.Register()
	}

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info("Application initialized successfully", "store", a.config.Store.Backend)
	return nil
}

// connectDB устанавливает подключение к PostgreSQL с connection pool
func (a *App) connectDB(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	// Настраиваем размеры connection pool
	poolConfig.MaxConns = a.config.Database.MaxConns
	poolConfig.MinConns = a.config.Database.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Проверяем подключение к БД
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	a.logger.Info("Connected to database")
	return nil
}

// buildRepositories выбирает реализацию хранилища согласно конфигурации.
// In-memory хранилище заполняется начальными данными; PostgreSQL хранит
// данные между перезапусками и заполняется миграциями.
func (a *App) buildRepositories() (repository.UserRepository, repository.EventRepository, repository.MessageRepository) {
	if a.config.Store.Backend == "postgres" {
		return postgres.NewUserRepository(a.db),
			postgres.NewEventRepository(a.db),
			postgres.NewMessageRepository(a.db)
	}

	seed := a.seed
	if seed == nil {
		tr := i18n.New(a.config.Locale.Default)
		seed = func() *fixtures.Seed { return fixtures.Default(tr) }
	}
	s := seed()
	return memory.NewUserRepository(s.Users),
		memory.NewEventRepository(s.Events),
		memory.NewMessageRepository(s.Messages)
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	// Инициализируем слой репозиториев
	userRepo, eventRepo, msgRepo := a.buildRepositories()

	// Инициализируем шлюз ассистента
	creds := assistant.NewEnvCredentials(a.config.Assistant.APIKey, a.config.Assistant.KeySelection)
	gateway := a.gateway
	if gateway == nil {
		gateway = assistant.NewGeminiGateway(
			creds,
			a.config.Assistant.BaseURL,
			a.config.Assistant.Model,
			a.config.Assistant.TeamName,
			a.config.Assistant.Timeout,
		)
	}

	// Инициализируем слой сервисов (бизнес-логика)
	authService := service.NewAuthService(
		userRepo,
		a.config.JWT.Secret,
		a.config.JWT.GetExpiration(),
	)
	userService := service.NewUserService(userRepo)
	eventService := service.NewEventService(eventRepo)
	chatService := service.NewChatService(msgRepo, eventRepo, userRepo, gateway, creds.SupportsSelection())
	statsService := service.NewStatsService(eventRepo, userRepo)

	// Инициализируем HTTP обработчики
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	eventHandler := handler.NewEventHandler(eventService)
	chatHandler := handler.NewChatHandler(chatService, a.config.Locale.Default)
	statsHandler := handler.NewStatsHandler(statsService)

	// Инициализируем middleware для JWT авторизации
	authMiddleware := middleware.AuthMiddleware(authService)

	// Настраиваем роутер
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// SPA живет на другом origin
	r.Use(cors.New(cors.Options{
		AllowedOrigins: a.config.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Accept-Language"},
	}).Handler)

	// Публичные эндпоинты (без авторизации)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/signup", authHandler.SignUp)
	})

	// Health check для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			a.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Метрики Prometheus
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// Защищенные эндпоинты (требуют JWT токен в заголовке Authorization)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		// Текущая сессия
		r.Get("/auth/me", authHandler.Me)
		r.Post("/auth/logout", authHandler.Logout)

		// Эндпоинты пользователей
		r.Get("/users", userHandler.List)
		r.Get("/users/get", userHandler.Get)
		r.Post("/users/update", userHandler.Update)

		// Эндпоинты расписания
		r.Get("/events", eventHandler.List)
		r.Post("/events/add", eventHandler.Add)
		r.Post("/events/update", eventHandler.Update)
		r.Post("/events/delete", eventHandler.Delete)
		r.Post("/events/rsvp", eventHandler.SetRSVP)

		// Эндпоинты чата и ассистента
		r.Get("/chat/messages", chatHandler.Messages)
		r.Post("/chat/send", chatHandler.Send)
		r.Post("/chat/retry", chatHandler.Retry)

		// Эндпоинты статистики посещаемости
		r.Get("/stats", statsHandler.GetStats)
	})

	// Создаем HTTP сервер с настройками таймаутов
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// Запрос к ассистенту может ждать внешний сервис дольше остальных
		WriteTimeout: a.config.Assistant.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", "addr", addr)
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	// Закрываем подключения к базе данных
	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
