package routes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/monez-app/monez/internal/analytics"
	"github.com/monez-app/monez/internal/auth"
	"github.com/monez-app/monez/internal/config"
	"github.com/monez-app/monez/internal/currency"
	"github.com/monez-app/monez/internal/expense"
	"github.com/monez-app/monez/internal/friend"
	"github.com/monez-app/monez/internal/group"
	"github.com/monez-app/monez/internal/middleware"
	"github.com/monez-app/monez/internal/notification"
	"github.com/monez-app/monez/internal/settlement"
	"github.com/monez-app/monez/internal/user"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	if d.Cfg.IsDev() {
		// Plain text access log in desired format: [HH:MM:SS] 200 -  145ms METHOD /path
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	} else {
		app.Use(middleware.Audit(d.Logger))
	}
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories
	var userRepo user.Repository
	if d.DB != nil {
		userRepo = user.NewPostgresRepository(d.DB)
	} else {
		userRepo = user.NewMemoryRepository()
	}
	var friendRepo friend.Repository
	if d.DB != nil {
		friendRepo = friend.NewPostgresRepository(d.DB)
	} else {
		friendRepo = friend.NewMemoryRepository()
	}
	var groupRepo group.Repository
	if d.DB != nil {
		groupRepo = group.NewPostgresRepository(d.DB)
	} else {
		groupRepo = group.NewMemoryRepository()
	}
	var expenseRepo expense.Repository
	if d.DB != nil {
		expenseRepo = expense.NewPostgresRepository(d.DB)
	} else {
		expenseRepo = expense.NewMemoryRepository()
	}
	var settlementRepo settlement.Repository
	if d.DB != nil {
		settlementRepo = settlement.NewPostgresRepository(d.DB)
	} else {
		settlementRepo = settlement.NewMemoryRepository()
	}

	// Exchange rates come from the HTTP provider, cached in Redis when present.
	provider := currency.NewHTTPProvider(d.Cfg.RatesURL)
	var converter currency.Converter
	if d.Cache != nil {
		converter = currency.NewCachedConverter(provider, d.Cache, d.Cfg.RatesTTL, d.Logger)
	} else {
		converter = currency.NewProviderConverter(provider)
	}
	engine := settlement.NewEngine(converter)

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)
	membership := settlement.MembershipFunc(func(ctx context.Context, groupID, userID string) (bool, error) {
		g, err := groupRepo.Get(ctx, groupID)
		if err != nil {
			if errors.Is(err, group.ErrGroupNotFound) {
				return false, nil
			}
			return false, err
		}
		return g.HasMember(userID), nil
	})
	settlementSvc := settlement.NewService(settlementRepo, notifier, membership)
	expenseSvc := expense.NewService(expenseRepo, notifier)
	var recurringRepo expense.RecurringRepository
	if d.DB != nil {
		recurringRepo = expense.NewPostgresRecurringRepository(d.DB)
	} else {
		recurringRepo = expense.NewMemoryRecurringRepository()
	}
	recurringSvc := expense.NewRecurringService(recurringRepo, expenseSvc)
	friendSvc := friend.NewService(friendRepo, expenseRepo, engine)
	groupSvc := group.NewService(groupRepo, expenseRepo, settlementSvc, engine)
	userSvc := user.NewService(userRepo)
	authSvc := auth.NewService(d.Cfg, userRepo)
	analyticsSvc := analytics.NewService(settlementRepo, expenseRepo)

	authHandler := auth.NewHandler(userSvc, authSvc)
	friendHandler := friend.NewHandler(friendSvc, d.Cfg.BaseCurrency)
	groupHandler := group.NewHandler(groupSvc, d.Cfg.BaseCurrency)
	expenseHandler := expense.NewHandler(expenseSvc)
	settlementHandler := settlement.NewHandler(settlementSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	jwtmw := middleware.JWTAuth(d.Cfg, userRepo)

	// Public routes
	RegisterCurrencyRoutes(api)
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter, jwtmw)

	// Protected routes
	protected := api.Group("", jwtmw)
	// Profile endpoint
	protected.Get("/me", func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		if uid == "" {
			return c.SendStatus(http.StatusUnauthorized)
		}
		u, err := userRepo.FindByID(c.UserContext(), uid)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "user not found")
		}
		return c.JSON(fiber.Map{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"currency":   u.Currency,
			"locale":     u.Locale,
			"created_at": u.CreatedAt,
		})
	})
	RegisterFriendRoutes(protected, friendHandler)
	RegisterGroupRoutes(protected, groupHandler)
	RegisterExpenseRoutes(protected, expenseHandler, recurringSvc)
	RegisterSettlementRoutes(protected, settlementHandler)
	RegisterAnalyticsRoutes(protected, analyticsSvc)
	RegisterUPIRoutes(protected, friendSvc)

	return nil
}
