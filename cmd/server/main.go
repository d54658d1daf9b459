package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/votemap/internal/adapters/broadcast"
	"github.com/vncsmyrnk/votemap/internal/adapters/geo"
	"github.com/vncsmyrnk/votemap/internal/adapters/handler/http"
	"github.com/vncsmyrnk/votemap/internal/adapters/handler/ws"
	"github.com/vncsmyrnk/votemap/internal/adapters/keystore"
	"github.com/vncsmyrnk/votemap/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/votemap/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/votemap/internal/adapters/sms"
	"github.com/vncsmyrnk/votemap/internal/adapters/token"
	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
	"github.com/vncsmyrnk/votemap/internal/core/services"
	"github.com/vncsmyrnk/votemap/internal/platform/config"
	"github.com/vncsmyrnk/votemap/internal/platform/httpserver"
	"github.com/vncsmyrnk/votemap/internal/platform/logger"
	"github.com/vncsmyrnk/votemap/internal/platform/metrics"
	"github.com/vncsmyrnk/votemap/internal/platform/redis"
)

type storage struct {
	topics ports.TopicCatalog
	votes  ports.VoteRepository
	users  ports.UserRepository
	close  func() error
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	logg := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(cfg, logg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.close()

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		log.Fatal(err)
	}

	m := metrics.New()
	localHub := broadcast.NewHub(broadcast.WithHubLogger(logg), broadcast.WithHubMetrics(m))

	var (
		hub   ports.SubscriptionHub = localHub
		codes ports.CodeStore
	)
	if redisClient != nil {
		defer redisClient.Close()
		redisHub := broadcast.NewRedisHub(redisClient, localHub, broadcast.WithRedisLogger(logg))
		ready := make(chan struct{})
		relayErr := make(chan error, 1)
		go func() {
			relayErr <- redisHub.Run(ctx, ready)
		}()
		select {
		case <-ready:
		case err := <-relayErr:
			log.Fatal(err)
		}
		go func() {
			if err := <-relayErr; err != nil && !errors.Is(err, context.Canceled) {
				logg.Error("redis relay stopped", "error", err)
			}
		}()
		hub = redisHub
		codes = keystore.NewRedisStore(redisClient)
		logg.Info("using redis for broadcast and login codes")
	} else {
		memCodes := keystore.NewMemoryStore()
		go memCodes.StartCleanup(ctx, time.Minute)
		codes = memCodes
	}

	results := services.NewResultService(store.votes,
		services.WithResultLogger(logg),
		services.WithResultMetrics(m),
	)
	votes := services.NewVoteService(store.topics, store.votes, results, hub,
		services.WithVoteLogger(logg),
		services.WithVoteMetrics(m),
		services.WithCooldown(cfg.Cooldown),
		services.WithUnidentifiedPolicy(cfg.UnidentifiedVotes),
		services.WithBroadcastTimeout(cfg.BroadcastTimeout),
	)
	persona := services.NewPersonaService(store.votes, results, services.WithPersonaLogger(logg))

	tokens, err := token.New(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal(err)
	}
	auth := services.NewAuthService(store.users, codes, sms.NewLogSender(logg), tokens, votes,
		services.WithCodeTTL(cfg.OTPTTL),
		services.WithAuthLogger(logg),
	)

	users := services.NewUserService(store.users,
		services.WithRegionLocator(geo.NewNearestLocator(geo.KoreanRegions, cfg.RegionMaxDistanceKm)),
		services.WithNicknameCooldown(cfg.NicknameCooldown),
		services.WithUserLogger(logg),
	)

	handler := http.NewHandler(http.Handlers{
		Votes:  http.NewVoteHandler(votes, logg),
		Topics: http.NewTopicHandler(store.topics, results, votes, logg),
		Stats:  http.NewStatsHandler(persona, logg),
		Users:  http.NewUserHandler(users, logg),
		Auth:   http.NewAuthHandler(auth, cfg.TokenTTL, "", stdhttp.SameSiteLaxMode, logg),
		WebSocket: ws.NewHandler(hub,
			ws.WithLogger(logg),
			ws.WithBufferSize(cfg.SubscriberBufferSize),
			ws.WithAllowedOrigins(cfg.CORSOrigins),
		),
	}, http.RouterConfig{
		Identity:    tokens,
		CORSOrigins: cfg.CORSOrigins,
	})

	server := httpserver.New(cfg.Addr, handler)

	go func() {
		logg.Info("listening", "addr", cfg.Addr, "storage", cfg.Storage)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	logg.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func openStorage(cfg config.Config, logg *slog.Logger) (storage, error) {
	if cfg.Storage == "memory" {
		topics := memory.NewTopicRepository(domain.Topic{
			Title:   "Mountains or sea?",
			OptionA: "Mountains",
			OptionB: "Sea",
			Status:  domain.TopicStatusOngoing,
		})
		logg.Warn("using in-memory storage, data is lost on restart")
		return storage{
			topics: topics,
			votes:  memory.NewVoteRepository(topics),
			users:  memory.NewUserRepository(),
			close:  func() error { return nil },
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Postgres.ConnString())
	if err != nil {
		return storage{}, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return storage{}, err
	}
	return storage{
		topics: postgres.NewTopicRepository(db),
		votes:  postgres.NewVoteRepository(db),
		users:  postgres.NewUserRepository(db),
		close:  db.Close,
	}, nil
}
