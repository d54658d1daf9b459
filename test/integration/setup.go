package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vncsmyrnk/votemap/internal/adapters/broadcast"
	"github.com/vncsmyrnk/votemap/internal/adapters/geo"
	handler "github.com/vncsmyrnk/votemap/internal/adapters/handler/http"
	"github.com/vncsmyrnk/votemap/internal/adapters/handler/ws"
	"github.com/vncsmyrnk/votemap/internal/adapters/keystore"
	repo "github.com/vncsmyrnk/votemap/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/votemap/internal/adapters/token"
	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
	"github.com/vncsmyrnk/votemap/internal/core/services"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// clock lets a test move the service's notion of now across the cooldown.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// codeOutbox records the last code sent to each phone number.
type codeOutbox struct {
	mu    sync.Mutex
	codes map[string]string
}

func (o *codeOutbox) Send(_ context.Context, phoneNumber, code string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.codes[phoneNumber] = code
	return nil
}

func (o *codeOutbox) Last(phoneNumber string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.codes[phoneNumber]
}

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	Clock       *clock
	Outbox      *codeOutbox
	Hub         *broadcast.Hub
	Tokens      *token.JWT
	Votes       ports.VoteRepository
	Reports     ports.ReportService
	DBContainer testcontainers.Container
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)
	require.NoError(t, applyMigrations(db))

	clk := &clock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	outbox := &codeOutbox{codes: make(map[string]string)}

	topics := repo.NewTopicRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	users := repo.NewUserRepository(db)
	hub := broadcast.NewHub()

	results := services.NewResultService(voteRepo)
	votes := services.NewVoteService(topics, voteRepo, results, hub, services.WithClock(clk.Now))
	persona := services.NewPersonaService(voteRepo, results)

	tokens, err := token.New("test-secret", time.Hour)
	require.NoError(t, err)
	auth := services.NewAuthService(users, keystore.NewMemoryStore(), outbox, tokens, votes)

	userService := services.NewUserService(users,
		services.WithUserClock(clk.Now),
		services.WithRegionLocator(geo.NewNearestLocator(geo.KoreanRegions, 60)),
	)

	router := handler.NewHandler(handler.Handlers{
		Votes:     handler.NewVoteHandler(votes, nil),
		Topics:    handler.NewTopicHandler(topics, results, votes, nil),
		Stats:     handler.NewStatsHandler(persona, nil),
		Users:     handler.NewUserHandler(userService, nil),
		Auth:      handler.NewAuthHandler(auth, time.Hour, "", http.SameSiteLaxMode, nil),
		WebSocket: ws.NewHandler(hub),
	}, handler.RouterConfig{Identity: tokens})

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		Clock:       clk,
		Outbox:      outbox,
		Hub:         hub,
		Tokens:      tokens,
		Votes:       voteRepo,
		Reports:     services.NewReportService(topics, results),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) createTopic(t *testing.T, title string, status domain.TopicStatus) int64 {
	t.Helper()
	var id int64
	err := app.DB.QueryRow(
		"INSERT INTO topics (title, option_a, option_b, status) VALUES ($1, 'Yes', 'No', $2) RETURNING id",
		title, status,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func (app *TestApp) createUserAndToken(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	user := &domain.User{
		ID:          uuid.New(),
		PhoneNumber: "010-" + uuid.NewString()[:8],
		Nickname:    "tester",
	}
	_, err := app.DB.Exec("INSERT INTO users (id, phone_number, nickname) VALUES ($1, $2, $3)",
		user.ID, user.PhoneNumber, user.Nickname)
	require.NoError(t, err)

	signed, err := app.Tokens.Issue(user)
	require.NoError(t, err)
	return user.ID, signed
}
