package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/kneyzberg/messagely"
)

func main() {
	cfg := loadConfig()

	fmt.Println(print.MaybeHighlightJSON(cfg))

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DSN)
	if err != nil {
		log.Fatal(err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	ctx := context.Background()
	if err := runMigrations(ctx, db); err != nil {
		log.Fatal(err)
	}

	repo := messagely.NewRepositoryManager(db)
	repo.MustValidate()

	provider := messagely.NewUserProvider(repo.Users())
	auther := messagely.NewAuthenticator(provider, cfg)

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:      true,
			EnablePrintRoutes: true,
			StrictRouting:     false,
		}))
	})

	srv.Router().Use(messagely.AuthenticationStep(cfg, auther.TokenService()))

	messagely.RegisterAuthRoutes(srv.Router(),
		messagely.WithControllerRepo(repo),
		messagely.WithControllerAuthenticator(auther),
		messagely.WithControllerTokenService(auther.TokenService()),
	)

	messagely.RegisterMessageRoutes(srv.Router(), &messagely.MessagesController{
		Repo: repo,
	})

	messagely.RegisterUserRoutes(srv.Router(), &messagely.UsersController{
		Repo: repo,
	})

	srv.Serve(cfg.Address)

	WaitExitSignal()
}

func runMigrations(ctx context.Context, db *bun.DB) error {
	migrations, err := fs.Sub(messagely.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(migrations, ".")
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := fs.ReadFile(migrations, name)
		if err != nil {
			return err
		}

		for _, stmt := range strings.Split(string(content), ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration %s: %w", name, err)
			}
		}
	}

	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}

// config is the env backed app configuration. It satisfies messagely.Config.
type config struct {
	Address         string   `json:"address"`
	DSN             string   `json:"dsn"`
	SigningKey      string   `json:"-"`
	TokenExpiration int      `json:"token_expiration"`
	Issuer          string   `json:"issuer"`
	Audience        []string `json:"audience,omitempty"`
	ContextKey      string   `json:"context_key"`
	TokenLookup     string   `json:"token_lookup"`
	AuthScheme      string   `json:"auth_scheme"`
}

func (c config) GetSigningKey() string   { return c.SigningKey }
func (c config) GetContextKey() string   { return c.ContextKey }
func (c config) GetTokenExpiration() int { return c.TokenExpiration }
func (c config) GetTokenLookup() string  { return c.TokenLookup }
func (c config) GetAuthScheme() string   { return c.AuthScheme }
func (c config) GetIssuer() string       { return c.Issuer }
func (c config) GetAudience() []string   { return c.Audience }

func loadConfig() config {
	cfg := config{
		Address:         getenv("MSGLY_ADDRESS", ":3000"),
		DSN:             getenv("MSGLY_DSN", "file:messagely.db?cache=shared&_pragma=foreign_keys(1)"),
		SigningKey:      getenv("MSGLY_SIGNING_KEY", ""),
		TokenExpiration: getenvInt("MSGLY_TOKEN_EXPIRATION", 24),
		Issuer:          getenv("MSGLY_ISSUER", "messagely"),
		ContextKey:      getenv("MSGLY_CONTEXT_KEY", "user"),
		TokenLookup:     getenv("MSGLY_TOKEN_LOOKUP", "header:"+router.HeaderAuthorization+",query:_token"),
		AuthScheme:      getenv("MSGLY_AUTH_SCHEME", "Bearer"),
	}

	if aud := getenv("MSGLY_AUDIENCE", ""); aud != "" {
		cfg.Audience = strings.Split(aud, ",")
	}

	if cfg.SigningKey == "" {
		log.Fatal("MSGLY_SIGNING_KEY is required")
	}

	return cfg
}

func getenv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getenvInt(key string, def int) int {
	val := os.Getenv(key)
	if val == "" {
		return def
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}

	return parsed
}
