package wire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alanyang/agent-console/internal/adapter/fixture"
	"github.com/alanyang/agent-console/internal/adapter/memory"
	pgdb "github.com/alanyang/agent-console/internal/adapter/postgres"
	pgagent "github.com/alanyang/agent-console/internal/adapter/postgres/agent"
	pgeventbus "github.com/alanyang/agent-console/internal/adapter/postgres/eventbus"
	"github.com/alanyang/agent-console/internal/adapter/sqlite"
	sqliteagent "github.com/alanyang/agent-console/internal/adapter/sqlite/agent"
	"github.com/alanyang/agent-console/internal/config"
	portagent "github.com/alanyang/agent-console/internal/port/agent"
	porteventbus "github.com/alanyang/agent-console/internal/port/eventbus"
	agentsvc "github.com/alanyang/agent-console/internal/service/agent"
	"github.com/alanyang/agent-console/internal/state"
	"github.com/alanyang/agent-console/internal/transport"
	mcptransport "github.com/alanyang/agent-console/internal/transport/mcp"
	"github.com/alanyang/agent-console/internal/transport/ws"
)

// App holds the top-level resources needed to run and gracefully stop the server.
type App struct {
	Server    *http.Server
	AgentSvc  *agentsvc.Service
	Consoles  *state.Consoles
	Hub       *ws.Hub
	MCPServer *mcptransport.Server

	closers []func() error
}

// Close releases the store connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

// Store is an agent repository and the event bus that goes with it.
type Store struct {
	Repo   portagent.Repository
	Bus    porteventbus.EventBus
	Closer func() error
}

// OpenStore connects the backend named in cfg.Store.Backend. Postgres is
// migrated on connect; SQLite migrates itself on open.
func OpenStore(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.Store.Backend {
	case config.StoreFixture:
		return Store{
			Repo:   fixture.New(cfg.Store.FixtureLatency()),
			Bus:    memory.NewEventBus(),
			Closer: func() error { return nil },
		}, nil

	case config.StorePostgres:
		pool, err := pgdb.Connect(ctx, cfg.Store.DatabaseURL, cfg.Store.MaxConns)
		if err != nil {
			return Store{}, fmt.Errorf("connecting to database: %w", err)
		}
		if err := pgdb.Migrate(ctx, pool); err != nil {
			pool.Close()
			return Store{}, fmt.Errorf("migrating database: %w", err)
		}
		return Store{
			Repo:   pgagent.New(pool),
			Bus:    pgeventbus.New(pool),
			Closer: func() error { pool.Close(); return nil },
		}, nil

	case config.StoreSQLite:
		db, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return Store{}, fmt.Errorf("opening sqlite: %w", err)
		}
		return Store{
			Repo:   sqliteagent.New(db),
			Bus:    memory.NewEventBus(),
			Closer: db.Close,
		}, nil
	}
	return Store{}, &config.ConfigError{Message: fmt.Sprintf("unknown store backend %q", cfg.Store.Backend)}
}

// Build is the composition root: the only place concrete types are wired to their
// interface dependencies.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	// ── Store ────────────────────────────────────────────────────────────────
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// ── Services ─────────────────────────────────────────────────────────────
	agentSvcInstance := agentsvc.NewService(store.Repo, store.Bus)

	hub := ws.NewHub()
	consoles := state.NewConsoles(agentSvcInstance, func(consoleID string, v state.DetailView) {
		hub.BroadcastConsole(consoleID, v)
	})

	mcpServer := mcptransport.New(mcptransport.NewSessionRegistry(), agentSvcInstance)

	// ── Transport ─────────────────────────────────────────────────────────────
	router := transport.NewRouter(ctx, agentSvcInstance, consoles, hub, mcpServer, store.Bus)

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	slog.Info("application wired", "addr", server.Addr, "store", cfg.Store.Backend)

	app := &App{
		Server:    server,
		AgentSvc:  agentSvcInstance,
		Consoles:  consoles,
		Hub:       hub,
		MCPServer: mcpServer,
		closers:   []func() error{store.Closer},
	}

	// ── Console refresh on agent change ──────────────────────────────────────
	startConsoleRefresher(ctx, consoles, store.Bus, cfg.Consoles.RefreshDelay())

	// ── Idle console reaper ──────────────────────────────────────────────────
	startConsoleReaper(ctx, consoles, hub.Watching, cfg.Consoles.IdleTimeout())

	return app, nil
}
