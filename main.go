package main

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoadmin/catalog"
	"github.com/princinho/sahoadmin/config"
	"github.com/princinho/sahoadmin/controllers"
	"github.com/princinho/sahoadmin/database"
	"github.com/princinho/sahoadmin/editor"
	"github.com/princinho/sahoadmin/middleware"
	"github.com/princinho/sahoadmin/notify"
	"github.com/princinho/sahoadmin/previews"
	"github.com/princinho/sahoadmin/sessions"
	"github.com/princinho/sahoadmin/utils"
	"github.com/princinho/sahoadmin/workspace"
	"github.com/sirupsen/logrus"
)

const sweepInterval = 5 * time.Minute

func main() {
	cfg := config.Load()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatal(err)
	}
	ctx := context.Background()

	store, err := previews.New(ctx, cfg)
	if err != nil {
		logrus.WithField("error", err).Fatal("failed to set up preview storage")
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	client := catalog.NewClient(cfg.CatalogAPIURL, cfg.CatalogTimeout)
	sessionStore, closeSessions := newSessionStore(ctx, cfg)
	defer closeSessions()
	manager := sessions.NewManager(sessionStore, newAuthenticator(cfg, client))

	ws := workspace.New()
	center := notify.NewCenter()
	manager.OnDrop(func(ctx context.Context, id string) {
		ws.Drop(ctx, id)
		center.Forget(id)
	})

	app := &controllers.App{
		Catalog:      client,
		Sessions:     manager,
		Previews:     store,
		Workspace:    ws,
		Notify:       center,
		SKUs:         editor.NewSKUGenerator(nil),
		Images:       utils.NewImageValidator(cfg.UploadExtensions, cfg.UploadMimeTypes, cfg.MaxUploadSizeMB),
		CookieSecure: cfg.CookieSecure,
	}

	go sweep(ctx, manager, ws, cfg.SessionTTL)

	r := gin.New()
	logrus.WithField("origins", cfg.AllowedOrigins).Info("Allowed origins")
	allowedOrigins := map[string]bool{}
	for _, origin := range cfg.AllowedOrigins {
		allowedOrigins[origin] = true
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			result := allowedOrigins[origin]
			logrus.WithFields(logrus.Fields{"origin": origin, "allowed": result}).Debug("CORS check")
			return result
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = 32 << 20

	app.Register(r)

	logrus.WithField("port", cfg.Port).Info("admin dashboard listening")
	if err := r.Run(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		logrus.Fatal(err)
	}
}

func newSessionStore(ctx context.Context, cfg *config.Config) (sessions.Store, func()) {
	if cfg.SessionStore != "mongo" {
		logrus.Info("using in-memory session store")
		return sessions.NewMemoryStore(), func() {}
	}
	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logrus.WithField("error", err).Fatal("failed to connect to MongoDB")
	}
	store := sessions.NewMongoStore(database.OpenCollection(client, cfg.DatabaseName, "admin_sessions"))
	if err := store.EnsureIndexes(ctx); err != nil {
		logrus.WithField("error", err).Warn("failed to create session indexes")
	}
	return store, func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logrus.WithField("error", err).Warn("failed to disconnect from MongoDB")
		}
	}
}

func newAuthenticator(cfg *config.Config, client *catalog.Client) sessions.Authenticator {
	if cfg.AuthMode == "local" {
		return sessions.NewLocalAuthenticator(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.SessionTTL)
	}
	return sessions.NewAPIAuthenticator(client, cfg.SessionTTL)
}

// sweep drops expired sessions and workspaces idle for longer than a
// session may live.
func sweep(ctx context.Context, m *sessions.Manager, ws *workspace.Workspace, idle time.Duration) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for range ticker.C {
		if n, err := m.Sweep(ctx); err != nil {
			logrus.WithField("error", err).Warn("session sweep failed")
		} else if n > 0 {
			logrus.WithField("count", n).Info("expired sessions removed")
		}
		ws.Sweep(ctx, idle, func(id string) bool { return m.Alive(ctx, id) })
	}
}
