package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/marquee/internal/config"
	"github.com/Nixie-Tech-LLC/marquee/internal/db"
	"github.com/Nixie-Tech-LLC/marquee/internal/http/api"
	authapi "github.com/Nixie-Tech-LLC/marquee/internal/http/api/admin/auth/endpoints"
	controlapi "github.com/Nixie-Tech-LLC/marquee/internal/http/api/admin/control/endpoints"
	"github.com/Nixie-Tech-LLC/marquee/internal/metrics"
	"github.com/Nixie-Tech-LLC/marquee/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store db.Store, storageSystem storage.Storage, m *metrics.Metrics) {
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))
	r.Use(m.Middleware())

	r.GET("/metrics", gin.WrapH(m.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": store.Backend()})
	})

	authCfg := authapi.Config{
		JWTSecret:        cfg.JWTSecret,
		SessionTTL:       cfg.SessionTTL,
		MaxLoginAttempts: cfg.MaxLoginAttempts,
		LockoutDuration:  cfg.LockoutDuration,
	}

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
		Auth:   false,
	},
		authapi.AuthPublicModule(authCfg, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
		Store:     store,
	},
		// session endpoints that require auth
		authapi.AuthSessionModule(authCfg, store),
		// control modules
		controlapi.TenantModule(store),
		controlapi.DeviceModule(store),
		controlapi.MediaModule(store, storageSystem),
		controlapi.LayoutModule(store),
		controlapi.PlaylistModule(store),
		controlapi.ScheduleModule(store),
		controlapi.WidgetModule(store),
	)

	// Static content
	if !cfg.UseSpaces {
		r.Static("/uploads", cfg.UploadDir)
	}
	r.GET("/widgets/*filepath", serveWidget(cfg.WidgetsDir))
}

// serveWidget serves widget bundles; a directory resolves to its index.html.
// Content is served directly so template urls ending in index.html are not
// redirected.
func serveWidget(root string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rel := filepath.Clean("/" + strings.TrimPrefix(c.Param("filepath"), "/"))
		full := filepath.Join(root, rel)

		info, err := os.Stat(full)
		if err == nil && info.IsDir() {
			full = filepath.Join(full, "index.html")
			info, err = os.Stat(full)
		}
		if err != nil || info.IsDir() {
			c.Status(http.StatusNotFound)
			return
		}

		f, err := os.Open(full)
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		defer f.Close()
		http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
	}
}
