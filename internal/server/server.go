package server

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thedomainai/pl-sanky-diagram/internal/config"
	"github.com/thedomainai/pl-sanky-diagram/internal/extract"
	"github.com/thedomainai/pl-sanky-diagram/internal/server/handlers"
	"github.com/thedomainai/pl-sanky-diagram/internal/service/store"
)

//go:embed static
var staticFiles embed.FS

// Server HTTPサーバ
type Server struct {
	router   *gin.Engine
	store    *store.MemoryStore
	handlers *handlers.Handlers
}

// NewServer サーバを作成する
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	memStore := store.NewMemoryStore()
	extractor := extract.NewClient(cfg.Extract.Model, time.Duration(cfg.Extract.TimeoutSec)*time.Second)
	h := handlers.NewHandlers(memStore, extractor, cfg)

	s := &Server{
		router:   gin.Default(),
		store:    memStore,
		handlers: h,
	}

	s.setupRoutes(devMode)

	return s
}

// setupRoutes ルーティングを設定する
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.handlers.RegisterRoutes(api)
	}

	if devMode {
		// 開発モード: フロントの開発サーバへ転送
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
		return
	}

	sub, _ := fs.Sub(staticFiles, "static")

	s.router.GET("/", func(c *gin.Context) {
		data, _ := fs.ReadFile(sub, "index.html")
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	})

	s.router.NoRoute(func(c *gin.Context) {
		data, _ := fs.ReadFile(sub, "index.html")
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	})
}

// Run サーバを起動する
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// GetStore 保管ストアを返す（テスト用）
func (s *Server) GetStore() *store.MemoryStore {
	return s.store
}
