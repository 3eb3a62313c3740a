package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sngm3741/latex-free-eats/api/internal/config"
	"github.com/sngm3741/latex-free-eats/api/internal/infrastructure/places"
	"github.com/sngm3741/latex-free-eats/api/internal/infrastructure/ratelimit"
	"github.com/sngm3741/latex-free-eats/api/internal/infrastructure/storage"
	commonhttp "github.com/sngm3741/latex-free-eats/api/internal/interfaces/http/common"
	publichttp "github.com/sngm3741/latex-free-eats/api/internal/interfaces/http/public"
	publicapp "github.com/sngm3741/latex-free-eats/api/internal/public/application"
)

// Server は HTTP サーバーのライフサイクルを管理し、各ハンドラへ依存注入するコンポジションルート。
type Server struct {
	logger         *log.Logger
	backend        *storage.Backend
	limiter        *ratelimit.FixedWindowLimiter
	publicHandler  *publichttp.Handler
	addr           string
	allowedOrigins []string
}

// Run はHTTPサーバーを起動し、シグナル受信まで待機する。
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP サーバー起動: http://%s (store=%s)", s.addr, s.backend.Driver)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// Router はミドルウェアとルーティングを組み立てる。/api 配下に公開エンドポイントを載せる。
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())
	router.Route("/api", s.publicHandler.Register)
	return router
}

// withCORS は許可されたオリジン情報をもとに CORS ヘッダーを付与するミドルウェアを返す。
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed は指定された Origin が許可リストに含まれるか判定する。
func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
	Time   string `json:"time,omitempty"`
	Error  string `json:"error,omitempty"`
}

// healthHandler はストアへの疎通確認のみを行い、監視系からのヘルスチェックに応える。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.backend.Submissions.Ping(ctx); err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, healthResponse{
				Status: "degraded",
				Store:  s.backend.Driver,
				Error:  err.Error(),
			})
			return
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, healthResponse{
			Status: "ok",
			Store:  s.backend.Driver,
			Time:   time.Now().Format(time.RFC3339),
		})
	}
}

// shutdown はストアと Redis をタイムアウト付きで切断する。
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.backend.Close(shutdownCtx); err != nil {
		s.logger.Printf("ストア切断時にエラー: %v", err)
	}
	if err := s.limiter.Close(); err != nil {
		s.logger.Printf("Redis 切断時にエラー: %v", err)
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.shutdown(context.Background())
			srv.logger.Fatalf("サーバーが異常終了: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("シグナル %s を受信。サーバー停止処理を開始します。", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("サーバー停止時にエラー: %v", err)
		}
	}

	srv.shutdown(context.Background())
}

// New は Config と接続済みストアを受け取り、アプリケーションサービスとハンドラを組み立てた Server を返す。
func New(cfg config.Config, backend *storage.Backend) *Server {
	srv := &Server{
		logger:         cfg.ServerLog,
		backend:        backend,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}

	var submitLimiter commonhttp.Limiter
	if cfg.RedisAddr != "" {
		limiter, err := ratelimit.NewRedisFixedWindowLimiter(cfg.RedisAddr, cfg.RedisPassword, "", cfg.SubmitRateLimit, time.Minute)
		if err != nil {
			cfg.ServerLog.Printf("レート制限を無効化します: %v", err)
		} else {
			srv.limiter = limiter
			submitLimiter = limiter
		}
	}

	lookup := places.New(cfg.GooglePlacesAPIKey, places.Options{
		SearchArea: cfg.PlacesSearchArea,
		Timeout:    cfg.PlacesTimeout,
	})
	if !lookup.Live() {
		cfg.ServerLog.Printf("GOOGLE_PLACES_API_KEY 未設定のためサンプルデータを返します")
	}

	repo := backend.Submissions
	srv.publicHandler = publichttp.NewHandler(publichttp.Config{
		Logger:             cfg.ServerLog,
		SubmissionQueries:  publicapp.NewSubmissionQueryService(repo),
		SubmissionCommands: publicapp.NewSubmissionCommandService(repo),
		RestaurantQueries:  publicapp.NewRestaurantQueryService(lookup, repo),
		SubmitLimiter:      submitLimiter,
	})

	return srv
}
