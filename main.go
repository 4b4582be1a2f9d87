package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	auth "WindSE/internal/auth"
	"WindSE/internal/calc/bos"
	"WindSE/internal/calc/install"
	"WindSE/internal/calc/premium/autodesign"
	"WindSE/internal/calc/premium/batch"
	"WindSE/internal/calc/premium/importer"
	"WindSE/internal/calc/premium/recommend"
	"WindSE/internal/calc/report"
	"WindSE/internal/calc/servo"
	"WindSE/internal/calc/tower"
	"WindSE/internal/config"
	"WindSE/internal/history"
	repo "WindSE/internal/repo"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   sw.status,
			"duration": time.Since(start),
		}).Info("request")
	})
}

// Store is what the service needs from persistence.
type Store interface {
	repo.Repository
	repo.RunRepository
}

func HandleList(router *mux.Router, cfg config.Config, store Store) {
	authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), Repo: store, SecureCookie: cfg.TLS()}
	runs := &history.Recorder{Repo: store}
	historyH := &history.Handler{Repo: store}

	limiter := auth.NewClientLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst, cfg.RateIdle)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")
	api.HandleFunc("/logout", authEnv.LogoutHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/runs", historyH.List).Methods("GET")
	secureApi.HandleFunc("/runs/{id}", historyH.Get).Methods("GET")

	collectionH := &bos.Handler{Runs: runs}
	installH := &install.Handler{Runs: runs}
	towerH := &tower.Handler{Runs: runs}
	servoH := &servo.Handler{Runs: runs}
	sizingH := &autodesign.Handler{Runs: runs}
	batchH := &batch.Handler{Runs: runs}
	importH := &importer.Handler{Runs: runs}
	recommendH := &recommend.Handler{Runs: runs}
	reportH := &report.Handler{}

	secureApi.HandleFunc("/tools/collection/calc", collectionH.Collection).Methods("POST")
	secureApi.HandleFunc("/tools/collection/import", importH.Collection).Methods("POST")
	secureApi.HandleFunc("/tools/collection/cable", recommendH.Cable).Methods("POST")
	secureApi.HandleFunc("/tools/install/process-times", installH.ProcessTimes).Methods("GET")
	secureApi.HandleFunc("/tools/install/schedule", installH.Schedule).Methods("POST")
	secureApi.HandleFunc("/tools/tower/calc", towerH.Analyze).Methods("POST")
	secureApi.HandleFunc("/tools/tower/discretize", towerH.Discretize).Methods("POST")
	secureApi.HandleFunc("/tools/tower/size", sizingH.Tower).Methods("POST")
	secureApi.HandleFunc("/tools/tower/import", importH.Tower).Methods("POST")
	secureApi.HandleFunc("/tools/powercurve/calc", servoH.PowerCurve).Methods("POST")
	secureApi.HandleFunc("/tools/batch/calc", batchH.Run).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/tools/report/xlsx", reportH.Spreadsheet).Methods("POST")
	secureApi.HandleFunc("/tools/report/chart", reportH.Chart).Methods("POST")

	authFileServer := http.FileServer(http.Dir("./static/auth"))
	router.PathPrefix("/auth/").
		Handler(authEnv.RedirectIfLoggedIn(http.StripPrefix("/auth", authFileServer)))
	mainFileServer := http.FileServer(http.Dir("./static/main"))
	router.PathPrefix("/").
		Handler(mainFileServer)
}

// openStore connects to Postgres when DATABASE_URL is set and falls back to
// process memory otherwise. The returned close func is never nil.
func openStore(ctx context.Context, cfg config.Config) (Store, func() error, error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL is not set, runs and users are kept in memory")
		return repo.NewMemory(), func() error { return nil }, nil
	}
	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	store := repo.NewPostgresUserDB(db)
	if err := store.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return store, db.Close, nil
}

func NewHandler(cfg config.Config, store Store) http.Handler {
	router := mux.NewRouter()
	HandleList(router, cfg, store)
	return RequestLogger(CORS(router))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := config.ConfigureLogger(cfg); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("open store")
	}
	defer closeStore()

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewHandler(cfg, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.WithFields(log.Fields{"addr": cfg.Addr, "tls": cfg.TLS()}).Info("starting server")
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server shutdown")
	}
	log.Info("server stopped")

	wg.Wait()
}

var (
	_ Store = (*repo.PostgresUserRepository)(nil)
	_ Store = (*repo.MemoryRepository)(nil)
)
