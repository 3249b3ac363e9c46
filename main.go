package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/api"
	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/cache"
	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/config"
	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/middleware"
	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/migrate"
	"github.com/CBdGM/Projeto-Gest-o-de-Atendimentos/internal/seed"
)

func main() {
	cfg := config.Load()
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL não definida")
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("conexão postgres: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("pool postgres: %v", err)
	}
	if cfg.DBMaxConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DBMaxConns)
	}
	defer sqlDB.Close()
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}
	if err := migrate.Run(context.Background(), db, "migrations"); err != nil {
		log.Fatalf("migrations: %v", err)
	}
	if err := seed.Run(context.Background(), db); err != nil {
		log.Printf("seed (ignorado se já aplicado): %v", err)
	}

	// O front chama as rotas ora com ora sem a barra final.
	r := mux.NewRouter().StrictSlash(true)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	r.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"db unhealthy"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	}).Methods(http.MethodGet)

	h := &api.Handler{DB: db, Cfg: cfg, Cache: cache.New(30 * time.Second)}

	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", h.Refresh).Methods(http.MethodPost)

	protected := r.PathPrefix("/").Subrouter()
	protected.Use(middleware.RequireAuthMiddleware(cfg.JWTSecret))

	protected.HandleFunc("/clientes", h.ListClientes).Methods(http.MethodGet)
	protected.HandleFunc("/clientes", h.CreateCliente).Methods(http.MethodPost)
	protected.HandleFunc("/clientes/nome/{nome}", h.ClientesPorNome).Methods(http.MethodGet)
	protected.HandleFunc("/clientes/{id}", h.GetCliente).Methods(http.MethodGet)
	protected.HandleFunc("/clientes/{id}", h.UpdateCliente).Methods(http.MethodPut)
	protected.HandleFunc("/clientes/{id}", h.DeleteCliente).Methods(http.MethodDelete)

	protected.HandleFunc("/sessoes", h.ListSessoes).Methods(http.MethodGet)
	protected.HandleFunc("/sessoes", h.CreateSessao).Methods(http.MethodPost)
	protected.HandleFunc("/sessoes/cliente/{id}", h.ListSessoesDoCliente).Methods(http.MethodGet)
	protected.HandleFunc("/sessoes/{id}", h.GetSessao).Methods(http.MethodGet)
	protected.HandleFunc("/sessoes/{id}", h.UpdateSessao).Methods(http.MethodPut)
	protected.HandleFunc("/sessoes/{id}", h.DeleteSessao).Methods(http.MethodDelete)

	protected.HandleFunc("/historicos", h.ListHistoricos).Methods(http.MethodGet)
	protected.HandleFunc("/historicos", h.CreateHistorico).Methods(http.MethodPost)
	protected.HandleFunc("/historicos/cliente/{id}", h.ListHistoricosDoCliente).Methods(http.MethodGet)
	protected.HandleFunc("/historicos/{id}", h.UpdateHistorico).Methods(http.MethodPut)
	protected.HandleFunc("/historicos/{id}", h.DeleteHistorico).Methods(http.MethodDelete)

	protected.HandleFunc("/pagamentos", h.ListPagamentos).Methods(http.MethodGet)
	protected.HandleFunc("/pagamentos", h.CreatePagamento).Methods(http.MethodPost)
	protected.HandleFunc("/pagamentos/sessao/{id}", h.ListPagamentosDaSessao).Methods(http.MethodGet)
	protected.HandleFunc("/pagamentos/{id}", h.GetPagamento).Methods(http.MethodGet)
	protected.HandleFunc("/pagamentos/{id}", h.UpdatePagamento).Methods(http.MethodPut)
	protected.HandleFunc("/pagamentos/{id}", h.DeletePagamento).Methods(http.MethodDelete)

	protected.HandleFunc("/recibos/preview/{id}", h.PreviewRecibo).Methods(http.MethodGet)
	protected.HandleFunc("/recibos/recibo", h.Recibo).Methods(http.MethodGet)

	protected.HandleFunc("/dashboard/resumo-financeiro", h.ResumoFinanceiro).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard/proximas-sessoes", h.ProximasSessoes).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard/sessoes-amanha", h.SessoesAmanha).Methods(http.MethodGet)

	chain := middleware.Recover(middleware.RequestID(middleware.Timeout(cfg.RequestTimeoutSec)(middleware.CORS(cfg.CORSOrigins)(middleware.Gzip(r)))))

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      chain,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("backend listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
