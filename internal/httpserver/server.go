package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/fdg312/macro-hub/internal/blob"
	"github.com/fdg312/macro-hub/internal/config"
	"github.com/fdg312/macro-hub/internal/days"
	"github.com/fdg312/macro-hub/internal/reports"
	"github.com/fdg312/macro-hub/internal/storage"
	"github.com/fdg312/macro-hub/internal/storage/memory"
	"github.com/fdg312/macro-hub/internal/storage/postgres"
	"github.com/fdg312/macro-hub/internal/web"
)

// Storage — общий интерфейс хранилища (memory или postgres)
type Storage interface {
	Close() error
}

// Server представляет HTTP сервер
type Server struct {
	config  *config.Config
	mux     *http.ServeMux
	storage Storage
}

// New создаёт новый HTTP сервер
func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	// Инициализируем storage
	s.initStorage()

	// Регистрируем маршруты
	s.routes()
	return s
}

// initStorage инициализирует storage (Memory или Postgres)
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("Используется in-memory storage")
		s.storage = memory.New()
		return
	}

	log.Println("Подключение к PostgreSQL...")
	pgStorage, err := postgres.New(context.Background(), s.config.DatabaseURL)
	if err != nil {
		log.Printf("Ошибка подключения к PostgreSQL: %v", err)
		log.Println("Fallback на in-memory storage")
		s.storage = memory.New()
		return
	}

	log.Println("PostgreSQL подключен успешно")
	s.storage = pgStorage
}

// routes регистрирует маршруты
func (s *Server) routes() {
	// Health check
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// Day records API
	dayStorage := s.getDayStorage()
	daysService := days.NewService(dayStorage)
	daysHandler := days.NewHandler(daysService)

	// GET /api/day - day record for a date (or the earliest without filter)
	s.mux.HandleFunc("GET /api/day", daysHandler.HandleGetDay)

	// POST /api/day - create or fully replace a day record
	s.mux.HandleFunc("POST /api/day", daysHandler.HandleUpsertDay)

	// Reports API
	blobStore := s.initBlobStore()
	reportsService := reports.NewService(
		s.getReportsStorage(),
		dayStorage,
		blobStore,
		s.config.ReportsMaxRangeDays,
		s.config.Blob.S3.PresignTTLSeconds,
	)
	reportsHandler := reports.NewHandlers(reportsService)

	// POST /api/reports - generate report
	s.mux.HandleFunc("POST /api/reports", reportsHandler.HandleCreate)

	// GET /api/reports - list reports
	s.mux.HandleFunc("GET /api/reports", reportsHandler.HandleList)

	// GET /api/reports/{id}/download - download report
	s.mux.HandleFunc("GET /api/reports/{id}/download", reportsHandler.HandleDownload)

	// DELETE /api/reports/{id} - delete report
	s.mux.HandleFunc("DELETE /api/reports/{id}", reportsHandler.HandleDelete)

	// Web pages
	webHandler := web.NewHandler()
	s.mux.HandleFunc("GET /{$}", webHandler.HandleIndex)
	s.mux.HandleFunc("GET /about", webHandler.HandleAbout)
}

// getDayStorage returns the day records storage based on storage type
func (s *Server) getDayStorage() storage.DayStorage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetDayStorage()
	case *postgres.PostgresStorage:
		return st.GetDayStorage()
	default:
		log.Fatal("unknown storage type")
		return nil
	}
}

// getReportsStorage returns the reports storage based on storage type
func (s *Server) getReportsStorage() storage.ReportsStorage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetReportsStorage()
	case *postgres.PostgresStorage:
		return st.GetReportsStorage()
	default:
		log.Fatal("unknown storage type")
		return nil
	}
}

// initBlobStore initializes the reports blob store per BLOB_MODE.
func (s *Server) initBlobStore() blob.Store {
	log.Printf("INFO blob: initializing store (BLOB_MODE=%s)", s.config.Blob.Mode)
	store, mode, err := blob.NewBlobStore(s.config.Blob, log.Default())
	if err != nil {
		log.Fatalf("FATAL blob: failed to initialize store: %v", err)
	}
	log.Printf("INFO blob: mode: %s", mode)
	return store
}

// handleHealthz возвращает статус сервера
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Handler возвращает полный обработчик с middleware
func (s *Server) Handler() http.Handler {
	// Build middleware chain (outermost first): CORS → Rate Limit → Router
	var handler http.Handler = s.mux
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)
	return handler
}

// Start запускает HTTP сервер
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	handler := s.Handler()

	log.Printf("Сервер запущен на http://localhost%s\n", addr)
	log.Printf("Health check: http://localhost%s/healthz\n", addr)
	log.Printf("Day API: http://localhost%s/api/day\n", addr)

	return http.ListenAndServe(addr, handler)
}

// Close закрывает storage и освобождает ресурсы
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}
