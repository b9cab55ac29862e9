package router

import (
	"net/http"

	_ "medication-log/docs"
	mem "medication-log/internal/adapters/storage/memory"
	"medication-log/internal/adapters/storage/gormstore"
	"medication-log/internal/domain/medications"
	"medication-log/internal/middleware"
	"medication-log/internal/platform/logger"
	"medication-log/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"gorm.io/gorm"
)

type Options struct {
	Logger logger.Logger // nil => Nop

	// Prioridad: Repo explícito, luego DB (gorm), si no in-memory.
	Repo medications.Repository
	DB   *gorm.DB

	Metrics *metrics.Metrics // nil => instancia nueva
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	r := newMux(log, m)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	repo := opts.Repo
	switch {
	case repo != nil:
	case opts.DB != nil:
		repo = gormstore.NewEntriesRepo(opts.DB)
	default:
		repo = mem.NewEntriesRepo()
	}

	medications.RegisterRoutes(r, medications.NewService(repo), log, m)

	return r
}

// newMux arma la cadena de middlewares. Recover va por dentro de
// InstrumentHandler para que los 500 por panic se cuenten.
func newMux(log logger.Logger, m *metrics.Metrics) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(m.InstrumentHandler)
	r.Use(middleware.Recover(log))

	return r
}
