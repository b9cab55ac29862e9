package medications

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"medication-log/internal/middleware"
	"medication-log/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// Recorder recibe los eventos de alta. *metrics.Metrics lo implementa.
type Recorder interface {
	EntryAdded()
	SubmissionIgnored()
}

type nopRecorder struct{}

func (nopRecorder) EntryAdded()        {}
func (nopRecorder) SubmissionIgnored() {}

// RegisterRoutes monta / y /add. rec puede ser nil.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger, rec Recorder) {
	if rec == nil {
		rec = nopRecorder{}
	}
	r.Get("/", listEntriesHandler(svc, log))
	r.Post("/add", addEntryHandler(svc, log, rec))
}

type indexView struct {
	Entries []Entry
}

// listEntriesHandler godoc
// @Summary      List medication entries
// @Description  Renders an HTML page with every stored entry and the add form.
// @Tags         medications
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Failure      500  {string}  string  "internal error"
// @Router       / [get]
func listEntriesHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			requestLogger(log, r).Error("list entries failed", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// Render a buffer primero: si el template falla todavía podemos responder 500.
		var buf bytes.Buffer
		if err := indexTmpl.Execute(&buf, indexView{Entries: items}); err != nil {
			requestLogger(log, r).Error("render index failed", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}

// addEntryHandler godoc
// @Summary      Add a medication entry
// @Description  Stores the entry when both fields are present. Incomplete submissions are discarded silently; the response is always a redirect to the list.
// @Tags         medications
// @Accept       x-www-form-urlencoded
// @Param        name    formData  string  false  "Medication name"
// @Param        dosage  formData  string  false  "Dosage"
// @Success      302  {string}  string  "redirect to /"
// @Failure      500  {string}  string  "internal error"
// @Router       /add [post]
func addEntryHandler(svc *Service, log logger.Logger, rec Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// PostFormValue ignora errores de parseo: un body roto cuenta como campos ausentes.
		in := AddInput{
			MedicationName: r.PostFormValue("name"),
			Dosage:         r.PostFormValue("dosage"),
		}

		e, err := svc.Add(r.Context(), in)
		switch {
		case errors.Is(err, ErrInvalidInput):
			rec.SubmissionIgnored()
			requestLogger(log, r).Debug("add submission ignored", map[string]any{
				"has_name":   in.MedicationName != "",
				"has_dosage": in.Dosage != "",
			})
		case err != nil:
			requestLogger(log, r).Error("insert entry failed", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		default:
			rec.EntryAdded()
			requestLogger(log, r).Info("entry added", map[string]any{"id": e.ID})
		}

		http.Redirect(w, r, "/", http.StatusFound)
	}
}

func requestLogger(log logger.Logger, r *http.Request) logger.Logger {
	if id := middleware.GetRequestID(r.Context()); id != "" {
		return log.With(map[string]any{"request_id": id})
	}
	return log
}
