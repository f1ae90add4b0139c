package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	formflow "github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/components/locations"
	"github.com/goliatone/go-formflow/pkg/fare"
	"github.com/goliatone/go-formflow/pkg/orchestrator"
)

// formServer serves the embedded flows over HTTP: GET renders the form,
// POST funnels the submission through the flow pipeline and re-renders with
// either inline errors or the confirmation view.
type formServer struct {
	generator *orchestrator.Orchestrator
	estimator *fare.Estimator
	logger    *log.Logger
}

func (s *formServer) routes() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/book", s.renderPage(formflow.FlowBooking)).Methods(http.MethodGet)
	router.HandleFunc("/book", s.submitPage(formflow.FlowBooking)).Methods(http.MethodPost)
	router.HandleFunc("/contact", s.renderPage(formflow.FlowContact)).Methods(http.MethodGet)
	router.HandleFunc("/contact", s.submitPage(formflow.FlowContact)).Methods(http.MethodPost)
	router.HandleFunc("/api/estimate", s.handleEstimate).Methods(http.MethodGet)
	router.Handle(locations.MountPath(""), locations.Handler()).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	router.PathPrefix("/assets/").Handler(http.StripPrefix("/assets/",
		http.FileServer(http.FS(formflow.StaticAssetsFS()))))

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/book", http.StatusFound)
	}).Methods(http.MethodGet)

	return router
}

// renderPage shows the editable form. Query parameters prefill matching
// fields, so /book?service=comfort lands with the service picked and its
// fare already quoted.
func (s *formServer) renderPage(operationID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := s.generator.Flow(r.Context(), operationID)
		if err != nil {
			s.renderError(w, operationID, err)
			return
		}

		options := formflow.RenderOptions{}
		if values := f.PrefillValues(r.URL.Query()); len(values) > 0 {
			options.Values = values
			if quote, ok := f.Estimate(values[formflow.ServiceField]); ok {
				options.Quote = &quote
			}
		}
		s.writePage(w, r, operationID, options, http.StatusOK)
	}
}

// submitPage validates the posted values. Rejected submissions re-render the
// form with the raw input and every failing field's message; accepted ones
// render the confirmation view.
func (s *formServer) submitPage(operationID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form payload", http.StatusBadRequest)
			return
		}

		f, err := s.generator.Flow(r.Context(), operationID)
		if err != nil {
			s.renderError(w, operationID, err)
			return
		}

		session := f.NewSession()
		session.SetAll(postedValues(r.PostForm))
		result := session.Submit()

		if !result.OK() {
			options := formflow.RenderOptions{
				Values: result.Values,
				Errors: result.Errors,
			}
			if quote, ok := f.Estimate(result.Values[formflow.ServiceField]); ok {
				options.Quote = &quote
			}
			s.writePage(w, r, operationID, options, http.StatusUnprocessableEntity)
			return
		}

		if result.Reference != "" {
			s.logger.Printf("accepted %s reference=%s", operationID, result.Reference)
		} else {
			s.logger.Printf("accepted %s", operationID)
		}

		feedback := orchestrator.NewFeedback(f.Form(), result, f.ResetDelay())
		s.writePage(w, r, operationID, formflow.RenderOptions{Feedback: feedback}, http.StatusOK)
	}
}

// handleEstimate quotes a fare for ?service=<key>. Unknown services get a 404
// so the client script can clear its estimate panel.
func (s *formServer) handleEstimate(w http.ResponseWriter, r *http.Request) {
	service := strings.TrimSpace(r.URL.Query().Get("service"))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	quote, err := s.estimator.QuoteFor(service)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, fare.ErrNoEstimate) {
			status = http.StatusNotFound
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "no estimate for this service"})
		return
	}
	_ = json.NewEncoder(w).Encode(quote)
}

func (s *formServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *formServer) writePage(w http.ResponseWriter, r *http.Request, operationID string, options formflow.RenderOptions, status int) {
	output, err := s.generator.Generate(r.Context(), formflow.Request{
		OperationID:   operationID,
		RenderOptions: options,
	})
	if err != nil {
		s.renderError(w, operationID, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(output)
}

func (s *formServer) renderError(w http.ResponseWriter, operationID string, err error) {
	if errors.Is(err, orchestrator.ErrUnknownOperation) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	s.logger.Printf("render %s: %v", operationID, err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// postedValues flattens a form body to the first value per key, which is how
// the flow pipeline expects its input. Browsers submit one value per control;
// repeated keys would mean a crafted payload, and the extras are ignored.
func postedValues(form url.Values) map[string]any {
	values := make(map[string]any, len(form))
	for name := range form {
		values[name] = form.Get(name)
	}
	return values
}
