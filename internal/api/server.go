package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/balbriggan-gardens/garden/internal/content"
	"github.com/balbriggan-gardens/garden/internal/domain"
	"github.com/balbriggan-gardens/garden/internal/forms"
	"github.com/balbriggan-gardens/garden/internal/logger"
	"github.com/balbriggan-gardens/garden/internal/web"
)

// maxFormBytes bounds the size of a posted form
const maxFormBytes = 64 << 10

// Options configures the site
type Options struct {
	Addr         string
	SiteTitle    string
	HomeTips     int
	HomePlants   int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server serves the community site pages and its JSON API
type Server struct {
	content  *content.Loader
	views    *web.Renderer
	recorder *forms.Recorder
	log      *logger.Logger
	opts     Options
	now      func() time.Time
}

// New creates a new Server
func New(loader *content.Loader, views *web.Renderer, recorder *forms.Recorder, log *logger.Logger, opts Options) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		content:  loader,
		views:    views,
		recorder: recorder,
		log:      log,
		opts:     opts,
		now:      time.Now,
	}
}

// Handler returns the site's routes wrapped in middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /{$}", s.home)
	mux.HandleFunc("GET /tips", s.tipsPage)
	mux.HandleFunc("GET /plants", s.plantsPage)
	mux.HandleFunc("GET /seasonal", s.seasonalPage)
	mux.HandleFunc("GET /videos", s.videosPage)
	mux.HandleFunc("GET /events", s.eventsPage)
	mux.HandleFunc("GET /contact", s.contactForm)
	mux.HandleFunc("POST /contact", s.submitContact)
	mux.HandleFunc("POST /subscribe", s.subscribe)

	// JSON API
	mux.HandleFunc("GET /api/tips", s.apiTips)
	mux.HandleFunc("GET /api/tips/{season}", s.apiTipsBySeason)
	mux.HandleFunc("GET /api/plants", s.apiPlants)
	mux.HandleFunc("GET /api/videos", s.apiVideos)
	mux.HandleFunc("GET /api/events", s.apiEvents)
	mux.HandleFunc("GET /api/season", s.apiSeason)

	// Health check
	mux.HandleFunc("GET /health", s.health)

	mux.Handle("GET /static/", web.Static())
	mux.HandleFunc("GET /", s.notFound)

	return withRequestID(withAccessLog(s.log, withCORS(mux)))
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting server", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) page(active string) web.Page {
	return web.Page{
		SiteTitle:     s.opts.SiteTitle,
		Active:        active,
		CurrentSeason: content.SeasonFor(s.now()),
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data web.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var buf bytes.Buffer
	if err := s.views.Render(&buf, name, data); err != nil {
		s.log.Error("render page", "request_id", RequestID(r.Context()), "page", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	data := s.page("home")
	data.Tips = content.Head(s.content.Tips(), s.opts.HomeTips)
	data.Plants = content.Head(s.content.Plants(), s.opts.HomePlants)
	s.render(w, r, http.StatusOK, "index.html", data)
}

func (s *Server) tipsPage(w http.ResponseWriter, r *http.Request) {
	data := s.page("tips")
	data.Tips = s.content.Tips()
	s.render(w, r, http.StatusOK, "tips.html", data)
}

func (s *Server) plantsPage(w http.ResponseWriter, r *http.Request) {
	plants := s.content.Plants()
	plantType := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type")))
	if plantType == "all" {
		plantType = ""
	}

	data := s.page("plants")
	data.PlantTypes = plantTypes(plants)
	data.PlantType = plantType
	data.Plants = content.FilterPlantsByType(plants, plantType)
	s.render(w, r, http.StatusOK, "plants.html", data)
}

func (s *Server) seasonalPage(w http.ResponseWriter, r *http.Request) {
	data := s.page("seasonal")
	data.Tips = content.FilterSeasonal(s.content.Tips())
	s.render(w, r, http.StatusOK, "seasonal.html", data)
}

func (s *Server) videosPage(w http.ResponseWriter, r *http.Request) {
	data := s.page("videos")
	data.Videos = s.content.Videos()
	s.render(w, r, http.StatusOK, "videos.html", data)
}

func (s *Server) eventsPage(w http.ResponseWriter, r *http.Request) {
	data := s.page("events")
	data.Events = content.Events()
	s.render(w, r, http.StatusOK, "events.html", data)
}

// badFormErrors is shown when a posted form cannot be read at all
var badFormErrors = forms.FieldErrors{"form": "Sorry, we couldn't read that form. Please try again."}

// parseForm reads a posted form of bounded size, logging why it failed
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.log.Warn("parse form", "request_id", RequestID(r.Context()), "path", r.URL.Path, "error", err)
		return false
	}
	return true
}

func (s *Server) contactForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "contact.html", s.page("contact"))
}

func (s *Server) submitContact(w http.ResponseWriter, r *http.Request) {
	data := s.page("contact")
	if !s.parseForm(w, r) {
		data.Errors = badFormErrors
		s.render(w, r, http.StatusBadRequest, "contact.html", data)
		return
	}

	data.Form = forms.ParseContact(r.PostForm)
	if errs := forms.ValidateContact(data.Form); errs != nil {
		data.Errors = errs
		s.render(w, r, http.StatusUnprocessableEntity, "contact.html", data)
		return
	}

	data.Reference = s.recorder.Contact(data.Form)
	data.Success = true
	data.Form = domain.Contact{}
	s.render(w, r, http.StatusOK, "contact.html", data)
}

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	data := s.page("")
	if !s.parseForm(w, r) {
		data.Errors = badFormErrors
		s.render(w, r, http.StatusBadRequest, "subscribe.html", data)
		return
	}

	sub := forms.ParseSubscription(r.PostForm)
	if errs := forms.ValidateSubscription(sub); errs != nil {
		data.Errors = errs
		s.render(w, r, http.StatusUnprocessableEntity, "subscribe.html", data)
		return
	}

	data.Reference = s.recorder.Subscribe(sub)
	data.Success = true
	s.render(w, r, http.StatusOK, "subscribe.html", data)
}

func (s *Server) apiTips(w http.ResponseWriter, r *http.Request) {
	tips := s.content.Tips()
	if v := r.URL.Query().Get("seasonal"); v != "" {
		seasonal, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "seasonal must be true or false")
			return
		}
		if seasonal {
			tips = content.FilterSeasonal(tips)
		}
	}
	writeJSON(w, http.StatusOK, tips)
}

func (s *Server) apiTipsBySeason(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, content.FilterBySeason(s.content.Tips(), r.PathValue("season")))
}

func (s *Server) apiPlants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, content.FilterPlantsByType(s.content.Plants(), r.URL.Query().Get("type")))
}

func (s *Server) apiVideos(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.content.Videos())
}

func (s *Server) apiEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, content.Events())
}

func (s *Server) apiSeason(w http.ResponseWriter, r *http.Request) {
	season := content.SeasonFor(s.now())
	writeJSON(w, http.StatusOK, map[string]string{
		"season": season,
		"label":  content.SeasonTitle(season),
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}

// plantTypes lists the distinct plant types, lowercased and sorted
func plantTypes(plants []domain.Plant) []string {
	seen := make(map[string]bool)
	var types []string
	for _, p := range plants {
		t := strings.ToLower(strings.TrimSpace(p.Type))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
