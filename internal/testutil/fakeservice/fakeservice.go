// Package fakeservice is an in-memory stand-in for the user and task services,
// served over httptest for client and end-to-end tests.
package fakeservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SessionCookie is the name of the session cookie set on sign-in.
const SessionCookie = "token"

// Request is one request observed by the service.
type Request struct {
	Method    string
	Path      string
	Query     string
	RequestID string
	UserAgent string
}

type account struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	password  string
}

// StoryRecord is a story as stored by the service. Tags are kept as submitted.
type StoryRecord struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
	UserID      string `json:"userId"`
}

// Service holds the fake state.
type Service struct {
	mu          sync.Mutex
	accounts    map[string]*account // by email
	sessions    map[string]string   // token -> account id
	stories     []StoryRecord       // newest first
	rateLimited int
	requests    []Request
}

// New returns an empty Service.
func New() *Service {
	return &Service{
		accounts: make(map[string]*account),
		sessions: make(map[string]string),
	}
}

// Start serves s on an httptest server closed at the end of the test.
func Start(tb testing.TB) (*Service, *httptest.Server) {
	tb.Helper()
	s := New()
	srv := httptest.NewServer(s.Router())
	tb.Cleanup(srv.Close)
	return s, srv
}

// UserURL returns the user service base URL on srv.
func UserURL(srv *httptest.Server) string {
	return srv.URL + "/api/v1/users/"
}

// TaskURL returns the task service base URL on srv.
func TaskURL(srv *httptest.Server) string {
	return srv.URL + "/api/v1/tasks/"
}

// Router builds the routing table for both services.
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record, s.throttle)

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/signin", s.signin)
		r.Post("/signup", s.signup)
		r.Get("/view", s.view)
		r.Get("/logout", s.logout)
	})
	r.Route("/api/v1/tasks", func(r chi.Router) {
		r.Get("/", s.listAll)
		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)
			r.Get("/show", s.listMine)
			r.Post("/create", s.create)
			r.Delete("/{id}", s.remove)
		})
	})
	return r
}

// AddUser registers an account and returns its id.
func (s *Service) AddUser(firstName, lastName, email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &account{
		ID:        uuid.New().String(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		password:  password,
	}
	s.accounts[email] = a
	return a.ID
}

// AddStory stores a story as the newest entry and returns it.
func (s *Service) AddStory(userID, title, description, tags string) StoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := StoryRecord{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Tags:        tags,
		UserID:      userID,
	}
	s.stories = append([]StoryRecord{rec}, s.stories...)
	return rec
}

// Stories returns every stored story, newest first.
func (s *Service) Stories() []StoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]StoryRecord(nil), s.stories...)
}

// RateLimitNext makes the next n requests fail with HTTP 429.
func (s *Service) RateLimitNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rateLimited = n
}

// Requests returns the requests observed so far.
func (s *Service) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Sessions returns the number of live sessions.
func (s *Service) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Service) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.RawQuery,
			RequestID: r.Header.Get("X-Request-ID"),
			UserAgent: r.Header.Get("User-Agent"),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Service) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		limited := s.rateLimited > 0
		if limited {
			s.rateLimited--
		}
		s.mu.Unlock()
		if limited {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"msg": "Too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type ctxKey struct{}

func (s *Service) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.sessionUser(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"msg": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func userFrom(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

func (s *Service) sessionUser(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.sessions[c.Value]
	return id, ok
}

func (s *Service) signin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"data": "Malformed request"})
		return
	}

	s.mu.Lock()
	a, ok := s.accounts[req.Email]
	if !ok || a.password != req.Password {
		s.mu.Unlock()
		writeJSON(w, http.StatusBadRequest, map[string]string{"data": "Invalid email or password"})
		return
	}
	token := uuid.New().String()
	s.sessions[token] = a.ID
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: token, Path: "/", HttpOnly: true, MaxAge: 3600})
	writeJSON(w, http.StatusOK, map[string]string{"data": "Signed in"})
}

func (s *Service) signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "All fields are required"})
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[req.Email]; exists {
		s.mu.Unlock()
		writeJSON(w, http.StatusConflict, map[string]string{"data": "User already exists"})
		return
	}
	a := &account{
		ID:        uuid.New().String(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		password:  req.Password,
	}
	s.accounts[a.Email] = a
	token := uuid.New().String()
	s.sessions[token] = a.ID
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: token, Path: "/", HttpOnly: true, MaxAge: 3600})
	writeJSON(w, http.StatusCreated, map[string]string{"data": "User created"})
}

func (s *Service) view(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionUser(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"msg": "Unauthorized"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.ID == id {
			writeJSON(w, http.StatusOK, a)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"msg": "User not found"})
}

func (s *Service) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		s.mu.Lock()
		delete(s.sessions, c.Value)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]string{"data": "Logged out"})
}

func (s *Service) listAll(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, r, "")
}

func (s *Service) listMine(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, r, userFrom(r))
}

func (s *Service) writePage(w http.ResponseWriter, r *http.Request, owner string) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	s.mu.Lock()
	var matched []StoryRecord
	for _, rec := range s.stories {
		if owner == "" || rec.UserID == owner {
			matched = append(matched, rec)
		}
	}
	s.mu.Unlock()

	start := min((page-1)*limit, len(matched))
	end := min(start+limit, len(matched))
	data := matched[start:end]
	if data == nil {
		data = []StoryRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

func (s *Service) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Tags        string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "Title and description are required"})
		return
	}
	rec := s.AddStory(userFrom(r), req.Title, req.Description, req.Tags)
	writeJSON(w, http.StatusCreated, map[string]any{"data": rec})
}

func (s *Service) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	owner := userFrom(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.stories {
		if rec.ID != id {
			continue
		}
		if rec.UserID != owner {
			writeJSON(w, http.StatusForbidden, map[string]string{"msg": "Not your story"})
			return
		}
		s.stories = append(s.stories[:i], s.stories[i+1:]...)
		writeJSON(w, http.StatusOK, map[string]string{"msg": "Story deleted"})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"msg": "Story not found"})
}

func queryInt(r *http.Request, key string, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
