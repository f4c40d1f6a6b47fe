// Package apitest provides an in-process stand-in for the document backend.
// It mirrors the REST surface the client consumes (routes, envelopes,
// bearer-token enforcement and error payloads) closely enough for tests to
// exercise the full client stack without a network.
package apitest

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"docuflow/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

type account struct {
	user     domain.User
	password string
}

// Server is an in-memory document backend.
type Server struct {
	mu       sync.Mutex
	accounts map[string]*account // keyed by email
	tokens   map[string]string   // token -> user id
	docs     []*domain.Document
	now      time.Time
}

// NewServer creates an empty fake backend.
func NewServer() *Server {
	return &Server{
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
		now:      time.Now().UTC().Truncate(time.Second),
	}
}

// Handler returns the HTTP handler, CORS-wrapped the way the real backend
// serves browser clients.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
	api.HandleFunc("/user/register", s.handleRegister).Methods("POST")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(s.authMiddleware)
	protected.HandleFunc("/user", s.handleCurrentUser).Methods("GET")
	protected.HandleFunc("/user/users", s.handleListUsers).Methods("GET")
	protected.HandleFunc("/document", s.handleListDocuments).Methods("GET")
	protected.HandleFunc("/document", s.handleUpload).Methods("POST")
	protected.HandleFunc("/document/{id}", s.handleGetDocument).Methods("GET")
	protected.HandleFunc("/document/{id}", s.handleRename).Methods("PATCH")
	protected.HandleFunc("/document/{id}", s.handleDelete).Methods("DELETE")
	protected.HandleFunc("/document/{id}/send-to-review", s.handleSendToReview).Methods("POST")
	protected.HandleFunc("/document/{id}/revoke-review", s.handleRevokeReview).Methods("POST")
	protected.HandleFunc("/document/{id}/change-status", s.handleChangeStatus).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:4200"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler(router)
}

// SeedUser registers a user with a password and returns the user id.
func (s *Server) SeedUser(user domain.User, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	s.accounts[user.Email] = &account{user: user, password: password}
	return user.ID
}

// TokenFor mints a bearer token for a seeded user's email.
func (s *Server) TokenFor(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[email]
	if !ok {
		return ""
	}
	token := uuid.NewString()
	s.tokens[token] = acct.user.ID
	return token
}

// SeedDocument stores a document, filling in id and timestamps when unset,
// and returns the id.
func (s *Server) SeedDocument(doc domain.Document) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = s.tick()
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = doc.CreatedAt
	}
	s.docs = append(s.docs, &doc)
	return doc.ID
}

// Document returns a copy of the stored document, or nil.
func (s *Server) Document(id string) *domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc := s.findLocked(id); doc != nil {
		copied := *doc
		return &copied
	}
	return nil
}

// tick returns strictly increasing timestamps so updatedAt sorting is stable.
func (s *Server) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *Server) findLocked(id string) *domain.Document {
	for _, doc := range s.docs {
		if doc.ID == id {
			return doc
		}
	}
	return nil
}

func (s *Server) userByIDLocked(id string) *domain.User {
	for _, acct := range s.accounts {
		if acct.user.ID == id {
			return &acct.user
		}
	}
	return nil
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.Header.Get("Authorization"), " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}
		s.mu.Lock()
		_, ok := s.tokens[parts[1]]
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) principal(r *http.Request) *domain.User {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[parts[1]]
	if !ok {
		return nil
	}
	return s.userByIDLocked(userID)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload domain.LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	acct, ok := s.accounts[payload.Email]
	if !ok || acct.password != payload.Password {
		s.mu.Unlock()
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	token := uuid.NewString()
	s.tokens[token] = acct.user.ID
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, domain.LoginResponse{AccessToken: token})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload domain.RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var messages []string
	if payload.FullName == "" {
		messages = append(messages, "fullName should not be empty")
	}
	if payload.Email == "" {
		messages = append(messages, "email should not be empty")
	}
	if len(payload.Password) < 6 {
		messages = append(messages, "password must be longer than or equal to 6 characters")
	}
	if payload.Role != domain.RoleUser && payload.Role != domain.RoleReviewer {
		messages = append(messages, "role must be one of USER, REVIEWER")
	}
	s.mu.Lock()
	if _, exists := s.accounts[payload.Email]; exists {
		messages = append(messages, "email already taken")
	}
	if len(messages) > 0 {
		s.mu.Unlock()
		writeMessages(w, http.StatusUnprocessableEntity, messages)
		return
	}
	s.accounts[payload.Email] = &account{
		user: domain.User{
			ID:       uuid.NewString(),
			Email:    payload.Email,
			FullName: payload.FullName,
			Role:     payload.Role,
		},
		password: payload.Password,
	}
	s.mu.Unlock()
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user := s.principal(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r, 1, 10)

	s.mu.Lock()
	users := make([]domain.User, 0, len(s.accounts))
	for _, acct := range s.accounts {
		users = append(users, acct.user)
	}
	s.mu.Unlock()

	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	writeJSON(w, http.StatusOK, domain.UserListResponse{Results: paginate(users, page, size)})
}

// handleListDocuments applies status/creator filters and pass-through
// pagination. Deliberately no DRAFT exclusion for reviewers: that rule lives
// client-side, and tests depend on observing it there.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r, 1, 10)
	status := r.URL.Query().Get("status")
	creatorID := r.URL.Query().Get("creatorId")
	creatorEmail := r.URL.Query().Get("creatorEmail")
	sortSpec := r.URL.Query().Get("sort")

	s.mu.Lock()
	filtered := make([]domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		if status != "" && string(doc.Status) != status {
			continue
		}
		if creatorID != "" && doc.Creator.ID != creatorID {
			continue
		}
		if creatorEmail != "" && doc.Creator.Email != creatorEmail {
			continue
		}
		filtered = append(filtered, *doc)
	}
	s.mu.Unlock()

	applySort(filtered, sortSpec)
	writeJSON(w, http.StatusOK, domain.DocumentListResponse{
		Results: paginate(filtered, page, size),
		Count:   len(filtered),
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	user := s.principal(r)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	name := r.FormValue("name")
	status := domain.DocumentStatus(r.FormValue("status"))
	file, header, err := r.FormFile("file")
	if err != nil {
		writeMessages(w, http.StatusUnprocessableEntity, []string{"file should not be empty"})
		return
	}
	file.Close()
	if name == "" {
		writeMessages(w, http.StatusUnprocessableEntity, []string{"name should not be empty"})
		return
	}
	if !status.IsValid() {
		writeMessages(w, http.StatusUnprocessableEntity, []string{"status must be a valid document status"})
		return
	}

	s.mu.Lock()
	doc := &domain.Document{
		ID:        uuid.NewString(),
		Name:      name,
		Status:    status,
		FileURL:   "https://files.example.com/" + header.Filename,
		Creator:   *user,
		CreatedAt: s.tick(),
	}
	doc.UpdatedAt = doc.CreatedAt
	s.docs = append(s.docs, doc)
	copied := *doc
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, copied)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := s.findLocked(mux.Vars(r)["id"])
	if doc == nil {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "Document not found")
		return
	}
	copied := *doc
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, copied)
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		writeMessages(w, http.StatusUnprocessableEntity, []string{"name should not be empty"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.findLocked(mux.Vars(r)["id"])
	if doc == nil {
		writeError(w, http.StatusNotFound, "Document not found")
		return
	}
	doc.Name = payload.Name
	doc.UpdatedAt = s.tick()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	user := s.principal(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	id := mux.Vars(r)["id"]
	doc := s.findLocked(id)
	if doc == nil {
		writeError(w, http.StatusNotFound, "Document not found")
		return
	}
	if user == nil || doc.Creator.ID != user.ID {
		writeError(w, http.StatusForbidden, "Only the creator can delete a document")
		return
	}
	if doc.Status != domain.StatusDraft && doc.Status != domain.StatusRevoke {
		writeError(w, http.StatusUnprocessableEntity, "Document can only be deleted in DRAFT or REVOKE status")
		return
	}
	for i, d := range s.docs {
		if d.ID == id {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			break
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSendToReview(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(doc *domain.Document) string {
		if doc.Status != domain.StatusDraft {
			return "Only DRAFT documents can be sent to review"
		}
		doc.Status = domain.StatusReadyForReview
		return ""
	})
}

func (s *Server) handleRevokeReview(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(doc *domain.Document) string {
		if doc.Status != domain.StatusReadyForReview {
			return "Only READY_FOR_REVIEW documents can be revoked"
		}
		doc.Status = domain.StatusRevoke
		return ""
	})
}

func (s *Server) handleChangeStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status domain.DocumentStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.transition(w, r, func(doc *domain.Document) string {
		allowed := false
		for _, status := range domain.ReviewStatuses {
			if payload.Status == status {
				allowed = true
			}
		}
		if !allowed {
			return "status must be one of UNDER_REVIEW, APPROVED, DECLINED"
		}
		if doc.Status != domain.StatusReadyForReview && doc.Status != domain.StatusUnderReview {
			return "Illegal status transition"
		}
		doc.Status = payload.Status
		return ""
	})
}

func (s *Server) transition(w http.ResponseWriter, r *http.Request, apply func(*domain.Document) string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.findLocked(mux.Vars(r)["id"])
	if doc == nil {
		writeError(w, http.StatusNotFound, "Document not found")
		return
	}
	if msg := apply(doc); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	doc.UpdatedAt = s.tick()
	w.WriteHeader(http.StatusNoContent)
}

func applySort(docs []domain.Document, spec string) {
	field, direction := "updatedAt", "desc"
	if parts := strings.SplitN(spec, ",", 2); len(parts) == 2 {
		field, direction = parts[0], parts[1]
	}
	less := func(i, j int) bool { return docs[i].UpdatedAt.Before(docs[j].UpdatedAt) }
	switch field {
	case "name":
		less = func(i, j int) bool { return docs[i].Name < docs[j].Name }
	case "createdAt":
		less = func(i, j int) bool { return docs[i].CreatedAt.Before(docs[j].CreatedAt) }
	case "status":
		less = func(i, j int) bool { return docs[i].Status < docs[j].Status }
	}
	if direction == "desc" {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(docs, less)
}

func pageParams(r *http.Request, defaultPage, defaultSize int) (int, int) {
	page, size := defaultPage, defaultSize
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && v > 0 {
		size = v
	}
	return page, size
}

func paginate[T any](items []T, page, size int) []T {
	start := (page - 1) * size
	if start > len(items) {
		start = len(items)
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"message": message})
}

func writeMessages(w http.ResponseWriter, statusCode int, messages []string) {
	writeJSON(w, statusCode, map[string][]string{"message": messages})
}
