package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"hotel_desk/internal/adapters/observability"
	"hotel_desk/internal/app"
	"hotel_desk/internal/domain"
)

type Handlers struct {
	Auth       *app.AuthService
	Inventory  *app.InventoryService
	Notify     *app.Notifier
	LoginLimit *rate.Limiter
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Post("/v1/auth/register", h.register)
	s.mux.With(Throttle(h.LoginLimit)).Post("/v1/auth/login", h.login)
	s.mux.Post("/v1/auth/logout", h.logout)
	s.mux.Get("/v1/auth/me", h.me)

	s.mux.Group(func(r chi.Router) {
		r.Use(RequireSession(h.Auth))
		r.Get("/v1/hotels", h.listHotels)
		r.Post("/v1/hotels", h.createHotel)
		r.Get("/v1/hotels/{id}", h.getHotel)
		r.Put("/v1/hotels/{id}", h.updateHotel)
		r.Delete("/v1/hotels/{id}", h.deleteHotel)
		r.Get("/v1/stats", h.stats)
		r.Get("/v1/notification", h.notification)
		r.Delete("/v1/notification", h.clearNotification)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// ---- auth ----

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	PhotoURL  string `json:"photoUrl"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	if req.FirstName == "" || req.Email == "" || req.Password == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "firstName, email and password are required")
		return
	}

	u, err := h.Auth.Register(r.Context(), domain.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		PhotoURL:  req.PhotoURL,
	}, req.Password)
	if err == domain.ErrDuplicateEmail {
		observability.ObserveAuth("register", "rejected")
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
		return
	}
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal", "registration failed")
		return
	}
	observability.ObserveAuth("register", "ok")
	writeJSON(w, http.StatusCreated, u)
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	u, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		observability.ObserveAuth("login", "rejected")
		// Same message whether the email or the password was wrong.
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", domain.ErrInvalidCredentials.Error())
		return
	}
	observability.ObserveAuth("login", "ok")
	writeJSON(w, http.StatusOK, u)
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	h.Auth.Logout(r.Context())
	observability.ObserveAuth("logout", "ok")
	h.Notify.Show("You have been signed out.")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	u, ok := h.Auth.Current()
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "no active session")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// ---- hotels ----

type hotelsResponse struct {
	Total int            `json:"total"` // before filtering
	Count int            `json:"count"` // after filtering
	Items []domain.Hotel `json:"items"`
}

func parseFilterQuery(r *http.Request) domain.FilterQuery {
	qs := r.URL.Query()
	minRating, _ := strconv.ParseFloat(qs.Get("min_rating"), 64)
	return domain.FilterQuery{
		SearchTerm: qs.Get("q"),
		Cities:     qs["city"],
		Countries:  qs["country"],
		MinRating:  minRating,
		Sort:       domain.ParseSortKey(qs.Get("sort")),
	}
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	all := h.Inventory.List()
	items := app.ApplyFilter(all, parseFilterQuery(r))
	writeJSON(w, http.StatusOK, hotelsResponse{Total: len(all), Count: len(items), Items: items})
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var in domain.Hotel
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	// Submission-form rules live at this boundary, not in the repository.
	if in.Name == "" || in.Price <= 0 || in.ImageURL == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "name, price and imageUrl are required")
		return
	}
	created := h.Inventory.Add(r.Context(), in)
	h.Notify.Show("Hotel created successfully.")
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	hotel, err := h.Inventory.Get(id)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}

	etag, body := calcETagAndBody(hotel)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getHotel body")
	}
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	var in domain.Hotel
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	in.ID = id
	updated, ok := h.Inventory.Update(r.Context(), in)
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	h.Notify.Show("Hotel updated successfully.")
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	if h.Inventory.Delete(r.Context(), id) {
		h.Notify.Show("Hotel deleted.")
	}
	// Absent ids are a no-op, not an error.
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, app.ComputeStats(h.Inventory.List()))
}

// ---- notification ----

func (h *Handlers) notification(w http.ResponseWriter, r *http.Request) {
	msg, ok := h.Notify.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (h *Handlers) clearNotification(w http.ResponseWriter, r *http.Request) {
	h.Notify.Clear()
	w.WriteHeader(http.StatusNoContent)
}
