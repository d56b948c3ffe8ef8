// Package stubapi is a self-contained development server for the
// marketplace API surface the servly client consumes. It serves fixture
// data from memory and exists for demos and integration tests; it is not
// the real backend.
package stubapi

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/servly-app/servly/internal/catalog"
)

// Booking is a stub booking record.
type Booking struct {
	BookingID   string  `json:"bookingId"`
	ServiceID   string  `json:"serviceId"`
	ProviderID  string  `json:"providerId"`
	ServiceName string  `json:"serviceName"`
	Cost        float64 `json:"cost"`
	Location    string  `json:"location,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
}

// Review is a stub review record.
type Review struct {
	ReviewID    string  `json:"reviewId"`
	ServiceID   string  `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	Rating      float64 `json:"rating"`
	Comment     string  `json:"comment"`
	Author      string  `json:"author"`
}

// Server holds the in-memory fixture state.
type Server struct {
	mu       sync.Mutex
	services []catalog.Service
	bookings []Booking
	byIdem   map[string]string
	reviews  []Review
}

func NewServer() *Server {
	return &Server{
		services: seedServices(),
		reviews:  seedReviews(),
		byIdem:   make(map[string]string),
	}
}

// NewRouter wires the stub routes with request-ID, access-log and
// recoverer middleware.
func NewRouter(s *Server, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(accessLog(log))
	r.Use(recoverer(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/auth/login", s.login)
	r.Get("/users/me", s.currentUser)

	r.Route("/services", func(r chi.Router) {
		r.Get("/", s.listServices)
		r.Get("/{id}", s.getService)
	})

	r.Post("/bookings", s.createBooking)

	r.Route("/provider", func(r chi.Router) {
		r.Get("/bookings", s.listBookings)
		r.Patch("/bookings/{id}", s.updateBooking)
		r.Get("/reviews", s.listReviews)
		r.Get("/analytics", s.analytics)
	})

	return r
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		fail(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user := seedUser()
	user["email"] = req.Email
	success(w, http.StatusOK, map[string]any{
		"token": "srv_" + uuid.NewString(),
		"user":  user,
	})
}

func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") == "" {
		fail(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	success(w, http.StatusOK, seedUser())
}

func (s *Server) listServices(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	services := append([]catalog.Service(nil), s.services...)
	s.mu.Unlock()
	success(w, http.StatusOK, services)
}

func (s *Server) getService(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, svc := range s.services {
		if svc.ServiceID == id {
			success(w, http.StatusOK, svc)
			return
		}
	}
	fail(w, http.StatusNotFound, "service not found")
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServiceID   string  `json:"serviceId"`
		ProviderID  string  `json:"providerId"`
		ServiceName string  `json:"serviceName"`
		Cost        float64 `json:"cost"`
		Location    string  `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ServiceID == "" {
		fail(w, http.StatusBadRequest, "serviceId is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Replaying an idempotency key returns the original booking.
	idem := r.Header.Get("Idempotency-Key")
	if idem != "" {
		if id, ok := s.byIdem[idem]; ok {
			for _, b := range s.bookings {
				if b.BookingID == id {
					success(w, http.StatusOK, b)
					return
				}
			}
		}
	}

	booking := Booking{
		BookingID:   uuid.NewString(),
		ServiceID:   req.ServiceID,
		ProviderID:  req.ProviderID,
		ServiceName: req.ServiceName,
		Cost:        req.Cost,
		Location:    req.Location,
		Status:      "pending",
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	s.bookings = append(s.bookings, booking)
	if idem != "" {
		s.byIdem[idem] = booking.BookingID
	}

	success(w, http.StatusCreated, booking)
}

func (s *Server) listBookings(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	bookings := append([]Booking(nil), s.bookings...)
	s.mu.Unlock()
	success(w, http.StatusOK, bookings)
}

func (s *Server) updateBooking(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		fail(w, http.StatusBadRequest, "status is required")
		return
	}
	switch req.Status {
	case "accepted", "rejected", "completed", "pending":
	default:
		fail(w, http.StatusBadRequest, "unknown status")
		return
	}

	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].BookingID == id {
			s.bookings[i].Status = req.Status
			success(w, http.StatusOK, s.bookings[i])
			return
		}
	}
	fail(w, http.StatusNotFound, "booking not found")
}

func (s *Server) listReviews(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	reviews := append([]Review(nil), s.reviews...)
	s.mu.Unlock()
	success(w, http.StatusOK, reviews)
}

func (s *Server) analytics(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var completed, pending int
	var revenue float64
	for _, b := range s.bookings {
		switch b.Status {
		case "completed":
			completed++
			revenue += b.Cost
		case "pending":
			pending++
		}
	}

	var ratingSum float64
	for _, r := range s.reviews {
		ratingSum += r.Rating
	}
	avgRating := 0.0
	if len(s.reviews) > 0 {
		avgRating = ratingSum / float64(len(s.reviews))
	}

	success(w, http.StatusOK, map[string]any{
		"totalBookings":     len(s.bookings),
		"completedBookings": completed,
		"pendingBookings":   pending,
		"totalRevenue":      revenue,
		"avgRating":         avgRating,
	})
}
