package server

import (
	"fmt"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/billwatch/billwatch/internal/store"
)

// Statistics responses are cached per request path. The snapshot is
// immutable for the life of the process, so a short TTL only bounds
// memory, not staleness after a reload.
const (
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute
)

type Server struct {
	store     *store.SQLiteStore
	port      int
	router    *http.ServeMux
	cache     *gocache.Cache
	startTime time.Time
}

func New(s *store.SQLiteStore, port int) *Server {
	srv := &Server{
		store:     s,
		port:      port,
		router:    http.NewServeMux(),
		cache:     gocache.New(cacheTTL, cacheCleanup),
		startTime: time.Now(),
	}

	srv.setupRoutes()
	return srv
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth)
	s.router.HandleFunc("/api/members/top", s.handleTopMembers)
	s.router.HandleFunc("/api/members/", s.handleMemberStatistics)
	s.router.HandleFunc("/api/bills/statistics", s.handleBillStatistics)
	s.router.HandleFunc("/api/analysis/conversion", s.handleConversion)
	s.router.HandleFunc("/api/analysis/committees", s.handleCommittees)
	s.router.HandleFunc("/api/analysis/parties", s.handleParties)
	s.router.HandleFunc("/api/analysis/crossparty", s.handleCrossParty)
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)

	fmt.Println()
	fmt.Printf("billwatch running on http://localhost:%d\n", s.port)
	fmt.Println()
	fmt.Println("Press Ctrl+C to stop")

	return http.ListenAndServe(addr, s.router)
}

func (s *Server) Store() *store.SQLiteStore {
	return s.store
}

func (s *Server) StartTime() time.Time {
	return s.startTime
}

func (s *Server) Handler() http.Handler {
	return s.router
}
