package health

import (
	"context"
	"runtime"
	"time"
)

// Version is reported by the root and detailed health endpoints.
const Version = "1.0.0"

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	Env     string
	DB      Pinger
	started time.Time
	now     func() time.Time
}

// NewService constructs a new health service. db may be nil when running on memory repos.
func NewService(env string, db Pinger) *Service {
	return &Service{Env: env, DB: db, started: time.Now(), now: time.Now}
}

type Status struct {
	Status    string  `json:"status"`
	Message   string  `json:"message"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

type Memory struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"totalAlloc"`
	Sys        uint64 `json:"sys"`
	HeapInuse  uint64 `json:"heapInuse"`
	NumGC      uint32 `json:"numGC"`
	Goroutines int    `json:"goroutines"`
}

type Detailed struct {
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
	Uptime      float64 `json:"uptime"`
	Memory      Memory  `json:"memory"`
	Version     string  `json:"version"`
	GoVersion   string  `json:"goVersion"`
	Environment string  `json:"environment"`
	Database    string  `json:"database"`
}

// Status returns the liveness payload.
func (s *Service) Status() Status {
	return Status{
		Status:    "OK",
		Message:   "Server is healthy",
		Timestamp: s.timestamp(),
		Uptime:    s.uptime(),
	}
}

// Detailed adds runtime memory stats and a database probe.
func (s *Service) Detailed(ctx context.Context) Detailed {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return Detailed{
		Status:    "OK",
		Timestamp: s.timestamp(),
		Uptime:    s.uptime(),
		Memory: Memory{
			Alloc:      ms.Alloc,
			TotalAlloc: ms.TotalAlloc,
			Sys:        ms.Sys,
			HeapInuse:  ms.HeapInuse,
			NumGC:      ms.NumGC,
			Goroutines: runtime.NumGoroutine(),
		},
		Version:     Version,
		GoVersion:   runtime.Version(),
		Environment: s.Env,
		Database:    s.database(ctx),
	}
}

func (s *Service) database(ctx context.Context) string {
	if s.DB == nil {
		return "memory"
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		return "unreachable"
	}
	return "ok"
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

func (s *Service) uptime() float64 {
	return s.now().Sub(s.started).Seconds()
}
