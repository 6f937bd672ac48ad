package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// Component states, worst last.
const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

var statusRank = map[string]int{statusHealthy: 0, statusDegraded: 1, statusUnhealthy: 2}

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Reports whether the store and the search index answer.",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

type ComponentHealth struct {
	Status  string `json:"status" enum:"healthy,degraded,unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Time taken by the probe"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status     string                     `json:"status" enum:"healthy,degraded,unhealthy" doc:"Worst component status"`
	Components map[string]ComponentHealth `json:"components"`
}

type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	resp := HealthResponse{
		Status: statusHealthy,
		Components: map[string]ComponentHealth{
			"database": s.probeStore(ctx),
			"search":   s.probeSearch(),
		},
	}
	for _, c := range resp.Components {
		if statusRank[c.Status] > statusRank[resp.Status] {
			resp.Status = c.Status
		}
	}
	return &HealthOutput{Body: resp}, nil
}

// timed runs probe and records its latency. A probe error marks the
// component unhealthy with failMsg; otherwise the returned string is the message.
func timed(failMsg string, probe func() (string, error)) ComponentHealth {
	start := time.Now()
	msg, err := probe()
	h := ComponentHealth{Status: statusHealthy, Latency: time.Since(start).String(), Message: msg}
	if err != nil {
		h.Status = statusUnhealthy
		h.Message = failMsg
	}
	return h
}

func (s *Server) probeStore(ctx context.Context) ComponentHealth {
	if s.store == nil {
		return ComponentHealth{Status: statusDegraded, Message: "database not configured"}
	}
	return timed("database read failed", func() (string, error) {
		_, err := s.store.CountGenres(ctx)
		return "", err
	})
}

// probeSearch treats disabled search as healthy.
func (s *Server) probeSearch() ComponentHealth {
	if s.services == nil || s.services.Search == nil {
		return ComponentHealth{Status: statusHealthy, Message: "search disabled"}
	}
	return timed("search index unreachable", func() (string, error) {
		n, err := s.services.Search.DocumentCount()
		if n == 1 {
			return "1 document", err
		}
		return fmt.Sprintf("%d documents", n), err
	})
}
