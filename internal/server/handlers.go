package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripcraft/internal/extract"
	"tripcraft/internal/plan"
)

// APIResponse is the uniform envelope for every JSON endpoint.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, APIResponse{Success: false, Error: err.Error()})
}

type generatePlanRequest struct {
	URLs         []string              `json:"urls"`
	Requirements plan.UserRequirements `json:"requirements"`
}

func (s *Server) handleGeneratePlan(c *gin.Context) {
	var req generatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if len(req.URLs) == 0 {
		respondError(c, http.StatusBadRequest, errors.New("urls is required"))
		return
	}

	results := s.extraction.ExtractMultipleContents(c.Request.Context(), req.URLs)
	var contents []extract.ExtractedContent
	for _, r := range results {
		if r.Success && r.Data != nil {
			contents = append(contents, *r.Data)
		}
	}
	if len(contents) == 0 {
		respondError(c, http.StatusUnprocessableEntity, errors.New("no content could be extracted from the given urls"))
		return
	}

	generated, err := s.generator.GenerateTravelPlan(c.Request.Context(), contents, req.Requirements)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, plan.ErrNoSources) {
			status = http.StatusBadRequest
		}
		respondError(c, status, err)
		return
	}

	respondOK(c, gin.H{"plan": generated, "extractions": results})
}

type adjustPlanRequest struct {
	Plan        *plan.TravelPlan `json:"plan"`
	Instruction string           `json:"instruction"`
}

func (s *Server) handleAdjustPlan(c *gin.Context) {
	var req adjustPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Plan == nil || req.Instruction == "" {
		respondError(c, http.StatusBadRequest, errors.New("plan and instruction are required"))
		return
	}

	adjusted, err := s.generator.AdjustTravelPlan(c.Request.Context(), req.Plan, req.Instruction)
	if err != nil {
		respondError(c, http.StatusBadGateway, err)
		return
	}
	respondOK(c, adjusted)
}

type extractRequest struct {
	URLs []string `json:"urls"`
}

func (s *Server) handleExtract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if len(req.URLs) == 0 {
		respondError(c, http.StatusBadRequest, errors.New("urls is required"))
		return
	}

	results := s.extraction.ExtractMultipleContents(c.Request.Context(), req.URLs)
	respondOK(c, results)
}

func (s *Server) handlePlatforms(c *gin.Context) {
	respondOK(c, s.extraction.GetSupportedPlatforms())
}

func (s *Server) handlePlatformStatus(c *gin.Context) {
	respondOK(c, s.extraction.GetPlatformStatus(c.Request.Context()))
}

func (s *Server) handleFlightSearch(c *gin.Context) {
	to := c.Query("to")
	if to == "" {
		respondError(c, http.StatusBadRequest, errors.New("to is required"))
		return
	}

	flights, err := s.booking.SearchFlights(c.Request.Context(), plan.FlightQuery{
		From: c.Query("from"),
		To:   to,
		Date: c.Query("date"),
	})
	if err != nil {
		respondError(c, http.StatusBadGateway, err)
		return
	}
	respondOK(c, flights)
}

func (s *Server) handleHotelSearch(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		respondError(c, http.StatusBadRequest, errors.New("city is required"))
		return
	}

	hotels, err := s.booking.SearchHotels(c.Request.Context(), plan.HotelQuery{
		Destination: city,
		CheckIn:     c.Query("checkin"),
		CheckOut:    c.Query("checkout"),
	})
	if err != nil {
		respondError(c, http.StatusBadGateway, err)
		return
	}
	respondOK(c, hotels)
}

func (s *Server) handleHealth(c *gin.Context) {
	respondOK(c, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
	})
}
