package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bloodbank/bloodbank/backend/go-services/internal/donation/service"
	"github.com/bloodbank/bloodbank/backend/go-services/pkg/logger"
	"github.com/bloodbank/bloodbank/backend/go-services/pkg/middleware"
)

// Handler serves the donation intake and aggregation endpoints.
type Handler struct {
	svc service.Service
	ver middleware.Verifier
}

func New(svc service.Service, ver middleware.Verifier) *Handler {
	return &Handler{svc: svc, ver: ver}
}

// Register mounts the routes. /donate requires a verified principal;
// /stats and /recent-donors are public reads.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/donate", middleware.AuthMiddleware(h.ver), h.Donate)
	rg.GET("/stats", h.Stats)
	rg.GET("/recent-donors", h.RecentDonors)
}

// field accepts a JSON string or number, since browser form state posts
// numeric inputs as strings.
type field string

func (f *field) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = field(s)
		return nil
	}
	*f = field(strings.TrimSpace(string(b)))
	return nil
}

type donateRequest struct {
	DonorName  string `json:"donorName"`
	Age        field  `json:"age"`
	Gender     string `json:"gender"`
	BloodGroup string `json:"bloodGroup"`
	Weight     field  `json:"weight"`
}

// parseAge mirrors a JavaScript parseInt of form input: decimal text is
// truncated, non-numeric text fails.
func parseAge(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func (h *Handler) Donate(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok || p.Sub == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - Invalid token"})
		return
	}

	var req donateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}
	if strings.TrimSpace(req.DonorName) == "" || req.Age == "" || req.Gender == "" ||
		req.BloodGroup == "" || req.Weight == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	age, ageErr := parseAge(string(req.Age))
	weight, weightErr := strconv.ParseFloat(strings.TrimSpace(string(req.Weight)), 64)
	if ageErr != nil || weightErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid age or weight format"})
		return
	}

	res, err := h.svc.Submit(c.Request.Context(), p.Sub, p.Email, service.Submission{
		DonorName:  req.DonorName,
		Age:        age,
		Gender:     req.Gender,
		BloodGroup: req.BloodGroup,
		Weight:     weight,
	})
	if err != nil {
		logger.Errorf("donation submission error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit donation"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		logger.Errorf("stats error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get stats"})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) RecentDonors(c *gin.Context) {
	donors, err := h.svc.RecentDonors(c.Request.Context())
	if err != nil {
		logger.Errorf("recent donors error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get recent donors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"donors": donors})
}
