package handlers

import (
	"net/http"
	"strconv"

	"agromarket/internal/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GET /api/farmers
func (h *ProfileHandler) ListFarmers(c *gin.Context) {
	farmers, err := h.profileService.ListFarmers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, farmers)
}

// GET /api/profiles/:profile_id
func (h *ProfileHandler) Get(c *gin.Context) {
	profileID, err := strconv.ParseUint(c.Param("profile_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile id"})
		return
	}

	profile, err := h.profileService.GetProfile(uint(profileID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PUT /api/profile — the acting user's own profile
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input services.ProfileUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	profile, err := h.profileService.UpdateProfile(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// POST /api/farmers/:profile_id/rate
func (h *ProfileHandler) RateFarmer(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	farmerID, err := strconv.ParseUint(c.Param("profile_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile id"})
		return
	}

	var req struct {
		Rating float64 `json:"rating" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	profile, err := h.profileService.RateFarmer(uint(farmerID), req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GET /api/farmer/consumers
func (h *ProfileHandler) FarmerConsumers(c *gin.Context) {
	farmerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	consumers, err := h.profileService.FarmerConsumers(farmerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, consumers)
}
