package handlers

import (
	"net/http"
	"strconv"
	"time"

	"agromarket/internal/models"
	"agromarket/internal/services"

	"github.com/gin-gonic/gin"
)

type EquipmentHandler struct {
	equipmentService services.EquipmentService
	bookingService   services.BookingService
	hub              *EventHub
}

func NewEquipmentHandler(
	equipmentService services.EquipmentService,
	bookingService services.BookingService,
	hub *EventHub,
) *EquipmentHandler {
	return &EquipmentHandler{
		equipmentService: equipmentService,
		bookingService:   bookingService,
		hub:              hub,
	}
}

// GET /api/equipment?location=...
func (h *EquipmentHandler) List(c *gin.Context) {
	var (
		equipment []models.Equipment
		err       error
	)
	if location := c.Query("location"); location != "" {
		equipment, err = h.equipmentService.ListByLocation(location)
	} else {
		equipment, err = h.equipmentService.ListAvailable()
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, equipment)
}

// GET /api/equipment/:equipment_id
func (h *EquipmentHandler) Get(c *gin.Context) {
	equipmentID, err := strconv.ParseUint(c.Param("equipment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid equipment id"})
		return
	}

	equipment, err := h.equipmentService.GetEquipmentByID(uint(equipmentID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, equipment)
}

// GET /api/farmer/equipment
func (h *EquipmentHandler) MyEquipment(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	equipment, err := h.equipmentService.ListByOwner(ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, equipment)
}

// POST /api/farmer/equipment
func (h *EquipmentHandler) Create(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input services.EquipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	equipment, err := h.equipmentService.CreateEquipment(ownerID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, equipment)
}

// PUT /api/farmer/equipment/:equipment_id
func (h *EquipmentHandler) Update(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	equipmentID, err := strconv.ParseUint(c.Param("equipment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid equipment id"})
		return
	}

	var input services.EquipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	equipment, err := h.equipmentService.UpdateEquipment(ownerID, uint(equipmentID), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, equipment)
}

// DELETE /api/farmer/equipment/:equipment_id
func (h *EquipmentHandler) Delete(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	equipmentID, err := strconv.ParseUint(c.Param("equipment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid equipment id"})
		return
	}

	if err := h.equipmentService.DeleteEquipment(ownerID, uint(equipmentID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Equipment deleted"})
}

// POST /api/equipment/:equipment_id/bookings
func (h *EquipmentHandler) Book(c *gin.Context) {
	borrowerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	equipmentID, err := strconv.ParseUint(c.Param("equipment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid equipment id"})
		return
	}

	var req struct {
		StartDate time.Time `json:"start_date" binding:"required"`
		EndDate   time.Time `json:"end_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	booking, err := h.bookingService.RequestBooking(borrowerID, uint(equipmentID), req.StartDate, req.EndDate)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.hub != nil {
		h.hub.Broadcast("booking_requested", booking)
	}
	c.JSON(http.StatusCreated, booking)
}

// GET /api/bookings — bookings the user placed
func (h *EquipmentHandler) MyBookings(c *gin.Context) {
	borrowerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bookings, err := h.bookingService.BorrowerBookings(borrowerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /api/farmer/bookings — requests against the farmer's equipment
func (h *EquipmentHandler) BookingRequests(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bookings, err := h.bookingService.OwnerBookingRequests(ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// PUT /api/bookings/:booking_id/status
func (h *EquipmentHandler) SetBookingStatus(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bookingID, err := strconv.ParseUint(c.Param("booking_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking id"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	target, err := models.ParseBookingStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookingService.SetStatus(actorID, uint(bookingID), target)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
