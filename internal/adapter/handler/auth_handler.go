package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jessicacaley/oo-ride-share/internal/core/service"
)

type AuthHandler struct {
	auth *service.AuthService
	svc  *service.Dispatcher
}

func NewAuthHandler(auth *service.AuthService, svc *service.Dispatcher) *AuthHandler {
	return &AuthHandler{auth: auth, svc: svc}
}

type LoginRequest struct {
	PassengerID int    `json:"passenger_id" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var phone string
	h.svc.View(func(g *service.Graph) {
		if p, err := g.FindPassenger(req.PassengerID); err == nil {
			phone = p.PhoneNumber
		}
	})
	if !h.auth.CheckPhoneNumber(req.PhoneNumber, phone) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrInvalidCredentials.Error()})
		return
	}

	token, err := h.auth.GenerateToken(req.PassengerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
