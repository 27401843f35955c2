package delivery

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"laterstack-backend/internal/auth/dto"
	"laterstack-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves profile endpoints and the identity-provider webhook
type AuthHandler struct {
	authUsecase   usecase.AuthUsecase
	webhookSecret string
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, webhookSecret string) *AuthHandler {
	return &AuthHandler{
		authUsecase:   authUsecase,
		webhookSecret: webhookSecret,
	}
}

// GetProfile returns the caller's account, provisioning it if needed
// GET /api/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	externalID := c.GetString("externalID")

	user, err := h.authUsecase.ResolveUser(c.Request.Context(), externalID)
	if err != nil {
		if errors.Is(err, usecase.ErrProvisioning) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}
		log.Printf("[Auth] profile load failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Something went wrong. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateProfile stores reading preferences
// PUT /api/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	externalID := c.GetString("externalID")

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	user, err := h.authUsecase.UpdateProfile(c.Request.Context(), externalID, req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrGoalsTooLong), errors.Is(err, usecase.ErrInvalidReadingSpeed):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, usecase.ErrProvisioning):
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		default:
			log.Printf("[Auth] profile update failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update profile. Please try again."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// HandleIdentityWebhook processes user.created / user.updated sync events
// POST /api/webhooks/identity
func (h *AuthHandler) HandleIdentityWebhook(c *gin.Context) {
	if h.webhookSecret == "" {
		log.Println("[Auth] webhook secret not configured, rejecting event")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "webhook not configured"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "cannot read body"})
		return
	}

	if !h.verifySignature(body, c.GetHeader("X-Webhook-Signature")) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid signature"})
		return
	}

	var event dto.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
		return
	}

	if err := h.authUsecase.HandleIdentityEvent(c.Request.Context(), event); err != nil {
		if errors.Is(err, usecase.ErrUnknownEvent) {
			// Ignore event types we don't handle so the provider stops retrying
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		log.Printf("[Auth] webhook %s failed: %v", event.Type, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *AuthHandler) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
