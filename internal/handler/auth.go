package handler

import (
	"net/http"

	"github.com/MalditoKM/Asistent-Restaurant/internal/dto"
	"github.com/MalditoKM/Asistent-Restaurant/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth      service.AuthService
	directory service.DirectoryService
}

func NewAuthHandler(auth service.AuthService, directory service.DirectoryService) *AuthHandler {
	return &AuthHandler{auth: auth, directory: directory}
}

// Login authenticates by email + password and issues a JWT pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh exchanges a refresh token for a fresh access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Register creates a restaurant and its admin account atomically. The first
// restaurant of an empty system gets a superadmin instead of an admin. This
// endpoint is public: it is how a new tenant signs up.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.directory.Register(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
