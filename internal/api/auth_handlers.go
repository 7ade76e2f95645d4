package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homeenergy/server/internal/models"
)

func (h *Handler) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, token, err := h.auth.SignUp(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to sign up")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

func (h *Handler) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, token, err := h.auth.SignIn(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to sign in")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

func (h *Handler) SignOut(c *gin.Context) {
	if err := h.auth.SignOut(c.Request.Context(), c.GetString(tokenKey)); err != nil {
		h.fail(c, err, "Failed to sign out")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
}
