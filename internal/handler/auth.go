package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edustack/internal/auth"
	"edustack/internal/common"
)

// Register creates an account and signs it in.
func (h *Handler) Register(c *gin.Context) {
	data, ok := h.body(c)
	if !ok {
		return
	}
	reg, err := h.validator.ParseRegistration(data)
	if err != nil {
		h.fail(c, err)
		return
	}
	user, err := h.accounts.Register(c.Request.Context(), reg)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.gate.Begin(c, user.ID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *Handler) Login(c *gin.Context) {
	data, ok := h.body(c)
	if !ok {
		return
	}
	creds, err := h.validator.ParseLogin(data)
	if err != nil {
		h.fail(c, err)
		return
	}
	user, err := h.accounts.Login(c.Request.Context(), creds)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.gate.Begin(c, user.ID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout always succeeds, signed in or not.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.gate.End(c); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) Me(c *gin.Context) {
	id, ok := auth.UserID(c)
	if !ok {
		h.fail(c, common.ErrUnauthenticated)
		return
	}
	user, err := h.accounts.User(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
