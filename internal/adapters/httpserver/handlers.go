package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cryptojournal/internal/app"
	"cryptojournal/internal/auth"
)

// register creates a new account and sets the session cookie.
func (h *Handler) register(c *gin.Context) {
	var input auth.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	user, token, err := h.auth.Register(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user, "token": token})
}

// login verifies credentials and sets the session cookie.
func (h *Handler) login(c *gin.Context) {
	var input auth.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	user, token, err := h.auth.Login(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user, "token": token})
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	// Seven days, matching the token TTL default. HttpOnly keeps it away from
	// page scripts.
	c.SetCookie(tokenCookie, token, 7*24*60*60, "/", "", false, true)
}

// listTrades returns the caller's trades, optionally filtered by ?search=.
func (h *Handler) listTrades(c *gin.Context) {
	claims := callerClaims(c)
	trades, err := h.journal.ListByOwner(c.Request.Context(), claims.UserID, c.Query("search"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "trades": trades})
}

// createTrade records a new trade for the caller.
func (h *Handler) createTrade(c *gin.Context) {
	claims := callerClaims(c)
	var input app.TradeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	trade, err := h.journal.Create(c.Request.Context(), claims.UserID, input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "trade": trade})
}

// updateTrade applies a partial update to one of the caller's trades.
func (h *Handler) updateTrade(c *gin.Context) {
	claims := callerClaims(c)
	var input app.TradeUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	trade, err := h.journal.Update(c.Request.Context(), c.Param("id"), claims.UserID, input)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "trade": trade})
}

// deleteTrade removes one of the caller's trades.
func (h *Handler) deleteTrade(c *gin.Context) {
	claims := callerClaims(c)
	if err := h.journal.Delete(c.Request.Context(), c.Param("id"), claims.UserID); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Trade deleted successfully"})
}

// stats aggregates the caller's trade set.
func (h *Handler) stats(c *gin.Context) {
	claims := callerClaims(c)
	stats, err := h.journal.Stats(c.Request.Context(), claims.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
