package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cryptojournal/internal/app"
	"cryptojournal/internal/auth"
	"cryptojournal/internal/ports"
)

const (
	tokenCookie  = "token"
	claimsKey    = "authClaims"
	tradesPath   = "/api/trades"
	authBasePath = "/api/auth"
)

// Handler exposes the journal over HTTP. It owns status-code mapping and the
// JSON envelopes; all domain rules live behind the services it calls.
type Handler struct {
	router  *gin.Engine
	logger  ports.Logger
	journal *app.JournalService
	auth    *auth.Service
	signer  ports.TokenSigner
}

// Config holds dependencies for the HTTP handler.
type Config struct {
	Logger  ports.Logger
	Journal *app.JournalService
	Auth    *auth.Service
	Signer  ports.TokenSigner
}

// NewHandler builds the gin router with all journal routes registered.
func NewHandler(cfg Config) (*Handler, error) {
	if cfg.Logger == nil || cfg.Journal == nil || cfg.Auth == nil || cfg.Signer == nil {
		return nil, fmt.Errorf("missing required dependencies for HTTP handler")
	}
	router := gin.New()
	router.Use(gin.Recovery())

	h := &Handler{
		router:  router,
		logger:  cfg.Logger,
		journal: cfg.Journal,
		auth:    cfg.Auth,
		signer:  cfg.Signer,
	}
	h.registerRoutes()
	return h, nil
}

// ServeHTTP lets the handler be mounted on any http.Server.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	authGroup := h.router.Group(authBasePath)
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
	}

	trades := h.router.Group(tradesPath)
	trades.Use(h.requireAuth())
	{
		trades.GET("", h.listTrades)
		trades.POST("", h.createTrade)
		trades.GET("/stats", h.stats)
		trades.PUT("/:id", h.updateTrade)
		trades.DELETE("/:id", h.deleteTrade)
	}
}

// requireAuth resolves the session token from the cookie or the Authorization
// header and stores the verified claims on the request context.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(tokenCookie)
		if err != nil || token == "" {
			header := c.GetHeader("Authorization")
			token = strings.TrimPrefix(header, "Bearer ")
			if token == header {
				token = ""
			}
		}
		if token == "" {
			h.abortUnauthorized(c)
			return
		}
		claims, err := h.signer.Verify(token)
		if err != nil {
			h.abortUnauthorized(c)
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func (h *Handler) abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
}

// callerClaims returns the claims stored by requireAuth.
func callerClaims(c *gin.Context) *ports.TokenClaims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*ports.TokenClaims)
	return claims
}

// writeError maps core error kinds onto HTTP status codes. Store failures
// surface as 500 without leaking internals.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrInvalidRequest), errors.Is(err, ports.ErrDuplicateEntry):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": publicMessage(err)})
	case errors.Is(err, ports.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": publicMessage(err)})
	case errors.Is(err, ports.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Trade not found"})
	default:
		h.logger.Error(c.Request.Context(), err, "Request failed", map[string]interface{}{"path": c.FullPath()})
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}

// publicMessage picks the client-facing message for recoverable errors.
func publicMessage(err error) string {
	var verr *ports.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	if errors.Is(err, ports.ErrDuplicateEntry) {
		return "User already exists"
	}
	if errors.Is(err, ports.ErrUnauthorized) {
		return "Invalid email or password"
	}
	return err.Error()
}
