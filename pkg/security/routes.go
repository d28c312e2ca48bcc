package security

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tracker/internal/rate_limiter"
	custom_error "tracker/pkg/errors"
	"tracker/pkg/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LoginHandler struct {
	store       CredentialStore
	issuer      *TokenIssuer
	rateLimiter *rate_limiter.RateLimiter
	log         *zap.Logger
}

func NewLoginHandler(store CredentialStore, issuer *TokenIssuer, log *zap.Logger) *LoginHandler {
	return &LoginHandler{
		store:       store,
		issuer:      issuer,
		rateLimiter: rate_limiter.NewRateLimiter(10, 5*time.Minute),
		log:         log,
	}
}

// Close stops the login rate limiter.
func (l *LoginHandler) Close() {
	l.rateLimiter.Stop()
}

func (l *LoginHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/auth", l.Login)
	router.POST("/auth/register", l.Register)
}

func (l *LoginHandler) Login(c *gin.Context) {
	clientKey := clientKey(c)

	if !l.rateLimiter.IsAllowed(clientKey) {
		remaining := l.rateLimiter.GetRemainingRequests(clientKey)
		resetAt := time.Now().Add(l.rateLimiter.Window()).Format(time.RFC3339)
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.rateLimiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt)
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":     "Too many login attempts, try again later",
			"remaining": remaining,
			"reset_at":  resetAt,
		})
		return
	}

	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	user, err := AuthenticateUser(c.Request.Context(), req.Username, req.Password, l.store)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			l.log.Error("authentication failed", zap.String("username", req.Username), zap.Error(err))
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := l.issuer.GenerateJWT(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (l *LoginHandler) Register(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	user, err := RegisterUser(c.Request.Context(), req, l.store)
	if err != nil {
		var unique *custom_error.UniqueViolationError
		if errors.As(err, &unique) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		}
		l.log.Error("failed to register user", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := l.issuer.GenerateJWT(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// clientKey identifies the caller for rate limiting. Callers behind a private
// address are further split by user agent.
func clientKey(c *gin.Context) string {
	clientIP := c.GetHeader("X-Forwarded-For")
	if clientIP == "" {
		clientIP = c.GetHeader("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = c.ClientIP()
	}
	if strings.Contains(clientIP, ",") {
		clientIP = strings.TrimSpace(strings.Split(clientIP, ",")[0])
	}

	if isPrivateIP(clientIP) {
		clientIP = clientIP + ":" + c.GetHeader("User-Agent")
	}

	return clientIP
}

func isPrivateIP(ip string) bool {
	privatePrefixes := []string{
		"10.", "172.16.", "172.17.", "172.18.", "172.19.", "172.20.", "172.21.",
		"172.22.", "172.23.", "172.24.", "172.25.", "172.26.", "172.27.", "172.28.",
		"172.29.", "172.30.", "172.31.", "192.168.", "127.", "169.254.",
		"::1", "fc00::", "fe80::",
	}

	for _, prefix := range privatePrefixes {
		if strings.HasPrefix(ip, prefix) {
			return true
		}
	}
	return false
}
