package mockstore

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/five82/kiosk/internal/storefront"
)

const userIDKey = "userID"

// NewRouter builds the gin engine serving store under /api/v1.
func NewRouter(store *Store, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	api := router.Group("/api/v1")
	api.POST("/register", registerHandler(store, logger))
	api.POST("/login", loginHandler(store, logger))

	protected := api.Group("/")
	protected.Use(authMiddleware(store, logger))
	protected.GET("/user", profileHandler(store))
	protected.GET("/orders", cartHandler(store))

	return router
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, storefront.SuccessResult{Status: "success", Data: data})
}

func fail(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, storefront.ErrorResult{Status: "error", Message: message})
}

func registerHandler(store *Store, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req storefront.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		profile, err := store.Register(req)
		if err != nil {
			logger.WithError(err).Warn("register rejected")
			code := http.StatusBadRequest
			if errors.Is(err, errEmailTaken) {
				code = http.StatusConflict
			}
			fail(c, code, err.Error())
			return
		}
		success(c, storefront.RegisterResponse{Name: profile.Name, Email: profile.Email, Role: profile.Role})
	}
}

func loginHandler(store *Store, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req storefront.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		auth, err := store.Login(req)
		if err != nil {
			if errors.Is(err, errInvalidCredentials) {
				logger.WithField("email", req.Email).Warn("login failed")
				fail(c, http.StatusBadRequest, err.Error())
				return
			}
			logger.WithError(err).Error("login error")
			fail(c, http.StatusInternalServerError, "internal error")
			return
		}
		logger.WithFields(logrus.Fields{"user_id": auth.ID, "role": auth.Role}).Info("login succeeded")
		success(c, auth)
	}
}

func profileHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := store.Profile(c.GetInt(userIDKey))
		if !ok {
			fail(c, http.StatusNotFound, "user not found")
			return
		}
		success(c, profile)
	}
}

func cartHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store.cartFailing() {
			fail(c, http.StatusInternalServerError, "orders unavailable")
			return
		}
		success(c, store.Cart(c.GetInt(userIDKey)))
	}
}

func authMiddleware(store *Store, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			logger.WithField("path", c.Request.URL.Path).Debug("missing bearer token")
			fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		id, ok := store.Authenticate(strings.TrimSpace(parts[1]))
		if !ok {
			fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"status_code": c.Writer.Status(),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"latency_ms":  time.Since(start).Milliseconds(),
		})
		if reqID := c.GetHeader("X-Request-ID"); reqID != "" {
			entry = entry.WithField("request_id", reqID)
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request completed with server error")
		case status >= 400:
			entry.Warn("request completed with client error")
		default:
			entry.Info("request completed")
		}
	}
}
