// router.go
package router

import (
	"net/http"
	"time"

	"autodrive/internal/config"
	"autodrive/internal/handlers"
	"autodrive/internal/models"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}
func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Try again later."})
}

func Setup(log *zap.Logger, catalog *models.Catalog) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("autodrive_session", store))

	// --- Now that sessions are initialized, other middleware can use them ---
	router.Use(CSRFProtection())
	router.Use(UserLoaderMiddleware(log))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		err := secureMiddleware.Process(c.Writer, c.Request)
		if err != nil {
			c.Abort()
			return
		}
	})

	// Handlers and routes
	authHandler := handlers.NewAuthHandler(log)
	lessonHandler := handlers.NewLessonHandler(log, catalog)
	profileHandler := handlers.NewProfileHandler(log)
	dashboardHandler := handlers.NewDashboardHandler(log)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/auth/csrf", func(c *gin.Context) {
		token, _ := c.Get(csrfTokenContextKey)
		c.JSON(http.StatusOK, gin.H{"csrfToken": token})
	})

	router.POST("/register", limiter, authHandler.Register)
	router.POST("/login", limiter, authHandler.Login)
	router.POST("/logout", authHandler.Logout)

	authorized := router.Group("/")
	authorized.Use(AuthRequired(log))
	{
		lessonRoutes := authorized.Group("/lessons")
		{
			lessonRoutes.GET("", lessonHandler.ListLessons)
			lessonRoutes.POST("/:id/complete", lessonHandler.CompleteLesson)
		}

		profileRoutes := authorized.Group("/profile")
		{
			profileRoutes.GET("", profileHandler.ShowProfile)
			profileRoutes.GET("/history", profileHandler.ShowHistory)
			profileRoutes.POST("/update-info", profileHandler.UpdateInfo)
			profileRoutes.POST("/update-password", profileHandler.UpdatePassword)
			profileRoutes.POST("/notifications", profileHandler.UpdateNotificationSettings)
			profileRoutes.POST("/delete", profileHandler.DeleteAccount)
		}

		dashboardRoutes := authorized.Group("/dashboard")
		dashboardRoutes.Use(ManagerRequired())
		{
			dashboardRoutes.GET("/team", dashboardHandler.TeamOverview)
			dashboardRoutes.GET("/timeline", dashboardHandler.Timeline)
			dashboardRoutes.GET("/leaderboard", dashboardHandler.Leaderboard)
			dashboardRoutes.GET("/report", dashboardHandler.Report)
		}
	}

	return router
}
