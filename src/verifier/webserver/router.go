package webserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/truthlenz/truthlenz/src/verifier/config"
	"github.com/truthlenz/truthlenz/src/verifier/data"
)

func attachRoutes(r *gin.Engine, cfg config.Config, verifier Verifier, feedback *data.FeedbackStore, db *gorm.DB, rdb *redis.Client) {
	// Any web client may call the verify endpoint; preflight OPTIONS is
	// answered by the middleware with 204.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "X-Client-Info", "Apikey"},
		ExposeHeaders:   []string{"Content-Length"},
	}))

	verifyH := NewVerify(verifier, cfg.MaxPayloadBytes)
	feedbackH := NewFeedback(verifier, feedback)
	healthH := NewHealth(db, rdb)

	limiter := NewRateLimiter(cfg.RateLimit, cfg.RateWindow)

	v1 := r.Group("/v1")
	{
		v1.POST("/verify", RateLimitMiddleware(limiter), verifyH.Handle)
		v1.POST("/feedback", feedbackH.Handle)
		v1.GET("/healthz", healthH.Handle)
	}
}
