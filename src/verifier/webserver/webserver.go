package webserver

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/truthlenz/truthlenz/src/verifier/config"
	"github.com/truthlenz/truthlenz/src/verifier/data"
)

func New(cfg config.Config, verifier Verifier, feedback *data.FeedbackStore, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, verifier, feedback, db, rdb)
	return g
}
