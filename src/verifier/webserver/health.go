package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Health struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHealth(db *gorm.DB, rdb *redis.Client) Health {
	return Health{db: db, rdb: rdb}
}

func (h Health) Handle(c *gin.Context) {
	status := gin.H{"status": "ok", "mysql": "ok", "redis": "ok"}

	if h.db != nil {
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status["mysql"] = "unavailable"
		}
	}
	if h.rdb != nil {
		if err := h.rdb.Ping(c.Request.Context()).Err(); err != nil {
			status["redis"] = "unavailable"
		}
	}

	c.JSON(http.StatusOK, status)
}
