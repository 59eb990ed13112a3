package controllers

import (
	"net/http"
	"slices"
	"time"

	"paper-review-api/config"
	"paper-review-api/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var activityUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(config.App.AllowOrigins, origin)
	},
}

// PaperActivity streams workflow events to an admin dashboard. Admin only.
func PaperActivity(c *gin.Context) {
	conn, err := activityUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		config.Logger.Warn().Err(err).Msg("activity websocket upgrade failed")
		return
	}

	sub := services.Activity.Register(conn)
	defer services.Activity.Unregister(sub)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	if err := sub.WriteJSON(gin.H{"type": "connected", "message": "Activity feed established"}); err != nil {
		return
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-sub.Done():
				return
			case <-ticker.C:
				if err := sub.Ping(); err != nil {
					return
				}
			}
		}
	}()

	// Client messages are ignored; reading keeps pong handling and close detection alive.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				config.Logger.Debug().Err(err).Msg("activity websocket closed")
			}
			return
		}
	}
}
