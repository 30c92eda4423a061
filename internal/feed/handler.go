package feed

import (
	"net/http"
	"net/url"

	gorillaWS "github.com/gorilla/websocket"

	commonhttp "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/http"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
)

// Handler upgrades GET /api/reviews/feed. No authentication: the feed only
// carries data the public list endpoint already exposes.
func Handler(hub *Hub, allowedOrigins []string, log *logger.Logger) http.HandlerFunc {
	upgrader := gorillaWS.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already written the error response.
			log.WithFields(r.Context(), logger.Fields{
				"action": "feed_upgrade_failed",
			}).Debugf("feed upgrade failed: %v", err)
			return
		}

		client := NewClient(hub, conn, commonhttp.GetClientIP(r), log)
		if !hub.Register(client) {
			_ = conn.WriteMessage(gorillaWS.CloseMessage, gorillaWS.FormatCloseMessage(gorillaWS.CloseGoingAway, "shutting down"))
			conn.Close()
			return
		}
		client.Start()
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := set["*"]; ok {
			return true
		}
		if _, ok := set[origin]; ok {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	}
}
