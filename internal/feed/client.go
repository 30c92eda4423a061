package feed

import (
	"time"

	gorillaWS "github.com/gorilla/websocket"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/constants"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
)

// Client is one feed subscriber. The feed is push only; anything the browser
// sends is read and discarded so pongs and close frames get processed.
type Client struct {
	hub    *Hub
	conn   *gorillaWS.Conn
	remote string
	send   chan []byte
	log    *logger.Logger
}

func NewClient(hub *Hub, conn *gorillaWS.Conn, remote string, log *logger.Logger) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		remote: remote,
		send:   make(chan []byte, constants.FeedSendBufferSize),
		log:    log,
	}
}

func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(constants.FeedMaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(constants.FeedPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(constants.FeedPongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if gorillaWS.IsUnexpectedCloseError(err, gorillaWS.CloseGoingAway, gorillaWS.CloseAbnormalClosure) {
				c.log.Debugf("feed read error remote=%s: %v", c.remote, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(constants.FeedPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(constants.FeedWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(gorillaWS.CloseMessage, gorillaWS.FormatCloseMessage(gorillaWS.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(gorillaWS.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(constants.FeedWriteWait))
			if err := c.conn.WriteMessage(gorillaWS.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
