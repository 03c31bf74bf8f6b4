package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"hexatlas.world/internal/protocol"
)

// Provider hands back the finished snapshot for a (seed, month) pair.
// Implementations may generate on demand or serve from a cache.
type Provider interface {
	Snapshot(seed int64, month int) (protocol.SnapshotMsg, error)
}

type Server struct {
	provider Provider
	log      *logrus.Logger

	upgrader websocket.Upgrader
}

func NewServer(p Provider, logger *logrus.Logger) *Server {
	s := &Server{
		provider: p,
		log:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
	return s
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// A connection may request several worlds; each HELLO gets
		// one SNAPSHOT (or one ERROR) back.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if !s.serveHello(conn, msg) {
				return
			}
		}
	}
}

// serveHello answers a single inbound message. It reports false when
// the connection should be dropped.
func (s *Server) serveHello(conn *websocket.Conn, msg []byte) bool {
	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"), time.Now().Add(time.Second))
		return false
	}

	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return s.writeError(conn, protocol.ErrProtoBadRequest, "malformed HELLO")
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"), time.Now().Add(time.Second))
		return false
	}
	if hello.Month < 1 || hello.Month > 14 {
		return s.writeError(conn, protocol.ErrBadMonth, "month must be 1..14")
	}

	snap, err := s.provider.Snapshot(hello.Seed, hello.Month)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"seed":  hello.Seed,
			"month": hello.Month,
		}).Error("snapshot failed")
		return s.writeError(conn, protocol.ErrInternal, "generation failed")
	}

	if err := writeJSON(conn, snap); err != nil {
		return false
	}
	return true
}

func (s *Server) writeError(conn *websocket.Conn, code, message string) bool {
	return writeJSON(conn, protocol.ErrorMsg{
		Type:            protocol.TypeError,
		ProtocolVersion: protocol.Version,
		Code:            code,
		Message:         message,
	}) == nil
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
