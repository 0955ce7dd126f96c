package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/anoooon99999-netizen/online-button/internal/services/game"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 20 * time.Second // must be < pongWait
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // dev‑only
}

// ConnContext is what a registered handler sees about the calling session.
type ConnContext struct {
	ConnID string
	Sess   game.Session
	Server *WsServer
}

type WsServer struct {
	hub     *Hub
	router  *Router
	gameSvc game.IGameService
}

func NewWsServer(h *Hub, gameSvc game.IGameService) *WsServer {
	srv := &WsServer{
		hub:     h,
		router:  NewRouter(),
		gameSvc: gameSvc,
	}
	srv.registerHandlers() // ← all WS endpoints configured here
	return srv
}

// ---------------------------------------------------------------------------
//  Public: Gin entry‑point
// ---------------------------------------------------------------------------

func (s *WsServer) Handle(ginCtx *gin.Context) {
	rawConn, err := upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.upgrade", zap.Error(err))
		return
	}
	rawConn.SetReadLimit(4096)

	// ─────────────────── Client joined ────────────────────────
	connID := uuid.NewString()
	sess := s.gameSvc.Connect(connID)

	wsConn := &clientConn{rawConn: rawConn}
	s.hub.Add(sess.UserID, wsConn)

	if err := s.pushInitialState(sess, wsConn); err != nil {
		zap.L().Warn("ws.initial_state", zap.Error(err))
	}

	go s.reader(connID, sess, wsConn)
	go s.pinger(wsConn)
}

// ---------------------------------------------------------------------------
//  Private helpers
// ---------------------------------------------------------------------------

func (s *WsServer) registerHandlers() {
	// 🔹 buttonClick ----------------------------------------------------------
	Register(
		s.router,
		"buttonClick",
		func(ctx context.Context, cc *ConnContext, req ClickBody) (AckBody, error) {
			err := s.gameSvc.AttemptClick(cc.Sess.UserID, req.ButtonID)
			return AckBody{}, squashSilent(err)
		},
	)

	// 🔹 createButton ---------------------------------------------------------
	Register(
		s.router,
		"createButton",
		func(ctx context.Context, cc *ConnContext, req CreateButtonBody) (game.UserButton, error) {
			return s.gameSvc.CreateButton(cc.Sess.UserID, game.ButtonConfig{
				Title:       req.Title,
				Description: req.Description,
				MaxUsers:    req.MaxUsers,
			})
		},
	)

	// 🔹 joinButton -----------------------------------------------------------
	Register(
		s.router,
		"joinButton",
		func(ctx context.Context, cc *ConnContext, req JoinButtonBody) (AckBody, error) {
			err := s.gameSvc.JoinButton(cc.Sess.UserID, req.ButtonID)
			if errors.Is(err, game.ErrNotFound) {
				return AckBody{}, nil
			}
			return AckBody{}, err
		},
	)

	// 🔹 leaveButton ----------------------------------------------------------
	Register(
		s.router,
		"leaveButton",
		func(ctx context.Context, cc *ConnContext, req JoinButtonBody) (AckBody, error) {
			err := s.gameSvc.LeaveButton(cc.Sess.UserID, req.ButtonID)
			return AckBody{}, squashSilent(err)
		},
	)

	// 🔹 sendMessage ----------------------------------------------------------
	Register(
		s.router,
		"sendMessage",
		func(ctx context.Context, cc *ConnContext, req SendMessageBody) (AckBody, error) {
			err := s.gameSvc.PostMessage(cc.Sess.UserID, req.Text)
			return AckBody{}, squashSilent(err)
		},
	)

	// 🔹 sendPrivateMessage ---------------------------------------------------
	Register(
		s.router,
		"sendPrivateMessage",
		func(ctx context.Context, cc *ConnContext, req SendMessageBody) (AckBody, error) {
			err := s.gameSvc.RouteMessage(cc.Sess.UserID, req.Text)
			return AckBody{}, squashSilent(err)
		},
	)
}

// squashSilent drops the error classes the protocol handles by inaction:
// wrong-phase actions, vanished buttons and stale sessions are not worth an
// error frame.
func squashSilent(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, game.ErrWrongPhase),
		errors.Is(err, game.ErrNotFound),
		errors.Is(err, game.ErrUnknownSession):
		zap.L().Debug("ws.ignored", zap.Error(err))
		return nil
	default:
		return err
	}
}

// initialStateBody carries everything a (re)connecting client needs to
// render: its identity, the round state, live buttons and the online count.
type initialStateBody struct {
	Session game.Session       `json:"session"`
	State   game.StateSnapshot `json:"state"`
	Buttons []game.UserButton  `json:"buttons"`
	Online  int                `json:"online"`
}

func (s *WsServer) pushInitialState(sess game.Session, conn *clientConn) error {
	return conn.writeJSON(map[string]any{
		"event": game.EventInitialState,
		"body": initialStateBody{
			Session: sess,
			State:   s.gameSvc.Snapshot(),
			Buttons: s.gameSvc.ListButtons(),
			Online:  s.gameSvc.OnlineCount(),
		},
	})
}

func (s *WsServer) reader(connID string, sess game.Session, conn *clientConn) {
	defer func() {
		// Disconnect runs the implicit-leave cleanup before the next event
		// for this user could be observed.
		s.gameSvc.Disconnect(connID)
		s.hub.Remove(sess.UserID)
	}()

	_ = conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	conn.rawConn.SetPongHandler(func(string) error {
		return conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	})

	cc := &ConnContext{ConnID: connID, Sess: sess, Server: s}

	for {
		var env Envelope
		if err := conn.rawConn.ReadJSON(&env); err != nil {
			return // client closed or errored
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1900*time.Millisecond)
		res, err := s.router.dispatch(ctx, cc, env)
		cancel()

		// ---- error -> {"event":"error", "body":{...}} ---------------
		if err != nil {
			_ = conn.writeJSON(map[string]any{
				"event": "error",
				"body":  ErrorBody{Error: err.Error()},
			})
			continue
		}

		// ---- success -> {"event":"<evt>-ack", "body":{...}} --------
		reply := map[string]any{"event": env.Event + "-ack"}
		if res != nil {
			reply["body"] = res
		}
		_ = conn.writeJSON(reply)
	}
}

func (s *WsServer) pinger(conn *clientConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.ping(); err != nil {
			conn.rawConn.Close()
			return
		}
	}
}
