package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/rpc"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/secroll/missteps/broadcast"
	"github.com/secroll/missteps/cards"
	"github.com/secroll/missteps/game"
	"github.com/secroll/missteps/logger"
	"github.com/secroll/missteps/models"
	"github.com/secroll/missteps/monitor"
	"github.com/secroll/missteps/network"
	missteprpc "github.com/secroll/missteps/rpc"
	"github.com/secroll/missteps/session"
	"github.com/secroll/missteps/timer"
)

// Defaults and limits applied to inbound join requests.
const (
	defaultRoomID = "alpha"
	defaultName   = "Analyst"
	maxRoomIDLen  = 32
	maxNameLen    = 24
)

type GameServer struct {
	addr           string
	upgrader       websocket.Upgrader
	rooms          *game.Manager
	sessionManager *session.Manager
	broadcaster    broadcast.Broadcaster
	rpcServer      *missteprpc.Server
	mon            *monitor.Monitor
	timers         *timer.Manager
	shutdownChan   chan struct{}
}

func NewGameServer(addr, rpcAddr string, lib *cards.Library, mon *monitor.Monitor) *GameServer {
	s := &GameServer{
		addr:           addr,
		sessionManager: session.NewManager(),
		mon:            mon,
		timers:         timer.NewManager(),
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	s.broadcaster = broadcast.NewRoomBroadcaster(s.sessionManager)
	s.rooms = game.NewManager(lib, s)

	rpcServer, err := missteprpc.NewServer(rpcAddr)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer
	rpc.Register(missteprpc.NewAdminService(s.rooms))

	if s.mon != nil {
		s.timers.Schedule(5*time.Second, 5*time.Second, func() {
			s.mon.SetActiveRooms(s.rooms.Count())
		})
	}

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()

	http.HandleFunc("/ws", s.handleWebSocket)
	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, nil)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.rpcServer.Stop()
	s.timers.Stop()
}

// RoomUpdated implements game.Notifier: every successful mutation fans the
// fresh snapshot out to the whole room.
func (s *GameServer) RoomUpdated(roomID string, snap *game.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		logger.Log.Errorf("Failed to marshal snapshot for room %s: %v", roomID, err)
		return
	}
	s.broadcaster.BroadcastToRoom(roomID, network.MsgTypeRoomState, data)
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	if s.mon != nil {
		s.mon.IncOnlinePlayers()
	}

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.handleLeave(sess)
		s.sessionManager.Remove(sess.GetID())
		if s.mon != nil {
			s.mon.DecOnlinePlayers()
		}
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			s.handlePacket(sess, packet)
		}
	}
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	start := time.Now()
	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		sess.LastActive = time.Now()
		return
	case network.MsgTypeJoinRoom:
		s.handleJoinRoom(sess, packet)
	case network.MsgTypeLeaveRoom:
		s.handleLeave(sess)
	case network.MsgTypeRoll:
		s.handleRoll(sess)
	case network.MsgTypeReset:
		s.handleReset(sess)
	case network.MsgTypeUseMitigation:
		s.handleUseMitigation(sess, packet)
	case network.MsgTypeAcceptMisstep:
		s.handleAcceptMisstep(sess)
	case network.MsgTypeShareIntel:
		s.handleShareIntel(sess)
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
		return
	}
	if s.mon != nil {
		s.mon.IncActions()
		s.mon.ObserveActionLatency(time.Since(start))
	}
}

func (s *GameServer) handleJoinRoom(sess *session.Session, packet *network.Packet) {
	var req models.JoinRoomRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		logger.Log.Warnf("Session %s sent a malformed join request: %v", sess.GetID(), err)
		return
	}

	roomID := sanitize(req.RoomID, defaultRoomID, maxRoomIDLen)
	name := sanitize(req.Name, defaultName, maxNameLen)

	room := s.rooms.GetOrCreate(roomID)
	sess.SetName(name)
	// Membership must be visible before Join broadcasts the snapshot.
	sess.SetRoom(roomID)

	if err := room.Join(sess.GetID(), name); err != nil {
		sess.SetRoom("")
		s.rooms.RemoveIfEmpty(roomID)
		s.toast(sess, models.ToastError, fmt.Sprintf("Room %s is full (%d players max).", roomID, game.MaxPlayers))
		return
	}

	logger.Log.Infof("Session %s joined room %s as %q", sess.GetID(), roomID, name)
	ack, _ := json.Marshal(models.Joined{PlayerID: sess.GetID(), RoomID: roomID})
	sess.Send(network.MsgTypeJoined, ack)
}

// handleLeave covers both the explicit leave message and the implicit
// disconnect. The room is garbage-collected the instant it empties.
func (s *GameServer) handleLeave(sess *session.Session) {
	roomID := sess.Room()
	if roomID == "" {
		return
	}
	sess.SetRoom("")

	room, ok := s.rooms.Get(roomID)
	if !ok {
		return
	}
	if empty := room.Leave(sess.GetID()); empty {
		s.rooms.RemoveIfEmpty(roomID)
		logger.Log.Infof("Room %s removed, last player left", roomID)
	}
}

func (s *GameServer) handleRoll(sess *session.Session) {
	room, ok := s.sessionRoom(sess)
	if !ok {
		return
	}
	err := room.Roll(sess.GetID())
	switch {
	case err == nil:
		if room.PendingFor(sess.GetID()) {
			s.toast(sess, models.ToastInfo, "Choose a mitigation or take the misstep.")
		}
	case errors.Is(err, game.ErrMitigationPending):
		s.toast(sess, models.ToastInfo, "Resolve the mitigation choice first.")
	case errors.Is(err, game.ErrGameFinished):
		s.toast(sess, models.ToastInfo, "Game finished. Reset to play again.")
	case errors.Is(err, game.ErrNotYourTurn):
		s.toast(sess, models.ToastInfo, "Not your turn yet.")
	default:
		// Unknown player or room raced a disconnect: silent no-op.
	}
}

func (s *GameServer) handleReset(sess *session.Session) {
	if room, ok := s.sessionRoom(sess); ok {
		room.Reset(sess.GetID())
	}
}

func (s *GameServer) handleUseMitigation(sess *session.Session, packet *network.Packet) {
	var req models.UseMitigationRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		logger.Log.Warnf("Session %s sent a malformed mitigation request: %v", sess.GetID(), err)
		return
	}
	if room, ok := s.sessionRoom(sess); ok {
		room.UseMitigation(sess.GetID(), req.MitigationID)
	}
}

func (s *GameServer) handleAcceptMisstep(sess *session.Session) {
	if room, ok := s.sessionRoom(sess); ok {
		room.AcceptMisstep(sess.GetID())
	}
}

func (s *GameServer) handleShareIntel(sess *session.Session) {
	room, ok := s.sessionRoom(sess)
	if !ok {
		return
	}
	err := room.ShareIntel(sess.GetID())
	switch {
	case errors.Is(err, game.ErrMitigationPending):
		s.toast(sess, models.ToastInfo, "Resolve the mitigation choice first.")
	case errors.Is(err, game.ErrIntelUnavailable):
		s.toast(sess, models.ToastInfo, "Share intel only when sharing a square with someone and not already attempted here.")
	}
}

func (s *GameServer) sessionRoom(sess *session.Session) (*game.Room, bool) {
	roomID := sess.Room()
	if roomID == "" {
		return nil, false
	}
	return s.rooms.Get(roomID)
}

func (s *GameServer) toast(sess *session.Session, kind, message string) {
	data, err := json.Marshal(models.Toast{Type: kind, Message: message})
	if err != nil {
		return
	}
	sess.Send(network.MsgTypeToast, data)
}

func sanitize(value, fallback string, maxLen int) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > maxLen {
		trimmed = trimmed[:maxLen]
	}
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
