package rpc

import (
	"errors"
	"net"
	"net/rpc"
	"sort"

	"github.com/secroll/missteps/game"
	"github.com/secroll/missteps/logger"
)

var ErrRoomNotFound = errors.New("room not found")

// Server manages the RPC listener used by ops tooling.
type Server struct {
	listener net.Listener
	address  string
}

func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// AdminService exposes read-only room inspection over net/rpc.
type AdminService struct {
	rooms *game.Manager
}

func NewAdminService(rooms *game.Manager) *AdminService {
	return &AdminService{rooms: rooms}
}

type ListRoomsArgs struct{}

type ListRoomsReply struct {
	RoomIDs []string
}

func (a *AdminService) ListRooms(args *ListRoomsArgs, reply *ListRoomsReply) error {
	ids := a.rooms.RoomIDs()
	sort.Strings(ids)
	reply.RoomIDs = ids
	return nil
}

type RoomSnapshotArgs struct {
	RoomID string
}

type RoomSnapshotReply struct {
	Snapshot *game.Snapshot
}

func (a *AdminService) RoomSnapshot(args *RoomSnapshotArgs, reply *RoomSnapshotReply) error {
	room, ok := a.rooms.Get(args.RoomID)
	if !ok {
		return ErrRoomNotFound
	}
	reply.Snapshot = room.Snapshot()
	return nil
}
