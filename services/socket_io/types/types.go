package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// PlayerSession is the transient per-connection bookkeeping: which player
// this socket speaks for and which room it subscribed to. Never
// authoritative, the store owns membership.
type PlayerSession struct {
	PlayerID string
	RoomID   string
	Name     string
}

// SocketServer is a struct that contains the socket.io server, a map of
// socket connections and the per-socket sessions.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track playerID -> socket connections
	PlayerConnections map[string]*socket.Socket
	// Map to track socket id -> session
	Sessions map[socket.SocketId]*PlayerSession
	mutex    sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		PlayerConnections: make(map[string]*socket.Socket),
		Sessions:          make(map[socket.SocketId]*PlayerSession),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(playerID string, client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.PlayerConnections[playerID] = client
}

func (s *SocketServer) RemoveConnection(playerID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.PlayerConnections, playerID)
}

func (s *SocketServer) GetConnection(playerID string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	client, exists := s.PlayerConnections[playerID]
	return client, exists
}

// SetSession binds a socket to a player and room after create/join.
func (s *SocketServer) SetSession(id socket.SocketId, session *PlayerSession) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Sessions[id] = session
}

func (s *SocketServer) GetSession(id socket.SocketId) (*PlayerSession, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	session, exists := s.Sessions[id]
	return session, exists
}

func (s *SocketServer) ClearSession(id socket.SocketId) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.Sessions, id)
}
