package socketio_utils

import (
	models "Lingo/models/postgres"
	socketio_types "Lingo/services/socket_io/types"
	"Lingo/services/store"
	"fmt"
	"log"

	"github.com/zishang520/socket.io/v2/socket"
)

// RequireSession resolves which player a socket speaks for. Commands other
// than create/join are meaningless before a session exists.
func RequireSession(sio *socketio_types.SocketServer, client *socket.Socket) (*socketio_types.PlayerSession, bool) {
	session, exists := sio.GetSession(client.Id())
	if !exists {
		EmitError(client, KindForbidden, "Join a room first")
		return nil, false
	}
	return session, true
}

// LoadRoomAndPlayer fetches the caller's room and their own player row,
// emitting the right error kind on every miss.
func LoadRoomAndPlayer(s *store.RoomStore, client *socket.Socket,
	session *socketio_types.PlayerSession) (*models.GameRoom, *models.RoomPlayer, error) {

	room, err := s.GetRoom(session.RoomID)
	if err != nil {
		log.Printf("[VALIDATE-ERROR] Error fetching room %s: %v", session.RoomID, err)
		EmitError(client, KindInternal, "Database error")
		return nil, nil, err
	}
	if room == nil {
		EmitError(client, KindNotFound, "Room not found")
		return nil, nil, fmt.Errorf("room %s not found", session.RoomID)
	}

	for _, p := range room.Players {
		if p.ID == session.PlayerID {
			return room, p, nil
		}
	}
	EmitError(client, KindNotFound, "Player not found in room")
	return nil, nil, fmt.Errorf("player %s not in room %s", session.PlayerID, session.RoomID)
}

// RequireHost rejects the command unless the caller holds host privileges.
func RequireHost(client *socket.Socket, player *models.RoomPlayer) bool {
	if !player.IsHost {
		EmitError(client, KindForbidden, "Only the host can do that")
		return false
	}
	return true
}
