package watchdog

import (
	game_constants "Lingo/constants/game"
	models "Lingo/models/postgres"
	redis_client "Lingo/services/redis"
	redis_utils "Lingo/services/redis/utils"
	socketio_types "Lingo/services/socket_io/types"
	socketio_utils "Lingo/services/socket_io/utils"
	"Lingo/services/store"
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

type roomActivity struct {
	lastActivity  time.Time
	warningIssued bool
}

// Watchdog tracks per-room liveness in memory, independent of the persisted
// last_activity column, and reaps rooms whose clients went away without
// saying goodbye. Single process only: a multi-process deployment would have
// to move this map into Redis.
type Watchdog struct {
	store       *store.RoomStore
	redisClient *redis_client.RedisClient
	sio         *socketio_types.SocketServer

	mu      sync.Mutex
	tracked map[string]*roomActivity

	// Thresholds live on the struct so tests can shrink them
	SweepInterval    time.Duration
	WarningThreshold time.Duration
	EvictThreshold   time.Duration
}

func NewWatchdog(s *store.RoomStore, redisClient *redis_client.RedisClient,
	sio *socketio_types.SocketServer) *Watchdog {
	return &Watchdog{
		store:            s,
		redisClient:      redisClient,
		sio:              sio,
		tracked:          make(map[string]*roomActivity),
		SweepInterval:    game_constants.SweepInterval,
		WarningThreshold: game_constants.WarningThreshold,
		EvictThreshold:   game_constants.EvictThreshold,
	}
}

// Start launches the fast in-memory sweep and the slow store-level cleanup.
func (w *Watchdog) Start() {
	go func() {
		ticker := time.NewTicker(w.SweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			w.Sweep(time.Now())
		}
	}()
	go func() {
		ticker := time.NewTicker(game_constants.DeepSweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			w.DeepSweep()
		}
	}()
	log.Println("[WATCHDOG] Sweeps started")
}

// Track registers a room for liveness monitoring.
func (w *Watchdog) Track(roomID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.tracked[roomID]; !exists {
		w.tracked[roomID] = &roomActivity{lastActivity: time.Now()}
	}
}

// Touch resets a room's idle clock and clears any pending warning. Every
// activity-bearing command lands here.
func (w *Watchdog) Touch(roomID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	activity, exists := w.tracked[roomID]
	if !exists {
		activity = &roomActivity{}
		w.tracked[roomID] = activity
	}
	activity.lastActivity = time.Now()
	activity.warningIssued = false
}

// Untrack drops local bookkeeping for a room that no longer exists.
func (w *Watchdog) Untrack(roomID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.tracked, roomID)
}

// Sweep walks the tracked rooms once: warn the ones past the warning
// threshold, evict the ones past the eviction threshold. A failure on one
// room never stops the sweep over the rest.
func (w *Watchdog) Sweep(now time.Time) {
	w.mu.Lock()
	type candidate struct {
		roomID string
		idle   time.Duration
		warned bool
	}
	candidates := make([]candidate, 0, len(w.tracked))
	for roomID, activity := range w.tracked {
		candidates = append(candidates, candidate{
			roomID: roomID,
			idle:   now.Sub(activity.lastActivity),
			warned: activity.warningIssued,
		})
	}
	w.mu.Unlock()

	for _, c := range candidates {
		if c.idle < w.WarningThreshold {
			continue
		}

		room, err := w.store.GetRoom(c.roomID)
		if err != nil {
			log.Printf("[WATCHDOG-ERROR] Error loading room %s: %v", c.roomID, err)
			continue
		}
		if room == nil {
			w.Untrack(c.roomID)
			continue
		}

		evictAfter := w.EvictThreshold
		if room.GameState == game_constants.StateFinished {
			evictAfter *= game_constants.FinishedGraceMultiplier
		}

		// Eviction only after a warning went out on an earlier sweep, so a
		// room always sees its countdown before it is closed
		if c.idle >= evictAfter && c.warned {
			if err := w.evict(room); err != nil {
				log.Printf("[WATCHDOG-ERROR] Error evicting room %s: %v", c.roomID, err)
			}
			continue
		}

		if !c.warned {
			remaining := evictAfter - c.idle
			if remaining < 0 {
				remaining = 0
			}
			log.Printf("[WATCHDOG] Room %s idle for %s, warning issued", c.roomID, c.idle)
			socketio_utils.EmitToRoom(w.sio.Sio_server, c.roomID, "room_warning", gin.H{
				"room_id":           c.roomID,
				"seconds_remaining": int(remaining.Seconds()),
				"message":           "Room will close due to inactivity",
			})
			w.markWarned(c.roomID)
		}
	}
}

func (w *Watchdog) markWarned(roomID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if activity, exists := w.tracked[roomID]; exists {
		activity.warningIssued = true
	}
}

// evict force-closes one room: notify everyone, disconnect their sockets
// from the room channel, wipe the store and the local tracking.
func (w *Watchdog) evict(room *models.GameRoom) error {
	log.Printf("[WATCHDOG] Evicting inactive room %s", room.ID)

	socketio_utils.EmitToRoom(w.sio.Sio_server, room.ID, "room_closed", gin.H{
		"room_id": room.ID,
		"reason":  "inactivity",
	})

	staleKeys := make([]string, 0, len(room.Players))
	for _, p := range room.Players {
		if client, exists := w.sio.GetConnection(p.ID); exists {
			client.Emit("force_disconnect", gin.H{"room_id": room.ID, "reason": "room closed"})
			client.Leave(socket.Room(room.ID))
		}
		staleKeys = append(staleKeys, redis_utils.PresenceKey(p.ID))
	}
	if w.redisClient != nil && len(staleKeys) > 0 {
		if err := w.redisClient.CleanupKeys(staleKeys); err != nil {
			log.Printf("[WATCHDOG] Error dropping presence keys for room %s: %v", room.ID, err)
		}
	}

	if err := w.store.RemoveAllPlayers(room.ID); err != nil {
		return err
	}
	w.Untrack(room.ID)

	socketio_utils.BroadcastDirectory(w.store, w.redisClient, w.sio.Sio_server)
	return nil
}

// DeepSweep is the slow store-level cleanup, independent of the in-memory
// map. It catches rooms orphaned by a process restart.
func (w *Watchdog) DeepSweep() {
	ids, err := w.store.StaleRooms()
	if err != nil {
		log.Printf("[WATCHDOG-ERROR] Deep sweep query failed: %v", err)
		return
	}
	for _, id := range ids {
		room, err := w.store.GetRoom(id)
		if err != nil || room == nil {
			continue
		}
		if err := w.evict(room); err != nil {
			log.Printf("[WATCHDOG-ERROR] Deep sweep failed for room %s: %v", id, err)
		}
	}
	if len(ids) > 0 {
		log.Printf("[WATCHDOG] Deep sweep removed %d stale rooms", len(ids))
	}
}
