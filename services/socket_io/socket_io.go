package socket_io

import (
	redis_client "Lingo/services/redis"
	"Lingo/services/socket_io/handlers"
	socketio_types "Lingo/services/socket_io/types"
	"Lingo/services/store"
	"Lingo/services/watchdog"
	"Lingo/services/words"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

// Start mounts the socket.io endpoint on the gin router and wires every
// gameplay command to its handler.
func (sio *MySocketServer) Start(router *gin.Engine, s *store.RoomStore,
	wordsSvc words.Service, redisClient *redis_client.RedisClient, wd *watchdog.Watchdog) {

	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	// KEY: initialize the maps, otherwise it panics
	sio.PlayerConnections = make(map[string]*socket.Socket)
	sio.Sessions = make(map[socket.SocketId]*socketio_types.PlayerSession)

	self := (*socketio_types.SocketServer)(sio)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		log.Printf("[CONNECT] New client connected: %s", client.Id())

		// Create a room and become its host
		client.On("create_room", handlers.HandleCreateRoom(s, redisClient, wd, client, self))

		// Join an existing room
		client.On("join_room", handlers.HandleJoinRoom(s, redisClient, wd, client, self))

		// Lobby settings
		client.On("update_language", handlers.HandleUpdateLanguage(s, wd, client, self))
		client.On("toggle_ready", handlers.HandleToggleReady(s, wd, client, self))
		client.On("update_target_score", handlers.HandleUpdateTargetScore(s, wd, client, self))
		client.On("update_game_mode", handlers.HandleUpdateGameMode(s, wd, client, self))

		// Start game (host only)
		client.On("start_game", handlers.HandleStartGame(s, wordsSvc, redisClient, wd, client, self))

		// Quiz answers (practice and competition modes)
		client.On("submit_answer", handlers.HandleSubmitAnswer(s, wordsSvc, wd, client, self))

		// Cooperative turn engine
		client.On("cooperation_answer", handlers.HandleCooperationAnswer(s, wordsSvc, wd, client, self))
		client.On("cooperation_timeout", handlers.HandleCooperationTimeout(s, wordsSvc, wd, client, self))

		// Restart (host only)
		client.On("restart_game", handlers.HandleRestartGame(s, redisClient, wd, client, self))

		// Leave the room voluntarily
		client.On("leave_room", handlers.HandleLeaveRoom(s, redisClient, wd, client, self))

		// Liveness and the best-effort typing relay
		client.On("room_activity_ping", handlers.HandleActivityPing(s, wd, client, self))
		client.On("typing_preview", handlers.HandleTypingPreview(client, self))

		// Directory poll
		client.On("get_directory", handlers.HandleGetDirectory(s, redisClient, client))

		// NOTE: behaves as leave for whatever room the socket was in
		client.On("disconnecting", handlers.HandleDisconnecting(s, redisClient, wd, client, self))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	log.Println("Socket server started")
}

// Close shuts the socket server down, used on SIGTERM.
func (sio *MySocketServer) Close() {
	if sio.Sio_server != nil {
		sio.Sio_server.Close(nil)
	}
}
