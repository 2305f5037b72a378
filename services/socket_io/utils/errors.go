package socketio_utils

import (
	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Error kinds attached to every command rejection, so clients can branch
// without parsing message text.
const (
	KindNotFound   = "not_found"
	KindForbidden  = "forbidden"
	KindBadRequest = "bad_request"
	KindConflict   = "conflict"
	KindInternal   = "internal"
)

// EmitError acknowledges a failed command to its caller.
func EmitError(client *socket.Socket, kind, message string) {
	client.Emit("error", gin.H{"error": message, "kind": kind})
}
