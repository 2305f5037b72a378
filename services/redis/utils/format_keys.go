package redis_utils

import "fmt"

// DirectoryKey is where the joinable-room snapshot is cached.
func DirectoryKey() string {
	return "directory:joinable"
}

// PresenceKey tracks a connected player.
// Key format: "presence:{playerID}"
func PresenceKey(playerID string) string {
	return fmt.Sprintf("presence:%s", playerID)
}
