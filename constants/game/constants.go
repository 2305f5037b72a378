package game_constants

import "time"

// Room settings
const MaxPlayersPerRoom = 8
const DefaultTargetScore = 100
const CooperationPlayers = 2 // cooperative mode is strictly two players
const CooperationStartLives = 3
const CooperationTurnSeconds = 5

// Target scores a host is allowed to pick
var ValidTargetScores = []int{100, 250, 500}

func IsValidTargetScore(score int) bool {
	for _, s := range ValidTargetScores {
		if s == score {
			return true
		}
	}
	return false
}

// Quiz scoring
const WrongAnswerPenalty = 5

// Game states
const (
	StateLobby    = "lobby"
	StatePlaying  = "playing"
	StateFinished = "finished"
)

// Game modes
const (
	ModePractice    = "practice"
	ModeCompetition = "competition"
	ModeCooperation = "cooperation"
	ModeNone        = "none"
)

func IsValidGameMode(mode string) bool {
	switch mode {
	case ModePractice, ModeCompetition, ModeCooperation:
		return true
	}
	return false
}

// Watchdog sweep timing
const (
	SweepInterval    = 10 * time.Second
	WarningThreshold = 90 * time.Second
	EvictThreshold   = 120 * time.Second
	// Finished rooms keep their result on screen, give them double grace
	FinishedGraceMultiplier = 2

	// Store-level cleanup, covers gaps left by process restarts
	DeepSweepInterval = 10 * time.Minute
	MaxRoomAge        = 4 * time.Hour
	MaxRoomIdle       = time.Hour
)

// Directory
const DirectoryMaxIdle = time.Hour
const DirectoryCacheTTL = 30 * time.Second
