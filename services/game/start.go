package game

import (
	game_constants "Lingo/constants/game"
	models "Lingo/models/postgres"
	"Lingo/services/store"
	"Lingo/services/words"
	"fmt"
	"log"
)

// CheckStartConditions validates that a room may leave the lobby. Every
// player must have picked a language and be ready; cooperative mode
// additionally needs exactly two players.
func CheckStartConditions(room *models.GameRoom) error {
	if room.GameState != game_constants.StateLobby {
		return fmt.Errorf("game already started")
	}
	if !game_constants.IsValidGameMode(room.GameMode) {
		return fmt.Errorf("no game mode selected")
	}
	if len(room.Players) == 0 {
		return fmt.Errorf("room has no players")
	}
	if room.GameMode == game_constants.ModeCooperation &&
		len(room.Players) != game_constants.CooperationPlayers {
		return fmt.Errorf("cooperative mode needs exactly %d players",
			game_constants.CooperationPlayers)
	}
	for _, p := range room.Players {
		if p.Language == nil {
			return fmt.Errorf("player %s has not picked a language", p.Name)
		}
		if !p.Ready {
			return fmt.Errorf("player %s is not ready", p.Name)
		}
	}
	return nil
}

// StartGame transitions a room from lobby to playing and deals the initial
// question or challenge per mode. Caller has already checked host privilege
// and start conditions.
func StartGame(s *store.RoomStore, svc words.Service, room *models.GameRoom) error {
	fields := map[string]interface{}{
		"game_state":     game_constants.StatePlaying,
		"question_count": 0,
		"winner_id":      nil,
	}

	switch room.GameMode {
	case game_constants.ModeCompetition:
		// The shared quiz language is whatever the host picked
		host := hostOf(room)
		if host == nil || host.Language == nil {
			return fmt.Errorf("competition mode needs a host language")
		}
		fields["host_language"] = *host.Language
		room.HostLanguage = host.Language

	case game_constants.ModeCooperation:
		// Challenges run in a shared language, the host's pick
		host := hostOf(room)
		if host == nil || host.Language == nil {
			return fmt.Errorf("cooperative mode needs a host language")
		}
		fields["host_language"] = *host.Language
		room.HostLanguage = host.Language
		fields["cooperation_lives"] = game_constants.CooperationStartLives
		fields["cooperation_score"] = 0
		fields["used_words"] = []byte("[]")
	}

	if err := s.UpdateRoom(room.ID, fields); err != nil {
		return err
	}
	room.GameState = game_constants.StatePlaying

	if room.GameMode == game_constants.ModeCooperation {
		// First challenge: the acting player is arbitrary, alternation
		// starts from whoever we pick here
		return StartCooperationTurn(s, svc, room, "")
	}

	for _, p := range room.Players {
		if _, err := IssueQuestion(s, svc, room, p); err != nil {
			log.Printf("[START-ERROR] Error issuing question to player %s: %v", p.ID, err)
			return err
		}
	}
	return nil
}

// ResetRoom takes a room back to a clean lobby: scores zeroed, readiness and
// questions cleared, target score back to the default.
func ResetRoom(s *store.RoomStore, room *models.GameRoom) error {
	if err := s.UpdateRoom(room.ID, map[string]interface{}{
		"game_state":               game_constants.StateLobby,
		"winner_id":                nil,
		"target_score":             game_constants.DefaultTargetScore,
		"question_count":           0,
		"cooperation_lives":        0,
		"cooperation_score":        0,
		"used_words":               []byte("[]"),
		"current_challenge_player": nil,
		"current_category":         nil,
		"host_language":            nil,
	}); err != nil {
		return err
	}
	for _, p := range room.Players {
		if err := s.UpdatePlayer(p.ID, map[string]interface{}{
			"score":            0,
			"ready":            false,
			"current_question": nil,
		}); err != nil {
			return err
		}
	}
	return nil
}

func hostOf(room *models.GameRoom) *models.RoomPlayer {
	for _, p := range room.Players {
		if p.IsHost {
			return p
		}
	}
	return nil
}
