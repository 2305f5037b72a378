package game

import (
	game_constants "Lingo/constants/game"
	models "Lingo/models/postgres"
	"Lingo/services/store"
	"Lingo/services/words"
	"encoding/json"
	"fmt"
)

// NextChallengePlayer picks the cooperative player whose turn is next:
// whichever of the room's two players did not just act. With no previous
// actor (the very first turn) the earliest-joined player starts.
func NextChallengePlayer(players []*models.RoomPlayer, lastActor string) (string, error) {
	if len(players) != game_constants.CooperationPlayers {
		return "", fmt.Errorf("cooperative room has %d players, want %d",
			len(players), game_constants.CooperationPlayers)
	}
	if lastActor == "" {
		return players[0].ID, nil
	}
	for _, p := range players {
		if p.ID != lastActor {
			return p.ID, nil
		}
	}
	// lastActor no longer in the room, fall back to whoever is first
	return players[0].ID, nil
}

// UsedWordList decodes the room's used-word set.
func UsedWordList(room *models.GameRoom) ([]string, error) {
	var used []string
	if len(room.UsedWords) == 0 {
		return used, nil
	}
	if err := json.Unmarshal(room.UsedWords, &used); err != nil {
		return nil, fmt.Errorf("error decoding used words for room %s: %v", room.ID, err)
	}
	return used, nil
}

func containsWord(used []string, wordID string) bool {
	for _, w := range used {
		if w == wordID {
			return true
		}
	}
	return false
}

// StartCooperationTurn advances the turn: pick a fresh category, designate
// the player who did not just act, persist both. The caller broadcasts the
// challenge.
func StartCooperationTurn(s *store.RoomStore, picker words.CategoryPicker,
	room *models.GameRoom, lastActor string) error {

	nextPlayer, err := NextChallengePlayer(room.Players, lastActor)
	if err != nil {
		return err
	}

	if room.HostLanguage == nil {
		return fmt.Errorf("cooperative room %s has no language", room.ID)
	}
	category, err := picker.RandomCategory(*room.HostLanguage)
	if err != nil {
		return fmt.Errorf("error picking category: %v", err)
	}

	if err := s.UpdateRoom(room.ID, map[string]interface{}{
		"current_challenge_player": nextPlayer,
		"current_category":         category,
	}); err != nil {
		return err
	}
	room.CurrentChallengePlayer = &nextPlayer
	room.CurrentCategory = &category
	return nil
}

// CooperationOutcome reports a resolved cooperative action.
type CooperationOutcome struct {
	Accepted  bool
	Rejected  bool // invalid or already-used word, same player retries
	Lives     int
	Score     int
	GameOver  bool
	NextActor string
}

// ResolveCooperationAnswer validates a submitted word against the current
// category. A valid, unused word scores a point and passes the turn; an
// invalid or duplicate word changes nothing and the same player retries.
func ResolveCooperationAnswer(s *store.RoomStore, svc words.Service,
	room *models.GameRoom, playerID, answer string) (*CooperationOutcome, error) {

	if room.CurrentChallengePlayer == nil || *room.CurrentChallengePlayer != playerID {
		return nil, fmt.Errorf("not player %s's turn", playerID)
	}
	if room.CurrentCategory == nil || room.HostLanguage == nil {
		return nil, fmt.Errorf("room %s has no active challenge", room.ID)
	}

	result, err := svc.Validate(*room.HostLanguage, *room.CurrentCategory, answer)
	if err != nil {
		return nil, fmt.Errorf("error validating word: %v", err)
	}

	used, err := UsedWordList(room)
	if err != nil {
		return nil, err
	}

	outcome := &CooperationOutcome{Lives: room.CooperationLives, Score: room.CooperationScore}

	if !result.Valid || containsWord(used, result.WordID) {
		outcome.Rejected = true
		return outcome, nil
	}

	used = append(used, result.WordID)
	raw, err := json.Marshal(used)
	if err != nil {
		return nil, fmt.Errorf("error encoding used words: %v", err)
	}

	outcome.Accepted = true
	outcome.Score = room.CooperationScore + 1

	if err := s.UpdateRoom(room.ID, map[string]interface{}{
		"cooperation_score": outcome.Score,
		"used_words":        raw,
	}); err != nil {
		return nil, err
	}
	room.CooperationScore = outcome.Score
	room.UsedWords = raw

	if err := StartCooperationTurn(s, svc, room, playerID); err != nil {
		return nil, err
	}
	outcome.NextActor = *room.CurrentChallengePlayer
	return outcome, nil
}

// ResolveCooperationTimeout burns one life. At zero lives the game is over;
// otherwise the turn passes to the other player.
func ResolveCooperationTimeout(s *store.RoomStore, picker words.CategoryPicker,
	room *models.GameRoom, playerID string) (*CooperationOutcome, error) {

	if room.CurrentChallengePlayer == nil || *room.CurrentChallengePlayer != playerID {
		return nil, fmt.Errorf("not player %s's turn", playerID)
	}

	lives := room.CooperationLives - 1
	if lives < 0 {
		lives = 0
	}

	outcome := &CooperationOutcome{Lives: lives, Score: room.CooperationScore}

	if lives == 0 {
		outcome.GameOver = true
		return outcome, s.UpdateRoom(room.ID, map[string]interface{}{
			"cooperation_lives":        0,
			"game_state":               game_constants.StateFinished,
			"current_challenge_player": nil,
			"current_category":         nil,
		})
	}

	if err := s.UpdateRoom(room.ID, map[string]interface{}{
		"cooperation_lives": lives,
	}); err != nil {
		return nil, err
	}
	room.CooperationLives = lives

	if err := StartCooperationTurn(s, picker, room, playerID); err != nil {
		return nil, err
	}
	outcome.NextActor = *room.CurrentChallengePlayer
	return outcome, nil
}
