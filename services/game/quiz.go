package game

import (
	game_constants "Lingo/constants/game"
	models "Lingo/models/postgres"
	"Lingo/services/store"
	"Lingo/services/words"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// ScoreAnswer applies the quiz scoring rule to a current score. A correct
// answer earns the remaining time (at least 1 point); a wrong or timed-out
// answer costs a fixed penalty, floored at zero.
func ScoreAnswer(current int, correct bool, timeLeft int) int {
	if correct {
		gain := timeLeft
		if gain < 1 {
			gain = 1
		}
		return current + gain
	}
	next := current - game_constants.WrongAnswerPenalty
	if next < 0 {
		next = 0
	}
	return next
}

// HasWon reports whether a score reaches the room target. A zero score never
// wins, even with a zero target misconfiguration.
func HasWon(score, targetScore int) bool {
	return score >= targetScore && score > 0
}

// QuizLanguage resolves which language a player's questions are generated
// in: their own pick in practice mode, the shared host language in
// competition mode.
func QuizLanguage(room *models.GameRoom, player *models.RoomPlayer) (string, error) {
	switch room.GameMode {
	case game_constants.ModePractice:
		if player.Language == nil {
			return "", fmt.Errorf("player %s has no language", player.ID)
		}
		return *player.Language, nil
	case game_constants.ModeCompetition:
		if room.HostLanguage == nil {
			return "", fmt.Errorf("room %s has no host language", room.ID)
		}
		return *room.HostLanguage, nil
	}
	return "", fmt.Errorf("mode %s has no quiz language", room.GameMode)
}

// IssueQuestion generates and persists the next question for one player.
func IssueQuestion(s *store.RoomStore, gen words.QuestionGenerator,
	room *models.GameRoom, player *models.RoomPlayer) (*words.Question, error) {

	language, err := QuizLanguage(room, player)
	if err != nil {
		return nil, err
	}

	question, err := gen.Generate(language)
	if err != nil {
		return nil, fmt.Errorf("error generating question: %v", err)
	}

	raw, err := json.Marshal(question)
	if err != nil {
		return nil, fmt.Errorf("error encoding question: %v", err)
	}

	if err := s.UpdatePlayer(player.ID, map[string]interface{}{
		"current_question": raw,
	}); err != nil {
		return nil, err
	}
	return question, nil
}

// AnswerOutcome reports what a submitted answer did to the game.
type AnswerOutcome struct {
	Correct      bool
	NewScore     int
	Won          bool
	NextQuestion *words.Question
}

// ResolveAnswer processes one quiz answer: rescore the player, finish the
// game if the target was reached, otherwise hand them their next question.
// Correctness is the literal match against the question's correct answer,
// echoed back by the client that owns the countdown.
func ResolveAnswer(s *store.RoomStore, gen words.QuestionGenerator,
	room *models.GameRoom, player *models.RoomPlayer,
	answer, correctAnswer string, timeLeft int) (*AnswerOutcome, error) {

	outcome := &AnswerOutcome{Correct: answer == correctAnswer}
	outcome.NewScore = ScoreAnswer(player.Score, outcome.Correct, timeLeft)

	if err := s.UpdatePlayer(player.ID, map[string]interface{}{
		"score": outcome.NewScore,
	}); err != nil {
		return nil, err
	}

	if HasWon(outcome.NewScore, room.TargetScore) {
		outcome.Won = true
		// Winner found: close the game and clear every open question
		if err := s.UpdateRoom(room.ID, map[string]interface{}{
			"game_state": game_constants.StateFinished,
			"winner_id":  player.ID,
		}); err != nil {
			return nil, err
		}
		return outcome, clearQuestions(s, room)
	}

	player.Score = outcome.NewScore
	question, err := IssueQuestion(s, gen, room, player)
	if err != nil {
		return nil, err
	}
	outcome.NextQuestion = question

	// SQL-level increment, concurrent answers must not lose counts
	if err := s.UpdateRoom(room.ID, map[string]interface{}{
		"question_count": gorm.Expr("question_count + 1"),
	}); err != nil {
		return nil, err
	}
	return outcome, nil
}

func clearQuestions(s *store.RoomStore, room *models.GameRoom) error {
	for _, p := range room.Players {
		if err := s.UpdatePlayer(p.ID, map[string]interface{}{
			"current_question": nil,
		}); err != nil {
			return err
		}
	}
	return nil
}
