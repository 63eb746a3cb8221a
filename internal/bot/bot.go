package bot

import (
	"math/rand"

	"github.com/mkadlec/quizconquest/internal/engine"
	"github.com/mkadlec/quizconquest/internal/game"
)

// healChance is how often a bot with a damaged base repairs it instead of
// attacking.
const healChance = 0.35

// Decision is a bot's chosen move for its attack-phase turn. When PassReason
// is non-empty the bot has no legal move and the turn must be passed.
type Decision struct {
	Action        game.ActionKind
	TargetFieldID game.FieldID
	PassReason    string
}

// ChoosePhase1Field picks an unclaimed neutral field for the land-grab round,
// avoiding fields another player already selected this round.
func ChoosePhase1Field(s *game.State, botID game.PlayerID, rng *rand.Rand) (game.FieldID, bool) {
	taken := make(map[game.FieldID]struct{}, len(s.Phase1Selections))
	for pid, sel := range s.Phase1Selections {
		if pid != botID && sel != nil {
			taken[*sel] = struct{}{}
		}
	}
	var candidates []game.FieldID
	for _, f := range s.Board {
		if f.Type != game.FieldNeutral || f.OwnerID != "" {
			continue
		}
		if _, ok := taken[f.ID]; ok {
			continue
		}
		candidates = append(candidates, f.ID)
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[rng.Intn(len(candidates))], true
}

// ChooseAction picks the bot's move for its attack-phase turn.
func ChooseAction(s *game.State, botID game.PlayerID, rng *rand.Rand) Decision {
	bot := s.PlayerByID(botID)
	if bot == nil || bot.IsEliminated {
		return Decision{PassReason: "player unavailable"}
	}

	if base := ownBase(s, botID); base != nil && base.HP < base.MaxHP {
		if rng.Float64() < healChance {
			return Decision{Action: game.ActionHeal, TargetFieldID: base.ID}
		}
	}

	var candidates []game.FieldID
	for _, f := range s.Board {
		switch f.Type {
		case game.FieldBlack:
			candidates = append(candidates, f.ID)
		case game.FieldPlayerBase:
			if f.OwnerID != botID {
				candidates = append(candidates, f.ID)
			}
		case game.FieldNeutral:
			if f.OwnerID == "" || f.OwnerID == botID {
				continue
			}
			if bot.HasUsedCategory(f.Category) {
				continue
			}
			candidates = append(candidates, f.ID)
		}
	}
	if len(candidates) == 0 {
		return Decision{PassReason: "no legal target"}
	}
	return Decision{
		Action:        game.ActionAttack,
		TargetFieldID: candidates[rng.Intn(len(candidates))],
	}
}

// AnswerFor simulates a bot answering a question: with probability accuracy
// it answers correctly, otherwise it produces an answer guaranteed not to
// match the correct one.
func AnswerFor(q *game.Question, accuracy float64, rng *rand.Rand) string {
	if rng.Float64() < accuracy {
		return q.CorrectAnswer
	}
	for _, opt := range q.Options {
		if !engine.AnswerMatches(opt, q.CorrectAnswer) {
			return opt
		}
	}
	// Open-ended miss: appending to the correct answer keeps the strings
	// unequal under normalization for any bank entry.
	return q.CorrectAnswer + "?"
}

func ownBase(s *game.State, id game.PlayerID) *game.Field {
	for i := range s.Board {
		f := &s.Board[i]
		if f.Type == game.FieldPlayerBase && f.OwnerID == id {
			return f
		}
	}
	return nil
}
