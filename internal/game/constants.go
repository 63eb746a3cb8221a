package game

// Board layout.
const (
	BaseHP  = 3
	FieldHP = 1
)

// Phase lengths in rounds.
const (
	Phase1Rounds = 3
	Phase2Rounds = 6
)

// Score deltas. Negative values are penalties.
const (
	ScorePhase1Claim        = 100
	ScoreHealSuccess        = 75
	ScoreHealFailPenalty    = -50
	ScoreBlackFieldClaim    = 200
	ScoreBlackFieldFail     = -150
	ScoreAttackDamage       = 50
	ScoreAttackWin          = 100
	ScoreAttackLossDefender = -50
	ScoreAttackLossAttacker = -75
	ScoreAttackWinDefender  = 100
	ScoreBaseDestroyBonus   = 500
)

// Coin rewards.
const (
	CoinsEliminationBonus = 100
)

// AccuracyForDifficulty returns the default probability that a bot answers a
// question correctly. Values may be overridden from the config file.
func AccuracyForDifficulty(d Difficulty) float64 {
	switch d {
	case DifficultyEasy:
		return 0.45
	case DifficultyHard:
		return 0.85
	default:
		return 0.65
	}
}
