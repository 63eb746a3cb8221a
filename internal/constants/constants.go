// Package constants centralizes env keys, routes, JSON keys and user-facing
// error messages shared across the API surface.
package constants

const (
	// Environment variable keys
	EnvConfigPath = "QUIZCONQUEST_CONFIG"
	EnvDBPath     = "QUIZCONQUEST_DB"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Routes used by the backend router.
const (
	RouteAPIPrefix = "/api"

	RouteHealth  = "/health"
	RouteVersion = "/version"

	RouteGames               = "/games"
	RouteGameByID            = "/games/:gameID"
	RoutePhase1Selection     = "/games/:gameID/phase1/selection"
	RoutePhase1Resolve       = "/games/:gameID/phase1/resolve"
	RouteQuestion            = "/games/:gameID/question"
	RouteAnswer              = "/games/:gameID/answer"
	RouteResolveTurn         = "/games/:gameID/resolve"
	RouteBotTurn             = "/games/:gameID/bot-turn"
	RouteAnswerFeedback      = "/games/:gameID/feedback/answer"
	RouteEliminationFeedback = "/games/:gameID/feedback/elimination"
)

// Common JSON response keys.
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyState   = "state"
)

// Common error messages used across API handlers.
const (
	ErrInvalidRequest      = "Invalid request"
	ErrInvalidGameID       = "Invalid game ID"
	ErrGameNotFound        = "Game not found"
	ErrGameAlreadyOver     = "Game is already over"
	ErrNotYourTurn         = "Not this player's turn"
	ErrQuestionAlreadySet  = "A question is already active"
	ErrNoQuestionAvailable = "No question available"
	ErrAnswersStillPending = "Answers are still pending"
	ErrIllegalTarget       = "Illegal target field"
	ErrFailedCreateGame    = "Failed to create game"
	ErrFailedApplyAction   = "Failed to apply action"
)

// Logging field names.
const (
	LogFieldGameID   = "game_id"
	LogFieldPlayerID = "player_id"
	LogFieldFieldID  = "field_id"
	LogFieldPhase    = "phase"
	LogFieldRound    = "round"
	LogFieldReason   = "reason"
	LogFieldAddr     = "addr"
)
