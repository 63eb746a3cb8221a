package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mkadlec/quizconquest/internal/constants"
	"github.com/mkadlec/quizconquest/internal/game"
	"github.com/mkadlec/quizconquest/internal/service"
	"github.com/mkadlec/quizconquest/internal/version"
)

// GameHandler exposes the game service over HTTP.
type GameHandler struct {
	svc *service.Service
}

func NewGameHandler(svc *service.Service) *GameHandler {
	return &GameHandler{svc: svc}
}

func (h *GameHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET(constants.RouteHealth, h.health)
	r.GET(constants.RouteVersion, h.version)

	r.POST(constants.RouteGames, h.createGame)
	r.GET(constants.RouteGames, h.recentMatches)
	r.GET(constants.RouteGameByID, h.getGame)
	r.DELETE(constants.RouteGameByID, h.resetGame)

	r.POST(constants.RoutePhase1Selection, h.setPhase1Selection)
	r.POST(constants.RoutePhase1Resolve, h.resolvePhase1)
	r.POST(constants.RouteQuestion, h.startQuestion)
	r.POST(constants.RouteAnswer, h.submitAnswer)
	r.POST(constants.RouteResolveTurn, h.resolveTurn)
	r.POST(constants.RouteBotTurn, h.botTurn)
	r.POST(constants.RouteAnswerFeedback, h.clearAnswerFeedback)
	r.POST(constants.RouteEliminationFeedback, h.clearEliminationFeedback)
}

func (h *GameHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *GameHandler) version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
		"dirty":   version.Dirty,
	})
}

type createGameRequest struct {
	PlayerCount int      `json:"player_count" binding:"required"`
	HumanName   string   `json:"human_name" binding:"required"`
	Difficulty  string   `json:"difficulty"`
	Categories  []string `json:"categories"`
	Language    string   `json:"language"`
}

func (h *GameHandler) createGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	categories := make([]game.Category, 0, len(req.Categories))
	for _, cat := range req.Categories {
		categories = append(categories, game.Category(cat))
	}
	s, err := h.svc.CreateGame(service.CreateGameParams{
		PlayerCount: req.PlayerCount,
		HumanName:   req.HumanName,
		Difficulty:  game.Difficulty(req.Difficulty),
		Categories:  categories,
		Language:    req.Language,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *GameHandler) recentMatches(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	matches, err := h.svc.RecentMatches(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

func (h *GameHandler) getGame(c *gin.Context) {
	s, err := h.svc.GetGame(c.Param("gameID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *GameHandler) resetGame(c *gin.Context) {
	s, err := h.svc.ResetGame(c.Param("gameID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

type phase1SelectionRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	FieldID  *int   `json:"field_id" binding:"required"`
}

func (h *GameHandler) setPhase1Selection(c *gin.Context) {
	var req phase1SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	s, err := h.svc.SetPhase1Selection(c.Param("gameID"), game.PlayerID(req.PlayerID), game.FieldID(*req.FieldID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

type phase1ResolveRequest struct {
	HumanCorrect bool `json:"human_correct"`
}

func (h *GameHandler) resolvePhase1(c *gin.Context) {
	var req phase1ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	s, err := h.svc.ResolvePhase1(c.Param("gameID"), req.HumanCorrect)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

type startQuestionRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	FieldID  *int   `json:"field_id" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

func (h *GameHandler) startQuestion(c *gin.Context) {
	var req startQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	action := game.ActionKind(req.Action)
	if action != game.ActionAttack && action != game.ActionHeal {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	s, err := h.svc.StartQuestion(c.Param("gameID"), game.PlayerID(req.PlayerID), game.FieldID(*req.FieldID), action)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

type submitAnswerRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	Answer   string `json:"answer"`
}

func (h *GameHandler) submitAnswer(c *gin.Context) {
	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	s, err := h.svc.SubmitAnswer(c.Param("gameID"), game.PlayerID(req.PlayerID), req.Answer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *GameHandler) resolveTurn(c *gin.Context) {
	s, err := h.svc.ResolveTurn(c.Param("gameID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *GameHandler) botTurn(c *gin.Context) {
	s, err := h.svc.BotTurn(c.Param("gameID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *GameHandler) clearAnswerFeedback(c *gin.Context) {
	s, err := h.svc.ClearAnswerFeedback(c.Param("gameID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *GameHandler) clearEliminationFeedback(c *gin.Context) {
	s, err := h.svc.ClearEliminationFeedback(c.Param("gameID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
