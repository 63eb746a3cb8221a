package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkadlec/quizconquest/internal/constants"
	"github.com/mkadlec/quizconquest/internal/engine"
	"github.com/mkadlec/quizconquest/internal/service"
	"github.com/mkadlec/quizconquest/internal/storage"
)

// respondError maps engine and service sentinel errors to HTTP statuses and
// user-facing messages.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := constants.ErrFailedApplyAction

	switch {
	case errors.Is(err, storage.ErrGameNotFound):
		status, message = http.StatusNotFound, constants.ErrGameNotFound
	case errors.Is(err, engine.ErrGameCompleted):
		status, message = http.StatusConflict, constants.ErrGameAlreadyOver
	case errors.Is(err, engine.ErrWrongTurn), errors.Is(err, service.ErrNotBotTurn):
		status, message = http.StatusConflict, constants.ErrNotYourTurn
	case errors.Is(err, engine.ErrQuestionPending):
		status, message = http.StatusConflict, constants.ErrQuestionAlreadySet
	case errors.Is(err, engine.ErrAnswersPending):
		status, message = http.StatusConflict, constants.ErrAnswersStillPending
	case errors.Is(err, service.ErrNoQuestion):
		status, message = http.StatusConflict, constants.ErrNoQuestionAvailable
	case errors.Is(err, engine.ErrIllegalTarget),
		errors.Is(err, engine.ErrCategoryExhausted):
		status, message = http.StatusBadRequest, constants.ErrIllegalTarget
	case errors.Is(err, engine.ErrWrongPhase),
		errors.Is(err, engine.ErrUnknownPlayer),
		errors.Is(err, engine.ErrUnknownField),
		errors.Is(err, engine.ErrNotParticipant),
		errors.Is(err, engine.ErrNoActiveQuestion),
		errors.Is(err, engine.ErrUnsupportedAction),
		errors.Is(err, engine.ErrInvalidPlayerCount),
		errors.Is(err, engine.ErrNoCategories):
		status, message = http.StatusBadRequest, constants.ErrInvalidRequest
	}

	c.JSON(status, gin.H{constants.JSONKeyError: message})
}
