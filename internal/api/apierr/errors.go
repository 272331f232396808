package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shadowgame/impostor-server/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeRoomNotFound      = "ROOM_NOT_FOUND"
	CodePlayerNotFound    = "PLAYER_NOT_FOUND"
	CodeResultNotFound    = "RESULT_NOT_FOUND"
	CodeRoomFull          = "ROOM_FULL"
	CodeGameStarted       = "GAME_STARTED"
	CodeNotHost           = "NOT_HOST"
	CodeNotInRoom         = "NOT_IN_ROOM"
	CodePlayersNotReady   = "PLAYERS_NOT_READY"
	CodePlayerCount       = "PLAYER_COUNT"
	CodeWrongPhase        = "WRONG_PHASE"
	CodePlayerDead        = "PLAYER_DEAD"
	CodeInvalidTarget     = "INVALID_TARGET"
	CodeSelfTarget        = "SELF_TARGET"
	CodeRoleForbidsAction = "ROLE_FORBIDS_ACTION"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeRoomEnded         = "ROOM_ENDED"
	CodeChatClosed        = "CHAT_CLOSED"
	CodeInvalidMessage    = "INVALID_MESSAGE"
	CodeAlreadyClaimed    = "ALREADY_CLAIMED"
	CodeNotInResult       = "NOT_IN_RESULT"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrResultNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeResultNotFound, "Game result not found"}}
	case errors.Is(err, model.ErrRoomFull):
		return &httpError{http.StatusConflict, APIError{CodeRoomFull, "Room is full"}}
	case errors.Is(err, model.ErrGameStarted):
		return &httpError{http.StatusConflict, APIError{CodeGameStarted, "Game already started"}}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can perform this action"}}
	case errors.Is(err, model.ErrNotInRoom):
		return &httpError{http.StatusForbidden, APIError{CodeNotInRoom, "Not a player in this room"}}
	case errors.Is(err, model.ErrPlayersNotReady):
		return &httpError{http.StatusConflict, APIError{CodePlayersNotReady, "Not all players are ready"}}
	case errors.Is(err, model.ErrPlayerCount):
		return &httpError{http.StatusConflict, APIError{CodePlayerCount, "Player count must be between 6 and 10"}}
	case errors.Is(err, model.ErrWrongPhase):
		return &httpError{http.StatusConflict, APIError{CodeWrongPhase, "Operation not valid in the current phase"}}
	case errors.Is(err, model.ErrPlayerDead):
		return &httpError{http.StatusForbidden, APIError{CodePlayerDead, "Dead players cannot do that"}}
	case errors.Is(err, model.ErrInvalidTarget):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTarget, "Target is not a living player in this room"}}
	case errors.Is(err, model.ErrSelfTarget):
		return &httpError{http.StatusBadRequest, APIError{CodeSelfTarget, "Cannot target yourself"}}
	case errors.Is(err, model.ErrRoleForbidsAction):
		return &httpError{http.StatusForbidden, APIError{CodeRoleForbidsAction, "Your role cannot perform this action"}}
	case errors.Is(err, model.ErrInvalidTransition):
		return &httpError{http.StatusConflict, APIError{CodeInvalidTransition, "No transition valid from the current status"}}
	case errors.Is(err, model.ErrRoomEnded):
		return &httpError{http.StatusConflict, APIError{CodeRoomEnded, "Room has ended"}}
	case errors.Is(err, model.ErrChatClosed):
		return &httpError{http.StatusConflict, APIError{CodeChatClosed, "Chat is only open during the day"}}
	case errors.Is(err, model.ErrInvalidMessage):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidMessage, "Message is empty or too long"}}
	case errors.Is(err, model.ErrAlreadyClaimed):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyClaimed, "Result already claimed for this wallet"}}
	case errors.Is(err, model.ErrNotInResult):
		return &httpError{http.StatusForbidden, APIError{CodeNotInResult, "Wallet did not play in this game"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Wallet identity required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
