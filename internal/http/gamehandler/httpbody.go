package gamehandler

import "github.com/anoooon99999-netizen/online-button/internal/services/game"

type StateResponse struct {
	State  game.StateSnapshot `json:"state"`
	Online int                `json:"online"`
} // @name StateResponse

type ErrorResponse struct {
	Error string `json:"error"`
} // @name ErrorResponse
