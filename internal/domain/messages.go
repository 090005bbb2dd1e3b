package domain

// ClientMessage is what players send over the WebSocket.
type ClientMessage struct {
	Type            string       `json:"type"`
	JWT             string       `json:"jwt,omitempty"`
	Difficulty      string       `json:"difficulty,omitempty"`
	Cell            *Coordinates `json:"cell,omitempty"`
	RematchResponse string       `json:"rematchResponse,omitempty"`
}

// ServerMessage is the single envelope pushed to clients.
type ServerMessage struct {
	Type             string       `json:"type"`
	Message          string       `json:"message,omitempty"`
	GameID           string       `json:"gameId,omitempty"`
	Opponent         string       `json:"opponent,omitempty"`
	YourPlayer       int          `json:"yourPlayer,omitempty"`
	CurrentTurn      int          `json:"currentTurn,omitempty"`
	Cell             *Coordinates `json:"cell,omitempty"`
	Player           int          `json:"player,omitempty"`
	Board            []int        `json:"board,omitempty"`
	BoardSize        int          `json:"boardSize,omitempty"`
	NextTurn         int          `json:"nextTurn,omitempty"`
	Winner           string       `json:"winner,omitempty"`
	Reason           string       `json:"reason,omitempty"`
	AllowRematch     *bool        `json:"allowRematch,omitempty"`
	RematchRequester string       `json:"rematchRequester,omitempty"`
	RematchTimeout   int          `json:"rematchTimeout,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
