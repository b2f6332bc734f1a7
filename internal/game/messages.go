package game

// Client-to-server message types.
const (
	MsgCreateRoom     = "CREATE_ROOM"
	MsgJoinRoom       = "JOIN_ROOM"
	MsgRejoinRoom     = "REJOIN_ROOM"
	MsgStartGame      = "START_GAME"
	MsgUpdateSettings = "UPDATE_SETTINGS"
	MsgPickTarget     = "PICK_TARGET"
	MsgSubmitClue     = "SUBMIT_CLUE"
	MsgSubmitGuess    = "SUBMIT_GUESS"
	MsgKickPlayer     = "KICK_PLAYER"
)

// Server-to-client message types.
const (
	MsgRoomCreated        = "ROOM_CREATED"
	MsgRoomJoined         = "ROOM_JOINED"
	MsgPlayerJoined       = "PLAYER_JOINED"
	MsgPlayerLeft         = "PLAYER_LEFT"
	MsgPlayerDisconnected = "PLAYER_DISCONNECTED"
	MsgPlayerReconnected  = "PLAYER_RECONNECTED"
	MsgSettingsUpdated    = "SETTINGS_UPDATED"
	MsgPhaseChanged       = "PHASE_CHANGED"
	MsgGuessAck           = "GUESS_ACK"
	MsgTimerSync          = "TIMER_SYNC"
	MsgReveal             = "REVEAL"
	MsgGameOver           = "GAME_OVER"
	MsgError              = "ERROR"
)

// ClientMessage is one decoded inbound message. Only the fields for the
// given Type carry meaning; CellIndex is a pointer so a missing index is
// distinguishable from cell 0.
type ClientMessage struct {
	Type       string         `json:"type"`
	PlayerName string         `json:"playerName,omitempty"`
	RoomCode   string         `json:"roomCode,omitempty"`
	PlayerID   string         `json:"playerId,omitempty"`
	CellIndex  *int           `json:"cellIndex,omitempty"`
	Text       string         `json:"text,omitempty"`
	Settings   *SettingsPatch `json:"settings,omitempty"`
}

// RoomState is the full authoritative snapshot sent on join and rejoin.
// CardOptions is populated only for the cue giver during pick_target;
// CluePhaseIndex only during the clue phase.
type RoomState struct {
	Phase           Phase     `json:"phase"`
	Players         []*Player `json:"players"`
	Settings        Settings  `json:"settings"`
	CurrentRoundNum int       `json:"currentRoundNum"`
	CueGiverID      string    `json:"cueGiverId,omitempty"`
	CardOptions     []int     `json:"cardOptions"`
	Clues           []string  `json:"clues"`
	CluePhaseIndex  *int      `json:"cluePhaseIndex"`
	PhaseDeadline   int64     `json:"phaseDeadline,omitempty"`
}

type RoomCreatedMsg struct {
	Type     string    `json:"type"`
	RoomCode string    `json:"roomCode"`
	PlayerID string    `json:"playerId"`
	Settings Settings  `json:"settings"`
	Players  []*Player `json:"players"`
}

type RoomJoinedMsg struct {
	Type     string    `json:"type"`
	PlayerID string    `json:"playerId"`
	State    RoomState `json:"state"`
}

type PlayerJoinedMsg struct {
	Type   string  `json:"type"`
	Player *Player `json:"player"`
}

type PlayerLeftMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

type PlayerDisconnectedMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

type PlayerReconnectedMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

type SettingsUpdatedMsg struct {
	Type     string   `json:"type"`
	Settings Settings `json:"settings"`
}

// PhaseChangedMsg announces a transition. The populated fields depend on
// the phase: pick_target carries the round number (and, to the cue giver
// only, the card options); clue carries the slot index and word limit;
// guess carries the slot index and the clue text.
type PhaseChangedMsg struct {
	Type            string `json:"type"`
	Phase           Phase  `json:"phase"`
	CueGiverID      string `json:"cueGiverId,omitempty"`
	CurrentRoundNum int    `json:"currentRoundNum,omitempty"`
	CardOptions     []int  `json:"cardOptions,omitempty"`
	ClueIndex       *int   `json:"clueIndex,omitempty"`
	WordLimit       int    `json:"wordLimit,omitempty"`
	Clue            string `json:"clue,omitempty"`
}

type GuessAckMsg struct {
	Type      string `json:"type"`
	CellIndex int    `json:"cellIndex"`
}

type TimerSyncMsg struct {
	Type          string `json:"type"`
	PhaseDeadline int64  `json:"phaseDeadline"` // unix milliseconds
}

type RevealMsg struct {
	Type        string                     `json:"type"`
	TargetCell  int                        `json:"targetCell"`
	Guesses     map[string]map[string]*int `json:"guesses"`
	RoundScores map[string]int             `json:"roundScores"`
	TotalScores map[string]int             `json:"totalScores"`
}

type GameOverMsg struct {
	Type        string         `json:"type"`
	FinalScores map[string]int `json:"finalScores"`
	Winner      string         `json:"winner"`
}

type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Error builds an ERROR message with a human-readable reason.
func Error(message string) ErrorMsg {
	return ErrorMsg{Type: MsgError, Message: message}
}
