package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"slices"
	"sort"
	"sync"
	"time"

	"huesandcues/internal/clues"
	"huesandcues/internal/scoring"
)

// Phase is the room's position in the game state machine.
type Phase string

const (
	PhaseLobby      Phase = "lobby"
	PhasePickTarget Phase = "pick_target"
	PhaseClue       Phase = "clue"
	PhaseGuess      Phase = "guess"
	PhaseReveal     Phase = "reveal"
	PhaseGameOver   Phase = "game_over"
)

const minPlayersToStart = 3

// Result summarizes a finished game for the optional results store.
type Result struct {
	RoomCode string
	Rounds   int
	WinnerID string
	Players  []ResultPlayer
}

type ResultPlayer struct {
	ID     string
	Name   string
	Score  int
	Winner bool
}

// Room is the per-game state machine. Every entry point holds mu for its
// full duration, and every mutation queues the messages describing it
// before the lock is released, so no client observes a transition out of
// order. The cue giver is always derived from cueGiverOrder[cueGiverIdx],
// never stored.
type Room struct {
	Code string

	mu            sync.Mutex
	players       map[string]*Player
	settings      Settings
	phase         Phase
	currentRound  int
	cueGiverOrder []string
	cueGiverIdx   int
	targetCell    int // -1 when unset
	cardOptions   []int
	clues         []string
	cluePhaseIdx  int
	guesses       map[string]map[string]*int
	usedCells     map[int]bool
	timer         phaseTimer
	phaseDeadline int64 // unix milliseconds, 0 when no deadline
	revealPause   time.Duration
	nextOrder     int
	lastActivity  time.Time
	rng           *rand.Rand
	onResult      func(Result)
}

// NewRoom creates a room in the lobby phase. rng may be nil for a
// time-seeded source; tests pass a fixed seed to pin card sampling.
// onResult, if set, receives a summary of each finished game on its own
// goroutine.
func NewRoom(code string, settings Settings, rng *rand.Rand, onResult func(Result)) *Room {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Room{
		Code:         code,
		players:      make(map[string]*Player),
		settings:     settings,
		phase:        PhaseLobby,
		currentRound: 1,
		targetCell:   -1,
		guesses:      make(map[string]map[string]*int),
		usedCells:    make(map[int]bool),
		revealPause:  8 * time.Second,
		lastActivity: time.Now(),
		rng:          rng,
		onResult:     onResult,
	}
}

// Phase returns the current phase.
func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Join adds a player in the lobby. The first player becomes host. The
// returned message is the authoritative reply for the new player's own
// connection; everyone else is notified before Join returns.
func (r *Room) Join(name string, conn Conn) (*Player, RoomJoinedMsg, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseLobby {
		return nil, RoomJoinedMsg{}, errors.New("game already in progress")
	}

	p := newPlayer(name, conn, r.nextOrder, len(r.players) == 0)
	r.nextOrder++
	r.players[p.ID] = p
	r.lastActivity = time.Now()

	r.broadcastExcept(p.ID, PlayerJoinedMsg{Type: MsgPlayerJoined, Player: p})
	return p, RoomJoinedMsg{Type: MsgRoomJoined, PlayerID: p.ID, State: r.snapshot(p.ID)}, nil
}

// Reconnect restores a dropped player's connection and replays the full
// authoritative state, including the live deadline when a timer is
// running. Returns false when the player is unknown to this room.
func (r *Room) Reconnect(playerID string, conn Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.players[playerID]
	if p == nil {
		return false
	}

	p.conn = conn
	p.Connected = true
	r.lastActivity = time.Now()
	r.broadcast(PlayerReconnectedMsg{Type: MsgPlayerReconnected, PlayerID: playerID})

	p.send(RoomJoinedMsg{Type: MsgRoomJoined, PlayerID: p.ID, State: r.snapshot(p.ID)})
	if r.phaseDeadline != 0 {
		p.send(TimerSyncMsg{Type: MsgTimerSync, PhaseDeadline: r.phaseDeadline})
	}
	return true
}

// Disconnect marks a player as dropped, keeping their record and score.
// The host role falls to the lowest-order connected player. A cue giver
// dropping during pick_target, clue or guess forces an immediate round
// advance; reveal is excluded because its own timer already advances it.
func (r *Room) Disconnect(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.players[playerID]
	if p == nil {
		return
	}

	p.Connected = false
	p.conn = nil
	r.lastActivity = time.Now()
	r.broadcast(PlayerDisconnectedMsg{Type: MsgPlayerDisconnected, PlayerID: playerID})

	if p.IsHost {
		p.IsHost = false
		for _, next := range r.playersByOrder() {
			if next.Connected {
				next.IsHost = true
				r.broadcast(PlayerJoinedMsg{Type: MsgPlayerJoined, Player: next})
				break
			}
		}
	}

	if playerID == r.cueGiverID() &&
		r.phase != PhaseLobby && r.phase != PhaseGameOver && r.phase != PhaseReveal {
		log.Printf("[Room %s] cue giver disconnected during %s, advancing round\n", r.Code, r.phase)
		r.advanceRound()
		return
	}

	// A dropped guesser may have been the last submission we were waiting on.
	if r.phase == PhaseGuess && playerID != r.cueGiverID() {
		r.checkGuessersDone()
	}
}

// HandleMessage validates and applies one inbound message from a player
// already in the room. Precondition failures send a targeted ERROR and
// leave state untouched.
func (r *Room) HandleMessage(playerID string, msg ClientMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastActivity = time.Now()
	p := r.players[playerID]
	if p == nil {
		return
	}

	switch msg.Type {
	case MsgStartGame:
		r.startGame(p)
	case MsgUpdateSettings:
		r.updateSettings(p, msg.Settings)
	case MsgPickTarget:
		r.pickTarget(p, msg.CellIndex)
	case MsgSubmitClue:
		r.submitClue(p, msg.Text)
	case MsgSubmitGuess:
		r.submitGuess(p, msg.CellIndex)
	case MsgKickPlayer:
		r.kickPlayer(p, msg.PlayerID)
	default:
		p.send(Error("Unknown message type: " + msg.Type))
	}
}

// Close cancels any pending timer. Called on teardown.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearPhaseTimer()
}

// Reapable reports whether the room has had zero connected players for
// longer than idle.
func (r *Room) Reapable(now time.Time, idle time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.Connected {
			return false
		}
	}
	return now.Sub(r.lastActivity) > idle
}

// ----- message handlers (lock held) -----

func (r *Room) startGame(p *Player) {
	if !p.IsHost {
		p.send(Error("Only the host can start the game"))
		return
	}
	if r.phase != PhaseLobby && r.phase != PhaseGameOver {
		p.send(Error("Game already in progress"))
		return
	}
	connected := 0
	for _, pl := range r.players {
		if pl.Connected {
			connected++
		}
	}
	if connected < minPlayersToStart {
		p.send(Error(fmt.Sprintf("Need at least %d connected players to start", minPlayersToStart)))
		return
	}

	for _, pl := range r.players {
		pl.Score = 0
	}
	r.cueGiverOrder = r.cueGiverOrder[:0]
	for _, pl := range r.playersByOrder() {
		r.cueGiverOrder = append(r.cueGiverOrder, pl.ID)
	}
	r.cueGiverIdx = 0
	r.currentRound = 1
	clear(r.usedCells)

	log.Printf("[Room %s] game started with %d players\n", r.Code, len(r.cueGiverOrder))
	r.toPickTarget()
}

func (r *Room) updateSettings(p *Player, patch *SettingsPatch) {
	if !p.IsHost {
		p.send(Error("Only the host can update settings"))
		return
	}
	if r.phase != PhaseLobby {
		p.send(Error("Settings can only be changed in the lobby"))
		return
	}

	if patch != nil {
		r.settings.Apply(*patch)
	}
	r.broadcast(SettingsUpdatedMsg{Type: MsgSettingsUpdated, Settings: r.settings})
}

func (r *Room) pickTarget(p *Player, cellIndex *int) {
	if r.phase != PhasePickTarget {
		p.send(Error("Not in pick target phase"))
		return
	}
	if p.ID != r.cueGiverID() {
		p.send(Error("Only the cue giver can pick a target"))
		return
	}
	if cellIndex == nil || !slices.Contains(r.cardOptions, *cellIndex) {
		p.send(Error("Invalid target cell"))
		return
	}

	r.targetCell = *cellIndex
	r.usedCells[*cellIndex] = true
	r.cluePhaseIdx = 0
	r.clues = r.clues[:0]
	r.guesses = make(map[string]map[string]*int)
	for id := range r.players {
		if id == r.cueGiverID() {
			continue
		}
		slots := make(map[string]*int, len(r.settings.ClueWordLimits))
		for i := range r.settings.ClueWordLimits {
			slots[slotKey(i)] = nil
		}
		r.guesses[id] = slots
	}

	r.toClue()
}

func (r *Room) submitClue(p *Player, text string) {
	if r.phase != PhaseClue {
		p.send(Error("Not in clue phase"))
		return
	}
	if p.ID != r.cueGiverID() {
		p.send(Error("Only the cue giver can submit a clue"))
		return
	}

	maxWords := r.settings.ClueWordLimits[r.cluePhaseIdx]
	clue, err := clues.Validate(text, maxWords)
	if err != nil {
		p.send(Error(err.Error()))
		return
	}

	r.clues = append(r.clues, clue)
	r.toGuess(clue)
}

func (r *Room) submitGuess(p *Player, cellIndex *int) {
	if r.phase != PhaseGuess {
		p.send(Error("Not in guess phase"))
		return
	}
	if p.ID == r.cueGiverID() {
		p.send(Error("Cue giver cannot guess"))
		return
	}
	if cellIndex == nil || *cellIndex < 0 || *cellIndex >= r.settings.TotalCells() {
		p.send(Error("Invalid cell index"))
		return
	}

	slots := r.guesses[p.ID]
	if slots == nil {
		p.send(Error("You are not a guesser this round"))
		return
	}
	key := slotKey(r.cluePhaseIdx)
	if slots[key] != nil {
		p.send(Error("You already guessed this phase"))
		return
	}

	cell := *cellIndex
	slots[key] = &cell
	p.send(GuessAckMsg{Type: MsgGuessAck, CellIndex: cell})

	r.checkGuessersDone()
}

func (r *Room) kickPlayer(p *Player, targetID string) {
	if !p.IsHost {
		p.send(Error("Only the host can kick players"))
		return
	}
	target := r.players[targetID]
	if target == nil || target.IsHost {
		p.send(Error("Cannot kick that player"))
		return
	}

	if target.conn != nil {
		target.conn.Close()
	}
	delete(r.players, targetID)
	r.broadcast(PlayerLeftMsg{Type: MsgPlayerLeft, PlayerID: targetID})
}

// ----- phase transitions (lock held) -----

func (r *Room) toPickTarget() {
	r.clearPhaseTimer()
	r.phase = PhasePickTarget
	r.targetCell = -1
	r.cardOptions = sampleCardOptions(r.rng, r.settings.TotalCells(), r.settings.CardsPerRound, r.usedCells)

	// Card options stay private to the cue giver.
	if cg := r.cueGiver(); cg != nil {
		cg.send(PhaseChangedMsg{
			Type:            MsgPhaseChanged,
			Phase:           PhasePickTarget,
			CueGiverID:      cg.ID,
			CurrentRoundNum: r.currentRound,
			CardOptions:     r.cardOptions,
		})
	}
	r.broadcastExcept(r.cueGiverID(), PhaseChangedMsg{
		Type:            MsgPhaseChanged,
		Phase:           PhasePickTarget,
		CueGiverID:      r.cueGiverID(),
		CurrentRoundNum: r.currentRound,
	})
}

func (r *Room) toClue() {
	r.clearPhaseTimer()
	r.phase = PhaseClue

	idx := r.cluePhaseIdx
	r.broadcast(PhaseChangedMsg{
		Type:       MsgPhaseChanged,
		Phase:      PhaseClue,
		ClueIndex:  &idx,
		WordLimit:  r.settings.ClueWordLimits[idx],
		CueGiverID: r.cueGiverID(),
	})
}

func (r *Room) toGuess(clue string) {
	r.clearPhaseTimer()
	r.phase = PhaseGuess

	idx := r.cluePhaseIdx
	r.broadcast(PhaseChangedMsg{
		Type:       MsgPhaseChanged,
		Phase:      PhaseGuess,
		ClueIndex:  &idx,
		Clue:       clue,
		CueGiverID: r.cueGiverID(),
	})

	r.startGuessTimer()
}

func (r *Room) toReveal() {
	r.clearPhaseTimer()
	r.phase = PhaseReveal

	cols := r.settings.Cols
	radii := r.settings.ScoringRadii

	roundScores := make(map[string]int, len(r.players))
	var allGuesses []int

	for pid, slots := range r.guesses {
		total := 0
		for _, g := range slots {
			if g != nil {
				allGuesses = append(allGuesses, *g)
				total += scoring.PointsForDistance(scoring.Distance(*g, r.targetCell, cols), radii)
			}
		}
		roundScores[pid] = total
		if pl := r.players[pid]; pl != nil {
			pl.Score += total
		}
	}

	cgID := r.cueGiverID()
	cgScore := scoring.CueGiverScore(allGuesses, r.targetCell, cols, radii)
	roundScores[cgID] = cgScore
	if cg := r.players[cgID]; cg != nil {
		cg.Score += cgScore
	}

	totalScores := make(map[string]int, len(r.players))
	for id, pl := range r.players {
		totalScores[id] = pl.Score
	}

	guesses := make(map[string]map[string]*int, len(r.guesses))
	for pid, slots := range r.guesses {
		guesses[pid] = slots
	}

	r.broadcast(RevealMsg{
		Type:        MsgReveal,
		TargetCell:  r.targetCell,
		Guesses:     guesses,
		RoundScores: roundScores,
		TotalScores: totalScores,
	})

	// Fixed pause before the next round; no TIMER_SYNC, clients animate the
	// reveal on their own.
	r.timer.schedule(r.revealPause, func(gen uint64) {
		r.mu.Lock()
		defer r.mu.Unlock()
		if !r.timer.consume(gen) {
			return
		}
		r.advanceRound()
	})
}

func (r *Room) toGameOver() {
	r.clearPhaseTimer()
	r.phase = PhaseGameOver

	finalScores := make(map[string]int, len(r.players))
	for id, pl := range r.players {
		finalScores[id] = pl.Score
	}

	var winner *Player
	for _, pl := range r.playersByOrder() {
		if winner == nil || pl.Score > winner.Score {
			winner = pl
		}
	}
	winnerID := ""
	if winner != nil {
		winnerID = winner.ID
	}

	log.Printf("[Room %s] game over, winner %s\n", r.Code, winnerID)
	r.broadcast(GameOverMsg{Type: MsgGameOver, FinalScores: finalScores, Winner: winnerID})

	if r.onResult != nil {
		res := Result{
			RoomCode: r.Code,
			Rounds:   r.currentRound - 1,
			WinnerID: winnerID,
		}
		for _, pl := range r.playersByOrder() {
			res.Players = append(res.Players, ResultPlayer{
				ID:     pl.ID,
				Name:   pl.Name,
				Score:  pl.Score,
				Winner: pl.ID == winnerID,
			})
		}
		go r.onResult(res)
	}
}

// ----- round progression (lock held) -----

// advanceRound moves the rotation to the next connected cue giver, bounded
// by one full cycle; with no connected candidate the game ends.
func (r *Room) advanceRound() {
	r.cluePhaseIdx = 0
	r.cueGiverIdx++

	attempts := 0
	for attempts < len(r.cueGiverOrder) {
		if r.cueGiverIdx >= len(r.cueGiverOrder) {
			r.cueGiverIdx = 0
		}
		next := r.players[r.cueGiverID()]
		if next != nil && next.Connected {
			break
		}
		r.cueGiverIdx++
		attempts++
	}
	if attempts >= len(r.cueGiverOrder) {
		r.toGameOver()
		return
	}

	r.currentRound++
	if r.gameDone() {
		r.toGameOver()
		return
	}

	r.toPickTarget()
}

func (r *Room) gameDone() bool {
	if r.settings.TotalRounds != nil {
		return r.currentRound > *r.settings.TotalRounds
	}
	return r.currentRound > len(r.cueGiverOrder)
}

// checkGuessersDone advances the round state once every connected guesser
// has a guess in the active slot.
func (r *Room) checkGuessersDone() {
	key := slotKey(r.cluePhaseIdx)
	for _, pl := range r.players {
		if !pl.Connected || pl.ID == r.cueGiverID() {
			continue
		}
		slots := r.guesses[pl.ID]
		if slots == nil || slots[key] == nil {
			return
		}
	}
	r.guessersResolved()
}

// guessersResolved closes the active clue slot, either opening the next
// one or revealing. Guesses left unset stay unset and score nothing.
func (r *Room) guessersResolved() {
	r.cluePhaseIdx++
	if r.cluePhaseIdx < len(r.settings.ClueWordLimits) {
		r.toClue()
	} else {
		r.toReveal()
	}
}

// ----- timers (lock held) -----

func (r *Room) startGuessTimer() {
	if r.settings.PhaseTimerSeconds <= 0 {
		return
	}
	d := time.Duration(r.settings.PhaseTimerSeconds) * time.Second
	r.phaseDeadline = time.Now().Add(d).UnixMilli()
	r.timer.schedule(d, func(gen uint64) {
		r.mu.Lock()
		defer r.mu.Unlock()
		if !r.timer.consume(gen) {
			return
		}
		r.guessersResolved()
	})
	r.broadcast(TimerSyncMsg{Type: MsgTimerSync, PhaseDeadline: r.phaseDeadline})
}

func (r *Room) clearPhaseTimer() {
	r.timer.cancel()
	r.phaseDeadline = 0
}

// ----- helpers (lock held) -----

// cueGiverID is derived, never stored, so it cannot drift from the
// rotation state.
func (r *Room) cueGiverID() string {
	if r.cueGiverIdx < 0 || r.cueGiverIdx >= len(r.cueGiverOrder) {
		return ""
	}
	return r.cueGiverOrder[r.cueGiverIdx]
}

func (r *Room) cueGiver() *Player {
	return r.players[r.cueGiverID()]
}

func (r *Room) playersByOrder() []*Player {
	list := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Order < list[j].Order })
	return list
}

func (r *Room) snapshot(forPlayerID string) RoomState {
	var cardOptions []int
	if forPlayerID == r.cueGiverID() && r.phase == PhasePickTarget {
		cardOptions = slices.Clone(r.cardOptions)
	}
	var clueIdx *int
	if r.phase == PhaseClue {
		idx := r.cluePhaseIdx
		clueIdx = &idx
	}
	return RoomState{
		Phase:           r.phase,
		Players:         r.playersByOrder(),
		Settings:        r.settings,
		CurrentRoundNum: r.currentRound,
		CueGiverID:      r.cueGiverID(),
		CardOptions:     cardOptions,
		Clues:           slices.Clone(r.clues),
		CluePhaseIndex:  clueIdx,
		PhaseDeadline:   r.phaseDeadline,
	}
}

func (r *Room) broadcast(msg any) {
	for _, p := range r.playersByOrder() {
		p.send(msg)
	}
}

func (r *Room) broadcastExcept(playerID string, msg any) {
	for _, p := range r.playersByOrder() {
		if p.ID != playerID {
			p.send(msg)
		}
	}
}

func slotKey(clueIdx int) string {
	return fmt.Sprintf("g%d", clueIdx+1)
}
