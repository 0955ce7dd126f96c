package game

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options carries the tunables loaded from the environment.
type Options struct {
	CountdownStart  int           // seconds shown on the countdown (10 or 30)
	ButtonCount     int           // 1 = classic single button, >1 = quiz
	ResetDelay      time.Duration // finished/chat -> reset -> next countdown
	TickInterval    time.Duration // countdown tick period, 1s in production
	DefaultMaxUsers int           // capacity for user-created buttons
	MaxMessageLen   int           // chat messages are truncated beyond this
}

type IGameService interface {
	// Connection lifecycle.
	Connect(connID string) Session
	Disconnect(connID string)
	SessionOf(connID string) (Session, bool)
	OnlineCount() int

	// Game State Store.
	Snapshot() StateSnapshot
	StartCountdown() error
	AttemptClick(userID, buttonID string) error
	PostMessage(userID, text string) error
	ForceReset()

	// Room/Membership Table.
	CreateButton(creatorID string, cfg ButtonConfig) (UserButton, error)
	JoinButton(userID, buttonID string) error
	LeaveButton(userID, buttonID string) error
	RouteMessage(userID, text string) error
	ListButtons() []UserButton

	// Start arms the first round and ties timer lifetime to ctx.
	Start(ctx context.Context)
}

type gameService struct {
	opts  Options
	dsp   Dispatcher
	reg   *SessionRegistry
	sched *phaseScheduler

	// Everything below is guarded by mu. Each mutation plus its broadcast
	// runs under the lock, so no client ever observes a partial update.
	mu           sync.Mutex
	phase        Phase
	countdown    int
	winner       *Winner
	roundButtons []*RoundButton
	messages     []ChatMessage

	buttons  map[string]*userButton // buttonID -> button
	rooms    map[string]*chatRoom   // roomID -> room
	roomOf   map[string]string      // userID -> roomID
	rng      *rand.Rand
}

type userButton struct {
	id          string
	title       string
	description string
	creatorID   string
	maxUsers    int
	roomID      string
}

type chatRoom struct {
	id       string
	buttonID string
	members  []string // ordered userIDs
	messages []ChatMessage
}

func NewGameService(dsp Dispatcher, opts Options) IGameService {
	svc := &gameService{
		opts:    opts,
		dsp:     dsp,
		reg:     NewSessionRegistry(dsp),
		sched:   newPhaseScheduler(opts.TickInterval),
		phase:   PhaseWaiting,
		buttons: make(map[string]*userButton),
		rooms:   make(map[string]*chatRoom),
		roomOf:  make(map[string]string),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	return svc
}

func (s *gameService) Start(ctx context.Context) {
	s.sched.scheduleOnce(s.opts.ResetDelay, func() {
		if err := s.StartCountdown(); err != nil {
			zap.L().Debug("initial countdown skipped", zap.Error(err))
		}
	})
	go func() {
		<-ctx.Done()
		s.sched.stop()
	}()
}

// ---------------------------------------------------------------------------
//  Connection lifecycle
// ---------------------------------------------------------------------------

func (s *gameService) Connect(connID string) Session {
	return s.reg.Register(connID)
}

// Disconnect runs the same cleanup an explicit leaveButton would, invoked
// directly: a closed connection cannot receive a simulated client event.
func (s *gameService) Disconnect(connID string) {
	sess, ok := s.reg.Lookup(connID)
	if ok {
		s.mu.Lock()
		if roomID, in := s.roomOf[sess.UserID]; in {
			s.leaveRoomLocked(sess, roomID)
		}
		s.mu.Unlock()
	}
	s.reg.Remove(connID)
}

func (s *gameService) SessionOf(connID string) (Session, bool) { return s.reg.Lookup(connID) }
func (s *gameService) OnlineCount() int                        { return s.reg.Count() }

// ---------------------------------------------------------------------------
//  Game State Store
// ---------------------------------------------------------------------------

func (s *gameService) Snapshot() StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *gameService) snapshotLocked() StateSnapshot {
	snap := StateSnapshot{
		Phase:          s.phase,
		CountdownValue: s.countdown,
		Winner:         s.winner,
		Buttons:        make([]RoundButton, 0, len(s.roundButtons)),
		Messages:       append([]ChatMessage(nil), s.messages...),
	}
	for _, b := range s.roundButtons {
		snap.Buttons = append(snap.Buttons, *b)
	}
	return snap
}

// StartCountdown begins a round: valid only from waiting.
func (s *gameService) StartCountdown() error {
	s.mu.Lock()
	if s.phase != PhaseWaiting {
		s.mu.Unlock()
		return ErrWrongPhase
	}
	s.phase = PhaseCountdown
	s.countdown = s.opts.CountdownStart
	s.regenerateButtonsLocked()
	s.dsp.BroadcastAll(EventGameStateUpdate, s.snapshotLocked())
	s.mu.Unlock()

	s.sched.startCountdown(s.tick)
	return nil
}

// regenerateButtonsLocked builds the round's button set with exactly one
// correct button, chosen uniformly at random.
func (s *gameService) regenerateButtonsLocked() {
	n := s.opts.ButtonCount
	if n < 1 {
		n = 1
	}
	correct := s.rng.Intn(n)
	s.roundButtons = make([]*RoundButton, 0, n)
	for i := 0; i < n; i++ {
		s.roundButtons = append(s.roundButtons, &RoundButton{
			ID:        uuid.NewString(),
			Label:     buttonLabel(i, n),
			Visible:   true,
			isCorrect: i == correct,
		})
	}
}

func buttonLabel(i, total int) string {
	if total == 1 {
		return "The Button"
	}
	return "Button " + string(rune('A'+i))
}

// tick is driven by the scheduler once per interval while counting down.
// It reports whether the countdown should keep running.
func (s *gameService) tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseCountdown {
		return false
	}
	s.countdown--
	if s.countdown <= 0 {
		s.countdown = 0
		s.phase = PhaseActive
	}
	s.dsp.BroadcastAll(EventGameStateUpdate, s.snapshotLocked())
	return s.phase == PhaseCountdown
}

type clickResult struct {
	Winner  Winner        `json:"winner"`
	Buttons []RoundButton `json:"buttons"`
}

// AttemptClick resolves a button press during the active phase. The first
// valid click on the correct button wins the round; the phase guard makes
// every later click a no-op.
func (s *gameService) AttemptClick(userID, buttonID string) error {
	sess, ok := s.reg.FindByUserID(userID)
	if !ok {
		return ErrUnknownSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive || s.winner != nil {
		return ErrWrongPhase
	}

	btn := s.findRoundButtonLocked(buttonID)
	if btn == nil || !btn.Visible {
		return ErrNotFound
	}

	if !btn.isCorrect {
		s.dsp.Unicast(userID, EventWrongButton, nil)
		return nil
	}

	s.winner = &Winner{
		UserID:      sess.UserID,
		DisplayName: sess.DisplayName,
		Timestamp:   time.Now(),
	}
	btn.Visible = false

	event := EventButtonClicked
	if len(s.roundButtons) > 1 {
		// Quiz rounds roll straight into the winners' chat phase.
		s.phase = PhaseChat
		event = EventCorrectButtonClicked
	} else {
		s.phase = PhaseFinished
	}

	res := clickResult{Winner: *s.winner}
	for _, b := range s.roundButtons {
		res.Buttons = append(res.Buttons, *b)
	}
	s.dsp.BroadcastAll(event, res)

	s.sched.scheduleOnce(s.opts.ResetDelay, s.ForceReset)
	return nil
}

// findRoundButtonLocked resolves the click target. An empty buttonID means
// "the button" in the single-button variant.
func (s *gameService) findRoundButtonLocked(buttonID string) *RoundButton {
	if buttonID == "" && len(s.roundButtons) == 1 {
		return s.roundButtons[0]
	}
	for _, b := range s.roundButtons {
		if b.ID == buttonID {
			return b
		}
	}
	return nil
}

// PostMessage appends to the round's global chat, open during the chat
// phase only.
func (s *gameService) PostMessage(userID, text string) error {
	sess, ok := s.reg.FindByUserID(userID)
	if !ok {
		return ErrUnknownSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseChat {
		return ErrWrongPhase
	}
	msg := s.newMessageLocked(sess, text)
	s.messages = append(s.messages, msg)
	s.dsp.BroadcastAll(EventNewMessage, msg)
	return nil
}

func (s *gameService) newMessageLocked(sess Session, text string) ChatMessage {
	if s.opts.MaxMessageLen > 0 && len(text) > s.opts.MaxMessageLen {
		text = text[:s.opts.MaxMessageLen]
	}
	return ChatMessage{
		ID:          uuid.NewString(),
		UserID:      sess.UserID,
		DisplayName: sess.DisplayName,
		Text:        text,
		Timestamp:   time.Now(),
	}
}

// ForceReset clears the round unconditionally: winner, buttons, messages
// and every user-created button go away, then a fresh countdown is armed.
func (s *gameService) ForceReset() {
	s.sched.cancelCountdown()

	s.mu.Lock()
	s.phase = PhaseWaiting
	s.countdown = 0
	s.winner = nil
	s.roundButtons = nil
	s.messages = nil
	s.destroyAllButtonsLocked()
	s.dsp.BroadcastAll(EventGameStateUpdate, s.snapshotLocked())
	s.mu.Unlock()

	s.sched.scheduleOnce(s.opts.ResetDelay, func() {
		if err := s.StartCountdown(); err != nil {
			zap.L().Debug("restart skipped", zap.Error(err))
		}
	})
}
