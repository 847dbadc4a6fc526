// Feudbox game board
//
// An operator-facing survey board: reveal answers, track strikes,
// award points, run steals and a timed Fast Money bonus round.
//
// Features:
// - WebSockets per game ID: /path/:gameid and /path/:gameid/ws
// - All round flow handled by the pure transition function in engine.go;
//   the hub processes one action at a time off its channels
// - Admin login (toy hardcoded credentials) gates question bank and
//   settings edits plus CSV export
// - Fast Money answers are collected and scored server-side, with a
//   per-second countdown that auto-finalizes on expiry
// - Question banks and settings mirrored to a JSON snapshot on disk
// - Games auto-reaped after configurable idle timeout
// - Random 8-char game IDs via crypto/rand, with server-side collision check
// - In-browser QR button to share the current board, backed by go-qrcode

package main

import (
	"crypto/rand"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// Hardcoded admin gate carried over from the original tool. A
// convenience lock for the operator's admin tab, not a security
// boundary.
const (
	adminUsername = "DrLMspace"
	adminPassword = "Saratoga1970!?@"
)

// ClientMessage is the closed set of board commands coming in over the
// websocket. Type selects the variant; the other fields are per-type
// payloads.
type ClientMessage struct {
	Type     string         `json:"type"`
	Index    *int           `json:"index,omitempty"`    // reveal_answer
	Team     string         `json:"team,omitempty"`     // award_points / steal_points
	Channel  string         `json:"channel,omitempty"`  // sound ops
	Answer   string         `json:"answer,omitempty"`   // fast_money_answer
	ID       int            `json:"id,omitempty"`       // update/delete question ops
	Question string         `json:"question,omitempty"` // add/update question ops
	Answers  []Answer       `json:"answers,omitempty"`  // add/update question ops
	Title    string         `json:"title,omitempty"`    // update_settings
	Sounds   *SoundSettings `json:"sounds,omitempty"`   // update_sounds
	Username string         `json:"username,omitempty"` // admin_login
	Password string         `json:"password,omitempty"` // admin_login
}

// StateMessage carries the full game state plus the fast money session
// view after every transition.
type StateMessage struct {
	Type      string         `json:"type"` // "state"
	State     GameState      `json:"state"`
	FastMoney *FastMoneyView `json:"fastMoney,omitempty"`
}

// FastMoneyView is the per-session clock and progress the board needs
// while a fast money player is live.
type FastMoneyView struct {
	Player          int    `json:"player"` // 1 or 2
	TimeLeft        int    `json:"timeLeft"`
	TimerRunning    bool   `json:"timerRunning"`
	QuestionIndex   int    `json:"questionIndex"`
	DuplicateAnswer string `json:"duplicateAnswer,omitempty"` // player 1's answer to the live question
}

// SoundMessage tells connected boards to run one media operation.
// Playback is best-effort; a bad URL fails silently client-side.
type SoundMessage struct {
	Type    string `json:"type"` // "sound"
	Op      string `json:"op"`
	Channel string `json:"channel"`
	URL     string `json:"url,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

// SimpleMessage is for generic notifications ("error", "admin_required").
type SimpleMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// AdminResultMessage answers an admin_login attempt.
type AdminResultMessage struct {
	Type string `json:"type"` // "admin_result"
	OK   bool   `json:"ok"`
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
}

type command struct {
	client *Client
	msg    ClientMessage
}

// fastMoneySession collects one player's raw answers while their clock
// runs. Scoring happens on finalize.
type fastMoneySession struct {
	player        int
	answers       []string
	questionIndex int
	clock         *Countdown
}

type Hub struct {
	id      string
	clients map[*Client]bool

	state  GameState
	sounds *SoundBoard
	fm     *fastMoneySession

	register chan *Client
	unreg    chan *Client
	commands chan command
	ticks    chan int
	expiry   chan int // player number whose clock ran out
	done     chan struct{}

	mu sync.RWMutex

	createdAt  time.Time
	lastActive time.Time
	admins     map[string]bool // playerID -> authenticated

	cfg      *Config
	dataFile string
}

func newHub(cfg *Config, gameID string, seed Snapshot, seeded bool) *Hub {
	now := time.Now()

	state := NewGameState()
	if seeded {
		state, _ = Transition(state, LoadData{Snapshot: seed})
	}

	return &Hub{
		id:         gameID,
		clients:    make(map[*Client]bool),
		state:      state,
		sounds:     NewSoundBoard(),
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		commands:   make(chan command, 16),
		ticks:      make(chan int, 4),
		expiry:     make(chan int, 1),
		done:       make(chan struct{}),
		createdAt:  now,
		lastActive: now,
		admins:     make(map[string]bool),
		cfg:        cfg,
		dataFile:   cfg.dataFile,
	}
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.lastActive = time.Now()
			h.clients[c] = true
			state := StateMessage{Type: "state", State: h.state, FastMoney: h.fastMoneyViewLocked()}
			h.mu.Unlock()

			c.send <- state

		case c := <-h.unreg:
			h.mu.Lock()
			h.lastActive = time.Now()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case cmd := <-h.commands:
			h.handleCommand(cmd)

		case <-h.ticks:
			h.mu.Lock()
			h.broadcastStateLocked()
			h.mu.Unlock()

		case player := <-h.expiry:
			h.finalizeFastMoney(player)

		case <-h.done:
			return
		}
	}
}

// dispatchLocked runs one engine action, applies its effects and
// broadcasts the new state. Assumes h.mu is held.
func (h *Hub) dispatchLocked(a Action) {
	next, effects := Transition(h.state, a)
	h.state = next

	for _, e := range effects {
		switch eff := e.(type) {
		case SoundEffect:
			h.sounds.Apply(eff, h.state.Settings.Sounds)
			h.broadcastLocked(SoundMessage{
				Type:    "sound",
				Op:      eff.Op,
				Channel: eff.Channel,
				URL:     h.state.Settings.Sounds.urlFor(eff.Channel),
				Kind:    mediaKind(h.state.Settings.Sounds.urlFor(eff.Channel)),
			})
		case PersistEffect:
			if err := SaveSnapshot(h.dataFile, snapshotOf(h.state)); err != nil {
				logf(h.cfg, "DATA: Snapshot write failed for %s: %v", h.id, err)
			}
		}
	}

	h.broadcastStateLocked()
}

func (h *Hub) broadcastStateLocked() {
	h.broadcastLocked(StateMessage{Type: "state", State: h.state, FastMoney: h.fastMoneyViewLocked()})
}

func (h *Hub) broadcastLocked(msg any) {
	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// sendToLocked delivers one message to a single client. Assumes h.mu
// is held.
func (h *Hub) sendToLocked(c *Client, msg any) {
	select {
	case c.send <- msg:
	default:
		if _, ok := h.clients[c]; ok {
			delete(h.clients, c)
			close(c.send)
		}
	}
}

func (h *Hub) fastMoneyViewLocked() *FastMoneyView {
	if h.fm == nil {
		return nil
	}

	view := &FastMoneyView{
		Player:        h.fm.player,
		TimeLeft:      h.fm.clock.Remaining(),
		TimerRunning:  h.fm.clock.Running(),
		QuestionIndex: h.fm.questionIndex,
	}

	if h.fm.player == 2 && h.fm.questionIndex < len(h.state.FastMoneyQuestions) {
		view.DuplicateAnswer = player1AnswerFor(
			h.state.FastMoneyAnswers.Player1,
			h.state.FastMoneyQuestions[h.fm.questionIndex].Text,
		)
	}

	return view
}

// newFastMoneySessionLocked arms the clock for one player. The clock
// only synthesizes events into the hub's channels; the run loop stays
// the single place state changes.
func (h *Hub) newFastMoneySessionLocked(player int) {
	if h.fm != nil {
		h.fm.clock.Stop()
	}

	seconds := player1Seconds
	if player == 2 {
		seconds = player2Seconds
	}

	session := &fastMoneySession{
		player:  player,
		answers: make([]string, fastMoneyQuestionCount),
	}
	session.clock = NewCountdown(seconds,
		func(int) {
			select {
			case h.ticks <- player:
			default:
			}
		},
		func() {
			h.expiry <- player
		},
	)
	h.fm = session
}

// finalizeFastMoney scores the live session and submits it to the
// engine, whether the player finished early or the clock ran out.
func (h *Hub) finalizeFastMoney(player int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.finalizeFastMoneyLocked(player)
}

func (h *Hub) finalizeFastMoneyLocked(player int) {
	if h.fm == nil || h.fm.player != player {
		return
	}

	h.fm.clock.Stop()
	records, score := ScoreFastMoney(h.state.FastMoneyQuestions, h.fm.answers)
	h.fm = nil

	if player == 1 {
		h.dispatchLocked(SubmitFastMoneyPlayer1{Answers: records, Score: score})
		if h.state.GamePhase == PhaseFastMoneyPlayer2 {
			h.newFastMoneySessionLocked(2)
			h.broadcastStateLocked()
		}
	} else {
		h.dispatchLocked(SubmitFastMoneyPlayer2{Answers: records, Score: score})
		logf(h.cfg, "GAMES: Fast money finished in %s with %d points (win: %t)",
			h.id, h.state.FastMoneyScore, fastMoneyWon(h.state.FastMoneyScore))
	}
}

func (h *Hub) isAdmin(playerID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.admins[playerID]
}

func (h *Hub) handleCommand(cmd command) {
	c := cmd.client
	msg := cmd.msg

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	switch msg.Type {
	case "admin_login":
		ok := msg.Username == adminUsername && msg.Password == adminPassword
		if ok {
			h.admins[c.playerID] = true
			logf(h.cfg, "GAMES: Admin login on %s", h.id)
		}
		h.sendToLocked(c, AdminResultMessage{Type: "admin_result", OK: ok})
		return

	case "add_question", "update_question", "delete_question",
		"add_fast_money_question", "update_fast_money_question", "delete_fast_money_question",
		"update_settings", "update_sounds":
		if !h.admins[c.playerID] {
			h.sendToLocked(c, SimpleMessage{Type: "admin_required", Message: "Log in as admin to edit questions or settings."})
			return
		}
	}

	switch msg.Type {
	case "reveal_answer":
		if msg.Index == nil {
			return
		}
		h.dispatchLocked(RevealAnswer{Index: *msg.Index})

	case "add_strike":
		h.dispatchLocked(AddStrike{})

	case "award_points":
		// The award is always the accumulated round score.
		h.dispatchLocked(AwardPoints{Team: Team(msg.Team), Points: h.state.RoundScore})

	case "steal_points":
		h.dispatchLocked(StealPoints{Team: Team(msg.Team)})

	case "no_steal":
		h.dispatchLocked(NoSteal{})

	case "next_question":
		h.dispatchLocked(NextQuestion{})

	case "switch_team":
		h.dispatchLocked(SwitchTeam{})

	case "start_fast_money":
		// Same gate the operator UI applies before offering the button.
		if len(h.state.FastMoneyQuestions) < fastMoneyQuestionCount {
			h.sendToLocked(c, SimpleMessage{Type: "error", Message: "Fast Money needs at least 5 questions."})
			return
		}
		h.dispatchLocked(StartFastMoney{})
		h.newFastMoneySessionLocked(1)
		h.broadcastStateLocked()

	case "fast_money_start_timer":
		if h.fm == nil {
			return
		}
		h.fm.clock.Start()
		h.broadcastStateLocked()

	case "fast_money_answer":
		if h.fm == nil || h.fm.questionIndex >= fastMoneyQuestionCount {
			return
		}
		h.fm.answers[h.fm.questionIndex] = msg.Answer
		h.fm.questionIndex++
		if h.fm.questionIndex >= fastMoneyQuestionCount {
			h.finalizeFastMoneyLocked(h.fm.player)
			return
		}
		h.broadcastStateLocked()

	case "fast_money_submit":
		if h.fm == nil {
			return
		}
		h.finalizeFastMoneyLocked(h.fm.player)

	case "reset_round":
		h.dispatchLocked(ResetRound{})

	case "reset_game":
		if h.fm != nil {
			h.fm.clock.Stop()
			h.fm = nil
		}
		h.dispatchLocked(ResetGame{})

	case "add_question":
		h.dispatchLocked(AddQuestion{Text: msg.Question, Answers: msg.Answers})

	case "update_question":
		h.dispatchLocked(UpdateQuestion{ID: msg.ID, Text: msg.Question, Answers: msg.Answers})

	case "delete_question":
		h.dispatchLocked(DeleteQuestion{ID: msg.ID})

	case "add_fast_money_question":
		h.dispatchLocked(AddFastMoneyQuestion{Text: msg.Question, Answers: fastMoneyAnswersOf(msg.Answers)})

	case "update_fast_money_question":
		h.dispatchLocked(UpdateFastMoneyQuestion{ID: msg.ID, Text: msg.Question, Answers: fastMoneyAnswersOf(msg.Answers)})

	case "delete_fast_money_question":
		h.dispatchLocked(DeleteFastMoneyQuestion{ID: msg.ID})

	case "update_settings":
		h.dispatchLocked(UpdateGameSettings{Title: msg.Title})

	case "update_sounds":
		if msg.Sounds == nil {
			return
		}
		h.dispatchLocked(UpdateSoundSettings{Sounds: *msg.Sounds})

	case "play_sound":
		h.dispatchLocked(PlaySound{Channel: msg.Channel})

	case "pause_sound":
		h.dispatchLocked(PauseSound{Channel: msg.Channel})

	case "stop_sound":
		h.dispatchLocked(StopSound{Channel: msg.Channel})

	case "resume_sound":
		h.dispatchLocked(ResumeSound{Channel: msg.Channel})
	}
}

func fastMoneyAnswersOf(answers []Answer) []FastMoneyAnswer {
	out := make([]FastMoneyAnswer, 0, len(answers))
	for _, a := range answers {
		out = append(out, FastMoneyAnswer{Text: a.Text, Points: a.Points})
	}
	return out
}

// closeAll disconnects all clients of this hub and stops its run loop
// (used by reaper).
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.fm != nil {
		h.fm.clock.Stop()
		h.fm = nil
	}

	for c := range h.clients {
		close(c.send)
		_ = c.conn.Close()
		delete(h.clients, c)
	}

	select {
	case <-h.done:
	default:
		close(h.done)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const playerCookieName = "feudbox_id"

func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// GameManager holds a set of hubs keyed by game ID, so each $path/$gameid
// is its own isolated board.
type GameManager struct {
	mu          sync.Mutex
	hubs        map[string]*Hub
	idleTimeout time.Duration

	seed   Snapshot
	seeded bool
}

func newGameManager(cfg *Config) *GameManager {
	seed, seeded := LoadSnapshot(cfg, cfg.dataFile)
	if seeded {
		logf(cfg, "DATA: Loaded snapshot from %s", cfg.dataFile)
	}

	gm := &GameManager{
		hubs:        make(map[string]*Hub),
		idleTimeout: cfg.sessionTimeout,
		seed:        seed,
		seeded:      seeded,
	}
	if gm.idleTimeout > 0 {
		go gm.reaperLoop()
	}
	return gm
}

func (gm *GameManager) getHub(cfg *Config, gameID string) *Hub {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if hub, ok := gm.hubs[gameID]; ok {
		return hub
	}

	hub := newHub(cfg, gameID, gm.seed, gm.seeded)
	gm.hubs[gameID] = hub
	go hub.run()
	return hub
}

func (gm *GameManager) lookupHub(gameID string) (*Hub, bool) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	hub, ok := gm.hubs[gameID]
	return hub, ok
}

// newGameID generates a crypto-random game ID and ensures it doesn't
// collide with existing games.
func (gm *GameManager) newGameID() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	for {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, 8)
		for i := range out {
			out[i] = letters[int(buf[i])%len(letters)]
		}
		id := string(out)

		gm.mu.Lock()
		_, exists := gm.hubs[id]
		gm.mu.Unlock()

		if !exists {
			return id
		}
	}
}

// reaperLoop periodically removes hubs that have been idle longer than idleTimeout.
func (gm *GameManager) reaperLoop() {
	ticker := time.NewTicker(gm.idleTimeout / 2)
	for range ticker.C {
		cutoff := time.Now().Add(-gm.idleTimeout)

		gm.mu.Lock()
		for id, hub := range gm.hubs {
			hub.mu.RLock()
			last := hub.lastActive
			hub.mu.RUnlock()

			if last.Before(cutoff) {
				delete(gm.hubs, id)
				go hub.closeAll()
			}
		}
		gm.mu.Unlock()
	}
}

// WebSocket handler that picks the hub based on :gameid
func serveWSForManager(cfg *Config, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)
			return
		}

		playerID := getOrSetPlayerID(w, r)

		hub := gm.getHub(cfg, gameID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn:     conn,
			send:     make(chan any, 8),
			playerID: playerID,
		}

		hub.register <- client

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unreg <- c
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type == "" {
			continue
		}

		h.commands <- command{
			client: c,
			msg:    msg,
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// QR handler: generates a PNG QR code for the current board URL using go-qrcode.
func qrHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gameID := ps.ByName("gameid")
	if gameID == "" {
		http.Error(w, "missing game id", http.StatusBadRequest)
		return
	}

	// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	// We are at /.../:gameid/qr; strip trailing "/qr" to get the board URL.
	path := strings.TrimSuffix(r.URL.Path, "/qr")

	url := scheme + "://" + r.Host + path

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// exportHandler serves a question bank as CSV. Admin-gated: the cookie
// must belong to a session that has logged in on this board's websocket.
func exportHandler(cfg *Config, gm *GameManager, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		startTime := time.Now()

		gameID := ps.ByName("gameid")
		hub, ok := gm.lookupHub(gameID)
		if !ok {
			http.Error(w, "unknown game", http.StatusNotFound)
			return
		}

		cookie, err := r.Cookie(playerCookieName)
		if err != nil || !hub.isAdmin(cookie.Value) {
			http.Error(w, "admin login required", http.StatusForbidden)
			return
		}

		hub.mu.RLock()
		questions := hub.state.Questions
		fastMoney := hub.state.FastMoneyQuestions
		hub.mu.RUnlock()

		var doc, filename string
		switch ps.ByName("kind") {
		case "regular":
			doc = ExportQuestionsCSV(questions)
			filename = "feudbox-regular-questions.csv"
		case "fast-money":
			doc = ExportFastMoneyCSV(fastMoney)
			filename = "feudbox-fast-money-questions.csv"
		case "all":
			doc = ExportCombinedCSV(questions, fastMoney)
			filename = "feudbox-all-questions.csv"
		default:
			http.Error(w, "unknown export kind", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		securityHeaders(cfg, w)

		written, err := w.Write([]byte(doc))
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: CSV export %s (%s) to %s in %s",
			filename,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func boardHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		_ = getOrSetPlayerID(w, r)

		_, _ = w.Write([]byte(boardHTML))
	}
}

// redirectNewGame handles GET /path by generating a new random game ID
// (with server-side collision detection) and redirecting to /path/:gameid.
func redirectNewGame(cfg *Config, path string, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gameID := gm.newGameID()
		logf(cfg, "GAMES: Created game %s/%s", path, gameID)
		http.Redirect(w, r, path+"/"+gameID, http.StatusTemporaryRedirect)
	}
}

// registerFeudGame sets up routes so that:
//   - $path                        → redirects to new random game (8-char ID)
//   - $path/:gameid                → HTML board
//   - $path/:gameid/ws             → WebSocket for that board
//   - $path/:gameid/qr             → PNG QR code for that board URL
//   - $path/:gameid/export/:kind   → CSV export (regular / fast-money / all)
func registerFeudGame(cfg *Config, path string, mux *httprouter.Router, errs chan<- error) {
	gm := newGameManager(cfg)

	mux.GET(path, redirectNewGame(cfg, path, gm))

	mux.GET(cfg.prefix+path+"/:gameid", boardHandler(cfg))

	mux.GET(cfg.prefix+path+"/:gameid/ws", serveWSForManager(cfg, gm))

	mux.GET(cfg.prefix+path+"/:gameid/qr", qrHandler)

	mux.GET(cfg.prefix+path+"/:gameid/export/:kind", exportHandler(cfg, gm, errs))
}
