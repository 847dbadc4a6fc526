// Game state engine for the feud board.
//
// The whole round flow lives in one pure transition function over a
// closed set of action variants. Invalid or impossible actions return
// the unchanged state; nothing in here performs I/O. Side effects the
// presentation layer must carry out (sounds, snapshot writes) are
// returned as Effect values next to the new state.

package main

// Team identifies one of the two competing teams.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

func (t Team) opponent() Team {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// GamePhase is the engine's round-flow state.
type GamePhase string

const (
	PhasePlaying          GamePhase = "playing"
	PhaseSteal            GamePhase = "steal"
	PhaseRoundEnd         GamePhase = "round-end"
	PhaseFastMoney        GamePhase = "fast-money"
	PhaseFastMoneyPlayer2 GamePhase = "fast-money-player2"
	PhaseGameComplete     GamePhase = "game-complete"
)

const maxStrikes = 3

// RoundHistoryEntry records how one round concluded. Entries are
// append-only and never rewritten.
type RoundHistoryEntry struct {
	Round    int    `json:"round"` // 1-based
	Team     Team   `json:"team"`
	Points   int    `json:"points"`
	Question string `json:"question"`
	Type     string `json:"type"` // "normal", "steal" or "failed-steal"
}

// FastMoneyAnswerRecord is one scored fast money submission.
type FastMoneyAnswerRecord struct {
	Question      string `json:"question"`
	Answer        string `json:"answer"`
	Points        int    `json:"points"`
	CorrectAnswer string `json:"correctAnswer"`
}

// FastMoneyAnswers holds both players' scored submissions.
type FastMoneyAnswers struct {
	Player1 []FastMoneyAnswerRecord `json:"player1"`
	Player2 []FastMoneyAnswerRecord `json:"player2"`
}

// GameState is the aggregate the engine owns. It is treated as a value:
// Transition copies whatever it changes and never mutates its input.
type GameState struct {
	Settings             GameSettings        `json:"gameSettings"`
	Questions            []Question          `json:"questions"`
	FastMoneyQuestions   []FastMoneyQuestion `json:"fastMoneyQuestions"`
	CurrentQuestionIndex int                 `json:"currentQuestionIndex"`
	TeamAScore           int                 `json:"teamAScore"`
	TeamBScore           int                 `json:"teamBScore"`
	Strikes              int                 `json:"strikes"`
	GamePhase            GamePhase           `json:"gamePhase"`
	CurrentTeam          Team                `json:"currentTeam"`
	RoundScore           int                 `json:"roundScore"`
	StealingTeam         *Team               `json:"stealingTeam"`
	OriginalTeam         *Team               `json:"originalTeam"`
	FastMoneyAnswers     FastMoneyAnswers    `json:"fastMoneyAnswers"`
	FastMoneyScore       int                 `json:"fastMoneyScore"`
	WinningTeam          *Team               `json:"winningTeam"`
	RoundHistory         []RoundHistoryEntry `json:"roundHistory"`
	ActiveSounds         map[string]string   `json:"activeSounds"`
}

// NewGameState builds the initial state from the built-in seed banks.
func NewGameState() GameState {
	return GameState{
		Settings:           defaultSettings(),
		Questions:          seedQuestions(),
		FastMoneyQuestions: seedFastMoneyQuestions(),
		GamePhase:          PhasePlaying,
		CurrentTeam:        TeamA,
		FastMoneyAnswers:   FastMoneyAnswers{Player1: []FastMoneyAnswerRecord{}, Player2: []FastMoneyAnswerRecord{}},
		RoundHistory:       []RoundHistoryEntry{},
		ActiveSounds: map[string]string{
			SoundGameStart:     SoundStopped,
			SoundRoundEnd:      SoundStopped,
			SoundCorrectAnswer: SoundStopped,
			SoundWrongAnswer:   SoundStopped,
		},
	}
}

// Action is the closed set of engine inputs. The marker method keeps
// the set closed so the Transition switch stays exhaustive.
type Action interface {
	isAction()
}

type RevealAnswer struct{ Index int }
type AddStrike struct{}
type AwardPoints struct {
	Team   Team
	Points int
}
type StealPoints struct{ Team Team }
type NoSteal struct{}
type NextQuestion struct{}
type SwitchTeam struct{}
type StartFastMoney struct{}
type SubmitFastMoneyPlayer1 struct {
	Answers []FastMoneyAnswerRecord
	Score   int
}
type SubmitFastMoneyPlayer2 struct {
	Answers []FastMoneyAnswerRecord
	Score   int
}
type ResetRound struct{}
type ResetGame struct{}

type AddQuestion struct {
	Text    string
	Answers []Answer
}
type UpdateQuestion struct {
	ID      int
	Text    string
	Answers []Answer
}
type DeleteQuestion struct{ ID int }
type AddFastMoneyQuestion struct {
	Text    string
	Answers []FastMoneyAnswer
}
type UpdateFastMoneyQuestion struct {
	ID      int
	Text    string
	Answers []FastMoneyAnswer
}
type DeleteFastMoneyQuestion struct{ ID int }

// LoadData merges a persisted snapshot into the state. Loaded questions
// always come back covered regardless of what was stored.
type LoadData struct{ Snapshot Snapshot }

type UpdateGameSettings struct{ Title string }
type UpdateSoundSettings struct{ Sounds SoundSettings }

type PlaySound struct{ Channel string }
type PauseSound struct{ Channel string }
type StopSound struct{ Channel string }
type ResumeSound struct{ Channel string }

func (RevealAnswer) isAction()            {}
func (AddStrike) isAction()               {}
func (AwardPoints) isAction()             {}
func (StealPoints) isAction()             {}
func (NoSteal) isAction()                 {}
func (NextQuestion) isAction()            {}
func (SwitchTeam) isAction()              {}
func (StartFastMoney) isAction()          {}
func (SubmitFastMoneyPlayer1) isAction()  {}
func (SubmitFastMoneyPlayer2) isAction()  {}
func (ResetRound) isAction()              {}
func (ResetGame) isAction()               {}
func (AddQuestion) isAction()             {}
func (UpdateQuestion) isAction()          {}
func (DeleteQuestion) isAction()          {}
func (AddFastMoneyQuestion) isAction()    {}
func (UpdateFastMoneyQuestion) isAction() {}
func (DeleteFastMoneyQuestion) isAction() {}
func (LoadData) isAction()                {}
func (UpdateGameSettings) isAction()      {}
func (UpdateSoundSettings) isAction()     {}
func (PlaySound) isAction()               {}
func (PauseSound) isAction()              {}
func (StopSound) isAction()               {}
func (ResumeSound) isAction()             {}

// Effect is an observable side request emitted next to a transition.
// The engine never performs these itself.
type Effect interface {
	isEffect()
}

// SoundEffect asks the sound board to run one operation on a channel.
type SoundEffect struct {
	Op      string // "play", "pause", "stop", "resume"
	Channel string
}

// PersistEffect signals that questions or settings changed and the
// snapshot should be mirrored to disk.
type PersistEffect struct{}

func (SoundEffect) isEffect()   {}
func (PersistEffect) isEffect() {}

// Transition maps (state, action) to (state, effects). Total over the
// action set: anything whose precondition does not hold is a no-op.
func Transition(s GameState, a Action) (GameState, []Effect) {
	switch act := a.(type) {
	case RevealAnswer:
		return revealAnswer(s, act.Index)
	case AddStrike:
		return addStrike(s)
	case AwardPoints:
		return awardPoints(s, act.Team, act.Points)
	case StealPoints:
		return stealPoints(s, act.Team)
	case NoSteal:
		return noSteal(s)
	case NextQuestion:
		return nextQuestion(s)
	case SwitchTeam:
		if s.GamePhase == PhaseSteal {
			return s, nil
		}
		s.CurrentTeam = s.CurrentTeam.opponent()
		return s, nil
	case StartFastMoney:
		return startFastMoney(s)
	case SubmitFastMoneyPlayer1:
		if s.GamePhase != PhaseFastMoney {
			return s, nil
		}
		s.FastMoneyAnswers.Player1 = act.Answers
		s.FastMoneyScore = act.Score
		s.GamePhase = PhaseFastMoneyPlayer2
		return s, nil
	case SubmitFastMoneyPlayer2:
		if s.GamePhase != PhaseFastMoneyPlayer2 {
			return s, nil
		}
		s.FastMoneyAnswers.Player2 = act.Answers
		s.FastMoneyScore += act.Score
		s.GamePhase = PhaseGameComplete
		return s, nil
	case ResetRound:
		return resetRound(s)
	case ResetGame:
		return resetGame(s)
	case AddQuestion:
		q := Question{
			ID:      nextQuestionID(s.Questions),
			Text:    act.Text,
			Answers: normalizeAnswers(act.Answers),
		}
		s.Questions = append(coverless(s.Questions), q)
		return s, []Effect{PersistEffect{}}
	case UpdateQuestion:
		return updateQuestion(s, act)
	case DeleteQuestion:
		questions := make([]Question, 0, len(s.Questions))
		for _, q := range s.Questions {
			if q.ID != act.ID {
				questions = append(questions, q)
			}
		}
		if len(questions) == len(s.Questions) {
			return s, nil
		}
		s.Questions = questions
		return s, []Effect{PersistEffect{}}
	case AddFastMoneyQuestion:
		q := FastMoneyQuestion{
			ID:      nextFastMoneyID(s.FastMoneyQuestions),
			Text:    act.Text,
			Answers: normalizeFastMoneyAnswers(act.Answers),
		}
		s.FastMoneyQuestions = append(append([]FastMoneyQuestion{}, s.FastMoneyQuestions...), q)
		return s, []Effect{PersistEffect{}}
	case UpdateFastMoneyQuestion:
		return updateFastMoneyQuestion(s, act)
	case DeleteFastMoneyQuestion:
		questions := make([]FastMoneyQuestion, 0, len(s.FastMoneyQuestions))
		for _, q := range s.FastMoneyQuestions {
			if q.ID != act.ID {
				questions = append(questions, q)
			}
		}
		if len(questions) == len(s.FastMoneyQuestions) {
			return s, nil
		}
		s.FastMoneyQuestions = questions
		return s, []Effect{PersistEffect{}}
	case LoadData:
		return loadData(s, act.Snapshot)
	case UpdateGameSettings:
		s.Settings.Title = act.Title
		return s, []Effect{PersistEffect{}}
	case UpdateSoundSettings:
		s.Settings.Sounds = act.Sounds
		return s, []Effect{PersistEffect{}}
	case PlaySound:
		s.ActiveSounds = withSoundStatus(s.ActiveSounds, act.Channel, SoundPlaying)
		return s, []Effect{SoundEffect{Op: "play", Channel: act.Channel}}
	case PauseSound:
		s.ActiveSounds = withSoundStatus(s.ActiveSounds, act.Channel, SoundPaused)
		return s, []Effect{SoundEffect{Op: "pause", Channel: act.Channel}}
	case StopSound:
		s.ActiveSounds = withSoundStatus(s.ActiveSounds, act.Channel, SoundStopped)
		return s, []Effect{SoundEffect{Op: "stop", Channel: act.Channel}}
	case ResumeSound:
		s.ActiveSounds = withSoundStatus(s.ActiveSounds, act.Channel, SoundPlaying)
		return s, []Effect{SoundEffect{Op: "resume", Channel: act.Channel}}
	}

	return s, nil
}

// coverless copies the question slice without touching revealed flags.
func coverless(questions []Question) []Question {
	return append([]Question{}, questions...)
}

func withSoundStatus(m map[string]string, channel, status string) map[string]string {
	out := make(map[string]string, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[channel] = status
	return out
}

func (s GameState) currentQuestion() (Question, bool) {
	if s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.CurrentQuestionIndex], true
}

func revealAnswer(s GameState, index int) (GameState, []Effect) {
	q, ok := s.currentQuestion()
	if !ok || index < 0 || index >= len(q.Answers) {
		return s, nil
	}
	if q.Answers[index].Revealed {
		return s, nil
	}

	questions := coverless(s.Questions)
	answers := append([]Answer{}, q.Answers...)
	answers[index].Revealed = true
	questions[s.CurrentQuestionIndex].Answers = answers
	s.Questions = questions

	effects := []Effect{SoundEffect{Op: "play", Channel: SoundCorrectAnswer}}

	// Steal-phase reveals are informational only; no partial credit
	// accrues to either team.
	if s.GamePhase != PhaseSteal {
		s.RoundScore += answers[index].Points
	}

	return s, effects
}

func addStrike(s GameState) (GameState, []Effect) {
	if s.GamePhase != PhasePlaying && s.GamePhase != PhaseSteal {
		return s, nil
	}

	effects := []Effect{SoundEffect{Op: "play", Channel: SoundWrongAnswer}}

	if s.GamePhase == PhaseSteal {
		// A strike during the steal hands the round score back to the
		// team that had control before the steal, never the stealers.
		original := *s.OriginalTeam
		s = creditTeam(s, original, s.RoundScore)
		s.RoundHistory = appendHistory(s.RoundHistory, RoundHistoryEntry{
			Round:    s.CurrentQuestionIndex + 1,
			Team:     original,
			Points:   s.RoundScore,
			Question: questionTextAt(s, s.CurrentQuestionIndex),
			Type:     "failed-steal",
		})
		s = concludeRound(s)
		return s, append(effects, SoundEffect{Op: "play", Channel: SoundRoundEnd})
	}

	s.Strikes++
	if s.Strikes >= maxStrikes {
		original := s.CurrentTeam
		stealing := original.opponent()
		s.GamePhase = PhaseSteal
		s.OriginalTeam = &original
		s.StealingTeam = &stealing
		s.CurrentTeam = stealing
	}

	return s, effects
}

func awardPoints(s GameState, team Team, points int) (GameState, []Effect) {
	if s.GamePhase == PhaseSteal {
		return s, nil
	}

	s = creditTeam(s, team, points)
	s.RoundHistory = appendHistory(s.RoundHistory, RoundHistoryEntry{
		Round:    s.CurrentQuestionIndex + 1,
		Team:     team,
		Points:   points,
		Question: questionTextAt(s, s.CurrentQuestionIndex),
		Type:     "normal",
	})
	s = concludeRound(s)

	return s, []Effect{SoundEffect{Op: "play", Channel: SoundRoundEnd}}
}

func stealPoints(s GameState, team Team) (GameState, []Effect) {
	if s.GamePhase != PhaseSteal {
		return s, nil
	}

	points := s.RoundScore
	s = creditTeam(s, team, points)
	s.RoundHistory = appendHistory(s.RoundHistory, RoundHistoryEntry{
		Round:    s.CurrentQuestionIndex + 1,
		Team:     team,
		Points:   points,
		Question: questionTextAt(s, s.CurrentQuestionIndex),
		Type:     "steal",
	})
	s = concludeRound(s)

	return s, []Effect{SoundEffect{Op: "play", Channel: SoundRoundEnd}}
}

func noSteal(s GameState) (GameState, []Effect) {
	if s.GamePhase != PhaseSteal {
		return s, nil
	}

	s = concludeRound(s)

	return s, []Effect{SoundEffect{Op: "play", Channel: SoundRoundEnd}}
}

func nextQuestion(s GameState) (GameState, []Effect) {
	if s.CurrentQuestionIndex+1 >= len(s.Questions) {
		return s, nil
	}

	s.CurrentQuestionIndex++
	s.Strikes = 0
	s.RoundScore = 0
	s.GamePhase = PhasePlaying
	s.CurrentTeam = TeamA
	s.StealingTeam = nil
	s.OriginalTeam = nil

	return s, nil
}

func startFastMoney(s GameState) (GameState, []Effect) {
	// Ties default to team A.
	winner := TeamA
	if s.TeamBScore > s.TeamAScore {
		winner = TeamB
	}

	s.GamePhase = PhaseFastMoney
	s.WinningTeam = &winner
	s.FastMoneyAnswers = FastMoneyAnswers{Player1: []FastMoneyAnswerRecord{}, Player2: []FastMoneyAnswerRecord{}}
	s.FastMoneyScore = 0
	s.StealingTeam = nil
	s.OriginalTeam = nil

	return s, nil
}

func resetRound(s GameState) (GameState, []Effect) {
	if q, ok := s.currentQuestion(); ok {
		questions := coverless(s.Questions)
		answers := make([]Answer, len(q.Answers))
		for i, a := range q.Answers {
			answers[i] = Answer{Text: a.Text, Points: a.Points}
		}
		questions[s.CurrentQuestionIndex].Answers = answers
		s.Questions = questions
	}

	s.Strikes = 0
	s.RoundScore = 0
	s.GamePhase = PhasePlaying
	s.CurrentTeam = TeamA
	s.StealingTeam = nil
	s.OriginalTeam = nil

	return s, nil
}

func resetGame(s GameState) (GameState, []Effect) {
	next := NewGameState()
	// Question banks and show settings survive a reset; scores, phase
	// and history do not.
	next.Settings = s.Settings
	next.Questions = coverQuestions(s.Questions)
	next.FastMoneyQuestions = s.FastMoneyQuestions

	effects := []Effect{
		SoundEffect{Op: "stop", Channel: SoundGameStart},
		SoundEffect{Op: "stop", Channel: SoundRoundEnd},
		SoundEffect{Op: "stop", Channel: SoundCorrectAnswer},
		SoundEffect{Op: "stop", Channel: SoundWrongAnswer},
	}

	return next, effects
}

func updateQuestion(s GameState, act UpdateQuestion) (GameState, []Effect) {
	idx := -1
	for i, q := range s.Questions {
		if q.ID == act.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return s, nil
	}

	questions := coverless(s.Questions)
	questions[idx] = Question{
		ID:      act.ID,
		Text:    act.Text,
		Answers: normalizeAnswers(act.Answers),
	}
	s.Questions = questions

	return s, []Effect{PersistEffect{}}
}

func updateFastMoneyQuestion(s GameState, act UpdateFastMoneyQuestion) (GameState, []Effect) {
	idx := -1
	for i, q := range s.FastMoneyQuestions {
		if q.ID == act.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return s, nil
	}

	questions := append([]FastMoneyQuestion{}, s.FastMoneyQuestions...)
	questions[idx] = FastMoneyQuestion{
		ID:      act.ID,
		Text:    act.Text,
		Answers: normalizeFastMoneyAnswers(act.Answers),
	}
	s.FastMoneyQuestions = questions

	return s, []Effect{PersistEffect{}}
}

func loadData(s GameState, snap Snapshot) (GameState, []Effect) {
	if snap.Questions != nil {
		s.Questions = coverQuestions(snap.Questions)
	}
	if snap.FastMoneyQuestions != nil {
		s.FastMoneyQuestions = snap.FastMoneyQuestions
	}
	if snap.GameSettings != nil {
		s.Settings = *snap.GameSettings
	}
	return s, nil
}

// creditTeam adds points to one team's total.
func creditTeam(s GameState, team Team, points int) GameState {
	if team == TeamA {
		s.TeamAScore += points
	} else {
		s.TeamBScore += points
	}
	return s
}

// concludeRound applies the bookkeeping every round conclusion shares:
// round score and strikes cleared, control back to team A, steal
// fields emptied, phase moved to round-end.
func concludeRound(s GameState) GameState {
	s.RoundScore = 0
	s.Strikes = 0
	s.GamePhase = PhaseRoundEnd
	s.CurrentTeam = TeamA
	s.StealingTeam = nil
	s.OriginalTeam = nil
	return s
}

func appendHistory(history []RoundHistoryEntry, entry RoundHistoryEntry) []RoundHistoryEntry {
	out := make([]RoundHistoryEntry, len(history), len(history)+1)
	copy(out, history)
	return append(out, entry)
}

func questionTextAt(s GameState, index int) string {
	if index < 0 || index >= len(s.Questions) {
		return ""
	}
	return s.Questions[index].Text
}
