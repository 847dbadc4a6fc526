package main

import (
	"strings"
	"sync"
	"time"
)

const (
	fastMoneyQuestionCount = 5
	fastMoneyWinThreshold  = 200

	player1Seconds = 20
	player2Seconds = 25
)

// answersMatch applies the bidirectional substring heuristic: a
// submission matches a keyed answer when either contains the other,
// after trimming and case folding. Loose on purpose: "dog" matches
// "hotdog".
func answersMatch(keyed, submitted string) bool {
	k := strings.ToLower(strings.TrimSpace(keyed))
	g := strings.ToLower(strings.TrimSpace(submitted))
	if k == "" || g == "" {
		return false
	}
	return strings.Contains(k, g) || strings.Contains(g, k)
}

// ScoreFastMoney grades one player's free-text submissions against the
// fast money bank. Submissions align positionally with the first five
// questions; missing or blank entries score zero and are recorded as
// "No Answer". The first keyed answer (in stored order) that matches
// wins.
func ScoreFastMoney(questions []FastMoneyQuestion, submissions []string) ([]FastMoneyAnswerRecord, int) {
	count := fastMoneyQuestionCount
	if len(questions) < count {
		count = len(questions)
	}

	records := make([]FastMoneyAnswerRecord, 0, count)
	total := 0

	for i := 0; i < count; i++ {
		q := questions[i]

		submitted := ""
		if i < len(submissions) {
			submitted = strings.TrimSpace(submissions[i])
		}

		record := FastMoneyAnswerRecord{
			Question:      q.Text,
			Answer:        submitted,
			Points:        0,
			CorrectAnswer: "Not Found",
		}
		if submitted == "" {
			record.Answer = "No Answer"
		} else {
			for _, keyed := range q.Answers {
				if answersMatch(keyed.Text, submitted) {
					record.Points = keyed.Points
					record.CorrectAnswer = keyed.Text
					break
				}
			}
		}

		total += record.Points
		records = append(records, record)
	}

	return records, total
}

// fastMoneyWon reports whether the combined total reaches the win
// threshold. The total itself is never clamped.
func fastMoneyWon(total int) bool {
	return total >= fastMoneyWinThreshold
}

// player1AnswerFor surfaces player 1's recorded answer to the same
// question, shown to player 2 as a duplicate hint. Advisory only;
// duplicates are never blocked.
func player1AnswerFor(answers []FastMoneyAnswerRecord, questionText string) string {
	for _, a := range answers {
		if a.Question == questionText {
			return a.Answer
		}
	}
	return ""
}

// Countdown is the fast money clock: one cooperative tick per second
// while running, with an expiry callback when it reaches zero. Expiry
// finalizes exactly as if the player had submitted early; the caller's
// onExpire normally synthesizes the submit action.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	running   bool
	stop      chan struct{}
	onTick    func(remaining int)
	onExpire  func()
}

func NewCountdown(seconds int, onTick func(remaining int), onExpire func()) *Countdown {
	return &Countdown{
		remaining: seconds,
		onTick:    onTick,
		onExpire:  onExpire,
	}
}

// Start begins ticking once per second. Starting an already-running
// countdown is a no-op.
func (c *Countdown) Start() {
	c.mu.Lock()
	if c.running || c.remaining <= 0 {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.stop = make(chan struct{})
	stop := c.stop
	c.mu.Unlock()

	go c.loop(stop)
}

func (c *Countdown) loop(stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			if !c.running {
				c.mu.Unlock()
				return
			}
			c.remaining--
			remaining := c.remaining
			expired := remaining <= 0
			if expired {
				c.running = false
			}
			onTick := c.onTick
			onExpire := c.onExpire
			c.mu.Unlock()

			if onTick != nil {
				onTick(remaining)
			}
			if expired {
				if onExpire != nil {
					onExpire()
				}
				return
			}
		}
	}
}

// Stop halts the clock without firing onExpire.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}
	c.running = false
	close(c.stop)
}

// Remaining reports the seconds left on the clock.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.remaining
}

// Running reports whether the clock is ticking.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}
