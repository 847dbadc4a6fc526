package main

import (
	"path"
	"strings"
	"sync"
)

// Logical sound channels. Each maps to a configurable media URL and
// carries at most one active handle at a time.
const (
	SoundGameStart     = "gameStart"
	SoundRoundEnd      = "roundEnd"
	SoundCorrectAnswer = "correctAnswer"
	SoundWrongAnswer   = "wrongAnswer"
)

// Channel playback states reported by Status.
const (
	SoundPlaying = "playing"
	SoundPaused  = "paused"
	SoundStopped = "stopped"
)

// Media kinds, dispatched on the URL's file extension at play time.
const (
	MediaAudio = "audio"
	MediaVideo = "video"
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".ogg":  true,
	".avi":  true,
	".mov":  true,
}

// mediaKind classifies a URL by file extension; anything that is not a
// known video container plays as audio.
func mediaKind(url string) string {
	ext := strings.ToLower(path.Ext(url))
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}
	if videoExtensions[ext] {
		return MediaVideo
	}
	return MediaAudio
}

// soundHandle is one active piece of media on a channel. Handles are
// created on play and dropped on stop.
type soundHandle struct {
	URL    string
	Kind   string
	status string
}

// SoundBoard owns the per-channel handle table. Playback itself is
// best-effort and happens in the connected board clients; the board
// only tracks which handle is live on each channel so play/pause/
// resume/status behave like a real media rack.
type SoundBoard struct {
	mu      sync.Mutex
	handles map[string]*soundHandle
}

func NewSoundBoard() *SoundBoard {
	return &SoundBoard{
		handles: make(map[string]*soundHandle),
	}
}

// Play starts url on the named channel, replacing whatever handle was
// active there. Blank URLs are ignored.
func (sb *SoundBoard) Play(channel, url string) {
	if strings.TrimSpace(url) == "" {
		return
	}

	sb.mu.Lock()
	defer sb.mu.Unlock()

	sb.handles[channel] = &soundHandle{
		URL:    url,
		Kind:   mediaKind(url),
		status: SoundPlaying,
	}
}

// Pause suspends the channel's active handle, if any.
func (sb *SoundBoard) Pause(channel string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if h, ok := sb.handles[channel]; ok && h.status == SoundPlaying {
		h.status = SoundPaused
	}
}

// Resume restarts a paused handle.
func (sb *SoundBoard) Resume(channel string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if h, ok := sb.handles[channel]; ok && h.status == SoundPaused {
		h.status = SoundPlaying
	}
}

// Stop disposes the channel's handle entirely.
func (sb *SoundBoard) Stop(channel string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	delete(sb.handles, channel)
}

// Status reports playing, paused or stopped for each channel. A channel
// with no handle is stopped.
func (sb *SoundBoard) Status(channel string) string {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	h, ok := sb.handles[channel]
	if !ok {
		return SoundStopped
	}
	return h.status
}

// Active returns the live handle for a channel, if one exists.
func (sb *SoundBoard) Active(channel string) (soundHandle, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	h, ok := sb.handles[channel]
	if !ok {
		return soundHandle{}, false
	}
	return *h, true
}

// Apply runs one engine sound effect against the board using the
// channel URLs configured in settings.
func (sb *SoundBoard) Apply(effect SoundEffect, sounds SoundSettings) {
	switch effect.Op {
	case "play":
		sb.Play(effect.Channel, sounds.urlFor(effect.Channel))
	case "pause":
		sb.Pause(effect.Channel)
	case "resume":
		sb.Resume(effect.Channel)
	case "stop":
		sb.Stop(effect.Channel)
	}
}

func (s SoundSettings) urlFor(channel string) string {
	switch channel {
	case SoundGameStart:
		return s.GameStart
	case SoundRoundEnd:
		return s.RoundEnd
	case SoundCorrectAnswer:
		return s.CorrectAnswer
	case SoundWrongAnswer:
		return s.WrongAnswer
	default:
		return ""
	}
}
