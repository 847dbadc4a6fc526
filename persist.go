package main

import (
	"encoding/json"
	"os"
)

// Snapshot is the persisted slice of state: question banks and show
// settings only. Scores, phase and history are never written.
type Snapshot struct {
	Questions          []Question          `json:"questions"`
	FastMoneyQuestions []FastMoneyQuestion `json:"fastMoneyQuestions"`
	GameSettings       *GameSettings       `json:"gameSettings"`
}

// snapshotOf extracts the persisted fields from a state.
func snapshotOf(s GameState) Snapshot {
	settings := s.Settings
	return Snapshot{
		Questions:          s.Questions,
		FastMoneyQuestions: s.FastMoneyQuestions,
		GameSettings:       &settings,
	}
}

// LoadSnapshot reads a snapshot from path. A missing or malformed file
// is not an error to the caller: the engine falls back to seed data and
// the problem is only logged.
func LoadSnapshot(cfg *Config, path string) (Snapshot, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logf(cfg, "DATA: Ignoring unreadable snapshot %s: %v", path, err)
		}
		return Snapshot{}, false
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logf(cfg, "DATA: Ignoring malformed snapshot %s: %v", path, err)
		return Snapshot{}, false
	}

	if snap.Questions == nil && snap.FastMoneyQuestions == nil && snap.GameSettings == nil {
		return Snapshot{}, false
	}

	return snap, true
}

// SaveSnapshot mirrors the snapshot to path. Written via a temp file
// so a crash mid-write never leaves a truncated snapshot behind.
func SaveSnapshot(path string, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
