package main

import "testing"

func TestMediaKind(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{"mp3 audio", "https://example.com/buzzer.mp3", MediaAudio},
		{"wav audio", "https://example.com/ding.wav", MediaAudio},
		{"mp4 video", "https://example.com/intro.mp4", MediaVideo},
		{"webm video", "https://example.com/intro.webm", MediaVideo},
		{"query string", "https://example.com/intro.mp4?token=abc", MediaVideo},
		{"no extension", "https://example.com/stream", MediaAudio},
		{"uppercase extension", "https://example.com/INTRO.MP4", MediaVideo},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mediaKind(tc.url); got != tc.want {
				t.Errorf("mediaKind(%q) = %q, want %q", tc.url, got, tc.want)
			}
		})
	}
}

func TestSoundBoard(t *testing.T) {
	t.Run("play exposes an active handle", func(t *testing.T) {
		sb := NewSoundBoard()
		sb.Play(SoundGameStart, "https://example.com/intro.mp4")

		if got := sb.Status(SoundGameStart); got != SoundPlaying {
			t.Errorf("expected playing, got %q", got)
		}
		h, ok := sb.Active(SoundGameStart)
		if !ok {
			t.Fatal("expected an active handle")
		}
		if h.Kind != MediaVideo {
			t.Errorf("expected video handle, got %q", h.Kind)
		}
	})

	t.Run("play replaces the previous handle", func(t *testing.T) {
		sb := NewSoundBoard()
		sb.Play(SoundGameStart, "https://example.com/old.mp3")
		sb.Pause(SoundGameStart)
		sb.Play(SoundGameStart, "https://example.com/new.mp3")

		h, _ := sb.Active(SoundGameStart)
		if h.URL != "https://example.com/new.mp3" {
			t.Errorf("expected new handle, got %q", h.URL)
		}
		if sb.Status(SoundGameStart) != SoundPlaying {
			t.Error("replacement handle should start playing")
		}
	})

	t.Run("blank url is ignored", func(t *testing.T) {
		sb := NewSoundBoard()
		sb.Play(SoundRoundEnd, "   ")

		if got := sb.Status(SoundRoundEnd); got != SoundStopped {
			t.Errorf("expected stopped, got %q", got)
		}
		if _, ok := sb.Active(SoundRoundEnd); ok {
			t.Error("blank url should not create a handle")
		}
	})

	t.Run("pause and resume", func(t *testing.T) {
		sb := NewSoundBoard()
		sb.Play(SoundWrongAnswer, "https://example.com/buzzer.mp3")

		sb.Pause(SoundWrongAnswer)
		if got := sb.Status(SoundWrongAnswer); got != SoundPaused {
			t.Errorf("expected paused, got %q", got)
		}

		sb.Resume(SoundWrongAnswer)
		if got := sb.Status(SoundWrongAnswer); got != SoundPlaying {
			t.Errorf("expected playing, got %q", got)
		}
	})

	t.Run("resume without pause is a no-op", func(t *testing.T) {
		sb := NewSoundBoard()
		sb.Resume(SoundWrongAnswer)

		if got := sb.Status(SoundWrongAnswer); got != SoundStopped {
			t.Errorf("expected stopped, got %q", got)
		}
	})

	t.Run("stop drops the handle", func(t *testing.T) {
		sb := NewSoundBoard()
		sb.Play(SoundCorrectAnswer, "https://example.com/ding.mp3")
		sb.Stop(SoundCorrectAnswer)

		if got := sb.Status(SoundCorrectAnswer); got != SoundStopped {
			t.Errorf("expected stopped, got %q", got)
		}
		if _, ok := sb.Active(SoundCorrectAnswer); ok {
			t.Error("expected no handle after stop")
		}
	})

	t.Run("channels are independent", func(t *testing.T) {
		sb := NewSoundBoard()
		sb.Play(SoundGameStart, "https://example.com/intro.mp3")
		sb.Play(SoundRoundEnd, "https://example.com/outro.mp3")
		sb.Stop(SoundGameStart)

		if got := sb.Status(SoundRoundEnd); got != SoundPlaying {
			t.Errorf("stopping one channel disturbed another: %q", got)
		}
	})
}

func TestSoundBoardApply(t *testing.T) {
	settings := defaultSettings().Sounds

	sb := NewSoundBoard()
	sb.Apply(SoundEffect{Op: "play", Channel: SoundGameStart}, settings)

	if got := sb.Status(SoundGameStart); got != SoundPlaying {
		t.Fatalf("expected playing, got %q", got)
	}
	h, _ := sb.Active(SoundGameStart)
	if h.URL != settings.GameStart {
		t.Errorf("expected configured url, got %q", h.URL)
	}

	sb.Apply(SoundEffect{Op: "pause", Channel: SoundGameStart}, settings)
	if got := sb.Status(SoundGameStart); got != SoundPaused {
		t.Errorf("expected paused, got %q", got)
	}

	sb.Apply(SoundEffect{Op: "resume", Channel: SoundGameStart}, settings)
	if got := sb.Status(SoundGameStart); got != SoundPlaying {
		t.Errorf("expected playing, got %q", got)
	}

	sb.Apply(SoundEffect{Op: "stop", Channel: SoundGameStart}, settings)
	if got := sb.Status(SoundGameStart); got != SoundStopped {
		t.Errorf("expected stopped, got %q", got)
	}
}
