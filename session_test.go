package moodle2pdf

import (
	"errors"
	"strings"
	"testing"
)

func TestSession_Phases(t *testing.T) {
	t.Parallel()

	var s Session
	if got := s.Phase(); got != PhaseUninitialized {
		t.Fatalf("zero Session phase = %v", got)
	}

	s.SetCookie("abc", true)
	if got := s.Phase(); got != PhaseCookied {
		t.Errorf("after cookies phase = %v, want %v", got, PhaseCookied)
	}

	s.SetQuizName("Midterm_Exam")
	if got := s.Phase(); got != PhaseAuthenticated {
		t.Errorf("after zip-name phase = %v, want %v", got, PhaseAuthenticated)
	}

	s.MarkReady()
	if got := s.Phase(); got != PhaseReady {
		t.Errorf("after MarkReady phase = %v, want %v", got, PhaseReady)
	}

	var named Session
	named.SetQuizName("Q")
	if got := named.Phase(); got != PhaseNamed {
		t.Errorf("named-only phase = %v, want %v", got, PhaseNamed)
	}
}

func TestSession_QuizName(t *testing.T) {
	t.Parallel()

	var s Session
	if _, ok := s.QuizName(); ok {
		t.Error("QuizName() ok = true before zip-name")
	}

	s.SetQuizName("First")
	s.SetQuizName("Second")
	if name, ok := s.QuizName(); !ok || name != "Second" {
		t.Errorf("QuizName() = %q, %v; want Second, true", name, ok)
	}
}

func TestSession_SessionCookie(t *testing.T) {
	t.Parallel()

	var s Session
	s.SetCookie("", false)
	if _, ok := s.SessionCookie(); ok {
		t.Error("SessionCookie() ok = true after cookies without the session cookie")
	}
	if s.Phase() != PhaseCookied {
		t.Errorf("a cookies directive without the session cookie still counts as seen, phase = %v", s.Phase())
	}

	s.SetCookie("abc", true)
	if v, ok := s.SessionCookie(); !ok || v != "abc" {
		t.Errorf("SessionCookie() = %q, %v", v, ok)
	}
}

func TestSession_CheckExportable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		setup       func(*Session)
		wantErr     bool
		wantMissing []string
	}{
		{
			name:        "nothing set",
			setup:       func(*Session) {},
			wantErr:     true,
			wantMissing: []string{"zip-name", "cookies"},
		},
		{
			name:        "only cookies",
			setup:       func(s *Session) { s.SetCookie("abc", true) },
			wantErr:     true,
			wantMissing: []string{"zip-name"},
		},
		{
			name:        "only zip-name",
			setup:       func(s *Session) { s.SetQuizName("Q") },
			wantErr:     true,
			wantMissing: []string{"cookies"},
		},
		{
			name: "both set",
			setup: func(s *Session) {
				s.SetQuizName("Q")
				s.SetCookie("abc", true)
			},
		},
		{
			name: "cookie missing is not a sequence error",
			setup: func(s *Session) {
				s.SetQuizName("Q")
				s.SetCookie("", false)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var s Session
			tt.setup(&s)
			err := s.CheckExportable()

			if !tt.wantErr {
				if err != nil {
					t.Errorf("CheckExportable() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrSequence) {
				t.Fatalf("CheckExportable() = %v, want ErrSequence", err)
			}
			for _, m := range tt.wantMissing {
				if !strings.Contains(err.Error(), m) {
					t.Errorf("error %q should name %q", err, m)
				}
			}
		})
	}
}

func TestPhase_String(t *testing.T) {
	t.Parallel()

	if got := PhaseReady.String(); got != "ready" {
		t.Errorf("PhaseReady.String() = %q", got)
	}
	if got := Phase(42).String(); got != "Phase(42)" {
		t.Errorf("Phase(42).String() = %q", got)
	}
}
