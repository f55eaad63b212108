package moodle2pdf

import (
	"fmt"
	"strings"
)

// Phase is the lifecycle state of a run's session.
type Phase int

const (
	PhaseUninitialized Phase = iota // neither zip-name nor cookies seen
	PhaseNamed                      // zip-name seen
	PhaseCookied                    // cookies seen
	PhaseAuthenticated              // both seen; exports may be submitted
	PhaseReady                      // browser open and cookie attached
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseNamed:
		return "named"
	case PhaseCookied:
		return "cookied"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseReady:
		return "ready"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Session holds the state built up by directives before exports can run.
// It is only touched by the dispatch loop.
type Session struct {
	quizName    string
	named       bool
	cookie      string
	cookieFound bool
	cookiesSeen bool
	ready       bool
}

// Phase reports the current lifecycle state.
func (s *Session) Phase() Phase {
	switch {
	case s.ready:
		return PhaseReady
	case s.named && s.cookiesSeen:
		return PhaseAuthenticated
	case s.cookiesSeen:
		return PhaseCookied
	case s.named:
		return PhaseNamed
	default:
		return PhaseUninitialized
	}
}

// SetQuizName records the quiz name. A later zip-name replaces it; exports
// already submitted keep the directory they were given.
func (s *Session) SetQuizName(name string) {
	s.quizName = name
	s.named = true
}

// QuizName returns the quiz name, if one has been set.
func (s *Session) QuizName() (string, bool) {
	return s.quizName, s.named
}

// SetCookie records the outcome of a cookies directive. found is false when
// the header carried no session cookie; the failure surfaces when the
// browser session is opened.
func (s *Session) SetCookie(value string, found bool) {
	s.cookiesSeen = true
	s.cookie = value
	s.cookieFound = found
}

// SessionCookie returns the session cookie value, if one was found.
func (s *Session) SessionCookie() (string, bool) {
	return s.cookie, s.cookieFound
}

// CheckExportable fails with ErrSequence unless both zip-name and cookies
// have been applied.
func (s *Session) CheckExportable() error {
	var missing []string
	if !s.named {
		missing = append(missing, DirectiveZipName)
	}
	if !s.cookiesSeen {
		missing = append(missing, DirectiveCookies)
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s requires a prior %s directive", ErrSequence, DirectiveSavePDF, strings.Join(missing, " and "))
}

// MarkReady records that the browser session is open.
func (s *Session) MarkReady() {
	s.ready = true
}
