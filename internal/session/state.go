package session

import (
	"foodindex/internal/engine"
	"foodindex/internal/models"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-set/v2"
)

// Schema is the live column set a selection is checked against.
type Schema interface {
	SubindexFields() []string
	CompetingFields() []string
}

// State is one session's control values. The zero value is ready to use and
// resolves to the first available options.
type State struct {
	mu        sync.Mutex
	subindex  string
	competing string
	showRaw   bool
	notices   []string
}

func NewState() *State {
	return &State{}
}

// Resolve returns the current selection, first replacing any choice that is
// empty or no longer part of the schema with its default.
func (s *State) Resolve(schema Schema) models.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subindex, _ = choose("subindex", s.subindex, schema.SubindexFields())
	s.competing, _ = choose("competing index", s.competing, schema.CompetingFields())
	return models.Selection{Subindex: s.subindex, Competing: s.competing}
}

// SetSubindexChoice selects a subindex. An unknown name leaves the default
// selected and the returned FieldNotFoundError is only a warning.
func (s *State) SetSubindexChoice(schema Schema, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	s.subindex, err = choose("subindex", name, schema.SubindexFields())
	return err
}

// SetCompetingChoice behaves like SetSubindexChoice for the competing index.
func (s *State) SetCompetingChoice(schema Schema, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	s.competing, err = choose("competing index", name, schema.CompetingFields())
	return err
}

func (s *State) ShowRaw() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showRaw
}

func (s *State) SetShowRaw(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showRaw = show
}

// AddNotice queues a message for the next page render.
func (s *State) AddNotice(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, msg)
}

// TakeNotices returns and clears the queued messages.
func (s *State) TakeNotices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	notices := s.notices
	s.notices = nil
	return notices
}

func choose(control, name string, options []string) (string, error) {
	if len(options) == 0 {
		return "", errors.Wrapf(engine.FieldNotFoundError, "no %s available", control)
	}
	if set.From(options).Contains(name) {
		return name, nil
	}
	if name == "" {
		return options[0], nil
	}
	return options[0], errors.Wrapf(engine.FieldNotFoundError, "unknown %s %q, showing %q", control, name, options[0])
}
