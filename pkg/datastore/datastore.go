package datastore

import "github.com/arthur-debert/das/pkg/selection"

// CurrentVersion is written into every state file.
const CurrentVersion = 1

// Session is everything das remembers between invocations.
type Session struct {
	Version  int               `json:"version"`
	Stateful bool              `json:"stateful"`
	Base     string            `json:"base,omitempty"`
	Partner  string            `json:"partner,omitempty"`
	Alias    map[string]string `json:"alias"`

	selection.Snapshot
}

// NewSession returns the state of a fresh anchor.
func NewSession() *Session {
	return &Session{
		Version:  CurrentVersion,
		Stateful: true,
		Alias:    make(map[string]string),
		Snapshot: selection.Snapshot{
			Stash: make(map[string][]string),
		},
	}
}

// DataStore loads and saves the session.
type DataStore interface {
	// Load reads the session; a missing file is a fresh session.
	Load() (*Session, error)

	// Save writes the session. A stateless session keeps its handles,
	// aliases and flag but not its selection, scope or stash.
	Save(s *Session) error

	// Update runs fn between Load and Save while holding the state lock.
	// The session is not saved when fn fails.
	Update(fn func(s *Session) error) (*Session, error)

	// Path returns the state file location.
	Path() string
}
