// Package state persists the "local name -> remote object id" mappings
// of one course project.
//
// The state file contains one map per field, see model.StateFields.
// Content is loaded lazily on the first access, so a command that does
// not touch the state never reads or writes the file.
package state

import (
	"context"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/json"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/orderedmap"
)

const FileName = "state.json"

// LockFile guards the state file against concurrent CLI or notebook instances.
const LockFile = "state.lock"

// Updater loads fresh content of one state field from the remote side.
// A nil map means "no data", the field is then left untouched.
type Updater func(ctx context.Context) (*orderedmap.OrderedMap, error)

type State struct {
	fs       filesystem.Fs
	logger   log.Logger
	loaded   bool
	data     *orderedmap.OrderedMap
	updaters map[string]Updater
}

// Path returns the state file path inside the project directory.
func Path() string {
	return filesystem.Join(filesystem.MetadataDir, FileName)
}

func New(fs filesystem.Fs, logger log.Logger) *State {
	return &State{
		fs:       fs,
		logger:   logger,
		data:     orderedmap.New(),
		updaters: make(map[string]Updater),
	}
}

// Field returns one state map, creating an empty one when absent.
func (s *State) Field(field string) (*orderedmap.OrderedMap, error) {
	if err := checkField(field); err != nil {
		return nil, err
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	if value, found := s.data.Get(field); found {
		if m, ok := value.(*orderedmap.OrderedMap); ok {
			return m, nil
		}
	}
	m := orderedmap.New()
	s.data.Set(field, m)
	return m, nil
}

// Get returns the raw state value of the key.
func (s *State) Get(key model.StateKey) (any, bool, error) {
	field, err := s.Field(key.Field())
	if err != nil {
		return nil, false, err
	}
	value, found := field.Get(key.String())
	return value, found, nil
}

// Set stores the raw state value of the key.
func (s *State) Set(key model.StateKey, value any) error {
	field, err := s.Field(key.Field())
	if err != nil {
		return err
	}
	field.Set(key.String(), value)
	return nil
}

// Delete removes the key, a missing key is not an error.
func (s *State) Delete(key model.StateKey) error {
	field, err := s.Field(key.Field())
	if err != nil {
		return err
	}
	field.Delete(key.String())
	return nil
}

// Resolve translates the key to the id of the remote object.
// File entries store a map with an "id" member, the other fields store the id directly.
func (s *State) Resolve(key model.StateKey) (int, error) {
	value, found, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, errors.Errorf(`"%s" not found in %s state`, key.String(), key.Field())
	}
	if m, ok := value.(*orderedmap.OrderedMap); ok {
		if id, idFound := m.Get("id"); idFound {
			value = id
		}
	}
	switch v := value.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	default:
		return 0, errors.Errorf(`"%s" in %s state has no id`, key.String(), key.Field())
	}
}

// Update merges new content into one state field.
// Nested maps are merged recursively, other values are overwritten.
func (s *State) Update(field string, data *orderedmap.OrderedMap) error {
	target, err := s.Field(field)
	if err != nil {
		return err
	}
	mergeInto(target, data)
	return nil
}

func (s *State) RegisterUpdater(field string, fn Updater) error {
	if err := checkField(field); err != nil {
		return err
	}
	s.updaters[field] = fn
	return nil
}

// UpdateFromRemote refreshes every state field through its registered updater.
// A field without an updater and an updater without data are logged, not errors.
func (s *State) UpdateFromRemote(ctx context.Context) error {
	for _, field := range model.StateFields() {
		updater, found := s.updaters[field]
		if !found {
			s.logger.Warnf(`No updater for %s.`, field)
			continue
		}
		data, err := updater(ctx)
		if err != nil {
			return err
		}
		if data == nil {
			s.logger.Warnf(`updater of %s returned no data, no update is done`, field)
			continue
		}
		if err := s.Update(field, data); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the state file.
// Nothing is written when the state was never accessed,
// an empty in-memory state must not replace an existing file.
func (s *State) Save() error {
	if !s.loaded {
		return nil
	}
	unlock, err := s.lockState()
	if err != nil {
		return err
	}
	defer unlock()
	content, err := json.EncodeString(s.data, true)
	if err != nil {
		return errors.PrefixError(err, "cannot encode state")
	}
	return s.fs.WriteFile(filesystem.CreateFile(Path(), content).SetDescription("state"))
}

// Reset forgets the in-memory content, the next access reloads the file.
func (s *State) Reset() {
	s.loaded = false
	s.data = orderedmap.New()
}

func (s *State) load() error {
	if s.loaded {
		return nil
	}
	path := Path()
	if s.fs.IsFile(path) {
		file, err := s.fs.ReadFile(path, "state")
		if err != nil {
			return err
		}
		data := orderedmap.New()
		if err := json.DecodeString(file.Content, data); err != nil {
			return errors.PrefixErrorf(err, `state file "%s" is invalid`, path)
		}
		s.data = data
	}
	s.loaded = true
	return nil
}

// lockState takes an exclusive lock next to the state file.
// The lock exists only on a real disk, the in-memory backend used by tests has no base path.
func (s *State) lockState() (unlock func(), err error) {
	base := s.fs.BasePath()
	if !filepath.IsAbs(base) {
		return func() {}, nil
	}
	lock := flock.New(filepath.Join(base, filesystem.MetadataDir, LockFile))
	if locked, err := lock.TryLock(); err != nil {
		return nil, errors.Errorf(`cannot acquire state lock "%s": %w`, lock.Path(), err)
	} else if !locked {
		return nil, errors.Errorf(`cannot acquire state lock "%s": already locked`, lock.Path())
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warnf(`cannot release state lock "%s": %s`, lock.Path(), err)
		}
	}, nil
}

func checkField(field string) error {
	for _, name := range model.StateFields() {
		if field == name {
			return nil
		}
	}
	return errors.Errorf(`unknown state field "%s"`, field)
}

func mergeInto(target, data *orderedmap.OrderedMap) {
	for _, key := range data.Keys() {
		value, _ := data.Get(key)
		if newMap, ok := value.(*orderedmap.OrderedMap); ok {
			if old, found := target.Get(key); found {
				if oldMap, ok := old.(*orderedmap.OrderedMap); ok {
					mergeInto(oldMap, newMap)
					continue
				}
			}
		}
		target.Set(key, value)
	}
}
