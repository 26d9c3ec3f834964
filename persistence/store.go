// Package persistence saves tuned motion settings between runs.
package persistence

import (
	"fmt"
	"io"

	"github.com/automoto/slide2d/config"
	"github.com/quasilyte/gdata"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// MotionKey is the item the motion settings are stored under.
const MotionKey = "motion"

// Items is the part of a gdata manager the store needs.
type Items interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

type Store struct {
	items Items
	log   logrus.FieldLogger
}

// Open creates a store in the per-user data directory of app.
func Open(app string, log logrus.FieldLogger) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		return nil, fmt.Errorf("persistence: open %s: %w", app, err)
	}
	return NewStore(m, log), nil
}

func NewStore(items Items, log logrus.FieldLogger) *Store {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Store{items: items, log: log}
}

// LoadMotion returns the saved settings. ok is false when nothing was saved
// yet.
func (s *Store) LoadMotion() (m config.MotionConfig, ok bool, err error) {
	data, err := s.items.LoadItem(MotionKey)
	if err != nil {
		return m, false, fmt.Errorf("persistence: load %s: %w", MotionKey, err)
	}
	if data == nil {
		return m, false, nil
	}

	m = config.Defaults().Motion
	if err := yaml.Unmarshal(data, &m); err != nil {
		return config.MotionConfig{}, false, fmt.Errorf("persistence: parse %s: %w", MotionKey, err)
	}
	if err := m.Config().Validate(); err != nil {
		s.log.WithError(err).Warn("persistence: ignoring invalid saved motion settings")
		return config.MotionConfig{}, false, nil
	}
	return m, true, nil
}

// SaveMotion stores m.
func (s *Store) SaveMotion(m config.MotionConfig) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("persistence: encode %s: %w", MotionKey, err)
	}
	if err := s.items.SaveItem(MotionKey, data); err != nil {
		return fmt.Errorf("persistence: save %s: %w", MotionKey, err)
	}
	s.log.WithField("key", MotionKey).Debug("persistence: saved")
	return nil
}
