// Package macro keeps named IR sequences loaded from a YAML file.
package macro

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"ir_gateway/internal/logger"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout:
//
//	macros:
//	  tv_on: samsung:0xE0E040BF:0
//	  movie_mode:
//	    - nec:0x20DF10EF:0:500
//	    - nec:0x20DFC03F:2
type File struct {
	Macros map[string]Sequence `yaml:"macros"`
}

// Sequence is one macro body. It decodes from a single sequence string or
// a list of steps, which are joined with commas.
type Sequence string

func (s *Sequence) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		*s = Sequence(strings.TrimSpace(n.Value))
		return nil
	case yaml.SequenceNode:
		var steps []string
		if err := n.Decode(&steps); err != nil {
			return err
		}
		for i := range steps {
			steps[i] = strings.TrimSpace(steps[i])
		}
		*s = Sequence(strings.Join(steps, ","))
		return nil
	default:
		return fmt.Errorf("line %d: macro must be a string or a list of steps", n.Line)
	}
}

// Store is a concurrency-safe macro table backed by a file.
type Store struct {
	path string
	log  *logger.Logger

	mu     sync.RWMutex
	macros map[string]string
}

// Open loads path. A missing file yields an empty store that fills in once
// the file appears and Watch is running.
func Open(path string, log *logger.Logger) (*Store, error) {
	s := &Store{path: filepath.Clean(path), log: logger.OrNop(log), macros: map[string]string{}}
	if err := s.Reload(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return s, nil
}

// Parse decodes a macro file body.
func Parse(data []byte) (map[string]string, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse macros: %w", err)
	}
	out := make(map[string]string, len(f.Macros))
	for name, seq := range f.Macros {
		name = strings.TrimSpace(name)
		if name == "" || strings.ContainsAny(name, " \t") {
			return nil, fmt.Errorf("parse macros: invalid macro name %q", name)
		}
		if seq == "" {
			return nil, fmt.Errorf("parse macros: macro %q is empty", name)
		}
		out[name] = string(seq)
	}
	return out, nil
}

// Reload re-reads the file. On error the previous table is kept.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read macros %s: %w", s.path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.macros = m
	s.mu.Unlock()
	s.log.Infow("macros_loaded", "path", s.path, "count", len(m))
	return nil
}

// Lookup returns the sequence stored under name.
func (s *Store) Lookup(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seq, ok := s.macros[name]
	return seq, ok
}

// Names returns all macro names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.macros))
	for name := range s.macros {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Watch reloads the store whenever the file changes, until ctx is done.
// The parent directory is watched so editors that replace the file by
// rename are picked up too.
func (s *Store) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.path), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != s.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if err := s.Reload(); err != nil {
				s.log.Warnw("macros_reload_failed", "path", s.path, "err", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warnw("macros_watch_error", "err", err)
		}
	}
}
