// File: internal/infra/filestore/pattern_repo.go
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"telegram-appointment-monitor/internal/domain"
	"telegram-appointment-monitor/internal/domain/model"
	"telegram-appointment-monitor/internal/domain/ports/repository"
	"telegram-appointment-monitor/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// DefaultPatterns seeds the store when the persistence file is absent,
// unreadable, or empty.
var DefaultPatterns = []model.Pattern{
	model.MustPattern("France · Edinburgh"),
	model.MustPattern("France · London"),
	model.MustPattern("Cyprus · London"),
	model.MustPattern("Cyprus · Manchester"),
}

// Ensure interface compliance
var _ repository.PatternRepository = (*FilePatternRepo)(nil)

// FilePatternRepo keeps the full pattern set in memory and rewrites a
// JSON array file after every mutation. The in-memory set stays the
// source of truth when a write fails.
type FilePatternRepo struct {
	mu       sync.Mutex
	path     string
	patterns []model.Pattern
	log      *zerolog.Logger
}

func NewFilePatternRepo(path string, defaults []model.Pattern, log *zerolog.Logger) *FilePatternRepo {
	r := &FilePatternRepo{path: path, log: log}
	r.patterns = r.load(defaults)
	metrics.SetPatternsConfigured(len(r.patterns))
	return r
}

// load reads the whole file into memory. Any failure falls back to the
// defaults so the process always starts with a usable set.
func (r *FilePatternRepo) load(defaults []model.Pattern) []model.Pattern {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.Warn().Err(err).Str("path", r.path).Msg("pattern file unreadable, using defaults")
		}
		metrics.IncStoreFallbackLoad()
		return append([]model.Pattern(nil), defaults...)
	}

	var texts []string
	if err := json.Unmarshal(raw, &texts); err != nil {
		r.log.Warn().Err(err).Str("path", r.path).Msg("pattern file malformed, using defaults")
		metrics.IncStoreFallbackLoad()
		return append([]model.Pattern(nil), defaults...)
	}
	if len(texts) == 0 {
		metrics.IncStoreFallbackLoad()
		return append([]model.Pattern(nil), defaults...)
	}

	out := make([]model.Pattern, 0, len(texts))
	for _, t := range texts {
		p, err := model.NewPattern(t)
		if err != nil {
			r.log.Warn().Str("entry", t).Msg("skipping invalid pattern entry")
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		metrics.IncStoreFallbackLoad()
		return append([]model.Pattern(nil), defaults...)
	}
	return out
}

// persist writes a sibling temp file and renames it over the target so
// a reader never observes a half-written file. Caller holds r.mu.
func (r *FilePatternRepo) persist() error {
	texts := make([]string, len(r.patterns))
	for i, p := range r.patterns {
		texts[i] = p.Raw
	}
	raw, err := json.MarshalIndent(texts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal patterns: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".patterns-*.json")
	if err != nil {
		return fmt.Errorf("create temp pattern file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp pattern file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp pattern file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp pattern file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace pattern file: %w", err)
	}
	return nil
}

func (r *FilePatternRepo) Add(ctx context.Context, p model.Pattern) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.patterns {
		if existing.Raw == p.Raw {
			return domain.ErrAlreadyExists
		}
	}
	r.patterns = append(r.patterns, p)
	metrics.SetPatternsConfigured(len(r.patterns))

	if err := r.persist(); err != nil {
		metrics.IncStoreSaveFailure()
		r.log.Warn().Err(err).Str("pattern", p.Raw).Msg("pattern added in memory, file write failed")
		return fmt.Errorf("Add pattern: %w", err)
	}
	return nil
}

func (r *FilePatternRepo) Remove(ctx context.Context, p model.Pattern) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, existing := range r.patterns {
		if existing.Raw == p.Raw {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	r.patterns = append(r.patterns[:idx], r.patterns[idx+1:]...)
	metrics.SetPatternsConfigured(len(r.patterns))

	if err := r.persist(); err != nil {
		metrics.IncStoreSaveFailure()
		r.log.Warn().Err(err).Str("pattern", p.Raw).Msg("pattern removed in memory, file write failed")
		return fmt.Errorf("Remove pattern: %w", err)
	}
	return nil
}

func (r *FilePatternRepo) List(ctx context.Context) ([]model.Pattern, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Pattern(nil), r.patterns...), nil
}

func (r *FilePatternRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.patterns), nil
}
