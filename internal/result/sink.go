package result

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/coder/quartz"
	"github.com/lox/cardbench/internal/fileutil"
	"github.com/lox/cardbench/internal/gameid"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// sanitize makes an agent name safe for a file name ("openai/gpt-4o" → "openai-gpt-4o")
func sanitize(name string) string {
	s := strings.Trim(unsafeChars.ReplaceAllString(name, "-"), "-.")
	if s == "" {
		return "agent"
	}
	return s
}

// FileSink writes one JSON artifact per match into Dir. Names combine the
// game, the agents, a nanosecond timestamp and a game id, and a file is never
// overwritten, so concurrent matches can share a sink.
type FileSink struct {
	Dir   string
	Clock quartz.Clock
}

// NewFileSink creates a sink on the real clock
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir, Clock: quartz.NewReal()}
}

// Save writes r and returns the artifact path
func (s *FileSink) Save(gameName string, r *GameResult) (string, error) {
	clock := s.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	parts := []string{gameName}
	for _, name := range r.Names {
		parts = append(parts, sanitize(name))
	}
	file := fmt.Sprintf("%s_%d_%s.json", strings.Join(parts, "_"), clock.Now().UnixNano(), gameid.New())
	path := filepath.Join(s.Dir, file)

	if err := fileutil.WriteJSON(path, r); err != nil {
		return "", fmt.Errorf("save result: %w", err)
	}
	return path, nil
}

// LoadDir reads every artifact in dir in file name order. Malformed files are
// skipped and reported in the returned error list.
func LoadDir(dir string) ([]GameResult, []error, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read results: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	var (
		results []GameResult
		skipped []error
	)
	for _, name := range names {
		r, err := Load(filepath.Join(dir, name))
		if err != nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", name, err))
			continue
		}
		results = append(results, *r)
	}
	return results, skipped, nil
}

// Load reads a single artifact
func Load(path string) (*GameResult, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r GameResult
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
