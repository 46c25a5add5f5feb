// Package packaging checks that synthesized functions will ship the handler
// modules they reference.
package packaging

import (
	"fmt"
	"path"
	"strings"

	"github.com/mikecbrant/local-authorizers/internal/utils"
	"github.com/mikecbrant/local-authorizers/internal/utils/logging"
)

// Warning is an include pattern that matched no file.
type Warning struct {
	Function string
	Pattern  string
}

func (w Warning) String() string {
	return fmt.Sprintf("function %q: package.include %q matches no file", w.Function, w.Pattern)
}

// Verify checks every package.include pattern of the functions named by keys
// against the files under baseDir. Unmatched patterns are reported, not
// treated as errors; err is only set for unreadable trees or bad patterns.
func Verify(baseDir string, functions map[string]any, keys []string, logger logging.Logger) ([]Warning, error) {
	logger = logging.OrNop(logger)
	var warnings []Warning
	for _, key := range keys {
		for _, pattern := range includes(functions[key]) {
			matches, err := utils.MatchFiles(baseDir, cleanPattern(pattern))
			if err != nil {
				return nil, fmt.Errorf("function %q include %q: %w", key, pattern, err)
			}
			if len(matches) > 0 {
				logger.Debug("packaging.include.ok", logging.Fields{"function": key, "pattern": pattern, "matches": len(matches)})
				continue
			}
			w := Warning{Function: key, Pattern: pattern}
			warnings = append(warnings, w)
			logger.Warn("packaging.include.missing", logging.Fields{"function": key, "pattern": pattern})
		}
	}
	return warnings, nil
}

func includes(fn any) []string {
	def, ok := fn.(map[string]any)
	if !ok {
		return nil
	}
	pkg, ok := def["package"].(map[string]any)
	if !ok {
		return nil
	}
	raw, _ := pkg["include"].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// cleanPattern makes an author-relative path ("./auth.js") match walk-relative paths.
func cleanPattern(p string) string {
	p = strings.TrimPrefix(p, "./")
	if strings.ContainsAny(p, "*?[{") {
		return p
	}
	return path.Clean(p)
}
