// Package business assembles the opaque business-context bundle fed to the
// review pipeline. The engine never parses the bundle's contents.
package business

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// contextFiles are the per-business documents bundled, in order.
var contextFiles = []string{
	"BUSINESS.md",
	"ASSISTANT.md",
	"SOUL.md",
	"MEMORY.md",
	"PRICING.md",
	"JOB_HISTORY.md",
}

// quotingSkillPath is an optional learned-patterns document appended after
// the standard files.
const quotingSkillPath = "skills/quoting/SKILL.md"

// ContextLoader reads business documents from a directory tree laid out as
// <root>/<businessID>/<file>.
type ContextLoader struct {
	root string
}

// NewContextLoader creates a loader rooted at dir.
func NewContextLoader(dir string) *ContextLoader {
	return &ContextLoader{root: dir}
}

// Load concatenates the business's context documents into one string, each
// section headed by "## <FILE>". Missing files are skipped; an entirely
// absent business yields an empty string, which is a valid (if unhelpful)
// context.
func (l *ContextLoader) Load(businessID string) string {
	dir := filepath.Join(l.root, businessID)

	var parts []string
	for _, name := range contextFiles {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil || len(content) == 0 {
			continue
		}
		parts = append(parts, "## "+name+"\n"+string(content))
	}

	if skill, err := os.ReadFile(filepath.Join(dir, quotingSkillPath)); err == nil && len(skill) > 0 {
		parts = append(parts, "## Quoting Skill\n"+string(skill))
	}

	if len(parts) == 0 {
		zap.L().Debug("business: no context documents found",
			zap.String("business_id", businessID),
		)
	}
	return strings.Join(parts, "\n\n")
}
