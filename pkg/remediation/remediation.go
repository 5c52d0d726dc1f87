// Package remediation holds per-item fix guidance and renders it for a
// concrete violation.
package remediation

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/mhb8436/aria/pkg/catalog"
	"github.com/mhb8436/aria/pkg/logger"
)

//go:embed guides.yaml
var builtinGuides []byte

// Guide is the fix guidance for one catalog item. Fix may use the template
// fields of Vars.
type Guide struct {
	ItemID  string `yaml:"item"`
	Issue   string `yaml:"issue"`
	Fix     string `yaml:"fix"`
	Example string `yaml:"example"`
	Verify  string `yaml:"verify"`
}

// Vars are substituted into a guide's Fix text
type Vars struct {
	URL    string
	RuleID string
	Target string
}

type guideFile struct {
	Guides []Guide `yaml:"guides"`
}

// Library indexes guides by item id
type Library struct {
	guides map[string]Guide
}

func New() *Library {
	return &Library{guides: make(map[string]Guide)}
}

// Default returns a library with the built-in guides
func Default() *Library {
	l := New()
	if err := l.Load(builtinGuides); err != nil {
		panic(fmt.Sprintf("remediation: invalid built-in guides: %v", err))
	}
	return l
}

// Load parses a guide file and adds its guides, replacing existing ones
func (l *Library) Load(data []byte) error {
	var f guideFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}
	for _, g := range f.Guides {
		if _, ok := catalog.ByID(g.ItemID); !ok {
			return fmt.Errorf("guide for unknown item %q", g.ItemID)
		}
		if _, err := template.New(g.ItemID).Parse(g.Fix); err != nil {
			return fmt.Errorf("guide %s: %w", g.ItemID, err)
		}
		l.guides[g.ItemID] = g
	}
	return nil
}

// LoadDir reads every .yaml/.yml file in dir, overriding built-in guides
func (l *Library) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		if err := l.Load(data); err != nil {
			return fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}
		logger.Debugf("loaded remediation guides from %s", entry.Name())
	}
	return nil
}

func (l *Library) Get(itemID string) (Guide, bool) {
	g, ok := l.guides[itemID]
	return g, ok
}

// IDs lists the items that have guidance, sorted
func (l *Library) IDs() []string {
	ids := make([]string, 0, len(l.guides))
	for id := range l.guides {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Fix renders the fix instruction of an item for one violation
func (l *Library) Fix(itemID string, vars Vars) (string, error) {
	g, ok := l.guides[itemID]
	if !ok {
		return "", fmt.Errorf("no guide for item %s", itemID)
	}
	if vars.Target == "" {
		vars.Target = "해당"
	}
	t, err := template.New(itemID).Parse(g.Fix)
	if err != nil {
		return "", fmt.Errorf("failed to parse guide %s: %w", itemID, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("failed to render guide %s: %w", itemID, err)
	}
	return buf.String(), nil
}

// Plan renders the full guidance block for a violation
func (l *Library) Plan(itemID string, vars Vars) (string, error) {
	fix, err := l.Fix(itemID, vars)
	if err != nil {
		return "", err
	}
	g := l.guides[itemID]
	item, _ := catalog.ByID(itemID)

	var sb strings.Builder
	fmt.Fprintf(&sb, "[수정 가이드] %s %s\n", item.ID, item.Name)
	fmt.Fprintf(&sb, "문제: %s\n", g.Issue)
	if vars.RuleID != "" {
		fmt.Fprintf(&sb, "규칙: %s\n", vars.RuleID)
	}
	fmt.Fprintf(&sb, "\n수정 방법:\n%s\n", fix)
	if g.Example != "" {
		fmt.Fprintf(&sb, "\n예시:\n%s\n", g.Example)
	}
	if g.Verify != "" {
		fmt.Fprintf(&sb, "\n확인:\n%s\n", g.Verify)
	}
	return sb.String(), nil
}
