package coaching

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var embeddedTemplates []byte

// CardTemplate is the static mapping from a signal kind to its presentation:
// priority tier, copy rule, call to action and cooldown. Priority is fully
// determined here; nothing downstream may override it.
type CardTemplate struct {
	ID              string       `yaml:"id"`
	Kind            SignalKind   `yaml:"kind"`
	Tier            PriorityTier `yaml:"tier"`
	CooldownHours   int          `yaml:"cooldown_hours"`
	UrgencyOverride bool         `yaml:"urgency_override"`
	MinEvidence     int          `yaml:"min_evidence"`
	CTA             string       `yaml:"cta"`
	CopyKey         string       `yaml:"copy_key"`
	Title           string       `yaml:"title"`
	OneLiner        string       `yaml:"one_liner"`
	Steps           []string     `yaml:"steps"`
}

func (t *CardTemplate) Cooldown() time.Duration {
	return time.Duration(t.CooldownHours) * time.Hour
}

type TemplateCatalog struct {
	Version int
	byKind  map[SignalKind]*CardTemplate
	byID    map[string]*CardTemplate
}

type templateFile struct {
	Version   int             `yaml:"version"`
	Templates []*CardTemplate `yaml:"templates"`
}

// LoadTemplates parses the embedded catalog. Called once at startup.
func LoadTemplates() (*TemplateCatalog, error) {
	return parseTemplates(embeddedTemplates)
}

func parseTemplates(raw []byte) (*TemplateCatalog, error) {
	var file templateFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse template catalog: %w", err)
	}
	if len(file.Templates) == 0 {
		return nil, fmt.Errorf("template catalog is empty")
	}
	cat := &TemplateCatalog{
		Version: file.Version,
		byKind:  make(map[SignalKind]*CardTemplate, len(file.Templates)),
		byID:    make(map[string]*CardTemplate, len(file.Templates)),
	}
	for _, tmpl := range file.Templates {
		if tmpl.ID == "" || tmpl.Kind == "" {
			return nil, fmt.Errorf("template catalog: template missing id or kind")
		}
		switch tmpl.Tier {
		case TierRisk, TierImprovement, TierCelebration:
		default:
			return nil, fmt.Errorf("template %s: unknown tier %q", tmpl.ID, tmpl.Tier)
		}
		if tmpl.CooldownHours <= 0 {
			return nil, fmt.Errorf("template %s: cooldown_hours must be positive", tmpl.ID)
		}
		if tmpl.MinEvidence <= 0 {
			return nil, fmt.Errorf("template %s: min_evidence must be positive", tmpl.ID)
		}
		if _, dup := cat.byKind[tmpl.Kind]; dup {
			return nil, fmt.Errorf("template catalog: duplicate kind %q", tmpl.Kind)
		}
		if _, dup := cat.byID[tmpl.ID]; dup {
			return nil, fmt.Errorf("template catalog: duplicate id %q", tmpl.ID)
		}
		cat.byKind[tmpl.Kind] = tmpl
		cat.byID[tmpl.ID] = tmpl
	}
	return cat, nil
}

func (c *TemplateCatalog) ForKind(kind SignalKind) *CardTemplate {
	return c.byKind[kind]
}

func (c *TemplateCatalog) ByID(id string) *CardTemplate {
	return c.byID[id]
}

// fillPlaceholders substitutes {key} markers with concrete values. Unknown
// markers are left untouched so a copy/config mismatch stays visible.
func fillPlaceholders(s string, args map[string]string) string {
	if s == "" || len(args) == 0 {
		return s
	}
	for k, v := range args {
		s = strings.ReplaceAll(s, "{"+k+"}", v)
	}
	return s
}
