// Package outreach orchestrates creator outreach emails: template
// selection, rendering, dispatch, and the append-only event log.
package outreach

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/osteele/liquid"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/glowlink/creator-cli/internal/model"
)

//go:embed templates.yaml
var templatesYAML []byte

// Urgency affects presentation only, never delivery.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// templateForAction maps each trigger action to exactly one template.
var templateForAction = map[model.OutreachAction]model.TemplateType{
	model.ActionUnlock:        model.TemplateInterestAlert,
	model.ActionMessage:       model.TemplateDirectMessage,
	model.ActionCampaignMatch: model.TemplateCampaignMatch,
	model.ActionContacted:     model.TemplateActiveOutreach,
}

type templateSpec struct {
	Urgency Urgency `yaml:"urgency"`
	Subject string  `yaml:"subject"`
	HTML    string  `yaml:"html"`
}

type templateFile struct {
	Templates map[model.TemplateType]templateSpec `yaml:"templates"`
}

// compiledTemplate holds the parsed liquid templates for one type.
type compiledTemplate struct {
	urgency Urgency
	subject *liquid.Template
	html    *liquid.Template
}

// TemplateSet renders outreach emails from the embedded registry.
type TemplateSet struct {
	engine    *liquid.Engine
	templates map[model.TemplateType]compiledTemplate
}

// Rendered is a fully rendered email ready for dispatch.
type Rendered struct {
	Subject string
	HTML    string
	Urgency Urgency
}

// LoadTemplates parses and compiles the embedded template registry. All
// four action templates must be present and valid.
func LoadTemplates() (*TemplateSet, error) {
	var file templateFile
	if err := yaml.Unmarshal(templatesYAML, &file); err != nil {
		return nil, eris.Wrap(err, "outreach: parse template registry")
	}

	engine := liquid.NewEngine()
	registerFilters(engine)

	set := &TemplateSet{
		engine:    engine,
		templates: make(map[model.TemplateType]compiledTemplate, len(file.Templates)),
	}

	for _, action := range []model.OutreachAction{
		model.ActionUnlock, model.ActionMessage, model.ActionCampaignMatch, model.ActionContacted,
	} {
		tmplType := templateForAction[action]
		spec, ok := file.Templates[tmplType]
		if !ok {
			return nil, eris.Errorf("outreach: registry missing template %q", tmplType)
		}
		subject, err := engine.ParseString(spec.Subject)
		if err != nil {
			return nil, eris.Wrapf(err, "outreach: compile %s subject", tmplType)
		}
		html, err := engine.ParseString(spec.HTML)
		if err != nil {
			return nil, eris.Wrapf(err, "outreach: compile %s body", tmplType)
		}
		set.templates[tmplType] = compiledTemplate{
			urgency: spec.Urgency,
			subject: subject,
			html:    html,
		}
	}

	return set, nil
}

// Render produces the subject and HTML body for a template type.
func (ts *TemplateSet) Render(tmplType model.TemplateType, bindings map[string]any) (Rendered, error) {
	tmpl, ok := ts.templates[tmplType]
	if !ok {
		return Rendered{}, eris.Errorf("outreach: unknown template %q", tmplType)
	}

	subject, err := tmpl.subject.RenderString(bindings)
	if err != nil {
		return Rendered{}, eris.Wrapf(err, "outreach: render %s subject", tmplType)
	}
	html, err := tmpl.html.RenderString(bindings)
	if err != nil {
		return Rendered{}, eris.Wrapf(err, "outreach: render %s body", tmplType)
	}

	return Rendered{
		Subject: strings.TrimSpace(subject),
		HTML:    strings.TrimSpace(html),
		Urgency: tmpl.urgency,
	}, nil
}

// TemplateFor returns the template type for a trigger action.
func TemplateFor(action model.OutreachAction) (model.TemplateType, bool) {
	t, ok := templateForAction[action]
	return t, ok
}

// registerFilters adds the filters the registry templates use.
func registerFilters(engine *liquid.Engine) {
	engine.RegisterFilter("default", func(value any, fallback string) any {
		if value == nil {
			return fallback
		}
		s := fmt.Sprintf("%v", value)
		if s == "" || s == "<nil>" {
			return fallback
		}
		return value
	})

	engine.RegisterFilter("truncate", func(s string, length int) string {
		if len(s) <= length {
			return s
		}
		if length <= 3 {
			return s[:length]
		}
		return s[:length-3] + "..."
	})

	engine.RegisterFilter("number_with_delimiter", func(value any) string {
		var n int64
		switch v := value.(type) {
		case int:
			n = int64(v)
		case int64:
			n = v
		case float64:
			n = int64(v)
		default:
			return fmt.Sprintf("%v", value)
		}

		str := strconv.FormatInt(n, 10)
		neg := false
		if strings.HasPrefix(str, "-") {
			neg = true
			str = str[1:]
		}
		var parts []string
		for len(str) > 3 {
			parts = append([]string{str[len(str)-3:]}, parts...)
			str = str[:len(str)-3]
		}
		parts = append([]string{str}, parts...)
		out := strings.Join(parts, ",")
		if neg {
			out = "-" + out
		}
		return out
	})
}
