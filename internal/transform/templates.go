package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common planner what-ifs
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Savings
	registry.Register(Template{
		Name:        "save_more_500",
		Description: "Save an extra 500 per month",
		Transforms:  []ScenarioTransform{&AddSavings{Monthly: decimal.NewFromInt(500)}},
	})
	registry.Register(Template{
		Name:        "save_more_1000",
		Description: "Save an extra 1,000 per month",
		Transforms:  []ScenarioTransform{&AddSavings{Monthly: decimal.NewFromInt(1000)}},
	})

	// Retirement timing
	registry.Register(Template{
		Name:        "retire_later_2yr",
		Description: "Postpone retirement by 2 years",
		Transforms:  []ScenarioTransform{&PostponeRetirement{Years: 2}},
	})
	registry.Register(Template{
		Name:        "retire_later_5yr",
		Description: "Postpone retirement by 5 years",
		Transforms:  []ScenarioTransform{&PostponeRetirement{Years: 5}},
	})

	// Market outlook
	registry.Register(Template{
		Name:        "conservative_returns",
		Description: "Returns 1 point lower before and after retirement",
		Transforms:  []ScenarioTransform{&AdjustReturn{Points: decimal.NewFromInt(-1)}},
	})
	registry.Register(Template{
		Name:        "optimistic_returns",
		Description: "Returns 1 point higher before and after retirement",
		Transforms:  []ScenarioTransform{&AdjustReturn{Points: decimal.NewFromInt(1)}},
	})

	// Lifestyle
	registry.Register(Template{
		Name:        "lean_retirement",
		Description: "Live on 80% of the desired retirement income",
		Transforms:  []ScenarioTransform{&ScaleIncome{Factor: decimal.NewFromFloat(0.8)}},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario. The result is named
// after the template.
func ApplyTemplate(base *domain.Scenario, template Template) (*domain.Scenario, error) {
	out, err := ApplyTransforms(base, template.Transforms)
	if err != nil {
		return nil, err
	}
	out.Name = template.Name
	return out, nil
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-24s %s\n", t.Name, t.Description))
	}

	sb.WriteString("\nUsage:\n")
	sb.WriteString("  readiness compare plan.yaml --templates save_more_500,retire_later_2yr\n")
	return sb.String()
}
