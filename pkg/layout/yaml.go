package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlGeometry is the subset of template geometry that can be overridden
// from a config file. Zero values leave the built-in constant in place;
// cell widths are keyed by cell name and may not add or remove cells.
type yamlGeometry struct {
	RowHeight        float64            `yaml:"row_height"`
	StartX           float64            `yaml:"start_x"`
	FirstPageStartY  float64            `yaml:"first_page_start_y"`
	OtherPagesStartY float64            `yaml:"other_pages_start_y"`
	BottomMargin     float64            `yaml:"bottom_margin"`
	CellWidths       map[string]float64 `yaml:"cell_widths"`
}

type yamlFile struct {
	Invoice      *yamlGeometry `yaml:"invoice"`
	CashRegister *yamlGeometry `yaml:"cash_register"`
}

// LoadOverrides reads a YAML geometry override file and returns the default
// template set with the overrides applied. The built-in templates are left
// untouched.
func LoadOverrides(path string) ([]*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template overrides: %w", err)
	}
	return FromYAML(data)
}

// FromYAML applies YAML geometry overrides to copies of the built-in
// templates.
func FromYAML(data []byte) ([]*Template, error) {
	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing template overrides: %w", err)
	}

	invoice := cloneTemplate(Invoice)
	cashRegister := cloneTemplate(CashRegister)

	if err := applyGeometry(invoice, f.Invoice); err != nil {
		return nil, err
	}
	if err := applyGeometry(cashRegister, f.CashRegister); err != nil {
		return nil, err
	}

	return []*Template{invoice, cashRegister}, nil
}

func cloneTemplate(t *Template) *Template {
	clone := *t
	clone.Cells = append([]CellSpec(nil), t.Cells...)
	return &clone
}

func applyGeometry(t *Template, g *yamlGeometry) error {
	if g == nil {
		return nil
	}
	if g.RowHeight != 0 {
		t.RowHeight = g.RowHeight
	}
	if g.StartX != 0 {
		t.StartX = g.StartX
	}
	if g.FirstPageStartY != 0 {
		t.FirstPageStartY = g.FirstPageStartY
	}
	if g.OtherPagesStartY != 0 {
		t.OtherPagesStartY = g.OtherPagesStartY
	}
	if g.BottomMargin != 0 {
		t.BottomMargin = g.BottomMargin
	}
	for name, width := range g.CellWidths {
		found := false
		for i := range t.Cells {
			if t.Cells[i].Name == name {
				t.Cells[i].Width = width
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("template %s has no cell named %q", t.Kind, name)
		}
	}
	return nil
}
