// Package seed holds the fixed mock dataset the plant state is built from.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"plant_monitor/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yml
var defaultSeed []byte

// Data is the decoded seed file.
type Data struct {
	Machines []models.Machine                  `yaml:"machines"`
	Alarms   []models.Alarm                    `yaml:"alarms"`
	KPIs     map[models.TimeRange][]models.KPI `yaml:"kpis"`
	Reports  []models.Report                   `yaml:"reports"`
}

// Default decodes the embedded seed.
func Default() (*Data, error) {
	return Load(bytes.NewReader(defaultSeed))
}

// FromFile decodes the seed at path, or the embedded one when path is empty.
func FromFile(path string) (*Data, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed %q: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a seed document.
func Load(r io.Reader) (*Data, error) {
	var d Data
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks enum fields and the acknowledgment invariant.
func (d *Data) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(d.Machines))
	for _, m := range d.Machines {
		if m.ID == "" || seen[m.ID] {
			errs = append(errs, fmt.Errorf("machine %q: missing or duplicate id", m.Name))
		}
		seen[m.ID] = true
		if !m.Type.Valid() {
			errs = append(errs, fmt.Errorf("machine %s: unknown type %q", m.ID, m.Type))
		}
		if !m.Status.Valid() {
			errs = append(errs, fmt.Errorf("machine %s: unknown status %q", m.ID, m.Status))
		}
	}
	for _, a := range d.Alarms {
		if !a.Severity.Valid() {
			errs = append(errs, fmt.Errorf("alarm %s: unknown severity %q", a.ID, a.Severity))
		}
		if !a.Status.Valid() {
			errs = append(errs, fmt.Errorf("alarm %s: unknown status %q", a.ID, a.Status))
		}
		if !a.Category.Valid() {
			errs = append(errs, fmt.Errorf("alarm %s: unknown category %q", a.ID, a.Category))
		}
		acked := a.AcknowledgedBy != "" && a.AcknowledgedAt != ""
		if acked != (a.Status == models.AlarmAcknowledged || a.Status == models.AlarmResolved) {
			errs = append(errs, fmt.Errorf("alarm %s: acknowledger fields do not match status %q", a.ID, a.Status))
		}
	}
	for r, set := range d.KPIs {
		if !r.Valid() {
			errs = append(errs, fmt.Errorf("kpis: unknown range %q", r))
		}
		for _, k := range set {
			if !k.Format.Valid() {
				errs = append(errs, fmt.Errorf("kpi %q (%s): unknown format %q", k.Title, r, k.Format))
			}
		}
	}
	if _, ok := d.KPIs[models.DefaultRange]; !ok {
		errs = append(errs, fmt.Errorf("kpis: missing %q set", models.DefaultRange))
	}
	return errors.Join(errs...)
}
