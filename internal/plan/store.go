package plan

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrNoPlan is returned by Load when the plan file does not exist.
var ErrNoPlan = errors.New("plan file not found")

// Encode writes p as YAML with two-space indentation.
func Encode(w io.Writer, p *Plan) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return enc.Close()
}

// Decode reads a YAML plan. Unknown keys are rejected so that a hand-edited
// typo does not silently flip a switch back to its zero value.
func Decode(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var p Plan
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	if p.Datasets == nil {
		p.Datasets = map[string]Dataset{}
	}
	return &p, nil
}

// Marshal returns the YAML bytes of p.
func Marshal(p *Plan) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes p to path, creating parent directories.
func Save(path string, p *Plan) error {
	b, err := Marshal(p)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write plan %s: %w", path, err)
	}
	return nil
}

// Load reads the plan at path.
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoPlan, path)
	}
	if err != nil {
		return nil, fmt.Errorf("open plan %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// LoadOrDefault reads the plan at path and falls back to Default when it is
// missing or unreadable. The second result reports whether the file was used.
func LoadOrDefault(path string, log logrus.FieldLogger) (*Plan, bool) {
	p, err := Load(path)
	if err != nil {
		log.WithField("plan_file", path).WithError(err).Warn("using default plan: every step enabled")
		return Default(), false
	}
	return p, true
}
