package dynaitem

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Manifest is an explicit, declarative description of the record schemas a
// program expects to have registered. Teams keep the manifest in a YAML file
// next to the table definition so that drift between the declared schema and
// the Go types is caught at startup rather than in production:
//
//	records:
//	  - name: Person
//	    fields:
//	      - { name: id, kind: string, role: hash }
//	      - { name: name, kind: string }
type Manifest struct {
	Records []RecordManifest `yaml:"records"`
}

// RecordManifest declares the expected shape of one record schema.
type RecordManifest struct {
	Name   string          `yaml:"name"`
	Fields []FieldManifest `yaml:"fields"`
}

// FieldManifest declares one expected field. Kind is the Go reflect kind of
// the field's type (for example "string" or "int64") and is only checked when
// set.
type FieldManifest struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind,omitempty"`
	Role Role   `yaml:"role,omitempty"`
}

// ParseManifest reads a YAML manifest from r.
func ParseManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Verify checks every declared record against the matching parsed schema.
// Each record in the manifest must correspond to exactly one schema by name,
// declare the same fields in the same order, and agree on each field's role
// and, when set, kind. Passing two schemas with the same name is an error.
// Verification stops at the first mismatch.
func (m *Manifest) Verify(schemas ...*Schema) error {
	byName := make(map[string]*Schema, len(schemas))
	for _, s := range schemas {
		if _, dup := byName[s.Name()]; dup {
			return fmt.Errorf("two schemas named %s passed to Verify", s.Name())
		}
		byName[s.Name()] = s
	}

	for _, rec := range m.Records {
		s, ok := byName[rec.Name]
		if !ok {
			return fmt.Errorf("manifest record %s: no schema registered with that name", rec.Name)
		}
		if err := verifyRecord(rec, s); err != nil {
			return fmt.Errorf("manifest record %s: %w", rec.Name, err)
		}
	}
	return nil
}

func verifyRecord(rec RecordManifest, s *Schema) error {
	fields := s.Fields()
	if len(rec.Fields) != len(fields) {
		return fmt.Errorf("declares %d fields, schema has %d", len(rec.Fields), len(fields))
	}

	for i, want := range rec.Fields {
		got := fields[i]
		if want.Name != got.Name {
			return fmt.Errorf("field %d: declared %q, schema has %q", i, want.Name, got.Name)
		}
		if want.Role != got.Role {
			return fmt.Errorf("field %q: declared role %q, schema has %q", want.Name, want.Role, got.Role)
		}
		if want.Kind != "" && want.Kind != got.Type.Kind().String() {
			return fmt.Errorf("field %q: declared kind %q, schema has %q", want.Name, want.Kind, got.Type.Kind().String())
		}
	}
	return nil
}

// VerifyManifest parses a YAML manifest from r and verifies it against the
// provided schemas. It is a convenience for startup checks:
//
//	f, _ := os.Open("schema.yaml")
//	defer f.Close()
//	if err := dynaitem.VerifyManifest(f, personSchema, orderSchema); err != nil {
//	    log.Fatal(err)
//	}
func VerifyManifest(r io.Reader, schemas ...*Schema) error {
	m, err := ParseManifest(r)
	if err != nil {
		return err
	}
	return m.Verify(schemas...)
}
