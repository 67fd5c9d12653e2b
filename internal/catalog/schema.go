package catalog

import (
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm/schema"
)

// FieldConstraint describes one stored column of an entity
type FieldConstraint struct {
	Field      string `yaml:"field" json:"field"`
	Column     string `yaml:"column" json:"column"`
	GoType     string `yaml:"go_type" json:"go_type"`
	DataType   string `yaml:"data_type,omitempty" json:"data_type,omitempty"`
	Size       int    `yaml:"size,omitempty" json:"size,omitempty"`
	PrimaryKey bool   `yaml:"primary_key,omitempty" json:"primary_key,omitempty"`
	Unique     bool   `yaml:"unique,omitempty" json:"unique,omitempty"`
	NotNull    bool   `yaml:"not_null,omitempty" json:"not_null,omitempty"`
	Default    string `yaml:"default,omitempty" json:"default,omitempty"`
	Validate   string `yaml:"validate,omitempty" json:"validate,omitempty"`
}

// RelationConstraint describes a relation and what happens on deletion of
// the referenced record
type RelationConstraint struct {
	Field     string `yaml:"field" json:"field"`
	Kind      string `yaml:"kind" json:"kind"`
	Target    string `yaml:"target" json:"target"`
	JoinTable string `yaml:"join_table,omitempty" json:"join_table,omitempty"`
	OnDelete  string `yaml:"on_delete,omitempty" json:"on_delete,omitempty"`
}

// EntitySchema is the full constraint table of one entity
type EntitySchema struct {
	Entity    string               `yaml:"entity" json:"entity"`
	Table     string               `yaml:"table" json:"table"`
	Fields    []FieldConstraint    `yaml:"fields" json:"fields"`
	Relations []RelationConstraint `yaml:"relations,omitempty" json:"relations,omitempty"`
}

var schemaCache = &sync.Map{}

// Describe derives the constraint table of model from its struct tags
func Describe(model interface{}) (*EntitySchema, error) {
	s, err := schema.Parse(model, schemaCache, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema of %T: %w", model, err)
	}

	es := &EntitySchema{Entity: s.Name, Table: s.Table}
	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		fc := FieldConstraint{
			Field:      f.Name,
			Column:     f.DBName,
			GoType:     f.FieldType.String(),
			DataType:   string(f.DataType),
			Size:       f.Size,
			PrimaryKey: f.PrimaryKey,
			Unique:     f.Unique || hasUniqueIndex(f),
			NotNull:    f.NotNull,
			Validate:   f.Tag.Get("validate"),
		}
		if f.HasDefaultValue && f.DefaultValueInterface == nil && !f.AutoIncrement {
			fc.Default = f.DefaultValue
		} else if f.DefaultValueInterface != nil {
			fc.Default = fmt.Sprint(f.DefaultValueInterface)
		}
		es.Fields = append(es.Fields, fc)
	}

	for _, rel := range s.Relationships.Relations {
		rc := RelationConstraint{
			Field:  rel.Name,
			Kind:   string(rel.Type),
			Target: rel.FieldSchema.Table,
		}
		if rel.JoinTable != nil {
			rc.JoinTable = rel.JoinTable.Table
		}
		settings := schema.ParseTagSetting(rel.Field.TagSettings["CONSTRAINT"], ",")
		rc.OnDelete = settings["ONDELETE"]
		es.Relations = append(es.Relations, rc)
	}
	sort.Slice(es.Relations, func(i, j int) bool { return es.Relations[i].Field < es.Relations[j].Field })

	return es, nil
}

func hasUniqueIndex(f *schema.Field) bool {
	_, ok := f.TagSettings["UNIQUEINDEX"]
	return ok
}

// Schema returns the constraint tables of every catalog entity
func Schema() ([]EntitySchema, error) {
	models := Models()
	out := make([]EntitySchema, 0, len(models))
	for _, m := range models {
		es, err := Describe(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *es)
	}
	return out, nil
}

// SchemaYAML renders Schema as a YAML document
func SchemaYAML() ([]byte, error) {
	s, err := Schema()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(map[string][]EntitySchema{"entities": s})
}

// Field returns the constraint of the named Go field
func (es *EntitySchema) Field(name string) (FieldConstraint, bool) {
	for _, f := range es.Fields {
		if f.Field == name {
			return f, true
		}
	}
	return FieldConstraint{}, false
}

// Relation returns the relation declared by the named Go field
func (es *EntitySchema) Relation(name string) (RelationConstraint, bool) {
	for _, r := range es.Relations {
		if r.Field == name {
			return r, true
		}
	}
	return RelationConstraint{}, false
}
