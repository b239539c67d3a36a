package ecosystem

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// EntityKind is a node label in the ecosystem graph.
type EntityKind string

const (
	Person         EntityKind = "Person"
	Startup        EntityKind = "Startup"
	VCFirm         EntityKind = "VC_Firm"
	VCFund         EntityKind = "VC_Fund"
	AngelSyndicate EntityKind = "Angel_Syndicate"
	Institution    EntityKind = "Institution"
	Corporate      EntityKind = "Corporate"
)

// RelationshipKind is a typed edge in the ecosystem graph.
type RelationshipKind string

const (
	Founded        RelationshipKind = "FOUNDED"
	WorksAt        RelationshipKind = "WORKS_AT"
	AngelInvestsIn RelationshipKind = "ANGEL_INVESTS_IN"
	Manages        RelationshipKind = "MANAGES"
	InvestsIn      RelationshipKind = "INVESTS_IN"
	ParticipatedIn RelationshipKind = "PARTICIPATED_IN"
	AcceleratedBy  RelationshipKind = "ACCELERATED_BY"
	Acquired       RelationshipKind = "ACQUIRED"
	PartnersWith   RelationshipKind = "PARTNERS_WITH"
	Mentors        RelationshipKind = "MENTORS"
	SpunOffFrom    RelationshipKind = "SPUN_OFF_FROM"
)

// FieldType selects the coercion applied to a CSV cell before it becomes a
// node or edge property.
type FieldType int

const (
	// Text passes the cleaned cell through unchanged; absent cells map to nil
	// unless the field declares a default.
	Text FieldType = iota
	// Number coerces to float64; absent or unparseable cells map to nil.
	Number
	// NumberZero coerces to float64 and falls back to 0 instead of nil.
	NumberZero
	// Money coerces to float64 and must be >= 0.
	Money
	// Percent coerces to float64 and must be within [0, 100].
	Percent
	// Year coerces to float64 and must be a plausible calendar year.
	Year
	// Count coerces to an integer headcount, resolving ranges like "11-50"
	// to their midpoint; absent or unparseable cells map to nil.
	Count
	// Bool coerces via the multilingual truthy set; absent cells map to
	// false unless the field declares a "true" default.
	Bool
	// Date coerces to a canonical YYYY-MM-DD string; absent or unparseable
	// cells map to nil.
	Date
)

// Field describes one CSV column and the property it populates.
type Field struct {
	Column  string
	Type    FieldType
	Prop    string // property name when it differs from the column name
	Default string // raw value substituted when the cell is absent
}

// PropName returns the graph property this field populates.
func (f Field) PropName() string {
	if f.Prop != "" {
		return f.Prop
	}
	return f.Column
}

// Endpoint describes how one end of a relationship row resolves to a node:
// either a fixed label or a label read from a row column, plus the mapping
// from node key properties to row columns.
type Endpoint struct {
	Label       EntityKind
	LabelColumn string
	KeyColumns  map[string]string // node property -> CSV column
}

// EntityDescriptor declares everything the importer and repository need to
// know about one entity kind. Adding a kind is a table change, not new code.
type EntityDescriptor struct {
	Kind       EntityKind
	KeyColumns []string
	Required   []string
	Fields     []Field
}

// RelationshipDescriptor is the edge-kind counterpart of EntityDescriptor.
// MergeProps names the property subset that, together with the endpoint
// pair, forms the edge's natural key. Sparse kinds only ever attach
// properties that are present and positive in the source row.
type RelationshipDescriptor struct {
	Kind       RelationshipKind
	From, To   Endpoint
	Required   []string
	Fields     []Field
	MergeProps []string
	Sparse     bool
}

// NodeRef identifies a node by label and natural key values.
type NodeRef struct {
	Label string
	Key   map[string]string
}

// RelationshipRecord is a fully mapped relationship row ready for upsert.
type RelationshipRecord struct {
	Kind     RelationshipKind
	From, To NodeRef
	Props    map[string]any
}

// TemplateColumns returns the column order for a blank entity CSV.
func (d *EntityDescriptor) TemplateColumns() []string {
	cols := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		cols = append(cols, f.Column)
	}
	return cols
}

// DateProps lists the date-valued property names of an entity kind.
func (d *EntityDescriptor) DateProps() []string {
	var props []string
	for _, f := range d.Fields {
		if f.Type == Date {
			props = append(props, f.PropName())
		}
	}
	return props
}

// TemplateColumns returns the column order for a blank relationship CSV:
// the endpoint columns first, then the property columns.
func (d *RelationshipDescriptor) TemplateColumns() []string {
	var cols []string
	seen := mapset.NewSet[string]()
	add := func(c string) {
		if c != "" && !seen.Contains(c) {
			seen.Add(c)
			cols = append(cols, c)
		}
	}
	for _, ep := range []Endpoint{d.From, d.To} {
		for _, prop := range []string{"name", "surname"} {
			add(ep.KeyColumns[prop])
		}
		add(ep.LabelColumn)
	}
	for _, f := range d.Fields {
		add(f.Column)
	}
	return cols
}

// DateProps lists the date-valued property names of a relationship kind.
func (d *RelationshipDescriptor) DateProps() []string {
	var props []string
	for _, f := range d.Fields {
		if f.Type == Date {
			props = append(props, f.PropName())
		}
	}
	return props
}

// MergeDateProps reports which of the merge-key properties are dates.
func (d *RelationshipDescriptor) MergeDateProps() mapset.Set[string] {
	dates := mapset.NewSet[string]()
	for _, f := range d.Fields {
		if f.Type != Date {
			continue
		}
		for _, m := range d.MergeProps {
			if m == f.PropName() {
				dates.Add(m)
			}
		}
	}
	return dates
}
