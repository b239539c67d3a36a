package importer

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/coerce"
	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/ecosystem"
)

var validate = validator.New()

// coerceField turns one cleaned cell into a typed property value. A present
// but uncoercible value for a bounded numeric field is a mapping error; the
// permissive fields (dates, headcounts) degrade to nil the way the rest of
// the pipeline expects.
func coerceField(f ecosystem.Field, raw string, present bool) (any, error) {
	if !present && f.Type != ecosystem.Bool && f.Type != ecosystem.NumberZero {
		if f.Default != "" {
			raw, present = f.Default, true
		} else {
			return nil, nil
		}
	}

	switch f.Type {
	case ecosystem.Text:
		return raw, nil
	case ecosystem.Number:
		n, ok := coerce.ParseNumber(raw)
		if !ok {
			return nil, errors.Errorf("not a number: %q", raw)
		}
		return n, nil
	case ecosystem.NumberZero:
		return coerce.NumberOr(raw, 0), nil
	case ecosystem.Money:
		n, ok := coerce.ParseNumber(raw)
		if !ok {
			return nil, errors.Errorf("not a number: %q", raw)
		}
		if err := validate.Var(n, "gte=0"); err != nil {
			return nil, errors.Errorf("negative amount: %v", n)
		}
		return n, nil
	case ecosystem.Percent:
		n, ok := coerce.ParseNumber(raw)
		if !ok {
			return nil, errors.Errorf("not a number: %q", raw)
		}
		if err := validate.Var(n, "gte=0,lte=100"); err != nil {
			return nil, errors.Errorf("percentage out of range: %v", n)
		}
		return n, nil
	case ecosystem.Year:
		n, ok := coerce.ParseNumber(raw)
		if !ok {
			return nil, errors.Errorf("not a year: %q", raw)
		}
		if err := validate.Var(n, "gte=1800,lte=2100"); err != nil {
			return nil, errors.Errorf("implausible year: %v", n)
		}
		return n, nil
	case ecosystem.Count:
		if n, ok := coerce.ParseEmployeeCount(raw); ok {
			return int64(n), nil
		}
		return nil, nil
	case ecosystem.Bool:
		if !present {
			return coerce.ParseBool(f.Default), nil
		}
		return coerce.ParseBool(raw), nil
	case ecosystem.Date:
		if s, ok := coerce.DateString(raw); ok {
			return s, nil
		}
		return nil, nil
	}
	return nil, errors.Errorf("unhandled field type %d", f.Type)
}

// MapEntityRow maps a cleaned row to the property set of one entity kind.
// The natural-key columns must carry values; everything else degrades to
// nil or its declared default.
func MapEntityRow(row Row, d *ecosystem.EntityDescriptor) (map[string]any, error) {
	props := make(map[string]any, len(d.Fields))
	for _, f := range d.Fields {
		raw, present := row[f.Column]
		v, err := coerceField(f, raw, present)
		if err != nil {
			return nil, errors.Wrapf(err, "column %s", f.Column)
		}
		props[f.PropName()] = v
	}
	for _, k := range d.KeyColumns {
		if s, _ := props[k].(string); s == "" {
			return nil, errors.Errorf("missing value for key column %s", k)
		}
	}
	return props, nil
}

// MapRelationshipRow maps a cleaned row to a RelationshipRecord. Endpoint
// labels read from the row are vetted against the known kind set, and the
// kind's merge-key properties must coerce to non-nil values.
func MapRelationshipRow(row Row, d *ecosystem.RelationshipDescriptor) (*ecosystem.RelationshipRecord, error) {
	from, err := resolveEndpoint(d.From, row)
	if err != nil {
		return nil, err
	}
	to, err := resolveEndpoint(d.To, row)
	if err != nil {
		return nil, err
	}

	props := make(map[string]any, len(d.Fields))
	for _, f := range d.Fields {
		raw, present := row[f.Column]
		if d.Sparse {
			// Sparse kinds attach a property only when the source row has a
			// usable value, to keep zero/empty placeholders off the edge.
			if !present {
				continue
			}
			v, err := coerceField(f, raw, true)
			if err != nil || v == nil {
				if err != nil {
					return nil, errors.Wrapf(err, "column %s", f.Column)
				}
				continue
			}
			if n, isNum := v.(float64); isNum && f.Type != ecosystem.Year && n <= 0 {
				continue
			}
			props[f.PropName()] = v
			continue
		}
		v, err := coerceField(f, raw, present)
		if err != nil {
			return nil, errors.Wrapf(err, "column %s", f.Column)
		}
		props[f.PropName()] = v
	}

	for _, m := range d.MergeProps {
		if props[m] == nil {
			return nil, errors.Errorf("missing or invalid value for %s", m)
		}
	}

	return &ecosystem.RelationshipRecord{Kind: d.Kind, From: from, To: to, Props: props}, nil
}

func resolveEndpoint(ep ecosystem.Endpoint, row Row) (ecosystem.NodeRef, error) {
	label := string(ep.Label)
	if ep.LabelColumn != "" {
		label = strings.TrimSpace(row[ep.LabelColumn])
		if !ecosystem.ValidLabel(label) {
			return ecosystem.NodeRef{}, errors.Errorf("unknown entity type %q in column %s", label, ep.LabelColumn)
		}
	}
	key := make(map[string]string, len(ep.KeyColumns))
	for prop, col := range ep.KeyColumns {
		v := strings.TrimSpace(row[col])
		if v == "" {
			return ecosystem.NodeRef{}, errors.Errorf("missing value for column %s", col)
		}
		key[prop] = v
	}
	return ecosystem.NodeRef{Label: label, Key: key}, nil
}
