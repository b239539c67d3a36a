// Package graph persists the ecosystem knowledge graph. The Neo4j
// repository is the production store; the memory repository backs tests and
// offline runs. Both implement the same upsert contract: entities merge on
// their natural key, relationships merge on the endpoint pair plus the
// kind's discriminator properties, and a relationship never creates its
// endpoints implicitly.
package graph

import (
	"context"

	"github.com/pkg/errors"

	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/ecosystem"
)

// ErrEndpointNotFound is returned when a relationship upsert references an
// entity that has not been imported yet.
var ErrEndpointNotFound = errors.New("endpoint entity not found")

// EntityRef is a lightweight listing/search result.
type EntityRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Stats maps entity labels (plus the pseudo-label "relationships") to counts.
type Stats map[string]int64

// Node and Edge carry the visualization export.
type Node struct {
	ID         int64          `json:"id"`
	Label      string         `json:"label"`
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties,omitempty"`
}

type Edge struct {
	Source     int64          `json:"source"`
	Target     int64          `json:"target"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
}

type Data struct {
	Nodes         []Node `json:"nodes"`
	Relationships []Edge `json:"relationships"`
}

// Repository is the storage boundary used by the importer and dashboard.
type Repository interface {
	// UpsertEntity merges a node by natural key: on create it assigns a
	// fresh id and creation timestamp, on either branch it overwrites the
	// supplied properties, touches updated_at, and leaves stored dates
	// untouched when the incoming value is nil.
	UpsertEntity(ctx context.Context, kind ecosystem.EntityKind, props map[string]any) error

	// UpsertRelationship resolves both endpoints (ErrEndpointNotFound when
	// either is absent) and merges the edge by its natural key.
	UpsertRelationship(ctx context.Context, rec *ecosystem.RelationshipRecord) error

	ListByType(ctx context.Context, kind ecosystem.EntityKind) ([]EntityRef, error)
	SearchByName(ctx context.Context, kind ecosystem.EntityKind, term string) ([]EntityRef, error)
	Stats(ctx context.Context) (Stats, error)
	GraphData(ctx context.Context, limit int) (*Data, error)
	Close() error
}
