package graph

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/ecosystem"
)

type memNode struct {
	id        string
	label     string
	key       map[string]string
	props     map[string]any
	createdAt time.Time
	updatedAt time.Time
}

type memEdge struct {
	from, to string
	kind     ecosystem.RelationshipKind
	props    map[string]any
}

// MemoryRepository is an in-memory Repository with the same upsert contract
// as the Neo4j one. It backs the test suite and offline dry runs.
type MemoryRepository struct {
	mu     sync.RWMutex
	nodes  map[string]*memNode
	order  []string // node insertion order, for stable visualization ids
	edges  map[string]*memEdge
	logger *logrus.Logger
}

// NewMemoryRepository creates an empty in-memory graph.
func NewMemoryRepository(log *logrus.Logger) *MemoryRepository {
	if log == nil {
		log = logrus.New()
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return &MemoryRepository{
		nodes:  make(map[string]*memNode),
		edges:  make(map[string]*memEdge),
		logger: log,
	}
}

// Close implements Repository.
func (m *MemoryRepository) Close() error { return nil }

func nodeKey(label string, key map[string]string) string {
	parts := []string{label}
	props := make([]string, 0, len(key))
	for p := range key {
		props = append(props, p)
	}
	sort.Strings(props)
	for _, p := range props {
		parts = append(parts, key[p])
	}
	return strings.Join(parts, "\x1f")
}

// UpsertEntity implements Repository.
func (m *MemoryRepository) UpsertEntity(ctx context.Context, kind ecosystem.EntityKind, props map[string]any) error {
	desc, ok := ecosystem.EntityDescriptorFor(kind)
	if !ok {
		return errors.Errorf("unknown entity kind: %s", kind)
	}
	key := make(map[string]string, len(desc.KeyColumns))
	for _, k := range desc.KeyColumns {
		s, _ := props[k].(string)
		if s == "" {
			return errors.Errorf("cannot merge %s on null key property %s", kind, k)
		}
		key[k] = s
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := nodeKey(string(kind), key)
	node, exists := m.nodes[id]
	if !exists {
		node = &memNode{
			id:        uuid.New().String(),
			label:     string(kind),
			key:       key,
			props:     make(map[string]any, len(props)),
			createdAt: time.Now(),
		}
		m.nodes[id] = node
		m.order = append(m.order, id)
	}
	dates := make(map[string]bool)
	for _, p := range desc.DateProps() {
		dates[p] = true
	}
	for p, v := range props {
		if dates[p] && v == nil {
			continue // update-if-present for dates
		}
		node.props[p] = v
	}
	node.updatedAt = time.Now()
	return nil
}

// resolveNode finds a stored node of the given label whose properties
// contain every supplied key pair, the way MATCH with a property map
// matches a subset. The full-key lookup is the fast path; endpoints keyed
// on fewer props than the node's natural key fall back to a scan.
func (m *MemoryRepository) resolveNode(label string, key map[string]string) (string, bool) {
	if id := nodeKey(label, key); m.nodes[id] != nil {
		return id, true
	}
	for _, id := range m.order {
		node := m.nodes[id]
		if node.label != label {
			continue
		}
		match := true
		for p, v := range key {
			if s, _ := node.props[p].(string); s != v {
				match = false
				break
			}
		}
		if match {
			return id, true
		}
	}
	return "", false
}

// UpsertRelationship implements Repository.
func (m *MemoryRepository) UpsertRelationship(ctx context.Context, rec *ecosystem.RelationshipRecord) error {
	desc, ok := ecosystem.RelationshipDescriptorFor(rec.Kind)
	if !ok {
		return errors.Errorf("unknown relationship kind: %s", rec.Kind)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	fromID, ok := m.resolveNode(rec.From.Label, rec.From.Key)
	if !ok {
		return errors.Wrapf(ErrEndpointNotFound, "%s %v", rec.From.Label, rec.From.Key)
	}
	toID, ok := m.resolveNode(rec.To.Label, rec.To.Key)
	if !ok {
		return errors.Wrapf(ErrEndpointNotFound, "%s %v", rec.To.Label, rec.To.Key)
	}

	keyParts := []string{fromID, string(rec.Kind), toID}
	for _, p := range desc.MergeProps {
		keyParts = append(keyParts, fmt.Sprintf("%v", rec.Props[p]))
	}
	edgeID := strings.Join(keyParts, "\x1f")

	edge, exists := m.edges[edgeID]
	if !exists {
		edge = &memEdge{from: fromID, to: toID, kind: rec.Kind, props: make(map[string]any, len(rec.Props))}
		m.edges[edgeID] = edge
	}
	dates := make(map[string]bool)
	for _, p := range desc.DateProps() {
		dates[p] = true
	}
	for p, v := range rec.Props {
		if dates[p] && v == nil {
			continue
		}
		edge.props[p] = v
	}
	return nil
}

// ListByType implements Repository.
func (m *MemoryRepository) ListByType(ctx context.Context, kind ecosystem.EntityKind) ([]EntityRef, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var refs []EntityRef
	for _, node := range m.nodes {
		if node.label != string(kind) {
			continue
		}
		name, _ := node.props["name"].(string)
		refs = append(refs, EntityRef{ID: node.id, Name: name})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// SearchByName implements Repository.
func (m *MemoryRepository) SearchByName(ctx context.Context, kind ecosystem.EntityKind, term string) ([]EntityRef, error) {
	all, err := m.ListByType(ctx, kind)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)
	refs := make([]EntityRef, 0, len(all))
	for _, ref := range all {
		if strings.Contains(strings.ToLower(ref.Name), needle) {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

// Stats implements Repository.
func (m *MemoryRepository) Stats(ctx context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := make(Stats, len(ecosystem.EntityKinds())+1)
	for _, kind := range ecosystem.EntityKinds() {
		stats[string(kind)] = 0
	}
	for _, node := range m.nodes {
		stats[node.label]++
	}
	stats["relationships"] = int64(len(m.edges))
	return stats, nil
}

// GraphData implements Repository.
func (m *MemoryRepository) GraphData(ctx context.Context, limit int) (*Data, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data := &Data{Nodes: []Node{}, Relationships: []Edge{}}
	ids := make(map[string]int64, len(m.order))
	for i, id := range m.order {
		if i >= limit {
			break
		}
		node := m.nodes[id]
		name, _ := node.props["name"].(string)
		ids[id] = int64(i)
		data.Nodes = append(data.Nodes, Node{ID: int64(i), Label: node.label, Name: name, Properties: node.props})
	}
	for _, edge := range m.edges {
		src, okSrc := ids[edge.from]
		dst, okDst := ids[edge.to]
		if !okSrc || !okDst {
			continue
		}
		data.Relationships = append(data.Relationships, Edge{Source: src, Target: dst, Type: string(edge.kind), Properties: edge.props})
	}
	return data, nil
}

// EntityCount is a test hook: the number of stored nodes of one kind.
func (m *MemoryRepository) EntityCount(kind ecosystem.EntityKind) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, node := range m.nodes {
		if node.label == string(kind) {
			n++
		}
	}
	return n
}

// Entity is a test hook: the stored properties of one node, looked up by
// natural key values in descriptor key order.
func (m *MemoryRepository) Entity(kind ecosystem.EntityKind, keyValues ...string) (map[string]any, bool) {
	desc, ok := ecosystem.EntityDescriptorFor(kind)
	if !ok || len(keyValues) != len(desc.KeyColumns) {
		return nil, false
	}
	key := make(map[string]string, len(keyValues))
	for i, col := range desc.KeyColumns {
		key[col] = keyValues[i]
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	node, ok := m.nodes[nodeKey(string(kind), key)]
	if !ok {
		return nil, false
	}
	return node.props, true
}

// RelationshipCount is a test hook: the number of stored edges of one kind.
func (m *MemoryRepository) RelationshipCount(kind ecosystem.RelationshipKind) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, edge := range m.edges {
		if edge.kind == kind {
			n++
		}
	}
	return n
}
