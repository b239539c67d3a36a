package graph

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v4/neo4j"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/ecosystem"
	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/graph/metrics"
)

// Neo4jConfig holds the connection settings for the graph store.
type Neo4jConfig struct {
	URI      string
	Username string
	Password string
	Database string
}

// ConfigFromEnv reads the NEO4J_* environment variables, falling back to a
// local default instance.
func ConfigFromEnv() Neo4jConfig {
	cfg := Neo4jConfig{
		URI:      os.Getenv("NEO4J_URI"),
		Username: os.Getenv("NEO4J_USER"),
		Password: os.Getenv("NEO4J_PASSWORD"),
		Database: os.Getenv("NEO4J_DATABASE"),
	}
	if cfg.URI == "" {
		cfg.URI = "bolt://localhost:7687"
	}
	if cfg.Username == "" {
		cfg.Username = "neo4j"
	}
	if cfg.Database == "" {
		cfg.Database = "neo4j"
	}
	return cfg
}

// Neo4jRepository implements Repository against a Neo4j instance. One
// repository holds one driver for the lifetime of a run; each operation is
// its own session and, implicitly, its own transaction.
type Neo4jRepository struct {
	driver   neo4j.Driver
	database string
	log      *logrus.Logger
}

// NewNeo4jRepository creates the driver and verifies connectivity before
// returning; an unreachable store is an unrecoverable setup failure.
func NewNeo4jRepository(cfg Neo4jConfig, log *logrus.Logger) (*Neo4jRepository, error) {
	driver, err := neo4j.NewDriver(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, errors.Wrap(err, "create neo4j driver")
	}
	if err := driver.VerifyConnectivity(); err != nil {
		_ = driver.Close()
		return nil, errors.Wrapf(err, "connect to neo4j at %s", cfg.URI)
	}
	log.WithField("uri", cfg.URI).Info("connected to neo4j")
	return &Neo4jRepository{driver: driver, database: cfg.Database, log: log}, nil
}

// Close releases the driver.
func (r *Neo4jRepository) Close() error {
	return r.driver.Close()
}

func (r *Neo4jRepository) run(query string, params map[string]any) ([]map[string]any, error) {
	session := r.driver.NewSession(neo4j.SessionConfig{DatabaseName: r.database})
	defer session.Close()

	result, err := session.Run(query, params)
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	for result.Next() {
		record := result.Record()
		row := make(map[string]any, len(record.Keys))
		for i, key := range record.Keys {
			row[key] = record.Values[i]
		}
		rows = append(rows, row)
	}
	return rows, result.Err()
}

// UpsertEntity implements Repository.
func (r *Neo4jRepository) UpsertEntity(ctx context.Context, kind ecosystem.EntityKind, props map[string]any) error {
	desc, ok := ecosystem.EntityDescriptorFor(kind)
	if !ok {
		return errors.Errorf("unknown entity kind: %s", kind)
	}
	timer := metrics.UpsertTimer("entity")
	defer timer.ObserveDuration()

	rows, err := r.run(entityUpsertQuery(desc), props)
	if err != nil {
		r.log.WithError(err).WithField("kind", kind).Error("entity upsert failed")
		return errors.Wrapf(err, "upsert %s", kind)
	}
	if len(rows) == 0 {
		return errors.Errorf("upsert %s returned no row", kind)
	}
	return nil
}

// UpsertRelationship implements Repository.
func (r *Neo4jRepository) UpsertRelationship(ctx context.Context, rec *ecosystem.RelationshipRecord) error {
	desc, ok := ecosystem.RelationshipDescriptorFor(rec.Kind)
	if !ok {
		return errors.Errorf("unknown relationship kind: %s", rec.Kind)
	}
	timer := metrics.UpsertTimer("relationship")
	defer timer.ObserveDuration()

	query, params := relationshipUpsertQuery(desc, rec)
	rows, err := r.run(query, params)
	if err != nil {
		r.log.WithError(err).WithField("kind", rec.Kind).Error("relationship upsert failed")
		return errors.Wrapf(err, "upsert %s", rec.Kind)
	}
	if len(rows) == 0 {
		// MATCH on either endpoint produced no binding, so the MERGE never
		// ran and no placeholder node was created.
		return errors.Wrapf(ErrEndpointNotFound, "%s (%s)-[%s]->(%s)",
			rec.Kind, refKey(rec.From), rec.Kind, refKey(rec.To))
	}
	return nil
}

// entityUpsertQuery renders the MERGE statement for one entity kind.
func entityUpsertQuery(d *ecosystem.EntityDescriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MERGE (n:%s {%s})\n", d.Kind, keyPattern(d.KeyColumns, ""))
	b.WriteString("ON CREATE SET n.id = randomUUID(), n.created_at = datetime()\n")
	b.WriteString("SET n.updated_at = datetime()")
	keys := make(map[string]bool, len(d.KeyColumns))
	for _, k := range d.KeyColumns {
		keys[k] = true
	}
	for _, f := range d.Fields {
		p := f.PropName()
		if keys[p] {
			continue
		}
		if f.Type == ecosystem.Date {
			fmt.Fprintf(&b, ",\n    n.%s = CASE WHEN $%s IS NULL THEN n.%s ELSE date($%s) END", p, p, p, p)
		} else {
			fmt.Fprintf(&b, ",\n    n.%s = $%s", p, p)
		}
	}
	b.WriteString("\nRETURN n.id AS id")
	return b.String()
}

// relationshipUpsertQuery renders the MATCH/MERGE statement for one
// relationship row. Labels are interpolated, never parameterized; the row
// mapper has already vetted dynamic labels against the known kind set.
func relationshipUpsertQuery(d *ecosystem.RelationshipDescriptor, rec *ecosystem.RelationshipRecord) (string, map[string]any) {
	params := make(map[string]any, len(rec.Props)+4)
	for prop, v := range rec.From.Key {
		params["from_"+prop] = v
	}
	for prop, v := range rec.To.Key {
		params["to_"+prop] = v
	}
	for p, v := range rec.Props {
		params[p] = v
	}

	var b strings.Builder
	fmt.Fprintf(&b, "MATCH (a:%s {%s})\n", rec.From.Label, keyPattern(sortedKeys(rec.From.Key), "from_"))
	fmt.Fprintf(&b, "MATCH (b:%s {%s})\n", rec.To.Label, keyPattern(sortedKeys(rec.To.Key), "to_"))

	mergeDates := d.MergeDateProps()
	if len(d.MergeProps) > 0 {
		parts := make([]string, 0, len(d.MergeProps))
		for _, m := range d.MergeProps {
			if mergeDates.Contains(m) {
				parts = append(parts, fmt.Sprintf("%s: date($%s)", m, m))
			} else {
				parts = append(parts, fmt.Sprintf("%s: $%s", m, m))
			}
		}
		fmt.Fprintf(&b, "MERGE (a)-[r:%s {%s}]->(b)", d.Kind, strings.Join(parts, ", "))
	} else {
		fmt.Fprintf(&b, "MERGE (a)-[r:%s]->(b)", d.Kind)
	}

	merged := make(map[string]bool, len(d.MergeProps))
	for _, m := range d.MergeProps {
		merged[m] = true
	}
	var sets []string
	for _, f := range d.Fields {
		p := f.PropName()
		if merged[p] {
			continue
		}
		if _, present := rec.Props[p]; !present {
			// Sparse kinds omit absent properties entirely.
			continue
		}
		if f.Type == ecosystem.Date {
			sets = append(sets, fmt.Sprintf("r.%s = CASE WHEN $%s IS NULL THEN r.%s ELSE date($%s) END", p, p, p, p))
		} else {
			sets = append(sets, fmt.Sprintf("r.%s = $%s", p, p))
		}
	}
	if len(sets) > 0 {
		fmt.Fprintf(&b, "\nSET %s", strings.Join(sets, ",\n    "))
	}
	b.WriteString("\nRETURN type(r) AS type")
	return b.String(), params
}

func keyPattern(props []string, paramPrefix string) string {
	parts := make([]string, 0, len(props))
	for _, p := range props {
		parts = append(parts, fmt.Sprintf("%s: $%s%s", p, paramPrefix, p))
	}
	return strings.Join(parts, ", ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func refKey(ref ecosystem.NodeRef) string {
	parts := make([]string, 0, len(ref.Key)+1)
	parts = append(parts, ref.Label)
	for _, k := range sortedKeys(ref.Key) {
		parts = append(parts, ref.Key[k])
	}
	return strings.Join(parts, ":")
}

// ListByType implements Repository.
func (r *Neo4jRepository) ListByType(ctx context.Context, kind ecosystem.EntityKind) ([]EntityRef, error) {
	query := fmt.Sprintf("MATCH (n:%s) RETURN n.name AS name, n.id AS id ORDER BY n.name", kind)
	rows, err := r.run(query, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", kind)
	}
	return toEntityRefs(rows), nil
}

// SearchByName implements Repository.
func (r *Neo4jRepository) SearchByName(ctx context.Context, kind ecosystem.EntityKind, term string) ([]EntityRef, error) {
	query := fmt.Sprintf(`MATCH (n:%s)
WHERE toLower(n.name) CONTAINS toLower($term)
RETURN n.name AS name, n.id AS id
ORDER BY n.name`, kind)
	rows, err := r.run(query, map[string]any{"term": term})
	if err != nil {
		return nil, errors.Wrapf(err, "search %s", kind)
	}
	return toEntityRefs(rows), nil
}

func toEntityRefs(rows []map[string]any) []EntityRef {
	refs := make([]EntityRef, 0, len(rows))
	for _, row := range rows {
		ref := EntityRef{}
		if s, ok := row["name"].(string); ok {
			ref.Name = s
		}
		if s, ok := row["id"].(string); ok {
			ref.ID = s
		}
		refs = append(refs, ref)
	}
	return refs
}

// Stats implements Repository.
func (r *Neo4jRepository) Stats(ctx context.Context) (Stats, error) {
	stats := make(Stats, len(ecosystem.EntityKinds())+1)
	for _, kind := range ecosystem.EntityKinds() {
		rows, err := r.run(fmt.Sprintf("MATCH (n:%s) RETURN count(n) AS count", kind), nil)
		if err != nil {
			return nil, errors.Wrapf(err, "count %s", kind)
		}
		stats[string(kind)] = countOf(rows)
		metrics.GraphNodeCount.WithLabelValues(string(kind)).Set(float64(stats[string(kind)]))
	}
	rows, err := r.run("MATCH ()-[r]-() RETURN count(r) AS count", nil)
	if err != nil {
		return nil, errors.Wrap(err, "count relationships")
	}
	stats["relationships"] = countOf(rows)
	return stats, nil
}

func countOf(rows []map[string]any) int64 {
	if len(rows) == 0 {
		return 0
	}
	if n, ok := rows[0]["count"].(int64); ok {
		return n
	}
	return 0
}

// GraphData implements Repository.
func (r *Neo4jRepository) GraphData(ctx context.Context, limit int) (*Data, error) {
	nodeRows, err := r.run(
		"MATCH (n) RETURN id(n) AS id, labels(n)[0] AS label, n.name AS name, properties(n) AS properties LIMIT $limit",
		map[string]any{"limit": limit})
	if err != nil {
		return nil, errors.Wrap(err, "load nodes")
	}
	data := &Data{Nodes: make([]Node, 0, len(nodeRows)), Relationships: []Edge{}}
	ids := make(map[int64]bool, len(nodeRows))
	for _, row := range nodeRows {
		n := Node{}
		if v, ok := row["id"].(int64); ok {
			n.ID = v
		}
		if v, ok := row["label"].(string); ok {
			n.Label = v
		}
		if v, ok := row["name"].(string); ok {
			n.Name = v
		}
		if v, ok := row["properties"].(map[string]any); ok {
			n.Properties = v
		}
		ids[n.ID] = true
		data.Nodes = append(data.Nodes, n)
	}

	relRows, err := r.run(
		"MATCH (a)-[r]->(b) RETURN id(a) AS source, id(b) AS target, type(r) AS type, properties(r) AS properties LIMIT $limit",
		map[string]any{"limit": limit * 2})
	if err != nil {
		return nil, errors.Wrap(err, "load relationships")
	}
	for _, row := range relRows {
		e := Edge{}
		if v, ok := row["source"].(int64); ok {
			e.Source = v
		}
		if v, ok := row["target"].(int64); ok {
			e.Target = v
		}
		if v, ok := row["type"].(string); ok {
			e.Type = v
		}
		if v, ok := row["properties"].(map[string]any); ok {
			e.Properties = v
		}
		// Keep only edges whose both ends made it into the node window.
		if ids[e.Source] && ids[e.Target] {
			data.Relationships = append(data.Relationships, e)
		}
	}
	return data, nil
}

// CleanDuplicates removes duplicate nodes per label, keeping the first of
// each name group. Administrative operation, not part of the import path.
func (r *Neo4jRepository) CleanDuplicates(ctx context.Context) (map[string]int64, error) {
	cleaned := make(map[string]int64, len(ecosystem.EntityKinds()))
	for _, kind := range ecosystem.EntityKinds() {
		query := fmt.Sprintf(`MATCH (n:%s)
WITH n.name AS name, collect(n) AS nodes
WHERE size(nodes) > 1
UNWIND nodes[1..] AS duplicate
DETACH DELETE duplicate
RETURN count(duplicate) AS count`, kind)
		rows, err := r.run(query, nil)
		if err != nil {
			return cleaned, errors.Wrapf(err, "clean %s duplicates", kind)
		}
		cleaned[string(kind)] = countOf(rows)
		if cleaned[string(kind)] > 0 {
			r.log.WithFields(logrus.Fields{"kind": kind, "removed": cleaned[string(kind)]}).Info("removed duplicate nodes")
		}
	}
	return cleaned, nil
}
