package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/ecosystem"
	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/graph"
)

func importEntities(t *testing.T, repo *graph.MemoryRepository, kind ecosystem.EntityKind, csv string) *Report {
	t.Helper()
	return New(repo, nil).ImportEntities(context.Background(), strings.NewReader(csv), kind)
}

func importRelationships(t *testing.T, repo *graph.MemoryRepository, kind ecosystem.RelationshipKind, csv string) *Report {
	t.Helper()
	return New(repo, nil).ImportRelationships(context.Background(), strings.NewReader(csv), kind)
}

func TestImportEntitiesIdempotent(t *testing.T) {
	repo := graph.NewMemoryRepository(nil)
	csv := "name|sector|founded_year\nSatispay|FinTech|2013\n"

	first := importEntities(t, repo, ecosystem.Startup, csv)
	require.Equal(t, 1, first.Successful, "errors: %v", first.Errors)

	second := importEntities(t, repo, ecosystem.Startup, csv)
	require.Equal(t, 1, second.Successful)

	assert.Equal(t, 1, repo.EntityCount(ecosystem.Startup))
	props, ok := repo.Entity(ecosystem.Startup, "Satispay")
	require.True(t, ok)
	assert.Equal(t, "FinTech", props["sector"])
	assert.Equal(t, float64(2013), props["founded_year"])
	assert.Equal(t, "unknown", props["stage"])
	assert.Equal(t, "active", props["status"])
}

func TestImportEntitiesPartialFailure(t *testing.T) {
	repo := graph.NewMemoryRepository(nil)
	csv := strings.Join([]string{
		"name|total_funding",
		"Alpha|10",
		"Beta|lots",
		"Gamma|5",
	}, "\n")

	report := importEntities(t, repo, ecosystem.Startup, csv)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Successful)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "Row 2:")
	assert.Contains(t, report.Errors[0], "total_funding")

	assert.Equal(t, 2, repo.EntityCount(ecosystem.Startup))
	_, ok := repo.Entity(ecosystem.Startup, "Alpha")
	assert.True(t, ok)
	_, ok = repo.Entity(ecosystem.Startup, "Beta")
	assert.False(t, ok)
	_, ok = repo.Entity(ecosystem.Startup, "Gamma")
	assert.True(t, ok)
}

func TestImportEntitiesMissingKeyValue(t *testing.T) {
	repo := graph.NewMemoryRepository(nil)
	csv := "name|surname\nMario|Rossi\nLuigi|\n"

	report := importEntities(t, repo, ecosystem.Person, csv)
	assert.Equal(t, 1, report.Successful)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "surname")
	assert.Equal(t, 1, repo.EntityCount(ecosystem.Person))
}

func TestImportEntitiesDateUpdateIfPresent(t *testing.T) {
	repo := graph.NewMemoryRepository(nil)
	first := importEntities(t, repo, ecosystem.Startup, "name|exit_date\nAcme|2024-01-31\n")
	require.Equal(t, 1, first.Successful, "errors: %v", first.Errors)

	// a later upload without the date must not erase it
	second := importEntities(t, repo, ecosystem.Startup, "name|exit_date|sector\nAcme||DeepTech\n")
	require.Equal(t, 1, second.Successful)

	props, ok := repo.Entity(ecosystem.Startup, "Acme")
	require.True(t, ok)
	assert.Equal(t, "2024-01-31", props["exit_date"])
	assert.Equal(t, "DeepTech", props["sector"])
}

func TestImportRelationshipsMissingColumnAborts(t *testing.T) {
	repo := graph.NewMemoryRepository(nil)
	importEntities(t, repo, ecosystem.Person, "name|surname\nMario|Rossi\n")
	importEntities(t, repo, ecosystem.Startup, "name\nAcme\n")

	csv := "person_name|person_surname|startup_name\nMario|Rossi|Acme\n"
	report := importRelationships(t, repo, ecosystem.Founded, csv)

	assert.Equal(t, 0, report.Successful)
	assert.Equal(t, 0, report.Failed)
	assert.Contains(t, report.Errors, "Missing required column: founding_date")
	assert.Equal(t, 0, repo.RelationshipCount(ecosystem.Founded))
}

func TestImportRelationshipsEndpointMissing(t *testing.T) {
	repo := graph.NewMemoryRepository(nil)
	importEntities(t, repo, ecosystem.Person, "name|surname\nMario|Rossi\n")

	csv := "person_name|person_surname|startup_name|founding_date\nMario|Rossi|Ghost|2020-01-01\n"
	report := importRelationships(t, repo, ecosystem.Founded, csv)

	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 0, repo.RelationshipCount(ecosystem.Founded))
	// the missing startup must not appear as a placeholder node
	assert.Equal(t, 0, repo.EntityCount(ecosystem.Startup))
}

func TestImportRelationshipsMergeKeyDedup(t *testing.T) {
	repo := graph.NewMemoryRepository(nil)
	importEntities(t, repo, ecosystem.Person, "name|surname\nMario|Rossi\n")
	importEntities(t, repo, ecosystem.Startup, "name\nAcme\n")

	csv := "person_name|startup_name|investment_date|round_stage\nMario|Acme|2022-03-01|seed\n"
	require.Equal(t, 1, importRelationships(t, repo, ecosystem.AngelInvestsIn, csv).Successful)
	require.Equal(t, 1, importRelationships(t, repo, ecosystem.AngelInvestsIn, csv).Successful)
	assert.Equal(t, 1, repo.RelationshipCount(ecosystem.AngelInvestsIn))

	// a later round is a second edge between the same nodes
	later := "person_name|startup_name|investment_date|round_stage\nMario|Acme|2023-06-01|series_a\n"
	require.Equal(t, 1, importRelationships(t, repo, ecosystem.AngelInvestsIn, later).Successful)
	assert.Equal(t, 2, repo.RelationshipCount(ecosystem.AngelInvestsIn))
}

func TestImportRelationshipsUnknownDynamicLabel(t *testing.T) {
	repo := graph.NewMemoryRepository(nil)
	importEntities(t, repo, ecosystem.Person, "name|surname\nMario|Rossi\n")

	csv := "person_name|org_name|org_type|role\nMario|Evil Corp|DROP_ALL|Partner\n"
	report := importRelationships(t, repo, ecosystem.WorksAt, csv)

	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "unknown entity type")
}

func TestImportRelationshipsSparseProps(t *testing.T) {
	repo := graph.NewMemoryRepository(nil)
	importEntities(t, repo, ecosystem.VCFirm, "name\nPrimo Capital\n")
	importEntities(t, repo, ecosystem.Startup, "name\nAcme\n")

	csv := "investor_name|investor_type|startup_name|amount|round_stage\nPrimo Capital|VC_Firm|Acme|0|seed\n"
	report := importRelationships(t, repo, ecosystem.InvestsIn, csv)
	require.Equal(t, 1, report.Successful, "errors: %v", report.Errors)
	assert.Equal(t, 1, repo.RelationshipCount(ecosystem.InvestsIn))
}

func TestTemplates(t *testing.T) {
	out, err := EntityTemplate(ecosystem.Person)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "name|surname|role_type|"), lines[0])

	out, err = RelationshipTemplate(ecosystem.Founded)
	require.NoError(t, err)
	assert.Contains(t, string(out), "person_name|person_surname|startup_name|")

	_, err = EntityTemplate(ecosystem.EntityKind("NOPE"))
	assert.Error(t, err)
}
