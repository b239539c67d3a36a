package scraper

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/ecosystem"
)

func TestWriteCSVEntity(t *testing.T) {
	out := Output{
		Entity: ecosystem.Startup,
		Records: []Record{
			{"name": "Acme", "description": "Fast, cheap, reliable", "sector": "FinTech"},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, out))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "name|description|website|"), lines[0])
	// embedded commas survive without quoting under the pipe delimiter
	assert.Contains(t, lines[1], "Acme|Fast, cheap, reliable|")
}

func TestWriteCSVRelationshipColumnsMatchImporter(t *testing.T) {
	out := Output{
		Relationship: ecosystem.InvestsIn,
		Records: []Record{
			{"investor_name": "Prana Ventures", "investor_type": "VC_Firm", "startup_name": "Acme", "round_stage": "Seed"},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, out))

	header := strings.SplitN(buf.String(), "\n", 2)[0]
	d, _ := ecosystem.RelationshipDescriptorFor(ecosystem.InvestsIn)
	assert.Equal(t, strings.Join(d.TemplateColumns(), "|"), header)
}

func TestAccumulatorDedupe(t *testing.T) {
	acc := NewAccumulator()
	assert.True(t, acc.AddPerson(Record{"name": "Mario", "surname": "Rossi"}))
	assert.False(t, acc.AddPerson(Record{"name": "Mario", "surname": "Rossi"}))
	assert.True(t, acc.AddPerson(Record{"name": "Mario", "surname": "Bianchi"}))

	assert.True(t, acc.AddInvestment(Record{"investor_name": "IFF", "startup_name": "Acme"}))
	assert.False(t, acc.AddInvestment(Record{"investor_name": "IFF", "startup_name": "Acme"}))
	assert.Len(t, acc.Investments, 1)

	outs := acc.Outputs()
	require.Len(t, outs, 2)
	assert.Equal(t, "founders", outs[0].Name)
	assert.Equal(t, ecosystem.Person, outs[0].Entity)
	assert.Equal(t, "investment_relationships", outs[1].Name)
	assert.Equal(t, ecosystem.InvestsIn, outs[1].Relationship)
}
