package scraper

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/pkg/ecosystem"
)

// Record is one raw CSV row keyed by column name. Values stay strings; the
// importer's coercion layer owns typing.
type Record map[string]string

// Accumulator collects scraped records across page visits. It is passed
// into page processing explicitly so a scrape step is a function of (page,
// accumulator) rather than of hidden instance state. Dedup keys live here
// too: founders by full name, investments by investor and startup.
type Accumulator struct {
	Startups       []Record
	People         []Record
	VCFirms        []Record
	VCFunds        []Record
	Founded        []Record
	Investments    []Record
	Participations []Record

	seenPeople      mapset.Set[string]
	seenInvestments mapset.Set[string]
}

func NewAccumulator() *Accumulator {
	return &Accumulator{
		seenPeople:      mapset.NewSet[string](),
		seenInvestments: mapset.NewSet[string](),
	}
}

func dedupeKey(parts ...string) string {
	return strings.Join(parts, "\x1f")
}

// AddStartup appends a startup record.
func (a *Accumulator) AddStartup(rec Record) {
	a.Startups = append(a.Startups, rec)
}

// AddPerson appends a person record unless one with the same name and
// surname was already collected. Reports whether the record was added.
func (a *Accumulator) AddPerson(rec Record) bool {
	key := dedupeKey(rec["name"], rec["surname"])
	if !a.seenPeople.Add(key) {
		return false
	}
	a.People = append(a.People, rec)
	return true
}

// AddVCFirm appends a VC firm record.
func (a *Accumulator) AddVCFirm(rec Record) {
	a.VCFirms = append(a.VCFirms, rec)
}

// AddVCFund appends a VC fund record.
func (a *Accumulator) AddVCFund(rec Record) {
	a.VCFunds = append(a.VCFunds, rec)
}

// AddFounded appends a founding relationship record.
func (a *Accumulator) AddFounded(rec Record) {
	a.Founded = append(a.Founded, rec)
}

// AddInvestment appends an investment record unless the investor/startup
// pair was already collected. Reports whether the record was added.
func (a *Accumulator) AddInvestment(rec Record) bool {
	key := dedupeKey(rec["investor_name"], rec["startup_name"])
	if !a.seenInvestments.Add(key) {
		return false
	}
	a.Investments = append(a.Investments, rec)
	return true
}

// AddParticipation appends an LP commitment record.
func (a *Accumulator) AddParticipation(rec Record) {
	a.Participations = append(a.Participations, rec)
}

// Outputs pairs each non-empty record slice with the schema kind its CSV
// file targets.
func (a *Accumulator) Outputs() []Output {
	var outs []Output
	add := func(name string, entity ecosystem.EntityKind, rel ecosystem.RelationshipKind, recs []Record) {
		if len(recs) > 0 {
			outs = append(outs, Output{Name: name, Entity: entity, Relationship: rel, Records: recs})
		}
	}
	add("startups", ecosystem.Startup, "", a.Startups)
	add("founders", ecosystem.Person, "", a.People)
	add("vc_firms", ecosystem.VCFirm, "", a.VCFirms)
	add("vc_funds", ecosystem.VCFund, "", a.VCFunds)
	add("founding_relationships", "", ecosystem.Founded, a.Founded)
	add("investment_relationships", "", ecosystem.InvestsIn, a.Investments)
	add("participation_relationships", "", ecosystem.ParticipatedIn, a.Participations)
	return outs
}

// Output is one CSV file's worth of scraped records. Exactly one of Entity
// and Relationship is set.
type Output struct {
	Name         string
	Entity       ecosystem.EntityKind
	Relationship ecosystem.RelationshipKind
	Records      []Record
}
