package ecosystem

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// The schema registry. Upload validation, template generation, row mapping
// and upsert generation all read from these two tables, so a new entity or
// relationship kind is one new entry here.

var entityDescriptors = map[EntityKind]*EntityDescriptor{
	Person: {
		Kind:       Person,
		KeyColumns: []string{"name", "surname"},
		Required:   []string{"name"},
		Fields: []Field{
			{Column: "name"},
			{Column: "surname"},
			{Column: "role_type", Default: "other"},
			{Column: "linkedin_url"},
			{Column: "twitter_handle"},
			{Column: "biography"},
			{Column: "location"},
			{Column: "birth_year", Type: Year},
			{Column: "education"},
			{Column: "previous_experience"},
			{Column: "specialization"},
			{Column: "reputation_score", Type: NumberZero},
		},
	},
	Startup: {
		Kind:       Startup,
		KeyColumns: []string{"name"},
		Required:   []string{"name"},
		Fields: []Field{
			{Column: "name"},
			{Column: "description"},
			{Column: "website"},
			{Column: "founded_year", Type: Year},
			{Column: "stage", Default: "unknown"},
			{Column: "sector"},
			{Column: "business_model"},
			{Column: "headquarters"},
			{Column: "employee_count", Type: Count},
			{Column: "status", Default: "active"},
			{Column: "total_funding", Type: Money},
			{Column: "last_funding_date", Type: Date},
			{Column: "exit_date", Type: Date},
			{Column: "exit_value", Type: Money},
		},
	},
	VCFirm: {
		Kind:       VCFirm,
		KeyColumns: []string{"name"},
		Required:   []string{"name"},
		Fields: []Field{
			{Column: "name"},
			{Column: "description"},
			{Column: "website"},
			{Column: "founded_year", Type: Year},
			{Column: "headquarters"},
			{Column: "type", Default: "independent"},
			{Column: "investment_focus"},
			{Column: "stage_focus"},
			{Column: "geographic_focus"},
			{Column: "team_size", Type: Number},
			{Column: "assets_under_management", Type: Money},
			{Column: "portfolio_companies_count", Type: Number},
		},
	},
	VCFund: {
		Kind:       VCFund,
		KeyColumns: []string{"name"},
		Required:   []string{"name"},
		Fields: []Field{
			{Column: "name"},
			{Column: "fund_size", Type: Money},
			{Column: "vintage_year", Type: Year},
			{Column: "fund_number"},
			{Column: "status", Default: "unknown"},
			{Column: "target_sectors"},
			{Column: "target_stages"},
			{Column: "geographic_focus"},
			{Column: "first_close_date", Type: Date},
			{Column: "final_close_date", Type: Date},
			{Column: "investment_period", Type: Number},
			{Column: "fund_life", Type: Number},
			{Column: "deployed_capital", Type: Money},
		},
	},
	AngelSyndicate: {
		Kind:       AngelSyndicate,
		KeyColumns: []string{"name"},
		Required:   []string{"name"},
		Fields: []Field{
			{Column: "name"},
			{Column: "type", Default: "angel_syndicate"},
			{Column: "description"},
			{Column: "website"},
			{Column: "founded_year", Type: Year},
			{Column: "headquarters"},
			{Column: "members_count", Type: Number},
			{Column: "investment_focus"},
			{Column: "stage_focus"},
			{Column: "ticket_size_min", Type: Money},
			{Column: "ticket_size_max", Type: Money},
			{Column: "total_investments", Type: Number},
		},
	},
	Institution: {
		Kind:       Institution,
		KeyColumns: []string{"name"},
		Required:   []string{"name"},
		Fields: []Field{
			{Column: "name"},
			{Column: "type", Default: "other"},
			{Column: "description"},
			{Column: "website"},
			{Column: "founded_year", Type: Year},
			{Column: "headquarters"},
			{Column: "program_duration", Type: Number},
			{Column: "batch_size", Type: Number},
			{Column: "sectors_focus"},
			{Column: "equity_taken", Type: Percent},
			{Column: "funding_provided", Type: Money},
			{Column: "portfolio_companies_count", Type: Number},
			{Column: "success_rate", Type: Percent},
		},
	},
	Corporate: {
		Kind:       Corporate,
		KeyColumns: []string{"name"},
		Required:   []string{"name"},
		Fields: []Field{
			{Column: "name"},
			{Column: "description"},
			{Column: "website"},
			{Column: "industry"},
			{Column: "founded_year", Type: Year},
			{Column: "headquarters"},
			{Column: "revenue", Type: Money},
			{Column: "employee_count", Type: Count},
			{Column: "stock_exchange"},
			{Column: "ticker"},
			{Column: "has_cvc_arm", Type: Bool},
			{Column: "innovation_programs"},
		},
	},
}

var relationshipDescriptors = map[RelationshipKind]*RelationshipDescriptor{
	Founded: {
		Kind:     Founded,
		From:     Endpoint{Label: Person, KeyColumns: map[string]string{"name": "person_name", "surname": "person_surname"}},
		To:       Endpoint{Label: Startup, KeyColumns: map[string]string{"name": "startup_name"}},
		Required: []string{"person_name", "person_surname", "startup_name", "founding_date"},
		Fields: []Field{
			{Column: "role", Default: "Founder"},
			{Column: "founding_date", Type: Date},
			{Column: "equity_percentage", Type: Percent},
			{Column: "is_current", Type: Bool, Default: "true"},
			{Column: "exit_date", Type: Date},
		},
	},
	WorksAt: {
		Kind:     WorksAt,
		From:     Endpoint{Label: Person, KeyColumns: map[string]string{"name": "person_name"}},
		To:       Endpoint{LabelColumn: "org_type", KeyColumns: map[string]string{"name": "org_name"}},
		Required: []string{"person_name", "org_name", "org_type", "role"},
		Fields: []Field{
			{Column: "role"},
			{Column: "start_date", Type: Date},
			{Column: "end_date", Type: Date},
			{Column: "seniority_level"},
			{Column: "is_current", Type: Bool, Default: "true"},
		},
		MergeProps: []string{"role", "start_date"},
	},
	AngelInvestsIn: {
		Kind:     AngelInvestsIn,
		From:     Endpoint{Label: Person, KeyColumns: map[string]string{"name": "person_name"}},
		To:       Endpoint{Label: Startup, KeyColumns: map[string]string{"name": "startup_name"}},
		Required: []string{"person_name", "startup_name", "investment_date"},
		Fields: []Field{
			{Column: "investment_date", Type: Date},
			{Column: "round_stage", Default: "unknown"},
			{Column: "amount", Type: NumberZero},
			{Column: "lead_investor", Type: Bool},
			{Column: "board_seat", Type: Bool},
		},
		MergeProps: []string{"investment_date", "round_stage"},
	},
	Manages: {
		Kind:     Manages,
		From:     Endpoint{Label: VCFirm, KeyColumns: map[string]string{"name": "firm_name"}},
		To:       Endpoint{Label: VCFund, KeyColumns: map[string]string{"name": "fund_name"}},
		Required: []string{"firm_name", "fund_name", "start_date"},
		Fields: []Field{
			{Column: "management_fee", Type: Percent},
			{Column: "carried_interest", Type: Percent},
			{Column: "start_date", Type: Date},
		},
	},
	InvestsIn: {
		Kind:     InvestsIn,
		From:     Endpoint{LabelColumn: "investor_type", KeyColumns: map[string]string{"name": "investor_name"}},
		To:       Endpoint{Label: Startup, KeyColumns: map[string]string{"name": "startup_name"}},
		Required: []string{"investor_name", "investor_type", "startup_name"},
		Fields: []Field{
			{Column: "round_stage"},
			{Column: "round_date", Type: Date},
			{Column: "amount", Type: Money},
			{Column: "valuation_pre", Type: Money},
			{Column: "valuation_post", Type: Money},
			{Column: "is_lead_investor", Type: Bool},
			{Column: "board_seats", Type: Number},
			{Column: "equity_percentage", Type: Percent},
		},
		Sparse: true,
	},
	ParticipatedIn: {
		Kind:     ParticipatedIn,
		From:     Endpoint{LabelColumn: "investor_type", KeyColumns: map[string]string{"name": "investor_name"}},
		To:       Endpoint{Label: VCFund, KeyColumns: map[string]string{"name": "fund_name"}},
		Required: []string{"investor_name", "investor_type", "fund_name", "commitment_date"},
		Fields: []Field{
			{Column: "commitment_amount", Type: NumberZero},
			{Column: "commitment_date", Type: Date},
			{Column: "lp_category", Prop: "investor_type", Default: "institutional"},
		},
		MergeProps: []string{"commitment_date"},
	},
	AcceleratedBy: {
		Kind:     AcceleratedBy,
		From:     Endpoint{Label: Startup, KeyColumns: map[string]string{"name": "startup_name"}},
		To:       Endpoint{Label: Institution, KeyColumns: map[string]string{"name": "institution_name"}},
		Required: []string{"startup_name", "institution_name", "program_name", "start_date"},
		Fields: []Field{
			{Column: "program_name"},
			{Column: "batch_name"},
			{Column: "start_date", Type: Date},
			{Column: "end_date", Type: Date},
			{Column: "equity_taken", Type: Percent},
			{Column: "funding_received", Type: Money},
			{Column: "demo_day_date", Type: Date},
		},
		MergeProps: []string{"program_name", "start_date"},
	},
	Acquired: {
		Kind:     Acquired,
		From:     Endpoint{Label: Corporate, KeyColumns: map[string]string{"name": "corporate_name"}},
		To:       Endpoint{Label: Startup, KeyColumns: map[string]string{"name": "startup_name"}},
		Required: []string{"corporate_name", "startup_name", "acquisition_date"},
		Fields: []Field{
			{Column: "acquisition_date", Type: Date},
			{Column: "acquisition_value", Type: Money},
			{Column: "acquisition_type", Default: "full_acquisition"},
			{Column: "strategic_rationale"},
			{Column: "integration_status"},
		},
		MergeProps: []string{"acquisition_date"},
	},
	PartnersWith: {
		Kind:     PartnersWith,
		From:     Endpoint{Label: Corporate, KeyColumns: map[string]string{"name": "corporate_name"}},
		To:       Endpoint{LabelColumn: "partner_type", KeyColumns: map[string]string{"name": "partner_name"}},
		Required: []string{"corporate_name", "partner_name", "partner_type", "start_date"},
		Fields: []Field{
			{Column: "partnership_type", Default: "strategic"},
			{Column: "start_date", Type: Date},
			{Column: "description"},
			{Column: "is_active", Type: Bool, Default: "true"},
		},
		MergeProps: []string{"partnership_type", "start_date"},
	},
	Mentors: {
		Kind:     Mentors,
		From:     Endpoint{Label: Person, KeyColumns: map[string]string{"name": "mentor_name"}},
		To:       Endpoint{Label: Person, KeyColumns: map[string]string{"name": "mentee_name"}},
		Required: []string{"mentor_name", "mentee_name", "start_date"},
		Fields: []Field{
			{Column: "start_date", Type: Date},
			{Column: "end_date", Type: Date},
			{Column: "relationship_type", Default: "informal"},
			{Column: "context"},
		},
		MergeProps: []string{"start_date", "relationship_type"},
	},
	SpunOffFrom: {
		Kind:     SpunOffFrom,
		From:     Endpoint{Label: Startup, KeyColumns: map[string]string{"name": "startup_name"}},
		To:       Endpoint{LabelColumn: "parent_type", KeyColumns: map[string]string{"name": "parent_name"}},
		Required: []string{"startup_name", "parent_name", "parent_type", "spinoff_date"},
		Fields: []Field{
			{Column: "spinoff_date", Type: Date},
			{Column: "technology_transferred"},
			{Column: "initial_equity", Type: Percent},
			{Column: "support_provided"},
		},
		MergeProps: []string{"spinoff_date"},
	},
}

// EntityKinds returns every known entity kind in stable order.
func EntityKinds() []EntityKind {
	return []EntityKind{Person, Startup, VCFirm, VCFund, AngelSyndicate, Institution, Corporate}
}

// RelationshipKinds returns every known relationship kind in stable order.
func RelationshipKinds() []RelationshipKind {
	return []RelationshipKind{
		Founded, WorksAt, AngelInvestsIn, Manages, InvestsIn, ParticipatedIn,
		AcceleratedBy, Acquired, PartnersWith, Mentors, SpunOffFrom,
	}
}

// EntityDescriptorFor looks up the descriptor of an entity kind.
func EntityDescriptorFor(kind EntityKind) (*EntityDescriptor, bool) {
	d, ok := entityDescriptors[kind]
	return d, ok
}

// RelationshipDescriptorFor looks up the descriptor of a relationship kind.
func RelationshipDescriptorFor(kind RelationshipKind) (*RelationshipDescriptor, bool) {
	d, ok := relationshipDescriptors[kind]
	return d, ok
}

// ValidLabel reports whether s names a known entity kind. Row-supplied
// labels (org_type, investor_type, partner_type, parent_type) are checked
// against this before they are interpolated into a query.
func ValidLabel(s string) bool {
	return knownLabels.Contains(s)
}

var knownLabels = func() mapset.Set[string] {
	set := mapset.NewSet[string]()
	for _, k := range EntityKinds() {
		set.Add(string(k))
	}
	return set
}()
