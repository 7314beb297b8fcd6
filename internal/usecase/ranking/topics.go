package ranking

// TopicRule boosts subject-matter domains when any of its trigger
// terms appears in the query. Rules are pure data: adding a topic is a
// table edit, not a control-flow change.
type TopicRule struct {
	ID           string
	TriggerTerms []string
	Domains      []string
	Bonus        int
}

// TopicRules is the static rule table. Bonuses were tuned against a
// regression suite; do not round them.
var TopicRules = []TopicRule{
	{
		ID:           "chronic-absenteeism",
		TriggerTerms: []string{"absenteeism", "absentee", "attendance", "truancy"},
		Domains:      []string{"nces.ed.gov", "ed.gov", "attendanceworks.org"},
		Bonus:        520,
	},
	{
		ID:           "incarceration",
		TriggerTerms: []string{"incarceration", "incarcerated", "prison", "jail", "recidivism"},
		Domains:      []string{"bjs.ojp.gov", "prisonpolicy.org", "vera.org"},
		Bonus:        540,
	},
	{
		ID:           "drought",
		TriggerTerms: []string{"drought"},
		Domains:      []string{"droughtmonitor.unl.edu", "drought.gov", "usda.gov"},
		Bonus:        460,
	},
	{
		ID:           "economic-mobility",
		TriggerTerms: []string{"mobility", "opportunity", "intergenerational"},
		Domains:      []string{"opportunityinsights.org", "opportunityatlas.org", "urban.org"},
		Bonus:        500,
	},
	{
		ID:           "healthcare-program",
		TriggerTerms: []string{"medicaid", "medicare", "chip", "marketplace"},
		Domains:      []string{"cms.gov", "medicaid.gov", "kff.org"},
		Bonus:        430,
	},
	{
		ID:           "food-security",
		TriggerTerms: []string{"food", "snap", "wic", "hunger"},
		Domains:      []string{"feedingamerica.org", "fns.usda.gov", "ers.usda.gov"},
		Bonus:        480,
	},
	{
		ID:           "transportation",
		TriggerTerms: []string{"transit", "transportation", "commute", "commuting"},
		Domains:      []string{"bts.gov", "transit.dot.gov", "dot.gov"},
		Bonus:        390,
	},
}
