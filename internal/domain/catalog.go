package domain

// PainPoint is a canned instruction for the script form.
type PainPoint struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ResearchTopic is a canned deep research query.
type ResearchTopic struct {
	Label        string `json:"label"`
	Query        string `json:"query"`
	BrandContext string `json:"brandContext"`
}

// Catalog lists every selectable option of the generation forms.
type Catalog struct {
	StylePresets       []StylePreset       `json:"presets"`
	CreativeDirections []CreativeDirection `json:"creativeDirections"`
	ContentFormats     []ContentFormat     `json:"contentTypes"`
	TopicPresets       []string            `json:"topics"`
	PainPoints         []PainPoint         `json:"painPoints"`
	ResearchTopics     []ResearchTopic     `json:"researchTopics"`
}

// TopicPresets are suggested source topics.
var TopicPresets = []string{
	"North West London Market Update",
	"Why Choose Benjamin Stevens?",
	"Landlord Legislation Update",
	"Investment Hotspots",
	"Community Work Highlights",
	"Tenant Guide",
}

// PainPoints are suggested special instructions.
var PainPoints = []PainPoint{
	{"Sales: No Offers / Slow Market", "Target vendors frustrated that their property is sitting on the market with no offers. Address the 'price vs. marketing' dilemma."},
	{"Sales: Fees vs. Value", "Address the objection that 'fees are too high'. Explain why a cheap agent costs you more in the final sale price."},
	{"Sales: Communication Black Hole", "Target vendors who feel ignored by their current agent. Promise weekly updates and personal WhatsApp groups."},
	{"Lettings: The Nightmare Tenant", "Focus on landlord anxiety about rent arrears and property damage. Pitch the comprehensive vetting process."},
	{"Lettings: Accidental Landlord", "Speak to people who inherited a property or moved in with a partner and don't know where to start with renting."},
	{"Lettings: Compliance Fatigue", "Target landlords overwhelmed by the 170+ pieces of legislation. Position the agency as the compliance expert shield."},
	{"Block Mgmt: Invisible Service", "Target leaseholders paying high service charges but seeing no maintenance or cleaning being done."},
	{"Block Mgmt: Absent Managers", "Focus on the frustration of never being able to reach a property manager during a crisis (e.g., leaks)."},
	{"Auctions: Need Cash Fast", "Target sellers facing financial pressure, divorce, or probate who need a guaranteed sale in 28 days."},
	{"Auctions: Problem Properties", "Focus on unmortgageable properties (Japanese Knotweed, structural issues, short leases) that traditional agents can't sell."},
	{"Recruitment: Stuck in Corporate", "Target estate agents tired of corporate KPIs and low commission splits. Pitch the 'Partner' model freedom."},
	{"General: Why use a Local Agent?", "Highlight the specific benefits of a local expert over a faceless online/hybrid agent."},
}

// ResearchTopics are suggested deep research queries.
var ResearchTopics = []ResearchTopic{
	{"Viral 'Day in the Life' (Estate Agent Edition)", "Day in the life of a real estate agent UK viral trends shorts", "General Brand Awareness / Recruitment"},
	{"UK Housing Market: Boom or Bust?", "UK housing market predictions 2025 viral content analysis", "Sales & Lettings Authority"},
	{"Renovation Nightmares & Flipping Wins", "Property renovation mistakes and flipping success stories viral", "Auctions & Investments"},
	{"Tenant Tips: Surviving the London Rental Market", "London renting tips and hacks viral tiktok trends", "Lettings"},
	{"Luxury Property Tours (MTV Cribs Style)", "Luxury property tour London viral video style", "Prestige Sales"},
	{"Estate Agent Secrets: How to Negotiate", "Estate agent secrets negotiation tips viral", "Sales / Vendor Education"},
	{"Block Management: Behind the Scenes", "Property management educational viral content UK", "Block Management"},
	{"Auction Room Drama & Bidding Wars", "Property auction bidding war viral video trends", "Auctions"},
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		StylePresets:       StylePresets,
		CreativeDirections: CreativeDirections,
		ContentFormats:     ContentFormats,
		TopicPresets:       TopicPresets,
		PainPoints:         PainPoints,
		ResearchTopics:     ResearchTopics,
	}
}
