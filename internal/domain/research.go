package domain

import "encoding/json"

// ContentFormat is the target format of researched content.
type ContentFormat string

const (
	FormatVideo      ContentFormat = "Video"
	FormatCarousel   ContentFormat = "Carousel"
	FormatStaticPost ContentFormat = "Static Post"
)

// ContentFormats lists every format in display order.
var ContentFormats = []ContentFormat{FormatVideo, FormatCarousel, FormatStaticPost}

// Valid reports whether f is a known format.
func (f ContentFormat) Valid() bool {
	for _, v := range ContentFormats {
		if f == v {
			return true
		}
	}
	return false
}

// ResearchRequest is the input of both research pipelines.
type ResearchRequest struct {
	TopicQuery    string        `json:"query"`
	ContentFormat ContentFormat `json:"contentType"`
}

// Candidate is a piece of existing content worth learning from.
type Candidate struct {
	Title                 string `json:"title"`
	Link                  string `json:"link"`
	Platform              string `json:"platform"`
	EngagementSignal      string `json:"engagement_signals"`
	TransferableTechnique string `json:"transferable_technique"`
}

// ResearchResult is produced by either the prompt-only or the
// search-augmented pipeline; each fills a different subset of fields.
type ResearchResult struct {
	TopicQuery         string        `json:"query"`
	ContentFormat      ContentFormat `json:"contentType,omitempty"`
	GeneratedPrompt    string        `json:"generated_prompt,omitempty"`
	Candidates         []Candidate   `json:"candidates,omitempty"`
	MarketAnalysis     string        `json:"market_analysis,omitempty"`
	StrategySuggestion string        `json:"strategy_suggestion,omitempty"`
}

func (*ResearchResult) isActionResult() {}

// MarshalJSON writes candidates whenever the slice is non-nil, so an
// analysis with no candidates is sent as an empty list. The prompt-only
// pipeline leaves it nil and the key is dropped.
func (r ResearchResult) MarshalJSON() ([]byte, error) {
	type plain ResearchResult
	out := struct {
		plain
		Candidates *[]Candidate `json:"candidates,omitempty"`
	}{plain: plain(r)}
	if r.Candidates != nil {
		out.Candidates = &r.Candidates
	}
	return json.Marshal(out)
}
