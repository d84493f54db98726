package domain

// StylePreset is the content format the scripts are written in.
type StylePreset string

const (
	PresetEducational  StylePreset = "Educational"
	PresetHotTake      StylePreset = "Controversial / Hot Take"
	PresetStorytelling StylePreset = "Storytelling"
	PresetListicle     StylePreset = "Listicle"
	PresetBehindScenes StylePreset = "Behind the Scenes"
	PresetQandA        StylePreset = "Q&A"
	PresetDirectSales  StylePreset = "Direct Sales"
)

// StylePresets lists every preset in display order.
var StylePresets = []StylePreset{
	PresetEducational,
	PresetHotTake,
	PresetStorytelling,
	PresetListicle,
	PresetBehindScenes,
	PresetQandA,
	PresetDirectSales,
}

// Valid reports whether p is a known preset.
func (p StylePreset) Valid() bool {
	for _, v := range StylePresets {
		if p == v {
			return true
		}
	}
	return false
}

// CreativeDirection is the tone of voice of the scripts.
type CreativeDirection string

const (
	DirectionCorporate  CreativeDirection = "Professional & Corporate"
	DirectionViral      CreativeDirection = "Viral & High Energy"
	DirectionCommunity  CreativeDirection = "Warm & Community Focused"
	DirectionWitty      CreativeDirection = "Witty & Edgy"
	DirectionMinimalist CreativeDirection = "Minimalist"
)

// CreativeDirections lists every direction in display order.
var CreativeDirections = []CreativeDirection{
	DirectionCorporate,
	DirectionViral,
	DirectionCommunity,
	DirectionWitty,
	DirectionMinimalist,
}

// Valid reports whether d is a known direction.
func (d CreativeDirection) Valid() bool {
	for _, v := range CreativeDirections {
		if d == v {
			return true
		}
	}
	return false
}

// ScriptRequest is the input of a script generation.
type ScriptRequest struct {
	Brand               string            `json:"brand"`
	StylePreset         StylePreset       `json:"preset"`
	CreativeDirection   CreativeDirection `json:"creativeDirection"`
	SourceText          string            `json:"sourceText"`
	SpecialInstructions string            `json:"instructions"`
}

// ScriptResult is the bundle of scripts returned by the model.
// ShortScripts usually holds five entries but may hold any number.
type ScriptResult struct {
	StrategyNote   string   `json:"strategy"`
	LongFormScript string   `json:"longFormScript"`
	ShortScripts   []string `json:"scripts"`
}

func (*ScriptResult) isActionResult() {}
