package domain

// Action names a server-side pipeline.
type Action string

const (
	ActionGenerateScripts Action = "generate-scripts"
	ActionResearchContent Action = "research-content"
	ActionResearchPrompt  Action = "research-prompt"
)

// ActionResult is the output of a pipeline. It is implemented only by
// *ScriptResult and *ResearchResult.
type ActionResult interface {
	isActionResult()
}
