// Package prompt builds the system and user messages sent to the LLM.
// Every builder is a pure function of its input.
package prompt

import (
	"fmt"
	"strings"

	"github.com/iconidentify/scriptforge/internal/domain"
)

// Agency is the estate agency every script is written for.
const Agency = "Benjamin Stevens Estate Agents"

// Pair is a system/user message pair.
type Pair struct {
	System string
	User   string
}

const brandContext = `CRITICAL BRAND CONTEXT:
- "Benjamin Stevens Estate Agents" (The Hub Model): Designed for agents who want independence but DO NOT want to handle administrative tasks. The "boss" or support team handles the admin/back-office.
- "eXp" (The Self-Employed Model): Designed for agents who want complete independence and are happy to handle their own admin and operations.`

const scriptOutputFormat = `OUTPUT FORMAT (Strict JSON):
{
  "strategy": "A brief paragraph explaining the strategy used.",
  "longFormScript": "The full text of the long-form video essay...",
  "scripts": [
    "Shorts Script 1 text...",
    "Shorts Script 2 text...",
    "Shorts Script 3 text...",
    "Shorts Script 4 text...",
    "Shorts Script 5 text..."
  ]
}
Return a single JSON object only.`

// ForScripts builds the prompt pair for script generation.
func ForScripts(req domain.ScriptRequest) Pair {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are an expert social media scriptwriter for %s.\n\n", Agency))
	sb.WriteString(brandContext)
	sb.WriteString("\n\n")

	sb.WriteString("STRICT STRUCTURE (Must be followed for EVERY script):\n")
	sb.WriteString("1. PROBLEM: Present an existing, relatable problem the audience faces.\n")
	sb.WriteString("2. EXPLAIN: Agitate the pain point. Explain WHY it is a problem and the consequences of ignoring it.\n")
	sb.WriteString("3. SOLUTION: Provide a clear, educational solution or answer. DO NOT promote the agency yet. Pure value.\n")
	sb.WriteString(fmt.Sprintf("4. BACK TO COMPANY: Link the solution back to the specific brand selected (%s) and how their specific model solves the admin/independence balance.\n\n", req.Brand))

	sb.WriteString("STRICT LENGTH REQUIREMENTS:\n")
	sb.WriteString("- Long-form Script: MUST be approximately 1500 words. Detailed, spoken-word essay.\n")
	sb.WriteString("- Short-form Scripts: MUST be approximately 500 words each. Fast-paced.\n\n")

	sb.WriteString(fmt.Sprintf("Brand Identity: %s\n", req.Brand))
	sb.WriteString(fmt.Sprintf("Style: %s\n", req.CreativeDirection))
	sb.WriteString(fmt.Sprintf("Format: %s\n\n", req.StylePreset))

	sb.WriteString("TASK:\n")
	sb.WriteString("1. Analyze the source text to identify key hooks, valuable information, and narrative structure.\n")
	sb.WriteString("2. Generate ONE detailed Long-form Video Essay script (approx 1500 words). It should flow naturally as a cohesive narrative.\n")
	sb.WriteString("3. Generate exactly 5 distinct Short-form scripts (approx 500 words each).\n")
	sb.WriteString("4. Include a brief \"Strategy Note\" for why these scripts work.\n\n")
	sb.WriteString(scriptOutputFormat)

	user := fmt.Sprintf("Source Content:\n%s\n\nSpecific Instructions:\n%s", req.SourceText, req.SpecialInstructions)

	return Pair{System: sb.String(), User: user}
}

// ForResearchPrompt builds the prompt pair asking the model to write a
// deep research prompt for another reasoning model.
func ForResearchPrompt(req domain.ResearchRequest) Pair {
	var sb strings.Builder
	sb.WriteString("You are a World-Class AI Prompt Engineer specializing in Digital Marketing and Real Estate.\n\n")
	sb.WriteString("Your Goal:\n")
	sb.WriteString("Create a highly sophisticated, deep-dive research prompt that a user can paste into Google Gemini Advanced (or another reasoning model).\n\n")
	sb.WriteString(fmt.Sprintf("The user wants to research the topic: \"%s\"\n", req.TopicQuery))
	sb.WriteString(fmt.Sprintf("For the content format: \"%s\"\n", req.ContentFormat))
	sb.WriteString(fmt.Sprintf("Context: %s (UK based).\n\n", Agency))

	sb.WriteString("Your generated prompt must instruct the AI to:\n")
	sb.WriteString("1. Perform a deep web search for viral trends, recent news, and high-performing content related to the topic.\n")
	sb.WriteString("2. Analyze the psychological triggers and hooks used in successful examples.\n")
	sb.WriteString("3. Identify specific \"Transferable Techniques\" that a UK Estate Agent can replicate.\n")
	sb.WriteString("4. Provide concrete examples of video/post structures.\n")
	sb.WriteString(fmt.Sprintf("5. Output a strategy for %s.\n\n", req.ContentFormat))

	sb.WriteString(`OUTPUT JSON FORMAT (Strictly):
{
  "generated_prompt": "The full, detailed text of the prompt to be pasted into Gemini...",
  "strategy_suggestion": "A brief explanation of why this prompt is effective."
}`)

	return Pair{
		System: sb.String(),
		User:   "Generate a deep research prompt for: " + req.TopicQuery,
	}
}

// ForResearchAnalysis builds the prompt pair for the search-augmented
// analysis. searchContext is the serialized search results and becomes the
// user message unchanged.
func ForResearchAnalysis(req domain.ResearchRequest, searchContext string) Pair {
	var sb strings.Builder
	sb.WriteString("You are a Viral Content Analyst for a Digital Marketing Agency.\n\n")
	sb.WriteString("Your Task:\n")
	sb.WriteString(fmt.Sprintf("1. Review the provided search results for the topic: \"%s\".\n", req.TopicQuery))
	sb.WriteString("2. Identify content that appears to be high-performing, viral, or authoritative based on the titles and snippets.\n")
	sb.WriteString("3. Extract specific \"Transferable Techniques\" (hooks, formats, styles) that we can replicate.\n")
	sb.WriteString("4. Create a Market Analysis Report.\n")
	if req.ContentFormat != "" {
		sb.WriteString(fmt.Sprintf("5. Aim the strategy suggestion at the %s format.\n", req.ContentFormat))
	}
	sb.WriteString(`
OUTPUT JSON FORMAT:
{
  "candidates": [
    {
      "title": "Title of the content found",
      "link": "URL",
      "platform": "YouTube/Instagram/Blog/News",
      "engagement_signals": "Why this seems popular (e.g. 'Viral keywords', 'Top ranking')",
      "transferable_technique": "Specific technique we can copy (e.g. 'Uses shock hook', 'Listicle format')"
    }
  ],
  "market_analysis": "A concise paragraph summarizing the current trend for this topic.",
  "strategy_suggestion": "A recommended angle for our own scripts based on this research."
}`)

	return Pair{System: sb.String(), User: searchContext}
}
