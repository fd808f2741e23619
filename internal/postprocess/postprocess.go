// Package postprocess strips common LLM artifacts from translation output.
//
// It is applied by the LLM-backed services (Gemini, Ollama) to their own
// response text only; the caller's input is never touched.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean returns the text with reasoning blocks, instruction echoes, and
// outer quote wrapping removed, trimmed of surrounding whitespace.
func Clean(text string) string {
	text = stripReasoning(text)
	text = stripEchoPrefix(text)
	text = stripQuoteWrap(text)
	return strings.TrimSpace(text)
}

// reasoningRe matches closed <think>/<thinking>/<reasoning> blocks. RE2 has
// no backreferences, so each tag pair is spelled out.
var reasoningRe = regexp.MustCompile(
	`(?is)<think>.*?</think>|<thinking>.*?</thinking>|<reasoning>.*?</reasoning>`,
)

// openReasoningRe matches a reasoning tag the model never closed.
var openReasoningRe = regexp.MustCompile(`(?is)(?:<think>|<thinking>|<reasoning>).*$`)

func stripReasoning(text string) string {
	text = reasoningRe.ReplaceAllString(text, "")
	return openReasoningRe.ReplaceAllString(text, "")
}

// echoRe matches chatty lead-ins the model sometimes prepends despite the
// instruction, e.g. "Here is the English translation:" or "Translation:".
// Anchored to the start and requiring a colon to avoid eating content.
var echoRe = regexp.MustCompile(
	`(?i)^(?:(?:sure|certainly|of course)[,.]?\s+)?(?:here(?:'s| is)(?: the)?\s+)?(?:simple\s+)?(?:english\s+)?(?:translation|translated text)\s*:\s*`,
)

func stripEchoPrefix(text string) string {
	text = strings.TrimSpace(text)
	return echoRe.ReplaceAllString(text, "")
}

// stripQuoteWrap removes one matching pair of outer quotes when the whole
// text is wrapped in them.
func stripQuoteWrap(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	pairs := map[rune]rune{
		'"':      '"',
		'\'':     '\'',
		'«':      '»',
		'“': '”',
		'‘': '’',
	}
	if closer, ok := pairs[runes[0]]; ok && runes[n-1] == closer {
		return strings.TrimSpace(string(runes[1 : n-1]))
	}
	return text
}
