package openai

import (
	"encoding/json"
	"fmt"
	"strings"
)

const summarySystemPrompt = `You are a content assistant for a healthcare directory. You will be given a numbered list of patient reviews for a single doctor or facility. Return ONLY valid JSON with this schema:
{
  "summary": string (2-3 sentences condensing the overall sentiment),
  "positive_themes": string (one sentence listing recurring positive themes),
  "negative_themes": string (one sentence listing recurring negative themes)
}
Be balanced and factual. Do not invent details not present in the reviews. Do not include medical advice.`

type summaryPayload struct {
	Summary        string `json:"summary"`
	PositiveThemes string `json:"positive_themes"`
	NegativeThemes string `json:"negative_themes"`
}

func buildSummaryUserPrompt(comments []string) string {
	var b strings.Builder
	b.WriteString("Reviews:\n")
	for i, comment := range comments {
		fmt.Fprintf(&b, "%d. %s\n", i+1, comment)
	}
	return b.String()
}

func parseSummaryPayload(data []byte) (*summaryPayload, error) {
	var payload summaryPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse summary payload: %w", err)
	}
	if payload.Summary == "" {
		return nil, fmt.Errorf("summary payload missing summary text")
	}
	return &payload, nil
}
