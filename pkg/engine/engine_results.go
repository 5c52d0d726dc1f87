package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EngineResults are the four classified lists returned by the DOM rule engine
type EngineResults struct {
	URL          string       `json:"url"`
	Violations   []RuleResult `json:"violations"`
	Passes       []RuleResult `json:"passes"`
	Incomplete   []RuleResult `json:"incomplete"`
	Inapplicable []RuleResult `json:"inapplicable"`
}

// RuleResult is one engine rule outcome in one of the four lists
type RuleResult struct {
	ID          string     `json:"id"`
	Impact      string     `json:"impact"`
	Description string     `json:"description"`
	Help        string     `json:"help"`
	HelpURL     string     `json:"helpUrl"`
	Tags        []string   `json:"tags"`
	Nodes       []RuleNode `json:"nodes"`
}

// RuleNode is an element the engine evaluated
type RuleNode struct {
	HTML           string    `json:"html"`
	Target         Selectors `json:"target"`
	FailureSummary string    `json:"failureSummary"`
	Impact         string    `json:"impact"`
}

// Selectors is an engine target list. Entries that cross shadow roots arrive
// as nested arrays and are joined with " >>> ".
type Selectors []string

func (s *Selectors) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Selectors, 0, len(raw))
	for _, item := range raw {
		var single string
		if err := json.Unmarshal(item, &single); err == nil {
			out = append(out, single)
			continue
		}
		var nested []string
		if err := json.Unmarshal(item, &nested); err != nil {
			return fmt.Errorf("unsupported target entry %s: %w", string(item), err)
		}
		out = append(out, strings.Join(nested, " >>> "))
	}
	*s = out
	return nil
}
