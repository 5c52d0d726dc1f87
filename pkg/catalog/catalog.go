package catalog

import (
	"fmt"
	"sort"
)

// TotalItems is the fixed size of the KWCAG 2.2 checklist.
const TotalItems = 33

// Level is the conformance level of an inspection item
type Level string

const (
	LevelA   Level = "A"
	LevelAA  Level = "AA"
	LevelAAA Level = "AAA"
)

// Automation describes how much of an item can be checked without a human reviewer
type Automation string

const (
	AutoFull    Automation = "auto"
	AutoPartial Automation = "partial"
	AutoManual  Automation = "manual"
)

// Item is one of the 33 KWCAG 2.2 inspection items
type Item struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	NameEn      string     `json:"nameEn" yaml:"name_en"`
	Principle   int        `json:"principle" yaml:"principle"`
	Level       Level      `json:"level" yaml:"level"`
	EngineRules []string   `json:"engineRules" yaml:"engine_rules"`
	CustomRule  string     `json:"customRule,omitempty" yaml:"custom_rule,omitempty"`
	Auto        Automation `json:"auto" yaml:"auto"`
	Description string     `json:"description" yaml:"description"`
}

// PrincipleName returns the Korean name of the principle the item belongs to
func (i Item) PrincipleName() string {
	return PrincipleName(i.Principle)
}

// HasRules reports whether any engine or custom rule backs the item
func (i Item) HasRules() bool {
	return len(i.EngineRules) > 0 || i.CustomRule != ""
}

var principleNames = map[int]string{
	1: "인식의 용이성",
	2: "운용의 용이성",
	3: "이해의 용이성",
	4: "견고성",
}

var principleNamesEn = map[int]string{
	1: "Perceivable",
	2: "Operable",
	3: "Understandable",
	4: "Robust",
}

var (
	byID         map[string]int
	byEngineRule map[string]int
	byCustomRule map[string]int
)

func init() {
	byID = make(map[string]int, len(items))
	byEngineRule = make(map[string]int)
	byCustomRule = make(map[string]int)

	for idx, item := range items {
		if _, dup := byID[item.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate item id %s", item.ID))
		}
		byID[item.ID] = idx
		for _, rule := range item.EngineRules {
			if prev, dup := byEngineRule[rule]; dup {
				panic(fmt.Sprintf("catalog: engine rule %s mapped to both %s and %s", rule, items[prev].ID, item.ID))
			}
			byEngineRule[rule] = idx
		}
		if item.CustomRule != "" {
			byCustomRule[item.CustomRule] = idx
		}
	}
}

// Items returns a copy of the catalog in id order
func Items() []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = clone(item)
	}
	return out
}

// ByID looks up an item by its three-part id
func ByID(id string) (Item, bool) {
	idx, ok := byID[id]
	if !ok {
		return Item{}, false
	}
	return clone(items[idx]), true
}

// ByEngineRule resolves the item an external engine rule id is mapped to.
// Rules outside the guideline scope return false.
func ByEngineRule(ruleID string) (Item, bool) {
	idx, ok := byEngineRule[ruleID]
	if !ok {
		return Item{}, false
	}
	return clone(items[idx]), true
}

// ByCustomRule resolves the item backed by a custom rule id
func ByCustomRule(ruleID string) (Item, bool) {
	idx, ok := byCustomRule[ruleID]
	if !ok {
		return Item{}, false
	}
	return clone(items[idx]), true
}

// ByPrinciple returns the items of one principle (1-4)
func ByPrinciple(principle int) []Item {
	var out []Item
	for _, item := range items {
		if item.Principle == principle {
			out = append(out, clone(item))
		}
	}
	return out
}

// EngineRuleIDs returns every mapped engine rule id, sorted
func EngineRuleIDs() []string {
	ids := make([]string, 0, len(byEngineRule))
	for id := range byEngineRule {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Principles returns the principle numbers in order
func Principles() []int {
	return []int{1, 2, 3, 4}
}

// PrincipleName returns the Korean principle name, or "" for an unknown number
func PrincipleName(principle int) string {
	return principleNames[principle]
}

// PrincipleNameEn returns the English principle name
func PrincipleNameEn(principle int) string {
	return principleNamesEn[principle]
}

// PrincipleCounts returns the number of items per principle
func PrincipleCounts() map[int]int {
	counts := make(map[int]int, len(principleNames))
	for _, item := range items {
		counts[item.Principle]++
	}
	return counts
}

func clone(item Item) Item {
	item.EngineRules = append([]string(nil), item.EngineRules...)
	return item
}
