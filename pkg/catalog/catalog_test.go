package catalog

import (
	"regexp"
	"testing"
)

func TestCatalogShape(t *testing.T) {
	all := Items()
	if len(all) != TotalItems {
		t.Fatalf("Expected %d items, got %d", TotalItems, len(all))
	}

	want := map[int]int{1: 9, 2: 15, 3: 7, 4: 2}
	got := PrincipleCounts()
	for p, n := range want {
		if got[p] != n {
			t.Errorf("Principle %d: expected %d items, got %d", p, n, got[p])
		}
	}

	idPattern := regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	for i, item := range all {
		if !idPattern.MatchString(item.ID) {
			t.Errorf("Invalid id %q", item.ID)
		}
		switch item.Level {
		case LevelA, LevelAA, LevelAAA:
		default:
			t.Errorf("%s: invalid level %q", item.ID, item.Level)
		}
		if item.NameEn == "" || item.Description == "" {
			t.Errorf("%s: missing english name or description", item.ID)
		}
		if item.Auto != AutoManual && !item.HasRules() {
			t.Errorf("%s: automated item without rules", item.ID)
		}
		if item.Auto == AutoManual && item.HasRules() {
			t.Errorf("%s: manual item with rules", item.ID)
		}
		if i > 0 && all[i-1].ID >= item.ID {
			t.Errorf("Items out of order: %s before %s", all[i-1].ID, item.ID)
		}
	}
}

func TestLookups(t *testing.T) {
	item, ok := ByID("5.1.1")
	if !ok {
		t.Fatal("5.1.1 not found")
	}
	if item.Name != "적절한 대체 텍스트 제공" || item.Principle != 1 {
		t.Errorf("Unexpected 5.1.1: %+v", item)
	}

	if _, ok := ByID("9.9.9"); ok {
		t.Error("Expected unknown id to be absent")
	}

	cases := map[string]string{
		"image-alt":         "5.1.1",
		"color-contrast":    "5.4.3",
		"html-has-lang":     "7.1.1",
		"label":             "7.3.2",
		"duplicate-id-aria": "8.1.1",
		"aria-roles":        "8.2.1",
		"document-title":    "6.4.2",
	}
	for rule, id := range cases {
		got, ok := ByEngineRule(rule)
		if !ok || got.ID != id {
			t.Errorf("ByEngineRule(%s) = %s, %v; want %s", rule, got.ID, ok, id)
		}
	}

	if _, ok := ByEngineRule("region"); ok {
		t.Error("Expected out-of-scope engine rule to be unmapped")
	}

	if got, ok := ByCustomRule("lang-attr"); !ok || got.ID != "7.1.1" {
		t.Errorf("ByCustomRule(lang-attr) = %s, %v", got.ID, ok)
	}
}

func TestEngineRuleIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	total := 0
	for _, item := range Items() {
		for _, rule := range item.EngineRules {
			if seen[rule] {
				t.Errorf("Engine rule %s mapped twice", rule)
			}
			seen[rule] = true
			total++
		}
	}
	if len(EngineRuleIDs()) != total {
		t.Errorf("EngineRuleIDs returned %d ids, expected %d", len(EngineRuleIDs()), total)
	}
}

func TestPrincipleNames(t *testing.T) {
	want := map[int]string{1: "인식의 용이성", 2: "운용의 용이성", 3: "이해의 용이성", 4: "견고성"}
	for p, name := range want {
		if PrincipleName(p) != name {
			t.Errorf("PrincipleName(%d) = %q, want %q", p, PrincipleName(p), name)
		}
	}
	if PrincipleName(5) != "" {
		t.Error("Expected empty name for unknown principle")
	}
}

func TestItemsReturnsCopies(t *testing.T) {
	first := Items()
	first[0].EngineRules[0] = "mutated"
	first[0].Name = "mutated"

	again, _ := ByID(first[0].ID)
	if again.Name == "mutated" || again.EngineRules[0] == "mutated" {
		t.Error("Catalog was mutated through a returned slice")
	}
}
