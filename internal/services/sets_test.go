package services

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAggregateSets_RomanceDawnScenario(t *testing.T) {
	cards := mustParseCards(t, `[
		{"id": "A1", "code": "OP05-119", "name": "Luffy", "set": {"groupId": "17675", "name": "Romance Dawn"}},
		{"id": "A2", "code": "OP05-120", "name": "Zoro", "set": {"groupId": "17675", "name": "Romance Dawn"}}
	]`)

	sets := AggregateSets(cards)
	if len(sets) != 1 {
		t.Fatalf("got %d sets, want 1", len(sets))
	}
	if sets[0].CardCount != 2 {
		t.Errorf("CardCount = %d, want 2", sets[0].CardCount)
	}
	if !reflect.DeepEqual(sets[0].Names, []string{"Romance Dawn"}) {
		t.Errorf("Names = %v, want [Romance Dawn]", sets[0].Names)
	}
}

func TestAggregateSets(t *testing.T) {
	cards := mustParseCards(t, `[
		{"id": "1", "set": {"groupId": "17675", "name": "Premium Booster", "set_code": "PRB01", "beauty_name": "Premium"}},
		{"id": "2", "set": {"groupId": 3188, "name": "Starter Deck 1", "set_code": "st01"}},
		{"id": "3", "set": {"groupId": "17675", "name": "Awakening of the New Era", "set_code": "other"}},
		{"id": "4"},
		{"id": "5", "set": {"name": "Orphan"}},
		{"id": "6", "set": {"groupId": "", "name": "Empty Group"}},
		{"id": "7", "set": {"groupId": "4000", "name": "No Code"}},
		{"id": "8", "set": {"groupId": "17675", "name": ""}},
		{"id": "9", "set": {"groupId": "17675", "name": "Premium Booster"}},
		{"id": "10", "set": {"groupId": "3188", "name": "Starter Deck 1"}},
		{"id": "11", "set": {"groupId": "5000", "set_code": "ST01"}}
	]`)

	sets := AggregateSets(cards)

	var gids []string
	total := 0
	for _, s := range sets {
		gids = append(gids, s.GroupID)
		total += s.CardCount
	}

	// "" < "prb01" < "st01" == "st01" (stable)
	if want := []string{"4000", "17675", "3188", "5000"}; !reflect.DeepEqual(gids, want) {
		t.Errorf("order = %v, want %v", gids, want)
	}

	// Cards 4, 5 and 6 carry no groupId.
	if total != 8 {
		t.Errorf("sum of card_count = %d, want 8", total)
	}

	counts := map[string]int{}
	for _, s := range sets {
		counts[s.GroupID] = s.CardCount
	}
	if want := map[string]int{"4000": 1, "17675": 4, "3188": 2, "5000": 1}; !reflect.DeepEqual(counts, want) {
		t.Errorf("counts = %v, want %v", counts, want)
	}

	for _, s := range sets {
		if s.GroupID == NamesGroupID {
			want := []string{"Awakening of the New Era", "Premium Booster"}
			if !reflect.DeepEqual(s.Names, want) {
				t.Errorf("Names = %v, want %v", s.Names, want)
			}
			// Fields come from the first card of the group.
			if string(s.Fields["set_code"]) != `"PRB01"` {
				t.Errorf("set_code = %s, want first card's", s.Fields["set_code"])
			}
		} else if s.Names != nil {
			t.Errorf("group %s should not carry names", s.GroupID)
		}
	}
}

func TestSetSummaryJSON(t *testing.T) {
	cards := mustParseCards(t, `[
		{"id": "1", "set": {"groupId": 3188, "name": "Starter Deck 1", "set_code": "ST01", "extra": true}},
		{"id": "2", "set": {"groupId": "17675", "name": "Romance Dawn"}}
	]`)

	out, err := json.Marshal(AggregateSets(cards))
	if err != nil {
		t.Fatal(err)
	}

	var got []map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d sets, want 2", len(got))
	}

	// No set_code sorts first.
	first, second := got[0], got[1]
	if first["groupId"] != "17675" || first["card_count"] != float64(1) {
		t.Errorf("unexpected first set: %v", first)
	}
	if names, ok := first["names"].([]any); !ok || len(names) != 1 || names[0] != "Romance Dawn" {
		t.Errorf("names = %v", first["names"])
	}
	if second["groupId"] != float64(3188) || second["extra"] != true || second["set_code"] != "ST01" {
		t.Errorf("set fields not preserved: %v", second)
	}
	if _, ok := second["names"]; ok {
		t.Errorf("names should be omitted for group 3188")
	}
}

func TestAggregateSetsEmpty(t *testing.T) {
	sets := AggregateSets(nil)
	if sets == nil || len(sets) != 0 {
		t.Errorf("AggregateSets(nil) = %#v, want empty slice", sets)
	}
}

func TestAggregateSets_NamesAreCaseSensitive(t *testing.T) {
	cards := mustParseCards(t, `[
		{"id": "1", "set": {"groupId": "17675", "name": "apple"}},
		{"id": "2", "set": {"groupId": "17675", "name": "Zeta"}},
		{"id": "3", "set": {"groupId": "17675", "name": "Banana"}},
		{"id": "4", "set": {"groupId": "17675", "name": "apple"}}
	]`)

	sets := AggregateSets(cards)
	if len(sets) != 1 {
		t.Fatalf("got %d sets, want 1", len(sets))
	}
	// Upper case sorts before lower case.
	if want := []string{"Banana", "Zeta", "apple"}; !reflect.DeepEqual(sets[0].Names, want) {
		t.Errorf("Names = %v, want %v", sets[0].Names, want)
	}
}
