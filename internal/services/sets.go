package services

import (
	"sort"
	"strings"

	"github.com/codyseavey/optcg-api/backend/internal/models"
)

// NamesGroupID is the group whose cards are published under several set
// names. Its summary lists every distinct name seen across its members.
const NamesGroupID = "17675"

// AggregateSets derives the distinct sets referenced by cards, in a single
// pass. The first card seen for a group provides the set fields; every card
// of the group, the first included, counts toward card_count. Cards without
// a set or a groupId are skipped. The result is ordered by set_code,
// case-insensitively, with ties kept in first-seen order.
func AggregateSets(cards []models.Card) []models.SetSummary {
	index := make(map[string]int)
	summaries := make([]models.SetSummary, 0)
	var names map[string]struct{}

	for i := range cards {
		card := &cards[i]
		if card.Set == nil {
			continue
		}
		gid := card.Set.GroupID.String()
		if gid == "" {
			continue
		}

		idx, ok := index[gid]
		if !ok {
			idx = len(summaries)
			index[gid] = idx
			summaries = append(summaries, models.SetSummary{
				Fields:  card.Set.Fields(),
				GroupID: gid,
				SetCode: card.Set.SetCode.String(),
			})
		}
		summaries[idx].CardCount++

		if gid == NamesGroupID {
			if names == nil {
				names = make(map[string]struct{})
			}
			if name := card.Set.Name.String(); name != "" {
				names[name] = struct{}{}
			}
		}
	}

	if idx, ok := index[NamesGroupID]; ok {
		list := make([]string, 0, len(names))
		for name := range names {
			list = append(list, name)
		}
		sort.Strings(list)
		summaries[idx].Names = list
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return strings.ToLower(summaries[i].SetCode) < strings.ToLower(summaries[j].SetCode)
	})

	return summaries
}
