package service

import (
	"strings"

	"royale-tracker/internal/api"
)

// FilterOneVOne keeps only battles whose type is in the allowed set and
// whose own-side roster has exactly one player. The roster check guards
// against type codes that get reused for group modes (clanmate 2v2 shares
// its type string with the 1v1 variant).
func FilterOneVOne(battles []api.Battle, allowed map[string]struct{}) []api.Battle {
	filtered := make([]api.Battle, 0, len(battles))
	for _, battle := range battles {
		if _, ok := allowed[strings.ToLower(battle.Type)]; !ok {
			continue
		}
		if len(battle.Team) != 1 {
			continue
		}
		filtered = append(filtered, battle)
	}
	return filtered
}
