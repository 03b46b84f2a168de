package database

import (
	"sort"

	"github.com/ahmadsaptan/devlog/internal/models"
)

// PickActiveSprintID chooses the sprint considered current for the
// given date: the most-recently-created sprint whose window contains
// today (an absent end date is open-ended), falling back to the
// most-recently-created sprint overall. Ties break on the created_at
// string, later wins. Pure function; recompute on demand, never cache.
func PickActiveSprintID(sprints []models.Sprint, today string) (string, bool) {
	if len(sprints) == 0 {
		return "", false
	}

	newestFirst := make([]models.Sprint, len(sprints))
	copy(newestFirst, sprints)
	sort.SliceStable(newestFirst, func(i, j int) bool {
		return newestFirst[i].CreatedAt > newestFirst[j].CreatedAt
	})

	for _, sprint := range newestFirst {
		startsOK := sprint.StartDate <= today
		endsOK := sprint.EndDate == nil || *sprint.EndDate >= today
		if startsOK && endsOK {
			return sprint.ID, true
		}
	}
	return newestFirst[0].ID, true
}
