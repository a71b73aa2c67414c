package domain

import (
	"sort"
	"time"
)

const (
	// MaxRecommendations caps the recommendation response.
	MaxRecommendations = 20
	// CandidatePoolLimit caps how many recent articles are considered.
	CandidatePoolLimit = 100
	// CandidateWindow is the publication lookback for candidates.
	CandidateWindow = 7 * 24 * time.Hour
	// ActivityWindow is the interaction lookback for preference aggregation.
	ActivityWindow = 30 * 24 * time.Hour

	categoryRankStep = 10
	sourceRankStep   = 5
	recencyCapHours  = 24
)

// ScoreCandidates ranks a candidate pool against a user's preferences.
// Candidates the user has already interacted with are removed before scoring.
// The input is expected newest-first; ties keep that relative order.
func ScoreCandidates(candidates []Article, interacted map[string]struct{}, prefs Preferences, now time.Time) []ScoredArticle {
	scored := make([]ScoredArticle, 0, len(candidates))
	for _, art := range candidates {
		if _, seen := interacted[art.ID]; seen {
			continue
		}
		scored = append(scored, ScoredArticle{
			Article: art,
			Score:   scoreArticle(art, prefs, now),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > MaxRecommendations {
		scored = scored[:MaxRecommendations]
	}
	return scored
}

func scoreArticle(art Article, prefs Preferences, now time.Time) float64 {
	score := 0.0
	if rank := labelRank(prefs.TopCategories, art.Category); rank >= 0 {
		score += float64((DefaultTopLabels - rank) * categoryRankStep)
	}
	if rank := labelRank(prefs.TopSources, art.Source); rank >= 0 {
		score += float64((DefaultTopLabels - rank) * sourceRankStep)
	}
	score += recencyScore(art.PublishedAt, now)
	return score
}

func labelRank(labels []string, label string) int {
	if label == "" {
		return -1
	}
	for i, l := range labels {
		if l == label {
			return i
		}
	}
	return -1
}

// recencyScore contributes up to 24 points for an article published within
// the last hour, falling linearly to 0 at 24 hours.
func recencyScore(publishedAt, now time.Time) float64 {
	ageHours := now.Sub(publishedAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	score := recencyCapHours - ageHours
	if score < 0 {
		return 0
	}
	return score
}
