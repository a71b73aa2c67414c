package domain_test

import (
	"testing"

	"news-curator/internal/domain"

	"github.com/stretchr/testify/assert"
)

func act(kind domain.ActivityKind, category, source string, dwell int) domain.Activity {
	return domain.Activity{
		Kind:         kind,
		Category:     category,
		Source:       source,
		DwellSeconds: dwell,
	}
}

func TestAggregatePreferences_Empty(t *testing.T) {
	prefs := domain.AggregatePreferences(nil, 3)
	assert.Empty(t, prefs.TopCategories)
	assert.Empty(t, prefs.TopSources)
}

func TestAggregatePreferences_WeightsPerKind(t *testing.T) {
	activities := []domain.Activity{
		act(domain.ActivityClick, "technology", "wired", 0),
		act(domain.ActivityView, "technology", "wired", 0),
		act(domain.ActivityBookmark, "sports", "espn", 0),
	}

	prefs := domain.AggregatePreferences(activities, 3)

	// technology accumulates 3+1=4, sports 5
	assert.Equal(t, []string{"sports", "technology"}, prefs.TopCategories)
	assert.Equal(t, []string{"espn", "wired"}, prefs.TopSources)
}

func TestAggregatePreferences_DwellThreshold(t *testing.T) {
	short := domain.AggregatePreferences([]domain.Activity{
		act(domain.ActivityDwell, "world", "bbc", 30),
		act(domain.ActivityDwell, "world", "bbc", 10),
		act(domain.ActivityView, "science", "nature", 0),
		act(domain.ActivityView, "science", "nature", 0),
		act(domain.ActivityView, "science", "nature", 0),
	}, 3)
	// two short dwells weigh 1 each; three views weigh 3 total
	assert.Equal(t, []string{"science", "world"}, short.TopCategories)

	long := domain.AggregatePreferences([]domain.Activity{
		act(domain.ActivityDwell, "world", "bbc", 31),
		act(domain.ActivityDwell, "world", "bbc", 120),
		act(domain.ActivityView, "science", "nature", 0),
		act(domain.ActivityView, "science", "nature", 0),
		act(domain.ActivityView, "science", "nature", 0),
	}, 3)
	// long dwells weigh 2 each, overtaking the views
	assert.Equal(t, []string{"world", "science"}, long.TopCategories)
}

func TestAggregatePreferences_StableTieBreak(t *testing.T) {
	activities := []domain.Activity{
		act(domain.ActivityView, "world", "bbc", 0),
		act(domain.ActivityView, "science", "nature", 0),
	}

	prefs := domain.AggregatePreferences(activities, 3)

	// equal weights keep input encounter order
	assert.Equal(t, []string{"world", "science"}, prefs.TopCategories)
	assert.Equal(t, []string{"bbc", "nature"}, prefs.TopSources)
}

func TestAggregatePreferences_TruncatesToTopN(t *testing.T) {
	activities := []domain.Activity{
		act(domain.ActivityBookmark, "a", "s1", 0),
		act(domain.ActivityClick, "b", "s2", 0),
		act(domain.ActivityView, "c", "s3", 0),
		act(domain.ActivityView, "d", "s4", 0),
	}

	prefs := domain.AggregatePreferences(activities, 3)

	assert.Len(t, prefs.TopCategories, 3)
	assert.Equal(t, []string{"a", "b", "c"}, prefs.TopCategories)
}

func TestAggregatePreferences_UnseenLabelsNeverAppear(t *testing.T) {
	activities := []domain.Activity{
		act(domain.ActivityClick, "technology", "wired", 0),
	}

	prefs := domain.AggregatePreferences(activities, 3)

	assert.NotContains(t, prefs.TopCategories, "sports")
	assert.NotContains(t, prefs.TopSources, "espn")
}

func TestAggregatePreferences_SkipsEmptyLabels(t *testing.T) {
	activities := []domain.Activity{
		act(domain.ActivityClick, "", "", 0),
		act(domain.ActivityView, "world", "bbc", 0),
	}

	prefs := domain.AggregatePreferences(activities, 3)

	assert.Equal(t, []string{"world"}, prefs.TopCategories)
	assert.Equal(t, []string{"bbc"}, prefs.TopSources)
}
