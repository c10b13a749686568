package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		merchant string
		want     string
	}{
		{"", Uncategorized},
		{"   ", Uncategorized},
		{"Starbucks #1234", "Food & Dining"},
		{"KROGER SUPERMARKET", "Groceries"},
		{"Uber Trip", "Transportation"},
		{"Netflix.com", "Entertainment"},
		{"City Water Dept", "Bills & Utilities"},
		{"Zyx Holdings", General},
	}

	for _, tt := range tests {
		t.Run(tt.merchant, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.merchant).Category)
		})
	}
}

func TestSuggest_FirstRuleWinsButAllMatchesListed(t *testing.T) {
	// "coffee" (Food & Dining) and "shop" (Shopping) both match.
	got := Suggest("Coffee Shop")
	assert.Equal(t, "Food & Dining", got.Category)
	assert.Equal(t, []string{"Food & Dining", "Shopping"}, got.Suggestions)
}

func TestSuggest_EmptySuggestionsAreNotNil(t *testing.T) {
	assert.NotNil(t, Suggest("").Suggestions)
	assert.NotNil(t, Suggest("qqq").Suggestions)
}
