// Package categorize suggests a spending category from a merchant name.
package categorize

import "strings"

const (
	Uncategorized = "Uncategorized"
	General       = "General"
)

type rule struct {
	category string
	keywords []string
}

// Rules are checked in order; the first keyword contained in the merchant wins.
var rules = []rule{
	{"Food & Dining", []string{"restaurant", "cafe", "coffee", "pizza", "burger", "food", "kitchen", "grill", "bistro", "diner", "eatery", "bakery", "bar", "pub", "mcdonalds", "kfc", "subway", "dominos", "starbucks", "dunkin", "chipotle", "panera", "wendys", "taco bell", "chick-fil-a", "five guys", "shake shack", "in-n-out"}},
	{"Groceries", []string{"grocery", "supermarket", "walmart", "target", "costco", "whole foods", "trader joe", "kroger", "safeway", "albertsons", "publix", "wegmans", "aldi", "lidl", "market", "fresh"}},
	{"Transportation", []string{"uber", "lyft", "taxi", "cab", "gas", "fuel", "shell", "exxon", "chevron", "bp", "mobil", "parking", "toll", "metro", "transit", "bus", "train", "airline", "flight"}},
	{"Auto & Transport", []string{"auto", "car wash", "oil change", "tire", "mechanic", "repair", "service", "jiffy lube", "midas", "pep boys", "autozone", "napa"}},
	{"Shopping", []string{"amazon", "ebay", "shop", "store", "retail", "mall", "boutique", "clothing", "fashion", "apparel", "footwear", "shoes", "nike", "adidas", "gap", "old navy", "macys", "nordstrom", "kohls", "jcpenney"}},
	{"Electronics", []string{"best buy", "apple", "microsoft", "electronics", "computer", "phone", "tech", "gadget", "amazon prime", "newegg"}},
	{"Entertainment", []string{"movie", "cinema", "theater", "amc", "regal", "netflix", "hulu", "disney", "spotify", "youtube", "music", "game", "xbox", "playstation", "steam", "twitch"}},
	{"Bills & Utilities", []string{"electric", "power", "water", "gas utility", "internet", "cable", "comcast", "verizon", "att", "tmobile", "sprint"}},
	{"Phone", []string{"verizon", "att", "tmobile", "sprint", "cricket", "boost mobile", "metro pcs", "phone bill"}},
	{"Healthcare", []string{"pharmacy", "cvs", "walgreens", "rite aid", "drug", "medical", "doctor", "hospital", "clinic", "health", "dental", "vision", "prescription"}},
	{"Housing", []string{"rent", "mortgage", "property", "lease", "apartment", "housing"}},
	{"Home & Garden", []string{"home depot", "lowes", "ikea", "bed bath", "furniture", "hardware", "home improvement"}},
	{"Personal Care", []string{"salon", "spa", "barber", "haircut", "beauty", "cosmetic", "sephora", "ulta", "gym", "fitness", "yoga"}},
	{"Financial", []string{"bank", "atm", "transfer", "payment", "paypal", "venmo", "zelle", "cash app", "credit card", "loan", "interest"}},
	{"Education", []string{"school", "university", "college", "tuition", "book", "course", "udemy", "coursera", "education"}},
	{"Travel", []string{"hotel", "airbnb", "booking", "expedia", "travel", "vacation", "resort", "cruise", "marriott", "hilton", "hyatt"}},
	{"Subscriptions", []string{"subscription", "membership", "annual fee", "monthly fee", "adobe", "office 365", "dropbox", "icloud"}},
	{"Gifts & Donations", []string{"gift", "donation", "charity", "fundraiser", "gofundme"}},
}

// Suggestion is the best category plus every category with a matching keyword.
type Suggestion struct {
	Category    string   `json:"category"`
	Suggestions []string `json:"suggestions"`
}

// Suggest categorises a merchant name. Matching is case-insensitive substring.
func Suggest(merchant string) Suggestion {
	text := strings.ToLower(strings.TrimSpace(merchant))
	if text == "" {
		return Suggestion{Category: Uncategorized, Suggestions: []string{}}
	}

	matches := []string{}
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				matches = append(matches, r.category)
				break
			}
		}
	}

	if len(matches) == 0 {
		return Suggestion{Category: General, Suggestions: matches}
	}
	return Suggestion{Category: matches[0], Suggestions: matches}
}
