package classifier

// defaultRules is the built-in curated rule table. Order matters: "uber eats"
// must fire before the commute rule's "uber", and the coffee rule before any
// broader food match. Common misspellings ("cofee") are included on purpose
// since the input is free text typed by users.
var defaultRules = []Rule{
	{
		Keywords:    []string{"uber eats", "swiggy", "zomato", "food", "burger", "pizza", "lunch", "dinner", "biryani", "restaurant", "dosa", "mcdonalds", "kfc", "domineos"},
		Category:    "Food",
		SubCategory: "Dining",
		Necessity:   "Want",
		Sentiment:   "Positive",
	},
	{
		Keywords:    []string{"coffee", "cofee", "tea", "cafe", "starbucks", "chai", "blue tokai"},
		Category:    "Food",
		SubCategory: "Coffee",
		Necessity:   "Want",
		Sentiment:   "Positive",
	},
	{
		Keywords:    []string{"bus", "metro", "train", "uber", "ola", "auto", "cab", "flight", "ticket", "airways", "rapido"},
		Category:    "Transportation",
		SubCategory: "Commute",
		Necessity:   "Need",
		Sentiment:   "Neutral",
	},
	{
		Keywords:    []string{"grocery", "groceries", "milk", "vegetable", "fruit", "blinkit", "zepto", "bigbasket", "dmart"},
		Category:    "Groceries",
		SubCategory: "Essentials",
		Necessity:   "Need",
		Sentiment:   "Neutral",
	},
	{
		Keywords:    []string{"netflix", "spotify", "prime", "hulu", "movie", "cinema", "theatre", "game", "steam", "youtube"},
		Category:    "Entertainment",
		SubCategory: "Subscription",
		Necessity:   "Want",
		Sentiment:   "Positive",
	},
	{
		Keywords:    []string{"petrol", "diesel", "fuel", "gas", "pump", "shell", "hpcl", "bpcl"},
		Category:    "Transportation",
		SubCategory: "Fuel",
		Necessity:   "Need",
		Sentiment:   "Neutral",
	},
	{
		Keywords:    []string{"recharge", "wifi", "broadband", "bill", "electricity", "water", "rent", "house", "maintenance"},
		Category:    "Utilities",
		SubCategory: "Bills",
		Necessity:   "Need",
		Sentiment:   "Neutral",
	},
	{
		Keywords:    []string{"medicine", "pharmacy", "doctor", "hospital", "clinic", "apollo", "medplus"},
		Category:    "Healthcare",
		SubCategory: "Health",
		Necessity:   "Need",
		Sentiment:   "Negative",
	},
	{
		Keywords:    []string{"shirt", "shoes", "myntra", "amazon", "flipkart", "shopping", "zara", "h&m", "uniqlo", "nike", "adidas"},
		Category:    "Shopping",
		SubCategory: "Apparel",
		Necessity:   "Want",
		Sentiment:   "Positive",
	},
}

// DefaultRules returns a copy of the built-in rule table, e.g. for writing a
// starter rules file a user can edit.
func DefaultRules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}
