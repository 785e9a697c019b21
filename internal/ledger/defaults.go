package ledger

// DefaultTaxonomy returns the built-in household account hierarchy used when
// no data file exists yet or the existing one cannot be read.
func DefaultTaxonomy() *Taxonomy {
	x := NewTaxonomy()
	add := func(parent string, leaves ...string) {
		x.AddParent(parent)
		for _, l := range leaves {
			x.AddSubAccount(parent, l)
		}
	}

	// Expense categories.
	add("Housing", "Rent", "Utilities", "Internet", "Furniture/essentials")
	add("Food", "Groceries", "Restaurants", "Dining out", "Coffee", "Snacks")
	add("Transportation", "Public transit pass", "Gas", "Car insurance & maintenance", "Rideshare", "Bike/scooter")
	add("Education", "Tuition & fees", "Textbooks", "Supplies")
	add("Personal/Lifestyle", "Clothing", "Subscription", "Entertainment", "Nights out", "Hobbies", "Sports/gym")
	add("Health & Wellness", "Health insurance / school plan", "Medication / pharmacy", "Fitness needs", "Haircut")
	add("Savings & Debt", "Emergency fund", "Credit card payments")

	// Income categories.
	add("Employment", "Part-time jobs", "Side Hustle")
	add("Family Support", "Allowance", "Gifts", "Family Help")
	add("Loans & Aid", "Student loans", "Bursaries/Government aid", "Scholarships")
	add("Other/Bonus", "Investment income", "Refunds / rebates", "Selling items")

	return x
}

// DefaultPaymentMethods returns the built-in payment method list.
func DefaultPaymentMethods() []string {
	return []string{"Debit Card", "Credit Card", "Cash", "Investments", "Bank Transfer", "Mobile Payment"}
}
