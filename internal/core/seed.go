package core

import "time"

// SeedItems returns the fixed starting menu. The slice is freshly allocated
// on each call and every item is stamped with addedAt.
func SeedItems(addedAt time.Time) []MenuItem {
	seed := func(name string, cat Category, price float64, sku, desc string, addons ...AddonSet) MenuItem {
		item := MenuItem{
			Name:        name,
			Category:    cat,
			Price:       price,
			Description: desc,
			SKU:         sku,
			Stock:       StockInStock,
			AddedAt:     addedAt,
		}
		if len(addons) > 0 {
			item.Addons = addons[0]
		}
		return item
	}

	return []MenuItem{
		// Starters
		seed("Egg Rolls (2pcs)", CategoryStarters, 5, "PHI-EGG-001", "Crispy egg rolls filled with seasoned vegetables and served with sweet chili sauce"),
		seed("Loaded Fries", CategoryStarters, 8, "PHI-FRI-001", "Crispy fries topped with melted cheese, bacon bits, sour cream, and chives"),
		seed("Buffalo Shrimp", CategoryStarters, 10, "PHI-SHR-001", "Jumbo shrimp tossed in spicy buffalo sauce, served with ranch dressing"),
		seed("Mozzarella Sticks (6pcs)", CategoryStarters, 7, "PHI-MOZ-001", "Golden-fried mozzarella sticks served with marinara sauce"),
		seed("Onion Rings", CategoryStarters, 6, "PHI-ONI-001", "Thick-cut onion rings, perfectly breaded and fried to golden perfection"),
		seed("Chicken Tenders (4pcs)", CategoryStarters, 9, "PHI-CHK-001", "Crispy chicken tenders served with honey mustard or BBQ sauce"),
		seed("Philly Spring Rolls (3pcs)", CategoryStarters, 8, "PHI-SPR-001", "Crispy spring rolls filled with cheesesteak ingredients"),
		seed("Loaded Nachos", CategoryStarters, 11, "PHI-NAC-001", "Tortilla chips loaded with cheese, jalapeños, sour cream, salsa, and guacamole"),
		seed("Fried Pickles", CategoryStarters, 6.5, "PHI-PIC-001", "Tangy dill pickle spears, breaded and fried, served with ranch"),
		seed("Mac & Cheese Bites (6pcs)", CategoryStarters, 7.5, "PHI-MAC-001", "Creamy mac and cheese breaded and fried to perfection"),
		seed("Pretzel Bites with Cheese", CategoryStarters, 7, "PHI-PRE-001", "Soft pretzel bites served with warm cheese dip"),

		// Salads
		seed("Caesar Salad", CategorySalads, 8, "PHI-SAL-001", "Fresh romaine lettuce, parmesan cheese, croutons, and Caesar dressing", AddonsProtein),
		seed("House Garden Salad", CategorySalads, 7, "PHI-SAL-002", "Mixed greens, tomatoes, cucumbers, red onions, and choice of dressing", AddonsProtein),
		seed("Buffalo Chicken Salad", CategorySalads, 12, "PHI-SAL-003", "Mixed greens topped with crispy buffalo chicken, tomatoes, cucumbers, and ranch dressing"),

		// Cheesesteaks
		seed("Classic Philly Cheesesteak", CategoryCheesesteaks, 12, "PHI-CHE-001", "Thinly sliced ribeye steak, grilled onions, and melted cheese on a hoagie roll", AddonsCheesesteak),
		seed("Chicken Cheesesteak", CategoryCheesesteaks, 11, "PHI-CHE-002", "Grilled chicken breast, sautéed onions, and melted cheese on a hoagie roll", AddonsCheesesteak),
		seed("Pizza Steak", CategoryCheesesteaks, 13, "PHI-CHE-003", "Cheesesteak topped with marinara sauce and mozzarella cheese", AddonsCheesesteak),
		seed("BBQ Bacon Cheesesteak", CategoryCheesesteaks, 14, "PHI-CHE-004", "Steak with BBQ sauce, crispy bacon, and cheddar cheese", AddonsCheesesteak),
		seed("Buffalo Chicken Cheesesteak", CategoryCheesesteaks, 12.5, "PHI-CHE-005", "Spicy buffalo chicken with ranch dressing and melted cheese", AddonsCheesesteak),

		// Pasta
		seed("Chicken Alfredo Pasta", CategoryPasta, 14, "PHI-PAS-001", "Fettuccine pasta with grilled chicken in creamy Alfredo sauce"),
		seed("Shrimp Scampi Pasta", CategoryPasta, 16, "PHI-PAS-002", "Linguine with garlic butter shrimp, white wine sauce, and parsley"),
		seed("Philly Cheesesteak Pasta", CategoryPasta, 15, "PHI-PAS-003", "Penne pasta with cheesesteak meat, peppers, onions, and cheese sauce"),
		seed("Cajun Chicken Pasta", CategoryPasta, 14.5, "PHI-PAS-004", "Penne with blackened chicken, peppers, onions, and Cajun cream sauce"),

		// Wings
		seed("Classic Buffalo Wings (6pc)", CategoryWings, 10, "PHI-WIN-001", "Traditional buffalo wings with celery and ranch or blue cheese"),
		seed("BBQ Wings (6pc)", CategoryWings, 10, "PHI-WIN-002", "Wings tossed in tangy BBQ sauce"),
		seed("Honey Garlic Wings (6pc)", CategoryWings, 10, "PHI-WIN-003", "Sweet and savory honey garlic glazed wings"),
		seed("Lemon Pepper Wings (6pc)", CategoryWings, 10, "PHI-WIN-004", "Crispy wings seasoned with zesty lemon pepper"),

		// Dips
		seed("Ranch Dip", CategoryDips, 1.5, "PHI-DIP-001", "Creamy ranch dipping sauce"),
		seed("Cheese Sauce", CategoryDips, 2, "PHI-DIP-002", "Warm cheese dipping sauce"),
	}
}
