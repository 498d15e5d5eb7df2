package catalog

import "karesave-backend/pkg/money"

// brandSlugs maps URL slugs used by the brand pages to brand labels.
var brandSlugs = map[string]string{
	"happy-raithu": "Happy Raithu",
	"gracious-gas": "Gracious Gas",
	"sbl-pots":     "SBL Pots",
	"clayer":       "Clayer",
	"neem-brush":   "Neem Brush",
}

// SeedProducts returns the storefront's built-in product list. Callers get
// a fresh copy each time.
func SeedProducts() []Product {
	return []Product{
		{
			ID:             "hr-001",
			Name:           "Premium Vermicompost",
			Description:    "Organic vermicompost made from kitchen waste. Rich in nutrients, perfect for all plants.",
			Price:          money.Rupees(60),
			OriginalPrice:  money.Rupees(399),
			Brand:          "Happy Raithu",
			Category:       "Fertilizer",
			Image:          "/assets/vermicompost.jpg",
			Stock:          25,
			IsEcoFriendly:  true,
			Sustainability: "High",
			Features:       []string{"100% Organic", "Rich in NPK", "Improves Soil Health", "Chemical-free"},
			Specifications: map[string]string{
				"Weight":         "5 KG",
				"pH Level":       "6.5-7.5",
				"Moisture":       "<20%",
				"Organic Carbon": ">12%",
			},
		},
		{
			ID:             "gg-001",
			Name:           "Home Biogas Unit 2.0",
			Description:    "Compact biogas unit for homes. Convert kitchen waste to cooking gas and liquid fertilizer.",
			Price:          money.Rupees(100),
			OriginalPrice:  money.Rupees(12999),
			Brand:          "Gracious Gas",
			Category:       "Energy",
			Image:          "/assets/biogas-unit.jpg",
			Stock:          8,
			IsEcoFriendly:  true,
			Sustainability: "Very High",
			Features:       []string{"Portable Design", "Easy Installation", "Dual Output", "1-2 Hours Cooking Gas/Day"},
			Specifications: map[string]string{
				"Capacity":   "20L/Day waste",
				"Gas Output": "1-2 Hours",
				"Size":       "60cm x 40cm x 35cm",
				"Weight":     "15 KG",
			},
		},
		{
			ID:             "sbl-001",
			Name:           "Eco Planter Set (3 sizes)",
			Description:    "Set of 3 biodegradable pots made from coconut coir and natural fibers.",
			Price:          money.Rupees(120),
			OriginalPrice:  money.Rupees(599),
			Brand:          "SBL Pots",
			Category:       "Gardening",
			Image:          "/assets/eco-pots.jpg",
			Stock:          32,
			IsEcoFriendly:  true,
			Sustainability: "High",
			Features:       []string{"Biodegradable", "Excellent Drainage", "Root-friendly", "Set of 3"},
			Specifications: map[string]string{
				"Material":    "Coconut Coir + Natural Fiber",
				"Sizes":       `Small (6"), Medium (8"), Large (10")`,
				"Degradation": "6-12 months in soil",
				"Weight":      "500g (set)",
			},
		},
		{
			ID:             "cl-001",
			Name:           "Natural Clay Water Bottle",
			Description:    "Handcrafted clay water bottle that keeps water naturally cool and adds minerals.",
			Price:          money.Rupees(260),
			OriginalPrice:  money.Rupees(549),
			Brand:          "Clayer",
			Category:       "Drinkware",
			Image:          "/assets/clay-bottle.jpg",
			Stock:          22,
			IsEcoFriendly:  true,
			Sustainability: "High",
			Features:       []string{"Natural Cooling", "Mineral Enhancement", "Eco-friendly", "Handcrafted"},
			Specifications: map[string]string{
				"Capacity": "750 ML",
				"Material": "100% Natural Clay",
				"Cooling":  "Natural evaporation",
				"Care":     "Hand wash only",
			},
		},
		{
			ID:             "nb-002",
			Name:           "Kids Neem Toothbrush",
			Description:    "Colorful neem wood toothbrushes designed specifically for children.",
			Price:          money.Rupees(23),
			Brand:          "Neem Brush",
			Category:       "Personal Care",
			Image:          "/assets/neem-brushes.jpg",
			Stock:          28,
			IsEcoFriendly:  true,
			Sustainability: "Very High",
			Features:       []string{"Child-safe", "Colorful Design", "Soft Bristles", "Fun Learning"},
			Specifications: map[string]string{
				"Age Group":     "3-12 years",
				"Handle Length": "15cm",
				"Colors":        "Red, Blue, Green, Yellow",
				"Pack Size":     "2 pieces",
			},
		},
	}
}
