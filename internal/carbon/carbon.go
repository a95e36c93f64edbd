// Package carbon maps waste classifications to synthetic carbon impact scores
// (kg CO2e) and fixed reduction suggestions. The scores are lookup values, not
// independently computed from emissions data.
package carbon

// Category is the closed set of waste classifications the classifier can assign.
type Category string

const (
	Recyclable    Category = "Recyclable"
	Hazardous     Category = "Hazardous"
	Organic       Category = "Organic"
	NonRecyclable Category = "Non-Recyclable"
	Industrial    Category = "Industrial"
)

// DefaultImpact is applied to classifications outside the known set, e.g. when
// the classifier returns "Unknown".
const DefaultImpact = 1.0

// Footprint is the carbon impact of one classified waste item.
type Footprint struct {
	Impact      float64  `json:"impact"`
	Suggestions []string `json:"suggestions"`
}

// ForClassification returns the carbon footprint for a classification string.
// Unrecognized classifications get DefaultImpact and no suggestions.
func ForClassification(classification string) Footprint {
	switch Category(classification) {
	case Recyclable:
		return Footprint{
			Impact: 0.5,
			Suggestions: []string{
				"Clean and separate materials properly before recycling",
				"Choose products with minimal packaging",
				"Reuse containers when possible",
			},
		}
	case Hazardous:
		return Footprint{
			Impact: 2.0,
			Suggestions: []string{
				"Use eco-friendly alternatives to hazardous products",
				"Properly dispose of hazardous waste at designated facilities",
				"Reduce usage of products containing harmful chemicals",
			},
		}
	case Organic:
		return Footprint{
			Impact: 0.8,
			Suggestions: []string{
				"Start composting at home",
				"Reduce food waste through meal planning",
				"Use organic waste for garden fertilizer",
			},
		}
	case NonRecyclable:
		return Footprint{
			Impact: 1.5,
			Suggestions: []string{
				"Choose recyclable alternatives when available",
				"Avoid single-use products",
				"Support brands that use sustainable packaging",
			},
		}
	case Industrial:
		return Footprint{
			Impact: 3.0,
			Suggestions: []string{
				"Implement waste reduction strategies",
				"Choose suppliers with sustainable practices",
				"Invest in recycling equipment",
			},
		}
	default:
		return Footprint{Impact: DefaultImpact, Suggestions: []string{}}
	}
}

// Categories returns the known classification categories.
func Categories() []Category {
	return []Category{Recyclable, Hazardous, Organic, NonRecyclable, Industrial}
}
