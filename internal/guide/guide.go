// Package guide serves the static pregnancy reference content: week by week
// development notes, milestones, exercises and nutrition advice.
package guide

import "fmt"

const (
	FirstWeek = 1
	LastWeek  = 40
)

// Week is the development guide for one gestational week.
type Week struct {
	Week           int       `json:"week"`
	Trimester      int       `json:"trimester"`
	Title          string    `json:"title"`
	Size           string    `json:"size"`
	SizeComparison string    `json:"size_comparison"`
	Weight         string    `json:"weight"`
	Highlights     []string  `json:"highlights"`
	Details        string    `json:"details"`
	WhatToExpect   []string  `json:"what_to_expect"`
	Tips           []string  `json:"tips"`
	Exercises      []string  `json:"exercises"`
	Nutrition      Nutrition `json:"nutrition"`
	WeightGain     string    `json:"recommended_weight_gain"`
}

type Nutrition struct {
	FocusNutrients   []string `json:"focus_nutrients"`
	RecommendedFoods []string `json:"recommended_foods"`
	FoodsToAvoid     []string `json:"foods_to_avoid"`
	Tips             []string `json:"tips"`
}

// Milestone groups notable developments by trimester.
type Milestone struct {
	Trimester int      `json:"trimester"`
	Name      string   `json:"name"`
	Events    []string `json:"events"`
}

// TrimesterOf maps a week to 1, 2 or 3.
func TrimesterOf(week int) int {
	switch {
	case week <= 13:
		return 1
	case week <= 26:
		return 2
	default:
		return 3
	}
}

var sizes = map[int]string{
	4: "poppy seed", 5: "sesame seed", 6: "lentil", 7: "blueberry",
	8: "raspberry", 9: "grape", 10: "kumquat", 11: "fig", 12: "lime",
	13: "lemon", 14: "orange", 15: "apple", 16: "avocado", 17: "pomegranate",
	18: "sweet potato", 19: "mango", 20: "banana", 21: "carrot", 22: "coconut",
	23: "grapefruit", 24: "corn", 25: "cauliflower", 26: "lettuce head",
	27: "rutabaga", 28: "eggplant", 29: "butternut squash", 30: "cabbage",
	31: "coconut", 32: "jicama", 33: "pineapple", 34: "cantaloupe",
	35: "honeydew melon", 36: "romaine lettuce", 37: "swiss chard", 38: "leek",
	39: "watermelon", 40: "small pumpkin",
}

// SizeComparison names a familiar object the baby is about as big as.
func SizeComparison(week int) string {
	if s, ok := sizes[week]; ok {
		return s
	}
	return "size varies"
}

var (
	earlyTips = []string{
		"Take prenatal vitamins",
		"Maintain a healthy diet",
		"Track your cycle",
		"Avoid alcohol and smoking",
	}
	laterTips = []string{
		"Monitor fetal movements",
		"Stay active as approved by doctor",
		"Maintain healthy diet",
		"Get adequate rest",
	}
)

// early holds the hand-written entries; later weeks are generated.
var early = map[int]Week{
	1: {
		Title: "Week 1: Preparing for Conception", Size: "Not visible yet",
		Highlights: []string{"Your body is preparing for possible conception", "Egg is maturing in the ovary", "Uterine lining is thickening"},
		Details:    "This is the week of your period, and your body is preparing for the possibility of conception.",
		WhatToExpect: []string{"Menstruation", "Hormonal changes", "Egg maturation"},
	},
	2: {
		Title: "Week 2: Conception Week", Size: "Too small to measure",
		Highlights:   []string{"Ovulation occurs", "Egg may be fertilized", "Journey through fallopian tube begins"},
		Details:      "Ovulation occurs and, if an egg is fertilized, it starts its journey through the fallopian tube.",
		WhatToExpect: []string{"Ovulation", "Possible fertilization", "Hormonal changes"},
	},
	3: {
		Title: "Week 3: Implantation", Size: "0.1 mm",
		Highlights:   []string{"Fertilized egg implants in uterus", "Placenta begins to form", "Pregnancy hormone (hCG) production starts"},
		Details:      "The fertilized egg implants itself in the uterine wall and the placenta begins to form.",
		WhatToExpect: []string{"Implantation", "Hormonal changes", "Possible spotting"},
	},
	4: {
		Title: "Week 4: Early Development", Size: "0.4 mm",
		Highlights:   []string{"Amniotic sac forms", "Basic structures begin to develop", "Positive pregnancy test possible"},
		Details:      "The amniotic sac forms around the embryo. Structures that become the placenta and umbilical cord are developing.",
		WhatToExpect: []string{"Early development", "Hormonal changes", "Possible morning sickness"},
	},
	5: {
		Title: "Week 5: Heart Development", Size: "2 mm",
		Highlights:   []string{"Heart begins to beat", "Neural tube forms", "Basic facial features begin to form"},
		Details:      "The heart begins to beat and the neural tube, which becomes the brain and spinal cord, starts to develop.",
		WhatToExpect: []string{"Heart development", "Hormonal changes", "Possible morning sickness"},
	},
	6: {
		Title: "Week 6: Early Organ Development", Size: "6 mm",
		Highlights:   []string{"Brain and head grow rapidly", "Arm and leg buds appear", "Heart beats 100-160 times per minute"},
		Details:      "The brain and head grow rapidly and arm and leg buds begin to form.",
		WhatToExpect: []string{"Early organ development", "Hormonal changes", "Possible morning sickness"},
	},
	7: {
		Title: "Week 7: Continued Growth", Size: "13 mm",
		Highlights:   []string{"Arms and legs growing longer", "Digestive system developing", "Face features becoming more defined"},
		Details:      "Arms and legs are growing longer and small hands and feet are forming.",
		WhatToExpect: []string{"Continued growth", "Hormonal changes", "Possible morning sickness"},
	},
	8: {
		Title: "Week 8: Major Development", Size: "16 mm",
		Highlights:   []string{"All major organs formed", "Bones begin to form", "Movement begins (though not felt yet)"},
		Details:      "All major organs and structures have formed and the first small movements begin.",
		WhatToExpect: []string{"Major development", "Hormonal changes", "Possible morning sickness"},
	},
	9: {
		Title: "Week 9: Fetus Stage Begins", Size: "23 mm",
		Highlights:   []string{"Now called a fetus", "External genitals develop", "Fingers and toes are distinct"},
		Details:      "The baby is now called a fetus. Fingers and toes are more distinct.",
		WhatToExpect: []string{"Fetus stage begins", "Hormonal changes", "Possible morning sickness"},
	},
	10: {
		Title: "Week 10: Rapid Growth", Size: "31 mm",
		Highlights:   []string{"Vital organs functioning", "Fingernails begin to form", "More defined facial features"},
		Details:      "All vital organs are now functioning and facial features become more defined.",
		WhatToExpect: []string{"Rapid growth", "Hormonal changes", "Possible morning sickness"},
	},
	11: {
		Title: "Week 11: Growing and Developing", Size: "4.1 cm", Weight: "7 grams",
		Highlights:   []string{"Head makes up about half of body length", "Tooth buds are forming", "Nail beds are developing", "External genitals are developing"},
		Details:      "Growth is rapid and the face is well formed.",
		WhatToExpect: []string{"Morning sickness may be improving", "Increased energy levels", "Visible bump may start forming"},
		Tips:         []string{"Start pregnancy exercises if approved by doctor", "Continue prenatal vitamins", "Stay hydrated", "Plan for prenatal testing"},
	},
	12: {
		Title: "Week 12: End of First Trimester", Size: "5.4 cm", Weight: "14 grams",
		Highlights:   []string{"Reflexes are developing", "Can make sucking movements", "Intestines move into abdomen", "Brain development accelerates"},
		Details:      "Body systems are becoming more complex and the digestive system practices contractions.",
		WhatToExpect: []string{"End of first trimester", "Reduced risk of miscarriage", "Increased appetite"},
		Tips:         []string{"Schedule second-trimester checkups", "Consider announcing pregnancy", "Continue healthy eating habits", "Start planning maternity leave"},
	},
}

// WeekGuide returns the guide for week. ok is false outside 1..40.
func WeekGuide(week int) (w Week, ok bool) {
	if week < FirstWeek || week > LastWeek {
		return Week{}, false
	}

	if e, found := early[week]; found {
		w = e
		if w.Weight == "" {
			w.Weight = "N/A"
		}
		if w.Tips == nil {
			w.Tips = earlyTips
		}
		w.SizeComparison = "N/A"
		if week >= 4 {
			w.SizeComparison = SizeComparison(week)
		}
	} else {
		w = Week{
			Title:          fmt.Sprintf("Week %d", week),
			Size:           fmt.Sprintf("%.1f cm (approximate)", float64(week)*2.5),
			SizeComparison: SizeComparison(week),
			Weight:         fmt.Sprintf("%d grams (approximate)", max(7, (week-11)*28)),
			Highlights: []string{
				"Baby continues to grow and develop",
				"Systems becoming more mature",
				"Movement becoming stronger",
			},
			Details: fmt.Sprintf("Week %d marks continued growth. Organs and systems are becoming more sophisticated.", week),
			WhatToExpect: []string{
				"Regular prenatal checkups",
				"Continued weight gain",
				"Fetal movement (after week 16)",
			},
			Tips: laterTips,
		}
	}

	w.Week = week
	w.Trimester = TrimesterOf(week)
	w.Exercises = Exercises(week)
	w.Nutrition = NutritionFor(week)
	w.WeightGain = WeightGain(week)
	return w, true
}

// Exercises lists activities suited to the trimester of week.
func Exercises(week int) []string {
	switch TrimesterOf(week) {
	case 1:
		return []string{"Walking (20-30 minutes daily)", "Prenatal yoga (with instructor approval)", "Kegel exercises", "Light stretching"}
	case 2:
		return []string{"Swimming", "Stationary cycling", "Low-impact aerobics", "Prenatal yoga", "Walking (30 minutes daily)", "Kegel exercises"}
	default:
		return []string{"Walking (as tolerated)", "Swimming", "Prenatal yoga (modified)", "Pelvic tilts", "Kegel exercises", "Gentle stretching"}
	}
}

var generalNutritionTips = []string{
	"Take prenatal vitamins daily",
	"Stay hydrated (8-10 glasses of water)",
	"Eat plenty of fruits and vegetables",
	"Include protein-rich foods",
	"Choose whole grains",
}

// NutritionFor returns the dietary focus for the trimester of week.
func NutritionFor(week int) Nutrition {
	var n Nutrition
	var extra []string

	switch TrimesterOf(week) {
	case 1:
		n.FocusNutrients = []string{"Folic acid", "Iron", "Vitamin B6"}
		n.RecommendedFoods = []string{"Leafy greens", "Citrus fruits", "Lean meats", "Whole grains"}
		n.FoodsToAvoid = []string{"Raw fish", "Unpasteurized dairy", "Raw eggs", "Excess caffeine"}
		extra = []string{"Eat small, frequent meals to manage nausea", "Consider ginger for morning sickness"}
	case 2:
		n.FocusNutrients = []string{"Calcium", "Vitamin D", "Omega-3"}
		n.RecommendedFoods = []string{"Dairy products", "Fatty fish (cooked)", "Nuts and seeds", "Legumes"}
		n.FoodsToAvoid = []string{"Raw fish", "Unpasteurized foods", "High-mercury fish"}
		extra = []string{"Increase caloric intake by ~300 calories", "Focus on nutrient-dense foods"}
	default:
		n.FocusNutrients = []string{"Iron", "Calcium", "Protein"}
		n.RecommendedFoods = []string{"Iron-rich foods", "High-fiber foods", "Protein sources", "Complex carbohydrates"}
		n.FoodsToAvoid = []string{"Raw fish", "Unpasteurized foods", "Excess sugar"}
		extra = []string{"Eat smaller, more frequent meals", "Choose foods rich in fiber to prevent constipation"}
	}

	n.Tips = append(append([]string{}, generalNutritionTips...), extra...)
	return n
}

// WeightGain is the recommended maternal weight gain for week.
func WeightGain(week int) string {
	switch TrimesterOf(week) {
	case 1:
		return "1-4.5 pounds total"
	case 2:
		return "1-2 pounds per week"
	default:
		return "0.5-1 pound per week"
	}
}

var milestones = []Milestone{
	{Trimester: 1, Name: "First Trimester", Events: []string{
		"Heart begins beating (Week 6-7)",
		"Brain and spinal cord form (Week 7)",
		"Limbs develop (Week 8)",
		"Basic facial features form (Week 9)",
		"External genitals begin forming (Week 11)",
		"Fingernails and toenails form (Week 12)",
	}},
	{Trimester: 2, Name: "Second Trimester", Events: []string{
		"Gender can be determined (Week 16-20)",
		"Movement can be felt (Week 18-20)",
		"Fingerprints form (Week 20)",
		"Hair begins to grow (Week 22)",
		"Hearing develops (Week 23)",
		"Regular sleep cycles begin (Week 24)",
		"Lungs begin to develop (Week 26)",
	}},
	{Trimester: 3, Name: "Third Trimester", Events: []string{
		"Eyes can open (Week 28)",
		"Brain grows rapidly (Week 29-32)",
		"Bones fully develop (Week 32-34)",
		"Lungs mature (Week 35-36)",
		"Baby drops into birth position (Week 36-38)",
		"Full term development (Week 39-40)",
	}},
}

// Milestones returns all trimesters in order.
func Milestones() []Milestone {
	return milestones
}

// MilestonesFor returns the milestones of one trimester.
func MilestonesFor(trimester int) (Milestone, bool) {
	for _, m := range milestones {
		if m.Trimester == trimester {
			return m, true
		}
	}
	return Milestone{}, false
}
