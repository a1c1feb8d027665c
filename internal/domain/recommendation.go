package domain

import "slices"

// Escalation is the urgent notice attached to high-risk results.
type Escalation struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// RecommendationSet is the guidance shown for a tier.
type RecommendationSet struct {
	Tier       RiskTier    `json:"tier"`
	Actions    []string    `json:"actions"`
	Escalation *Escalation `json:"escalation,omitempty"`
}

var recommendations = map[RiskTier][]string{
	TierHigh: {
		"Seek immediate medical attention",
		"Drink ORS solution frequently",
		"Switch to boiled/treated water immediately",
		"Avoid solid foods temporarily",
		"Monitor symptoms closely",
	},
	TierMedium: {
		"Monitor symptoms for 24–48 hours",
		"Drink only boiled/treated water",
		"Take ORS if available",
		"Rest and avoid strenuous activities",
		"Seek medical help if symptoms worsen",
	},
	TierLow: {
		"Continue preventive measures",
		"Maintain good hand hygiene",
		"Use only safe water sources",
		"Wash hands frequently with soap",
		"Stay aware of community health alerts",
	},
}

var highEscalation = Escalation{
	Title:   "Immediate action required",
	Message: "Your responses suggest high risk. Please contact a healthcare worker or go to your nearest health center now.",
}

// Recommendations returns the ordered actions for tier. Only the High tier
// carries an escalation notice. An unknown tier yields an empty set.
func Recommendations(tier RiskTier) RecommendationSet {
	set := RecommendationSet{
		Tier:    tier,
		Actions: slices.Clone(recommendations[tier]),
	}
	if tier == TierHigh {
		esc := highEscalation
		set.Escalation = &esc
	}
	return set
}
