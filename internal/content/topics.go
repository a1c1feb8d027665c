package content

// Tip priorities.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
)

type tipDef struct {
	id       string
	priority string
}

var preventionTips = []tipDef{
	{id: "safe_water", priority: PriorityHigh},
	{id: "hand_hygiene", priority: PriorityHigh},
	{id: "food_safety", priority: PriorityMedium},
	{id: "environment", priority: PriorityMedium},
}

var diseaseIDs = []string{"cholera", "typhoid", "hepatitis_a"}

const (
	orsIngredientCount = 3
	orsStepCount       = 6
	warningSignCount   = 6
)

var topicBuilders = map[string]func(*translator, *Topic){
	TopicPrevention: buildPrevention,
	TopicORS:        buildORS,
	TopicWarning:    buildWarning,
	TopicDiseases:   buildDiseases,
}

func buildPrevention(tr *translator, t *Topic) {
	for _, tip := range preventionTips {
		prefix := "prevention." + tip.id
		t.Entries = append(t.Entries, Entry{
			ID:       tip.id,
			Title:    tr.msg(prefix + ".title"),
			Priority: tip.priority,
			Body:     tr.msg(prefix + ".body"),
		})
	}
}

func buildORS(tr *translator, t *Topic) {
	t.Title = tr.msg("ors.title")
	t.Lists = []List{
		{Heading: tr.msg("ors.ingredients.heading"), Items: tr.numbered("ors.ingredients", orsIngredientCount)},
		{Heading: tr.msg("ors.steps.heading"), Items: tr.numbered("ors.steps", orsStepCount)},
	}
	t.Notes = []string{tr.msg("ors.warning")}
}

func buildWarning(tr *translator, t *Topic) {
	t.Title = tr.msg("warning.title")
	t.Lists = []List{{Items: tr.numbered("warning.signs", warningSignCount)}}
	t.Notes = []string{tr.msg("warning.contacts")}
}

func buildDiseases(tr *translator, t *Topic) {
	symptomsLabel := tr.msg("diseases.label.symptoms")
	preventionLabel := tr.msg("diseases.label.prevention")
	for _, id := range diseaseIDs {
		prefix := "diseases." + id
		t.Entries = append(t.Entries, Entry{
			ID:    id,
			Title: tr.msg(prefix + ".name"),
			Facts: []Fact{
				{Label: symptomsLabel, Text: tr.msg(prefix + ".symptoms")},
				{Label: preventionLabel, Text: tr.msg(prefix + ".prevention")},
			},
		})
	}
}
