package agent

// OtherKey selects the custom free-text override for industry and function.
const OtherKey = "other"

// Classification is one entry in a fixed label table.
type Classification struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var Industries = []Classification{
	{Key: "retail", Label: "Retail & E-commerce"},
	{Key: "healthcare", Label: "Healthcare"},
	{Key: "finance", Label: "Finance & Banking"},
	{Key: "insurance", Label: "Insurance"},
	{Key: "education", Label: "Education"},
	{Key: "technology", Label: "Technology"},
	{Key: "hospitality", Label: "Hospitality & Travel"},
	{Key: "real-estate", Label: "Real Estate"},
	{Key: "telecom", Label: "Telecommunications"},
	{Key: OtherKey, Label: "Other"},
}

var Functions = []Classification{
	{Key: "customer-support", Label: "Customer Support"},
	{Key: "sales", Label: "Sales"},
	{Key: "lead-qualification", Label: "Lead Qualification"},
	{Key: "appointment-scheduling", Label: "Appointment Scheduling"},
	{Key: "knowledge-base", Label: "Knowledge Base"},
	{Key: "feedback-collection", Label: "Feedback Collection"},
	{Key: "onboarding", Label: "Onboarding"},
	{Key: OtherKey, Label: "Other"},
}

func resolveLabel(table []Classification, key, custom string) string {
	if key == "" || key == OtherKey {
		if custom != "" {
			return custom
		}
		if key == "" {
			return ""
		}
	}
	for _, c := range table {
		if c.Key == key {
			return c.Label
		}
	}
	return key
}
