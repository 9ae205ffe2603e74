package editor

import (
	"github.com/rcliao/curate/internal/model"
)

// Template is a canned example record.
type Template struct {
	ID          string
	Name        string
	Format      model.FormatMode
	Messages    []MessageRow
	Instruction string
	Input       string
	Output      string
}

// Templates lists the built-in examples in menu order.
var Templates = []Template{
	{
		ID:     "qa",
		Name:   "Question & Answer",
		Format: model.FormatChat,
		Messages: []MessageRow{
			{Role: model.RoleSystem, Content: "You are a helpful assistant that answers questions accurately and concisely."},
			{Role: model.RoleUser, Content: "What is the capital of France?"},
			{Role: model.RoleAssistant, Content: "The capital of France is Paris."},
		},
	},
	{
		ID:     "conversation",
		Name:   "Multi-turn Conversation",
		Format: model.FormatChat,
		Messages: []MessageRow{
			{Role: model.RoleSystem, Content: "You are a friendly travel assistant."},
			{Role: model.RoleUser, Content: "I'm planning a trip to Japan in spring. Any advice?"},
			{Role: model.RoleAssistant, Content: "Spring is cherry blossom season, so book accommodation early. Kyoto and Tokyo are both beautiful in early April."},
			{Role: model.RoleUser, Content: "How many days should I spend in Kyoto?"},
			{Role: model.RoleAssistant, Content: "Three to four days lets you see the main temples, Arashiyama, and Fushimi Inari without rushing."},
		},
	},
	{
		ID:          "summarization",
		Name:        "Summarization",
		Format:      model.FormatInstruction,
		Instruction: "Summarize the following text in one sentence.",
		Input:       "The city council met on Tuesday to discuss the new park proposal. After two hours of debate, members voted seven to two in favor of funding construction, which is expected to begin next spring and finish within eighteen months.",
		Output:      "The city council voted 7-2 to fund a new park, with construction starting next spring and lasting about eighteen months.",
	},
	{
		ID:          "classification",
		Name:        "Classification",
		Format:      model.FormatInstruction,
		Instruction: "Classify the sentiment of the following review as positive, negative, or neutral.",
		Input:       "The battery lasts all day and the screen is gorgeous, but the speakers are a bit quiet.",
		Output:      "positive",
	},
	{
		ID:          "generation",
		Name:        "Generation",
		Format:      model.FormatInstruction,
		Instruction: "Write a short product description for a stainless steel water bottle that keeps drinks cold for 24 hours.",
		Output:      "Stay refreshed all day with our double-walled stainless steel bottle. It keeps drinks ice-cold for 24 hours, fits in most cup holders, and is built to survive every commute, hike, and gym session.",
	},
}

// LookupTemplate finds a template by id.
func LookupTemplate(id string) (Template, bool) {
	for _, t := range Templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// apply clears f for the template's format and fills it in.
func (t Template) apply(f *Form) {
	f.Clear(t.Format)
	if t.Format == model.FormatChat {
		f.Messages = append([]MessageRow(nil), t.Messages...)
		return
	}
	f.Instruction = t.Instruction
	f.Input = t.Input
	f.Output = t.Output
}
