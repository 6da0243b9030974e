package services

type PromptBuilder struct {
	maxChars int
}

func NewPromptBuilder(maxChars int) *PromptBuilder {
	return &PromptBuilder{maxChars: maxChars}
}

const profileInstructions = "Extract and summarize the following PDF content. Provide a detailed profile summary that includes " +
	"the person's name, basic details, work experience, and a list of skills. Additionally, compute a profile " +
	"score out of 100. Respond ONLY with a valid, complete JSON object with the following keys: " +
	"'profile', 'experience', 'skills', and 'profile_score'. Format the output as a raw JSON object without markdown " +
	"formatting, explanation, or any other text. The response must start with '{' and end with '}'."

// BuildProfilePrompt embeds the document text into the strict-JSON profile request.
func (pb *PromptBuilder) BuildProfilePrompt(text string) string {
	return profileInstructions + "\n\nPDF Content:\n" + TruncateChars(text, pb.maxChars)
}
