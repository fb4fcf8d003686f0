package story

// Prompt is the message pair sent to the LLM.
type Prompt struct {
	System string
	User   string
}

// storyTemperature keeps generations varied without losing coherence.
const storyTemperature = 0.8

const systemInstruction = "You are a creative fiction writer. " +
	"Generate a short story based on the user's prompt. " +
	"The story must be exactly three paragraphs long. " +
	"Ensure the narrative is cohesive and has a clear flow between paragraphs."

// BuildStoryPrompt pairs the fixed writing instruction with the user's idea.
func BuildStoryPrompt(userPrompt string) Prompt {
	return Prompt{
		System: systemInstruction,
		User:   userPrompt,
	}
}
