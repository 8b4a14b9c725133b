// Package support defines the customer-support crew: its two agents, its two
// tasks, and the documentation page the support agent may consult.
package support

import (
	"supportcrew/pkg/agent"
	"supportcrew/pkg/crew"
	"supportcrew/pkg/tools"
)

// DocsURL is the page the scrape tool reads for context.
const DocsURL = "https://docs.crewai.com/how-to/Creating-a-Crew-and-kick-it-off/"

// NewSupportAgent builds the Senior Support Representative. Delegation stays
// off so the representative answers for themselves.
func NewSupportAgent(verbose bool) agent.Agent {
	return agent.Agent{
		Role: "Senior Support Representative",
		Goal: "Be the most friendly and helpful " +
			"support representative in your team",
		Backstory: "You work at crewAI (https://crewai.com) and " +
			"are now working on providing " +
			"support to {customer}, a super important customer " +
			"for your company. " +
			"You need to make sure that you provide the best support! " +
			"Make sure to provide full complete answers, " +
			"and make no assumptions.",
		AllowDelegation: false,
		Verbose:         verbose,
	}
}

// NewQualityAssuranceAgent builds the QA reviewer. Delegation must be on so
// the reviewer can push follow-up questions back to the representative.
func NewQualityAssuranceAgent(verbose bool) agent.Agent {
	return agent.Agent{
		Role: "Support Quality Assurance Specialist",
		Goal: "Get recognition for providing the " +
			"best support quality assurance in your team",
		Backstory: "You work at crewAI (https://crewai.com) and " +
			"are now working with your team " +
			"on a request from {customer} ensuring that " +
			"the support representative is " +
			"providing the best support possible.\n" +
			"You need to make sure that the support representative " +
			"is providing full " +
			"complete answers, and make no assumptions.",
		AllowDelegation: true,
		Verbose:         verbose,
	}
}

// NewInquiryResolutionTask is the first task: draft a complete answer to the
// customer's inquiry, with the given tools available.
func NewInquiryResolutionTask(a agent.Agent, toolset []tools.Tool) crew.Task {
	return crew.Task{
		Description: "{customer} just reached out with a super important ask:\n" +
			"{inquiry}\n\n" +
			"{person} from {customer} is the one that reached out. " +
			"Make sure to use everything you know " +
			"to provide the best support possible. " +
			"You must strive to provide a complete " +
			"and accurate response to the customer's inquiry.",
		ExpectedOutput: "A detailed, informative response to the " +
			"customer's inquiry that addresses " +
			"all aspects of their question.\n" +
			"The response should include references " +
			"to everything you used to find the answer, " +
			"including external data or solutions. " +
			"Ensure the answer is complete, " +
			"leaving no questions unanswered, and maintain a helpful and friendly " +
			"tone throughout.",
		Agent: a,
		Tools: toolset,
	}
}

// NewQualityAssuranceReviewTask is the second task: review and finalize the
// draft. The reviewer gets no tools; delegation covers its follow-ups.
func NewQualityAssuranceReviewTask(a agent.Agent) crew.Task {
	return crew.Task{
		Description: "Review the response drafted by the Senior Support Representative for {customer}'s inquiry. " +
			"Ensure that the answer is comprehensive, accurate, and adheres to the " +
			"high-quality standards expected for customer support.\n" +
			"Verify that all parts of the customer's inquiry " +
			"have been addressed " +
			"thoroughly, with a helpful and friendly tone.\n" +
			"Check for references and sources used to " +
			"find the information, " +
			"ensuring the response is well-supported and " +
			"leaves no questions unanswered.",
		ExpectedOutput: "A final, detailed, and informative response " +
			"ready to be sent to the customer.\n" +
			"This response should fully address the " +
			"customer's inquiry, incorporating all " +
			"relevant feedback and improvements.\n" +
			"Don't be too formal, we are a chill and cool company " +
			"but maintain a professional and friendly tone throughout.",
		Agent: a,
	}
}

// DefaultInputs are the run inputs the command uses when no flags are given.
func DefaultInputs() crew.Inputs {
	return crew.Inputs{
		"customer": "DeepLearningAI",
		"person":   "Andrew Ng",
		"inquiry": "I need help with setting up a Crew " +
			"and kicking it off, specifically " +
			"how can I add memory to my crew? " +
			"Can you provide guidance?",
	}
}
