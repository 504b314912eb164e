// Package mock provides test double implementations of the AI interfaces.
//
// MockModel implements langchaingo's llms.Model so the agent loop can be tested
// without a chat completion service. Responses are scripted in order and every
// call is recorded together with its resolved call options.
//
// # Usage in Tests
//
//	model := mock.NewMockModel().WithResponses(
//	    mock.ToolCallResponse("", mock.NewToolCall("call_1", "search_knowledge_base", `{"query":"waves"}`)),
//	    mock.TextResponse("**Final Answer:** done"),
//	)
//	provider := mock.NewMockProviderWithModel(model)
//
//	count := model.CallCount()
//	tools := model.Options(0).Tools
//
// # Default Behavior
//
// With no scripted responses and no GenerateContentFunc, MockModel answers
// "mock response: " followed by the text of the last human message.
package mock
