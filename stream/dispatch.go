package stream

// buildRoutes is the single place upstream event types are registered. Any
// type string not listed here routes to the unknown handler.
func (m *Mux) buildRoutes() map[string]registration {
	return map[string]registration{
		// lifecycle
		"response.created":     {CategoryLifecycle, m.responseCreated},
		"response.queued":      {CategoryLifecycle, m.lifecyclePassthrough("response_queued")},
		"response.in_progress": {CategoryLifecycle, m.lifecyclePassthrough("response_in_progress")},
		"response.completed":   {CategoryLifecycle, m.responseCompleted},
		"response.incomplete":  {CategoryLifecycle, m.lifecyclePassthrough("response_incomplete")},
		"response.failed":      {CategoryLifecycle, m.lifecyclePassthrough("response_failed")},
		"error":                {CategoryLifecycle, m.responseError},

		// text
		"response.output_text.delta":            {CategoryText, accumulateDelta("text_delta", fullText)},
		"response.output_text.done":             {CategoryText, accumulateDone("text_done", "text", fullText)},
		"response.output_text.annotation.added": {CategoryText, structuralPassthrough},

		// reasoning
		"response.reasoning_text.delta":         {CategoryReasoning, accumulateDelta("reasoning_delta", reasoning)},
		"response.reasoning_text.done":          {CategoryReasoning, accumulateDone("reasoning_done", "reasoning", reasoning)},
		"response.reasoning_summary_text.delta": {CategoryReasoning, accumulateDelta("reasoning_summary_delta", reasoningSummary)},
		"response.reasoning_summary_text.done":  {CategoryReasoning, accumulateDone("reasoning_summary_done", "reasoning_summary", reasoningSummary)},
		"response.reasoning_summary_part.added": {CategoryReasoning, structuralPassthrough},
		"response.reasoning_summary_part.done":  {CategoryReasoning, structuralPassthrough},

		// refusal
		"response.refusal.delta": {CategoryRefusal, accumulateDelta("refusal_delta", refusal)},
		"response.refusal.done":  {CategoryRefusal, accumulateDone("refusal_done", "refusal", refusal)},

		// audio
		"response.audio.delta":            {CategoryAudio, accumulateDelta("audio_delta", audio)},
		"response.audio.done":             {CategoryAudio, accumulateDone("audio_done", "audio", audio)},
		"response.audio.transcript.delta": {CategoryAudio, accumulateDelta("audio_transcript_delta", audioTranscript)},
		"response.audio.transcript.done":  {CategoryAudio, accumulateDone("audio_transcript_done", "transcript", audioTranscript)},

		// function calling
		"response.function_call_arguments.delta": {CategoryToolCall, toolCallDelta("function_call_delta", ToolFunction)},
		"response.function_call_arguments.done":  {CategoryToolCall, toolCallDone("function_call_done", "arguments")},

		// code interpreter
		"response.code_interpreter_call_code.delta":    {CategoryToolCall, codeDelta("code_interpreter_code_delta")},
		"response.code_interpreter_call_code.done":     {CategoryToolCall, codeDone("code_interpreter_code_done")},
		"response.code_interpreter_call.in_progress":   {CategoryToolCall, toolProgress},
		"response.code_interpreter_call.interpreting":  {CategoryToolCall, toolProgress},
		"response.code_interpreter_call.completed":     {CategoryToolCall, toolCallCompleted("code_interpreter_completed", "results", "outputs")},

		// file search
		"response.file_search_call.in_progress": {CategoryToolCall, toolProgress},
		"response.file_search_call.searching":   {CategoryToolCall, toolProgress},
		"response.file_search_call.completed":   {CategoryToolCall, toolCallCompleted("file_search_completed", "results")},

		// web search
		"response.web_search_call.in_progress": {CategoryToolCall, toolProgress},
		"response.web_search_call.searching":   {CategoryToolCall, toolProgress},
		"response.web_search_call.completed":   {CategoryToolCall, toolCallCompleted("web_search_completed", "results")},

		// custom tools
		"response.custom_tool_call_input.delta": {CategoryToolCall, toolCallDelta("custom_tool_call_delta", ToolCustom)},
		"response.custom_tool_call_input.done":  {CategoryToolCall, toolCallDone("custom_tool_call_done", "input")},

		// MCP
		"response.mcp_call_arguments.delta":  {CategoryMCP, toolCallDelta("mcp_call_delta", ToolMCP)},
		"response.mcp_call_arguments.done":   {CategoryMCP, toolCallDone("mcp_call_done", "arguments")},
		"response.mcp_call.in_progress":      {CategoryMCP, toolProgress},
		"response.mcp_call.completed":        {CategoryMCP, toolCallCompleted("mcp_call_completed", "output")},
		"response.mcp_call.failed":           {CategoryMCP, mcpCallFailed},
		"response.mcp_list_tools.in_progress": {CategoryMCP, mcpListToolsInProgress},
		"response.mcp_list_tools.completed":   {CategoryMCP, mcpListToolsCompleted},
		"response.mcp_list_tools.failed":      {CategoryMCP, mcpListToolsFailed},

		// image generation
		"response.image_generation_call.in_progress":   {CategoryImage, toolProgress},
		"response.image_generation_call.generating":    {CategoryImage, toolProgress},
		"response.image_generation_call.partial_image": {CategoryImage, imagePartial},
		"response.image_generation_call.completed":     {CategoryImage, imageCompleted},

		// computer use
		"response.computer_call.action.delta":       {CategoryComputer, computerAction("computer_call_action_delta")},
		"response.computer_call.action.done":        {CategoryComputer, computerAction("computer_call_action_done")},
		"response.computer_call_output_item.added":  {CategoryComputer, computerOutputItem},
		"response.computer_call_output_item.done":   {CategoryComputer, computerOutputItem},
		"response.computer_call.completed":          {CategoryComputer, toolCallCompleted("computer_call_completed", "output")},

		// structural bookkeeping
		"response.output_item.added":  {CategoryStructural, structuralPassthrough},
		"response.output_item.done":   {CategoryStructural, structuralPassthrough},
		"response.content_part.added": {CategoryStructural, structuralPassthrough},
		"response.content_part.done":  {CategoryStructural, structuralPassthrough},
	}
}
