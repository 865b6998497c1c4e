package domain

// Capability names a lookup the language model may ask the relay to run.
type Capability string

const (
	CapTranslateToPaiute  Capability = "translateToPaiute"
	CapGetWordDetails     Capability = "getWordDetails"
	CapSearchEnglishWords Capability = "searchEnglishWords"
	CapSearchSentences    Capability = "searchSentences"
)

// ParamType is the JSON schema type of a capability parameter.
type ParamType string

const ParamString ParamType = "string"

// Param declares one argument of a capability.
type Param struct {
	Name        string
	Type        ParamType
	Required    bool
	Description string
}

// ToolDeclaration is what the model sees for one capability.
type ToolDeclaration struct {
	Name        Capability
	Description string
	Params      []Param
}

// ToolCall is a capability invocation requested by the model.
// Args are kept as received; validation happens at dispatch.
type ToolCall struct {
	Name Capability
	Args map[string]any
}

// ModelRequest is a provider-neutral single-turn request.
// Tools is nil when tool use is suppressed.
type ModelRequest struct {
	Prompt            string
	SystemInstruction string
	Tools             []ToolDeclaration
}

// ReplyPart is one content part of a model candidate.
type ReplyPart struct {
	Text string
	Call *ToolCall
}

// RawReply carries the parts of the first candidate returned by a provider.
type RawReply struct {
	Candidates int
	Parts      []ReplyPart
}

// ModelReply is either direct text or exactly one tool call.
type ModelReply struct {
	Text string
	Call *ToolCall
}

// IsCall reports whether the model asked for a capability.
func (r ModelReply) IsCall() bool {
	return r.Call != nil
}
