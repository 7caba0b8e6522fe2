package types

// ResponsePath records which generation path produced an assistant turn
type ResponsePath string

const (
	// ResponsePathStateful is a generation that included prior conversation turns
	ResponsePathStateful ResponsePath = "stateful"
	// ResponsePathStateless is a one-shot generation without history context
	ResponsePathStateless ResponsePath = "stateless"
	// ResponsePathApology is the canned terminal fallback text
	ResponsePathApology ResponsePath = "apology"
)

// IsValid checks if the response path is valid
func (p ResponsePath) IsValid() bool {
	switch p {
	case ResponsePathStateful,
		ResponsePathStateless,
		ResponsePathApology:
		return true
	default:
		return false
	}
}

// String returns the string representation of the response path
func (p ResponsePath) String() string {
	return string(p)
}
