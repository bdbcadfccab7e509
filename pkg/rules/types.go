package rules

// Kind is the classification of one argument
type Kind int

const (
	Passthrough Kind = iota
	FlagPassthrough
	FileArgument
	DirectoryArgument
	ResponseFileArgument
	Droppable
)

func (k Kind) String() string {
	switch k {
	case Passthrough:
		return "passthrough"
	case FlagPassthrough:
		return "flag-passthrough"
	case FileArgument:
		return "file"
	case DirectoryArgument:
		return "directory"
	case ResponseFileArgument:
		return "response-file"
	case Droppable:
		return "droppable"
	default:
		return "unknown"
	}
}

// IsPath reports whether the classification carries a path to alias
func (k Kind) IsPath() bool {
	return k == FileArgument || k == DirectoryArgument || k == ResponseFileArgument
}

// Classification is the outcome of matching a token against the rule table
type Classification struct {
	// Kind tells the rewriter what to do with the token
	Kind Kind

	// Rule names the rule that matched
	Rule string

	// Token is the original token, emitted as is for passthrough kinds
	Token string

	// Lead holds tokens emitted verbatim before the aliased value
	// (the "-o" of "-o foo" or the "-I" of "-Ifoo")
	Lead []string

	// Value is the path to alias
	Value string

	// Marker is re-affixed in front of the aliased value
	// ("@" for response files, "-Wl,-rpath," for search paths)
	Marker string

	// Absolute asks for the alias to be emitted as an absolute path
	Absolute bool

	// Consumed is the number of tokens used, including the current one
	Consumed int

	// Exhausted marks a path flag with no value left; processing stops
	// after Lead is emitted
	Exhausted bool
}

// Rule matches tokens of an argument vector
type Rule interface {
	// Name identifies the rule in logs and errors
	Name() string

	// Match inspects args[i] (and possibly args[i+1]). It reports false
	// when the rule does not apply.
	Match(args []string, i int) (Classification, bool, error)
}
