package cfg

// InvalidInputError reports a structurally malformed graph: an entry node
// absent from the node list, or an edge endpoint absent from it. It is
// always wrapped with errors.WithStack at the point of construction so
// callers formatting with %+v get a trace back to the offending NewGraph
// call.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}
