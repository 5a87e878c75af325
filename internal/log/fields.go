package log

// Canonical field names for structured logging.
const (
	FieldComponent    = "component"
	FieldCommand      = "cmd"
	FieldInvocationID = "invocation_id"
	FieldPath         = "path"
	FieldPruned       = "pruned"
)
