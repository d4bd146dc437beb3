package logging

// Structured log field names.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldKey        = "key"

	// Run settings.
	FieldFlavor   = "flavor"
	FieldJobs     = "jobs"
	FieldMaxDepth = "max_depth"
	FieldFormat   = "format"

	// Nested extraction.
	FieldBlocks    = "blocks"
	FieldDepth     = "depth"
	FieldRootLine  = "root_line"
	FieldAncestry  = "ancestry"
	FieldRule      = "rule"
	FieldViolation = "violations"

	// Rule listing.
	FieldSeverity    = "severity"
	FieldDescription = "description"
	FieldTags        = "tags"
	FieldNested      = "nested"

	// Version.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
