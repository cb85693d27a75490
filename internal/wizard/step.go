package wizard

//go:generate go tool stringer -type=Step,Action -linecomment -output=step_string.go

// Step is one page of the wizard.
type Step int

const (
	_ Step = iota

	StepResolverType // Resolver Type
	StepProtoUpload  // Proto Upload
	StepUpstream     // Upstream
	StepConfig       // Resolver Config
)

// Action moves the wizard between steps.
type Action int

const (
	_ Action = iota

	ActionNext // Next
	ActionBack // Back
)
