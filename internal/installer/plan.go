package installer

// StepKind selects how a step is executed.
type StepKind int

const (
	// StepPassthrough runs a command attached to the terminal.
	StepPassthrough StepKind = iota
	// StepStream runs a command and relays its output line by line.
	StepStream
	// StepCopy copies a bundled stub into the project.
	StepCopy
)

// String implements fmt.Stringer.
func (k StepKind) String() string {
	switch k {
	case StepPassthrough:
		return "passthrough"
	case StepStream:
		return "stream"
	case StepCopy:
		return "copy"
	default:
		return "unknown"
	}
}

// Step names.
const (
	StepLlum    = "llum"
	StepRequire = "require"
	StepConfig  = "config"
	StepPublish = "publish"
)

// artisan publish commands.
const (
	artisan              = "artisan"
	packagePublishAction = "adminlte-laravel:publish"
	vendorPublishAction  = "vendor:publish"
)

// Step is a single action of an install plan.
type Step struct {
	Name string
	Kind StepKind

	// Command and Args are set for StepPassthrough and StepStream.
	Command string
	Args    []string

	// Source and Destination are set for StepCopy.
	Source      string
	Destination string
}

// Tools holds the resolved external commands and locations a plan refers to.
type Tools struct {
	// Llum is the llum executable.
	Llum string
	// Composer is the composer command line (e.g. [php composer.phar]).
	Composer []string
	// PHP runs artisan.
	PHP string
	// Package is the composer package identifier.
	Package string
	// Constraint is an optional composer version constraint.
	Constraint string
	// PublishTag is the vendor:publish tag.
	PublishTag string
	// Stub is the bundled config stub name.
	Stub string
	// AppConfig is the destination of the stub, <cwd>/config/app.php.
	AppConfig string
}

// Plan returns the steps for opts. It has no side effects.
func Plan(opts Options, tools Tools) []Step {
	if !opts.SkipExternalTool {
		return []Step{llumStep(opts, tools)}
	}

	return []Step{
		requireStep(opts, tools),
		{
			Name:        StepConfig,
			Kind:        StepCopy,
			Source:      tools.Stub,
			Destination: tools.AppConfig,
		},
		publishStep(opts, tools),
	}
}

func llumStep(opts Options, tools Tools) Step {
	args := []string{"package"}
	if dev := DevOption(opts); dev != "" {
		args = append(args, dev)
	}
	args = append(args, PackageToken(opts))

	return Step{
		Name:    StepLlum,
		Kind:    StepPassthrough,
		Command: tools.Llum,
		Args:    args,
	}
}

func requireStep(opts Options, tools Tools) Step {
	composer := tools.Composer
	if len(composer) == 0 {
		composer = []string{"composer"}
	}

	args := make([]string, 0, len(composer)+1)
	args = append(args, composer[1:]...)
	args = append(args, "require", RequireArgument(tools.Package, opts, tools.Constraint))

	return Step{
		Name:    StepRequire,
		Kind:    StepStream,
		Command: composer[0],
		Args:    args,
	}
}

// publishStep always forces vendor:publish; the overwrite confirmation
// only exists in the llum packages.
func publishStep(opts Options, tools Tools) Step {
	args := []string{artisan, packagePublishAction}
	if opts.UseVendorPublish {
		args = []string{artisan, vendorPublishAction, "--tag=" + tools.PublishTag, "--force"}
	}

	return Step{
		Name:    StepPublish,
		Kind:    StepPassthrough,
		Command: tools.PHP,
		Args:    args,
	}
}
