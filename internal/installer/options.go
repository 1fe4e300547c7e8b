package installer

// Options are the install command flags. Built once per invocation.
type Options struct {
	// SkipExternalTool bypasses llum and performs the steps manually.
	SkipExternalTool bool
	// InstallDev requests the development version of the package.
	InstallDev bool
	// UseVendorPublish publishes with vendor:publish instead of the package command.
	UseVendorPublish bool
	// ConfirmOverwrite makes llum ask before overwriting existing files.
	ConfirmOverwrite bool
}

// llum package names.
const (
	TokenAdminLTE                       = "AdminLTE"
	TokenAdminLTEVendorPublish          = "AdminLTEVendorPublish"
	TokenAdminLTEDontForce              = "AdminLTEDontForce"
	TokenAdminLTEVendorPublishDontForce = "AdminLTEVendorPublishDontForce"
)

const (
	devOption = "--dev"
	devSuffix = ":dev-master"
)

// PackageToken returns the llum package name for opts.
func PackageToken(opts Options) string {
	switch {
	case !opts.ConfirmOverwrite && !opts.UseVendorPublish:
		return TokenAdminLTE
	case !opts.ConfirmOverwrite && opts.UseVendorPublish:
		return TokenAdminLTEVendorPublish
	case opts.ConfirmOverwrite && !opts.UseVendorPublish:
		return TokenAdminLTEDontForce
	default:
		return TokenAdminLTEVendorPublishDontForce
	}
}

// DevOption returns the llum flag requesting the development version, or "".
func DevOption(opts Options) string {
	if opts.InstallDev {
		return devOption
	}
	return ""
}

// DevSuffix returns the composer version suffix for the development version, or "".
func DevSuffix(opts Options) string {
	if opts.InstallDev {
		return devSuffix
	}
	return ""
}

// RequireArgument returns the composer require argument for pkg.
// A configured constraint applies only when the development version is not requested.
func RequireArgument(pkg string, opts Options, constraint string) string {
	if suffix := DevSuffix(opts); suffix != "" {
		return pkg + suffix
	}
	if constraint != "" {
		return pkg + ":" + constraint
	}
	return pkg
}
