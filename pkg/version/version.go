package version

// Version is set at build time with
// -ldflags "-X go.githedgehog.com/syslogfmt/pkg/version.Version=$(VERSION)"
var Version = "(devel)"
