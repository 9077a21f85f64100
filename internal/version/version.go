// Package version holds the build version of the application.
package version

// Version is set at build time with
//
//	-ldflags "-X github.com/ndewijer/Investment-Tracker-Backend/internal/version.Version=1.2.3"
var Version = "dev"
