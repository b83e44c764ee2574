// Package misc keeps build stamping information.
package misc

// set by linker
var (
	appName = "plancv"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
