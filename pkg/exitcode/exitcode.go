// Package exitcode provides standardized exit codes for droidport
package exitcode

// Exit codes for the droidport CLI
const (
	Success             = 0
	GeneralError        = 1
	ConfigError         = 2
	UnsupportedLocation = 3
	InvalidAddress      = 4
	NetworkError        = 5
	FileSystemError     = 6
	NoProjectFound      = 7
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case UnsupportedLocation:
		return "Unsupported source location"
	case InvalidAddress:
		return "Invalid repository address"
	case NetworkError:
		return "Network error"
	case FileSystemError:
		return "File system error"
	case NoProjectFound:
		return "No build project found"
	default:
		return "Unknown error"
	}
}
