package cdaudio

import "runtime"

// DeviceNameValidator checks the argument given to -cddev. It returns
// the drive name to look for, or false if the argument is not a
// syntactically valid designator on this platform.
type DeviceNameValidator func(arg string) (string, bool)

// DefaultValidator picks the validator matching the host platform.
func DefaultValidator() DeviceNameValidator {
	if runtime.GOOS == "windows" {
		return DriveLetterValidator
	}
	return PathValidator
}

// PathValidator accepts any non-empty device path, e.g. /dev/cdrom.
func PathValidator(arg string) (string, bool) {
	if arg == "" {
		return "", false
	}
	return arg, true
}

// DriveLetterValidator accepts a drive letter in the forms "D", "D:",
// `D:\` or "D:/" (either case) and normalizes it to `D:\`.
func DriveLetterValidator(arg string) (string, bool) {
	if arg == "" || len(arg) > 3 {
		return "", false
	}
	if len(arg) > 1 && arg[1] != ':' {
		return "", false
	}
	if len(arg) > 2 && arg[2] != '\\' && arg[2] != '/' {
		return "", false
	}
	letter := arg[0]
	switch {
	case letter >= 'A' && letter <= 'Z':
	case letter >= 'a' && letter <= 'z':
		letter -= 'a' - 'A'
	default:
		return "", false
	}
	return string(letter) + `:\`, true
}
