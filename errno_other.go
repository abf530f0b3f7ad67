//go:build !unix && !windows

package nativefs

func classifyErrno(error) class {
	return classUnknown
}
