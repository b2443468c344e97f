package grammar

import "runtime"

// ArtifactExt returns the shared-library extension for the current platform.
func ArtifactExt() string {
	switch runtime.GOOS {
	case "windows":
		return ".dll"
	case "darwin":
		return ".dylib"
	default:
		return ".so"
	}
}

// ArtifactName returns the uniform artifact file name. Every language's build
// directory holds exactly one of these.
func ArtifactName() string {
	return "parser" + ArtifactExt()
}
