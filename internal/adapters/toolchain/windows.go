//go:build windows

// Package toolchain discovers a working native compiler/linker pair for the
// current OS and packages it as an explicit ports.ToolchainContext. Discovery
// never mutates process-wide environment variables; the compiler driver
// applies the context's overrides per subprocess.
package toolchain

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sys/windows/registry"

	"github.com/mvp-scale/tsforge/internal/ports"
)

// Locator implements ports.Toolchain for Windows. It finds an MSVC toolchain
// without requiring a developer command prompt: vswhere first, then registry
// fallbacks across Visual Studio versions, then the SxS version index.
type Locator struct {
	cached *ports.ToolchainContext
}

// NewLocator creates a locator. The cc/cxx overrides are Unix-only and
// ignored here; MSVC paths always come from discovery.
func NewLocator(cc, cxx string) *Locator {
	return &Locator{}
}

// Resolve locates Visual Studio, the newest MSVC tools subversion, and the
// Windows 10 SDK, then assembles PATH/INCLUDE/LIB overrides scoped to the
// host architecture. Every missing component is a fatal, actionable error
// naming the component; the locator never proceeds with a partial toolchain.
func (l *Locator) Resolve() (*ports.ToolchainContext, error) {
	if l.cached != nil {
		return l.cached, nil
	}

	vsPath, err := findVSInstallation()
	if err != nil {
		return nil, err
	}

	sdkRoot, err := findSDKRoot()
	if err != nil {
		return nil, err
	}
	sdkVersion, err := findSDKVersion()
	if err != nil {
		return nil, err
	}

	toolsDir, err := latestMSVCTools(filepath.Join(vsPath, "VC"))
	if err != nil {
		return nil, err
	}

	arch := "x86"
	if strings.HasSuffix(runtime.GOARCH, "64") {
		arch = "x64"
	}

	binDir := filepath.Join(toolsDir, "bin", "Host"+arch, arch)
	includes := []string{
		filepath.Join(toolsDir, "include"),
		filepath.Join(sdkRoot, "Include", sdkVersion, "ucrt"),
		filepath.Join(sdkRoot, "Include", sdkVersion, "um"),
		filepath.Join(sdkRoot, "Include", sdkVersion, "shared"),
	}
	libs := []string{
		filepath.Join(toolsDir, "lib", arch),
		filepath.Join(sdkRoot, "Lib", sdkVersion, "ucrt", arch),
		filepath.Join(sdkRoot, "Lib", sdkVersion, "um", arch),
	}
	pathEntries := []string{
		binDir,
		filepath.Join(sdkRoot, "bin", sdkVersion, arch),
	}

	// Older MSVC drops ship without stdbool.h; grammar scanners need it.
	if err := ensureStdbool(filepath.Join(toolsDir, "include")); err != nil {
		return nil, err
	}

	l.cached = &ports.ToolchainContext{
		Kind:         "msvc",
		CC:           filepath.Join(binDir, "cl.exe"),
		CXX:          filepath.Join(binDir, "cl.exe"),
		LD:           filepath.Join(binDir, "link.exe"),
		MSVCToolsDir: toolsDir,
		SDKRoot:      sdkRoot,
		SDKVersion:   sdkVersion,
		Arch:         arch,
		Env: []string{
			"PATH=" + strings.Join(pathEntries, ";") + ";" + os.Getenv("PATH"),
			"INCLUDE=" + strings.Join(includes, ";"),
			"LIB=" + strings.Join(libs, ";"),
		},
	}
	return l.cached, nil
}

// findVSInstallation locates the Visual Studio install root: vswhere when the
// installer suite is present, otherwise per-version registry keys (including
// the 32-bit-on-64-bit alias), otherwise the SxS\VS7 version index.
func findVSInstallation() (string, error) {
	programFiles := os.Getenv("ProgramFiles(x86)")
	if programFiles == "" {
		programFiles = `C:\Program Files (x86)`
	}
	vswhere := filepath.Join(programFiles, "Microsoft Visual Studio", "Installer", "vswhere.exe")
	if _, err := os.Stat(vswhere); err == nil {
		out, err := exec.Command(vswhere,
			"-latest",
			"-products", "*",
			"-requires", "Microsoft.VisualStudio.Component.VC.Tools.x86.x64",
			"-property", "installationPath",
		).Output()
		if err == nil {
			if p := strings.TrimSpace(string(out)); p != "" {
				return p, nil
			}
		}
	}

	for _, version := range []string{"2022", "2019", "2017"} {
		for _, prefix := range []string{`SOFTWARE\`, `SOFTWARE\WOW6432Node\`} {
			keyPath := prefix + `Microsoft\VisualStudio\` + version + `\Setup\VS`
			if dir, ok := regString(keyPath, "ProductDir"); ok {
				return dir, nil
			}
		}
	}

	if dir, ok := latestSxSEntry(); ok {
		return dir, nil
	}

	return "", fmt.Errorf("could not find a Visual Studio installation\n" +
		"  → install Visual Studio with C++ development tools\n" +
		"  → then retry your command")
}

// latestSxSEntry enumerates the SxS\VS7 key and returns the install dir of the
// lexicographically greatest version entry.
func latestSxSEntry() (string, bool) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\VisualStudio\SxS\VS7`, registry.QUERY_VALUE)
	if err != nil {
		return "", false
	}
	defer k.Close()

	names, err := k.ReadValueNames(0)
	if err != nil || len(names) == 0 {
		return "", false
	}
	sort.Strings(names)
	dir, _, err := k.GetStringValue(names[len(names)-1])
	if err != nil {
		return "", false
	}
	return dir, true
}

// findSDKRoot reads the Windows 10 SDK root, trying the WOW6432Node alias
// when the native key is absent.
func findSDKRoot() (string, error) {
	for _, prefix := range []string{`SOFTWARE\`, `SOFTWARE\WOW6432Node\`} {
		if root, ok := regString(prefix+`Microsoft\Windows Kits\Installed Roots`, "KitsRoot10"); ok {
			return root, nil
		}
	}
	return "", fmt.Errorf("could not find the Windows 10 SDK\n" +
		"  → install the Windows SDK via the Visual Studio installer\n" +
		"  → then retry your command")
}

// findSDKVersion enumerates installed SDK versions and picks the greatest
// "10.*" entry.
func findSDKVersion() (string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows Kits\Installed Roots`, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return "", fmt.Errorf("could not read installed SDK versions: %w", err)
	}
	defer k.Close()

	subkeys, err := k.ReadSubKeyNames(0)
	if err != nil {
		return "", fmt.Errorf("could not read installed SDK versions: %w", err)
	}
	var versions []string
	for _, name := range subkeys {
		if strings.HasPrefix(name, "10.") {
			versions = append(versions, name)
		}
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("no Windows 10 SDK version installed\n" +
			"  → install the Windows SDK via the Visual Studio installer")
	}
	sort.Strings(versions)
	return versions[len(versions)-1], nil
}

// latestMSVCTools picks the newest compiler-tools subversion under VC\Tools\MSVC.
func latestMSVCTools(vcDir string) (string, error) {
	toolsRoot := filepath.Join(vcDir, "Tools", "MSVC")
	entries, err := os.ReadDir(toolsRoot)
	if err != nil {
		return "", fmt.Errorf("MSVC tools path not found at %s\n"+
			"  → install Visual Studio with C++ development tools", toolsRoot)
	}
	var versions []string
	for _, e := range entries {
		if e.IsDir() {
			versions = append(versions, e.Name())
		}
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("no MSVC versions found under %s\n"+
			"  → repair or reinstall Visual Studio", toolsRoot)
	}
	sort.Strings(versions)
	return filepath.Join(toolsRoot, versions[len(versions)-1]), nil
}

// regString reads a REG_SZ value from HKLM.
func regString(keyPath, name string) (string, bool) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, keyPath, registry.QUERY_VALUE)
	if err != nil {
		return "", false
	}
	defer k.Close()
	v, _, err := k.GetStringValue(name)
	if err != nil {
		return "", false
	}
	return v, true
}

const stdboolHeader = `#ifndef _STDBOOL_H
#define _STDBOOL_H

#define __bool_true_false_are_defined 1

#ifndef __cplusplus

#define bool    _Bool
#define false   0
#define true    1

#endif /* __cplusplus */

#endif /* _STDBOOL_H */
`

// ensureStdbool writes a minimal stdbool.h into the MSVC include directory
// when the toolchain ships without one.
func ensureStdbool(includeDir string) error {
	path := filepath.Join(includeDir, "stdbool.h")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, []byte(stdboolHeader), 0644); err != nil {
		return fmt.Errorf("write stdbool.h shim: %w", err)
	}
	return nil
}
