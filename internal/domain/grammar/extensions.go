package grammar

import (
	"path/filepath"
	"strings"
)

// extToLang maps lowercase file extensions to grammar names, used by the
// parse boundary to infer a language when none is given explicitly.
var extToLang = map[string]string{
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".rs":   "rust",
	".go":   "go",
	".cpp":  "cpp",
	".hpp":  "cpp",
	".c":    "c",
	".h":    "c",
	".java": "java",
	".rb":   "ruby",
	".php":  "php",
	".cs":   "c_sharp",
	".html": "html",
	".css":  "css",
	".sh":   "bash",
	".yaml": "yaml",
	".yml":  "yaml",
	".json": "json",
	".toml": "toml",
	".md":   "markdown",
}

// DetectLanguage infers a grammar name from a file path's extension.
// Returns "" when the extension is not recognized.
func DetectLanguage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	return extToLang[ext]
}

// ExtensionsFor returns the extensions mapped to a language, sorted order not
// guaranteed.
func ExtensionsFor(lang string) []string {
	var exts []string
	for ext, l := range extToLang {
		if l == lang {
			exts = append(exts, ext)
		}
	}
	return exts
}
