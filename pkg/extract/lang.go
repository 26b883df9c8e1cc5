package extract

import (
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// canonicalLanguage folds the editor-style language identifiers down to the
// three grammars we ship. Unknown languages map to "".
func canonicalLanguage(language string) string {
	switch language {
	case "javascript", "javascriptreact", "jsx":
		return "javascript"
	case "typescript":
		return "typescript"
	case "typescriptreact", "tsx":
		return "tsx"
	}
	return ""
}

func grammarFor(canonical string) *sitter.Language {
	switch canonical {
	case "javascript":
		return javascript.GetLanguage()
	case "typescript":
		return typescript.GetLanguage()
	case "tsx":
		return tsx.GetLanguage()
	}
	return nil
}

// LanguageForPath returns the language identifier for a file path based on
// its extension, or "" if the extension is not one we lint.
func LanguageForPath(path string) string {
	switch filepath.Ext(path) {
	case ".js", ".mjs", ".cjs":
		return "javascript"
	case ".jsx":
		return "javascriptreact"
	case ".ts", ".mts", ".cts":
		return "typescript"
	case ".tsx":
		return "typescriptreact"
	}
	return ""
}
