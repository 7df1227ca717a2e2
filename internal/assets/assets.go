package assets

// Built-in asset names.
const (
	// DefaultStyleName is the stylesheet applied to question sheets.
	DefaultStyleName = "sheet"

	// SheetTemplateName is the HTML template for question sheets.
	SheetTemplateName = "sheet"

	// KaTeXScriptName is the KaTeX bundle looked up under scripts/.
	// It is never embedded; users supply it through a custom base path.
	KaTeXScriptName = "katex"

	// KaTeXStyleName is the KaTeX stylesheet looked up under styles/.
	// The embedded one only hides the HTML layer of KaTeX output.
	KaTeXStyleName = "katex"
)

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the default embedded loader.
// The name should not include the .css extension or path components.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads an HTML template by name using the default embedded loader.
// Returns ErrTemplateNotFound if the template does not exist.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}
