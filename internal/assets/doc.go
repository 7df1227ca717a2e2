// Package assets provides stylesheets, HTML templates and scripts for
// question sheets and the KaTeX typesetter.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in sheet assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// The embedded filesystem carries the sheet template and stylesheet. KaTeX
// is not bundled: its script and stylesheet come from a custom directory.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   ├── sheet.css            # overrides the built-in sheet style
//	│   └── katex.css            # KaTeX stylesheet
//	├── scripts/
//	│   └── katex.js             # KaTeX bundle (katex.min.js renamed)
//	└── templates/
//	    └── sheet.html           # overrides the built-in sheet template
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
