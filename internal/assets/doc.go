// Package assets provides the CSS styles used by the HTML preview and the
// print renderer.
//
// # Loader Architecture
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in styles)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── StyleResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in styles (default, dark, print).
//
// FilesystemLoader reads {basePath}/styles/{name}.css, with path traversal
// protection and symlink resolution.
//
// StyleResolver tries the custom loader first and falls back to the embedded
// styles when a style is not found there, so a directory may override only
// some styles.
//
// # Security
//
// Style names are validated to prevent path traversal.
package assets
