package assets

import "errors"

// StyleResolver combines a custom directory with the embedded styles. Custom
// styles take precedence; a style missing from the directory falls back to
// the embedded one.
type StyleResolver struct {
	custom   StyleLoader // nil if no custom path configured
	embedded StyleLoader
}

// NewStyleResolver creates a StyleResolver.
// If customBasePath is empty, only embedded styles are used.
// Returns ErrInvalidBasePath if customBasePath is set but invalid.
func NewStyleResolver(customBasePath string) (*StyleResolver, error) {
	resolver := &StyleResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a CSS style, trying the custom directory first.
func (r *StyleResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors.
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}

	return r.embedded.LoadStyle(name)
}

// Compile-time interface check.
var _ StyleLoader = (*StyleResolver)(nil)
