package assets

// StyleLoader defines the contract for loading CSS styles.
type StyleLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)
}

// Built-in style names.
const (
	// DefaultStyleName is the light screen style of the HTML preview.
	DefaultStyleName = "default"

	// DarkStyleName is the dark screen style of the HTML preview.
	DarkStyleName = "dark"

	// PrintStyleName is the style injected into the print document.
	PrintStyleName = "print"
)
