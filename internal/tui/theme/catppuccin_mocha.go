package theme

// NewCatppuccinMocha creates the default Catppuccin Mocha theme.
func NewCatppuccinMocha() *Theme {
	return &Theme{
		Name:   "catppuccin-mocha",
		IsDark: true,

		// Semantic colors
		Primary:   "#cba6f7", // Mauve
		Secondary: "#89b4fa", // Blue
		Tertiary:  "#94e2d5", // Teal

		// Background hierarchy
		BgBase:     "#1e1e2e", // Base background
		BgMantle:   "#181825",
		BgSurface0: "#313244",
		BgSurface1: "#45475a",
		BgOverlay:  "#6c7086",

		// Foreground hierarchy
		FgMuted:  "#6c7086",
		FgSubtle: "#a6adc8",
		FgBase:   "#cdd6f4", // Main text color
		FgBright: "#f5e0dc",

		// Status colors
		Success: "#a6e3a1", // Green
		Warning: "#f9e2af", // Yellow
		Error:   "#f38ba8", // Red
		Info:    "#89dceb", // Sky

		// Accounting colors
		AmountGross:    "#89b4fa", // Blue for the gross settlement
		AmountAttorney: "#f9e2af", // Yellow for attorney fees
		AmountAdmin:    "#fab387", // Peach for admin fees
		AmountNet:      "#a6e3a1", // Green for the net payout

		// Border colors
		BorderDefault: "#585b70", // Surface2
		BorderFocus:   "#b4befe", // Lavender
	}
}
