package styles

// LightTheme is the default gallery palette.
var LightTheme = Theme{
	Name: "light",
	Tokens: ThemeTokens{
		Background: "#FAFAF9",
		Panel:      "#FFFFFF",
		Text:       "#1C1917",
		TextMuted:  "#78716C",
		Border:     "#D6D3D1",
		Accent:     "#0072B2",
		Focus:      "#D55E00",
		Success:    "#15803D",
		Warning:    "#B45309",
		Error:      "#B91C1C",
		Info:       "#0369A1",
	},
}
