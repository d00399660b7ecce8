package styles

// DarkTheme is used when the resolved theme is dark.
var DarkTheme = Theme{
	Name: "dark",
	Tokens: ThemeTokens{
		Background: "#0B0F14",
		Panel:      "#121821",
		Text:       "#E6EDF3",
		TextMuted:  "#8B9AAE",
		Border:     "#223043",
		Accent:     "#56B4E9",
		Focus:      "#F0E442",
		Success:    "#3FB950",
		Warning:    "#D29922",
		Error:      "#F85149",
		Info:       "#58A6FF",
	},
}
