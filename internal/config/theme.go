package config

// ColorScheme defines the colors used by the CLI styles
type ColorScheme struct {
	// Preset name ("default" or "monochrome")
	Preset string `yaml:"preset"`

	Accent string `yaml:"accent"`
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"`
	Normal string `yaml:"normal"`

	// One color per project status
	InProgress string `yaml:"in_progress"`
	Completed  string `yaml:"completed"`
	OnHold     string `yaml:"on_hold"`
	Cancelled  string `yaml:"cancelled"`

	// Notification colors (foreground/background pairs)
	InfoFg    string `yaml:"info_fg"`
	InfoBg    string `yaml:"info_bg"`
	WarningFg string `yaml:"warning_fg"`
	WarningBg string `yaml:"warning_bg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`
}

// DefaultColorScheme returns the default color scheme (purple theme)
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		Preset:     "default",
		Accent:     "#874BFD",
		Title:      "#D75FD7",
		Subtle:     "#585858",
		Normal:     "#D0D0D0",
		InProgress: "#5F87D7",
		Completed:  "#5FD75F",
		OnHold:     "#FFD700",
		Cancelled:  "#FF5F5F",
		InfoFg:     "#00AFFF",
		InfoBg:     "#00005F",
		WarningFg:  "#FFD700",
		WarningBg:  "#875F00",
		ErrorFg:    "#FF0000",
		ErrorBg:    "#5F0000",
	}
}

// MonochromeColorScheme returns a black and white color scheme
func MonochromeColorScheme() ColorScheme {
	return ColorScheme{
		Preset:     "monochrome",
		Accent:     "#FFFFFF",
		Title:      "#FFFFFF",
		Subtle:     "#808080",
		Normal:     "#D0D0D0",
		InProgress: "#FFFFFF",
		Completed:  "#D0D0D0",
		OnHold:     "#A0A0A0",
		Cancelled:  "#808080",
		InfoFg:     "#FFFFFF",
		InfoBg:     "#303030",
		WarningFg:  "#FFFFFF",
		WarningBg:  "#505050",
		ErrorFg:    "#FFFFFF",
		ErrorBg:    "#000000",
	}
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) ColorScheme {
	if name == "monochrome" {
		return MonochromeColorScheme()
	}
	return DefaultColorScheme()
}

// ApplyDefaults fills in missing color values from the selected preset
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.Preset, preset.Preset)
	fill(&c.Accent, preset.Accent)
	fill(&c.Title, preset.Title)
	fill(&c.Subtle, preset.Subtle)
	fill(&c.Normal, preset.Normal)
	fill(&c.InProgress, preset.InProgress)
	fill(&c.Completed, preset.Completed)
	fill(&c.OnHold, preset.OnHold)
	fill(&c.Cancelled, preset.Cancelled)
	fill(&c.InfoFg, preset.InfoFg)
	fill(&c.InfoBg, preset.InfoBg)
	fill(&c.WarningFg, preset.WarningFg)
	fill(&c.WarningBg, preset.WarningBg)
	fill(&c.ErrorFg, preset.ErrorFg)
	fill(&c.ErrorBg, preset.ErrorBg)
}
