package rendering

const (
	fontSans      = `"Helvetica Neue", Helvetica, Arial, sans-serif`
	fontSerif     = `Georgia, "Times New Roman", serif`
	fontGaramond  = `"EB Garamond", Garamond, Georgia, serif`
	fontMono      = `"IBM Plex Mono", Menlo, Consolas, monospace`
	fontHumanist  = `"Source Sans Pro", "Segoe UI", Calibri, sans-serif`
	fontGeometric = `Montserrat, "Century Gothic", Futura, sans-serif`
	fontLato      = `Lato, "Open Sans", Arial, sans-serif`
)

var (
	orderStandard   = []Section{SectionHeader, SectionSummary, SectionSkills, SectionExperience}
	orderExperience = []Section{SectionHeader, SectionSummary, SectionExperience, SectionSkills}
	orderSkills     = []Section{SectionHeader, SectionSkills, SectionSummary, SectionExperience}
)

func scale(base, heading, line float64) Scale {
	return Scale{BasePt: base, HeadingRatio: heading, LineHeight: line}
}

func palette(primary, accent, text, muted, background string) Palette {
	return Palette{Primary: primary, Accent: accent, Text: text, Muted: muted, Background: background}
}

// builtinStyles is the declarative template table. Each entry is one visual variant
// offered in the template picker.
func builtinStyles() []Style {
	return []Style{
		{
			ID: "classic", Name: "Classic", Layout: LayoutSingle,
			Palette:    palette("#1F2933", "#3E4C59", "#1F2933", "#616E7C", "#FFFFFF"),
			FontFamily: fontSerif, Scale: scale(10.5, 1.3, 1.35), Sections: orderStandard,
			HeaderRule: true,
		},
		{
			ID: "modern", Name: "Modern", Layout: LayoutSidebarLeft,
			Sidebar: []Section{SectionSkills}, SideRatio: 0.3,
			Palette:    palette("#0B4F6C", "#01BAEF", "#20232A", "#5C677D", "#FFFFFF"),
			FontFamily: fontSans, Scale: scale(10, 1.4, 1.4), Sections: orderStandard,
			AccentBar: true, SkillChips: true,
		},
		{
			ID: "minimal", Name: "Minimal", Layout: LayoutSingle,
			Palette:    palette("#111111", "#111111", "#222222", "#777777", "#FFFFFF"),
			FontFamily: fontHumanist, Scale: scale(10, 1.2, 1.45), Sections: orderStandard,
		},
		{
			ID: "executive", Name: "Executive", Layout: LayoutSingle,
			Palette:    palette("#102A43", "#9F7A2B", "#102A43", "#486581", "#FFFFFF"),
			FontFamily: fontGaramond, Scale: scale(11, 1.35, 1.3), Sections: orderExperience,
			HeaderRule: true, UppercaseHeadings: true,
		},
		{
			ID: "creative", Name: "Creative", Layout: LayoutSidebarRight,
			Sidebar: []Section{SectionSkills, SectionSummary}, SideRatio: 0.35,
			Palette:    palette("#6A1B9A", "#FF7043", "#2D2D2D", "#757575", "#FFFDF7"),
			FontFamily: fontGeometric, Scale: scale(10, 1.5, 1.4), Sections: orderStandard,
			AccentBar: true, SkillChips: true,
		},
		{
			ID: "compact", Name: "Compact", Layout: LayoutSingle,
			Palette:    palette("#263238", "#455A64", "#263238", "#607D8B", "#FFFFFF"),
			FontFamily: fontSans, Scale: scale(9, 1.2, 1.2), Sections: orderStandard,
			HeaderRule: true,
		},
		{
			ID: "elegant", Name: "Elegant", Layout: LayoutSingle,
			Palette:    palette("#3C2F2F", "#B08D57", "#3C2F2F", "#8D7B68", "#FFFDF9"),
			FontFamily: fontGaramond, Scale: scale(11, 1.4, 1.45), Sections: orderStandard,
			HeaderRule: true, UppercaseHeadings: true,
		},
		{
			ID: "technical", Name: "Technical", Layout: LayoutSidebarLeft,
			Sidebar: []Section{SectionSkills}, SideRatio: 0.28,
			Palette:    palette("#0F172A", "#22C55E", "#1E293B", "#64748B", "#FFFFFF"),
			FontFamily: fontMono, Scale: scale(9.5, 1.3, 1.35), Sections: orderSkills,
			SkillChips: true,
		},
		{
			ID: "professional", Name: "Professional", Layout: LayoutSingle,
			Palette:    palette("#1A365D", "#2B6CB0", "#1A202C", "#4A5568", "#FFFFFF"),
			FontFamily: fontLato, Scale: scale(10.5, 1.3, 1.35), Sections: orderStandard,
			HeaderRule: true, UppercaseHeadings: true,
		},
		{
			ID: "bold", Name: "Bold", Layout: LayoutSingle,
			Palette:    palette("#000000", "#E53E3E", "#1A1A1A", "#4A4A4A", "#FFFFFF"),
			FontFamily: fontGeometric, Scale: scale(10.5, 1.6, 1.35), Sections: orderStandard,
			AccentBar: true, UppercaseHeadings: true,
		},
		{
			ID: "clean", Name: "Clean", Layout: LayoutSingle,
			Palette:    palette("#2D3748", "#38B2AC", "#2D3748", "#718096", "#FFFFFF"),
			FontFamily: fontHumanist, Scale: scale(10, 1.25, 1.5), Sections: orderStandard,
			SkillChips: true,
		},
		{
			ID: "corporate", Name: "Corporate", Layout: LayoutSidebarRight,
			Sidebar: []Section{SectionSkills}, SideRatio: 0.3,
			Palette:    palette("#003366", "#336699", "#1C1C1C", "#5F6B7A", "#FFFFFF"),
			FontFamily: fontSans, Scale: scale(10, 1.3, 1.35), Sections: orderStandard,
			HeaderRule: true,
		},
		{
			ID: "academic", Name: "Academic", Layout: LayoutSingle,
			Palette:    palette("#2C2C2C", "#7B1E1E", "#2C2C2C", "#666666", "#FFFFFF"),
			FontFamily: fontSerif, Scale: scale(11, 1.25, 1.4), Sections: orderExperience,
			HeaderRule: true,
		},
		{
			ID: "startup", Name: "Startup", Layout: LayoutSidebarLeft,
			Sidebar: []Section{SectionSummary, SectionSkills}, SideRatio: 0.34,
			Palette:    palette("#4C1D95", "#F59E0B", "#1F2937", "#6B7280", "#FFFFFF"),
			FontFamily: fontLato, Scale: scale(10, 1.45, 1.4), Sections: orderStandard,
			AccentBar: true, SkillChips: true,
		},
		{
			ID: "designer", Name: "Designer", Layout: LayoutSidebarLeft,
			Sidebar: []Section{SectionSkills}, SideRatio: 0.4,
			Palette:    palette("#D6336C", "#FCC419", "#212529", "#868E96", "#FFF9FB"),
			FontFamily: fontGeometric, Scale: scale(10, 1.55, 1.45), Sections: orderStandard,
			AccentBar: true, SkillChips: true, UppercaseHeadings: true,
		},
		{
			ID: "timeline", Name: "Timeline", Layout: LayoutSingle,
			Palette:    palette("#234E52", "#319795", "#1D2B2E", "#5A7173", "#FFFFFF"),
			FontFamily: fontSans, Scale: scale(10, 1.35, 1.4), Sections: orderExperience,
			AccentBar: true,
		},
		{
			ID: "monochrome", Name: "Monochrome", Layout: LayoutSingle,
			Palette:    palette("#000000", "#000000", "#000000", "#555555", "#FFFFFF"),
			FontFamily: fontMono, Scale: scale(9.5, 1.25, 1.4), Sections: orderStandard,
			HeaderRule: true, UppercaseHeadings: true,
		},
		{
			ID: "serif", Name: "Serif", Layout: LayoutSingle,
			Palette:    palette("#2B2118", "#8C5E3C", "#2B2118", "#7A6A5C", "#FFFFFF"),
			FontFamily: fontSerif, Scale: scale(11, 1.3, 1.4), Sections: orderStandard,
		},
		{
			ID: "slate", Name: "Slate", Layout: LayoutSidebarRight,
			Sidebar: []Section{SectionSkills}, SideRatio: 0.32,
			Palette:    palette("#334155", "#94A3B8", "#1E293B", "#64748B", "#F8FAFC"),
			FontFamily: fontHumanist, Scale: scale(10, 1.3, 1.4), Sections: orderStandard,
			SkillChips: true,
		},
		{
			ID: "ocean", Name: "Ocean", Layout: LayoutSingle,
			Palette:    palette("#03396C", "#0077B6", "#0B2545", "#5B7083", "#FFFFFF"),
			FontFamily: fontSans, Scale: scale(10.5, 1.35, 1.4), Sections: orderStandard,
			AccentBar: true, SkillChips: true,
		},
		{
			ID: "forest", Name: "Forest", Layout: LayoutSidebarLeft,
			Sidebar: []Section{SectionSkills}, SideRatio: 0.3,
			Palette:    palette("#1B4332", "#52B788", "#1B1B1B", "#5C6B61", "#FFFFFF"),
			FontFamily: fontLato, Scale: scale(10, 1.35, 1.4), Sections: orderStandard,
			HeaderRule: true,
		},
		{
			ID: "sunset", Name: "Sunset", Layout: LayoutSingle,
			Palette:    palette("#9C2A00", "#FF8C42", "#2E1F1A", "#7D6558", "#FFFAF5"),
			FontFamily: fontGeometric, Scale: scale(10, 1.45, 1.4), Sections: orderSkills,
			AccentBar: true, SkillChips: true,
		},
		{
			ID: "midnight", Name: "Midnight", Layout: LayoutSidebarLeft,
			Sidebar: []Section{SectionSummary, SectionSkills}, SideRatio: 0.36,
			Palette:    palette("#0D1B2A", "#E0A458", "#0D1B2A", "#52616B", "#FFFFFF"),
			FontFamily: fontSans, Scale: scale(10, 1.4, 1.4), Sections: orderStandard,
			AccentBar: true, UppercaseHeadings: true,
		},
		{
			ID: "nordic", Name: "Nordic", Layout: LayoutSingle,
			Palette:    palette("#2E3440", "#5E81AC", "#2E3440", "#4C566A", "#FFFFFF"),
			FontFamily: fontHumanist, Scale: scale(10, 1.3, 1.5), Sections: orderStandard,
			HeaderRule: true, SkillChips: true,
		},
		{
			ID: "ivy", Name: "Ivy", Layout: LayoutSingle,
			Palette:    palette("#14213D", "#2A9D8F", "#14213D", "#5E6472", "#FFFFFF"),
			FontFamily: fontGaramond, Scale: scale(10.5, 1.3, 1.35), Sections: orderExperience,
			HeaderRule: true,
		},
	}
}
