package langstats

// DefaultColor is used for languages missing from the table.
const DefaultColor = "#888"

// languageColors maps WakaTime language names to their usual brand colors.
// Read-only after init.
var languageColors = map[string]string{
	// frontend
	"Vue.js":     "#42b883",
	"React":      "#61dafb",
	"Angular":    "#dd0031",
	"Svelte":     "#ff3e00",
	"JavaScript": "#f7df1e",
	"TypeScript": "#3178c6",
	"HTML":       "#e34c26",
	"CSS":        "#264de4",
	"SCSS":       "#cd6799",
	"LESS":       "#1d365d",
	"JSON":       "#292929",
	"Markdown":   "#083fa1",
	"YAML":       "#cb171e",
	"GraphQL":    "#e535ab",

	// backend / cross-platform
	"Node.js": "#339933",
	"NestJS":  "#e0234e",
	"Python":  "#3572A5",
	"Go":      "#00ADD8",
	"Java":    "#b07219",
	"C#":      "#178600",
	"C++":     "#f34b7d",
	"PHP":     "#8892be",
	"Ruby":    "#701516",
	"Rust":    "#dea584",
	"Kotlin":  "#A97BFF",
	"Swift":   "#ffac45",
	"Dart":    "#00B4AB",

	// data / scripting
	"Shell":      "#89e051",
	"Bash":       "#89e051",
	"PowerShell": "#012456",
	"SQL":        "#e38c00",
	"Lua":        "#000080",
	"R":          "#198ce7",
	"Perl":       "#0298c3",

	// docs / config
	"XML":  "#0060ac",
	"TOML": "#9c4221",
	"INI":  "#d1dbe0",

	// tooling
	"Dockerfile": "#384d54",
	"Makefile":   "#427819",
	"Go Module":  "#00ADD8",
}

// ColorFor returns the bar color for a language, or DefaultColor.
func ColorFor(name string) string {
	if c, ok := languageColors[name]; ok {
		return c
	}
	return DefaultColor
}
