package cinematerial

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ShowURLs bool
}

// ConsoleFormatter provides console output formatting for lookup results
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatResult formats a single lookup result with its posters
func (f *ConsoleFormatter) FormatResult(result *Result, options FormatOptions) string {
	if result == nil {
		return "No result"
	}

	var sb strings.Builder

	title := result.Title
	if title == "" {
		title = "Unknown title"
	}
	if result.Year > 0 {
		fmt.Fprintf(&sb, "\n%s (%d)", title, result.Year)
	} else {
		fmt.Fprintf(&sb, "\n%s", title)
	}
	if result.IMDbID != "" {
		fmt.Fprintf(&sb, " [%s]", result.IMDbID)
	}
	sb.WriteString("\n")
	if result.URL != "" && options.ShowURLs {
		fmt.Fprintf(&sb, "%s\n", result.URL)
	}

	if !result.HasPosters() {
		sb.WriteString("No posters found\n")
		return sb.String()
	}

	sb.WriteString("\nPoster")
	if len(result.Posters) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(result.Posters))

	for i, poster := range result.Posters {
		isLast := i == len(result.Posters)-1
		prefix := "├"
		if isLast {
			prefix = "╰"
		}

		fmt.Fprintf(&sb, "%s── %dx%d", prefix, poster.Width, poster.Height)
		var details []string
		if poster.Type != "" {
			details = append(details, poster.Type)
		}
		if poster.Language != "" {
			details = append(details, poster.Language)
		}
		if poster.Country != "" {
			details = append(details, poster.Country)
		}
		if len(details) > 0 {
			fmt.Fprintf(&sb, " (%s)", strings.Join(details, ", "))
		}
		sb.WriteString("\n")

		if options.ShowURLs && poster.URL != "" {
			indent := "│   "
			if isLast {
				indent = "    "
			}
			fmt.Fprintf(&sb, "%s%s\n", indent, poster.URL)
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatBatch formats a summary of a SearchMany call
func (f *ConsoleFormatter) FormatBatch(batch BatchResult) string {
	if len(batch.Outcomes) == 0 {
		return "Nothing to look up"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%-4s %-45s %-12s %s\n", "#", "MOVIE", "IMDB", "POSTERS")
	sb.WriteString(strings.Repeat("━", 75))
	sb.WriteString("\n")

	for i, o := range batch.Outcomes {
		if o.Err != nil {
			fmt.Fprintf(&sb, "%-4d %-45s %-12s error: %v\n", i+1, truncate(o.Label, 45), "-", o.Err)
			continue
		}
		title := o.Result.Title
		if o.Result.Year > 0 {
			title = fmt.Sprintf("%s (%d)", title, o.Result.Year)
		}
		fmt.Fprintf(&sb, "%-4d %-45s %-12s %d\n", i+1, truncate(title, 45), o.Result.IMDbID, len(o.Result.Posters))
	}

	fmt.Fprintf(&sb, "\n%d succeeded, %d failed\n", len(batch.Succeeded()), len(batch.Failed()))
	return sb.String()
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}
