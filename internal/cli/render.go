package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"fitness-app-go/internal/config"
	"fitness-app-go/pkg/client"
	"fitness-app-go/pkg/plan"
)

type palette struct {
	accent string
	muted  string
	ok     string
	alert  string
}

const ansiReset = "\033[0m"

var palettes = map[config.ThemeMode]palette{
	config.ThemeDark: {
		accent: "\033[1;96m",
		muted:  "\033[90m",
		ok:     "\033[92m",
		alert:  "\033[91m",
	},
	config.ThemeLight: {
		accent: "\033[1;34m",
		muted:  "\033[37m",
		ok:     "\033[32m",
		alert:  "\033[31m",
	},
}

// Renderer writes screens as terminal text in the configured theme.
type Renderer struct {
	out     io.Writer
	theme   palette
	noColor bool
}

func NewRenderer(out io.Writer, mode config.ThemeMode, noColor bool) *Renderer {
	theme, ok := palettes[mode]
	if !ok {
		theme = palettes[config.ThemeDark]
	}
	return &Renderer{out: out, theme: theme, noColor: noColor}
}

func (r *Renderer) paint(color, text string) string {
	if r.noColor || color == "" {
		return text
	}
	return color + text + ansiReset
}

func (r *Renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Renderer) Week(catalog plan.Catalog, tracker plan.Tracker) {
	entries := catalog.Entries()
	if len(entries) == 0 {
		r.printf("%s\n", r.paint(r.theme.muted, "Nenhum treino cadastrado."))
		return
	}
	for _, entry := range entries {
		day := entry.Day
		if wd, ok := entry.Weekday(); ok {
			day = plan.DayName(wd)
		}
		switch {
		case entry.IsRestDay():
			r.printf("%-10s %s\n", day, r.paint(r.theme.muted, "Descanso"))
		case tracker.Has(entry.ID):
			r.printf("%-10s %s %s\n", day, r.paint(r.theme.ok, "✓"), entry.Title)
		default:
			r.printf("%-10s   %s %s\n", day, r.paint(r.theme.accent, entry.Title), r.paint(r.theme.muted, entry.Focus))
		}
	}
}

func (r *Renderer) Workout(entry plan.Entry) {
	r.printf("%s\n", r.paint(r.theme.accent, entry.Title))
	if entry.Focus != "" {
		r.printf("%s\n", r.paint(r.theme.muted, entry.Focus))
	}
	for i, exercise := range entry.Exercises {
		r.printf("%2d. %s\n", i+1, describeExercise(exercise))
	}
}

func (r *Renderer) Player(view PlayerView) {
	mark := " "
	if view.Done {
		mark = r.paint(r.theme.ok, "✓")
	}
	r.printf("%s  [%d/%d]\n", r.paint(r.theme.accent, view.Workout.Title), view.Index+1, view.Total)
	r.printf("[%s] %s\n", mark, describeExercise(view.Exercise))
	r.printf("%s\n", r.paint(r.theme.muted, "(n)ext (p)rev (t)oggle (f)inish (c)ancel"))
}

func (r *Renderer) Profile(profile *client.Profile) {
	if profile == nil {
		return
	}
	r.printf("%s <%s>\n", r.paint(r.theme.accent, profile.Name), profile.Email)
	r.printf("Altura: %s cm\n", orDash(client.FormatMeasure(profile.Height)))
	r.printf("Peso: %s kg\n", orDash(client.FormatMeasure(profile.Weight)))
	r.printf("Gordura corporal: %s%%\n", orDash(client.FormatMeasure(profile.BodyFat)))
	if profile.AvatarURL != nil {
		r.printf("Avatar: %s\n", *profile.AvatarURL)
	}
}

func (r *Renderer) Progress(progress plan.Progress) {
	const width = 20
	filled := int(progress.Percent / 100 * width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	r.printf("%s %d/%d (%.0f%%)\n", r.paint(r.theme.ok, bar), progress.Completed, progress.Total, progress.Percent)
	r.printf("%s\n", progress.Message)
}

func (r *Renderer) Banner(message string) {
	r.printf("\n%s\n", r.paint(r.theme.ok, "🎉 "+message))
}

// Error prints the user-facing text of err, and per-field messages for
// validation failures.
func (r *Renderer) Error(err error) {
	if err == nil {
		return
	}
	var verr *client.ValidationError
	if errors.As(err, &verr) {
		for _, field := range []string{"name", "height", "weight", "current_password", "new_password", "confirmation"} {
			if msg := verr.Field(field); msg != "" {
				r.printf("%s\n", r.paint(r.theme.alert, msg))
			}
		}
		return
	}
	r.printf("%s\n", r.paint(r.theme.alert, client.UserMessage(err)))
}

func describeExercise(exercise plan.Exercise) string {
	text := fmt.Sprintf("%s %dx%d", exercise.Name, exercise.Sets, exercise.Reps)
	if exercise.Weight != nil {
		text += " @ " + client.FormatMeasure(exercise.Weight) + " kg"
	}
	return text
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
