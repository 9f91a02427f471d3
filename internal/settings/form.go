package settings

import (
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"cliprobe/internal/tools"
)

// ErrAborted is returned when the user leaves the form without submitting.
var ErrAborted = errors.New("settings edit aborted")

// FormTheme is the huh theme shared by the interactive commands.
func FormTheme() *huh.Theme {
	green := lipgloss.Color("#03BF87")
	theme := huh.ThemeCharm()
	theme.FieldSeparator = lipgloss.NewStyle()
	theme.Blurred.Title = theme.Blurred.Title.Width(18).Foreground(lipgloss.Color("7"))
	theme.Focused.Title = theme.Focused.Title.Width(18).Foreground(green).Bold(true)
	theme.Blurred.SelectedOption = theme.Blurred.SelectedOption.Foreground(lipgloss.Color("243"))
	theme.Focused.SelectedOption = lipgloss.NewStyle().Foreground(green)
	theme.Focused.Base.BorderForeground(green)
	return theme
}

// formState is the editable projection of GlobalSettings bound to the form fields.
type formState struct {
	defaultCLI string
	models     map[tools.CLIType]*string
	permission string
}

func newFormState(cur GlobalSettings, infos []tools.ToolInfo) *formState {
	st := &formState{
		defaultCLI: string(cur.DefaultCLI),
		models:     make(map[tools.CLIType]*string, len(infos)),
		permission: "acceptEdits",
	}
	for _, info := range infos {
		m, _ := cur.CLISettings[info.ID][KeyModel].(string)
		if m == "" && len(info.Models) > 0 {
			m = info.Models[0]
		}
		st.models[info.ID] = &m
	}
	if p, _ := cur.CLISettings[tools.CLIClaude][KeyPermissionMode].(string); p != "" {
		st.permission = p
	}
	return st
}

// apply writes the form values back over a copy of cur; unrelated option keys survive.
func (st *formState) apply(cur GlobalSettings) GlobalSettings {
	next := cur.Clone()
	next.DefaultCLI = tools.CLIType(st.defaultCLI)
	if next.CLISettings == nil {
		next.CLISettings = map[tools.CLIType]map[string]any{}
	}
	for id, m := range st.models {
		opts := next.CLISettings[id]
		if opts == nil {
			opts = map[string]any{}
		}
		opts[KeyModel] = *m
		if id == tools.CLIClaude {
			opts[KeyPermissionMode] = st.permission
		}
		next.CLISettings[id] = opts
	}
	return next
}

// Edit runs an interactive form over cur and returns the edited settings.
// Nothing is saved; the caller decides where the result goes.
func Edit(cur GlobalSettings, infos []tools.ToolInfo) (GlobalSettings, error) {
	st := newFormState(cur, infos)

	cliOpts := make([]huh.Option[string], 0, len(infos))
	for _, info := range infos {
		cliOpts = append(cliOpts, huh.NewOption(info.DisplayName, string(info.ID)))
	}
	fields := []huh.Field{
		huh.NewNote().Title("Settings").Description("Choose the default CLI and per-CLI options"),
		huh.NewSelect[string]().Title("Default CLI").Options(cliOpts...).Value(&st.defaultCLI),
	}
	for _, info := range infos {
		opts := make([]huh.Option[string], 0, len(info.Models))
		for _, m := range info.Models {
			opts = append(opts, huh.NewOption(m, m))
		}
		if len(opts) == 0 {
			continue
		}
		fields = append(fields, huh.NewSelect[string]().
			Title(info.DisplayName+" model").
			Options(opts...).
			Value(st.models[info.ID]))
	}
	fields = append(fields, huh.NewSelect[string]().
		Title("Permission mode").
		Description("bypassPermissions is refused when running as root").
		Options(
			huh.NewOption("acceptEdits", "acceptEdits"),
			huh.NewOption("bypassPermissions", "bypassPermissions"),
		).
		Value(&st.permission))

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(FormTheme()).WithWidth(60)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return GlobalSettings{}, ErrAborted
		}
		return GlobalSettings{}, err
	}
	return st.apply(cur), nil
}
