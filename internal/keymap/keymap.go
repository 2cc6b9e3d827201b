package keymap

import "github.com/charmbracelet/bubbles/key"

// Contexts used to group bindings in the help view.
const (
	ContextGlobal   = "global"
	ContextPlayback = "playback"
	ContextPlaylist = "playlist"
)

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// Help returns a bubbles key binding usable by the help component.
func (b Binding) Help() key.Binding {
	return key.NewBinding(
		key.WithKeys(b.Keys...),
		key.WithHelp(helpKey(b.Keys), b.Description),
	)
}

func helpKey(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	k := keys[0]
	if k == " " {
		return "space"
	}
	return k
}

// Bindings contains every key binding of the application.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionHelp, []string{"?"}, "Toggle help", ContextGlobal},
	{ActionGenerate, []string{"g"}, "Generate track", ContextGlobal},
	{ActionVariant, []string{"v"}, "Variant of current", ContextGlobal},
	{ActionShare, []string{"s"}, "Copy share link", ContextGlobal},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", ContextPlayback},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next track", ContextPlayback},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous track", ContextPlayback},
	{ActionSeekForward, []string{"right", "l"}, "Seek forward", ContextPlayback},
	{ActionSeekBack, []string{"left", "h"}, "Seek back", ContextPlayback},
	{ActionCycleRepeat, []string{"R"}, "Cycle repeat mode", ContextPlayback},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", ContextPlayback},
	{ActionVolumeDown, []string{"-"}, "Volume down", ContextPlayback},
	{ActionToggleMute, []string{"m"}, "Mute", ContextPlayback},

	// Playlist
	{ActionMoveUp, []string{"k", "up"}, "Cursor up", ContextPlaylist},
	{ActionMoveDown, []string{"j", "down"}, "Cursor down", ContextPlaylist},
	{ActionSelect, []string{"enter"}, "Play track", ContextPlaylist},
	{ActionDelete, []string{"d", "delete"}, "Delete track", ContextPlaylist},
	{ActionMoveItemUp, []string{"K", "shift+up"}, "Move track up", ContextPlaylist},
	{ActionMoveItemDown, []string{"J", "shift+down"}, "Move track down", ContextPlaylist},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// HelpMap adapts a set of bindings to the bubbles help.KeyMap interface.
type HelpMap struct {
	short []key.Binding
	full  [][]key.Binding
}

// NewHelpMap builds a help map. The short view lists the given actions, the
// full view one column per context.
func NewHelpMap(bindings []Binding, short ...Action) HelpMap {
	var h HelpMap
	byAction := make(map[Action]Binding, len(bindings))
	columns := make(map[string][]key.Binding)
	var order []string
	for _, b := range bindings {
		byAction[b.Action] = b
		if _, ok := columns[b.Context]; !ok {
			order = append(order, b.Context)
		}
		columns[b.Context] = append(columns[b.Context], b.Help())
	}
	for _, a := range short {
		if b, ok := byAction[a]; ok {
			h.short = append(h.short, b.Help())
		}
	}
	for _, ctx := range order {
		h.full = append(h.full, columns[ctx])
	}
	return h
}

// ShortHelp implements help.KeyMap.
func (h HelpMap) ShortHelp() []key.Binding {
	return h.short
}

// FullHelp implements help.KeyMap.
func (h HelpMap) FullHelp() [][]key.Binding {
	return h.full
}
