package playerbar

import (
	"fmt"

	"github.com/llehouerou/genwaves/internal/playlist"
)

// indicators renders the volume and repeat mode, e.g. "vol  80% [R]".
func indicators(s State) string {
	vol := fmt.Sprintf("vol %3d%%", int(s.Volume*100+0.5))
	if s.Muted {
		vol = "muted   "
	}
	out := indicatorStyle.Render(vol)
	if r := repeatIndicator(s.Repeat); r != "" {
		out += " " + repeatStyle.Render(r)
	}
	return out
}

func repeatIndicator(mode playlist.RepeatMode) string {
	switch mode {
	case playlist.RepeatAll:
		return "[R]"
	case playlist.RepeatOne:
		return "[1]"
	default:
		return ""
	}
}
