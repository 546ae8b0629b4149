package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"                  _                         _     ",
	"  _ __   ___  _ _| |_ __ _ _ _ __ _ _ __  | |_   ",
	" | '_ \\ / _ \\| '_|  _/ _` | '_/ _` | '_ \\ | ' \\  ",
	" | .__/ \\___/|_|  \\__\\__, |_| \\__,_| .__/ |_||_| ",
	" |_|                 |___/         |_|           ",
}

var bannerColors = []string{"#34d399", "#2dd4bf", "#22d3ee", "#38bdf8", "#60a5fa"}

// PrintBanner writes the portgraph ASCII banner to w, colored when w is a color terminal.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, out.String(line).Foreground(p.Color(bannerColors[i%len(bannerColors)])))
	}
	fmt.Fprintln(w)
}
