package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"miniscope/hal"
	"miniscope/scopeos/kernel"
	"miniscope/scopeos/render"
)

// installPanicHandler logs a task panic and keeps its report for the screen.
// The report is drawn once every task has stopped, so nothing else is
// touching the framebuffer by then.
func (s *System) installPanicHandler(h hal.HAL) {
	s.k.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := []string{
			"scope panic:",
			fmt.Sprintf("task: %d (%s)", info.TaskID, info.TaskName),
			fmt.Sprintf("panic: %v", info.Value),
		}
		var stack []string
		for _, line := range strings.Split(string(info.Stack), "\n") {
			if line != "" {
				stack = append(stack, line)
			}
		}

		if l := h.Logger(); l != nil {
			l.WriteLineString(fmt.Sprintf("scope panic: task=%d (%s) panic=%v", info.TaskID, info.TaskName, info.Value))
			for _, line := range stack {
				l.WriteLineString(line)
			}
		}

		if len(stack) > 0 {
			lines = append(lines, "stack:")
			lines = append(lines, stack...)
		} else {
			lines = append(lines, "stack: unavailable")
		}
		s.panicLines = lines
	})
}

// drawPanic wraps lines to the screen width and draws as many as fit.
func drawPanic(screen *render.FramebufferSurface, lines []string) {
	w, h := screen.Size()
	if w <= 0 || h <= 0 {
		return
	}
	screen.Clear(render.ColorBackground)

	cols := 1
	if cw := render.TextWidth("0"); cw > 0 && w/cw > 0 {
		cols = w / cw
	}

	y := render.LineHeight - 1
	for _, line := range lines {
		for len(line) > 0 {
			if y >= h {
				_ = screen.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			screen.DrawText(0, y, chunk, render.ColorText)
			y += render.LineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = screen.Present()
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
