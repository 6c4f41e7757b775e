package app

import "miniscope/scopeos/render"

// bootScreen shows msg under the build banner until the first frame replaces it.
func bootScreen(screen *render.FramebufferSurface, banner, msg string) {
	screen.Clear(render.ColorBackground)
	screen.DrawText(0, render.LineHeight+2, banner, render.ColorText)
	screen.DrawText(0, 2*render.LineHeight+6, msg, render.ColorTrace)
	_ = screen.Present()
}
