package terminal

import (
	"github.com/gdamore/tcell/v2"

	"serial-monitor/pkg/app"
)

// TranslateKey maps a tcell key event to the monitor's key set. Keys the
// monitor has no binding for are reported as not ok.
func TranslateKey(ev *tcell.EventKey) (app.KeyEvent, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return app.KeyEvent{}, false
		}
		return app.RuneKey(ev.Rune()), true
	case tcell.KeyEnter:
		return app.Press(app.KeyEnter), true
	case tcell.KeyEscape:
		return app.Press(app.KeyEscape), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return app.Press(app.KeyBackspace), true
	case tcell.KeyDelete:
		return app.Press(app.KeyDelete), true
	case tcell.KeyLeft:
		return app.Press(app.KeyLeft), true
	case tcell.KeyRight:
		return app.Press(app.KeyRight), true
	case tcell.KeyUp:
		return app.Press(app.KeyUp), true
	case tcell.KeyDown:
		return app.Press(app.KeyDown), true
	case tcell.KeyHome:
		return app.Press(app.KeyHome), true
	case tcell.KeyEnd:
		return app.Press(app.KeyEnd), true
	case tcell.KeyPgUp:
		return app.Press(app.KeyPageUp), true
	case tcell.KeyPgDn:
		return app.Press(app.KeyPageDown), true
	}
	return app.KeyEvent{}, false
}
