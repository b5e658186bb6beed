package ui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/eztable/internal/input/key"
)

// ConvertKey converts a tcell key event to a key.Event. Control letters
// become rune events carrying ModCtrl so they match accelerators such as
// "Ctrl+S". It reports false for keys with no equivalent.
func ConvertKey(ev *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(ev.Modifiers())
	k := ev.Key()

	if k == tcell.KeyRune {
		r := ev.Rune()
		if mods.HasCtrl() || mods.HasAlt() || mods.HasMeta() {
			r = unicode.ToLower(r)
		}
		// Terminals fold Shift into the rune itself.
		if unicode.IsUpper(r) || !unicode.IsLetter(r) {
			mods = mods.Without(key.ModShift)
		}
		return key.NewRuneEvent(r, mods), true
	}

	if special := convertSpecial(k); special != key.KeyNone {
		return key.NewSpecialEvent(special, mods), true
	}

	switch {
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return key.NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods.With(key.ModCtrl)), true
	case k >= 1 && k <= 26:
		// Raw C0 control codes.
		return key.NewRuneEvent('a'+rune(k-1), mods.With(key.ModCtrl)), true
	case k == tcell.KeyCtrlSpace:
		return key.NewRuneEvent(' ', mods.With(key.ModCtrl)), true
	}
	return key.Event{}, false
}

func convertSpecial(k tcell.Key) key.Key {
	switch k {
	case tcell.KeyEscape:
		return key.KeyEscape
	case tcell.KeyEnter:
		return key.KeyEnter
	case tcell.KeyTab:
		return key.KeyTab
	case tcell.KeyBacktab:
		return key.KeyBacktab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.KeyBackspace
	case tcell.KeyDelete:
		return key.KeyDelete
	case tcell.KeyInsert:
		return key.KeyInsert
	case tcell.KeyHome:
		return key.KeyHome
	case tcell.KeyEnd:
		return key.KeyEnd
	case tcell.KeyPgUp:
		return key.KeyPageUp
	case tcell.KeyPgDn:
		return key.KeyPageDown
	case tcell.KeyUp:
		return key.KeyUp
	case tcell.KeyDown:
		return key.KeyDown
	case tcell.KeyLeft:
		return key.KeyLeft
	case tcell.KeyRight:
		return key.KeyRight
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return key.KeyF1 + key.Key(k-tcell.KeyF1)
	}
	return key.KeyNone
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}
