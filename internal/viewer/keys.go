package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/bloom/internal/flower"
)

// Action is a viewer-level command triggered by a key.
type Action int

const (
	ActionNone Action = iota
	ActionEdit        // parameters changed
	ActionQuit
	ActionReset
	ActionSavePreset
	ActionToggleBounds
	ActionScreenshot
)

// hueStep is the hue rotation per C/V press, in degrees.
const hueStep = 15

type binding struct {
	key  sdl.Scancode
	help string
	edit func(p *flower.ShapeParameters)
}

func nudge(v *float32, r flower.Range, dir float32) {
	*v = r.Clamp(*v + dir*r.Step)
}

func nudgeCount(p *flower.ShapeParameters, dir int) {
	r := flower.PetalCountRange
	p.PetalCount = max(int(r.Min), min(int(r.Max), p.PetalCount+dir))
}

// bindings pairs a decrease key with an increase key for every parameter.
var bindings = []binding{
	{sdl.SCANCODE_1, "fewer petals", func(p *flower.ShapeParameters) { nudgeCount(p, -1) }},
	{sdl.SCANCODE_2, "more petals", func(p *flower.ShapeParameters) { nudgeCount(p, 1) }},
	{sdl.SCANCODE_3, "smaller", func(p *flower.ShapeParameters) { nudge(&p.PetalSize, flower.PetalSizeRange, -1) }},
	{sdl.SCANCODE_4, "larger", func(p *flower.ShapeParameters) { nudge(&p.PetalSize, flower.PetalSizeRange, 1) }},
	{sdl.SCANCODE_5, "less elongation", func(p *flower.ShapeParameters) { nudge(&p.Elongation, flower.ElongationRange, -1) }},
	{sdl.SCANCODE_6, "more elongation", func(p *flower.ShapeParameters) { nudge(&p.Elongation, flower.ElongationRange, 1) }},
	{sdl.SCANCODE_7, "less compression", func(p *flower.ShapeParameters) { nudge(&p.Compression, flower.CompressionRange, -1) }},
	{sdl.SCANCODE_8, "more compression", func(p *flower.ShapeParameters) { nudge(&p.Compression, flower.CompressionRange, 1) }},
	{sdl.SCANCODE_9, "twist left", func(p *flower.ShapeParameters) { nudge(&p.Twist, flower.TwistRange, -1) }},
	{sdl.SCANCODE_0, "twist right", func(p *flower.ShapeParameters) { nudge(&p.Twist, flower.TwistRange, 1) }},
	{sdl.SCANCODE_MINUS, "coarser noise", func(p *flower.ShapeParameters) { nudge(&p.NoiseScale, flower.NoiseScaleRange, -1) }},
	{sdl.SCANCODE_EQUALS, "finer noise", func(p *flower.ShapeParameters) { nudge(&p.NoiseScale, flower.NoiseScaleRange, 1) }},
	{sdl.SCANCODE_LEFTBRACKET, "slower noise", func(p *flower.ShapeParameters) { nudge(&p.NoiseSpeed, flower.NoiseSpeedRange, -1) }},
	{sdl.SCANCODE_RIGHTBRACKET, "faster noise", func(p *flower.ShapeParameters) { nudge(&p.NoiseSpeed, flower.NoiseSpeedRange, 1) }},
	{sdl.SCANCODE_C, "hue left", func(p *flower.ShapeParameters) { p.Color = p.Color.ShiftHue(-hueStep) }},
	{sdl.SCANCODE_V, "hue right", func(p *flower.ShapeParameters) { p.Color = p.Color.ShiftHue(hueStep) }},
}

// keyAction maps a pressed key to its action. For ActionEdit it also returns
// the edit, to be applied to the latest parameters under the store's lock.
func keyAction(key sdl.Scancode) (Action, func(*flower.ShapeParameters)) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		return ActionQuit, nil
	case sdl.SCANCODE_R:
		return ActionReset, nil
	case sdl.SCANCODE_P:
		return ActionSavePreset, nil
	case sdl.SCANCODE_B:
		return ActionToggleBounds, nil
	case sdl.SCANCODE_F12:
		return ActionScreenshot, nil
	}

	for _, b := range bindings {
		if b.key == key {
			return ActionEdit, b.edit
		}
	}
	return ActionNone, nil
}
