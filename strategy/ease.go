package strategy

import "github.com/tanema/gween/ease"

var easings = map[string]ease.TweenFunc{
	"Linear":     ease.Linear,
	"InQuad":     ease.InQuad,
	"OutQuad":    ease.OutQuad,
	"InOutQuad":  ease.InOutQuad,
	"InCubic":    ease.InCubic,
	"OutCubic":   ease.OutCubic,
	"InOutCubic": ease.InOutCubic,
	"InSine":     ease.InSine,
	"OutSine":    ease.OutSine,
	"InOutSine":  ease.InOutSine,
	"OutBack":    ease.OutBack,
	"OutBounce":  ease.OutBounce,
}

// EaseByName returns the named gween easing curve, or Linear.
func EaseByName(name string) ease.TweenFunc {
	if fn, ok := easings[name]; ok {
		return fn
	}
	return ease.Linear
}
