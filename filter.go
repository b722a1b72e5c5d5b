package tangle

import (
	"regexp"

	"github.com/tanema/gween/ease"

	"github.com/softbranch/tangle/scene"
)

const (
	filterMatchScale    = 3.0
	filterTweenDuration = 0.5 // seconds
	filterTweenDelay    = 0.1 // seconds
)

// FilterNodes highlights nodes whose name contains text by scaling them up;
// all other nodes return to normal size. Matching is substring-based with the
// text treated literally (regex metacharacters carry no meaning) and honors
// the CaseInsensitive setting. Empty text restores every node.
//
// With animate, scales transition through a tween; any in-flight scale tween
// on a node is cancelled first so repeated keystrokes do not fight each other.
func (w *Widget) FilterNodes(text string, animate bool) {
	w.filterText = text

	var re *regexp.Regexp
	if text != "" {
		pattern := regexp.QuoteMeta(text)
		if w.cfg.CaseInsensitive {
			pattern = "(?i)" + pattern
		}
		re = regexp.MustCompile(pattern)
	}

	for _, nv := range w.nodeVisuals {
		target := 1.0
		if re != nil && re.MatchString(nv.node.Name) {
			target = filterMatchScale
		}
		w.sc.CancelTweens(nv.circle)
		if animate {
			w.sc.AddTween(scene.TweenScale(nv.circle, target, filterTweenDuration, filterTweenDelay, ease.OutQuad))
		} else {
			nv.circle.SetScale(target)
		}
	}
}
