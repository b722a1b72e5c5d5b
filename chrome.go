package tangle

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/softbranch/tangle/scene"
)

const (
	chromeMargin     = 8
	searchBoxWidth   = 160
	searchBoxHeight  = 20
	clearButtonSize  = 20
	chromeTextSize   = 10
	chromeTextInsetX = 4
	chromeTextInsetY = 10
)

var (
	chromeBoxFill      = scene.Color{R: 0.12, G: 0.12, B: 0.12, A: 0.85}
	chromeBoxFocusFill = scene.Color{R: 0.2, G: 0.2, B: 0.2, A: 0.9}
	chromeTextColor    = scene.ColorWhite
)

// chrome is the widget's fixed overlay: a search box that drives the node
// filter and a clear button that resets both the selection and the filter.
// It lives outside the pan/zoom transform.
type chrome struct {
	w *Widget

	root       *scene.Node
	searchBox  *scene.Node
	searchText *scene.Node
	clearBtn   *scene.Node
	clearText  *scene.Node

	focused bool
	text    []rune
	runeBuf []rune
}

func newChrome(w *Widget) *chrome {
	c := &chrome{w: w}

	c.root = scene.NewContainer("tangle-chrome")
	c.root.Interactable = true

	c.searchBox = scene.NewRect("tangle-search", searchBoxWidth, searchBoxHeight, chromeBoxFill)
	c.searchBox.Interactable = true
	c.searchBox.OnClick = func(scene.ClickContext) {
		c.setFocused(true)
	}

	c.searchText = scene.NewText("tangle-search-text", "", chromeTextSize)
	c.searchText.TextColor = chromeTextColor
	c.searchText.SetPosition(chromeTextInsetX, chromeTextInsetY)
	c.searchBox.AddChild(c.searchText)

	c.clearBtn = scene.NewRect("tangle-clear", clearButtonSize, clearButtonSize, chromeBoxFill)
	c.clearBtn.Interactable = true
	c.clearBtn.OnClick = func(scene.ClickContext) {
		c.clear()
	}

	c.clearText = scene.NewText("tangle-clear-text", "x", chromeTextSize)
	c.clearText.TextColor = chromeTextColor
	c.clearText.SetPosition(chromeTextInsetX+2, chromeTextInsetY)
	c.clearBtn.AddChild(c.clearText)

	c.root.AddChild(c.searchBox)
	c.root.AddChild(c.clearBtn)
	w.root.AddChild(c.root)

	// Clicking anywhere other than the search box drops keyboard focus.
	w.sc.OnClick(func(ctx scene.ClickContext) {
		if ctx.Node != c.searchBox {
			c.setFocused(false)
		}
	})

	c.layout(w.width, w.height)
	return c
}

func (c *chrome) setFocused(focused bool) {
	c.focused = focused
	if focused {
		c.searchBox.Fill = chromeBoxFocusFill
	} else {
		c.searchBox.Fill = chromeBoxFill
	}
}

// layout pins the chrome to the top-left corner.
func (c *chrome) layout(_, _ float64) {
	c.searchBox.SetPosition(chromeMargin, chromeMargin)
	c.clearBtn.SetPosition(chromeMargin+searchBoxWidth+4, chromeMargin)
}

// clear resets the selection, the search text, and the filter in one step.
// The filter reset is immediate, not animated.
func (c *chrome) clear() {
	c.w.ClearSelection()
	c.text = c.text[:0]
	c.searchText.Content = ""
	c.w.FilterNodes("", false)
}

// update consumes keyboard input while the search box is focused. Every edit
// reruns the filter with animation.
func (c *chrome) update(_ float64) {
	if !c.focused {
		return
	}

	changed := false
	c.runeBuf = ebiten.AppendInputChars(c.runeBuf[:0])
	for _, r := range c.runeBuf {
		if r >= ' ' {
			c.text = append(c.text, r)
			changed = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(c.text) > 0 {
		c.text = c.text[:len(c.text)-1]
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		c.setFocused(false)
	}

	if changed {
		c.searchText.Content = string(c.text)
		c.w.FilterNodes(string(c.text), true)
	}
}
