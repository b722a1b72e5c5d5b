package tangle

// nodeHandler pairs a listener with a removal id.
type nodeHandler struct {
	id uint32
	fn func(*Node)
}

type eventKind int

const (
	eventNodeClicked eventKind = iota
	eventSelectionChanged
)

// Handle identifies a registered widget listener and allows removing it.
type Handle struct {
	id   uint32
	w    *Widget
	kind eventKind
}

// Remove unregisters the listener so it no longer fires.
func (h Handle) Remove() {
	if h.w == nil {
		return
	}
	switch h.kind {
	case eventNodeClicked:
		h.w.clickHandlers = removeNodeHandler(h.w.clickHandlers, h.id)
	case eventSelectionChanged:
		h.w.selectionHandlers = removeNodeHandler(h.w.selectionHandlers, h.id)
	}
}

func removeNodeHandler(s []nodeHandler, id uint32) []nodeHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = nodeHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnNodeClicked registers a listener fired on every node click, including
// clicks that deselect an already-selected node.
func (w *Widget) OnNodeClicked(fn func(*Node)) Handle {
	w.nextHandlerID++
	id := w.nextHandlerID
	w.clickHandlers = append(w.clickHandlers, nodeHandler{id: id, fn: fn})
	return Handle{id: id, w: w, kind: eventNodeClicked}
}

// OnSelectionChanged registers a listener fired whenever the selection slot
// changes. The argument is the newly selected node, or nil when the selection
// was cleared.
func (w *Widget) OnSelectionChanged(fn func(*Node)) Handle {
	w.nextHandlerID++
	id := w.nextHandlerID
	w.selectionHandlers = append(w.selectionHandlers, nodeHandler{id: id, fn: fn})
	return Handle{id: id, w: w, kind: eventSelectionChanged}
}

func (w *Widget) emitNodeClicked(n *Node) {
	for _, h := range w.clickHandlers {
		h.fn(n)
	}
}

func (w *Widget) emitSelectionChanged(n *Node) {
	for _, h := range w.selectionHandlers {
		h.fn(n)
	}
}
