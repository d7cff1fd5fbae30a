package widget

// AcceptsFocus reports whether e can become the focus owner: an interactive
// control with the focus flag set, mapped, visible and active, under visible
// and active ancestors. Pages of a tabs control other than the current one
// are hidden.
func (e *Element) AcceptsFocus() bool {
	if !e.Alive() || !e.IsInteractive() || !e.CanFocus || !e.Mapped {
		return false
	}
	for n := e; n != nil; n = n.parent {
		if !n.Visible || !n.Active {
			return false
		}
		if p := n.parent; p != nil && p.Kind == KindTabs && !p.isCurrentPage(n) {
			return false
		}
	}
	return true
}

func (e *Element) isCurrentPage(c *Element) bool {
	return e.tabPos >= 0 && e.tabPos < len(e.children) && e.children[e.tabPos] == c
}

// order flattens the dialog of e in preorder
func (e *Element) order() []*Element {
	root := e.Dialog()
	if root == nil {
		root = e
		for root.parent != nil {
			root = root.parent
		}
	}
	var out []*Element
	root.Walk(func(n *Element) bool {
		out = append(out, n)
		return true
	})
	return out
}

func indexOf(list []*Element, e *Element) int {
	for i, n := range list {
		if n == e {
			return i
		}
	}
	return -1
}

// NextFocusable returns the control after e in preorder that accepts focus,
// wrapping at the end of the dialog. Nil when nothing qualifies.
func (e *Element) NextFocusable() *Element {
	list := e.order()
	i := indexOf(list, e)
	for step := 1; step <= len(list); step++ {
		n := list[(i+step+len(list))%len(list)]
		if n.AcceptsFocus() {
			return n
		}
	}
	return nil
}

// PrevFocusable is NextFocusable walking backwards
func (e *Element) PrevFocusable() *Element {
	list := e.order()
	i := indexOf(list, e)
	if i < 0 {
		i = 0
	}
	for step := 1; step <= len(list); step++ {
		n := list[((i-step)%len(list)+len(list))%len(list)]
		if n.AcceptsFocus() {
			return n
		}
	}
	return nil
}

// NextAfter returns the first focusable control following e without
// wrapping. Used to redirect a label's mnemonic to the control it captions.
func (e *Element) NextAfter() *Element {
	list := e.order()
	i := indexOf(list, e)
	if i < 0 {
		return nil
	}
	for _, n := range list[i+1:] {
		if n.AcceptsFocus() {
			return n
		}
	}
	return nil
}
