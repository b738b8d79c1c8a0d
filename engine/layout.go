package engine

import (
	"github.com/mortencombat/stretchable"
	"github.com/mortencombat/stretchable/errors"
	"github.com/mortencombat/stretchable/style"
)

// ComputeLayout computes geometry for the subtree rooted at root without
// measure support: leaves with no definite size resolve to zero.
func (t *Tree) ComputeLayout(root NodeID, available stretchable.Size[style.Length]) error {
	return t.ComputeLayoutWithMeasure(root, available, nil)
}

// ComputeLayoutWithMeasure computes geometry for the subtree rooted at
// root, consulting measure for leaves that carry a context and lack
// definite dimensions. The pass runs synchronously to completion; on
// success every node in the subtree has fresh layout and a cleared dirty
// flag, on failure dirty flags are left untouched.
func (t *Tree) ComputeLayoutWithMeasure(root NodeID, available stretchable.Size[style.Length], measure MeasureFunc) error {
	n, err := t.get(root, errors.PhaseCompute)
	if err != nil {
		return err
	}
	for _, l := range []style.Length{available.Width, available.Height} {
		switch l.Unit {
		case style.UnitPoints, style.UnitMinContent, style.UnitMaxContent:
		default:
			return errors.InvalidInput(errors.PhaseCompute,
				"available space must be points, min-content or max-content, got "+l.Unit.String())
		}
	}

	p := &layoutPass{tree: t, measure: measure}
	parentW := definite(available.Width)
	parentH := definite(available.Height)
	p.sizeNode(root, n, nan(), nan(), parentW, parentH, available)
	n.layout.Location = stretchable.Point[float32]{}
	n.layout.Order = 0

	if t.rounding {
		p.roundSubtree(root)
	}
	return nil
}

type layoutPass struct {
	tree    *Tree
	measure MeasureFunc
}

// sizeNode computes and records the layout of one node and its subtree,
// returning the node's border-box size. forceW/forceH override the
// style-resolved size (used for flex-grow and cross-axis stretch);
// parentW/parentH are the parent's content-box dimensions against which
// percentages resolve; avail is the remaining available-space constraint.
//
// Locations of children are assigned relative to this node's content
// box; the node's own location is assigned by its parent.
func (p *layoutPass) sizeNode(id NodeID, n *node, forceW, forceH, parentW, parentH float32, avail stretchable.Size[style.Length]) (float32, float32) {
	s := &n.style

	if s.Display == style.DisplayNone {
		p.zeroSubtree(id, n)
		return 0, 0
	}

	margin := resolveRect(s.Margin, parentW)
	border := resolveRect(s.Border, parentW)
	padding := resolveRect(s.Padding, parentW)

	var sb stretchable.Size[float32]
	if s.Overflow.Y == style.OverflowScroll {
		sb.Width = s.ScrollbarWidth
	}
	if s.Overflow.X == style.OverflowScroll {
		sb.Height = s.ScrollbarWidth
	}

	edgesW := border.Left + border.Right + padding.Left + padding.Right + sb.Width
	edgesH := border.Top + border.Bottom + padding.Top + padding.Bottom + sb.Height

	w := forceW
	if isNaN(w) {
		w = s.Size.Width.Resolve(parentW)
	}
	h := forceH
	if isNaN(h) {
		h = s.Size.Height.Resolve(parentH)
	}
	w, h = applyAspect(s, w, h)

	var contentW, contentH float32
	if len(n.children) == 0 {
		w, h = p.sizeLeaf(n, w, h, edgesW, edgesH, avail)
		contentW, contentH = w, h
	} else {
		w, h, contentW, contentH = p.sizeContainer(n, w, h, edgesW, edgesH, avail)
	}

	w = clamp(w, s.MinSize.Width.Resolve(parentW), s.MaxSize.Width.Resolve(parentW))
	h = clamp(h, s.MinSize.Height.Resolve(parentH), s.MaxSize.Height.Resolve(parentH))

	n.layout.Size = stretchable.Size[float32]{Width: w, Height: h}
	n.layout.ContentSize = stretchable.Size[float32]{
		Width:  fmax(contentW, w),
		Height: fmax(contentH, h),
	}
	n.layout.ScrollbarSize = sb
	n.layout.Border = border
	n.layout.Padding = padding
	n.layout.Margin = margin
	n.hasLayout = true
	n.dirty = false
	return w, h
}

// sizeLeaf resolves a leaf's missing dimensions through its measure
// context, or to its edge sum when the leaf is not measurable. Both
// dimensions known short-circuits without invoking measure.
func (p *layoutPass) sizeLeaf(n *node, w, h, edgesW, edgesH float32, avail stretchable.Size[style.Length]) (float32, float32) {
	if !isNaN(w) && !isNaN(h) {
		return w, h
	}

	if p.measure != nil && n.hasCtx {
		known := stretchable.Size[float32]{Width: w, Height: h}
		measured := p.measure(known, avail, n.context)
		// Measured sizes are content sizes. NaN is recorded as-is: it
		// is the substitution sentinel for failed callbacks.
		if isNaN(w) {
			w = measured.Width
			if !isNaN(w) {
				w += edgesW
			}
		}
		if isNaN(h) {
			h = measured.Height
			if !isNaN(h) {
				h += edgesH
			}
		}
		w, h = applyAspect(&n.style, w, h)
		return w, h
	}

	if isNaN(w) {
		w = edgesW
	}
	if isNaN(h) {
		h = edgesH
	}
	return w, h
}

type childBox struct {
	id     NodeID
	n      *node
	w, h   float32
	margin stretchable.Rect[float32]
	grow   float32
}

// sizeContainer lays out a container's children by stacking them along
// the container's main axis. Grid containers stack like column flex
// containers.
func (p *layoutPass) sizeContainer(n *node, w, h, edgesW, edgesH float32, avail stretchable.Size[style.Length]) (float32, float32, float32, float32) {
	s := &n.style

	row := s.Display == style.DisplayFlex && s.FlexDirection.IsRow()
	reverse := s.Display == style.DisplayFlex && s.FlexDirection.IsReverse()

	contentW := sub(w, edgesW)
	contentH := sub(h, edgesH)

	innerAvail := stretchable.Size[style.Length]{
		Width:  innerConstraint(avail.Width, contentW, edgesW),
		Height: innerConstraint(avail.Height, contentH, edgesH),
	}

	var flow []childBox
	var absolute []childBox
	for _, cid := range n.children {
		cn, ok := p.tree.nodes.Get(resourceHandle(cid))
		if !ok {
			continue
		}
		if cn.style.Display == style.DisplayNone {
			p.zeroSubtree(cid, cn)
			continue
		}
		box := childBox{id: cid, n: cn, grow: cn.style.FlexGrow}
		if cn.style.Position == style.PositionAbsolute {
			absolute = append(absolute, box)
			continue
		}
		flow = append(flow, box)
	}

	// First pass: natural sizes.
	for i := range flow {
		c := &flow[i]
		forceMainW, forceMainH := nan(), nan()
		if basis := c.n.style.FlexBasis.Resolve(mainOf(row, contentW, contentH)); !isNaN(basis) {
			if row {
				forceMainW = basis
			} else {
				forceMainH = basis
			}
		}
		c.w, c.h = p.sizeNode(c.id, c.n, forceMainW, forceMainH, contentW, contentH, innerAvail)
		c.margin = c.n.layout.Margin
	}

	gap := mainOf(row, s.Gap.Width.ResolveOrZero(contentW), s.Gap.Height.ResolveOrZero(contentH))

	totalMain := float32(0)
	growSum := float32(0)
	for i := range flow {
		c := &flow[i]
		totalMain += nz(mainSize(row, c)) + mainMargins(row, c)
		growSum += c.grow
	}
	if len(flow) > 1 {
		totalMain += gap * float32(len(flow)-1)
	}

	// Distribute leftover main-axis space to growing children.
	mainContent := mainOf(row, contentW, contentH)
	if !isNaN(mainContent) && growSum > 0 {
		leftover := mainContent - totalMain
		if leftover > 0 {
			for i := range flow {
				c := &flow[i]
				if c.grow == 0 {
					continue
				}
				extra := leftover * c.grow / growSum
				fw, fh := nan(), nan()
				if row {
					fw = nz(c.w) + extra
				} else {
					fh = nz(c.h) + extra
				}
				c.w, c.h = p.sizeNode(c.id, c.n, fw, fh, contentW, contentH, innerAvail)
			}
			totalMain = mainContent
		}
	}

	maxCross := float32(0)
	for i := range flow {
		c := &flow[i]
		maxCross = fmax(maxCross, nz(crossSize(row, c))+crossMargins(row, c))
	}

	// Auto container sizes derive from content.
	if isNaN(w) {
		if row {
			w = totalMain + edgesW
		} else {
			w = maxCross + edgesW
		}
	}
	if isNaN(h) {
		if row {
			h = maxCross + edgesH
		} else {
			h = totalMain + edgesH
		}
	}
	contentW = sub(w, edgesW)
	contentH = sub(h, edgesH)

	// Second pass: cross-axis stretch for auto-sized children.
	crossContent := mainOf(!row, contentW, contentH)
	for i := range flow {
		c := &flow[i]
		if !stretchCross(s, &c.n.style) || isNaN(crossContent) {
			continue
		}
		target := crossContent - crossMargins(row, c)
		if nz(crossSize(row, c)) == target {
			continue
		}
		fw, fh := nan(), nan()
		if row {
			fw, fh = c.w, target
		} else {
			fw, fh = target, c.h
		}
		c.w, c.h = p.sizeNode(c.id, c.n, fw, fh, contentW, contentH, innerAvail)
	}

	// Position flow children relative to the content box.
	lead, between := justifyOffsets(s.JustifyContent, mainOf(row, contentW, contentH)-totalMain, len(flow))
	cursor := lead
	ordered := make([]*childBox, len(flow))
	for i := range flow {
		ordered[i] = &flow[i]
	}
	if reverse {
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}
	for _, c := range ordered {
		var x, y float32
		if row {
			x = cursor + c.margin.Left
			y = crossOffset(s, &c.n.style, crossContent, nz(c.h), c.margin.Top, c.margin.Bottom)
		} else {
			x = crossOffset(s, &c.n.style, crossContent, nz(c.w), c.margin.Left, c.margin.Right)
			y = cursor + c.margin.Top
		}
		c.n.layout.Location = stretchable.Point[float32]{X: x, Y: y}
		cursor += nz(mainSize(row, c)) + mainMargins(row, c) + gap + between
	}
	for i := range flow {
		flow[i].n.layout.Order = uint32(i)
	}

	// Absolutely positioned children resolve against the content box.
	for i := range absolute {
		c := &absolute[i]
		p.placeAbsolute(c, contentW, contentH, innerAvail)
		c.n.layout.Order = uint32(len(flow) + i)
	}

	// Content extent, for overflow reporting.
	cw, ch := float32(0), float32(0)
	for i := range flow {
		c := &flow[i]
		cw = fmax(cw, c.n.layout.Location.X+nz(c.w)+c.margin.Right)
		ch = fmax(ch, c.n.layout.Location.Y+nz(c.h)+c.margin.Bottom)
	}
	for i := range absolute {
		c := &absolute[i]
		cw = fmax(cw, c.n.layout.Location.X+nz(c.w))
		ch = fmax(ch, c.n.layout.Location.Y+nz(c.h))
	}
	cw += edgesW
	ch += edgesH

	return w, h, cw, ch
}

// placeAbsolute sizes and positions one absolutely positioned child
// against its parent's content box.
func (p *layoutPass) placeAbsolute(c *childBox, contentW, contentH float32, avail stretchable.Size[style.Length]) {
	cs := &c.n.style
	left := cs.Inset.Left.Resolve(contentW)
	right := cs.Inset.Right.Resolve(contentW)
	top := cs.Inset.Top.Resolve(contentH)
	bottom := cs.Inset.Bottom.Resolve(contentH)

	forceW, forceH := nan(), nan()
	if isNaN(cs.Size.Width.Resolve(contentW)) && !isNaN(left) && !isNaN(right) && !isNaN(contentW) {
		forceW = contentW - left - right
	}
	if isNaN(cs.Size.Height.Resolve(contentH)) && !isNaN(top) && !isNaN(bottom) && !isNaN(contentH) {
		forceH = contentH - top - bottom
	}

	c.w, c.h = p.sizeNode(c.id, c.n, forceW, forceH, contentW, contentH, avail)
	c.margin = c.n.layout.Margin

	x := c.margin.Left
	switch {
	case !isNaN(left):
		x = left + c.margin.Left
	case !isNaN(right) && !isNaN(contentW):
		x = contentW - right - nz(c.w) - c.margin.Right
	}
	y := c.margin.Top
	switch {
	case !isNaN(top):
		y = top + c.margin.Top
	case !isNaN(bottom) && !isNaN(contentH):
		y = contentH - bottom - nz(c.h) - c.margin.Bottom
	}
	c.n.layout.Location = stretchable.Point[float32]{X: x, Y: y}
}

// zeroSubtree records a zero layout for a display:none subtree.
func (p *layoutPass) zeroSubtree(id NodeID, n *node) {
	n.layout = stretchable.Layout{}
	n.hasLayout = true
	n.dirty = false
	for _, cid := range n.children {
		if cn, ok := p.tree.nodes.Get(resourceHandle(cid)); ok {
			p.zeroSubtree(cid, cn)
		}
	}
}

// roundSubtree snaps a computed subtree to whole units.
func (p *layoutPass) roundSubtree(id NodeID) {
	n, ok := p.tree.nodes.Get(resourceHandle(id))
	if !ok {
		return
	}
	l := &n.layout
	l.Location.X = roundf(l.Location.X)
	l.Location.Y = roundf(l.Location.Y)
	l.Size.Width = roundf(l.Size.Width)
	l.Size.Height = roundf(l.Size.Height)
	l.ContentSize.Width = roundf(l.ContentSize.Width)
	l.ContentSize.Height = roundf(l.ContentSize.Height)
	l.ScrollbarSize.Width = roundf(l.ScrollbarSize.Width)
	l.ScrollbarSize.Height = roundf(l.ScrollbarSize.Height)
	l.Border = roundRect(l.Border)
	l.Padding = roundRect(l.Padding)
	l.Margin = roundRect(l.Margin)
	for _, cid := range n.children {
		p.roundSubtree(cid)
	}
}
