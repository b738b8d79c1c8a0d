package engine

import (
	"math"

	"github.com/mortencombat/stretchable"
	"github.com/mortencombat/stretchable/resource"
	"github.com/mortencombat/stretchable/style"
)

func resourceHandle(id NodeID) resource.Handle { return resource.Handle(id) }

func nan() float32 { return float32(math.NaN()) }

func isNaN(v float32) bool { return math.IsNaN(float64(v)) }

// nz collapses NaN to zero.
func nz(v float32) float32 {
	if isNaN(v) {
		return 0
	}
	return v
}

// sub is a - b, NaN when a is indefinite; never negative.
func sub(a, b float32) float32 {
	if isNaN(a) {
		return a
	}
	return fmax(a-b, 0)
}

func fmax(a, b float32) float32 {
	if isNaN(a) {
		return b
	}
	if isNaN(b) || a > b {
		return a
	}
	return b
}

// clamp bounds v by min and max where they are definite.
func clamp(v, min, max float32) float32 {
	if isNaN(v) {
		return v
	}
	if !isNaN(max) && v > max {
		v = max
	}
	if !isNaN(min) && v < min {
		v = min
	}
	return v
}

func roundf(v float32) float32 {
	return float32(math.Round(float64(v)))
}

func roundRect(r stretchable.Rect[float32]) stretchable.Rect[float32] {
	return stretchable.Rect[float32]{
		Top:    roundf(r.Top),
		Right:  roundf(r.Right),
		Bottom: roundf(r.Bottom),
		Left:   roundf(r.Left),
	}
}

// resolveRect resolves an edge rect against the containing width; auto
// edges contribute zero.
func resolveRect(r stretchable.Rect[style.Length], container float32) stretchable.Rect[float32] {
	return stretchable.Rect[float32]{
		Top:    r.Top.ResolveOrZero(container),
		Right:  r.Right.ResolveOrZero(container),
		Bottom: r.Bottom.ResolveOrZero(container),
		Left:   r.Left.ResolveOrZero(container),
	}
}

// definite returns the numeric value of a points constraint, NaN for the
// content keywords.
func definite(l style.Length) float32 {
	if l.Unit == style.UnitPoints {
		return l.Value
	}
	return nan()
}

// applyAspect derives a missing dimension from the aspect ratio.
func applyAspect(s *style.Style, w, h float32) (float32, float32) {
	if !s.HasAspectRatio() {
		return w, h
	}
	if isNaN(w) && !isNaN(h) {
		w = h * s.AspectRatio
	} else if isNaN(h) && !isNaN(w) {
		h = w / s.AspectRatio
	}
	return w, h
}

// innerConstraint narrows an available-space constraint to a content
// box: a definite own size wins, otherwise a definite constraint shrinks
// by the box edges, and content keywords pass through.
func innerConstraint(outer style.Length, content, edges float32) style.Length {
	if !isNaN(content) {
		return style.Points(content)
	}
	if outer.Unit == style.UnitPoints {
		return style.Points(fmax(outer.Value-edges, 0))
	}
	return outer
}

func mainOf(row bool, w, h float32) float32 {
	if row {
		return w
	}
	return h
}

func mainSize(row bool, c *childBox) float32 {
	return mainOf(row, c.w, c.h)
}

func crossSize(row bool, c *childBox) float32 {
	return mainOf(!row, c.w, c.h)
}

func mainMargins(row bool, c *childBox) float32 {
	if row {
		return c.margin.Left + c.margin.Right
	}
	return c.margin.Top + c.margin.Bottom
}

func crossMargins(row bool, c *childBox) float32 {
	if row {
		return c.margin.Top + c.margin.Bottom
	}
	return c.margin.Left + c.margin.Right
}

// stretchCross reports whether the child's cross size should stretch to
// fill the container: alignment resolves to stretch (the default) and
// the child's own cross size is auto.
func stretchCross(container, child *style.Style) bool {
	align := child.AlignSelf
	if align == style.AlignItemsNone {
		align = container.AlignItems
	}
	if align != style.AlignItemsNone && align != style.AlignItemsStretch {
		return false
	}
	row := container.Display == style.DisplayFlex && container.FlexDirection.IsRow()
	if row {
		return child.Size.Height.Unit == style.UnitAuto
	}
	return child.Size.Width.Unit == style.UnitAuto
}

// crossOffset positions a child on the cross axis per its resolved
// alignment.
func crossOffset(container, child *style.Style, crossContent, childCross, marginStart, marginEnd float32) float32 {
	align := child.AlignSelf
	if align == style.AlignItemsNone {
		align = container.AlignItems
	}
	if isNaN(crossContent) {
		return marginStart
	}
	free := crossContent - childCross - marginStart - marginEnd
	switch align {
	case style.AlignItemsCenter:
		return marginStart + free/2
	case style.AlignItemsEnd, style.AlignItemsFlexEnd:
		return marginStart + free
	default:
		return marginStart
	}
}

// justifyOffsets returns the leading offset and extra per-item spacing
// that distribute free main-axis space.
func justifyOffsets(j style.AlignContent, free float32, count int) (lead, between float32) {
	if isNaN(free) || free <= 0 || count == 0 {
		return 0, 0
	}
	switch j {
	case style.AlignContentCenter:
		return free / 2, 0
	case style.AlignContentEnd, style.AlignContentFlexEnd:
		return free, 0
	case style.AlignContentSpaceBetween:
		if count > 1 {
			return 0, free / float32(count-1)
		}
		return 0, 0
	case style.AlignContentSpaceAround:
		gap := free / float32(count)
		return gap / 2, gap
	case style.AlignContentSpaceEvenly:
		gap := free / float32(count+1)
		return gap, gap
	default:
		return 0, 0
	}
}
