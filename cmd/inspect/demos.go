package main

import (
	"fmt"

	"github.com/mortencombat/stretchable"
	"github.com/mortencombat/stretchable/host"
	"github.com/mortencombat/stretchable/style"
)

func buildDemo(name string) (*demo, error) {
	switch name {
	case "flex":
		return buildFlexDemo()
	case "grid":
		return buildGridDemo()
	case "measure":
		return buildMeasureDemo()
	default:
		return nil, fmt.Errorf("unknown demo %q (want flex, grid or measure)", name)
	}
}

// buildFlexDemo constructs a classic holy-grail page: header and footer
// bands with a three-column flexible body.
func buildFlexDemo() (*demo, error) {
	h := host.New()
	tree, err := h.InitTree()
	if err != nil {
		return nil, err
	}

	rootRaw := column()
	rootRaw.Size = pctSize(1, 1)
	rootRaw.Padding = uniformRect(10)
	rootRaw.Gap = ptGap(8)

	bodyRaw := row()
	bodyRaw.FlexGrow = 1
	bodyRaw.Gap = ptGap(8)

	sidebarRaw := style.DefaultRaw()
	sidebarRaw.Size.Width = style.RawPoints(200)

	contentRaw := style.DefaultRaw()
	contentRaw.FlexGrow = 1

	asideRaw := style.DefaultRaw()
	asideRaw.Size.Width = style.RawPoints(150)

	headerRaw := style.DefaultRaw()
	headerRaw.Size.Height = style.RawPoints(60)

	footerRaw := style.DefaultRaw()
	footerRaw.Size.Height = style.RawPoints(40)

	b := builder{h: h, tree: tree}
	root := b.node("root", rootRaw,
		b.node("header", headerRaw),
		b.node("body", bodyRaw,
			b.node("sidebar", sidebarRaw),
			b.node("content", contentRaw),
			b.node("aside", asideRaw),
		),
		b.node("footer", footerRaw),
	)
	if b.err != nil {
		h.Close()
		return nil, b.err
	}
	return &demo{name: "flex", host: h, tree: tree, root: root}, nil
}

// buildGridDemo constructs a grid container with a repeated fractional
// column template and six cells.
func buildGridDemo() (*demo, error) {
	h := host.New()
	tree, err := h.InitTree()
	if err != nil {
		return nil, err
	}

	fr := style.RawTrackSize{
		Min: style.RawAuto(),
		Max: style.RawLength{Dim: style.TagFraction, Value: 1},
	}

	rootRaw := style.DefaultRaw()
	rootRaw.Display = int32(style.DisplayGrid)
	rootRaw.Size = pctSize(1, 1)
	rootRaw.Gap = ptGap(4)
	rootRaw.GridTemplateColumns = []style.RawTrack{{Repetition: 3, Repeat: []style.RawTrackSize{fr}}}
	rootRaw.GridTemplateRows = []style.RawTrack{
		{Repetition: style.RawRepeatSingle, Single: fr},
		{Repetition: style.RawRepeatSingle, Single: fr},
	}

	cellRaw := style.DefaultRaw()
	cellRaw.Size.Height = style.RawPoints(80)

	b := builder{h: h, tree: tree}
	cells := make([]*demoNode, 6)
	for i := range cells {
		cells[i] = b.node(fmt.Sprintf("cell-%d", i+1), cellRaw)
	}
	root := b.node("grid", rootRaw, cells...)
	if b.err != nil {
		h.Close()
		return nil, b.err
	}
	return &demo{name: "grid", host: h, tree: tree, root: root}, nil
}

// buildMeasureDemo constructs a column of intrinsically sized text
// leaves. The measure callback sizes each label as monospace text
// wrapped to the available width.
func buildMeasureDemo() (*demo, error) {
	h := host.New()
	tree, err := h.InitTree()
	if err != nil {
		return nil, err
	}

	rootRaw := column()
	rootRaw.Size.Width = style.RawPoints(320)
	rootRaw.Padding = uniformRect(12)
	rootRaw.Gap = ptGap(6)

	labels := []string{
		"Short line",
		"A somewhat longer line of text that will wrap",
		"The quick brown fox jumps over the lazy dog, twice over, to demonstrate wrapping",
	}

	b := builder{h: h, tree: tree}
	texts := make([]*demoNode, len(labels))
	byHandle := map[uint64]string{}
	for i, label := range labels {
		texts[i] = b.node(fmt.Sprintf("text-%d", i+1), style.DefaultRaw())
		if b.err == nil {
			if err := h.SetMeasureContext(tree, texts[i].handle, true); err != nil {
				b.err = err
			}
			byHandle[uint64(texts[i].handle)] = label
		}
	}
	root := b.node("root", rootRaw, texts...)
	if b.err != nil {
		h.Close()
		return nil, b.err
	}

	const charW, lineH = 7.2, 16.0
	measure := func(known stretchable.Size[float32], available style.RawSize, ctx uint64) (stretchable.Size[float32], error) {
		label, ok := byHandle[ctx]
		if !ok {
			return stretchable.SizeZero(), fmt.Errorf("no label for context %d", ctx)
		}
		textW := float32(len(label)) * charW
		maxW := known.Width
		if isUnknown(maxW) && available.Width.Dim == style.TagPoints {
			maxW = available.Width.Value
		}
		lines := float32(1)
		if !isUnknown(maxW) && maxW > 0 && textW > maxW {
			lines = float32(int(textW/maxW)) + 1
			textW = maxW
		}
		return stretchable.Size[float32]{Width: textW, Height: lines * lineH}, nil
	}

	return &demo{name: "measure", host: h, tree: tree, root: root, measure: measure}, nil
}

type builder struct {
	h    *host.Host
	tree host.TreeHandle
	err  error
}

func (b *builder) node(name string, raw style.RawStyle, children ...*demoNode) *demoNode {
	if b.err != nil {
		return &demoNode{name: name}
	}
	hnd, err := b.h.CreateNodeWithStyle(b.tree, raw)
	if err != nil {
		b.err = err
		return &demoNode{name: name}
	}
	n := &demoNode{name: name, handle: hnd, children: children}
	for _, c := range children {
		if b.err != nil {
			break
		}
		if err := b.h.AddChild(b.tree, hnd, c.handle); err != nil {
			b.err = err
		}
	}
	return n
}

func isUnknown(v float32) bool { return v != v }

func row() style.RawStyle {
	return style.DefaultRaw()
}

func column() style.RawStyle {
	raw := style.DefaultRaw()
	raw.FlexDirection = int32(style.FlexDirectionColumn)
	return raw
}

func pctSize(w, h float32) style.RawSize {
	return style.RawSize{Width: style.RawPercent(w), Height: style.RawPercent(h)}
}

func ptGap(v float32) style.RawSize {
	return style.RawSize{Width: style.RawPoints(v), Height: style.RawPoints(v)}
}

func uniformRect(v float32) style.RawRect {
	p := style.RawPoints(v)
	return style.RawRect{Left: p, Right: p, Top: p, Bottom: p}
}
