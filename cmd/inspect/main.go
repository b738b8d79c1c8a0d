package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mortencombat/stretchable"
	"github.com/mortencombat/stretchable/host"
	"github.com/mortencombat/stretchable/style"
)

func main() {
	var (
		demoName  = flag.String("demo", "flex", "Demo tree to load (flex, grid, measure)")
		printOnly = flag.Bool("print", false, "Dump the computed layout tree and exit")
		width     = flag.Float64("width", 800, "Available width in points")
		height    = flag.Float64("height", 600, "Available height in points")
	)
	flag.Parse()

	d, err := buildDemo(*demoName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer d.host.Close()

	if *printOnly || !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := printTree(d, float32(*width), float32(*height)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runInteractive(d, float32(*width), float32(*height)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// demoNode mirrors the constructed tree so the inspector can walk it
// without extra traversal surface on the host.
type demoNode struct {
	name     string
	handle   host.NodeHandle
	children []*demoNode
}

type demo struct {
	name    string
	host    *host.Host
	tree    host.TreeHandle
	root    *demoNode
	measure host.MeasureCallback
}

func (d *demo) compute(w, h float32) error {
	avail := style.RawSize{Width: style.RawPoints(w), Height: style.RawPoints(h)}
	if d.measure != nil {
		return d.host.ComputeLayoutWithMeasure(d.tree, d.root.handle, avail, d.measure)
	}
	return d.host.ComputeLayout(d.tree, d.root.handle, avail)
}

func printTree(d *demo, w, h float32) error {
	if err := d.compute(w, h); err != nil {
		return err
	}
	fmt.Printf("Demo: %s (available %gx%g)\n\n", d.name, w, h)
	var walk func(n *demoNode, depth int) error
	walk = func(n *demoNode, depth int) error {
		l, err := d.host.GetLayout(d.tree, n.handle)
		if err != nil {
			return err
		}
		fmt.Printf("%s%-14s %s\n", strings.Repeat("  ", depth), n.name, formatLayout(l))
		for _, c := range n.children {
			if err := walk(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(d.root, 0)
}

func formatLayout(l stretchable.Layout) string {
	return fmt.Sprintf("at (%g, %g) size %gx%g content %gx%g",
		l.Location.X, l.Location.Y,
		l.Size.Width, l.Size.Height,
		l.ContentSize.Width, l.ContentSize.Height)
}
