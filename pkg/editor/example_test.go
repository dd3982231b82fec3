package editor_test

import (
	"fmt"

	"github.com/matzehuels/sketchpad/pkg/editor"
	"github.com/matzehuels/sketchpad/pkg/tool"
)

func Example() {
	reg := tool.NewRegistry(tool.NewRand(1))
	reg.Add(tool.NewMarker("Thin", 2))

	e, _ := editor.New(reg)
	e.Subscribe(func(inv editor.Invalidation) {
		fmt.Println("repaint:", inv)
	})

	e.PointerMove(10, 10)
	e.PointerDown(10, 10)
	e.PointerMove(20, 10)
	e.PointerUp(20, 10)

	fmt.Println("shapes:", len(e.DisplayList()))
	// Output:
	// repaint: preview
	// repaint: full
	// repaint: full
	// repaint: preview
	// shapes: 1
}

func ExampleEditor_Undo() {
	reg := tool.NewRegistry(tool.NewRand(1))
	reg.Add(tool.NewMarker("Thin", 2))
	e, _ := editor.New(reg)

	e.PointerDown(0, 0)
	e.PointerUp(0, 0)

	fmt.Println(e.Undo(), len(e.DisplayList()), len(e.RedoStack()))
	fmt.Println(e.Undo())
	fmt.Println(e.Redo(), len(e.DisplayList()), len(e.RedoStack()))
	// Output:
	// true 0 1
	// false
	// true 1 0
}
