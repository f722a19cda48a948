package md2pptx_test

import (
	"context"
	"fmt"

	"github.com/cblegare/md2pptx"
)

// Example lays out a three slide deck.
func Example() {
	conv, err := md2pptx.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), md2pptx.Input{
		Markdown: "# Deck\n\n## Part One\n\n### Agenda\n* one\n* two\n",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, s := range result.Slides {
		fmt.Println(s.Number, s.Kind)
	}
	// Output:
	// 1 title
	// 2 section
	// 3 content
}

// Example_warnings shows that broken links are reported, not fatal.
func Example_warnings() {
	conv, err := md2pptx.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), md2pptx.Input{
		Markdown: "### Intro\n* see [later](#missing)\n",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(len(result.Slides), "slide")
	fmt.Println(result.Diagnostics.Len() > 0)
	// Output:
	// 1 slide
	// true
}

// Example_master selects the 4:3 master.
func Example_master() {
	conv, err := md2pptx.NewConverter(md2pptx.WithMaster("standard43"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	m := conv.Master()
	fmt.Printf("%s %.1fx%.1f in\n", m.Name, m.SlideWidth().Inches(), m.SlideHeight().Inches())
	// Output: standard43 10.0x7.5 in
}

// Example_compile stops before layout.
func Example_compile() {
	conv, err := md2pptx.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	doc, err := conv.Compile(context.Background(), md2pptx.Input{
		Markdown: "### One\n* a\n### Two\n| x | y |\n",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, s := range doc.Slides {
		fmt.Println(s.Title, s.Sequence)
	}
	// Output:
	// One [list]
	// Two [table]
}
