// Package md2pptx lays out Markdown decks as presentation slides.
//
// # Quick Start
//
// Create a converter and convert markdown:
//
//	conv, err := md2pptx.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2pptx.Input{
//	    Markdown:  "# Deck\n\n### Agenda\n* one\n* two",
//	    SourceDir: "talks/",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, _ := result.MarshalLayout()
//	os.WriteFile("talk.layout.yaml", data, 0644)
//
// The result holds the compiled document (result.Document), one geometry
// record per slide (result.Slides) and the warnings collected on the way
// (result.Diagnostics). Geometry is in EMU, the integer unit of
// presentation files (914400 per inch).
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Normalization (comments, metadata block, joined lines, footnote and
//     reference definitions)
//  2. Compilation of headings, lists, cards, tables and code into slides
//  3. Link resolution (cross references, footnote, glossary, task and
//     table of contents slides)
//  4. Media probing, with a bounded number of concurrent probes
//  5. Layout against the slide master
//
// Problems that only affect part of a deck, such as a missing picture or an
// unknown option, are recorded as warnings and the run continues. Only an
// empty document, an unusable master or cancellation fail a conversion.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2pptx.NewConverter(
//	    md2pptx.WithMaster("standard43"),
//	    md2pptx.WithAssetPath("/path/to/custom/assets"),
//	    md2pptx.WithStyleOverrides(map[string]string{"baseTextSize": "20"}),
//	)
//
// Style overrides set option defaults; a deck's own metadata block and
// inline directives still take precedence.
//
// # Custom Masters
//
// A custom asset directory holds masters/<name>.yaml files. Masters found
// there shadow the embedded "default" and "standard43" masters; names not
// found there fall back to the embedded ones.
//
// # Parallel Processing
//
// A Converter is safe for concurrent use. Use ResolvePoolSize to size a
// worker pool for batch conversion.
package md2pptx
