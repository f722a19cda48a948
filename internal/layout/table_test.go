package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cblegare/md2pptx/internal/deck"
	"github.com/cblegare/md2pptx/internal/options"
)

func media(sources ...string) []*deck.MediaRef {
	out := make([]*deck.MediaRef, len(sources))
	for i, s := range sources {
		if s != "" {
			out[i] = &deck.MediaRef{Kind: deck.MediaGraphic, Source: s}
		}
	}
	return out
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		grid *deck.TableGrid
		want GridClass
	}{
		{
			name: "single picture",
			grid: &deck.TableGrid{Rows: [][]string{{"a"}}, Media: [][]*deck.MediaRef{media("a.png")}},
			want: ClassGraphics,
		},
		{
			name: "three up",
			grid: &deck.TableGrid{
				Rows:  [][]string{{"a", "b"}, {"c"}},
				Media: [][]*deck.MediaRef{media("a.png", "b.png"), media("c.png")},
			},
			want: ClassGraphics,
		},
		{
			name: "text cell",
			grid: &deck.TableGrid{Rows: [][]string{{"a", "text"}}, Media: [][]*deck.MediaRef{media("a.png", "")}},
			want: ClassRuled,
		},
		{
			name: "three columns",
			grid: &deck.TableGrid{Rows: [][]string{{"a", "b", "c"}}, Media: [][]*deck.MediaRef{media("a", "b", "c")}},
			want: ClassRuled,
		},
		{
			name: "three rows",
			grid: &deck.TableGrid{
				Rows:  [][]string{{"a"}, {"b"}, {"c"}},
				Media: [][]*deck.MediaRef{media("a"), media("b"), media("c")},
			},
			want: ClassRuled,
		},
		{
			name: "plain table",
			grid: &deck.TableGrid{Rows: [][]string{{"x", "y"}}},
			want: ClassRuled,
		},
		{
			name: "empty",
			grid: &deck.TableGrid{},
			want: ClassRuled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Classify(tt.grid); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func spanGrid() *deck.TableGrid {
	return &deck.TableGrid{
		Rows: [][]string{
			{"a", "b", "c"},
			{"x", "", ""},
			{"", "y", ""},
		},
		Widths:     []int{1, 2, 1},
		Alignments: []deck.Alignment{deck.AlignLeft, deck.AlignCenter, deck.AlignRight},
		Header:     true,
	}
}

func TestRuledTable(t *testing.T) {
	t.Parallel()

	r := deck.Rectangle{Top: 0, Left: 0, Height: 4572000, Width: 4000000}

	t.Run("geometry", func(t *testing.T) {
		t.Parallel()

		st := options.DefaultStyle()
		got := RuledTable(spanGrid(), r, &st)

		if want := (deck.Rectangle{Top: 0, Left: 0, Height: 685800, Width: 4000000}); got.Rect != want {
			t.Errorf("Rect = %+v, want %+v", got.Rect, want)
		}
		if got.RowHeight != 228600 {
			t.Errorf("RowHeight = %d, want 228600", got.RowHeight)
		}
		if diff := cmp.Diff([]deck.EMU{1000000, 2000000, 1000000}, got.ColumnWidths); diff != "" {
			t.Errorf("column widths mismatch (-want +got):\n%s", diff)
		}
		if !got.Header || got.Rows != 3 || got.Columns != 3 {
			t.Errorf("Header = %v Rows = %d Columns = %d", got.Header, got.Rows, got.Columns)
		}
	})

	t.Run("spans", func(t *testing.T) {
		t.Parallel()

		st := options.DefaultStyle()
		got := RuledTable(spanGrid(), r, &st)

		type span struct {
			Row, Col, Span int
			Width          deck.EMU
		}
		var spans []span
		for _, c := range got.Cells[3:] {
			spans = append(spans, span{c.Row, c.Col, c.Span, c.Rect.Width})
		}
		want := []span{
			{1, 0, 3, 4000000},
			{2, 0, 1, 1000000},
			{2, 1, 2, 3000000},
		}
		if diff := cmp.Diff(want, spans); diff != "" {
			t.Errorf("spans mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("spanning disabled", func(t *testing.T) {
		t.Parallel()

		st := options.DefaultStyle()
		st.SpanCells = false
		got := RuledTable(spanGrid(), r, &st)
		if len(got.Cells) != 9 {
			t.Errorf("got %d cells, want 9", len(got.Cells))
		}
	})

	t.Run("fonts and alignment", func(t *testing.T) {
		t.Parallel()

		st := options.DefaultStyle()
		st.TableHeadingSize = 24
		st.CompactTables = 12
		got := RuledTable(spanGrid(), r, &st)

		if got.Cells[0].FontSize != 24 || got.Cells[3].FontSize != 12 {
			t.Errorf("font sizes = %v, %v; want 24, 12", got.Cells[0].FontSize, got.Cells[3].FontSize)
		}
		if got.Cells[1].Align != deck.AlignCenter || got.Cells[2].Align != deck.AlignRight {
			t.Errorf("alignments = %q, %q", got.Cells[1].Align, got.Cells[2].Align)
		}
	})

	t.Run("height capped by block", func(t *testing.T) {
		t.Parallel()

		st := options.DefaultStyle()
		short := deck.Rectangle{Height: 300000, Width: 4000000}
		got := RuledTable(spanGrid(), short, &st)
		if got.Rect.Height != 300000 || got.RowHeight != 100000 {
			t.Errorf("Height = %d RowHeight = %d, want 300000 and 100000", got.Rect.Height, got.RowHeight)
		}
	})

	t.Run("table margin insets", func(t *testing.T) {
		t.Parallel()

		st := options.DefaultStyle()
		st.TableMargin = 0.5
		st.MarginBase = 0.25
		got := RuledTable(spanGrid(), r, &st)
		if got.Rect.Left != 228600 || got.Rect.Width != 4000000-457200 {
			t.Errorf("Rect = %+v, want inset by a quarter inch", got.Rect)
		}
	})

	t.Run("caption below", func(t *testing.T) {
		t.Parallel()

		st := options.DefaultStyle()
		g := spanGrid()
		g.Caption = "Figures"
		got := RuledTable(g, r, &st)
		if got.Caption == nil || got.Caption.Rect.Top != got.Rect.Bottom() || got.Caption.Text != "Figures" {
			t.Errorf("Caption = %+v, want under the table", got.Caption)
		}
	})

	t.Run("empty grid has no extent", func(t *testing.T) {
		t.Parallel()

		st := options.DefaultStyle()
		got := RuledTable(&deck.TableGrid{}, r, &st)
		if !got.Rect.Empty() || len(got.Cells) != 0 {
			t.Errorf("empty table = %+v, want zero extent", got)
		}
	})
}

func TestLayoutGrid(t *testing.T) {
	t.Parallel()

	st := options.DefaultStyle()
	st.MarginBase = 0
	r := deck.Rectangle{Top: 0, Left: 0, Height: 2000, Width: 2000}
	sizes := fakeSizes{"wide": {200, 100}, "tall": {100, 200}, "square": {10, 10}}

	t.Run("two by two", func(t *testing.T) {
		t.Parallel()

		g := &deck.TableGrid{
			Rows:  [][]string{{"a", "b"}, {"c", "d"}},
			Media: [][]*deck.MediaRef{media("wide", "tall"), media("square", "wide")},
		}
		got, ok := New(nil, sizes).layoutGrid(g, r, &st)
		if !ok {
			t.Fatal("layoutGrid() skipped the block")
		}
		var rects []deck.Rectangle
		for _, tile := range got.Tiles {
			rects = append(rects, tile.Rect)
		}
		want := []deck.Rectangle{
			{Top: 250, Left: 0, Height: 500, Width: 1000},
			{Top: 0, Left: 1250, Height: 1000, Width: 500},
			{Top: 1000, Left: 0, Height: 1000, Width: 1000},
			{Top: 1250, Left: 1000, Height: 500, Width: 1000},
		}
		if diff := cmp.Diff(want, rects); diff != "" {
			t.Errorf("tiles mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("three up centers the single bottom tile", func(t *testing.T) {
		t.Parallel()

		g := &deck.TableGrid{
			Rows:  [][]string{{"a", "b"}, {"c"}},
			Media: [][]*deck.MediaRef{media("square", "square"), media("square")},
		}
		got, ok := New(nil, sizes).layoutGrid(g, r, &st)
		if !ok || len(got.Tiles) != 3 {
			t.Fatalf("layoutGrid() = %+v, %v", got, ok)
		}
		if want := (deck.Rectangle{Top: 1000, Left: 500, Height: 1000, Width: 1000}); got.Tiles[2].Rect != want {
			t.Errorf("bottom tile = %+v, want %+v", got.Tiles[2].Rect, want)
		}
	})

	t.Run("single tile fills the block", func(t *testing.T) {
		t.Parallel()

		g := &deck.TableGrid{Rows: [][]string{{"a"}}, Media: [][]*deck.MediaRef{media("wide")}}
		got, ok := New(nil, sizes).layoutGrid(g, r, &st)
		if !ok {
			t.Fatal("layoutGrid() skipped the block")
		}
		if want := (deck.Rectangle{Top: 500, Left: 0, Height: 1000, Width: 2000}); got.Tiles[0].Rect != want {
			t.Errorf("tile = %+v, want %+v", got.Tiles[0].Rect, want)
		}
	})

	t.Run("unknown size skips the block", func(t *testing.T) {
		t.Parallel()

		g := &deck.TableGrid{Rows: [][]string{{"a"}}, Media: [][]*deck.MediaRef{media("missing")}}
		if _, ok := New(nil, sizes).layoutGrid(g, r, &st); ok {
			t.Error("layoutGrid() = ok, want skipped")
		}
	})

	t.Run("video needs no probe", func(t *testing.T) {
		t.Parallel()

		v := &deck.MediaRef{Kind: deck.MediaVideo, Source: "v.mp4", Width: 400, Height: 200}
		g := &deck.TableGrid{Rows: [][]string{{"v"}}, Media: [][]*deck.MediaRef{{v}}}
		got, ok := New(nil, nil).layoutGrid(g, r, &st)
		if !ok || got.Tiles[0].Rect.Width != 2000 || got.Tiles[0].Rect.Height != 1000 {
			t.Errorf("layoutGrid() = %+v, %v", got, ok)
		}
	})
}
