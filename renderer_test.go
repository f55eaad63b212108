package moodle2pdf

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestFactoryFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		engine  string
		want    BrowserFactory
		wantErr bool
	}{
		{engine: "", want: newRodBrowser},
		{engine: EngineRod, want: newRodBrowser},
		{engine: EngineChromedp, want: newChromedpBrowser},
		{engine: "firefox", wantErr: true},
		{engine: "Rod", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			t.Parallel()

			got, err := FactoryFor(tt.engine)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownEngine) {
					t.Errorf("FactoryFor(%q) = %v, want ErrUnknownEngine", tt.engine, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FactoryFor(%q) unexpected error: %v", tt.engine, err)
			}
			if reflect.ValueOf(got).Pointer() != reflect.ValueOf(tt.want).Pointer() {
				t.Errorf("FactoryFor(%q) returned the wrong backend", tt.engine)
			}
		})
	}
}

func TestFactories_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, engine := range []string{EngineRod, EngineChromedp} {
		factory, err := FactoryFor(engine)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := factory(ctx, LaunchOptions{}); !errors.Is(err, context.Canceled) {
			t.Errorf("%s factory with cancelled context = %v, want context.Canceled", engine, err)
		}
	}
}

func TestDefaultPrintOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultPrintOptions()

	if opts.Landscape {
		t.Error("default should be portrait")
	}
	if opts.DisplayHeaderFooter {
		t.Error("default should have no header or footer")
	}
	if !opts.PrintBackground {
		t.Error("default should print backgrounds")
	}
	if !opts.PreferCSSPageSize {
		t.Error("default should prefer the page's CSS size")
	}
	if opts.PaperWidth != a4WidthInches || opts.PaperHeight != a4HeightInches {
		t.Errorf("paper = %vx%v, want A4", opts.PaperWidth, opts.PaperHeight)
	}

	// Each call returns a fresh value.
	opts.Landscape = true
	if DefaultPrintOptions().Landscape {
		t.Error("DefaultPrintOptions() shares state between calls")
	}
}

func TestToRodPrintParams(t *testing.T) {
	t.Parallel()

	t.Run("copies options", func(t *testing.T) {
		t.Parallel()

		opts := &PrintOptions{
			Landscape:           true,
			DisplayHeaderFooter: true,
			PrintBackground:     false,
			PreferCSSPageSize:   false,
			PaperWidth:          8.5,
			PaperHeight:         11,
		}
		got := toRodPrintParams(opts)

		if !got.Landscape || !got.DisplayHeaderFooter || got.PrintBackground || got.PreferCSSPageSize {
			t.Errorf("flags not copied: %+v", got)
		}
		if got.PaperWidth == nil || *got.PaperWidth != 8.5 {
			t.Errorf("PaperWidth = %v, want 8.5", got.PaperWidth)
		}
		if got.PaperHeight == nil || *got.PaperHeight != 11 {
			t.Errorf("PaperHeight = %v, want 11", got.PaperHeight)
		}
	})

	t.Run("nil uses defaults", func(t *testing.T) {
		t.Parallel()

		got := toRodPrintParams(nil)
		if !got.PrintBackground || got.PaperWidth == nil || *got.PaperWidth != a4WidthInches {
			t.Errorf("toRodPrintParams(nil) = %+v, want A4 defaults", got)
		}
	})
}

func TestRodBrowser_CloseIdempotent(t *testing.T) {
	t.Parallel()

	b := &rodBrowser{}
	if err := b.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
