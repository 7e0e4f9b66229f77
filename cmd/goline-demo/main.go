// Command goline-demo is a runnable example exercising the whole module,
// mirroring original_source/example.c: it wires a real TTY decoder, a
// file-backed history, and a trivial keyword highlighter.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/ovity/goline/internal/attrbuf"
	"github.com/ovity/goline/internal/editor"
	"github.com/ovity/goline/internal/history"
	"github.com/ovity/goline/internal/ui"
	"github.com/ovity/goline/pkg/goline"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "goline-demo:", err)
		os.Exit(1)
	}
}

func run() error {
	out := ui.NewFormatter(os.Stdout)
	fd := int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	histPath := filepath.Join(os.TempDir(), "goline-demo-history.txt")
	hist := history.NewMemory(history.WithMaxEntries(200))
	if err := hist.LoadFile(histPath); err != nil {
		out.Warning(fmt.Sprintf("could not load history: %v", err))
	}

	kr := newTTYDecoder(os.Stdin, uintptr(fd))
	hl := newKeywordHighlighter("func", "package", "import", "return", "var", "const", "if", "else", "for", "range", "struct", "interface", "goroutine", "chan")

	cfg := editor.DefaultConfig()
	cfg.TwoLinePrompt = true
	cfg.BraceMatchAttr = styleAttr(attrbuf.StyleBraceMatch)
	cfg.BraceErrorAttr = styleAttr(attrbuf.StyleError)

	ed := goline.New(os.Stdout, kr, 80, 24, func() (int, int) { return term.GetSize(fd) },
		goline.WithHistory(hist),
		goline.WithHighlighter(hl, styleAttr),
		goline.WithConfig(cfg),
	)

	out.Println("goline demo — type 'exit' or press Ctrl-D to quit, F1 for help, Tab to complete filenames.")

	for {
		text, ok, err := ed.ReadLine("goline")
		if err != nil {
			return err
		}
		if !ok || text == "exit" {
			break
		}
		out.Println("-----")
		out.Println(text)
		out.Println("-----")
	}

	if err := hist.SaveFile(histPath); err != nil {
		out.Warning(fmt.Sprintf("could not save history: %v", err))
	}
	out.Println("done")
	return nil
}
