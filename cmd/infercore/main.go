// cmd/infercore is a tiny, flag-free harness that wires C1-C6 together end
// to end over a small set of fixture ASTs, so internal/infer.Pipeline has a
// concrete, exercised driver (SPEC_FULL.md E1). It is not "the CLI" the
// spec's Non-goals exclude: no flags, no general file I/O, no REPL — a
// fixture read from stdin if present, otherwise the embedded demo set.
package main

import (
	"embed"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ante-lang/infercore/internal/ast"
	"github.com/ante-lang/infercore/internal/compilerstate"
	"github.com/ante-lang/infercore/internal/diagnostics"
	"github.com/ante-lang/infercore/internal/infer"
	"github.com/ante-lang/infercore/internal/traits"
)

//go:embed fixtures/*.yaml
var embeddedFixtures embed.FS

func main() {
	if stdin, ok := readStdin(); ok {
		runFixture("<stdin>", stdin)
		return
	}

	entries, err := embeddedFixtures.ReadDir("fixtures")
	if err != nil {
		fmt.Fprintf(os.Stderr, "infercore: %v\n", err)
		os.Exit(1)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	sort.Strings(names)
	for _, name := range names {
		raw, err := embeddedFixtures.ReadFile("fixtures/" + name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "infercore: %v\n", err)
			continue
		}
		runFixture(name, raw)
	}
}

// readStdin reads all of os.Stdin if it is not an interactive terminal
// (i.e. something was piped in), so `go run ./cmd/infercore < fixture.yaml`
// runs exactly that one fixture instead of the whole embedded demo set.
func readStdin() ([]byte, bool) {
	stat, err := os.Stdin.Stat()
	if err != nil || (stat.Mode()&os.ModeCharDevice) != 0 {
		return nil, false
	}
	raw, err := io.ReadAll(os.Stdin)
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	return raw, true
}

func runFixture(label string, raw []byte) {
	fmt.Printf("== %s ==\n", label)

	prog, err := parseFixture(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "infercore: %v\n", err)
		return
	}

	state := compilerstate.New()
	table := traits.NewTable(state.Ctx)
	if err := traits.LoadBuiltins(table); err != nil {
		fmt.Fprintf(os.Stderr, "infercore: loading trait table: %v\n", err)
		return
	}
	sink := diagnostics.WriterSink{W: os.Stdout}

	pipeline := infer.NewPipeline(state, table, sink)
	if fatal := pipeline.Run(prog); fatal != nil {
		fmt.Printf("internal error: %s\n", fatal.Error())
		return
	}

	for _, d := range prog.Decls {
		printDecl(pipeline, d)
	}
	fmt.Println()
}

func printDecl(p *infer.Pipeline, d ast.Decl) {
	var name string
	switch d := d.(type) {
	case *ast.FuncDecl:
		name = d.Name
	case *ast.LetDecl:
		name = d.Name
	}
	scheme, ok := p.Schemes[name]
	if !ok {
		return
	}
	quantified := ""
	for _, v := range scheme.QuantifiedVars {
		quantified += v.String() + " "
	}
	if quantified != "" {
		fmt.Printf("%s : forall %s. %s\n", name, quantified, scheme.BodyType)
	} else {
		fmt.Printf("%s : %s\n", name, scheme.BodyType)
	}
}
