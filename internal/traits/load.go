package traits

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ante-lang/infercore/internal/types"
)

//go:embed builtins.yaml
var builtinsYAML []byte

type rawImpl struct {
	Trait   string   `yaml:"trait"`
	Args    []string `yaml:"args"`
	Fundeps []string `yaml:"fundeps"`
}

type rawTable struct {
	Impls []rawImpl `yaml:"impls"`
}

// LoadBuiltins parses the embedded builtins.yaml fixture into TraitImpl
// values and registers each with t, matching the teacher's use of yaml.v3
// for declarative fixtures (SPEC_FULL.md E2/E3). A malformed or overlapping
// builtin entry is a programming error in this module, not a user-facing
// one, so it is returned as a plain error for the caller (cmd/infercore's
// bootstrap, or a test) to decide how to fail loudly.
func LoadBuiltins(t *Table) error {
	return LoadTableYAML(t, builtinsYAML)
}

// LoadTableYAML parses raw YAML bytes in builtins.yaml's shape and registers
// every impl with t. Exposed separately from LoadBuiltins so tests can load
// additional or alternate trait tables the same way (SPEC_FULL.md E2: "Test
// suites load additional trait tables the same way").
func LoadTableYAML(t *Table, raw []byte) error {
	var parsed rawTable
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("traits: parsing table: %w", err)
	}
	for _, ri := range parsed.Impls {
		impl, err := toTraitImpl(ri)
		if err != nil {
			return err
		}
		if err := t.Register(impl); err != nil {
			return err
		}
	}
	return nil
}

func toTraitImpl(ri rawImpl) (*types.TraitImpl, error) {
	args := make([]types.Type, len(ri.Args))
	for i, a := range ri.Args {
		t, err := parseTypeExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	fundeps := make([]types.Type, len(ri.Fundeps))
	for i, f := range ri.Fundeps {
		t, err := parseTypeExpr(f)
		if err != nil {
			return nil, err
		}
		fundeps[i] = t
	}
	return &types.TraitImpl{
		DeclRef:  &types.TraitDeclRef{Name: ri.Trait},
		TypeArgs: args,
		Fundeps:  fundeps,
	}, nil
}
