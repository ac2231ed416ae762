package alfred

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/wippyai/cocoa-bridge/errors"
)

// ItemEnv is the environment a filter expression sees for one item.
type ItemEnv struct {
	Title        string `expr:"title"`
	Subtitle     string `expr:"subtitle"`
	UID          string `expr:"uid"`
	Arg          string `expr:"arg"`
	Autocomplete string `expr:"autocomplete"`
	Type         string `expr:"type"`
	Valid        bool   `expr:"valid"`
}

func envOf(it Item) ItemEnv {
	return ItemEnv{
		Title:        it.Title,
		Subtitle:     it.Subtitle,
		UID:          it.UID,
		Arg:          it.Arg,
		Autocomplete: it.Autocomplete,
		Type:         it.Type,
		Valid:        it.Valid(),
	}
}

// Filter is a compiled item predicate.
type Filter struct {
	program *vm.Program
	source  string
}

// CompileFilter compiles a boolean expression over ItemEnv, for example
//
//	title startsWith "PATH" && valid
func CompileFilter(source string) (*Filter, error) {
	program, err := expr.Compile(source, expr.Env(ItemEnv{}), expr.AsBool())
	if err != nil {
		return nil, errors.New(errors.PhaseRender, errors.KindInvalidInput).
			Detail("invalid filter expression %q", source).
			Cause(err).
			Build()
	}
	return &Filter{program: program, source: source}, nil
}

// Match evaluates the filter against it.
func (f *Filter) Match(it Item) (bool, error) {
	out, err := expr.Run(f.program, envOf(it))
	if err != nil {
		return false, errors.Wrap(errors.PhaseRender, errors.KindInvalidData, err, f.source)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Apply returns the items the filter matches, in order. A nil filter
// matches everything.
func (f *Filter) Apply(items []Item) ([]Item, error) {
	if f == nil {
		return items, nil
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		ok, err := f.Match(it)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, it)
		}
	}
	return out, nil
}
