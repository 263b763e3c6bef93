package core

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sarchlab/qasm2qir/ast"
	"github.com/sarchlab/qasm2qir/qir"
)

var (
	// QubitOperand accepts gate operands.
	QubitOperand = []ast.ArgKind{ast.ArgQubit}
	// BitOperand accepts the destination of a measurement. The front-end
	// cannot always tell a classical bit from a qubit, so indexed qubit
	// references are accepted as well.
	BitOperand = []ast.ArgKind{ast.ArgClassical, ast.ArgQubit}
)

// Pair is two resolved operands in source order.
type Pair struct {
	First  qir.RegisterRef
	Second qir.RegisterRef
}

// Resolve converts exactly arity arguments into register references, keeping
// their order. Arguments must have one of the accepted kinds; QubitOperand is
// used when none is given.
func Resolve(
	args []ast.Argument,
	arity int,
	accept ...ast.ArgKind,
) ([]qir.RegisterRef, error) {
	if len(args) != arity {
		return nil, &ArityMismatchError{
			What:     "argument",
			Expected: arity,
			Actual:   len(args),
		}
	}

	refs := make([]qir.RegisterRef, len(args))
	for i, arg := range args {
		ref, err := ResolveArg(arg, accept...)
		if err != nil {
			return nil, err
		}
		refs[i] = ref
	}

	return refs, nil
}

// ResolveOne resolves a single-operand argument list.
func ResolveOne(args []ast.Argument, accept ...ast.ArgKind) (qir.RegisterRef, error) {
	refs, err := Resolve(args, 1, accept...)
	if err != nil {
		return qir.RegisterRef{}, err
	}
	return refs[0], nil
}

// ResolvePair resolves a two-operand argument list.
func ResolvePair(args []ast.Argument, accept ...ast.ArgKind) (Pair, error) {
	refs, err := Resolve(args, 2, accept...)
	if err != nil {
		return Pair{}, err
	}
	return Pair{First: refs[0], Second: refs[1]}, nil
}

// ResolveArg resolves one argument.
func ResolveArg(arg ast.Argument, accept ...ast.ArgKind) (qir.RegisterRef, error) {
	if len(accept) == 0 {
		accept = QubitOperand
	}

	if !slices.Contains(accept, arg.Kind) || !arg.Indexed() || arg.Name == "" {
		return qir.RegisterRef{}, &TypeMismatchError{
			Description: fmt.Sprintf("expected %s argument, got %s %q",
				kindNames(accept), arg.Kind, arg.String()),
		}
	}

	return qir.Ref(arg.Name, arg.Index), nil
}

func kindNames(kinds []ast.ArgKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, " or ")
}
