package parser

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/ascentlang/ascentgo/ast"
	"github.com/ascentlang/ascentgo/errors"
	"github.com/ascentlang/ascentgo/lexer"
	"github.com/ascentlang/ascentgo/token"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(strings.NewReader(src)))
	program := p.ParseProgram()
	for _, diag := range p.Errors() {
		t.Errorf("unexpected diagnostic: %s", diag)
	}
	return program
}

func parseWithErrors(src string) (*ast.Program, []error) {
	p := New(lexer.New(strings.NewReader(src)))
	program := p.ParseProgram()
	return program, p.Errors()
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3));"},
		{"2 * 3 + 1;", "((2 * 3) + 1);"},
		{"(1 + 2) * 3;", "((1 + 2) * 3);"},
		{"1 + 2 ^ 3;", "(1 + (2 ^ 3));"},
		{"2 ^ 3 * 4;", "((2 ^ 3) * 4);"},
		{"1 + 2 < 3 * 4;", "((1 + 2) < (3 * 4));"},
		{"1 < 2 == true;", "((1 < 2) == true);"},
		{"1 % 2 + 3;", "((1 % 2) + 3);"},
	}

	for _, test := range tests {
		program := parseSource(t, test.input)
		be.Equal(t, len(program.Statements), 1)
		be.Equal(t, program.Statements[0].String(), test.want)
	}
}

func TestLeftAssociativity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 - 2 - 3;", "((1 - 2) - 3);"},
		{"1 + 2 + 3;", "((1 + 2) + 3);"},
		{"1 * 2 * 3;", "((1 * 2) * 3);"},
		{"8 / 4 / 2;", "((8 / 4) / 2);"},
		{"1 < 2 < 3;", "((1 < 2) < 3);"},
	}

	for _, test := range tests {
		program := parseSource(t, test.input)
		be.Equal(t, program.Statements[0].String(), test.want)
	}
}

func TestVarStatement(t *testing.T) {
	program := parseSource(t, "var a: int = 1 + 2;")
	be.Equal(t, len(program.Statements), 1)

	stmt, ok := program.Statements[0].(*ast.VarStatement)
	be.True(t, ok)
	be.Equal(t, stmt.Name.Value, "a")
	be.Equal(t, stmt.ValueType, "int")
	be.Equal(t, stmt.Value.String(), "(1 + 2)")
}

func TestFloatVarStatement(t *testing.T) {
	program := parseSource(t, "var f: flo = 3.14;")

	stmt := program.Statements[0].(*ast.VarStatement)
	be.Equal(t, stmt.ValueType, "flo")

	lit, ok := stmt.Value.(*ast.FloatLiteral)
	be.True(t, ok)
	be.Equal(t, lit.Value, 3.14)
}

func TestAssignStatementDispatch(t *testing.T) {
	// an identifier followed by = is an assignment, not an expression
	program := parseSource(t, "a = 5;")

	stmt, ok := program.Statements[0].(*ast.AssignStatement)
	be.True(t, ok)
	be.Equal(t, stmt.Ident.Value, "a")
	be.Equal(t, stmt.RightValue.String(), "5")
}

func TestFunctionStatement(t *testing.T) {
	program := parseSource(t, "fn main() -> int { ret 1 + 2; }")
	be.Equal(t, len(program.Statements), 1)

	fn, ok := program.Statements[0].(*ast.FunctionStatement)
	be.True(t, ok)
	be.Equal(t, fn.Name.Value, "main")
	be.Equal(t, fn.ReturnType, "int")
	be.Equal(t, len(fn.Body.Statements), 1)

	ret, ok := fn.Body.Statements[0].(*ast.ReturnStatement)
	be.True(t, ok)
	be.Equal(t, ret.ReturnValue.String(), "(1 + 2)")
}

func TestIfStatement(t *testing.T) {
	program := parseSource(t, "if (a < b) { ret 1; }")

	stmt, ok := program.Statements[0].(*ast.IfStatement)
	be.True(t, ok)
	be.Equal(t, stmt.Condition.String(), "(a < b)")
	be.Equal(t, len(stmt.Consequence.Statements), 1)
	be.True(t, stmt.Alternative == nil)
}

func TestIfElseStatement(t *testing.T) {
	program := parseSource(t, "if (a == b) { ret 1; } else { ret 2; }")

	stmt := program.Statements[0].(*ast.IfStatement)
	be.True(t, stmt.Alternative != nil)
	be.Equal(t, len(stmt.Alternative.Statements), 1)
}

func TestBooleanLiterals(t *testing.T) {
	program := parseSource(t, "var ok: int = true == false;")

	stmt := program.Statements[0].(*ast.VarStatement)
	be.Equal(t, stmt.Value.String(), "(true == false)")
}

func TestExpectPeekDiagnostic(t *testing.T) {
	_, errs := parseWithErrors("var a int = 1;")

	be.Equal(t, len(errs), 1)
	diag, ok := errs[0].(errors.ExpectedKindGotKind)
	be.True(t, ok)
	be.Equal(t, diag.Expected, token.COLON)
	be.Equal(t, diag.Got, token.TYPE)
}

func TestNoPrefixRuleDiagnostic(t *testing.T) {
	_, errs := parseWithErrors("var a: int = ;")

	be.Equal(t, len(errs), 1)
	diag, ok := errs[0].(errors.NoPrefixRule)
	be.True(t, ok)
	be.Equal(t, diag.Got, token.SEMICOLON)
}

func TestUnterminatedBlockDiagnostic(t *testing.T) {
	_, errs := parseWithErrors("fn main() -> int { ret 1;")

	be.True(t, len(errs) > 0)
	found := false
	for _, diag := range errs {
		if _, ok := diag.(errors.UnterminatedBlock); ok {
			found = true
		}
	}
	be.True(t, found)
}

func TestUnmatchedParenDiagnostic(t *testing.T) {
	program, errs := parseWithErrors("var a: int = (1 + 2;")

	be.True(t, len(errs) > 0)
	be.Equal(t, len(program.Statements), 0)
}

func TestErrorRecovery(t *testing.T) {
	// one bad statement does not hide diagnostics in later ones
	_, errs := parseWithErrors("var a int = 1; var b flo = 2;")

	be.Equal(t, len(errs), 2)
}

func TestRoundTrip(t *testing.T) {
	sources := []string{
		"var a: int = 1 + 2 * 3;",
		"a = (1 + 2) * 3;",
		"fn main() -> int { var a: int = 1; if (a < 2) { ret 1; } else { ret 2; } }",
		"var f: flo = 1.5 + 2.5;",
		"1 + 2 == 3;",
	}

	for _, src := range sources {
		first := parseSource(t, src)
		second := parseSource(t, first.String())
		be.Equal(t, second.String(), first.String())
	}
}
