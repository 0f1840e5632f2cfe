package errors

import (
	"fmt"

	"github.com/ascentlang/ascentgo/token"
)

// Diagnostics are collected, not thrown: the parser and the compiler each
// accumulate an ordered list of these and keep going. A non-empty list gates
// the next stage.

type ExpectedKindGotKind struct {
	Expected token.Kind
	Got      token.Kind
	Line     int
	Column   int
}

func (e ExpectedKindGotKind) Error() string {
	return fmt.Sprintf("expected next token to be %s, got %s instead at %d:%d", e.Expected, e.Got, e.Line, e.Column)
}

type NoPrefixRule struct {
	Got    token.Kind
	Line   int
	Column int
}

func (e NoPrefixRule) Error() string {
	return fmt.Sprintf("no prefix rule for token kind %s at %d:%d", e.Got, e.Line, e.Column)
}

type BadLiteral struct {
	Literal string
	Want    string
	Line    int
	Column  int
}

func (e BadLiteral) Error() string {
	return fmt.Sprintf("could not parse %q as %s at %d:%d", e.Literal, e.Want, e.Line, e.Column)
}

type UnterminatedBlock struct {
	Line   int
	Column int
}

func (e UnterminatedBlock) Error() string {
	return fmt.Sprintf("unterminated block: missing closing brace before end of input at %d:%d", e.Line, e.Column)
}

type UndeclaredIdentifier struct {
	Name string
}

func (e UndeclaredIdentifier) Error() string {
	return fmt.Sprintf("identifier %q has not been declared", e.Name)
}

type TypeMismatch struct {
	Operator string
	Left     string
	Right    string
}

func (e TypeMismatch) Error() string {
	return fmt.Sprintf("operator %q cannot combine %s and %s", e.Operator, e.Left, e.Right)
}

type DeclaredTypeMismatch struct {
	Name     string
	Declared string
	Got      string
}

func (e DeclaredTypeMismatch) Error() string {
	return fmt.Sprintf("variable %q is declared %s but initialized with %s", e.Name, e.Declared, e.Got)
}

type AssignTypeMismatch struct {
	Name     string
	Declared string
	Got      string
}

func (e AssignTypeMismatch) Error() string {
	return fmt.Sprintf("cannot assign %s to variable %q of type %s", e.Got, e.Name, e.Declared)
}

type ReturnTypeMismatch struct {
	Declared string
	Got      string
}

func (e ReturnTypeMismatch) Error() string {
	return fmt.Sprintf("function returns %s but the ret value is %s", e.Declared, e.Got)
}

type FunctionAsValue struct {
	Name string
}

func (e FunctionAsValue) Error() string {
	return fmt.Sprintf("function %q cannot be used as a value", e.Name)
}

type UnknownType struct {
	Name string
}

func (e UnknownType) Error() string {
	return fmt.Sprintf("unknown type name %q", e.Name)
}

type UnsupportedOperator struct {
	Operator string
	Type     string
}

func (e UnsupportedOperator) Error() string {
	return fmt.Sprintf("operator %q is not supported for %s operands", e.Operator, e.Type)
}

type NonBooleanCondition struct {
	Type string
}

func (e NonBooleanCondition) Error() string {
	return fmt.Sprintf("if condition must be a boolean, got %s", e.Type)
}

type StatementOutsideFunction struct {
	Kind string
}

func (e StatementOutsideFunction) Error() string {
	return fmt.Sprintf("%s statement is not allowed outside a function", e.Kind)
}

type NonConstantInitializer struct {
	Name string
}

func (e NonConstantInitializer) Error() string {
	return fmt.Sprintf("global %q must be initialized with a literal", e.Name)
}
