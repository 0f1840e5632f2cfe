package ast

import (
	"fmt"
	"strings"
)

type NodeType string

const (
	ProgramNode NodeType = "Program"

	// Statements
	ExpressionStatementNode NodeType = "ExpressionStatement"
	VarStatementNode        NodeType = "VarStatement"
	FunctionStatementNode   NodeType = "FunctionStatement"
	BlockStatementNode      NodeType = "BlockStatement"
	ReturnStatementNode     NodeType = "ReturnStatement"
	AssignStatementNode     NodeType = "AssignStatement"
	IfStatementNode         NodeType = "IfStatement"

	// Expressions
	InfixExpressionNode NodeType = "InfixExpression"

	// Literals
	IntegerLiteralNode NodeType = "IntegerLiteral"
	FloatLiteralNode   NodeType = "FloatLiteral"
	BooleanLiteralNode NodeType = "BooleanLiteral"
	IdentifierNode     NodeType = "Identifier"
)

// Node is one vertex of the syntax tree. JSON returns the structural
// serialization used for dumping and tooling; String reconstructs a textual
// form that reparses to a structurally equal tree. JSON panics on a node
// with required fields unset: such a node is a parser defect and must never
// have reached the tree.
type Node interface {
	Type() NodeType
	JSON() map[string]interface{}
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

type Program struct {
	Statements []Statement
}

func (p *Program) Type() NodeType { return ProgramNode }

func (p *Program) JSON() map[string]interface{} {
	stmts := []map[string]interface{}{}
	for _, stmt := range p.Statements {
		stmts = append(stmts, map[string]interface{}{string(stmt.Type()): stmt.JSON()})
	}
	return map[string]interface{}{
		"type":       p.Type(),
		"statements": stmts,
	}
}

func (p *Program) String() string {
	parts := make([]string, 0, len(p.Statements))
	for _, stmt := range p.Statements {
		parts = append(parts, stmt.String())
	}
	return strings.Join(parts, " ")
}

type ExpressionStatement struct {
	Expression Expression
}

func (s *ExpressionStatement) statementNode() {}
func (s *ExpressionStatement) Type() NodeType { return ExpressionStatementNode }

func (s *ExpressionStatement) JSON() map[string]interface{} {
	if s.Expression == nil {
		panic("ast: ExpressionStatement without expression")
	}
	return map[string]interface{}{
		"type": s.Type(),
		"expr": s.Expression.JSON(),
	}
}

func (s *ExpressionStatement) String() string {
	return s.Expression.String() + ";"
}

type VarStatement struct {
	Name      *Identifier
	Value     Expression
	ValueType string
}

func (s *VarStatement) statementNode() {}
func (s *VarStatement) Type() NodeType { return VarStatementNode }

func (s *VarStatement) JSON() map[string]interface{} {
	if s.Name == nil || s.Value == nil {
		panic("ast: VarStatement without name or value")
	}
	return map[string]interface{}{
		"type":       s.Type(),
		"name":       s.Name.JSON(),
		"value":      s.Value.JSON(),
		"value_type": s.ValueType,
	}
}

func (s *VarStatement) String() string {
	return fmt.Sprintf("var %s: %s = %s;", s.Name, s.ValueType, s.Value)
}

type BlockStatement struct {
	Statements []Statement
}

func (s *BlockStatement) statementNode() {}
func (s *BlockStatement) Type() NodeType { return BlockStatementNode }

func (s *BlockStatement) JSON() map[string]interface{} {
	stmts := []map[string]interface{}{}
	for _, stmt := range s.Statements {
		stmts = append(stmts, stmt.JSON())
	}
	return map[string]interface{}{
		"type":       s.Type(),
		"statements": stmts,
	}
}

func (s *BlockStatement) String() string {
	parts := make([]string, 0, len(s.Statements)+2)
	parts = append(parts, "{")
	for _, stmt := range s.Statements {
		parts = append(parts, stmt.String())
	}
	parts = append(parts, "}")
	return strings.Join(parts, " ")
}

type ReturnStatement struct {
	ReturnValue Expression
}

func (s *ReturnStatement) statementNode() {}
func (s *ReturnStatement) Type() NodeType { return ReturnStatementNode }

func (s *ReturnStatement) JSON() map[string]interface{} {
	if s.ReturnValue == nil {
		panic("ast: ReturnStatement without value")
	}
	return map[string]interface{}{
		"type":         s.Type(),
		"return_value": s.ReturnValue.JSON(),
	}
}

func (s *ReturnStatement) String() string {
	return fmt.Sprintf("ret %s;", s.ReturnValue)
}

type FunctionStatement struct {
	Name       *Identifier
	Body       *BlockStatement
	ReturnType string
}

func (s *FunctionStatement) statementNode() {}
func (s *FunctionStatement) Type() NodeType { return FunctionStatementNode }

func (s *FunctionStatement) JSON() map[string]interface{} {
	if s.Name == nil || s.Body == nil {
		panic("ast: FunctionStatement without name or body")
	}
	return map[string]interface{}{
		"type":        s.Type(),
		"name":        s.Name.JSON(),
		"return_type": s.ReturnType,
		"body":        s.Body.JSON(),
	}
}

func (s *FunctionStatement) String() string {
	return fmt.Sprintf("fn %s() -> %s %s", s.Name, s.ReturnType, s.Body)
}

type AssignStatement struct {
	Ident      *Identifier
	RightValue Expression
}

func (s *AssignStatement) statementNode() {}
func (s *AssignStatement) Type() NodeType { return AssignStatementNode }

func (s *AssignStatement) JSON() map[string]interface{} {
	if s.Ident == nil || s.RightValue == nil {
		panic("ast: AssignStatement without target or value")
	}
	return map[string]interface{}{
		"type":        s.Type(),
		"ident":       s.Ident.JSON(),
		"right_value": s.RightValue.JSON(),
	}
}

func (s *AssignStatement) String() string {
	return fmt.Sprintf("%s = %s;", s.Ident, s.RightValue)
}

type IfStatement struct {
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement
}

func (s *IfStatement) statementNode() {}
func (s *IfStatement) Type() NodeType { return IfStatementNode }

func (s *IfStatement) JSON() map[string]interface{} {
	if s.Condition == nil || s.Consequence == nil {
		panic("ast: IfStatement without condition or consequence")
	}
	out := map[string]interface{}{
		"type":        s.Type(),
		"condition":   s.Condition.JSON(),
		"consequence": s.Consequence.JSON(),
	}
	if s.Alternative != nil {
		out["alternative"] = s.Alternative.JSON()
	}
	return out
}

func (s *IfStatement) String() string {
	if s.Alternative == nil {
		return fmt.Sprintf("if (%s) %s", s.Condition, s.Consequence)
	}
	return fmt.Sprintf("if (%s) %s else %s", s.Condition, s.Consequence, s.Alternative)
}

type InfixExpression struct {
	Left     Expression
	Operator string
	Right    Expression
}

func (e *InfixExpression) expressionNode() {}
func (e *InfixExpression) Type() NodeType  { return InfixExpressionNode }

func (e *InfixExpression) JSON() map[string]interface{} {
	if e.Right == nil {
		panic("ast: InfixExpression without right operand")
	}
	return map[string]interface{}{
		"type":       e.Type(),
		"left_node":  e.Left.JSON(),
		"operator":   e.Operator,
		"right_node": e.Right.JSON(),
	}
}

func (e *InfixExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Operator, e.Right)
}

type IntegerLiteral struct {
	Value int64
}

func (e *IntegerLiteral) expressionNode() {}
func (e *IntegerLiteral) Type() NodeType  { return IntegerLiteralNode }

func (e *IntegerLiteral) JSON() map[string]interface{} {
	return map[string]interface{}{"type": e.Type(), "value": e.Value}
}

func (e *IntegerLiteral) String() string {
	return fmt.Sprintf("%d", e.Value)
}

type FloatLiteral struct {
	Value float64
}

func (e *FloatLiteral) expressionNode() {}
func (e *FloatLiteral) Type() NodeType  { return FloatLiteralNode }

func (e *FloatLiteral) JSON() map[string]interface{} {
	return map[string]interface{}{"type": e.Type(), "value": e.Value}
}

func (e *FloatLiteral) String() string {
	s := fmt.Sprintf("%g", e.Value)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

type BooleanLiteral struct {
	Value bool
}

func (e *BooleanLiteral) expressionNode() {}
func (e *BooleanLiteral) Type() NodeType  { return BooleanLiteralNode }

func (e *BooleanLiteral) JSON() map[string]interface{} {
	return map[string]interface{}{"type": e.Type(), "value": e.Value}
}

func (e *BooleanLiteral) String() string {
	return fmt.Sprintf("%t", e.Value)
}

type Identifier struct {
	Value string
}

func (e *Identifier) expressionNode() {}
func (e *Identifier) Type() NodeType  { return IdentifierNode }

func (e *Identifier) JSON() map[string]interface{} {
	return map[string]interface{}{"type": e.Type(), "value": e.Value}
}

func (e *Identifier) String() string {
	return e.Value
}
