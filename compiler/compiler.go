package compiler

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/ascentlang/ascentgo/ast"
	"github.com/ascentlang/ascentgo/errors"
)

// Compiler is the lowering pass: a read-only walk over the syntax tree that
// emits instructions into basic blocks. block is the builder cursor; at most
// one block receives instructions at a time, and a block never receives
// anything past its terminator.
type Compiler struct {
	typeMap map[string]types.Type

	module  *ir.Module
	block   *ir.Block
	env     *Environment
	retType types.Type

	functions map[string]string
	blockID   int
	errs      []error
}

func New() *Compiler {
	return &Compiler{
		typeMap: map[string]types.Type{
			"int": types.I32,
			"flo": types.Float,
		},
		module:    ir.NewModule(),
		env:       NewEnvironment(nil, "global"),
		functions: map[string]string{},
	}
}

func (c *Compiler) Module() *ir.Module {
	return c.module
}

func (c *Compiler) Errors() []error {
	return c.errs
}

// Functions maps every lowered function name to its declared return type.
func (c *Compiler) Functions() map[string]string {
	return c.functions
}

func (c *Compiler) Compile(node ast.Node) {
	switch node := node.(type) {
	case *ast.Program:
		for _, stmt := range node.Statements {
			c.Compile(stmt)
		}

	// Statements
	case *ast.ExpressionStatement:
		c.compileExpressionStatement(node)
	case *ast.VarStatement:
		c.compileVarStatement(node)
	case *ast.FunctionStatement:
		c.compileFunctionStatement(node)
	case *ast.BlockStatement:
		c.compileBlockStatement(node)
	case *ast.ReturnStatement:
		c.compileReturnStatement(node)
	case *ast.AssignStatement:
		c.compileAssignStatement(node)
	case *ast.IfStatement:
		c.compileIfStatement(node)

	// Expressions
	case *ast.InfixExpression:
		c.compileInfixExpression(node)

	default:
		panic(fmt.Sprintf("compiler: unhandled node kind %s", node.Type()))
	}
}

func (c *Compiler) compileExpressionStatement(node *ast.ExpressionStatement) {
	if c.block == nil {
		c.errs = append(c.errs, errors.StatementOutsideFunction{Kind: "expression"})
		return
	}
	c.resolveValue(node.Expression)
}

func (c *Compiler) compileVarStatement(node *ast.VarStatement) {
	declared, ok := c.typeMap[node.ValueType]
	if !ok {
		c.errs = append(c.errs, errors.UnknownType{Name: node.ValueType})
		return
	}

	if c.block == nil {
		c.compileGlobalVar(node, declared)
		return
	}

	val, typ := c.resolveValue(node.Value)
	if val == nil {
		return
	}
	if !typ.Equal(declared) {
		c.errs = append(c.errs, errors.DeclaredTypeMismatch{
			Name:     node.Name.Value,
			Declared: node.ValueType,
			Got:      c.typeName(typ),
		})
		return
	}

	// Re-declaring a name already bound in the current frame stores
	// through the existing storage instead of allocating a second slot.
	// The existing slot keeps its type; a re-declaration at another type
	// cannot store through it.
	if ptr, existing, ok := c.env.LookupLocal(node.Name.Value); ok {
		if !existing.Equal(declared) {
			c.errs = append(c.errs, errors.AssignTypeMismatch{
				Name:     node.Name.Value,
				Declared: c.typeName(existing),
				Got:      node.ValueType,
			})
			return
		}
		c.block.NewStore(val, ptr)
		return
	}

	ptr := c.block.NewAlloca(declared)
	c.block.NewStore(val, ptr)
	c.env.Define(node.Name.Value, ptr, declared)
}

// compileGlobalVar lowers a top-level declaration to a module global. There
// is no runtime at the top level, so the initializer must be a literal.
func (c *Compiler) compileGlobalVar(node *ast.VarStatement, declared types.Type) {
	init, typ, ok := c.constantValue(node.Value)
	if !ok {
		c.errs = append(c.errs, errors.NonConstantInitializer{Name: node.Name.Value})
		return
	}
	if !typ.Equal(declared) {
		c.errs = append(c.errs, errors.DeclaredTypeMismatch{
			Name:     node.Name.Value,
			Declared: node.ValueType,
			Got:      c.typeName(typ),
		})
		return
	}

	if ptr, existing, ok := c.env.LookupLocal(node.Name.Value); ok {
		if !existing.Equal(declared) {
			c.errs = append(c.errs, errors.AssignTypeMismatch{
				Name:     node.Name.Value,
				Declared: c.typeName(existing),
				Got:      node.ValueType,
			})
			return
		}
		if g, ok := ptr.(*ir.Global); ok {
			g.Init = init
		}
		return
	}

	g := c.module.NewGlobalDef(node.Name.Value, init)
	c.env.Define(node.Name.Value, g, declared)
}

func (c *Compiler) constantValue(node ast.Expression) (constant.Constant, types.Type, bool) {
	switch node := node.(type) {
	case *ast.IntegerLiteral:
		return constant.NewInt(types.I32, node.Value), types.I32, true
	case *ast.FloatLiteral:
		return constant.NewFloat(types.Float, node.Value), types.Float, true
	case *ast.BooleanLiteral:
		return constant.NewBool(node.Value), types.I1, true
	}
	return nil, nil, false
}

// compileBlockStatement lowers statements in order, but stops once the
// current block is terminated: anything after a return or branch in the
// same block is dead and is simply not lowered.
func (c *Compiler) compileBlockStatement(node *ast.BlockStatement) {
	for _, stmt := range node.Statements {
		if c.block.Term != nil {
			break
		}
		c.Compile(stmt)
	}
}

func (c *Compiler) compileReturnStatement(node *ast.ReturnStatement) {
	if c.block == nil {
		c.errs = append(c.errs, errors.StatementOutsideFunction{Kind: "return"})
		return
	}
	// a block that already ended must not get a second terminator
	if c.block.Term != nil {
		return
	}

	val, typ := c.resolveValue(node.ReturnValue)
	if val == nil {
		return
	}
	if !typ.Equal(c.retType) {
		c.errs = append(c.errs, errors.ReturnTypeMismatch{
			Declared: c.typeName(c.retType),
			Got:      c.typeName(typ),
		})
		return
	}
	c.block.NewRet(val)
}

func (c *Compiler) compileFunctionStatement(node *ast.FunctionStatement) {
	name := node.Name.Value

	retType, ok := c.typeMap[node.ReturnType]
	if !ok {
		c.errs = append(c.errs, errors.UnknownType{Name: node.ReturnType})
		return
	}

	fn := c.module.NewFunc(name, retType)
	entry := fn.NewBlock(name + "_entry")

	prevBlock := c.block
	prevEnv := c.env
	prevRet := c.retType

	// restore the caller's cursor and frame on every exit path, and
	// rebind the function where later statements can see it
	defer func() {
		c.block = prevBlock
		c.env = prevEnv
		c.retType = prevRet
		c.env.Define(name, fn, retType)
	}()

	c.block = entry
	c.env = NewEnvironment(prevEnv, name)
	c.env.Define(name, fn, retType)
	c.retType = retType

	c.Compile(node.Body)
	c.sealFunction()

	c.functions[name] = node.ReturnType
}

// sealFunction makes sure control cannot fall off the end of a block: a
// leftover unterminated cursor block gets an unreachable terminator.
func (c *Compiler) sealFunction() {
	if c.block.Term == nil {
		c.block.NewUnreachable()
	}
}

func (c *Compiler) compileAssignStatement(node *ast.AssignStatement) {
	if c.block == nil {
		c.errs = append(c.errs, errors.StatementOutsideFunction{Kind: "assignment"})
		return
	}

	name := node.Ident.Value

	val, valType := c.resolveValue(node.RightValue)
	if val == nil {
		return
	}

	ptr, typ, ok := c.env.Lookup(name)
	if !ok {
		c.errs = append(c.errs, errors.UndeclaredIdentifier{Name: name})
		return
	}
	if _, isFn := ptr.(*ir.Func); isFn {
		c.errs = append(c.errs, errors.FunctionAsValue{Name: name})
		return
	}
	// a store through the slot must match the slot's recorded type
	if !valType.Equal(typ) {
		c.errs = append(c.errs, errors.AssignTypeMismatch{
			Name:     name,
			Declared: c.typeName(typ),
			Got:      c.typeName(valType),
		})
		return
	}
	c.block.NewStore(val, ptr)
}

func (c *Compiler) compileIfStatement(node *ast.IfStatement) {
	if c.block == nil {
		c.errs = append(c.errs, errors.StatementOutsideFunction{Kind: "if"})
		return
	}

	cond, typ := c.resolveValue(node.Condition)
	if cond == nil {
		return
	}
	if !typ.Equal(types.I1) {
		c.errs = append(c.errs, errors.NonBooleanCondition{Type: c.typeName(typ)})
		return
	}

	fn := c.block.Parent
	entry := c.block

	if node.Alternative == nil {
		// then-only shape: fall through to merge when false
		then := fn.NewBlock(c.blockName("then"))
		merge := fn.NewBlock(c.blockName("merge"))
		entry.NewCondBr(cond, then, merge)

		c.block = then
		c.Compile(node.Consequence)
		if c.block.Term == nil {
			c.block.NewBr(merge)
		}

		c.block = merge
		return
	}

	then := fn.NewBlock(c.blockName("then"))
	alt := fn.NewBlock(c.blockName("else"))
	merge := fn.NewBlock(c.blockName("merge"))
	entry.NewCondBr(cond, then, alt)

	bridged := 0

	c.block = then
	c.Compile(node.Consequence)
	if c.block.Term == nil {
		c.block.NewBr(merge)
		bridged++
	}

	c.block = alt
	c.Compile(node.Alternative)
	if c.block.Term == nil {
		c.block.NewBr(merge)
		bridged++
	}

	// both arms ended on their own: nothing reaches merge, so drop it and
	// leave the cursor on a terminated block, which kills everything after
	// the if as dead code
	if bridged == 0 {
		for i, b := range fn.Blocks {
			if b == merge {
				fn.Blocks = append(fn.Blocks[:i], fn.Blocks[i+1:]...)
				break
			}
		}
		c.block = entry
		return
	}

	c.block = merge
}

func (c *Compiler) blockName(base string) string {
	c.blockID++
	return fmt.Sprintf("%s%d", base, c.blockID)
}

// resolveValue lowers an expression to a value and its type. A nil value
// means a diagnostic was already recorded and the caller skips emission.
func (c *Compiler) resolveValue(node ast.Expression) (value.Value, types.Type) {
	switch node := node.(type) {
	case *ast.IntegerLiteral:
		return constant.NewInt(types.I32, node.Value), types.I32
	case *ast.FloatLiteral:
		return constant.NewFloat(types.Float, node.Value), types.Float
	case *ast.BooleanLiteral:
		return constant.NewBool(node.Value), types.I1
	case *ast.Identifier:
		ptr, typ, ok := c.env.Lookup(node.Value)
		if !ok {
			c.errs = append(c.errs, errors.UndeclaredIdentifier{Name: node.Value})
			return nil, nil
		}
		// function bindings have no storage to load through
		if _, isFn := ptr.(*ir.Func); isFn {
			c.errs = append(c.errs, errors.FunctionAsValue{Name: node.Value})
			return nil, nil
		}
		return c.block.NewLoad(typ, ptr), typ
	case *ast.InfixExpression:
		return c.compileInfixExpression(node)
	}
	panic(fmt.Sprintf("compiler: unhandled expression kind %s", node.Type()))
}

// compileInfixExpression requires both operands to resolve to the same
// primitive category and picks the instruction family from it. A category
// mismatch is a diagnostic, never a silent coercion.
func (c *Compiler) compileInfixExpression(node *ast.InfixExpression) (value.Value, types.Type) {
	left, leftType := c.resolveValue(node.Left)
	right, rightType := c.resolveValue(node.Right)
	if left == nil || right == nil {
		return nil, nil
	}

	if _, ok := leftType.(*types.IntType); ok && leftType.Equal(rightType) {
		return c.intInfix(node.Operator, left, right, leftType)
	}
	if _, ok := leftType.(*types.FloatType); ok && leftType.Equal(rightType) {
		return c.floatInfix(node.Operator, left, right, leftType)
	}

	c.errs = append(c.errs, errors.TypeMismatch{
		Operator: node.Operator,
		Left:     c.typeName(leftType),
		Right:    c.typeName(rightType),
	})
	return nil, nil
}

func (c *Compiler) intInfix(op string, left, right value.Value, typ types.Type) (value.Value, types.Type) {
	switch op {
	case "+":
		return c.block.NewAdd(left, right), typ
	case "-":
		return c.block.NewSub(left, right), typ
	case "*":
		return c.block.NewMul(left, right), typ
	case "/":
		return c.block.NewSDiv(left, right), typ
	case "%":
		return c.block.NewSRem(left, right), typ
	case "<":
		return c.block.NewICmp(enum.IPredSLT, left, right), types.I1
	case "<=":
		return c.block.NewICmp(enum.IPredSLE, left, right), types.I1
	case ">":
		return c.block.NewICmp(enum.IPredSGT, left, right), types.I1
	case ">=":
		return c.block.NewICmp(enum.IPredSGE, left, right), types.I1
	case "==":
		return c.block.NewICmp(enum.IPredEQ, left, right), types.I1
	case "!=":
		return c.block.NewICmp(enum.IPredNE, left, right), types.I1
	}
	c.errs = append(c.errs, errors.UnsupportedOperator{Operator: op, Type: c.typeName(typ)})
	return nil, nil
}

func (c *Compiler) floatInfix(op string, left, right value.Value, typ types.Type) (value.Value, types.Type) {
	switch op {
	case "+":
		return c.block.NewFAdd(left, right), typ
	case "-":
		return c.block.NewFSub(left, right), typ
	case "*":
		return c.block.NewFMul(left, right), typ
	case "/":
		return c.block.NewFDiv(left, right), typ
	case "%":
		return c.block.NewFRem(left, right), typ
	case "<":
		return c.block.NewFCmp(enum.FPredOLT, left, right), types.I1
	case "<=":
		return c.block.NewFCmp(enum.FPredOLE, left, right), types.I1
	case ">":
		return c.block.NewFCmp(enum.FPredOGT, left, right), types.I1
	case ">=":
		return c.block.NewFCmp(enum.FPredOGE, left, right), types.I1
	case "==":
		return c.block.NewFCmp(enum.FPredOEQ, left, right), types.I1
	case "!=":
		return c.block.NewFCmp(enum.FPredONE, left, right), types.I1
	}
	c.errs = append(c.errs, errors.UnsupportedOperator{Operator: op, Type: c.typeName(typ)})
	return nil, nil
}

func (c *Compiler) typeName(t types.Type) string {
	switch {
	case t == nil:
		return "unknown"
	case t.Equal(types.I32):
		return "int"
	case t.Equal(types.Float):
		return "flo"
	case t.Equal(types.I1):
		return "bool"
	}
	return t.String()
}
