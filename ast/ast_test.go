package ast

import (
	"encoding/json"
	"testing"

	"github.com/nalgeon/be"
)

func TestProgramString(t *testing.T) {
	program := &Program{
		Statements: []Statement{
			&VarStatement{
				Name:      &Identifier{Value: "a"},
				ValueType: "int",
				Value: &InfixExpression{
					Left:     &IntegerLiteral{Value: 1},
					Operator: "+",
					Right:    &IntegerLiteral{Value: 2},
				},
			},
			&ReturnStatement{ReturnValue: &Identifier{Value: "a"}},
		},
	}

	be.Equal(t, program.String(), "var a: int = (1 + 2); ret a;")
}

func TestFloatString(t *testing.T) {
	// a float literal must keep its floaty spelling so it relexes as FLOAT
	be.Equal(t, (&FloatLiteral{Value: 2.5}).String(), "2.5")
	be.Equal(t, (&FloatLiteral{Value: 2}).String(), "2.0")
}

func TestIfString(t *testing.T) {
	stmt := &IfStatement{
		Condition:   &BooleanLiteral{Value: true},
		Consequence: &BlockStatement{Statements: []Statement{&ReturnStatement{ReturnValue: &IntegerLiteral{Value: 1}}}},
		Alternative: &BlockStatement{Statements: []Statement{&ReturnStatement{ReturnValue: &IntegerLiteral{Value: 2}}}},
	}

	be.Equal(t, stmt.String(), "if (true) { ret 1; } else { ret 2; }")
}

func TestJSONShape(t *testing.T) {
	program := &Program{
		Statements: []Statement{
			&ExpressionStatement{
				Expression: &InfixExpression{
					Left:     &IntegerLiteral{Value: 1},
					Operator: "*",
					Right:    &FloatLiteral{Value: 2.5},
				},
			},
		},
	}

	data, err := json.Marshal(program.JSON())
	be.Err(t, err, nil)

	var decoded map[string]interface{}
	be.Err(t, json.Unmarshal(data, &decoded), nil)
	be.Equal(t, decoded["type"], "Program")

	stmts := decoded["statements"].([]interface{})
	be.Equal(t, len(stmts), 1)

	wrapped := stmts[0].(map[string]interface{})
	stmt := wrapped["ExpressionStatement"].(map[string]interface{})
	expr := stmt["expr"].(map[string]interface{})
	be.Equal(t, expr["operator"], "*")
}

func TestJSONPanicsOnIncompleteNode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for node with unset fields")
		}
	}()
	(&ReturnStatement{}).JSON()
}
