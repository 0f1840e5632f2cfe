package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/nalgeon/be"
)

func TestRegisterTypeInfoWithModule(t *testing.T) {
	m := ir.NewModule()
	registerTypeInfoWithModule(typeInfo{
		Functions: map[string]string{"main": "int", "helper": "flo"},
	}, m)

	be.Equal(t, len(m.Globals), 1)

	g := m.Globals[0]
	be.Equal(t, g.Name(), "__ascent_types")
	be.True(t, g.Immutable)

	arr := g.Init.(*constant.CharArray)
	// null-terminated so the reader can treat it as a C string
	be.Equal(t, arr.X[len(arr.X)-1], byte(0))

	var decoded typeInfo
	be.Err(t, json.Unmarshal(arr.X[:len(arr.X)-1], &decoded), nil)
	be.Equal(t, decoded.Functions["main"], "int")
	be.Equal(t, decoded.Functions["helper"], "flo")
}

func TestTypeInfoAppearsInEmittedIR(t *testing.T) {
	m := ir.NewModule()
	registerTypeInfoWithModule(typeInfo{Functions: map[string]string{"main": "int"}}, m)

	be.True(t, strings.Contains(m.String(), "@__ascent_types"))
}
