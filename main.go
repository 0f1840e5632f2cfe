package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/alecthomas/repr"
	"github.com/llir/llvm/ir"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"

	"github.com/ascentlang/ascentgo/ast"
	"github.com/ascentlang/ascentgo/compiler"
	"github.com/ascentlang/ascentgo/lexer"
	"github.com/ascentlang/ascentgo/parser"
)

// parseDirectory parses every .asct file in dir into one program. Parse
// diagnostics are printed and gate lowering.
func parseDirectory(dir string) (*ast.Program, bool) {
	program := &ast.Program{}

	fis, err := ioutil.ReadDir(dir)
	if err != nil {
		tracerr.PrintSourceColor(err)
		os.Exit(1)
	}

	ok := true
	for _, fi := range fis {
		if !strings.HasSuffix(fi.Name(), ".asct") {
			continue
		}

		handle, err := os.Open(fi.Name())
		if err != nil {
			tracerr.PrintSourceColor(err)
			os.Exit(1)
		}

		p := parser.New(lexer.New(handle))
		parsed := p.ParseProgram()
		handle.Close()

		for _, diag := range p.Errors() {
			fmt.Printf("%s: %s\n", fi.Name(), diag)
			ok = false
		}
		if ok {
			program.Statements = append(program.Statements, parsed.Statements...)
		}
	}

	return program, ok
}

// lower runs the compiler pass. Lowering diagnostics are printed and gate
// emission and execution.
func lower(program *ast.Program) (*compiler.Compiler, bool) {
	comp := compiler.New()
	comp.Compile(program)

	if diags := comp.Errors(); len(diags) > 0 {
		for _, diag := range diags {
			fmt.Println(diag)
		}
		return nil, false
	}
	return comp, true
}

func hasEntry(m *ir.Module, name string) bool {
	for _, fn := range m.Funcs {
		if fn.Name() == name {
			return true
		}
	}
	return false
}

func emitAndLink(module string, out string, library bool, entry string) error {
	fi, err := ioutil.TempFile("", "*.ll")
	if err != nil {
		return err
	}
	defer fi.Close()

	_, err = io.Copy(fi, strings.NewReader(module))
	if err != nil {
		return err
	}

	cmd := exec.Command("clang", "-o", out)
	switch {
	case library:
		cmd.Args = append(cmd.Args, "-shared", "-no-pie")
	case entry != "main":
		// a non-default entry bypasses the C runtime, so the designated
		// function receives control directly
		cmd.Args = append(cmd.Args, "-nostdlib", "-Wl,-e,"+entry)
	}
	cmd.Args = append(cmd.Args, fi.Name())

	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

type ascentModule struct {
	Package string `yaml:"Package"`
	Entry   string `yaml:"Entry"`
}

func readModuleInformation() ascentModule {
	data, err := ioutil.ReadFile("ascent.yaml")
	if err != nil {
		fmt.Printf("error reading ascent.yaml: %s\n", err)
		os.Exit(1)
	}

	var doc ascentModule
	err = yaml.Unmarshal(data, &doc)
	if err != nil {
		fmt.Printf("error reading ascent.yaml: %s\n", err)
		os.Exit(1)
	}
	if doc.Entry == "" {
		doc.Entry = "main"
	}
	return doc
}

func main() {
	app := &cli.App{
		Name:  "ascentgo",
		Usage: "ascent compiler",
		ExitErrHandler: func(context *cli.Context, err error) {
			if err != nil {
				log.Fatalf("error with ascentgo: %s", err)
			}
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "init a directory",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						fmt.Printf("no module name provided")
						os.Exit(1)
					}
					yml := ascentModule{
						Package: name,
						Entry:   "main",
					}
					fi, err := os.Create("ascent.yaml")
					if err != nil {
						fmt.Printf("error creating ascent.yaml: %s", err)
						os.Exit(1)
					}
					defer fi.Close()

					out, err := yaml.Marshal(yml)
					if err != nil {
						fmt.Printf("error creating ascent.yaml: %s", err)
						os.Exit(1)
					}

					_, err = fi.Write(out)
					if err != nil {
						fmt.Printf("error creating ascent.yaml: %s", err)
						os.Exit(1)
					}

					return nil
				},
			},
			{
				Name:  "typeinfo",
				Usage: "dump typeinfo from a compiled module",
				Action: func(c *cli.Context) error {
					file := c.Args().Get(0)
					data, err := getTypeInfoFromFile(file)
					if err != nil {
						return err
					}
					repr.Println(data)
					return nil
				},
			},
			{
				Name:  "build",
				Usage: "build the current module",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name: "output",
					},
					&cli.BoolFlag{
						Name:  "dump-ast",
						Value: false,
					},
					&cli.BoolFlag{
						Name:  "dump-ir",
						Value: false,
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Value: false,
					},
					&cli.BoolFlag{
						Name:  "library",
						Value: false,
					},
				},
				Action: func(c *cli.Context) error {
					doc := readModuleInformation()

					out := c.String("output")
					if out == "" {
						out = doc.Package
					}
					if c.Bool("library") {
						out += ".so"
					}

					program, ok := parseDirectory("./")
					if !ok {
						os.Exit(1)
					}

					if c.Bool("verbose") {
						repr.Println(program)
					}
					if c.Bool("dump-ast") {
						data, err := json.MarshalIndent(program.JSON(), "", "    ")
						if err != nil {
							return tracerr.Wrap(err)
						}
						if err := ioutil.WriteFile("ast.json", data, 0o644); err != nil {
							return tracerr.Wrap(err)
						}
					}

					comp, ok := lower(program)
					if !ok {
						os.Exit(1)
					}

					if !c.Bool("library") && !hasEntry(comp.Module(), doc.Entry) {
						fmt.Printf("no entry function %q in module\n", doc.Entry)
						os.Exit(1)
					}

					registerTypeInfoWithModule(typeInfo{Functions: comp.Functions()}, comp.Module())

					module := comp.Module().String()

					if c.Bool("dump-ir") {
						println(module)
						os.Exit(0)
					}

					if err := emitAndLink(module, out, c.Bool("library"), doc.Entry); err != nil {
						tracerr.PrintSourceColor(err)
						os.Exit(1)
					}

					return nil
				},
			},
			{
				Name:  "run",
				Usage: "build and execute the entry function",
				Action: func(c *cli.Context) error {
					doc := readModuleInformation()

					program, ok := parseDirectory("./")
					if !ok {
						os.Exit(1)
					}

					comp, ok := lower(program)
					if !ok {
						os.Exit(1)
					}

					if !hasEntry(comp.Module(), doc.Entry) {
						fmt.Printf("no entry function %q in module\n", doc.Entry)
						os.Exit(1)
					}

					bin, err := ioutil.TempFile("", "ascent-*")
					if err != nil {
						return tracerr.Wrap(err)
					}
					bin.Close()
					defer os.Remove(bin.Name())

					if err := emitAndLink(comp.Module().String(), bin.Name(), false, doc.Entry); err != nil {
						tracerr.PrintSourceColor(err)
						os.Exit(1)
					}

					st := time.Now()
					cmd := exec.Command(bin.Name())
					cmd.Stdout = os.Stdout
					cmd.Stderr = os.Stderr
					err = cmd.Run()
					elapsed := time.Since(st)

					result := 0
					if err != nil {
						exitErr, ok := err.(*exec.ExitError)
						if !ok {
							return tracerr.Wrap(err)
						}
						result = exitErr.ExitCode()
					}

					fmt.Printf("%s returned: %d\n", doc.Entry, result)
					fmt.Printf("executed in: %s\n", elapsed)

					return nil
				},
			},
		},
	}
	app.Run(os.Args)
}
