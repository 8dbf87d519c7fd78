// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"fuelir/internal/errors"
	"fuelir/internal/ir"
	"fuelir/internal/irtext"
	"fuelir/internal/verify"
)

func main() {
	printIR := flag.Bool("print", true, "print the module back out after a successful load")
	verifyOnly := flag.Bool("verify-only", false, "only run the well-formedness checker, skip printing")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: fuelirc [-print] [-verify-only] <file.fir>")
		os.Exit(1)
	}
	path := args[0]

	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read file: %s", err)
		os.Exit(1)
	}

	src, parseErr := irtext.ParseSource(path, string(source))
	if parseErr != nil {
		reportParseError(path, string(source), parseErr)
		os.Exit(1)
	}

	ctx, mod, diags := irtext.Lower(src)
	diags = append(diags, verify.Module(ctx, mod)...)
	if len(diags) > 0 {
		reportCompilerErrors(path, string(source), diags)
		if hasHardError(diags) {
			os.Exit(1)
		}
	}

	if !*verifyOnly && *printIR {
		fmt.Println(ir.Print(ctx, mod))
	}

	color.Green("✅ Successfully processed %s", path)
}

// reportParseError prints a friendly caret-style parse error message,
// mirroring the teacher's own cmd/kanso-cli reportParseError.
func reportParseError(filename, src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("Unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	reporter := errors.NewErrorReporter(filename, src)
	fmt.Print(reporter.FormatError(errors.CompilerError{
		Level:    errors.Error,
		Code:     errors.ErrorSyntax,
		Message:  pe.Message(),
		Position: errors.Position{Line: pos.Line, Column: pos.Column},
		Length:   1,
	}))
}

// reportCompilerErrors renders every collected lowering/verification
// diagnostic through the caret-style ErrorReporter.
func reportCompilerErrors(filename, src string, diags []errors.CompilerError) {
	reporter := errors.NewErrorReporter(filename, src)
	for _, d := range diags {
		fmt.Print(reporter.FormatError(d))
	}
}

// hasHardError reports whether diags contains anything beyond warnings,
// so a module with only e.g. W0001 unreachable-block diagnostics still
// prints and exits cleanly.
func hasHardError(diags []errors.CompilerError) bool {
	for _, d := range diags {
		if !errors.IsWarning(d.Code) {
			return true
		}
	}
	return false
}
