/*
 * SSVM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Command ssvm is the CLI entry point standing in for spec §1's
// out-of-scope "configuration CLI": enough to collect JVM-style options and
// environment variables, boot a VM, and run a class's
// public static void main(String[]) end to end. Grounded on the teacher's
// own cli_test.go (HandleCli/LoadOptionsTable/getEnvArgs/Global/
// showCopyright), trimmed to the options this engine actually supports.
//
// Class-file parsing and the bytes-by-name class source are both explicitly
// out of scope for this engine (classloader's own package doc; spec §1) --
// this command installs classloader.ClassSource (a directory-backed
// classpath reader) but leaves classloader.ParseClass for an embedder to
// wire in, same as classloader.ResolveClass's own doc describes. Without
// one installed, running a class fails with NoClassDefFoundError, which is
// the correct, honest behavior for a build that never parses a class file.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Nowilltolife/SSVM/src/classloader"
	"github.com/Nowilltolife/SSVM/src/globals"
	"github.com/Nowilltolife/SSVM/src/jvm"
	"github.com/Nowilltolife/SSVM/src/log"
	"github.com/Nowilltolife/SSVM/src/memory"
	"github.com/Nowilltolife/SSVM/src/object"
)

const version = "0.1.0"

// Global is this process's one configuration struct (spec §6: "a plain
// struct"), mirroring the teacher's own package-level Global used across
// cli_test.go.
var Global *globals.Globals

func main() {
	Global = globals.InitGlobals(os.Args[0])
	log.Init()
	HandleCli(os.Args)
}

// getEnvArgs concatenates the standard JVM environment-variable options
// (JAVA_TOOL_OPTIONS, then _JAVA_OPTIONS, then JDK_JAVA_OPTIONS), separated
// by a single space, mirroring the teacher's own precedence and join rule.
func getEnvArgs() string {
	var parts []string
	for _, name := range []string{"JAVA_TOOL_OPTIONS", "_JAVA_OPTIONS", "JDK_JAVA_OPTIONS"} {
		if v := os.Getenv(name); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// HandleCli parses args (args[0], the program name, is discarded) plus any
// environment-supplied options, and dispatches to -help/-showversion or to
// running a class.
func HandleCli(args []string) {
	fs := flag.NewFlagSet("ssvm", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	help := fs.Bool("help", false, "print usage information")
	showVersion := fs.Bool("showversion", false, "print version information and continue")
	classpath := fs.String("cp", "", "class search path of directories (colon-separated)")
	fs.StringVar(classpath, "classpath", "", "class search path of directories (colon-separated)")
	strict := fs.Bool("strict", false, "reject behavior this engine treats as a simplification")

	var cliArgs []string
	if len(args) > 1 {
		cliArgs = args[1:]
	}
	if env := getEnvArgs(); env != "" {
		cliArgs = append(strings.Fields(env), cliArgs...)
	}

	if err := fs.Parse(cliArgs); err != nil {
		return
	}

	if *help {
		printUsage(fs)
		return
	}
	if *showVersion {
		fmt.Fprintf(os.Stderr, "SSVM v.%s\n", version)
	}
	if *classpath != "" {
		Global.ClassPath = strings.Split(*classpath, ":")
	}
	Global.StrictJDK = *strict

	rest := fs.Args()
	if len(rest) == 0 {
		if !*showVersion {
			printUsage(fs)
		}
		return
	}

	if err := runClass(rest[0], rest[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "ssvm: "+err.Error())
		os.Exit(1)
	}
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "Usage: ssvm [options] class [args...]")
	fmt.Fprintln(os.Stderr, "where options include:")
	fs.PrintDefaults()
	showCopyright()
}

func showCopyright() {
	fmt.Fprintln(os.Stdout, "SSVM -- a Java virtual machine. All rights reserved.")
}

// classpathSource reads "<dir>/<internal name>.class" across Global's
// configured classpath directories (falling back to ".") -- the directory-
// backed half of classloader.ClassSource's contract. It never parses what
// it reads; that is classloader.ParseClass's job, left to an embedder.
func classpathSource(_ *classloader.ClassLoaderData, name string) ([]byte, error) {
	dirs := Global.ClassPath
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	rel := strings.ReplaceAll(name, ".", "/") + ".class"
	var lastErr error
	for _, dir := range dirs {
		data, err := os.ReadFile(dir + "/" + rel)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// runClass boots a fresh VM, resolves className via classloader.ResolveClass
// (which lazily defines it through ClassSource/ParseClass), and invokes its
// public static void main(String[]).
func runClass(className string, args []string) error {
	internalName := strings.ReplaceAll(className, ".", "/")
	classloader.ClassSource = classpathSource

	vm := jvm.NewVM(Global.JacobinName)

	class, err := classloader.ResolveClass(classloader.BootstrapLoader, internalName)
	if err != nil {
		return err
	}

	argsArray, err := buildStringArray(vm, args)
	if err != nil {
		return err
	}
	_, err = vm.InvokeStatic(class, "main", "([Ljava/lang/String;)V", []object.Value{object.RefValue(argsArray.Handle)})
	return err
}

// buildStringArray converts a Go string slice into a java.lang.String[]
// Value, the same NewUtf8 + ToVMRefs composition gfunction's own array
// helpers use.
func buildStringArray(vm *jvm.VM, args []string) (*object.ArrayObject, error) {
	elementClass, err := classloader.NewArrayClass(classloader.BootstrapLoader, "[Ljava/lang/String;")
	if err != nil {
		return nil, err
	}
	handles := make([]memory.Handle, len(args))
	for i, a := range args {
		s, err := vm.NewUtf8(a)
		if err != nil {
			return nil, err
		}
		handles[i] = s.Handle
	}
	return vm.ToVMRefs(elementClass, handles)
}
