package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mathmark <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render text with $...$ and $$...$$ math to HTML")
	fmt.Fprintln(w, "  quiz       Render a CSV question bank to JSON or YAML")
	fmt.Fprintln(w, "  sheet      Render a CSV question bank to a PDF or HTML sheet")
	fmt.Fprintln(w, "  doctor     Check typesetters, Chrome and the environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mathmark help <command>' for details on a specific command.")
}

// printEngineUsage prints the flags shared by rendering commands.
func printEngineUsage(w io.Writer) {
	fmt.Fprintln(w, "Typesetting:")
	fmt.Fprintln(w, "  -e, --engine <s>          Typesetter: katex (default), mathml")
	fmt.Fprintln(w, "      --katex-script <path> KaTeX bundle replacing the built-in one")
	fmt.Fprintln(w, "      --katex-pool <n>      KaTeX runtimes (0 = auto)")
	fmt.Fprintln(w, "      --cache <n>           Memoize up to n rendered strings")
	fmt.Fprintln(w, "      --assets-path <dir>   Custom styles/, templates/ and scripts/")
	fmt.Fprintln(w, "      --allow-tag <tag>     Keep an extra HTML element (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log typesetting failures and timing")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mathmark render [flags] [text...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render each argument, or each line of stdin, to sanitized HTML,")
	fmt.Fprintln(w, "one result per line. With --file, render each line of each file")
	fmt.Fprintln(w, "into a .html file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -f, --file <path>         Input file (repeatable)")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers for files (0 = auto)")
	fmt.Fprintln(w)
	printEngineUsage(w)
}

// printQuizUsage prints usage for the quiz command.
func printQuizUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mathmark quiz [flags] <bank.csv>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render the question, choices and explanation of every question.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "      --id <n>              Only the question with this ID")
	fmt.Fprintln(w, "      --format <s>          Output format: json (default), yaml")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w)
	printEngineUsage(w)
}

// printSheetUsage prints usage for the sheet command.
func printSheetUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mathmark sheet [flags] <bank.csv>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a question bank into a printable sheet.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sheet:")
	fmt.Fprintln(w, "      --title <s>           Sheet title")
	fmt.Fprintln(w, "      --intro <s>           Introduction (Markdown)")
	fmt.Fprintln(w, "      --date <s>            Header date: text, auto, auto:DD/MM/YYYY, auto:long")
	fmt.Fprintln(w, "      --answers             Include explanations")
	fmt.Fprintln(w, "      --style <name>        Stylesheet name")
	fmt.Fprintln(w, "      --katex-css <path>    KaTeX stylesheet to inline")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0-3.0)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "      --html-only           Write HTML, skip PDF")
	fmt.Fprintln(w)
	printEngineUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "quiz":
		printQuizUsage(env.Stdout)
	case "sheet":
		printSheetUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: mathmark doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check typesetters, Chrome and the environment.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mathmark version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mathmark help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
