package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/nicvazquezdev/hispano-lang/pkg/hispano"
	"github.com/spf13/cobra"
)

var (
	evalExpr    bool
	interactive bool
)

var runCmd = &cobra.Command{
	Use:   "run [archivo]",
	Short: "Ejecuta un programa o expresión HispanoLang",
	Long: `Ejecuta un programa HispanoLang desde un archivo, una expresión en
línea, o un REPL interactivo.

Ejemplos:
  # Ejecutar un archivo
  hispano run programa.hlang

  # Evaluar código en línea
  hispano run -e 'mostrar "hola"'

  # Iniciar un REPL interactivo
  hispano run -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&evalExpr, "eval", "e", false, "trata el argumento como código en línea, no como un archivo")
	runCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "inicia un REPL interactivo")
}

func runScript(_ *cobra.Command, args []string) error {
	if interactive {
		return runREPL()
	}

	var source string
	switch {
	case evalExpr && len(args) == 1:
		source = args[0]
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return exitWithError("no se pudo leer el archivo %s: %v", args[0], err)
		}
		source = string(content)
	default:
		return exitWithError("se debe indicar un archivo o usar -e con código en línea, o -i para el modo interactivo")
	}

	result := hispano.Interpret(source, hispano.WithOutput(os.Stdout))
	if !result.Success {
		fmt.Fprintln(os.Stderr, result.Error)
		return exitWithError("la ejecución falló")
	}
	return nil
}

// runREPL runs a plain line-based read-eval-print loop over a single
// persistent hispano.Runner session, so variables declared in one line
// are visible to the next. No ANSI coloring or line-editing is
// attempted here; a real terminal front-end is out of scope.
func runREPL() error {
	runner := hispano.NewRunner()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("HispanoLang REPL. Escribe 'salir' para terminar.")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return nil
		}
		line := scanner.Text()
		switch line {
		case "salir":
			return nil
		case "variables":
			for name, value := range runner.TopLevelBindings() {
				fmt.Printf("%s = %s\n", name, value)
			}
			continue
		case "":
			continue
		}

		result := runner.Eval(line)
		for _, out := range result.Outputs {
			fmt.Println(out)
		}
		if !result.Success {
			fmt.Fprintln(os.Stderr, result.Error)
		}
	}
}
