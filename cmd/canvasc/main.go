// Command canvasc compiles canvas workflow graphs from JSON and inspects
// the resulting bytecode.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/levihackerman-102/canvas"
	"github.com/levihackerman-102/canvas/interp"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "canvasc",
		Short:         "Compile canvas workflow graphs to VM bytecode",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newCompileCmd(), newDisasmCmd(), newRunCmd())
	return root
}

func newCompileCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compile <graph.json>",
		Short: "Compile a JSON graph file to hex bytecode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := compileFile(args[0])
			if err != nil {
				return err
			}
			code, err := program.Bytes()
			if err != nil {
				return err
			}

			encoded := hex.EncodeToString(code)
			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), encoded)
				return nil
			}
			return os.WriteFile(output, []byte(encoded+"\n"), 0o644)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write hex bytecode to a file instead of stdout")
	return cmd
}

func newDisasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <program.hex>",
		Short: "Decode a serialized program and print its contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readProgram(args[0], cmd)
			if err != nil {
				return err
			}
			program, err := canvas.DecodeProgram(code)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "uints (%d):\n", len(program.Uints))
			for i, v := range program.Uints {
				fmt.Fprintf(out, "  u[%d] = %s\n", i, v)
			}
			fmt.Fprintf(out, "bools (%d):\n", len(program.Bools))
			for i, v := range program.Bools {
				fmt.Fprintf(out, "  b[%d] = %t\n", i, v)
			}
			fmt.Fprintf(out, "instructions (%d):\n", len(program.Instructions))
			for i, instr := range program.Instructions {
				fmt.Fprintf(out, "  %3d: %s\n", i, instr)
			}
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	var itemPrice string

	cmd := &cobra.Command{
		Use:   "run <graph.json>",
		Short: "Compile a JSON graph and execute it with the reference interpreter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := compileFile(args[0])
			if err != nil {
				return err
			}
			code, err := program.Bytes()
			if err != nil {
				return err
			}

			var opts []interp.Option
			if itemPrice != "" {
				price, err := uint256.FromDecimal(itemPrice)
				if err != nil {
					return fmt.Errorf("canvasc: invalid --item-price: %w", err)
				}
				opts = append(opts, interp.WithItemPrice(price))
			}

			result, err := interp.Run(code, opts...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Dec())
			return nil
		},
	}

	cmd.Flags().StringVar(&itemPrice, "item-price", "", "decimal value for the itemPrice opcode")
	return cmd
}

func compileFile(path string) (*canvas.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	graph, err := parseGraph(data)
	if err != nil {
		return nil, err
	}
	return graph.Compile()
}

// readProgram loads hex bytecode from a file, or from stdin when the
// argument is "-".
func readProgram(arg string, cmd *cobra.Command) ([]byte, error) {
	var raw []byte
	var err error
	if arg == "-" {
		raw, err = readAll(cmd)
	} else {
		raw, err = os.ReadFile(arg)
	}
	if err != nil {
		return nil, err
	}
	return decodeHex(raw)
}
