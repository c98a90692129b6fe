// Package main implements soulsigctl, the offline companion of the SoulSig
// API: corre el pipeline de scoring contra los bancos embebidos sin levantar
// servidor ni base de datos.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "soulsigctl",
	Short: "SoulSig offline scoring toolkit",
	Long:  "soulsigctl scores personality questionnaire responses against the embedded question banks and inspects banks and norm tables, without a running API.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// writeJSON imprime v como JSON indentado en stdout o en el archivo pedido.
func writeJSON(v interface{}, path string) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	out = append(out, '\n')
	if path == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}
