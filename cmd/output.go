package cmd

import (
	"encoding/json"
	"fmt"
	"os"
)

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(pretty))
	return err
}

func jsonString(v any) (string, error) {
	pretty, err := json.MarshalIndent(v, "", "  ")
	return string(pretty), err
}
