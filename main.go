package main

import (
	"fmt"
	"os"

	"github.com/conneroisu/passforge/cmd"
	perrors "github.com/conneroisu/passforge/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", perrors.FormatErrorWithSuggestions(err))
		os.Exit(1)
	}
}
