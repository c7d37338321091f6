// Command studyplan runs the scheduling engine on local files: it turns a
// YAML description of subjects into a day-by-day plan, lists spaced
// repetition reviews, rebalances a saved plan after missed tasks and mints
// API tokens.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
