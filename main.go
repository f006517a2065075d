package main

import (
	"github.com/lepidus/oaswitchboard/cmd"

	// Register snapshot formats
	_ "github.com/lepidus/oaswitchboard/format/fixture"
	_ "github.com/lepidus/oaswitchboard/format/ojs"
)

func main() {
	cmd.Execute()
}
