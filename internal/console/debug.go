package console

import (
	"errors"
	"fmt"

	"github.com/peterh/liner"
)

// DebugREPL runs an interactive inspector over the console's CPU
// state, modeled on a classic monitor prompt: step one instruction
// and print PC, run until the CPU aborts, print PC, quit. The run
// loop stops at addresses in its breakpoint set, but no command adds
// entries to that set, and no general-register dump is offered.
func (c *Console) DebugREPL() {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	breaks := make(map[uint32]struct{})

	for {
		cmd, err := line.Prompt("gopsx> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			fmt.Println("error reading line:", err)
			return
		}
		line.AppendHistory(cmd)

		switch cmd {
		case "s", "step":
			c.step()
			c.printState()
		case "r", "run":
			for c.running {
				if _, hit := breaks[c.cpu.PC()]; hit {
					fmt.Printf("breakpoint hit at %#08x\n", c.cpu.PC())
					break
				}
				c.step()
			}
		case "q", "quit":
			return
		case "pc":
			fmt.Printf("PC = %#08x\n", c.cpu.PC())
		default:
			fmt.Println("commands: (s)tep, (r)un, (q)uit, pc")
		}
	}
}

func (c *Console) printState() {
	fmt.Printf("PC = %#08x\n", c.cpu.PC())
}
