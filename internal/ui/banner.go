package ui

import (
	"github.com/pterm/pterm"
)

func PrintBanner() {
	logo := `
    ______      __                        __
   / __/ /___ _/ /_____  ____  _________ / /_  ___
  / /_/ / __ ` + "`" + `/ //_/ _ \/ __ \/ ___/ __ \/ __ \/ _ \
 / __/ / /_/ / ,< /  __/ /_/ / /  / /_/ / /_/ /  __/
/_/ /_/\__,_/_/|_|\___/ .___/_/   \____/_.___/\___/
                     /_/
`
	pterm.FgCyan.Println(logo)
	pterm.DefaultCenter.Println(pterm.FgGray.Sprint("diagnostic probe for flaky-test intelligence servers"))
	pterm.Println()
}
