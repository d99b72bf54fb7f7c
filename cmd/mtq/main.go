// Command mtq generates PCB magnetorquer coils and reports their properties.
package main

import "github.com/OpenTraceLab/magnetorquer/cmd/mtq/cmd"

func main() {
	cmd.Execute()
}
