package main

import "indexdesk/cmd/indexdesk-cli/cmd"

func main() {
	cmd.Execute()
}
