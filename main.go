package main

import "task-manager-system.com/task-manager-system/cmd"

func main() {
	cmd.Execute()
}
