package main

import (
	"fmt"
	"os"

	"github.com/gridwatch/dominion-schedule/cmd/cli/root"
	"github.com/gridwatch/dominion-schedule/cmd/cli/schedule"
)

func main() {
	schedule.InitSchedule(root.GetRoot())

	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
