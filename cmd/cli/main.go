package main

import (
	"fmt"
	"os"

	"github.com/setrep/workout-api/cmd/cli/auth"
	"github.com/setrep/workout-api/cmd/cli/root"
	"github.com/setrep/workout-api/cmd/cli/workouts"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	workouts.InitWorkouts(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
