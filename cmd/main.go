package main

import (
	"fmt"
	"os"

	"github.com/ostafen/symtab/cmd/cmd"
	"github.com/ostafen/symtab/internal/env"
)

func main() {
	PrintLogo()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func PrintLogo() {
	fmt.Println("                 _        _     ")
	fmt.Println("  ___ _   _ _ __ | |_ __ _| |__  ")
	fmt.Println(" / __| | | | '_ \\| __/ _` | '_ \\ ")
	fmt.Println(" \\__ \\ |_| | | | | || (_| | |_) |")
	fmt.Println(" |___/\\__, |_| |_|\\__\\__,_|_.__/ ")
	fmt.Println("      |___/                      ")
	fmt.Println()
	fmt.Println("Case-insensitive symbol table toolkit")
	fmt.Println()
	fmt.Printf("Version:   %s\n", env.Version)
	fmt.Printf("Commit:    %s\n", env.CommitHash)
	fmt.Printf("Build Time: %s\n", env.BuildTime)
	fmt.Println(" ")
}
