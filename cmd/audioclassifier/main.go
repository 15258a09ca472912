package main

import "github.com/Hcaziah/AudioClassifier/internal/cli"

func main() {
	cli.Main()
}
