// Offline batch issuance of verification codes. Codes generated here
// verify against any server configured with the same salt; nothing is
// written to the store.
package main

import (
	"flag"
	"fmt"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/xinmi/exammaster/internal/app"
	"github.com/xinmi/exammaster/internal/code"
)

func main() {
	var (
		configPath = flag.String("config", "config.toml", "Path to config file")
		count      = flag.Int("count", 0, "Number of codes to generate")
		start      = flag.Int("start", 0, "Starting index")
		prefix     = flag.String("prefix", "T", "Prefix letter")
		salt       = flag.String("salt", "", "Salt override; defaults to the config value")
	)
	flag.Parse()

	if *count <= 0 {
		logger.Error.Fatalf("count must be a positive integer")
	}
	if *start < 0 || *start > code.MaxIndex {
		logger.Error.Fatalf("start must be between 0 and %d inclusive", code.MaxIndex)
	}
	if *start+*count-1 > code.MaxIndex {
		logger.Error.Fatalf("start + count - 1 must not exceed %d", code.MaxIndex)
	}

	useSalt := *salt
	if useSalt == "" {
		config, err := app.LoadConfig(*configPath)
		if err != nil {
			logger.Error.Fatalf("Failed to load config: %v", err)
		}
		useSalt = config.Codes.Salt
	}

	generator := code.NewGenerator(useSalt)
	for i := *start; i < *start+*count; i++ {
		c, err := generator.Generate(i, *prefix)
		if err != nil {
			logger.Error.Fatalf("Failed to generate code for index %d: %v", i, err)
		}
		fmt.Printf("%d\t%s\n", i, c)
	}
}
