// FILE: lixenwraith/fini/example/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/lixenwraith/fini"
	"github.com/lixenwraith/fini/flagbind"
)

// AppConfig is the typed view of the [server] section.
type AppConfig struct {
	Host     string        `fini:"host"`
	Port     int64         `fini:"port"`
	Timeout  time.Duration `fini:"timeout"`
	Verbose  bool          `fini:"verbose"`
	Plugins  []string      `fini:"plugins"`
	Greeting string        `fini:"greeting"`
}

const configFilePath = "app.fini"

const configText = `[DEFAULT]
timeout = 5s

[server]
host =
    : Address to bind.
    :: names: H
    localhost
port =
    : Port to listen on.
    :: names: p
    :: f: int
    8080
verbose =
    : Log every request.
    :: names: v
    :: f: bool
    no
plugins =
    : Plugins to load, '+name' adds and '-name' removes.
    :: f: plus
    auth, metrics, cache
greeting =
    :: f: fmt
    Hello from {app}!
`

func main() {
	// =========================================================================
	// PART 1: INITIAL SETUP
	// Write a FINI file to disk for our program to read.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 1: Creating FINI configuration file...")

	defer func() {
		log.Println("---")
		log.Println("🧹 Cleaning up...")
		os.Remove(configFilePath)
		os.Unsetenv("APP_PLUGINS")
		log.Printf("Removed %s and unset APP_PLUGINS.", configFilePath)
	}()

	if err := os.WriteFile(configFilePath, []byte(configText), 0644); err != nil {
		log.Fatalf("❌ Failed to write %s: %v", configFilePath, err)
	}
	log.Printf("✅ Configuration written to %s.", configFilePath)

	// =========================================================================
	// PART 2: BUILDER, ENVIRONMENT AND FORMATS
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 2: Building the configuration...")

	os.Setenv("APP_PLUGINS", "-cache, +tracing")
	log.Println("   (Set environment variable APP_PLUGINS=\"-cache, +tracing\")")

	validator := func(c *fini.Config) error {
		return c.Validate("server.host", "server.port")
	}

	cfg, err := fini.NewBuilder().
		WithFile(configFilePath).
		WithEnvNames(map[string]string{"plugins": "APP_PLUGINS"}).
		WithFormats(map[string]string{"app": "fini-demo"}).
		WithValidator(validator).
		Build()
	if err != nil {
		log.Fatalf("❌ Builder failed: %v", err)
	}
	log.Println("✅ Builder finished successfully.")

	var app AppConfig
	server := cfg.Get("server")
	if err := server.Scan(&app); err != nil {
		log.Fatalf("❌ Scan failed: %v", err)
	}
	printCurrentState(&app, "Initial State (env edits the plugin list)")

	// =========================================================================
	// PART 3: COMMANDLINE FLAGS FROM FINI HELP
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 3: Parsing flags declared in the file...")

	fs := pflag.NewFlagSet("demo", pflag.ContinueOnError)
	binding, err := flagbind.Register(fs, cfg.ArgSpecs())
	if err != nil {
		log.Fatalf("❌ Flag registration failed: %v", err)
	}
	argv := []string{"-p", "9090", "--verbose", "--plugins", "+audit"}
	if err := fs.Parse(argv); err != nil {
		log.Fatalf("❌ Flag parsing failed: %v", err)
	}
	if err := binding.Apply(cfg); err != nil {
		log.Fatalf("❌ Flag binding failed: %v", err)
	}
	log.Printf("✅ Parsed %v", argv)

	if err := server.Scan(&app); err != nil {
		log.Fatalf("❌ Scan failed: %v", err)
	}
	printCurrentState(&app, "Final State (flags override env and file)")

	fmt.Println(cfg.Debug())
}

// printCurrentState is a helper to display the typed config state.
func printCurrentState(cfg *AppConfig, title string) {
	fmt.Println("   --------------------------------------------------")
	fmt.Printf("             %s\n", title)
	fmt.Println("   --------------------------------------------------")
	fmt.Printf("     Host:     %s\n", cfg.Host)
	fmt.Printf("     Port:     %d\n", cfg.Port)
	fmt.Printf("     Timeout:  %s\n", cfg.Timeout)
	fmt.Printf("     Verbose:  %t\n", cfg.Verbose)
	fmt.Printf("     Plugins:  %v\n", cfg.Plugins)
	fmt.Printf("     Greeting: %s\n", cfg.Greeting)
	fmt.Println("   --------------------------------------------------")
}
