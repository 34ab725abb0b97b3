// Package main provides register-cli, a standalone tool that validates a
// register page from a JSON file on disk and prints its release report,
// without running the HTTP API service.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pharos-project/register/internal/aliasing"
	"github.com/pharos-project/register/internal/register"
)

// Version information.
const (
	version = "1.0.0-dev"
	name    = "register-cli"
)

// registerPageFile is the on-disk shape this tool reads: a flat map of
// record id to a map of field name (UI name, snake_case, or configured
// synonym) to raw string value.
type registerPageFile map[string]map[string]string

func main() {
	versionFlag := flag.Bool("version", false, "show version information")
	inputPath := flag.String("file", "", "path to a register page JSON file")
	configPath := flag.String("config", aliasing.DefaultConfigPath, "path to a .register.yaml column synonym config")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("%s v%s\n", name, version)
		os.Exit(0)
	}

	if *inputPath == "" {
		log.Fatal("register-cli: -file is required")
	}

	report, err := validateFile(*inputPath, *configPath)
	if err != nil {
		log.Fatalf("register-cli: %v", err)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("register-cli: failed to encode release report: %v", err)
	}

	fmt.Println(string(out))
}

// validateFile reads a register page from path, validates every record,
// and returns the resulting release report.
func validateFile(path, configPath string) (*register.ReleaseReport, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path is an operator-supplied CLI argument
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var page registerPageFile
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg, err := aliasing.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load column synonym config: %w", err)
	}

	resolver := aliasing.NewResolver(cfg)

	reg := register.NewRegister()
	for recordID, fields := range page {
		reg.Records[recordID] = register.ParseRecord(fields, "register-cli", 1, resolver)
	}

	return reg.GetReleaseReport(), nil
}
