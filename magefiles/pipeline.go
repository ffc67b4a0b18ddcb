//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Scan builds the CLI if needed and analyzes a label image through it.
func Scan(image string) error {
	bin := filepath.Join(binDir, binName)
	if _, err := os.Stat(bin); err != nil {
		if err := Build(); err != nil {
			return err
		}
	}
	cmd := exec.Command(bin, "analyze", image, "--save")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("analyze %s: %w", image, err)
	}
	return nil
}
