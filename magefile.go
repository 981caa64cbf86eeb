//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "bgrhyme"

var Default = Build

// Build compiles the bgrhyme binary.
func Build() error {
	return sh.RunV("go", "build", "-o", binary, "./cmd/bgrhyme")
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs bgrhyme into GOPATH/bin.
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/bgrhyme")
}

// Clean removes build artifacts.
func Clean() error {
	if err := sh.Rm(binary); err != nil {
		return err
	}
	return os.RemoveAll("dist")
}
