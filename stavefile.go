//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/gowsfmt"

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"d":   Dogfood,
	"fix": Tidy,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// repoStyle is the whitespace policy this repository holds itself to.
// testdata keeps its deliberately malformed fixtures.
var repoStyle = []string{
	"--remove-trailing-whitespace",
	"--remove-trailing-empty-lines",
	"--add-new-line-marker-at-end-of-file",
	"--new-line-marker", "linux",
	"--normalize-new-line-markers",
	"--ignore", "**/testdata/**",
}

// Build compiles bin/gowsfmt with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building gowsfmt...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/gowsfmt")
}

// Install installs gowsfmt to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing gowsfmt...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/gowsfmt")
}

// Clean removes build artifacts.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Check runs format, lint, test and dogfood sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default, Dogfood)
}

// Dogfood fails when the repository itself needs whitespace fixes.
func Dogfood() error {
	st.Deps(Build)
	fmt.Println("Checking repository whitespace...")
	return sh.RunV(binary, append(append([]string{"check"}, repoStyle...), ".")...)
}

// Tidy applies the repository whitespace policy in place.
func Tidy() error {
	st.Deps(Build)
	return sh.RunV(binary, append(append([]string{"format", "--stats"}, repoStyle...), ".")...)
}

// Default runs all tests using gotestsum with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-race",
		"-p", nCores,
		"-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// Engine reruns the normalization engine tests in shuffled order, which
// shakes out stage-order and idempotence regressions.
func (Test) Engine() error {
	return sh.RunV("go", "test", "-count=5", "-shuffle=on", "./pkg/whitespace/...")
}

// Fuzz runs each file I/O fuzz target briefly.
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZ_TIME"), "20s")
	for _, fuzz := range []string{"FuzzWriteAtomic", "FuzzReadFileCheckModified"} {
		fmt.Println("Fuzzing", fuzz)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+fuzz+"$", "-fuzztime="+fuzzTime, "./pkg/fsutil"); err != nil {
			return err
		}
	}
	return nil
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck verifies Go formatting without modifying files.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	return nil
}

// Gate runs every check CI requires.
func (CI) Gate() error {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.CI,
		Build,
		Test.Default,
		Dogfood,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("All CI gate checks passed")
	return nil
}

// ModTidy fails when go mod tidy changes go.mod or go.sum.
func (CI) ModTidy() error {
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	if err := sh.RunV("git", "diff", "--exit-code", "go.mod", "go.sum"); err != nil {
		return errors.New("go.mod or go.sum changed after 'go mod tidy'; commit the result")
	}
	return nil
}

// Cross builds for the release platforms. Line terminator handling is
// identical everywhere, but file modes and renames are not.
func (CI) Cross() error {
	for _, platform := range []string{"linux/amd64", "linux/arm64", "darwin/arm64", "windows/amd64", "freebsd/amd64"} {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Println("  Building", platform)
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, "./cmd/gowsfmt"); err != nil {
			return fmt.Errorf("build failed for %s: %w", platform, err)
		}
	}
	return nil
}

// Engine runs the engine and classification benchmarks.
func (Bench) Engine() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./pkg/whitespace", "./pkg/filetype")
}

// Self times a check-only run of the built binary over this repository.
func (Bench) Self() error {
	st.Deps(Build)

	cmd := exec.Command(binary, append(append([]string{"check", "--stats"}, repoStyle...), ".")...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	start := time.Now()
	err := cmd.Run()
	fmt.Printf("Finished in %s\n", time.Since(start).Round(time.Millisecond))

	// Exit status 1 only means files need formatting.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return nil
	}
	return err
}

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
