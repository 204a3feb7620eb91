package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunScriptWithEvalFlag(t *testing.T) {
	evalExpr = true
	interactive = false
	defer func() { evalExpr, interactive = false, false }()

	if err := runScript(runCmd, []string{`mostrar 1+1`}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunScriptReadsFile(t *testing.T) {
	evalExpr = false
	interactive = false

	dir := t.TempDir()
	path := filepath.Join(dir, "programa.hlang")
	if err := os.WriteFile(path, []byte(`mostrar "hola"`), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if err := runScript(runCmd, []string{path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunScriptFailsWithoutArgsOrFlags(t *testing.T) {
	evalExpr = false
	interactive = false

	if err := runScript(runCmd, nil); err == nil {
		t.Fatalf("expected an error when neither a file, -e, nor -i is given")
	}
}

func TestRunScriptReportsRuntimeFailure(t *testing.T) {
	evalExpr = true
	interactive = false
	defer func() { evalExpr, interactive = false, false }()

	if err := runScript(runCmd, []string{`mostrar 1/0`}); err == nil {
		t.Fatalf("expected an error for a division-by-zero program")
	}
}
