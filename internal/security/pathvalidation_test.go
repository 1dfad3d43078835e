package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePathWithinDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	safeDir := filepath.Join(tmpDir, "safe")
	unsafeDir := filepath.Join(tmpDir, "unsafe")
	if err := os.MkdirAll(safeDir, 0755); err != nil {
		t.Fatalf("failed to create safe directory: %v", err)
	}
	if err := os.MkdirAll(unsafeDir, 0755); err != nil {
		t.Fatalf("failed to create unsafe directory: %v", err)
	}

	// A symlink inside the safe directory pointing out of it.
	symlinkPath := filepath.Join(safeDir, "evil-symlink")
	if err := os.Symlink(unsafeDir, symlinkPath); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	tests := []struct {
		name      string
		filePath  string
		safeDir   string
		wantError bool
	}{
		{
			name:     "valid path within directory",
			filePath: filepath.Join(safeDir, "layout.sqlite"),
			safeDir:  safeDir,
		},
		{
			name:     "valid nested path that does not exist yet",
			filePath: filepath.Join(safeDir, "exports", "layout.sqlite"),
			safeDir:  safeDir,
		},
		{
			name:      "dotdot traversal",
			filePath:  filepath.Join(safeDir, "..", "unsafe", "layout.sqlite"),
			safeDir:   safeDir,
			wantError: true,
		},
		{
			name:      "absolute path outside directory",
			filePath:  filepath.Join(unsafeDir, "layout.sqlite"),
			safeDir:   safeDir,
			wantError: true,
		},
		{
			name:      "symlink escape",
			filePath:  filepath.Join(symlinkPath, "layout.sqlite"),
			safeDir:   safeDir,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePathWithinDirectory(tt.filePath, tt.safeDir)
			if tt.wantError && err == nil {
				t.Errorf("expected error for %s, got nil", tt.filePath)
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error for %s: %v", tt.filePath, err)
			}
		})
	}
}

func TestValidateExportPath(t *testing.T) {
	if err := ValidateExportPath(filepath.Join(os.TempDir(), "plate_layout.sqlite")); err != nil {
		t.Errorf("temp dir path should be allowed: %v", err)
	}
	if err := ValidateExportPath("/etc/plate_layout.sqlite"); err == nil {
		t.Error("path outside temp and cwd should be rejected")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"96-well_20260314_092654", "96-well_20260314_092654"},
		{"my plate #3!", "my_plate_3"},
		{"", "unknown"},
		{"../../etc/passwd", "etc_passwd"},
		{"___", "unknown"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
