package validation

import (
	"testing"

	perrors "github.com/conneroisu/passforge/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantErr  bool
		security bool
	}{
		{name: "simple file", path: "mypassword.txt"},
		{name: "nested relative", path: "secrets/mypassword.docx"},
		{name: "dot segments that stay inside", path: "a/../b.txt"},
		{name: "tmp absolute", path: "/tmp/pw.txt"},
		{name: "home absolute", path: "/home/user/pw.txt"},
		{name: "empty", path: "", wantErr: true},
		{name: "blank", path: "   ", wantErr: true},
		{name: "parent escape", path: "../pw.txt", wantErr: true, security: true},
		{name: "deep escape", path: "a/../../pw.txt", wantErr: true, security: true},
		{name: "etc", path: "/etc/passwd", wantErr: true, security: true},
		{name: "dev", path: "/dev/null", wantErr: true, security: true},
		{name: "shell metachar", path: "pw;rm -rf.txt", wantErr: true},
		{name: "null byte", path: "pw\x00.txt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Equal(t, tt.security, perrors.IsSecurityError(err))
		})
	}
}

func TestEnsureExtension(t *testing.T) {
	assert.Equal(t, "mypassword.txt", EnsureExtension("mypassword", ".txt"))
	assert.Equal(t, "mypassword.txt", EnsureExtension("mypassword.txt", ".txt"))
	assert.Equal(t, "MY.DOCX", EnsureExtension("MY.DOCX", ".docx"))
	assert.Equal(t, "notes.txt.docx", EnsureExtension("notes.txt", ".docx"))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "hello", SanitizeInput("hello\n"))
	assert.Equal(t, "hello", SanitizeInput("hello\r\n"))
	assert.Equal(t, "a\tb", SanitizeInput("a\tb"))
	assert.Equal(t, "ab", SanitizeInput("a\x00\x1bb"))
	assert.Equal(t, "日本", SanitizeInput("日本\n"))
	assert.Equal(t, " spaced ", SanitizeInput(" spaced "))
}
