package web

import (
	"io/fs"
	"testing"
)

func TestEmbeddedTemplatesExist(t *testing.T) {
	templatesFS := GetTemplatesFS()

	requiredFiles := []string{
		"index.html",
		"login.html",
	}

	for _, file := range requiredFiles {
		_, err := fs.Stat(templatesFS, file)
		if err != nil {
			t.Errorf("required template %q not found: %v", file, err)
		}
	}
}

func TestEmbeddedStaticFilesExist(t *testing.T) {
	staticFS := GetStaticFS()

	requiredFiles := []string{
		"app.js",
		"style.css",
	}

	for _, file := range requiredFiles {
		_, err := fs.Stat(staticFS, file)
		if err != nil {
			t.Errorf("required static file %q not found: %v", file, err)
		}
	}
}

func TestTemplatesReadable(t *testing.T) {
	templatesFS := GetTemplatesFS()

	// Verify we can actually read content
	content, err := fs.ReadFile(templatesFS, "index.html")
	if err != nil {
		t.Fatalf("failed to read index.html: %v", err)
	}
	if len(content) == 0 {
		t.Error("index.html is empty")
	}
}

func TestStaticFilesReadable(t *testing.T) {
	staticFS := GetStaticFS()

	// Verify we can actually read content
	content, err := fs.ReadFile(staticFS, "app.js")
	if err != nil {
		t.Fatalf("failed to read app.js: %v", err)
	}
	if len(content) == 0 {
		t.Error("app.js is empty")
	}
}
