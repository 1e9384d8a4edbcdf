package docs

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDoc(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatal(err)
	}
	var spec struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal([]byte(doc), &spec); err != nil {
		t.Fatalf("swagger doc is not valid JSON: %v", err)
	}
	if spec.BasePath != "/api/v1" {
		t.Errorf("basePath = %q, want /api/v1", spec.BasePath)
	}
	for _, path := range []string{"/devices", "/devices/{id}/state", "/servers"} {
		if _, ok := spec.Paths[path]; !ok {
			t.Errorf("missing path %s", path)
		}
	}
}

// docs.go is maintained by hand.
func TestDocsNotMarkedGenerated(t *testing.T) {
	src, err := os.ReadFile("docs.go")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(src), "DO NOT EDIT") {
		t.Error("docs.go carries a generated-code marker")
	}
}
