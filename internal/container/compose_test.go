package container

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestRenderDescriptorRoundTrip(t *testing.T) {
	data, err := RenderDescriptor(Params{
		ContainerName: "postgres_weather",
		DBName:        "postgres",
		DBUser:        "user",
		DBPassword:    "pass",
		InternalPort:  5432,
		ExternalPort:  5433,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc struct {
		Services map[string]struct {
			Image         string            `yaml:"image"`
			ContainerName string            `yaml:"container_name"`
			Environment   map[string]string `yaml:"environment"`
			Ports         []string          `yaml:"ports"`
			Volumes       []string          `yaml:"volumes"`
		} `yaml:"services"`
		Volumes map[string]interface{} `yaml:"volumes"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("descriptor is not valid YAML: %v", err)
	}

	svc, ok := doc.Services["postgres"]
	if !ok {
		t.Fatalf("descriptor has no postgres service:\n%s", data)
	}
	if svc.Image != "postgres:16" {
		t.Errorf("expected image postgres:16, got %q", svc.Image)
	}
	if svc.ContainerName != "postgres_weather" {
		t.Errorf("expected container name postgres_weather, got %q", svc.ContainerName)
	}
	if svc.Environment["POSTGRES_DB"] != "postgres" {
		t.Errorf("unexpected POSTGRES_DB: %q", svc.Environment["POSTGRES_DB"])
	}
	if len(svc.Ports) != 1 || svc.Ports[0] != "5433:5432" {
		t.Errorf("unexpected ports: %v", svc.Ports)
	}
	if len(svc.Volumes) != 1 || svc.Volumes[0] != "pg_data:/var/lib/postgresql/data" {
		t.Errorf("unexpected volumes: %v", svc.Volumes)
	}
	if _, ok := doc.Volumes["pg_data"]; !ok {
		t.Errorf("named volume pg_data not declared")
	}
}

// TestRenderDescriptorQuotesAwkwardCredentials guards against credential
// strings with YAML metacharacters corrupting the document.
func TestRenderDescriptorQuotesAwkwardCredentials(t *testing.T) {
	awkward := []string{
		`pa:ss"word`,
		"multi\nline",
		"#comment",
		"  padded  ",
		"{flow}",
	}

	for _, password := range awkward {
		data, err := RenderDescriptor(Params{
			ContainerName: "postgres_weather",
			DBName:        "postgres",
			DBUser:        "user",
			DBPassword:    password,
			InternalPort:  5432,
			ExternalPort:  5433,
		})
		if err != nil {
			t.Fatalf("password %q: %v", password, err)
		}

		var doc struct {
			Services map[string]struct {
				Environment map[string]string `yaml:"environment"`
			} `yaml:"services"`
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			t.Fatalf("password %q produced invalid YAML: %v", password, err)
		}
		if got := doc.Services["postgres"].Environment["POSTGRES_PASSWORD"]; got != password {
			t.Fatalf("password %q survived as %q", password, got)
		}
	}
}
