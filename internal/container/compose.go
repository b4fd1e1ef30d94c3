package container

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DescriptorPath is the fixed location of the generated orchestration file,
// overwritten on every run.
const DescriptorPath = "docker-compose.yml"

// dataVolume is the named volume holding the database files across runs.
const dataVolume = "pg_data"

// Params are the knobs embedded in the generated descriptor.
type Params struct {
	ContainerName string
	DBName        string
	DBUser        string
	DBPassword    string
	InternalPort  int
	ExternalPort  int
}

// composeFile models the docker-compose document. Marshalling a typed
// document keeps credentials with YAML metacharacters intact.
type composeFile struct {
	Services map[string]composeService `yaml:"services"`
	Volumes  map[string]*struct{}      `yaml:"volumes"`
}

type composeService struct {
	Image         string            `yaml:"image"`
	Restart       string            `yaml:"restart"`
	ShmSize       string            `yaml:"shm_size"`
	ContainerName string            `yaml:"container_name"`
	Environment   map[string]string `yaml:"environment"`
	Ports         []string          `yaml:"ports"`
	Volumes       []string          `yaml:"volumes"`
}

// RenderDescriptor builds the compose document for one PostgreSQL service.
func RenderDescriptor(p Params) ([]byte, error) {
	doc := composeFile{
		Services: map[string]composeService{
			"postgres": {
				Image:         "postgres:16",
				Restart:       "always",
				ShmSize:       "1024mb",
				ContainerName: p.ContainerName,
				Environment: map[string]string{
					"POSTGRES_USER":     p.DBUser,
					"POSTGRES_PASSWORD": p.DBPassword,
					"POSTGRES_DB":       p.DBName,
				},
				Ports:   []string{fmt.Sprintf("%d:%d", p.ExternalPort, p.InternalPort)},
				Volumes: []string{dataVolume + ":/var/lib/postgresql/data"},
			},
		},
		Volumes: map[string]*struct{}{dataVolume: nil},
	}
	return yaml.Marshal(doc)
}

// WriteDescriptor renders the descriptor and writes it to DescriptorPath,
// replacing any previous file.
func WriteDescriptor(p Params) error {
	data, err := RenderDescriptor(p)
	if err != nil {
		return fmt.Errorf("rendering compose descriptor: %w", err)
	}
	if err := os.WriteFile(DescriptorPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", DescriptorPath, err)
	}
	return nil
}
