package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"repoatlas/internal/project"
)

// Task is one unit of work inside a pipeline stage.
type Task struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Version      string   `json:"version" yaml:"version"`
	Description  string   `json:"description" yaml:"description"`
	Input        string   `json:"input" yaml:"input"`
	Output       string   `json:"output" yaml:"output"`
	Dependencies []string `json:"dependencies" yaml:"dependencies"`
	Hint         string   `json:"llm_hint" yaml:"llm_hint"`
}

// Stage is one phase of a pipeline definition.
type Stage struct {
	ID           int    `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Version      string `json:"version" yaml:"version"`
	Description  string `json:"description" yaml:"description"`
	Hint         string `json:"llm_hint" yaml:"llm_hint"`
	Tasks        []Task `json:"tasks" yaml:"tasks"`
	Dependencies []int  `json:"dependencies" yaml:"dependencies"`
}

// Definition is an adaptive pipeline definition describing how the scanned
// repository decomposes into reconstructible stages.
type Definition struct {
	Name                string   `json:"name" yaml:"name"`
	Description         string   `json:"description" yaml:"description"`
	Stages              []Stage  `json:"stages" yaml:"stages"`
	OverallDependencies []string `json:"overall_dependencies" yaml:"overall_dependencies"`
}

type externalDefinition struct {
	Pipeline Definition `yaml:"pipeline"`
}

// LoadExternalDefinition reads a pipeline definition override from a YAML
// file. The second return value reports whether an override was found.
func LoadExternalDefinition(path string) (*Definition, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read pipeline config %s: %w", path, err)
	}
	var ext externalDefinition
	if err := yaml.Unmarshal(data, &ext); err != nil {
		return nil, false, fmt.Errorf("parse pipeline config %s: %w", path, err)
	}
	return &ext.Pipeline, true, nil
}

func hint(enabled bool, text string) string {
	if enabled {
		return text
	}
	return ""
}

// GenerateDefinition builds the built-in pipeline definition for a project
// type. Backend projects get a full staged decomposition; frontend and
// generic projects get template stubs meant to be customized.
func GenerateDefinition(ptype project.Type, hints bool) Definition {
	switch ptype {
	case project.PythonBackend:
		return backendDefinition(hints)
	case project.Frontend, project.JavaScript, project.TypeScript:
		return Definition{
			Name: "Deconstructed_Frontend_Pipeline",
			Description: "A modular pipeline that deconstructs a frontend code repository into tasks " +
				"focused on UI rendering, client-side interactions, and dynamic content updates." +
				hint(hints, " Use hints to guide the LLM in understanding UI design choices."),
			OverallDependencies: []string{
				"Front-end modules depend on robust UI rendering and dynamic updates.",
			},
		}
	default:
		return Definition{
			Name: "Deconstructed_Code_Repository_Pipeline",
			Description: "A generic modular pipeline that deconstructs a code repository into granular " +
				"tasks and stages. It is intended to be customized based on project-specific needs." +
				hint(hints, " Hints may help guide LLM reassembly."),
			OverallDependencies: []string{
				"This pipeline is a generic template to be customized as needed.",
			},
		}
	}
}

func backendDefinition(hints bool) Definition {
	return Definition{
		Name: "Deconstructed_Backend_Pipeline",
		Description: "A modular, language-agnostic pipeline that deconstructs a backend code repository " +
			"into granular tasks and stages. Focus areas include configuration management, business " +
			"logic extraction, data model definition, API endpoint mapping, and deployment." +
			hint(hints, " Use the provided hints to guide an LLM in understanding and reassembling the code."),
		Stages: []Stage{
			{
				ID:          1,
				Name:        "Environment_And_Infrastructure_Setup",
				Version:     "1.0",
				Description: "Set up configuration management, logging, and dependency injection.",
				Hint:        hint(hints, "This stage establishes the necessary foundation for the application, including managing configuration and logging."),
				Tasks: []Task{
					{
						ID: "1.1", Name: "Define_Configuration_Manager", Version: "1.0",
						Description:  "Create a module to manage application configuration.",
						Output:       "Configuration_Manager",
						Dependencies: []string{},
						Hint:         hint(hints, "Ensure that all configuration variables are centralized and easily modifiable."),
					},
					{
						ID: "1.2", Name: "Establish_Logging_Framework", Version: "1.0",
						Description:  "Set up a logging system for tracking events and errors.",
						Output:       "Logging_Framework",
						Dependencies: []string{},
						Hint:         hint(hints, "Implement a logging mechanism that captures important events and errors throughout the system."),
					},
				},
				Dependencies: []int{},
			},
			{
				ID:          2,
				Name:        "Core_Business_Logic_Extraction",
				Version:     "1.0",
				Description: "Extract and modularize core business functions and data processing routines.",
				Hint:        hint(hints, "This stage isolates the core algorithms and business logic for independent analysis and potential modification."),
				Tasks: []Task{
					{
						ID: "2.1", Name: "Extract_Service_Functions", Version: "1.0",
						Description:  "Identify and encapsulate core business logic from the codebase.",
						Input:        "Source Code",
						Output:       "Business_Logic_Modules",
						Dependencies: []string{},
						Hint:         hint(hints, "Focus on the functions that implement key business rules and services."),
					},
					{
						ID: "2.2", Name: "Define_Data_Models", Version: "1.0",
						Description:  "Map database schemas and define ORM models.",
						Input:        "Business_Logic_Modules",
						Output:       "Data_Model_Definitions",
						Dependencies: []string{"2.1"},
						Hint:         hint(hints, "Identify and document the data structures and relationships used for persistence."),
					},
				},
				Dependencies: []int{1},
			},
			{
				ID:          3,
				Name:        "API_Endpoint_Definition_And_Testing",
				Version:     "1.0",
				Description: "Expose business logic via API endpoints and validate functionality with tests.",
				Hint:        hint(hints, "This stage bridges the business logic to external interfaces and ensures they work as expected."),
				Tasks: []Task{
					{
						ID: "3.1", Name: "Define_API_Routes", Version: "1.0",
						Description:  "Map business logic modules to RESTful API endpoints.",
						Input:        "Business_Logic_Modules",
						Output:       "API_Routes",
						Dependencies: []string{"2.1"},
						Hint:         hint(hints, "Design clear and maintainable API endpoints that accurately reflect the underlying business operations."),
					},
					{
						ID: "3.2", Name: "Integration_Testing", Version: "1.0",
						Description:  "Develop integration tests for API endpoints.",
						Input:        "API_Routes",
						Output:       "Test_Reports",
						Dependencies: []string{"3.1"},
						Hint:         hint(hints, "Ensure that the endpoints function correctly and that the business logic integrates seamlessly with the API."),
					},
				},
				Dependencies: []int{2},
			},
			{
				ID:          4,
				Name:        "Build_And_Deployment",
				Version:     "1.0",
				Description: "Package the application and automate deployment processes.",
				Hint:        hint(hints, "This final stage focuses on turning the modular components into a deployable system."),
				Tasks: []Task{
					{
						ID: "4.1", Name: "Define_Build_Scripts", Version: "1.0",
						Description:  "Create build scripts (e.g., Dockerfiles) to assemble the application.",
						Input:        "Modular Outputs",
						Output:       "Build_Scripts",
						Dependencies: []string{},
						Hint:         hint(hints, "Generate scripts that package the application reliably across environments."),
					},
					{
						ID: "4.2", Name: "Automate_CI_CD", Version: "1.0",
						Description:  "Set up CI/CD pipelines for testing and deployment.",
						Input:        "Build_Scripts",
						Output:       "CI_CD_Configuration",
						Dependencies: []string{"4.1"},
						Hint:         hint(hints, "Implement automation for testing and deployment to ensure rapid and reliable delivery."),
					},
				},
				Dependencies: []int{1, 2, 3},
			},
		},
		OverallDependencies: []string{
			"Stage 1 provides the infrastructure foundation.",
			"Stage 2 extracts and modularizes core business logic.",
			"Stage 3 maps logic to API endpoints and validates functionality.",
			"Stage 4 packages and deploys the backend application.",
		},
	}
}
