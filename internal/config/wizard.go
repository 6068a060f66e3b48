package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// termFileCandidates are checked, in order, for a project glossary to
// offer as the default terms file.
var termFileCandidates = []string{
	"terms.yml",
	"terms.yaml",
	"terms.txt",
	"glossary.txt",
	"docs/terms.yml",
}

// detectTermsFile returns the first glossary file found in the current
// directory, or "".
func detectTermsFile() string {
	for _, name := range termFileCandidates {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to termlens! Let's configure your project.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"openai", "openrouter", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)

	// 2. Model.
	modelPrompt := promptui.Prompt{
		Label:   "Model",
		Default: DefaultModel(cfg.Provider),
	}
	if cfg.Model, err = modelPrompt.Run(); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	// 3. Server port.
	portPrompt := promptui.Prompt{
		Label:    "Server port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 4. Terms file.
	detected := detectTermsFile()
	if detected != "" {
		fmt.Printf("Found glossary: %s\n\n", detected)
	}
	termsPrompt := promptui.Prompt{
		Label:   "Terms file (blank for the built-in list)",
		Default: detected,
	}
	if cfg.TermsFile, err = termsPrompt.Run(); err != nil {
		return nil, fmt.Errorf("terms file: %w", err)
	}

	// 5. Tooltip side.
	positionPrompt := promptui.Select{
		Label: "Show explanations",
		Items: []string{"above", "below"},
	}
	if _, cfg.Overlay.PreferredPosition, err = positionPrompt.Run(); err != nil {
		return nil, fmt.Errorf("position selection: %w", err)
	}

	// Check for API key.
	envVar := APIKeyEnvVar(cfg.Provider)
	if envVar != "" {
		if os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment before running termlens serve.\n", envVar)
		}
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
