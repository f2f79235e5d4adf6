package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [embedding|llm]",
	Short: "Store a provider API key",
	Long: `Prompts for an API key without echoing it and stores it in the config
file with restricted permissions.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigSetKey,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetKeyCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	s, err := settingsStore.Load()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	cmd.Printf("Config file: %s\n\n", settingsStore.Path())

	cmd.Println("[Paths]")
	cmd.Printf("  Docs dir: %s\n", s.Paths.DocsDir)
	cmd.Printf("  Dataset: %s\n", s.Paths.DatasetPath)
	cmd.Printf("  Clean dataset: %s\n", s.Paths.CleanDatasetPath)
	cmd.Printf("  Index dir: %s\n", s.Paths.IndexDir)
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", s.Embedding.Provider)
	if s.Embedding.Model != "" {
		cmd.Printf("  Model: %s\n", s.Embedding.Model)
	}
	if s.Embedding.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(s.Embedding.APIKey))
	}
	cmd.Println()

	cmd.Println("[LLM]")
	if s.LLM.Provider == "" {
		cmd.Println("  Provider: (not configured)")
	} else {
		cmd.Printf("  Provider: %s\n", s.LLM.Provider)
		if s.LLM.Model != "" {
			cmd.Printf("  Model: %s\n", s.LLM.Model)
		}
		if s.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(s.LLM.APIKey))
		}
	}
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Top K: %d\n", s.Retrieval.TopK)
	cmd.Printf("  Max new tokens: %d\n", s.Retrieval.MaxNewTokens)
	return nil
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	if settingsStore == nil {
		return errors.New("settings store not configured")
	}

	target := strings.ToLower(args[0])
	if target != "embedding" && target != "llm" {
		return fmt.Errorf("unknown key target %q (want embedding or llm)", args[0])
	}

	cmd.Print("Enter API key: ")
	key := readPassword()
	cmd.Println()
	if key == "" {
		return errors.New("API key must not be empty")
	}

	var err error
	if target == "embedding" {
		err = settingsStore.SetEmbeddingAPIKey(key)
	} else {
		err = settingsStore.SetLLMAPIKey(key)
	}
	if err != nil {
		return fmt.Errorf("store API key: %w", err)
	}

	cmd.Printf("Stored %s API key in %s\n", target, settingsStore.Path())
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
