package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/termlens/internal/client"
	"github.com/ziadkadry99/termlens/internal/terms"
)

var explainCmd = &cobra.Command{
	Use:   "explain [term]",
	Short: "Explain a term in plain language",
	Long: `Asks the running termlens server for an explanation of a term. With
--local the explanation is generated in-process against the configured
database and LLM provider instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().String("context", "", "passage the term appeared in")
	explainCmd.Flags().Bool("local", false, "explain in-process instead of calling the server")
	explainCmd.Flags().Bool("json", false, "output the result as JSON")
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	passage, _ := cmd.Flags().GetString("context")
	local, _ := cmd.Flags().GetBool("local")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var resp client.Response
	if local {
		idx, err := terms.LoadFile(cfg.TermsFile)
		if err != nil {
			return err
		}
		svc, err := openLocalService(cfg, idx, newLogger())
		if err != nil {
			return err
		}
		defer svc.Close()

		res, err := svc.Explain(ctx, args[0], passage)
		if err != nil {
			return fmt.Errorf("explaining %q: %w", args[0], err)
		}
		resp = client.Response{Term: res.Term, Explanation: res.Explanation, Cached: res.Cached}
	} else {
		c, err := newClient(cfg)
		if err != nil {
			return err
		}
		r, err := c.Lookup(ctx, client.Request{Term: args[0], Context: passage})
		if err != nil {
			return fmt.Errorf("explaining %q: %w\nIs `termlens serve` running at %s?", args[0], err, cfg.ServerURL())
		}
		resp = *r
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Printf("%s\n\n%s\n", resp.Term, resp.Explanation)
	if resp.Cached && verbose {
		fmt.Fprintln(os.Stderr, "(cached)")
	}
	return nil
}
