package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/glowlink/creator-cli/internal/contact"
)

var (
	extractText string
	extractFile string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract contact info from bio text",
	Long: `Runs contact extraction over free-form text (a creator bio or page dump)
and prints the email candidates, social links and hub URL as JSON.
Reads stdin when neither --text nor --file is given.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		text := extractText
		if text == "" && extractFile != "" {
			data, err := os.ReadFile(extractFile)
			if err != nil {
				return eris.Wrapf(err, "extract: read %s", extractFile)
			}
			text = string(data)
		}
		if text == "" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return eris.Wrap(err, "extract: read stdin")
			}
			text = string(data)
		}

		result := contact.ExtractContacts(text, "manual_extract")

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(result), "extract: encode result")
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractText, "text", "", "text to extract from")
	extractCmd.Flags().StringVar(&extractFile, "file", "", "file to extract from")
	rootCmd.AddCommand(extractCmd)
}
