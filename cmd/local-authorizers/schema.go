package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/mikecbrant/local-authorizers/internal/localauth"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the http event property schema for localAuthorizer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(localauth.EventPropertySchema())
		},
	}
}
