package main

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/specval/internal/catalogue"
)

// catalogueListing is the YAML document printed by the catalogue command.
type catalogueListing struct {
	Supported   []catalogue.Entry `yaml:"supported"`
	Unsupported []string          `yaml:"unsupported"`
}

func newCatalogueCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "catalogue",
		Aliases: []string{"catalog", "ls"},
		Short:   "List the fixtures specval knows about",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var listing catalogueListing
			for _, e := range catalogue.New().Entries() {
				if e.Supported() {
					listing.Supported = append(listing.Supported, e)
				} else {
					listing.Unsupported = append(listing.Unsupported, e.ID)
				}
			}

			data, err := yaml.Marshal(listing)
			if err != nil {
				return fmt.Errorf("encode catalogue: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
