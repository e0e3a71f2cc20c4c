package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/escale/cep-enricher/pkg/geofusion"
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode CEP",
	Short: "Resolve a single CEP to latitude/longitude",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.GeoFusion.Token == "" {
			return eris.New("geocode: GeoFusion API token is required; set CEP_GEOFUSION_TOKEN or geofusion.token in config.yaml")
		}

		client := geofusion.NewClient(cfg.GeoFusion.Token,
			geofusion.WithBaseURL(cfg.GeoFusion.BaseURL),
			geofusion.WithRateLimit(cfg.GeoFusion.RateLimit),
		)

		pos, err := client.Position(cmd.Context(), args[0])
		if err != nil {
			return eris.Wrap(err, "geocode: position")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"cep":       args[0],
			"latitude":  pos.Latitude,
			"longitude": pos.Longitude,
			"error":     pos.Error,
		})
	},
}

func init() {
	rootCmd.AddCommand(geocodeCmd)
}
