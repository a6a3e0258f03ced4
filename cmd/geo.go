package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ozleads/lead-engine/internal/gazetteer"
	"github.com/ozleads/lead-engine/internal/geo"
)

var geoCmd = &cobra.Command{
	Use:   "geo",
	Short: "Suburb lookup and distance queries",
	Long:  "Query the suburb gazetteer: lookups, radius searches, and area groupings.",
}

var geoLookupCmd = &cobra.Command{
	Use:   "lookup <suburb>",
	Short: "Find a suburb by name or postcode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gaz := gazetteer.New(cfg.Gazetteer.DatasetPath)
		state, _ := cmd.Flags().GetString("state")

		suburb, err := gaz.FindSuburb(args[0], state)
		if err != nil {
			return err
		}
		if suburb == nil {
			suburb, err = gaz.FindByPostcode(args[0])
			if err != nil {
				return err
			}
		}
		if suburb == nil {
			return eris.Errorf("no suburb matching %q", args[0])
		}
		return printJSON(suburb)
	},
}

var geoRadiusCmd = &cobra.Command{
	Use:   "radius <suburb>",
	Short: "List suburbs within a radius, nearest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gaz := gazetteer.New(cfg.Gazetteer.DatasetPath)
		engine := geo.NewEngine(gaz)

		state, _ := cmd.Flags().GetString("state")
		radius, _ := cmd.Flags().GetFloat64("km")
		limit, _ := cmd.Flags().GetInt("limit")
		region, _ := cmd.Flags().GetString("region")

		base, err := resolveSuburb(gaz, args[0], state)
		if err != nil {
			return err
		}

		results, err := engine.SuburbsInRadius(*base, radius, geo.RadiusOptions{
			State:  state,
			Region: region,
			Limit:  limit,
		})
		if err != nil {
			return err
		}
		return printJSON(map[string]any{
			"base":    base.Name,
			"km":      radius,
			"count":   len(results),
			"suburbs": results,
		})
	},
}

var geoAreasCmd = &cobra.Command{
	Use:   "areas <region>",
	Short: "Group a region's suburbs by area",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gaz := gazetteer.New(cfg.Gazetteer.DatasetPath)
		engine := geo.NewEngine(gaz)

		areas, err := engine.AreasInRegion(args[0])
		if err != nil {
			return err
		}
		if len(areas) == 0 {
			return eris.Errorf("no areas in region %q", args[0])
		}
		return printJSON(areas)
	},
}

var geoBreakdownCmd = &cobra.Command{
	Use:   "breakdown <suburb>",
	Short: "Area-by-area breakdown of suburbs within a radius",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gaz := gazetteer.New(cfg.Gazetteer.DatasetPath)
		engine := geo.NewEngine(gaz)

		state, _ := cmd.Flags().GetString("state")
		radius, _ := cmd.Flags().GetFloat64("km")

		base, err := resolveSuburb(gaz, args[0], state)
		if err != nil {
			return err
		}

		breakdown, err := engine.AreaBreakdownInRadius(*base, radius)
		if err != nil {
			return err
		}
		return printJSON(breakdown)
	},
}

// resolveSuburb finds a suburb by name and errors when nothing matches.
func resolveSuburb(gaz *gazetteer.Gazetteer, query, state string) (*gazetteer.Suburb, error) {
	suburb, err := gaz.FindSuburb(query, state)
	if err != nil {
		return nil, err
	}
	if suburb == nil {
		return nil, eris.Errorf("no suburb matching %q", query)
	}
	return suburb, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "encode output")
	}
	return nil
}

func init() {
	for _, c := range []*cobra.Command{geoLookupCmd, geoRadiusCmd, geoBreakdownCmd} {
		c.Flags().String("state", "", "restrict to a state (e.g. NSW)")
	}
	geoRadiusCmd.Flags().Float64("km", 10, "radius in kilometres")
	geoRadiusCmd.Flags().Int("limit", 0, "maximum results (0=all)")
	geoRadiusCmd.Flags().String("region", "", "restrict to a region")
	geoBreakdownCmd.Flags().Float64("km", 10, "radius in kilometres")

	geoCmd.AddCommand(geoLookupCmd, geoRadiusCmd, geoAreasCmd, geoBreakdownCmd)
	rootCmd.AddCommand(geoCmd)
}
