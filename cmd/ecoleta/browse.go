package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ecoleta/ecoleta/pkg/apiclient"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List the recyclable item catalog as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		items, err := newClient().ListItems(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), items)
	},
}

var pointFilter apiclient.PointFilter

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Search collection points as JSON",
	Long: `Search collection points. All filters are optional.

Examples:
  ecoleta points --uf SP
  ecoleta points --uf SP --city "São Paulo" --items 1,4`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		points, err := newClient().ListPoints(cmd.Context(), pointFilter)
		if err != nil {
			return explain(err)
		}
		return printJSON(cmd.OutOrStdout(), points)
	},
}

var pointCmd = &cobra.Command{
	Use:   "point <id>",
	Short: "Show one collection point with its accepted items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid point id %q", args[0])
		}
		p, err := newClient().GetPoint(cmd.Context(), id)
		if errors.Is(err, apiclient.ErrNotFound) {
			return fmt.Errorf("point %d not found", id)
		}
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), p)
	},
}

func init() {
	pointsCmd.Flags().StringVar(&pointFilter.City, "city", "", "only points in this city")
	pointsCmd.Flags().StringVar(&pointFilter.UF, "uf", "", "only points in this province")
	pointsCmd.Flags().StringVar(&pointFilter.Items, "items", "", "comma-separated item ids; matches points accepting any of them")
}

// explain renders API violations one per line.
func explain(err error) error {
	var ve *apiclient.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	msg := "request rejected:"
	for _, v := range ve.Violations {
		msg += fmt.Sprintf("\n  %s: %s", v.Field, v.Message)
	}
	return errors.New(msg)
}
