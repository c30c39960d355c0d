package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ecoleta/ecoleta/pkg/apiclient"
	"github.com/ecoleta/ecoleta/pkg/geo"
	"github.com/ecoleta/ecoleta/pkg/logger"
	"github.com/ecoleta/ecoleta/pkg/registration"
)

var registerOpts struct {
	name, email, whatsapp string
	uf, city              string
	items                 string
	photo                 string
	lat, lon              float64
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new collection point",
	Long: `Register a new collection point.

Provinces and cities are checked against IBGE. Without --lat/--lon the
current position is estimated from the public IP address (set
ECOLETA_LOCATOR=none to disable).

Example:
  ecoleta register --name "Eco Center" --email a@b.com --whatsapp 555 \
    --uf SP --city "São Paulo" --items 1,2 --photo ./front.jpg`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

func init() {
	f := registerCmd.Flags()
	f.StringVar(&registerOpts.name, "name", "", "entity name")
	f.StringVar(&registerOpts.email, "email", "", "contact e-mail")
	f.StringVar(&registerOpts.whatsapp, "whatsapp", "", "contact WhatsApp number")
	f.StringVar(&registerOpts.uf, "uf", "", "province (UF), e.g. SP")
	f.StringVar(&registerOpts.city, "city", "", "city name")
	f.StringVar(&registerOpts.items, "items", "", "comma-separated ids of accepted items")
	f.StringVar(&registerOpts.photo, "photo", "", "path to a photo of the point")
	f.Float64Var(&registerOpts.lat, "lat", 0, "latitude; defaults to the current position")
	f.Float64Var(&registerOpts.lon, "lon", 0, "longitude; defaults to the current position")

	registerCmd.Flags().String("ibge-url", geo.DefaultIBGEBaseURL, "IBGE localities API base URL")
	_ = viper.BindPFlag("ibge_url", registerCmd.Flags().Lookup("ibge-url"))
	viper.SetDefault("locator", "ip")
}

func newLocator() geo.Locator {
	if viper.GetString("locator") == "none" {
		return geo.StaticLocator{}
	}
	return geo.NewIPLocator(viper.GetString("locator_url"), nil)
}

func runRegister(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := newLogger()

	ids, err := parseItemFlag(registerOpts.items)
	if err != nil {
		return err
	}

	flow := registration.New(
		newClient(),
		geo.NewIBGE(geo.WithBaseURL(viper.GetString("ibge_url"))),
		newLocator(),
		log,
		registration.OnSubmitted(func(p *apiclient.Point) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Collection point %d created\n", p.ID)
		}),
	)
	flow.Start(ctx)
	if err := flow.Wait(); err != nil {
		log.WarnContext(ctx, "some reference data is unavailable", "error", err)
	}

	if err := fill(ctx, cmd, flow, ids, log); err != nil {
		return err
	}

	if registerOpts.photo != "" {
		f, err := os.Open(registerOpts.photo)
		if err != nil {
			return fmt.Errorf("open photo: %w", err)
		}
		defer f.Close() //nolint:errcheck
		if err := flow.AttachPhoto(&apiclient.Photo{Filename: filepath.Base(f.Name()), Content: f}); err != nil {
			return err
		}
	}

	p, err := flow.Submit(ctx)
	if err != nil {
		s := flow.Snapshot()
		if s.Notice != "" {
			return errors.New(s.Notice)
		}
		return explain(err)
	}
	return printJSON(cmd.OutOrStdout(), p)
}

func fill(ctx context.Context, cmd *cobra.Command, flow *registration.Flow, ids []int64, log logger.Logger) error {
	o := registerOpts
	for _, set := range []func() error{
		func() error { return flow.SetName(o.name) },
		func() error { return flow.SetEmail(o.email) },
		func() error { return flow.SetWhatsapp(o.whatsapp) },
	} {
		if err := set(); err != nil {
			return err
		}
	}

	uf := strings.ToUpper(strings.TrimSpace(o.uf))
	s := flow.Snapshot()
	if len(s.Provinces) > 0 && !slices.Contains(s.Provinces, uf) {
		log.WarnContext(ctx, "province not listed by IBGE", "uf", uf)
	}
	if err := flow.SelectProvince(ctx, uf); err != nil {
		return err
	}
	_ = flow.Wait()
	if cities := flow.Snapshot().Cities; len(cities) > 0 && !slices.Contains(cities, o.city) {
		log.WarnContext(ctx, "city not listed by IBGE", "uf", uf, "city", o.city)
	}
	if err := flow.SelectCity(o.city); err != nil {
		return err
	}

	pos := s.InitialPosition
	if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
		pos = geo.Position{Latitude: o.lat, Longitude: o.lon}
	}
	if err := flow.SelectPosition(pos); err != nil {
		return err
	}

	known := make(map[int64]bool, len(s.Items))
	for _, it := range s.Items {
		known[it.ID] = true
	}
	for _, id := range ids {
		if len(known) > 0 && !known[id] {
			log.WarnContext(ctx, "item not in catalog", "item_id", id)
		}
		if err := flow.ToggleItem(id); err != nil {
			return err
		}
	}
	return nil
}

// parseItemFlag reads "1,2,2" into distinct ids in order. The server makes
// the final call on emptiness.
func parseItemFlag(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid item id %q", part)
		}
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
